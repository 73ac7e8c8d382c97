package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"chirp/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateComment(t *testing.T) {
	post := &models.Post{ID: 5, UserID: 2}

	t.Run("Success", func(t *testing.T) {
		app := fiber.New()
		s, mocks := newTestServer()
		app.Post("/posts/:id/comments", asUser(1), s.CreateComment)

		mocks.postRepo.On("GetByID", mock.Anything, uint(5), uint(0)).Return(post, nil).Once()
		mocks.commentRepo.On("Create", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				args.Get(1).(*models.Comment).ID = 9
			}).Return(nil).Once()
		mocks.commentRepo.On("GetByID", mock.Anything, uint(9)).
			Return(&models.Comment{ID: 9, UserID: 1, PostID: 5, Content: "nice"}, nil).Once()

		resp := postJSON(t, app, "/posts/5/comments", map[string]string{"content": "nice"})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mocks.commentRepo.AssertExpectations(t)
	})

	t.Run("Blank content answers 400", func(t *testing.T) {
		app := fiber.New()
		s, mocks := newTestServer()
		app.Post("/posts/:id/comments", asUser(1), s.CreateComment)

		mocks.postRepo.On("GetByID", mock.Anything, uint(5), uint(0)).Return(post, nil).Once()

		resp := postJSON(t, app, "/posts/5/comments", map[string]string{"content": "  "})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Missing post answers 404", func(t *testing.T) {
		app := fiber.New()
		s, mocks := newTestServer()
		app.Post("/posts/:id/comments", asUser(1), s.CreateComment)

		mocks.postRepo.On("GetByID", mock.Anything, uint(99), uint(0)).
			Return(nil, models.NewNotFoundError("Post", 99)).Once()

		resp := postJSON(t, app, "/posts/99/comments", map[string]string{"content": "hi"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestGetComments(t *testing.T) {
	app := fiber.New()
	s, mocks := newTestServer()
	app.Get("/posts/:id/comments", s.GetComments)

	mocks.postRepo.On("GetByID", mock.Anything, uint(5), uint(0)).
		Return(&models.Post{ID: 5}, nil).Once()
	mocks.commentRepo.On("ListByPost", mock.Anything, uint(5), 10, 0).
		Return([]*models.Comment{{ID: 1, Content: "first", PostID: 5}}, int64(1), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/posts/5/comments", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.EqualValues(t, 1, body["count"])
	mocks.commentRepo.AssertExpectations(t)
}

func TestDeleteComment_NonOwnerForbidden(t *testing.T) {
	app := fiber.New()
	s, mocks := newTestServer()
	app.Delete("/posts/:id/comments/:commentId", asUser(9), s.DeleteComment)

	mocks.commentRepo.On("GetByID", mock.Anything, uint(3)).
		Return(&models.Comment{ID: 3, UserID: 1, PostID: 5}, nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/posts/5/comments/3", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
