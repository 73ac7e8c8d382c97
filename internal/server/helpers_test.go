package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"chirp/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanizeParam(t *testing.T) {
	tests := []struct {
		param string
		want  string
	}{
		{"id", "ID"},
		{"userId", "user ID"},
		{"commentId", "comment ID"},
		{"other", "other"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, humanizeParam(tt.param))
	}
}

func TestParsePagination(t *testing.T) {
	s := &Server{config: &config.Config{PageSize: 10}}

	app := fiber.New()
	var got Pagination
	app.Get("/x", func(c *fiber.Ctx) error {
		got = s.parsePagination(c)
		return c.SendStatus(http.StatusOK)
	})

	request := func(t *testing.T, path string) {
		t.Helper()
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	t.Run("defaults", func(t *testing.T) {
		request(t, "/x")
		assert.Equal(t, Pagination{Page: 1, PageSize: 10, Offset: 0}, got)
	})

	t.Run("page computes offset", func(t *testing.T) {
		request(t, "/x?page=3")
		assert.Equal(t, Pagination{Page: 3, PageSize: 10, Offset: 20}, got)
	})

	t.Run("page_size override", func(t *testing.T) {
		request(t, "/x?page=2&page_size=25")
		assert.Equal(t, Pagination{Page: 2, PageSize: 25, Offset: 25}, got)
	})

	t.Run("page_size capped", func(t *testing.T) {
		request(t, "/x?page_size=5000")
		assert.Equal(t, 100, got.PageSize)
	})

	t.Run("negative page clamped", func(t *testing.T) {
		request(t, "/x?page=-2")
		assert.Equal(t, 1, got.Page)
	})
}

func TestPageOf_Envelope(t *testing.T) {
	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		page := Pagination{Page: 2, PageSize: 2, Offset: 2}
		return c.JSON(pageOf(c, page, 5, []string{"c", "d"}))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items?page=2", nil))
	require.NoError(t, err)
	body := decodeBody(t, resp)

	assert.EqualValues(t, 5, body["count"])
	assert.Contains(t, body["next"], "page=3")
	prev, ok := body["previous"].(string)
	require.True(t, ok)
	assert.NotContains(t, prev, "page=")
	assert.Len(t, body["results"], 2)
}

func TestPageOf_EmptyResultsIsArray(t *testing.T) {
	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		var none []string
		return c.JSON(pageOf(c, Pagination{Page: 1, PageSize: 10}, 0, none))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items", nil))
	require.NoError(t, err)
	body := decodeBody(t, resp)

	results, ok := body["results"].([]any)
	require.True(t, ok)
	assert.Empty(t, results)
	assert.Nil(t, body["next"])
	assert.Nil(t, body["previous"])
}
