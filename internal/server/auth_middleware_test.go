package server

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"chirp/internal/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestApp(t *testing.T) (*fiber.App, *Server, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	s, _ := newTestServer()
	s.redis = client

	app := fiber.New()
	app.Post("/logout", s.AuthRequired(), s.Logout)
	app.Get("/protected", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("userID")})
	})
	return app, s, mr
}

func authedRequest(method, path, token string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestAuthRequired(t *testing.T) {
	t.Run("Valid token passes and exposes user ID", func(t *testing.T) {
		app, s, _ := newAuthTestApp(t)
		token, err := s.generateToken(7, "user")
		require.NoError(t, err)

		resp, err := app.Test(authedRequest(http.MethodGet, "/protected", token))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.EqualValues(t, 7, body["user_id"])
	})

	t.Run("Missing token rejected", func(t *testing.T) {
		app, _, _ := newAuthTestApp(t)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Garbage token rejected", func(t *testing.T) {
		app, _, _ := newAuthTestApp(t)
		resp, err := app.Test(authedRequest(http.MethodGet, "/protected", "not-a-token"))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Token signed with another secret rejected", func(t *testing.T) {
		app, s, _ := newAuthTestApp(t)
		orig := s.config.JWTSecret
		s.config.JWTSecret = "other_secret"
		token, err := s.generateToken(7, "user")
		require.NoError(t, err)
		s.config.JWTSecret = orig

		resp, err := app.Test(authedRequest(http.MethodGet, "/protected", token))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestLogoutRevokesToken(t *testing.T) {
	app, s, _ := newAuthTestApp(t)
	token, err := s.generateToken(7, "user")
	require.NoError(t, err)

	// Token works before logout.
	resp, err := app.Test(authedRequest(http.MethodGet, "/protected", token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(authedRequest(http.MethodPost, "/logout", token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Same token is now rejected.
	resp, err = app.Test(authedRequest(http.MethodGet, "/protected", token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPasswordChangeCutoffRevokesOldTokens(t *testing.T) {
	app, s, mr := newAuthTestApp(t)
	token, err := s.generateToken(7, "user")
	require.NoError(t, err)

	// A cutoff in the future invalidates tokens issued before it.
	cutoff := strconv.FormatInt(time.Now().Add(time.Minute).Unix(), 10)
	mr.Set(cache.PasswordCutoffKey(7), cutoff)

	resp, err := app.Test(authedRequest(http.MethodGet, "/protected", token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOptionalUserID(t *testing.T) {
	_, s, _ := newAuthTestApp(t)

	app := fiber.New()
	app.Get("/maybe", func(c *fiber.Ctx) error {
		id, ok := s.optionalUserID(c)
		return c.JSON(fiber.Map{"id": id, "ok": ok})
	})

	t.Run("No header yields anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/maybe", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		body := decodeBody(t, resp)
		assert.EqualValues(t, 0, body["id"])
		assert.Equal(t, false, body["ok"])
	})

	t.Run("Valid header yields user ID", func(t *testing.T) {
		token, err := s.generateToken(3, "user")
		require.NoError(t, err)

		resp, err := app.Test(authedRequest(http.MethodGet, "/maybe", token))
		require.NoError(t, err)
		body := decodeBody(t, resp)
		assert.EqualValues(t, 3, body["id"])
		assert.Equal(t, true, body["ok"])
	})

	t.Run("Invalid header yields anonymous", func(t *testing.T) {
		resp, err := app.Test(authedRequest(http.MethodGet, "/maybe", "bogus"))
		require.NoError(t, err)
		body := decodeBody(t, resp)
		assert.Equal(t, false, body["ok"])
	})
}
