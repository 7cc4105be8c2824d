package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"reconnect/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStreamToken(t *testing.T) {
	app := fiber.New()
	s := newTestServer(new(MockUserRepository), nil)

	app.Use(authStub(42))
	app.Get("/chat/token", s.GetStreamToken)

	req := httptest.NewRequest(http.MethodGet, "/chat/token", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token  string `json:"token"`
		APIKey string `json:"api_key"`
	}
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "test_key", body.APIKey)

	// Token must be scoped to the authenticated user.
	token, err := jwt.Parse(body.Token, func(token *jwt.Token) (any, error) {
		return []byte("test_stream_secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "42", claims["user_id"])
}

func TestGetStreamTokenNotConfigured(t *testing.T) {
	app := fiber.New()
	s := newTestServer(new(MockUserRepository), nil)
	s.streamTokens = service.NewStreamTokenService("test_key", "")

	app.Use(authStub(42))
	app.Get("/chat/token", s.GetStreamToken)

	req := httptest.NewRequest(http.MethodGet, "/chat/token", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	// The failure detail stays server-side.
	raw, _ := io.ReadAll(resp.Body)
	assert.NotContains(t, string(raw), "stream chat is not configured")
}
