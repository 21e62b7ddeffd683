package middlewares

import (
	"io"
	"net/http/httptest"
	"testing"

	"taskflow_realtime/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(JWTMiddleware())
	app.Get("/me", func(c *fiber.Ctx) error {
		return c.SendString(MemberID(c))
	})
	return app
}

func TestJWTMiddleware_Query(t *testing.T) {
	tok, err := token.GenerateJWT("u-42", string(token.RoleEmployee), "test")
	require.NoError(t, err)

	resp, err := newApp().Test(httptest.NewRequest("GET", "/me?auth="+tok, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "u-42", string(body))
}

func TestJWTMiddleware_BearerHeader(t *testing.T) {
	tok, err := token.GenerateJWT("u-7", string(token.RoleAdmin), "test")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := newApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestJWTMiddleware_Missing(t *testing.T) {
	resp, err := newApp().Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTMiddleware_Invalid(t *testing.T) {
	resp, err := newApp().Test(httptest.NewRequest("GET", "/me?auth=bogus", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
