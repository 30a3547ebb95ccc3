package middleware_test

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"kvauth/internal/apperrors"
	"kvauth/internal/middleware"
	"kvauth/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func setupApp() *fiber.App {
	authService := services.NewAuthService(nil, nil, services.AuthConfig{
		JWTSecret:         "test_jwt_secret",
		TokenTTL:          time.Hour,
		StaticBearerToken: "fake_token_for_now_will_work",
	})

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			appErr := apperrors.From(err)
			return c.Status(appErr.Status).JSON(fiber.Map{"code": appErr.Code})
		},
	})
	app.Get("/protected", middleware.AuthRequired(authService), func(c *fiber.Ctx) error {
		username, _ := c.Locals("username").(string)
		return c.JSON(fiber.Map{"username": username})
	})
	return app
}

func do(t *testing.T, app *fiber.App, header string) (int, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestAuthRequired(t *testing.T) {
	app := setupApp()

	status, body := do(t, app, "Bearer fake_token_for_now_will_work")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "", body["username"])

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "alice",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test_jwt_secret"))
	require.NoError(t, err)

	status, body = do(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice", body["username"])

	for _, header := range []string{"", "fake_token_for_now_will_work", "Bearer nope"} {
		status, body = do(t, app, header)
		assert.Equal(t, http.StatusConflict, status, header)
		assert.Equal(t, "INVALID_TOKEN", body["code"], header)
	}
}
