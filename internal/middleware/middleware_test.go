package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sistem-desa/internal/metrics"
)

const secret = "rahasia_test"

func sign(t *testing.T, claims jwt.MapClaims, key string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(Metrics())
	app.Get("/baca", Auth(secret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"role": c.Locals("role"), "nama": c.Locals("nama")})
	})
	app.Post("/tulis", Auth(secret), Role("admin", "operator"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})
	return app
}

func TestAuth(t *testing.T) {
	app := newApp()
	valid := sign(t, jwt.MapClaims{"sub": "1", "nama": "Operator", "role": "viewer", "exp": time.Now().Add(time.Hour).Unix()}, secret)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"tanpa token", "", fiber.StatusUnauthorized},
		{"token valid", "Bearer " + valid, fiber.StatusOK},
		{"kunci salah", "Bearer " + sign(t, jwt.MapClaims{"role": "viewer", "exp": time.Now().Add(time.Hour).Unix()}, "lain"), fiber.StatusUnauthorized},
		{"kadaluwarsa", "Bearer " + sign(t, jwt.MapClaims{"role": "viewer", "exp": time.Now().Add(-time.Hour).Unix()}, secret), fiber.StatusUnauthorized},
		{"tanpa exp", "Bearer " + sign(t, jwt.MapClaims{"role": "viewer"}, secret), fiber.StatusUnauthorized},
		{"sampah", "Bearer abc.def", fiber.StatusUnauthorized},
		{"skema huruf kecil", "bearer " + valid, fiber.StatusOK},
		{"spasi berlebih", "  BEARER   " + valid + " ", fiber.StatusOK},
		{"token tanpa skema", valid, fiber.StatusUnauthorized},
		{"skema lain", "Basic " + valid, fiber.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/baca", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestRole(t *testing.T) {
	app := newApp()
	exp := time.Now().Add(time.Hour).Unix()

	for role, status := range map[string]int{
		"admin":    fiber.StatusCreated,
		"operator": fiber.StatusCreated,
		"viewer":   fiber.StatusForbidden,
	} {
		req := httptest.NewRequest("POST", "/tulis", nil)
		req.Header.Set("Authorization", "Bearer "+sign(t, jwt.MapClaims{"role": role, "exp": exp}, secret))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, status, resp.StatusCode, role)
	}

	// token tanpa claim role
	req := httptest.NewRequest("POST", "/tulis", nil)
	req.Header.Set("Authorization", "Bearer "+sign(t, jwt.MapClaims{"exp": exp}, secret))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestMetrics(t *testing.T) {
	app := newApp()
	before := testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("GET", "/baca", "401"))

	resp, err := app.Test(httptest.NewRequest("GET", "/baca", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	after := testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("GET", "/baca", "401"))
	assert.Equal(t, before+1, after)
}
