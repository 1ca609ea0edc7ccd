package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/HSouheill/barrim_admin/config"
)

func TestNewSecurityConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want SecurityConfig
	}{
		{
			name: "production with s3 endpoint",
			cfg: config.Config{
				Env:         "production",
				StorageType: "s3",
				PublicURL:   "https://api.barrim.com/api/admin/files",
				S3Endpoint:  "https://files.barrim.com",
			},
			want: SecurityConfig{
				FileOrigins: []string{"https://api.barrim.com", "https://files.barrim.com"},
				HSTS:        true,
			},
		},
		{
			name: "aws without custom endpoint",
			cfg:  config.Config{Env: "production", StorageType: "s3"},
			want: SecurityConfig{
				FileOrigins: []string{"https://*.amazonaws.com"},
				HSTS:        true,
			},
		},
		{
			name: "development local store",
			cfg: config.Config{
				Env:         "development",
				StorageType: "local",
				PublicURL:   "http://localhost:8080",
				S3PublicURL: "http://localhost:8080/files",
			},
			want: SecurityConfig{
				FileOrigins:   []string{"http://localhost:8080"},
				AllowInlineJS: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewSecurityConfig(&tt.cfg))
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	e := echo.New()
	e.Use(SecurityHeadersWithConfig(SecurityConfig{
		FileOrigins: []string{"https://files.barrim.com"},
		HSTS:        true,
	}))
	e.GET("/health", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	h := rec.Header()
	assert.Equal(t, "DENY", h.Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
	assert.NotEmpty(t, h.Get("Strict-Transport-Security"))
	assert.Equal(t,
		"default-src 'self'; img-src 'self' data: blob: https://files.barrim.com; style-src 'self' 'unsafe-inline'; "+
			"script-src 'self'; object-src 'none'; frame-ancestors 'none'; base-uri 'self'",
		h.Get("Content-Security-Policy"))
}

func TestSecurityHeaders_NoHSTSInDevelopment(t *testing.T) {
	e := echo.New()
	e.Use(SecurityHeadersWithConfig(SecurityConfig{AllowInlineJS: true}))
	e.GET("/health", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "script-src 'self' 'unsafe-inline'")
}
