package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func protectedEcho(allowed ...string) *echo.Echo {
	e := echo.New()
	g := e.Group("/api/admin")
	g.Use(JWTMiddleware(testSecret))
	g.Use(RequireUserType(allowed...))
	g.GET("/me", func(c echo.Context) error {
		id, err := ExtractAdminID(c)
		if err != nil {
			return err
		}
		return c.String(http.StatusOK, id+"|"+ExtractUserType(c))
	})
	return e
}

func TestJWTMiddleware_AcceptsValidToken(t *testing.T) {
	token, err := GenerateJWT(testSecret, "admin-1", "a@example.com", "admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	protectedEcho("admin").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin-1|admin", rec.Body.String())
}

func TestJWTMiddleware_TokenQueryParam(t *testing.T) {
	token, err := GenerateJWT(testSecret, "admin-1", "a@example.com", "admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/me?token="+token, nil)
	rec := httptest.NewRecorder()
	protectedEcho("admin").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTMiddleware_RejectsBadTokens(t *testing.T) {
	foreign, err := GenerateJWT("other-secret", "admin-1", "a@example.com", "admin")
	require.NoError(t, err)

	for name, header := range map[string]string{
		"missing":      "",
		"wrong secret": "Bearer " + foreign,
		"garbage":      "Bearer not.a.token",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
			if header != "" {
				req.Header.Set(echo.HeaderAuthorization, header)
			}
			rec := httptest.NewRecorder()
			protectedEcho("admin").ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRequireUserType_Forbidden(t *testing.T) {
	token, err := GenerateJWT(testSecret, "user-1", "u@example.com", "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	protectedEcho("admin").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGenerateJWT_RequiresSecret(t *testing.T) {
	_, err := GenerateJWT("", "admin-1", "a@example.com", "admin")
	assert.Error(t, err)
}
