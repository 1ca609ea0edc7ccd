// middleware/security_headers.go
package middleware

import (
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/HSouheill/barrim_admin/config"
)

// SecurityConfig drives the headers set on every admin API response.
// FileOrigins are the hosts previews and downloads are served from.
type SecurityConfig struct {
	FileOrigins   []string
	AllowInlineJS bool
	HSTS          bool
}

// NewSecurityConfig derives the header policy from the service config. The
// file store origin is allowed for images; HSTS is off in development.
func NewSecurityConfig(cfg *config.Config) SecurityConfig {
	var origins []string
	for _, raw := range []string{cfg.PublicURL, cfg.S3PublicURL, cfg.S3Endpoint} {
		if origin := originOf(raw); origin != "" {
			origins = appendUnique(origins, origin)
		}
	}
	if cfg.StorageType == "s3" && cfg.S3Endpoint == "" && cfg.S3PublicURL == "" {
		origins = appendUnique(origins, "https://*.amazonaws.com")
	}

	return SecurityConfig{
		FileOrigins:   origins,
		AllowInlineJS: cfg.IsDevelopment(),
		HSTS:          !cfg.IsDevelopment(),
	}
}

func SecurityHeadersWithConfig(sc SecurityConfig) echo.MiddlewareFunc {
	csp := buildCSP(sc)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("X-Frame-Options", "DENY")
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("Content-Security-Policy", csp)
			h.Set("Referrer-Policy", "no-referrer")
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
			if sc.HSTS {
				h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}
			h.Del("Server")
			h.Del("X-Powered-By")
			return next(c)
		}
	}
}

func buildCSP(sc SecurityConfig) string {
	img := "img-src 'self' data: blob:"
	if len(sc.FileOrigins) > 0 {
		img += " " + strings.Join(sc.FileOrigins, " ")
	}

	script := "script-src 'self'"
	if sc.AllowInlineJS {
		script += " 'unsafe-inline'"
	}

	return strings.Join([]string{
		"default-src 'self'",
		img,
		"style-src 'self' 'unsafe-inline'",
		script,
		"object-src 'none'",
		"frame-ancestors 'none'",
		"base-uri 'self'",
	}, "; ")
}

// originOf returns scheme://host of a URL, or "" when it has neither
func originOf(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
