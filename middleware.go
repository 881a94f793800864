package site

import (
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/raha-io/site/locale"
)

const (
	sessionName      = "site_session"
	sessionLocaleKey = "locale"
	contextLocaleKey = "locale"
)

func (a *App) setupMiddleware() {
	e := a.Echo

	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)

	e.HTTPErrorHandler = a.httpErrorHandler

	e.Pre(middleware.NonWWWRedirect())

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			a.Logger.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("ip", v.RemoteIP).
				Str("user_agent", v.UserAgent).
				Msg("request")
			return nil
		},
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/public/")
		},
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' https: data:; font-src 'self'",
		HSTSMaxAge:            31536000,
		HSTSExcludeSubdomains: false,
	}))

	e.Use(session.Middleware(a.newSessionStore()))

	e.Use(middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		RedirectCode: http.StatusMovedPermanently,
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return strings.HasPrefix(path, "/public") ||
				strings.HasSuffix(path, ".xml") ||
				path == "/robots.txt" || path == "/favicon.svg"
		},
	}))

	e.Use(cacheControlMiddleware)
}

func cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		h := c.Response().Header()
		switch {
		case strings.HasPrefix(path, "/public/"):
			h.Set("Cache-Control", "public, max-age=31536000, immutable")
		case strings.HasSuffix(path, ".xml") || path == "/robots.txt" || path == "/favicon.svg":
			h.Set("Cache-Control", "public, max-age=86400")
		case path == "/" || path == "/blog/" || strings.HasPrefix(path, "/blog/"):
			// Locale negotiation redirects differ per visitor.
			h.Set("Cache-Control", "private, no-cache")
			h.Add("Vary", "Accept-Language, Cookie")
		default:
			h.Set("Cache-Control", "public, max-age=3600")
		}
		return next(c)
	}
}

func (a *App) newSessionStore() *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(a.Config.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60 * 60 * 24 * 365,
		SameSite: http.SameSiteLaxMode,
		Secure:   a.Config.CookieSecure,
	}
	return store
}

// resolveLocale validates the :locale path segment, stores the locale in the
// request context and remembers it as the visitor's preference.
func (a *App) resolveLocale(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l, err := a.Resolver.Resolve(c.Param("locale"))
		if err != nil {
			return echo.ErrNotFound.WithInternal(err)
		}
		c.Set(contextLocaleKey, l)
		if preferredLocale(c) != l {
			if err := rememberLocale(c, l); err != nil {
				a.Logger.Warn().Err(err).Msg("save locale preference")
			}
		}
		return next(c)
	}
}

// preferredLocale returns the locale stored in the visitor's session, or "".
func preferredLocale(c echo.Context) locale.Locale {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return ""
	}
	l, _ := sess.Values[sessionLocaleKey].(string)
	return locale.Locale(l)
}

func rememberLocale(c echo.Context, l locale.Locale) error {
	// A cookie that no longer decodes yields a fresh session plus an error;
	// overwriting it is fine.
	sess, err := session.Get(sessionName, c)
	if sess == nil {
		return err
	}
	sess.Values[sessionLocaleKey] = string(l)
	// The response now carries a per-visitor cookie.
	c.Response().Header().Set("Cache-Control", "private, no-cache")
	return sess.Save(c.Request(), c.Response())
}
