package site

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/raha-io/site/blog"
	"github.com/raha-io/site/locale"
	"github.com/raha-io/site/views"
)

func (a *App) setupRoutes() {
	e := a.Echo

	e.StaticFS("/public", a.assets)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)

	e.GET("/", a.handleRoot)
	e.GET("/feed.xml", a.handleLegacyRedirect("feed.xml"))
	e.GET("/blog/", a.handleLegacyRedirect("blog/"))
	e.GET("/blog/:slug/", a.handleLegacyPostRedirect)

	g := e.Group("/:locale", a.resolveLocale)
	g.GET("/", a.handleHome)
	g.GET("/blog/", a.handleBlogIndex)
	g.GET("/blog/:slug/", a.handlePost)
	g.GET("/feed.xml", a.handleFeed)
}

func (a *App) handleRoot(c echo.Context) error {
	return c.Redirect(http.StatusFound, views.LocalePath(a.negotiate(c), ""))
}

// handleLegacyRedirect sends un-prefixed URLs to the visitor's locale.
func (a *App) handleLegacyRedirect(rel string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Redirect(http.StatusFound, views.LocalePath(a.negotiate(c), rel))
	}
}

func (a *App) handleLegacyPostRedirect(c echo.Context) error {
	slug, err := slugParam(c)
	if err != nil {
		return echo.ErrNotFound
	}
	return c.Redirect(http.StatusFound, views.PostPath(a.negotiate(c), slug))
}

func (a *App) handleHome(c echo.Context) error {
	l := a.localeOf(c)
	p := a.page(l, "", a.pageTitle(""), "", "website")
	p.JSONLD = views.OrganizationJsonLD(p.Site, l)
	return Render(c, views.Home(p))
}

func (a *App) handleBlogIndex(c echo.Context) error {
	l := a.localeOf(c)
	posts, err := a.Posts.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	cat := a.Catalogs.For(l)
	p := a.page(l, "blog/", a.pageTitle(cat.T("blog.title")), cat.T("blog.subtitle"), "website")
	return Render(c, views.BlogIndex(p, posts))
}

func (a *App) handlePost(c echo.Context) error {
	l := a.localeOf(c)
	slug, err := slugParam(c)
	if err != nil {
		return echo.ErrNotFound
	}
	post, err := a.Posts.GetPost(c.Request().Context(), slug)
	if err != nil {
		return err
	}
	p := a.page(l, "blog/"+url.PathEscape(slug)+"/", a.pageTitle(post.Frontmatter.Title), post.Frontmatter.Description, "article")
	p.JSONLD = views.BlogPostingJsonLD(p.Site, l, post.Post)
	return Render(c, views.BlogPost(p, post))
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Posts.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderRSS(c, a.localeOf(c), posts)
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Posts.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFavicon(c echo.Context) error {
	return echo.StaticFileHandler("favicon.svg", a.assets)(c)
}

// slugParam returns the decoded slug. The router matches on the raw path only
// when the request carries an encoding that differs from the canonical one.
func slugParam(c echo.Context) (string, error) {
	slug := c.Param("slug")
	if c.Request().URL.RawPath == "" {
		return slug, nil
	}
	return url.PathUnescape(slug)
}

func (a *App) handleRobots(c echo.Context) error {
	sitemap := strings.TrimSuffix(a.Config.URL, "/") + "/sitemap.xml"
	return c.String(http.StatusOK, "User-agent: *\nAllow: /\n\nSitemap: "+sitemap+"\n")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	l := a.localeOf(c)

	var he *echo.HTTPError
	isHTTP := errors.As(err, &he)
	if errors.Is(err, blog.ErrNotFound) || errors.Is(err, locale.ErrInvalidLocale) || (isHTTP && he.Code == http.StatusNotFound) {
		p := a.page(l, "", a.pageTitle(a.Catalogs.For(l).T("errors.notFoundTitle")), "", "website")
		if rerr := RenderStatus(c, http.StatusNotFound, views.NotFound(p)); rerr != nil {
			a.Logger.Error().Err(rerr).Msg("render not found page")
		}
		return
	}

	code := http.StatusInternalServerError
	if isHTTP {
		code = he.Code
	}
	if code >= 500 {
		event := a.Logger.Error().Err(err).Str("method", c.Request().Method).Str("uri", c.Request().RequestURI)
		var le *blog.LoadError
		if errors.As(err, &le) {
			event = event.Str("slug", le.Slug)
		}
		event.Msg("server error")
		p := a.page(l, "", a.pageTitle(a.Catalogs.For(l).T("errors.serverTitle")), "", "website")
		if rerr := RenderStatus(c, code, views.ServerError(p)); rerr != nil {
			a.Logger.Error().Err(rerr).Msg("render server error page")
		}
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
