package site

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/raha-io/site/locale"
	"github.com/raha-io/site/views"
)

// localeOf returns the locale of the current request: the one set by
// resolveLocale, else the first path segment if it names a locale, else the
// default.
func (a *App) localeOf(c echo.Context) locale.Locale {
	if l, ok := c.Get(contextLocaleKey).(locale.Locale); ok {
		return l
	}
	first, _, _ := strings.Cut(strings.TrimPrefix(c.Request().URL.Path, "/"), "/")
	if l, err := a.Resolver.Resolve(first); err == nil {
		return l
	}
	return a.Resolver.Default()
}

// negotiate picks the locale for an un-prefixed URL: the stored preference if
// it is still supported, else the Accept-Language header.
func (a *App) negotiate(c echo.Context) locale.Locale {
	if pref := preferredLocale(c); pref != "" {
		if l, err := a.Resolver.Resolve(string(pref)); err == nil {
			return l
		}
	}
	return a.Resolver.DetectHeader(c.Request().Header.Get("Accept-Language"))
}

func (a *App) viewsConfig(l locale.Locale) views.SiteConfig {
	desc := a.Config.Description
	if desc == "" {
		desc = a.Catalogs.For(l).T("site.description")
	}
	return views.SiteConfig{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: desc,
		Author:      a.Config.Author,
	}
}

// page builds the template data for the page at rel (relative to the locale
// root, e.g. "blog/") in locale l.
func (a *App) page(l locale.Locale, rel, title, description, ogType string) views.Page {
	cfg := a.viewsConfig(l)
	if description == "" {
		description = cfg.Description
	}
	alts := make([]views.Alternate, 0, len(a.Resolver.Locales()))
	for _, alt := range a.Resolver.Locales() {
		alts = append(alts, views.Alternate{
			Locale: alt,
			Label:  views.LocaleLabel(a.Catalogs, alt),
			Path:   views.LocalePath(alt, rel),
			URL:    views.BuildURL(cfg.URL, string(alt), rel),
		})
	}
	return views.Page{
		Site: cfg,
		Meta: views.PageMeta{
			Title:       title,
			Description: description,
			URL:         views.BuildURL(cfg.URL, string(l), rel),
			OGType:      ogType,
		},
		State:      a.Resolver.State(l),
		Catalog:    a.Catalogs.For(l),
		Alternates: alts,
	}
}

// pageTitle formats "<title> | <site name>".
func (a *App) pageTitle(title string) string {
	if title == "" {
		return a.Config.Name
	}
	return title + " | " + a.Config.Name
}
