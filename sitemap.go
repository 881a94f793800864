package site

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/raha-io/site/blog"
	"github.com/raha-io/site/views"
)

type sitemapURLSet struct {
	XMLName    xml.Name     `xml:"urlset"`
	XMLNS      string       `xml:"xmlns,attr"`
	XMLNSXHTML string       `xml:"xmlns:xhtml,attr"`
	URLs       []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string             `xml:"loc"`
	LastMod    string             `xml:"lastmod,omitempty"`
	Alternates []sitemapXHTMLLink `xml:"xhtml:link"`
}

type sitemapXHTMLLink struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// renderSitemap lists the home page, the blog index and every post once per
// locale, each entry linking its translations.
func (a *App) renderSitemap(c echo.Context, posts []blog.Post) error {
	base := a.Config.URL
	type page struct {
		rel     string
		lastMod string
	}
	pages := []page{{rel: ""}, {rel: "blog/"}}
	for _, p := range posts {
		pages = append(pages, page{
			rel:     "blog/" + p.Slug + "/",
			lastMod: p.PublishedAt.Format("2006-01-02"),
		})
	}

	locales := a.Resolver.Locales()
	urls := make([]sitemapURL, 0, len(pages)*len(locales))
	for _, p := range pages {
		alts := make([]sitemapXHTMLLink, 0, len(locales))
		for _, l := range locales {
			alts = append(alts, sitemapXHTMLLink{
				Rel:      "alternate",
				Hreflang: string(l),
				Href:     views.BuildURL(base, string(l), p.rel),
			})
		}
		for _, l := range locales {
			urls = append(urls, sitemapURL{
				Loc:        views.BuildURL(base, string(l), p.rel),
				LastMod:    p.lastMod,
				Alternates: alts,
			})
		}
	}
	sitemap := sitemapURLSet{
		XMLNS:      "http://www.sitemaps.org/schemas/sitemap/0.9",
		XMLNSXHTML: "http://www.w3.org/1999/xhtml",
		URLs:       urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
