package site

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/raha-io/site/blog"
	"github.com/raha-io/site/locale"
	"github.com/raha-io/site/views"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Language    string    `xml:"language"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// renderRSS writes the listing of locale l as an RSS 2.0 feed, newest first.
func (a *App) renderRSS(c echo.Context, l locale.Locale, posts []blog.Post) error {
	cfg := a.viewsConfig(l)
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		postURL := views.BuildURL(cfg.URL, string(l), "blog", p.Slug)
		items = append(items, rssItem{
			Title:       p.Frontmatter.Title,
			Link:        postURL,
			Description: p.Frontmatter.Description,
			PubDate:     p.PublishedAt.Format(time.RFC1123Z),
			GUID:        postURL,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       cfg.Name + " | " + a.Catalogs.For(l).T("blog.title"),
			Link:        views.BuildURL(cfg.URL, string(l), "blog"),
			Description: cfg.Description,
			Language:    string(l),
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}
