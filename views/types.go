package views

import (
	"time"

	"github.com/raha-io/site/locale"
)

// SiteConfig holds site-wide settings populated from environment variables.
// Every handler passes this to templates so nothing is hardcoded.
type SiteConfig struct {
	Name        string // SITE_NAME
	URL         string // SITE_URL
	Description string // SITE_DESCRIPTION
	Author      string // SITE_AUTHOR
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

// Alternate is the same page in another locale.
type Alternate struct {
	Locale locale.Locale
	Label  string
	Path   string
	URL    string
}

// Page is the data every template receives.
type Page struct {
	Site       SiteConfig
	Meta       PageMeta
	State      locale.State
	Catalog    *locale.Catalog
	Alternates []Alternate
	JSONLD     string
	Now        time.Time
}

func (p Page) Lang() string { return string(p.State.Active) }

func (p Page) Dir() string { return string(p.State.Direction) }

// T translates key in the page locale.
func (p Page) T(key string) string { return p.Catalog.T(key) }

func (p Page) Entries(key string) []locale.Entry { return p.Catalog.Entries(key) }

func (p Page) Strings(key string) []string { return p.Catalog.Strings(key) }

// Href returns the site-relative path of rel under the page locale.
func (p Page) Href(rel string) string {
	return LocalePath(p.State.Active, rel)
}

func (p Page) Year() int {
	if p.Now.IsZero() {
		return time.Now().Year()
	}
	return p.Now.Year()
}

// FormatDate renders t as a calendar date in the page locale.
func (p Page) FormatDate(t time.Time) string {
	return FormatDate(p.State.Active, t)
}
