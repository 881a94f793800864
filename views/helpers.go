package views

import (
	"encoding/json"
	"html/template"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/raha-io/site/blog"
	"github.com/raha-io/site/locale"
)

// BuildURL joins path segments onto a base URL, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// LocalePath returns "/{l}/" followed by rel.
func LocalePath(l locale.Locale, rel string) string {
	return "/" + string(l) + "/" + strings.TrimPrefix(rel, "/")
}

// PostPath returns the route of a post in locale l.
func PostPath(l locale.Locale, slug string) string {
	return LocalePath(l, "blog/"+url.PathEscape(slug)+"/")
}

var persianDigits = strings.NewReplacer(
	"0", "۰", "1", "۱", "2", "۲", "3", "۳", "4", "۴",
	"5", "۵", "6", "۶", "7", "۷", "8", "۸", "9", "۹",
)

// FormatDate renders t as YYYY-MM-DD, using Persian digits for Farsi.
func FormatDate(l locale.Locale, t time.Time) string {
	s := t.Format("2006-01-02")
	if locale.DirectionOf(l) == locale.RTL {
		return persianDigits.Replace(s)
	}
	return s
}

// OrganizationJsonLD produces a Schema.org Organization JSON-LD block for the
// marketing pages.
func OrganizationJsonLD(cfg SiteConfig, l locale.Locale) string {
	data := map[string]interface{}{
		"@context":   "https://schema.org",
		"@type":      "Organization",
		"name":       cfg.Name,
		"url":        BuildURL(cfg.URL, string(l)),
		"inLanguage": string(l),
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	return marshalJsonLD(data)
}

// BlogPostingJsonLD produces a Schema.org BlogPosting JSON-LD block for a post.
func BlogPostingJsonLD(cfg SiteConfig, l locale.Locale, post blog.Post) string {
	postURL := BuildURL(cfg.URL, string(l), "blog", post.Slug)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Frontmatter.Title,
		"description":   post.Frontmatter.Description,
		"datePublished": post.PublishedAt.Format("2006-01-02"),
		"url":           postURL,
		"inLanguage":    string(l),
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	return marshalJsonLD(data)
}

func marshalJsonLD(data map[string]interface{}) string {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// jsonLD marks a JSON-LD string built by this package as safe for a script
// element. json.Marshal escapes <, > and &.
func jsonLD(s string) template.JS {
	return template.JS(s)
}
