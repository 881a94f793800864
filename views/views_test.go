package views

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	"github.com/raha-io/site/blog"
	"github.com/raha-io/site/locale"
)

func testPage(t *testing.T, l locale.Locale) Page {
	t.Helper()
	r, err := locale.NewResolver([]string{"en", "fa"}, "en")
	if err != nil {
		t.Fatal(err)
	}
	cats, err := locale.LoadCatalogs(r)
	if err != nil {
		t.Fatal(err)
	}
	cfg := SiteConfig{Name: "Raha IO", URL: "https://example.com"}
	var alts []Alternate
	for _, alt := range r.Locales() {
		alts = append(alts, Alternate{
			Locale: alt,
			Label:  LocaleLabel(cats, alt),
			Path:   LocalePath(alt, ""),
			URL:    BuildURL(cfg.URL, string(alt)),
		})
	}
	return Page{
		Site:       cfg,
		Meta:       PageMeta{Title: "Test", URL: BuildURL(cfg.URL, string(l)), OGType: "website"},
		State:      r.State(l),
		Catalog:    cats.For(l),
		Alternates: alts,
		JSONLD:     OrganizationJsonLD(cfg, l),
		Now:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestHomeDirectionAndLang(t *testing.T) {
	tests := []struct {
		locale locale.Locale
		want   []string
	}{
		{"en", []string{`lang="en"`, `dir="ltr"`, `hreflang="fa"`, `href="/fa/"`, `href="/en/blog/"`}},
		{"fa", []string{`lang="fa"`, `dir="rtl"`, `hreflang="en"`, `href="/en/"`, `href="/fa/blog/"`}},
	}
	for _, tt := range tests {
		out := render(t, Home(testPage(t, tt.locale)))
		for _, want := range tt.want {
			if !strings.Contains(out, want) {
				t.Errorf("%s home missing %s", tt.locale, want)
			}
		}
		if !strings.Contains(out, `<script type="application/ld+json">{"@context":"https://schema.org"`) {
			t.Errorf("%s home missing JSON-LD block", tt.locale)
		}
	}
}

func TestBlogIndex(t *testing.T) {
	posts := []blog.Post{
		{Slug: "b", Frontmatter: blog.Frontmatter{Title: "B <title>", Description: "About B"}, PublishedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{Slug: "a", Frontmatter: blog.Frontmatter{Title: "A"}, PublishedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	out := render(t, BlogIndex(testPage(t, "en"), posts))
	for _, want := range []string{`href="/en/blog/b/"`, "B &lt;title&gt;", "About B", `datetime="2024-02-01"`} {
		if !strings.Contains(out, want) {
			t.Errorf("listing missing %q", want)
		}
	}
	if strings.Index(out, `/en/blog/b/`) > strings.Index(out, `/en/blog/a/`) {
		t.Error("listing does not keep the given order")
	}

	fa := render(t, BlogIndex(testPage(t, "fa"), posts))
	if !strings.Contains(fa, "۲۰۲۴-۰۲-۰۱") {
		t.Error("fa listing does not use Persian digits")
	}
}

func TestBlogIndexEmpty(t *testing.T) {
	out := render(t, BlogIndex(testPage(t, "en"), nil))
	if !strings.Contains(out, "No posts yet.") {
		t.Errorf("empty listing missing placeholder")
	}
}

func TestBlogPostEmbedsRenderedHTML(t *testing.T) {
	post := blog.PostWithHTML{
		Post: blog.Post{Slug: "a", Frontmatter: blog.Frontmatter{Title: "Hello"}, PublishedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		HTML: "<p><strong>bold</strong></p>",
	}
	out := render(t, BlogPost(testPage(t, "en"), post))
	if !strings.Contains(out, "<p><strong>bold</strong></p>") {
		t.Errorf("post body was escaped: %s", out)
	}
	if !strings.Contains(out, "<h1>Hello</h1>") {
		t.Error("post title missing")
	}
}

func TestErrorPages(t *testing.T) {
	if out := render(t, NotFound(testPage(t, "en"))); !strings.Contains(out, "Page not found") {
		t.Error("not found page missing title")
	}
	if out := render(t, ServerError(testPage(t, "fa"))); !strings.Contains(out, "خطایی رخ داد") {
		t.Error("fa server error page missing title")
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base string
		segs []string
		want string
	}{
		{"https://example.com", nil, "https://example.com"},
		{"https://example.com", []string{"en", "blog", "a"}, "https://example.com/en/blog/a/"},
		{"https://example.com/site/", []string{"fa"}, "https://example.com/site/fa/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segs...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segs, got, tt.want)
		}
	}
}

func TestBlogPostingJsonLD(t *testing.T) {
	post := blog.Post{Slug: "a", Frontmatter: blog.Frontmatter{Title: "</script>"}, PublishedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	got := BlogPostingJsonLD(SiteConfig{Name: "Raha IO", URL: "https://example.com"}, "fa", post)
	if strings.Contains(got, "</script>") {
		t.Errorf("JSON-LD not escaped: %s", got)
	}
	if !strings.Contains(got, `"url":"https://example.com/fa/blog/a/"`) {
		t.Errorf("JSON-LD url wrong: %s", got)
	}
}
