// Package views renders the site pages. Pages are html/template files embedded
// in the binary and exposed as templ components, so handlers and tests work
// with a single component type.
package views

import (
	"embed"
	"html/template"

	"github.com/a-h/templ"

	"github.com/raha-io/site/blog"
	"github.com/raha-io/site/locale"
)

//go:embed templates/*.html
var templateFiles embed.FS

var funcs = template.FuncMap{
	"jsonLD":   jsonLD,
	"postPath": PostPath,
	"add":      func(a, b int) int { return a + b },
}

// pages maps a page file to the layout combined with that page.
var pages = parsePages("home.html", "blog_index.html", "blog_post.html", "error.html")

func parsePages(names ...string) map[string]*template.Template {
	base := template.Must(template.New("layout.html").Funcs(funcs).ParseFS(templateFiles, "templates/layout.html"))
	out := make(map[string]*template.Template, len(names))
	for _, name := range names {
		t := template.Must(base.Clone())
		out[name] = template.Must(t.ParseFS(templateFiles, "templates/"+name))
	}
	return out
}

type blogIndexData struct {
	Page
	Posts []blog.Post
}

type blogPostData struct {
	Page
	Post blog.PostWithHTML
	Body template.HTML
}

type errorData struct {
	Page
	Title string
	Body  string
}

// Home renders the marketing landing page.
func Home(p Page) templ.Component {
	return templ.FromGoHTML(pages["home.html"], p)
}

// BlogIndex renders the post listing.
func BlogIndex(p Page, posts []blog.Post) templ.Component {
	return templ.FromGoHTML(pages["blog_index.html"], blogIndexData{Page: p, Posts: posts})
}

// BlogPost renders one post. post.HTML is trusted output of the markdown
// renderer.
func BlogPost(p Page, post blog.PostWithHTML) templ.Component {
	return templ.FromGoHTML(pages["blog_post.html"], blogPostData{
		Page: p,
		Post: post,
		Body: template.HTML(post.HTML),
	})
}

// NotFound renders the 404 page.
func NotFound(p Page) templ.Component {
	return templ.FromGoHTML(pages["error.html"], errorData{
		Page:  p,
		Title: p.T("errors.notFoundTitle"),
		Body:  p.T("errors.notFoundBody"),
	})
}

// ServerError renders the 500 page.
func ServerError(p Page) templ.Component {
	return templ.FromGoHTML(pages["error.html"], errorData{
		Page:  p,
		Title: p.T("errors.serverTitle"),
		Body:  p.T("errors.serverBody"),
	})
}

// LocaleLabel is the display name of l in its own language.
func LocaleLabel(cats locale.Catalogs, l locale.Locale) string {
	return cats.For(l).T("locale.name")
}
