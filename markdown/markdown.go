// Package markdown renders post bodies to HTML that is safe to embed in a page
// as-is. Raw HTML in the source is dropped and link destinations are limited
// to a small set of schemes.
package markdown

import (
	"bytes"
	"context"
	"html"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Renderer converts markdown to sanitized HTML. It is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// New returns a Renderer with GitHub-flavoured extensions enabled.
func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(
				util.Prioritized(&linkPolicy{}, 100),
			),
		),
		// Without html.WithUnsafe raw HTML is replaced by a comment.
		goldmark.WithRendererOptions(
			gmhtml.WithXHTML(),
		),
	)
	return &Renderer{md: md}
}

// Render converts body to HTML. Conversion errors cannot occur when writing to
// a bytes.Buffer; if one ever does, the escaped source is returned instead.
func (r *Renderer) Render(body string) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(body), &buf); err != nil {
		return "<pre>" + html.EscapeString(body) + "</pre>"
	}
	return buf.String()
}

// Component returns a templ.Component that writes the rendered body.
func (r *Renderer) Component(body string) templ.Component {
	return HTML(r.Render(body))
}

// HTML wraps already-rendered output of Render as a templ.Component.
func HTML(rendered string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, rendered)
		return err
	})
}

// linkPolicy rewrites link and image destinations after parsing:
// unsafe destinations are removed and relative links to sibling markdown
// documents are pointed at the sibling post route.
type linkPolicy struct{}

func (p *linkPolicy) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()
	var unwrap []ast.Node
	var autolinks []*ast.AutoLink
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Link:
			dest := SafeURL(string(node.Destination))
			if dest == "" {
				unwrap = append(unwrap, node)
				return ast.WalkContinue, nil
			}
			node.Destination = []byte(siblingPost(dest))
		case *ast.Image:
			dest := SafeURL(string(node.Destination))
			if dest == "" {
				unwrap = append(unwrap, node)
				return ast.WalkContinue, nil
			}
			node.Destination = []byte(dest)
		case *ast.AutoLink:
			if SafeURL(string(node.URL(source))) == "" {
				autolinks = append(autolinks, node)
			}
		}
		return ast.WalkContinue, nil
	})

	// Unsafe links and images keep their text (or alt text) without a
	// destination.
	for _, n := range unwrap {
		parent := n.Parent()
		if parent == nil {
			continue
		}
		for child := n.FirstChild(); child != nil; {
			next := child.NextSibling()
			parent.InsertBefore(parent, n, child)
			child = next
		}
		parent.RemoveChild(parent, n)
	}
	for _, n := range autolinks {
		parent := n.Parent()
		if parent == nil {
			continue
		}
		parent.ReplaceChild(parent, n, ast.NewString(n.Label(source)))
	}
}

// SafeURL returns raw if it is a relative reference or uses one of the
// http, https, mailto or tel schemes, and "" otherwise. Character references
// are resolved before checking, as the HTML renderer resolves them on output.
func SafeURL(raw string) string {
	val := strings.TrimSpace(raw)
	if val == "" {
		return ""
	}
	probe := strings.TrimSpace(html.UnescapeString(val))
	if probe == "" {
		return ""
	}
	if strings.HasPrefix(probe, "/") || strings.HasPrefix(probe, "#") || strings.HasPrefix(probe, "?") {
		if strings.HasPrefix(probe, "//") {
			return schemeURL(val, probe, "https:"+probe)
		}
		return val
	}
	return schemeURL(val, probe, probe)
}

func schemeURL(val, probe, parse string) string {
	parsed, err := url.Parse(parse)
	if err != nil {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "":
		// Relative path such as "images/a.png"; reject anything that looks
		// like an obfuscated scheme ("java\tscript:").
		if strings.ContainsAny(probe, ":\t\n\r") && !strings.HasPrefix(probe, "./") && !strings.HasPrefix(probe, "../") {
			return ""
		}
		return val
	case "http", "https", "mailto", "tel":
		return val
	default:
		return ""
	}
}

// siblingPost maps a relative link to another markdown document, such as
// "other-post.md#setup", onto the route of that post ("../other-post/#setup").
// Posts are served at /{locale}/blog/{slug}/, so siblings are one level up.
func siblingPost(dest string) string {
	u, err := url.Parse(dest)
	if err != nil || u.Scheme != "" || u.Host != "" || strings.HasPrefix(u.Path, "/") {
		return dest
	}
	if !strings.HasSuffix(u.Path, ".md") {
		return dest
	}
	slug := strings.TrimSuffix(path.Base(u.Path), ".md")
	if slug == "" || slug == "." {
		return dest
	}
	out := "../" + url.PathEscape(slug) + "/"
	if u.RawQuery != "" {
		out += "?" + u.RawQuery
	}
	if u.Fragment != "" {
		out += "#" + u.EscapedFragment()
	}
	return out
}
