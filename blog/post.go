package blog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/raha-io/site/frontmatter"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = errors.New("blog: post not found")

// Frontmatter is the metadata block of a post.
type Frontmatter struct {
	Title       string
	Date        string
	Description string
}

// Post is a parsed blog post without rendered HTML.
type Post struct {
	Slug        string
	Frontmatter Frontmatter
	Content     string
	// PublishedAt is Frontmatter.Date parsed in UTC; it orders the listing.
	PublishedAt time.Time
}

// PostWithHTML is a Post plus its rendered body.
type PostWithHTML struct {
	Post
	HTML string
}

// LoadError reports a post that exists but cannot be read, parsed or
// validated.
type LoadError struct {
	Slug string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("blog: load %s: %v", e.Slug, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// parsePost turns a raw document into a Post. Missing titles and missing or
// unparseable dates are reported as *frontmatter.ParseError.
func parsePost(slug string, raw []byte) (Post, error) {
	doc, err := frontmatter.Parse(string(raw))
	if err != nil {
		return Post{}, err
	}
	fm := Frontmatter{
		Title:       strings.TrimSpace(doc.Metadata.String("title")),
		Date:        strings.TrimSpace(doc.Metadata.String("date")),
		Description: strings.TrimSpace(doc.Metadata.String("description")),
	}
	if fm.Title == "" {
		return Post{}, &frontmatter.ParseError{Reason: "missing title"}
	}
	if fm.Date == "" {
		return Post{}, &frontmatter.ParseError{Reason: "missing date"}
	}
	published, err := dateparse.ParseIn(fm.Date, time.UTC)
	if err != nil {
		return Post{}, &frontmatter.ParseError{Reason: fmt.Sprintf("invalid date %q", fm.Date), Err: err}
	}
	return Post{
		Slug:        slug,
		Frontmatter: fm,
		Content:     doc.Body,
		PublishedAt: published,
	}, nil
}
