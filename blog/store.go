// Package blog loads markdown posts from a content store and exposes them as
// a date-ordered listing and as individually rendered pages.
package blog

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotExist is returned by a Store when no document is stored under a slug.
var ErrNotExist = errors.New("blog: document does not exist")

// Store is a read-only collection of raw markdown documents keyed by slug.
type Store interface {
	// ListSlugs returns every slug in discovery order. A missing or empty
	// store yields an empty slice and no error.
	ListSlugs(ctx context.Context) ([]string, error)
	// ReadRaw returns the raw bytes of one document, or ErrNotExist.
	ReadRaw(ctx context.Context, slug string) ([]byte, error)
}

const extension = ".md"

// ValidSlug reports whether s can name a document: non-empty, no path
// separators, no leading dot.
func ValidSlug(s string) bool {
	if s == "" || strings.HasPrefix(s, ".") {
		return false
	}
	return !strings.ContainsAny(s, "/\\\x00")
}

func checkSlug(slug string) error {
	if !ValidSlug(slug) {
		return fmt.Errorf("blog: invalid slug %q: %w", slug, ErrNotExist)
	}
	return nil
}
