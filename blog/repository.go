package blog

import (
	"context"
	"errors"
	"sort"

	"github.com/rs/zerolog"

	"github.com/raha-io/site/frontmatter"
	"github.com/raha-io/site/markdown"
)

// Repository reads posts from a Store and renders them on demand. All methods
// are read-only and safe for concurrent use when the Store is.
type Repository struct {
	store    Store
	renderer *markdown.Renderer
	logger   zerolog.Logger
}

// NewRepository returns a Repository over store.
func NewRepository(store Store, renderer *markdown.Renderer, logger zerolog.Logger) *Repository {
	return &Repository{store: store, renderer: renderer, logger: logger}
}

// ListSlugs returns the slug of every document in discovery order.
func (r *Repository) ListSlugs(ctx context.Context) ([]string, error) {
	slugs, err := r.store.ListSlugs(ctx)
	if err != nil {
		return nil, err
	}
	if slugs == nil {
		slugs = []string{}
	}
	return slugs, nil
}

// ListPosts returns every valid post ordered by date, newest first. Posts
// sharing a date keep discovery order. Documents that cannot be read, parsed
// or validated are logged and left out.
func (r *Repository) ListPosts(ctx context.Context) ([]Post, error) {
	slugs, err := r.ListSlugs(ctx)
	if err != nil {
		return nil, err
	}
	posts := make([]Post, 0, len(slugs))
	for _, slug := range slugs {
		raw, err := r.store.ReadRaw(ctx, slug)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			if errors.Is(err, ErrNotExist) {
				// Removed between listing and reading.
				continue
			}
			r.logger.Error().Err(err).Str("slug", slug).Msg("skipping unreadable post")
			continue
		}
		post, err := parsePost(slug, raw)
		if err != nil {
			event := r.logger.Error()
			var pe *frontmatter.ParseError
			if errors.As(err, &pe) {
				event = r.logger.Warn()
			}
			event.Err(err).Str("slug", slug).Msg("skipping invalid post")
			continue
		}
		posts = append(posts, post)
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishedAt.After(posts[j].PublishedAt)
	})
	return posts, nil
}

// GetPost returns the post stored under slug with its body rendered to HTML.
// It returns ErrNotFound when no such document exists and a *LoadError when
// it exists but is unusable.
func (r *Repository) GetPost(ctx context.Context, slug string) (PostWithHTML, error) {
	if !ValidSlug(slug) {
		return PostWithHTML{}, ErrNotFound
	}
	raw, err := r.store.ReadRaw(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrNotExist) {
			return PostWithHTML{}, ErrNotFound
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return PostWithHTML{}, ctxErr
		}
		return PostWithHTML{}, &LoadError{Slug: slug, Err: err}
	}
	post, err := parsePost(slug, raw)
	if err != nil {
		return PostWithHTML{}, &LoadError{Slug: slug, Err: err}
	}
	return PostWithHTML{Post: post, HTML: r.renderer.Render(post.Content)}, nil
}
