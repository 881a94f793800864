package blog

import (
	"context"
	"sync"
)

// CachedStore is a read-through cache in front of another Store. Entries never
// expire on their own; Invalidate and Reset drop them when the source changes.
type CachedStore struct {
	src Store

	mu    sync.RWMutex
	slugs []string
	docs  map[string][]byte
}

// NewCachedStore wraps src.
func NewCachedStore(src Store) *CachedStore {
	return &CachedStore{src: src, docs: make(map[string][]byte)}
}

func (c *CachedStore) ListSlugs(ctx context.Context) ([]string, error) {
	c.mu.RLock()
	if c.slugs != nil {
		out := append([]string(nil), c.slugs...)
		c.mu.RUnlock()
		return out, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.slugs == nil {
		slugs, err := c.src.ListSlugs(ctx)
		if err != nil {
			return nil, err
		}
		if slugs == nil {
			slugs = []string{}
		}
		c.slugs = slugs
	}
	return append([]string{}, c.slugs...), nil
}

// ReadRaw caches successful reads only; misses and errors go to the source
// every time.
func (c *CachedStore) ReadRaw(ctx context.Context, slug string) ([]byte, error) {
	c.mu.RLock()
	if raw, ok := c.docs[slug]; ok {
		c.mu.RUnlock()
		return append([]byte(nil), raw...), nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if raw, ok := c.docs[slug]; ok {
		return append([]byte(nil), raw...), nil
	}
	raw, err := c.src.ReadRaw(ctx, slug)
	if err != nil {
		return nil, err
	}
	c.docs[slug] = raw
	return append([]byte(nil), raw...), nil
}

// Invalidate drops the cached document for slug and the slug list.
func (c *CachedStore) Invalidate(slug string) {
	c.mu.Lock()
	delete(c.docs, slug)
	c.slugs = nil
	c.mu.Unlock()
}

// Reset clears the cache so the next read triggers a fresh load.
func (c *CachedStore) Reset() {
	c.mu.Lock()
	c.docs = make(map[string][]byte)
	c.slugs = nil
	c.mu.Unlock()
}
