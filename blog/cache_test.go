package blog

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type countingStore struct {
	Store
	mu    sync.Mutex
	lists int
	reads map[string]int
}

func (c *countingStore) ListSlugs(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	c.lists++
	c.mu.Unlock()
	return c.Store.ListSlugs(ctx)
}

func (c *countingStore) ReadRaw(ctx context.Context, slug string) ([]byte, error) {
	c.mu.Lock()
	if c.reads == nil {
		c.reads = make(map[string]int)
	}
	c.reads[slug]++
	c.mu.Unlock()
	return c.Store.ReadRaw(ctx, slug)
}

func TestCachedStoreReadThrough(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.md"), []byte("one"), 0o644); err != nil {
		t.Fatal(err)
	}
	src := &countingStore{Store: NewOSDirStore(dir)}
	c := NewCachedStore(src)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := c.ListSlugs(ctx); err != nil {
			t.Fatalf("ListSlugs: %v", err)
		}
		raw, err := c.ReadRaw(ctx, "a")
		if err != nil {
			t.Fatalf("ReadRaw: %v", err)
		}
		if string(raw) != "one" {
			t.Fatalf("ReadRaw = %q", raw)
		}
	}
	if src.lists != 1 || src.reads["a"] != 1 {
		t.Errorf("source hits: lists=%d reads=%d, want 1 and 1", src.lists, src.reads["a"])
	}

	// Callers own the returned bytes.
	raw, _ := c.ReadRaw(ctx, "a")
	raw[0] = 'X'
	if again, _ := c.ReadRaw(ctx, "a"); string(again) != "one" {
		t.Errorf("cache was mutated through returned slice: %q", again)
	}

	if err := os.WriteFile(filepath.Join(dir, "a.md"), []byte("two"), 0o644); err != nil {
		t.Fatal(err)
	}
	c.Invalidate("a")
	raw, err := c.ReadRaw(ctx, "a")
	if err != nil {
		t.Fatalf("ReadRaw: %v", err)
	}
	if string(raw) != "two" {
		t.Errorf("ReadRaw after Invalidate = %q, want %q", raw, "two")
	}
	if _, err := c.ListSlugs(ctx); err != nil {
		t.Fatal(err)
	}
	if src.lists != 2 {
		t.Errorf("lists = %d, want 2 after Invalidate", src.lists)
	}
}

func TestCachedStoreDoesNotCacheMisses(t *testing.T) {
	dir := t.TempDir()
	c := NewCachedStore(NewOSDirStore(dir))
	ctx := context.Background()

	if _, err := c.ReadRaw(ctx, "late"); err == nil {
		t.Fatal("expected error for missing document")
	}
	if err := os.WriteFile(filepath.Join(dir, "late.md"), []byte("here"), 0o644); err != nil {
		t.Fatal(err)
	}
	raw, err := c.ReadRaw(ctx, "late")
	if err != nil {
		t.Fatalf("ReadRaw: %v", err)
	}
	if string(raw) != "here" {
		t.Errorf("ReadRaw = %q", raw)
	}
}

func TestCachedStoreReset(t *testing.T) {
	src := &countingStore{Store: NewOSDirStore(t.TempDir())}
	c := NewCachedStore(src)
	ctx := context.Background()
	c.ListSlugs(ctx)
	c.Reset()
	c.ListSlugs(ctx)
	if src.lists != 2 {
		t.Errorf("lists = %d, want 2", src.lists)
	}
}

func TestWatchInvalidatesChangedFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "post.md")
	if err := os.WriteFile(file, []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}
	c := NewCachedStore(NewOSDirStore(dir))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if raw, err := c.ReadRaw(ctx, "post"); err != nil || string(raw) != "v1" {
		t.Fatalf("ReadRaw = %q, %v", raw, err)
	}

	done := make(chan error, 1)
	go func() { done <- Watch(ctx, dir, c, zerolog.Nop()) }()

	deadline := time.Now().Add(5 * time.Second)
	for {
		// Keep writing until the watcher is registered and reacts.
		if err := os.WriteFile(file, []byte("v2"), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(50 * time.Millisecond)
		raw, err := c.ReadRaw(ctx, "post")
		if err == nil && string(raw) == "v2" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("cache still serves %q after file change", raw)
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("Watch did not return after cancel")
	}
}
