package blog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
)

// DirStore serves documents stored as "<slug>.md" files in one directory of a
// file system. Subdirectories and files with other extensions are ignored.
type DirStore struct {
	fsys fs.FS
	dir  string
}

// NewDirStore returns a store over dir inside fsys. Use "." for the root.
func NewDirStore(fsys fs.FS, dir string) *DirStore {
	return &DirStore{fsys: fsys, dir: path.Clean(dir)}
}

// NewOSDirStore returns a store over a directory on the local disk.
func NewOSDirStore(dir string) *DirStore {
	return NewDirStore(os.DirFS(dir), ".")
}

// ListSlugs returns slugs in directory order, which fs.ReadDir sorts by name.
func (s *DirStore) ListSlugs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := fs.ReadDir(s.fsys, s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("blog: list %s: %w", s.dir, err)
	}
	slugs := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, extension) {
			continue
		}
		slug := strings.TrimSuffix(name, extension)
		if !ValidSlug(slug) {
			continue
		}
		slugs = append(slugs, slug)
	}
	return slugs, nil
}

func (s *DirStore) ReadRaw(ctx context.Context, slug string) ([]byte, error) {
	if err := checkSlug(slug); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(s.fsys, path.Join(s.dir, slug+extension))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotExist
		}
		return nil, fmt.Errorf("blog: read %s: %w", slug, err)
	}
	return data, nil
}
