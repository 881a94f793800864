package locale

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

//go:embed messages/*.yaml
var messageFiles embed.FS

// Catalog holds the translated messages of one locale. Lookups that miss
// fall back to the default locale's catalog and then to the key itself.
type Catalog struct {
	locale   Locale
	messages map[string]any
	fallback *Catalog
}

// Catalogs maps every supported locale to its catalog.
type Catalogs map[Locale]*Catalog

// LoadCatalogs reads the embedded message files for every locale of r.
// A locale without a message file gets an empty catalog that defers to the
// default locale.
func LoadCatalogs(r *Resolver) (Catalogs, error) {
	return loadCatalogs(messageFiles, "messages", r)
}

func loadCatalogs(fsys fs.FS, dir string, r *Resolver) (Catalogs, error) {
	out := make(Catalogs, len(r.locales))
	def, err := readCatalog(fsys, dir, r.def)
	if err != nil {
		return nil, err
	}
	out[r.def] = def
	for _, l := range r.locales {
		if l == r.def {
			continue
		}
		c, err := readCatalog(fsys, dir, l)
		if err != nil {
			return nil, err
		}
		c.fallback = def
		out[l] = c
	}
	return out, nil
}

func readCatalog(fsys fs.FS, dir string, l Locale) (*Catalog, error) {
	c := &Catalog{locale: l, messages: map[string]any{}}
	data, err := fs.ReadFile(fsys, dir+"/"+string(l)+".yaml")
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("locale: read %s messages: %w", l, err)
	}
	if err := yaml.Unmarshal(data, &c.messages); err != nil {
		return nil, fmt.Errorf("locale: parse %s messages: %w", l, err)
	}
	if c.messages == nil {
		c.messages = map[string]any{}
	}
	normalize(c.messages)
	return c, nil
}

// normalize rewrites every string in v to Unicode NFC.
func normalize(v any) any {
	switch val := v.(type) {
	case string:
		return norm.NFC.String(val)
	case map[string]any:
		for k, child := range val {
			val[k] = normalize(child)
		}
	case []any:
		for i, child := range val {
			val[i] = normalize(child)
		}
	}
	return v
}

// For returns the catalog of l, or the default catalog for an unknown locale.
func (cs Catalogs) For(l Locale) *Catalog {
	if c, ok := cs[l]; ok {
		return c
	}
	for _, c := range cs {
		if c.fallback == nil {
			return c
		}
	}
	return &Catalog{locale: l, messages: map[string]any{}}
}

// Locale returns the locale of the catalog.
func (c *Catalog) Locale() Locale { return c.locale }

// Raw returns the value at a dotted key such as "services.items.0.title".
// Numeric segments index into lists.
func (c *Catalog) Raw(key string) (any, bool) {
	for cat := c; cat != nil; cat = cat.fallback {
		if v, ok := lookup(cat.messages, key); ok {
			return v, true
		}
	}
	return nil, false
}

// T returns the string at key, or key itself when it is missing or not a
// string.
func (c *Catalog) T(key string) string {
	for cat := c; cat != nil; cat = cat.fallback {
		if v, ok := lookup(cat.messages, key); ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	return key
}

// Strings returns the list of strings at key.
func (c *Catalog) Strings(key string) []string {
	v, _ := c.Raw(key)
	list, _ := v.([]any)
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Entries returns the list of mappings at key, such as the service cards.
func (c *Catalog) Entries(key string) []Entry {
	v, _ := c.Raw(key)
	list, _ := v.([]any)
	out := make([]Entry, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Entry(m))
		}
	}
	return out
}

// Entry is one mapping from a message list.
type Entry map[string]any

// S returns the string field name, or "".
func (e Entry) S(name string) string {
	s, _ := e[name].(string)
	return s
}

// Strings returns the string list field name.
func (e Entry) Strings(name string) []string {
	list, _ := e[name].([]any)
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func lookup(root map[string]any, key string) (any, bool) {
	var cur any = root
	for _, part := range strings.Split(key, ".") {
		switch node := cur.(type) {
		case map[string]any:
			next, ok := node[part]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, true
}
