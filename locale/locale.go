// Package locale resolves the active locale of a request and exposes the
// translated strings for it.
package locale

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// ErrInvalidLocale is returned when a token does not name a supported locale.
var ErrInvalidLocale = errors.New("locale: invalid locale")

// Locale is a supported locale identifier such as "en" or "fa".
type Locale string

func (l Locale) String() string { return string(l) }

// Direction is the text direction of a locale.
type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

// State is the locale a page is rendered in.
type State struct {
	Active    Locale
	Direction Direction
}

// Resolver holds the fixed set of supported locales. It is immutable after
// construction and safe for concurrent use.
type Resolver struct {
	locales []Locale
	bases   []language.Base
	def     Locale
}

// NewResolver validates locales and def. The set must be non-empty, free of
// duplicates, made of well-formed language tags, and contain def.
func NewResolver(locales []string, def string) (*Resolver, error) {
	if len(locales) == 0 {
		return nil, errors.New("locale: no locales configured")
	}
	r := &Resolver{}
	seen := make(map[string]bool, len(locales))
	for _, raw := range locales {
		token := strings.TrimSpace(raw)
		tag, err := language.Parse(token)
		if err != nil {
			return nil, fmt.Errorf("locale: %q: %w", token, err)
		}
		if seen[token] {
			return nil, fmt.Errorf("locale: duplicate locale %q", token)
		}
		seen[token] = true
		base, _ := tag.Base()
		r.locales = append(r.locales, Locale(token))
		r.bases = append(r.bases, base)
	}
	def = strings.TrimSpace(def)
	if !seen[def] {
		return nil, fmt.Errorf("locale: default %q is not one of %v", def, locales)
	}
	r.def = Locale(def)
	return r, nil
}

// Default returns the default locale.
func (r *Resolver) Default() Locale { return r.def }

// Locales returns the supported locales in configuration order.
func (r *Resolver) Locales() []Locale {
	return append([]Locale(nil), r.locales...)
}

// Resolve returns the locale named exactly by token.
func (r *Resolver) Resolve(token string) (Locale, error) {
	for _, l := range r.locales {
		if string(l) == token {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLocale, token)
}

// Detect returns the first supported locale whose base language matches one
// of tags, in order, and the default when none does.
func (r *Resolver) Detect(tags []string) Locale {
	for _, raw := range tags {
		tag, err := language.Parse(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		if l, ok := r.match(tag); ok {
			return l
		}
	}
	return r.def
}

// DetectHeader picks a locale from an Accept-Language header value, honouring
// its quality weights.
func (r *Resolver) DetectHeader(acceptLanguage string) Locale {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil {
		return r.def
	}
	for _, tag := range tags {
		if l, ok := r.match(tag); ok {
			return l
		}
	}
	return r.def
}

func (r *Resolver) match(tag language.Tag) (Locale, bool) {
	// Anything below Exact is a guess, e.g. "und" guessing "en".
	base, conf := tag.Base()
	if conf != language.Exact {
		return "", false
	}
	for i, b := range r.bases {
		if b == base {
			return r.locales[i], true
		}
	}
	return "", false
}

// State returns the render state for l.
func (r *Resolver) State(l Locale) State {
	return State{Active: l, Direction: DirectionOf(l)}
}

// DirectionOf returns RTL for Farsi and LTR for every other locale.
func DirectionOf(l Locale) Direction {
	tag, err := language.Parse(string(l))
	if err != nil {
		return LTR
	}
	if base, _ := tag.Base(); base.String() == "fa" {
		return RTL
	}
	return LTR
}
