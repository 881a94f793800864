// Package frontmatter splits a YAML metadata block from the markdown body of a
// content document.
//
// A document carries front matter when its first line is "---". The block
// runs until the next line that is exactly "---"; everything after that line
// is the body.
package frontmatter

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// Metadata holds the decoded key/value pairs of a front-matter block.
type Metadata map[string]any

// String returns the value stored under key as text, or "" if absent.
// Timestamps decoded by YAML are rendered as RFC 3339 dates.
func (m Metadata) String(key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format("2006-01-02")
		}
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprint(val)
	}
}

// Document is a parsed content document.
type Document struct {
	Metadata Metadata
	Body     string
}

// ParseError reports a malformed front-matter block.
type ParseError struct {
	Line   int // 1-based line of the offending construct, 0 if unknown
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := "frontmatter: " + e.Reason
	if e.Line > 0 {
		msg = fmt.Sprintf("frontmatter: line %d: %s", e.Line, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse splits raw into metadata and body. A document without an opening
// delimiter is returned untouched as the body with empty metadata.
func Parse(raw string) (Document, error) {
	text := strings.TrimPrefix(raw, "\ufeff")
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || !isDelimiter(lines[0]) {
		return Document{Metadata: Metadata{}, Body: raw}, nil
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if isDelimiter(lines[i]) {
			end = i
			break
		}
	}
	if end == -1 {
		return Document{}, &ParseError{Line: 1, Reason: "missing closing " + delimiter}
	}

	block := strings.Join(lines[1:end], "\n")
	meta := Metadata{}
	if strings.TrimSpace(block) != "" {
		if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
			return Document{}, &ParseError{Line: 2, Reason: "invalid metadata", Err: err}
		}
		if meta == nil {
			meta = Metadata{}
		}
	}

	return Document{
		Metadata: meta,
		Body:     strings.Join(lines[end+1:], "\n"),
	}, nil
}

func isDelimiter(line string) bool {
	return strings.TrimRight(line, " \t\r") == delimiter
}
