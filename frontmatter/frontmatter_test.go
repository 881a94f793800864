package frontmatter

import (
	"errors"
	"testing"
)

func TestParseWithoutFrontMatter(t *testing.T) {
	tests := []string{
		"",
		"# Title\n\nBody text",
		"plain text without newline",
		"\n---\ntitle: late\n---\n",
		"-- \nnot a delimiter",
		"----\nfour dashes",
	}
	for _, raw := range tests {
		doc, err := Parse(raw)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", raw, err)
		}
		if doc.Body != raw {
			t.Errorf("Parse(%q).Body = %q, want input unchanged", raw, doc.Body)
		}
		if len(doc.Metadata) != 0 {
			t.Errorf("Parse(%q).Metadata = %v, want empty", raw, doc.Metadata)
		}
	}
}

func TestParseSplitsMetadataAndBody(t *testing.T) {
	raw := "---\ntitle: Hello World\ndate: 2024-06-01\ndescription: \"A short intro\"\n---\n# Heading\n\nBody.\n"
	doc, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got := doc.Metadata.String("title"); got != "Hello World" {
		t.Errorf("title = %q", got)
	}
	if got := doc.Metadata.String("date"); got != "2024-06-01" {
		t.Errorf("date = %q", got)
	}
	if got := doc.Metadata.String("description"); got != "A short intro" {
		t.Errorf("description = %q", got)
	}
	if doc.Body != "# Heading\n\nBody.\n" {
		t.Errorf("Body = %q", doc.Body)
	}
}

func TestParseEmptyBlock(t *testing.T) {
	doc, err := Parse("---\n---\nbody")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(doc.Metadata) != 0 {
		t.Errorf("Metadata = %v, want empty", doc.Metadata)
	}
	if doc.Body != "body" {
		t.Errorf("Body = %q, want %q", doc.Body, "body")
	}
}

func TestParseCRLFAndBOM(t *testing.T) {
	raw := "\ufeff---\r\ntitle: Windows\r\n---\r\nLine one\r\n"
	doc, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got := doc.Metadata.String("title"); got != "Windows" {
		t.Errorf("title = %q", got)
	}
	if doc.Body != "Line one\r\n" {
		t.Errorf("Body = %q", doc.Body)
	}
}

func TestParseNonStringValues(t *testing.T) {
	doc, err := Parse("---\ntitle: 2024\ndraft: true\ntags: [go, web]\n---\n")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got := doc.Metadata.String("title"); got != "2024" {
		t.Errorf("title = %q, want %q", got, "2024")
	}
	if got := doc.Metadata.String("draft"); got != "true" {
		t.Errorf("draft = %q, want %q", got, "true")
	}
	if got := doc.Metadata.String("missing"); got != "" {
		t.Errorf("missing = %q, want empty", got)
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unterminated", "---\ntitle: Never closed\n\nBody"},
		{"only opening", "---"},
		{"invalid yaml", "---\ntitle: [unclosed\n---\nbody"},
		{"scalar block", "---\njust some text\n---\nbody"},
		{"list block", "---\n- a\n- b\n---\nbody"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			if err == nil {
				t.Fatalf("Parse(%q) expected error", tt.raw)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error %v is not a *ParseError", err)
			}
		})
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := Parse("---\ntitle: x\n")
	if err == nil {
		t.Fatal("expected error")
	}
	want := "frontmatter: line 1: missing closing ---"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
