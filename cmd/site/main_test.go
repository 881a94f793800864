package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if out != "site dev\n" {
		t.Errorf("output = %q", out)
	}
}

func TestRenderCommandFromStdin(t *testing.T) {
	doc := "---\ntitle: Hello\ndate: 2024-06-01\n---\n# Heading\n\nSee [next](next-post.md).\n"
	out, err := execute(t, doc, "render", "--meta", "-")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"title: Hello\n", "date: 2024-06-01\n", "<h1", ">Heading</h1>", `href="../next-post/"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderCommandMalformed(t *testing.T) {
	_, err := execute(t, "---\ntitle: open\n", "render", "-")
	if err == nil {
		t.Fatal("expected error for unterminated front matter")
	}
}

func TestImportThenListPosts(t *testing.T) {
	dir := t.TempDir()
	content := filepath.Join(dir, "blog")
	if err := os.Mkdir(content, 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"older.md":  "---\ntitle: Older\ndate: 2024-01-01\n---\nold",
		"newer.md":  "---\ntitle: Newer\ndate: 2024-05-01\n---\nnew",
		"broken.md": "---\ntitle: Broken\n---\nno date",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(content, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	db := filepath.Join(dir, "content.db")
	envFile := filepath.Join(dir, "missing.env")

	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("CONTENT_BACKEND", "sqlite")
	t.Setenv("CONTENT_DIR", content)
	t.Setenv("DATABASE_PATH", db)
	t.Setenv("LOG_LEVEL", "error")

	out, err := execute(t, "", "--env-file", envFile, "import")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "imported 3 documents") {
		t.Errorf("import output = %q", out)
	}

	out, err = execute(t, "", "--env-file", envFile, "posts")
	if err != nil {
		t.Fatalf("posts: %v", err)
	}
	newer := strings.Index(out, "newer")
	older := strings.Index(out, "older")
	if newer < 0 || older < 0 || newer > older {
		t.Errorf("posts output not newest first:\n%s", out)
	}
	if strings.Contains(out, "broken") {
		t.Errorf("posts output lists an invalid document:\n%s", out)
	}
}
