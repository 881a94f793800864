package site

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !reflect.DeepEqual(cfg.Locales, []string{"en", "fa"}) {
		t.Errorf("Locales = %v", cfg.Locales)
	}
	if cfg.DefaultLocale != "en" || cfg.ContentBackend != BackendDir || cfg.ContentDir != "content/blog" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.SessionSecret == "" {
		t.Error("development config has no session secret")
	}
	if cfg.LogFormat != "console" {
		t.Errorf("LogFormat = %q, want console in development", cfg.LogFormat)
	}
}

func TestLoadConfigFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	data := "SITE_LOCALES=fa,en\nSITE_DEFAULT_LOCALE=fa\nCONTENT_BACKEND=sqlite\nENVIRONMENT=production\nSESSION_SECRET=s3cret\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	// godotenv does not override variables that are already set.
	for _, key := range []string{"SITE_LOCALES", "SITE_DEFAULT_LOCALE", "CONTENT_BACKEND", "ENVIRONMENT", "SESSION_SECRET"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !reflect.DeepEqual(cfg.Locales, []string{"fa", "en"}) || cfg.DefaultLocale != "fa" {
		t.Errorf("locales = %v default %q", cfg.Locales, cfg.DefaultLocale)
	}
	if cfg.ContentBackend != BackendSQLite || cfg.LogFormat != "json" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown backend", map[string]string{"ENVIRONMENT": "development", "CONTENT_BACKEND": "ftp"}},
		{"s3 without bucket", map[string]string{"ENVIRONMENT": "development", "CONTENT_BACKEND": "s3"}},
		{"production without secret", map[string]string{"ENVIRONMENT": "production", "SESSION_SECRET": ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env")); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
