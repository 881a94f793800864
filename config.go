package site

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/raha-io/site/blog"
)

// Content backends.
const (
	BackendDir    = "dir"
	BackendEmbed  = "embed"
	BackendSQLite = "sqlite"
	BackendS3     = "s3"
)

// SiteConfig holds all configuration for the site.
type SiteConfig struct {
	Name        string `env:"SITE_NAME"`        // default "Raha IO"
	URL         string `env:"SITE_URL"`         // canonical URL, default "http://localhost:3000"
	Description string `env:"SITE_DESCRIPTION"` // RSS and meta fallback
	Author      string `env:"SITE_AUTHOR"`      // JSON-LD author

	Locales       []string `env:"SITE_LOCALES" envSeparator:","` // default en,fa
	DefaultLocale string   `env:"SITE_DEFAULT_LOCALE"`           // default "en"

	Addr        string `env:"ADDR"`        // listen address, default ":3000"
	Environment string `env:"ENVIRONMENT"` // "development" or "production"
	LogLevel    string `env:"LOG_LEVEL"`   // zerolog level, default "info"
	LogFormat   string `env:"LOG_FORMAT"`  // "console" or "json"
	StaticDir   string `env:"STATIC_DIR"`  // overrides the embedded assets when set

	ContentBackend string `env:"CONTENT_BACKEND"` // dir, embed, sqlite or s3
	ContentDir     string `env:"CONTENT_DIR"`     // default "content/blog"
	DatabasePath   string `env:"DATABASE_PATH"`   // default "data/content.db"
	S3Bucket       string `env:"S3_BUCKET"`
	S3Prefix       string `env:"S3_PREFIX"`
	S3Region       string `env:"S3_REGION"`
	S3Endpoint     string `env:"S3_ENDPOINT"`

	CacheContent bool `env:"CACHE_CONTENT"` // read-through content cache
	WatchContent bool `env:"WATCH_CONTENT"` // invalidate the cache on file changes (dir backend)

	SessionSecret string `env:"SESSION_SECRET"`
	CookieSecure  bool   `env:"COOKIE_SECURE"` // set true for HTTPS
}

// LoadConfig reads a .env file if one exists, then the environment.
func LoadConfig(envFiles ...string) (SiteConfig, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return SiteConfig{}, fmt.Errorf("site: load env file: %w", err)
	}
	var cfg SiteConfig
	if err := env.Parse(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("site: parse environment: %w", err)
	}
	cfg.setDefaults()
	return cfg, cfg.validate()
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Raha IO"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if len(c.Locales) == 0 {
		c.Locales = []string{"en", "fa"}
	}
	if c.DefaultLocale == "" {
		c.DefaultLocale = "en"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
		if c.IsDevelopment() {
			c.LogFormat = "console"
		}
	}
	if c.ContentBackend == "" {
		c.ContentBackend = BackendDir
	}
	if c.ContentDir == "" {
		c.ContentDir = "content/blog"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/content.db"
	}
	if c.S3Region == "" {
		c.S3Region = "us-east-1"
	}
	if c.SessionSecret == "" && c.IsDevelopment() {
		// Sessions only hold the locale preference; a per-process key is
		// enough in development.
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err == nil {
			c.SessionSecret = hex.EncodeToString(buf)
		}
	}
}

func (c *SiteConfig) validate() error {
	switch c.ContentBackend {
	case BackendDir, BackendEmbed, BackendSQLite:
	case BackendS3:
		if c.S3Bucket == "" {
			return errors.New("site: S3_BUCKET is required for the s3 backend")
		}
	default:
		return fmt.Errorf("site: unknown content backend %q", c.ContentBackend)
	}
	if c.SessionSecret == "" && !c.IsDevelopment() {
		return errors.New("site: SESSION_SECRET is required outside development")
	}
	return nil
}

// IsDevelopment reports whether the site runs in development mode.
func (c SiteConfig) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}

// Option configures additional App behavior.
type Option func(*App)

// WithStore replaces the content store selected by ContentBackend.
func WithStore(s blog.Store) Option {
	return func(a *App) {
		a.store = s
	}
}

// WithStaticDir serves user-owned static assets from dir instead of the
// embedded ones.
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.Config.StaticDir = dir
	}
}
