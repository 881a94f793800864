// Package site serves the bilingual marketing site and its markdown blog with
// Echo. Pages are rendered per locale under /{locale}/ from a pluggable
// content store.
package site

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/raha-io/site/blog"
	"github.com/raha-io/site/content"
	"github.com/raha-io/site/locale"
	"github.com/raha-io/site/markdown"
)

const shutdownTimeout = 10 * time.Second

// App is the central site application. It wires together the content store,
// locale resolver, handlers and middleware.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Logger   zerolog.Logger
	Resolver *locale.Resolver
	Catalogs locale.Catalogs
	Posts    *blog.Repository

	store   blog.Store
	cache   *blog.CachedStore
	assets  fs.FS
	closers []io.Closer
}

// New builds an App from cfg. The content store is opened here so that
// configuration errors surface before the server starts.
func New(ctx context.Context, cfg SiteConfig, logger zerolog.Logger, opts ...Option) (*App, error) {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Logger: logger,
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}

	resolver, err := locale.NewResolver(a.Config.Locales, a.Config.DefaultLocale)
	if err != nil {
		return nil, fmt.Errorf("site: %w", err)
	}
	a.Resolver = resolver
	if a.Catalogs, err = locale.LoadCatalogs(resolver); err != nil {
		return nil, fmt.Errorf("site: %w", err)
	}

	if a.store == nil {
		if a.store, err = a.openStore(ctx); err != nil {
			a.Close()
			return nil, fmt.Errorf("site: open %s content store: %w", a.Config.ContentBackend, err)
		}
	}
	store := a.store
	if a.Config.CacheContent {
		a.cache = blog.NewCachedStore(store)
		store = a.cache
	}
	a.Posts = blog.NewRepository(store, markdown.New(), logger)

	if a.Config.StaticDir != "" {
		a.assets = os.DirFS(a.Config.StaticDir)
	} else {
		a.assets, _ = fs.Sub(Assets, "public")
	}

	a.setupMiddleware()
	a.setupRoutes()
	return a, nil
}

// OpenStore returns the content store selected by cfg.ContentBackend. The
// returned closer releases database handles and is never nil.
func OpenStore(ctx context.Context, cfg SiteConfig) (blog.Store, io.Closer, error) {
	cfg.setDefaults()
	switch cfg.ContentBackend {
	case BackendDir:
		return blog.NewOSDirStore(cfg.ContentDir), nopCloser{}, nil
	case BackendEmbed:
		return blog.NewDirStore(content.Blog, content.BlogDir), nopCloser{}, nil
	case BackendSQLite:
		s, err := blog.NewSQLiteStore(cfg.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case BackendS3:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3Region))
		if err != nil {
			return nil, nil, err
		}
		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.S3Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.S3Endpoint)
				o.UsePathStyle = true
			}
		})
		return blog.NewS3Store(client, cfg.S3Bucket, cfg.S3Prefix), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown content backend %q", cfg.ContentBackend)
	}
}

func (a *App) openStore(ctx context.Context) (blog.Store, error) {
	s, closer, err := OpenStore(ctx, a.Config)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closer)
	return s, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Run starts the server and blocks until ctx is cancelled or the server
// fails. On cancellation in-flight requests get a grace period to finish.
func (a *App) Run(ctx context.Context) error {
	if a.cache != nil && a.Config.WatchContent && a.Config.ContentBackend == BackendDir {
		go func() {
			if err := blog.Watch(ctx, a.Config.ContentDir, a.cache, a.Logger); err != nil {
				a.Logger.Warn().Err(err).Msg("content watcher stopped")
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info().Str("addr", a.Config.Addr).Str("backend", a.Config.ContentBackend).Msg("starting server")
		if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.Logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("site: shutdown: %w", err)
	}
	a.Logger.Info().Msg("server stopped")
	return nil
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
