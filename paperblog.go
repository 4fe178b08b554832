// Package paperblog is a blog engine built with Go, Echo, and templ whose
// behaviour is driven by a single immutable site configuration record.
//
// It serves the home page, paginated post and tag listings, archives, RSS,
// sitemap and generated Open Graph images, plus a small admin dashboard for
// editing posts and uploading images.
package paperblog

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/eringen/paperblog/config"
	"github.com/eringen/paperblog/logging"
	"github.com/eringen/paperblog/ogimage"
	"github.com/eringen/paperblog/site"
)

// App is the central application. It wires together the store, cache,
// handlers, middleware and the site record.
type App struct {
	Config config.Server
	Site   site.Config
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache
	OG     *ogimage.Renderer

	log          zerolog.Logger
	registry     *prometheus.Registry
	metrics      *metrics
	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
	now          func() time.Time
}

// New creates an App for the given server settings and site record.
func New(cfg config.Server, sc site.Config, opts ...Option) *App {
	setDefaults(&cfg)

	a := &App{
		Config:    cfg,
		Site:      sc,
		Echo:      echo.New(),
		log:       logging.WithComponent("http"),
		registry:  prometheus.NewRegistry(),
		staticDir: cfg.StaticDir,
		now:       time.Now,
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Setup opens the store and registers middleware and routes. Start calls
// it; tests call it directly and drive a.Echo with httptest.
func (a *App) Setup() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("paperblog: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("paperblog: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("paperblog: init store: %w", err)
	}
	a.Store = store
	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)
	a.metrics = newMetrics(a.registry)
	a.OG = ogimage.NewRenderer(a.metrics.ogRenders)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start sets the app up, unless Setup already ran, and serves until the
// server is shut down.
func (a *App) Start() error {
	if a.Store == nil {
		if err := a.Setup(); err != nil {
			return err
		}
	}
	a.log.Info().Str("addr", a.Config.Addr).Str("website", a.Site.Website).Msg("starting server")
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

// Close releases the store and background workers.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Close()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

func setDefaults(c *config.Server) {
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/blog.db"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
}
