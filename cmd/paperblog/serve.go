package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/paperblog"
	"github.com/eringen/paperblog/importer"
	"github.com/eringen/paperblog/logging"
	"github.com/eringen/paperblog/site"
)

const shutdownTimeout = 10 * time.Second

var (
	serveAddr    string
	serveDev     bool
	serveContent string
	servePattern string
	serveStatic  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the blog server",
	Long: `Start the HTTP server.

Environment variables override the config file, e.g.:
  BLOG_SERVER_ADDR                 Listen address (default :3000)
  BLOG_SERVER_ADMIN_PASSWORD       Admin dashboard password (required)
  BLOG_SERVER_SESSION_SECRET       Cookie signing secret (required)
  BLOG_SITE_POST_PER_PAGE          Posts per listing page
  BLOG_SITE_SCHEDULED_POST_MARGIN  Margin in milliseconds, or a duration like 15m`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (overrides config)")
	serveCmd.Flags().BoolVar(&serveDev, "dev", false, "show scheduled posts regardless of publish time")
	serveCmd.Flags().StringVar(&serveContent, "content", "", "markdown directory to import at startup and watch for changes")
	serveCmd.Flags().StringVar(&servePattern, "pattern", importer.DefaultPattern, "glob of files to import, relative to --content")
	serveCmd.Flags().StringVar(&serveStatic, "static", "", "directory of user static assets (overrides config)")
}

func serveOptions(static string) []paperblog.Option {
	opts := []paperblog.Option{paperblog.WithCustomRoutes(healthRoutes)}
	if static != "" {
		opts = append(opts, paperblog.WithStaticDir(static))
	}
	return opts
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := load()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if serveDev {
		cfg.Server.Dev = true
	}
	log := logging.WithComponent("serve")

	app := paperblog.New(cfg.Server, site.Get(), serveOptions(serveStatic)...)
	defer app.Close()
	if err := app.Setup(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if serveContent != "" {
		reimport := func() {
			res, err := importer.Sync(app.Store, serveContent, servePattern)
			// A failed sync may still have written some posts.
			app.Invalidate()
			if err != nil {
				log.Error().Err(err).Msg("content import failed")
				return
			}
			log.Info().Int("posts", len(res.Imported)).Strs("removed", res.Removed).Msg("content imported")
		}
		reimport()
		go func() {
			if err := importer.Watch(ctx, serveContent, logging.WithComponent("watch"), reimport); err != nil {
				log.Error().Err(err).Msg("content watcher stopped")
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() { errCh <- app.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
