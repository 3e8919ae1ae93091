package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/mandate-configurator/internal/config"
	"github.com/jonathan/mandate-configurator/internal/db"
	"github.com/jonathan/mandate-configurator/internal/observability"
	"github.com/jonathan/mandate-configurator/internal/server"
	"github.com/jonathan/mandate-configurator/internal/server/ratelimit"
)

var (
	servePort     int
	serveTemplate string
	serveNoPDF    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the catalog, validation, pricing, composition
and contract endpoints. With DATABASE_URL and JWT_SECRET set, accounts and saved
offers are served as well.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default: from config, 8080)")
	serveCmd.Flags().StringVar(&serveTemplate, "template", "", "Path to HTML contract template (default: embedded template)")
	serveCmd.Flags().BoolVar(&serveNoPDF, "no-pdf", false, "Disable PDF printing")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	logger, err := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, cleanup, err := newServer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	return srv.Start(ctx)
}

// newServer wires the server from cfg. The returned cleanup closes the
// database pool when one was opened.
func newServer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*server.Server, func(), error) {
	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, nil, err
	}

	opts := server.Options{
		Port:         cfg.Port,
		Catalog:      cat,
		TemplatePath: serveTemplate,
		Logger:       logger,
		RateLimit:    ratelimit.LoadConfig(os.Getenv),
		CORSOrigins:  cfg.CORSOrigins,
	}
	if !serveNoPDF {
		opts.PDF = newPDFRenderer(cfg)
	}

	cleanup := func() {}
	if cfg.DatabaseURL != "" {
		if !cfg.AuthEnabled() {
			return nil, nil, fmt.Errorf("JWT_SECRET is required when DATABASE_URL is set")
		}
		if opts.JWT, err = cfg.JWT(); err != nil {
			return nil, nil, err
		}
		if opts.Password, err = cfg.Password(); err != nil {
			return nil, nil, err
		}

		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		opts.Store = database
		cleanup = database.Close
		logger.Info("persistence enabled")
	} else {
		logger.Info("no DATABASE_URL set, accounts and saved offers are disabled")
	}

	srv, err := server.New(opts)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create server: %w", err)
	}
	return srv, cleanup, nil
}
