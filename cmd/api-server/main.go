package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"xnews/internal/logging"
	synchub "xnews/internal/sync"
	"xnews/internal/web"
	"xnews/pkg/database"
	"xnews/pkg/utils"
)

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cfg := utils.LoadAppConfig()

	cmd := &cobra.Command{
		Use:   "api-server",
		Short: "Serve the XNews site",
		Long: `Serves the news listing, category and article pages, and the
news and review submission forms. Settings come from XNEWS_* environment
variables; flags override them.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	f.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database file")
	f.StringVar(&cfg.SecretKey, "secret-key", cfg.SecretKey, "secret used to sign form tokens")
	f.DurationVar(&cfg.CSRFTTL, "csrf-ttl", cfg.CSRFTTL, "how long a rendered form can be submitted")
	f.Float64Var(&cfg.SubmitRate, "submit-rate", cfg.SubmitRate, "form submissions per second per client")
	f.IntVar(&cfg.SubmitBurst, "submit-burst", cfg.SubmitBurst, "form submission burst per client")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	f.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (json, text)")

	return cmd
}

func run(ctx context.Context, cfg utils.AppConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	if cfg.SecretKey == utils.DevSecretKey {
		logger.Warn("using the development secret key; set XNEWS_SECRET_KEY or --secret-key")
	}

	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("db migrate failed: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router, err := web.NewRouter(web.Deps{
		DB:     db,
		Config: cfg,
		Logger: logger,
		Hub:    synchub.NewHub(),
	})
	if err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", cfg.Addr, "db", cfg.DBPath)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
