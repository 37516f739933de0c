package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getlawrence/antiplag/internal/detector/commander"
	"github.com/getlawrence/antiplag/internal/engine"
	"github.com/getlawrence/antiplag/internal/logger"
	"github.com/getlawrence/antiplag/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve plagiarism checks over HTTP",
	Long: `Serve starts an HTTP server exposing:

  POST /check/     {"lang", "ref_code", "candidates": [{"uuid", "code"}]}
  GET  /languages  supported languages
  GET  /healthz    liveness probe`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	app := appConfig(cmd)
	cfg := app.Config
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.NewSlogLogger(os.Stderr, logger.ParseLevel(cfg.Server.LogLevel))
	gin.SetMode(gin.ReleaseMode)

	e, err := engine.FromConfig(cfg, app.Registry, commander.NewReal(), log)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.NewServer(e, app.Registry, log).SetupRouter(),
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Slog().Info("listening", "addr", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Slog().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Checker.Timeout.Std()+5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
