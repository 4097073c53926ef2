package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	confmig "github.com/goliatone/go-confmig"
	"github.com/goliatone/go-confmig/internal/httpapi"
	"github.com/goliatone/go-confmig/internal/logging"
	"github.com/goliatone/go-confmig/pkg/config"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	addr := flag.String("addr", "", "listen address (overrides config file)")
	profile := flag.String("profile", "", "conversion profile (overrides config file)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *addr != "" {
		cfg.HTTP.Addr = *addr
	}
	if *profile != "" {
		cfg.Profile = *profile
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	pipeline, err := confmig.New(
		confmig.WithRuleDir(cfg.RuleDir),
		confmig.WithConverterDir(cfg.ConverterDir),
	)
	if err != nil {
		log.Fatalf("build pipeline: %v", err)
	}

	server := httpapi.NewServer(pipeline, cfg.Profile)
	httpServer := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: server.Routes(),
	}

	slog.Info("listening", "addr", cfg.HTTP.Addr, "profile", cfg.Profile)

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errChan:
		log.Fatalf("listen: %v", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownGrace.Std())
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "error", err)
	}
}
