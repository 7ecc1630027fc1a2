package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/gogpu/gg"

	"Canvasticker/internal/config"
	"Canvasticker/internal/state"
	"Canvasticker/internal/ui"
)

func main() {
	configPath := flag.String("config", config.DefaultPath(), "path to the TOML config file")
	logLevel := flag.String("log-level", "", "override the configured log level (debug, info, warn, error)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)
	state.SetLogger(logger)
	gg.SetLogger(logger.With("component", "gg"))

	logger.Info("starting", slog.String("config", *configPath), slog.String("session", state.SessionID()))
	if err := ui.RunApp(cfg); err != nil {
		logger.Error("sketchpad exited", slog.Any("err", err))
		os.Exit(1)
	}
}
