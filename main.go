package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/jlindh/studiocast/config"
	"github.com/jlindh/studiocast/pkg/otel"
	"github.com/jlindh/studiocast/server"
)

var version = "0.0.0-dev"

func main() {
	configFlag := flag.String("config", "config.yaml", "configuration file")
	addressFlag := flag.String("address", "", "listen address")

	flag.Parse()

	if err := otel.Setup("studiocast", version); err != nil {
		slog.Error("unable to initialize telemetry", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Parse(*configFlag)

	if err != nil {
		slog.Error("unable to parse config", "error", err)
		os.Exit(1)
	}

	if *addressFlag != "" {
		cfg.Address = *addressFlag
	}

	s, err := server.New(cfg)

	if err != nil {
		slog.Error("unable to create server", "error", err)
		os.Exit(1)
	}

	slog.Info("starting server", "address", cfg.Address)

	if err := s.ListenAndServe(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
