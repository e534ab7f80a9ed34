package main

import (
	"log"

	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/bootstrap"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/config"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/server"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer telemetry.Sync()

	addr := server.Addr(cfg.Port)
	telemetry.Info("server.starting", map[string]any{"addr": addr, "env": cfg.Env})

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
