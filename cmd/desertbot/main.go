package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	coreconfig "github.com/dateindesert/desertbot/core/config"
	"github.com/dateindesert/desertbot/core/logger"
	"github.com/dateindesert/desertbot/core/telegram"
	"github.com/dateindesert/desertbot/internal/app"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments inject env directly.
	_ = godotenv.Load()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}

	cfg, err := coreconfig.Load(path)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	defer a.Close()
	defer func() { _ = logger.Shutdown() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := telegram.Run(ctx, a.TelegramRunOptions()); err != nil {
		log.Fatalf("run: %v", err)
	}
}
