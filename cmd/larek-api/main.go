package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Apurer/web-larek/internal/app/larekapi"
	"github.com/Apurer/web-larek/internal/platform/config"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("failed to load .env: %v", err)
	}
	cfg, err := larekapi.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := larekapi.Run(ctx, cfg); err != nil {
		log.Fatalf("larek-api exited: %v", err)
	}
}
