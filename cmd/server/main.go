package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/ndewijer/InvestBoard-Backend/internal/app"
	"github.com/ndewijer/InvestBoard-Backend/internal/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Wait for interrupt signal for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialise: %v", err)
	}
	defer application.Close()

	if err := application.Serve(ctx); err != nil {
		log.Printf("Server error: %v", err)
	}
}
