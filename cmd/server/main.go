package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GriffinCanCode/vcbot/internal/infrastructure/config"
	"github.com/GriffinCanCode/vcbot/internal/infrastructure/server"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Flags override env vars
	port := flag.String("port", cfg.Server.Port, "Server port")
	iconDir := flag.String("icons", cfg.Render.IconDir, "Directory of LogicIcons-*.png glyphs (builtin atlas when empty)")
	dev := flag.Bool("dev", cfg.Logging.Development, "Development mode (colored logs)")
	flag.Parse()

	cfg.Server.Port = *port
	cfg.Render.IconDir = *iconDir
	cfg.Logging.Development = *dev
	if *dev && cfg.Logging.Level == "info" {
		cfg.Logging.Level = "debug"
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Run()
	}()

	select {
	case <-sigChan:
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}
}
