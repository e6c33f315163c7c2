package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/vlatan/lesson-videos/internal/worker"
)

func main() {

	// Local runs only, production sets the environment
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded; %v", err)
	}

	// Listen for interruption signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Create and run the worker
	if err := worker.New().Run(ctx); err != nil {
		log.Println(err)
	}
}
