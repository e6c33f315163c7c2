package app

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"
)

// How long in-flight requests get to finish
const drainTimeout = 5 * time.Second

// Shutdown listens for SIGINT and SIGTERM signals,
// gracefully shuts down the HTTP server,
// performs cleanup and informs the main goroutine when done.
func (a *App) Shutdown(done chan<- struct{}) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Blocks until an interruption signal is received
	<-ctx.Done()

	log.Println("Shutting down gracefully, press Ctrl+C again to force...")

	// Stop watching for termination signals.
	// A second Ctrl+C now goes straight to the OS
	// and kills the process immediately.
	stop()

	a.drain()

	// Notify the main goroutine that the shutdown is complete
	done <- struct{}{}
}

// Give the server time to finish the current requests, then close the backing services
func (a *App) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	log.Println("Closing Database and Redis connections...")
	if err := a.Close(); err != nil {
		log.Printf("Error during cleanup: %v", err)
	}

	log.Println("Server exiting...")
}
