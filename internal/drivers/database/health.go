package database

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Health checks the health of the database connection.
// It returns a map with keys indicating pool statistics.
func (s *service) Health(ctx context.Context) map[string]any {
	ctx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	stats := make(map[string]any)

	// Ping the database
	if err := s.db.Ping(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		log.Printf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"

	// Connection pool snapshot
	dbStats := s.db.Stat()
	stats["max_connections"] = dbStats.MaxConns()
	stats["open_connections"] = dbStats.TotalConns()
	stats["in_use"] = dbStats.AcquiredConns()
	stats["idle"] = dbStats.IdleConns()
	stats["waited_acquires"] = dbStats.EmptyAcquireCount()

	if maxConns := dbStats.MaxConns(); maxConns > 0 {
		utilization := float64(dbStats.AcquiredConns()) / float64(maxConns)
		stats["utilization"] = fmt.Sprintf("%.2f", utilization*100)
		if utilization > 0.85 {
			stats["message"] = fmt.Sprintf("Pool highly utilized: %.2f%%", utilization*100)
		}
	}

	return stats
}
