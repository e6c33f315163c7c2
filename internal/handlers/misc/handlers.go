package misc

import (
	"log"
	"net/http"

	"github.com/vlatan/lesson-videos/internal/utils"
)

// Respond with DB, Redis and server stats
func (s *Service) HealthHandler(w http.ResponseWriter, r *http.Request) {

	// Construct joined map
	data := map[string]any{
		"redis_status":    s.rdb.Health(r.Context()),
		"database_status": s.db.Health(r.Context()),
		"server_status":   getServerStats(),
	}

	w.Header().Set("Cache-Control", "no-store")
	utils.WriteJSON(w, r, http.StatusOK, data)
}

// Simple liveness check
func (s *Service) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		log.Printf("Failed to write response on '%s'; %v", r.URL.Path, err)
	}
}
