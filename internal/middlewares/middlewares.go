package middlewares

import (
	"log"
	"net/http"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/vlatan/lesson-videos/internal/config"
	"github.com/vlatan/lesson-videos/internal/utils"
)

type Service struct {
	config *config.Config
}

func New(config *config.Config) *Service {
	return &Service{config: config}
}

// Close the request body once the handler is done
func (s *Service) CloseBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			defer r.Body.Close()
		}
		next.ServeHTTP(w, r)
	})
}

// Do not crash the app on panic, serve 500 error to the client
func (s *Service) RecoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// If in production recover panic
		if !s.config.Debug {
			defer func() {
				if err := recover(); err != nil {
					// Let the server abort the response
					if err == http.ErrAbortHandler {
						panic(err)
					}

					log.Printf("Panic in %s %s: %#v", r.Method, r.URL.Path, err)
					utils.JSONError(w, r, http.StatusInternalServerError, "")
				}
			}()
		}

		next.ServeHTTP(w, r)
	})
}

// Log method, path, status and elapsed time of every request
func (s *Service) Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := newResponseRecorder(w)

		next.ServeHTTP(recorder, r)

		// Health probes are too chatty
		if r.URL.Path == "/healthcheck" && recorder.status == http.StatusOK {
			return
		}

		log.Printf(
			"%s %s %d %dB %s",
			r.Method,
			r.URL.Path,
			recorder.status,
			recorder.size,
			time.Since(start).Round(time.Microsecond),
		)
	})
}

// Add security headers to the response
func (s *Service) AddHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		// Prevent MIME type sniffing
		w.Header().Set("X-Content-Type-Options", "nosniff")

		// Prevent clickjacking
		w.Header().Set("X-Frame-Options", "DENY")

		// API responses are never indexed
		w.Header().Set("X-Robots-Tag", "noindex")

		// HSTS (HTTPS only)
		if !s.config.Debug {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}

// Compress provides gzip compression to the responses
func (s *Service) Compress(next http.Handler) http.Handler {
	return gzhttp.GzipHandler(next)
}

// Chain middlewares that apply to all handlers
func (s *Service) ApplyToAll(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(final http.Handler) http.Handler {
		// Apply middlewares in reverse order
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}
