package app

import (
	"net/http"
)

// Routes creates the multiplexer with all the routes
func (a *App) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	// Videos
	mux.HandleFunc("GET /api/videos/resolve", a.videos.ResolveHandler)
	mux.HandleFunc("GET /api/videos/{video}", a.videos.MetadataHandler)
	mux.HandleFunc("GET /api/duration", a.videos.DurationHandler)

	// Lessons
	mux.HandleFunc("PUT /api/lessons/{lesson}/video", a.videos.AttachHandler)
	mux.HandleFunc("GET /api/lessons/{lesson}/video", a.videos.LessonVideoHandler)
	mux.HandleFunc("DELETE /api/lessons/{lesson}/video", a.videos.DetachHandler)

	// The rest
	mux.HandleFunc("GET /health/{$}", a.misc.HealthHandler)
	mux.HandleFunc("GET /healthcheck", a.misc.HealthCheckHandler)

	return mux
}

// RegisterRoutes assigns the routes wrapped
// in the middlewares to the HTTP server
func (a *App) RegisterRoutes() *App {

	// Chain middlewares that apply to all requests.
	// The order is important.
	a.server.Handler = a.mw.ApplyToAll(
		a.mw.RecoverPanic,
		a.mw.CloseBody,
		a.mw.Logging,
		a.mw.AddHeaders,
		a.mw.Compress,
	)(a.Routes())

	return a
}
