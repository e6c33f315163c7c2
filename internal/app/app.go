package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/vlatan/lesson-videos/internal/config"
	"github.com/vlatan/lesson-videos/internal/drivers/database"
	"github.com/vlatan/lesson-videos/internal/drivers/rdb"
	"github.com/vlatan/lesson-videos/internal/handlers/misc"
	videoHandlers "github.com/vlatan/lesson-videos/internal/handlers/videos"
	"github.com/vlatan/lesson-videos/internal/integrations/yt"
	"github.com/vlatan/lesson-videos/internal/middlewares"
	lessonsRepo "github.com/vlatan/lesson-videos/internal/repositories/lessons"
	"github.com/vlatan/lesson-videos/internal/videos"
)

type App struct {
	videos  *videoHandlers.Service
	misc    *misc.Service
	mw      *middlewares.Service
	cleanup func() error

	domain string
	server *http.Server
}

// New creates the app with all of its dependencies.
// Fails fast on a misconfigured backing service.
func New() *App {

	// Init config
	cfg := config.New()

	// Create database service
	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("couldn't create DB service; %v", err)
	}

	// Create Redis service
	rdb, err := rdb.New(cfg)
	if err != nil {
		log.Fatalf("couldn't create Redis service; %v", err)
	}

	// Create YouTube service, disabled without an API key
	yt, err := yt.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("couldn't create YouTube service; %v", err)
	}

	if !yt.Configured() {
		log.Println("no YouTube API key; videos will not be enriched")
	}

	// Create DB repositories
	lessons := lessonsRepo.New(db)

	return &App{
		videos: videoHandlers.New(videos.New(cfg, yt, lessons, rdb)),
		misc:   misc.New(db, rdb),
		mw:     middlewares.New(cfg),
		cleanup: func() error {
			db.Close()
			return rdb.Close()
		},

		domain: cfg.Domain,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", serverHost(cfg), cfg.Port),
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}
}

// Listen on all interfaces in production
func serverHost(cfg *config.Config) string {
	if cfg.Debug {
		return cfg.Host
	}
	return ""
}

// Close the backing services
func (a *App) Close() error {
	if a.cleanup == nil {
		return nil
	}

	err := a.cleanup()
	if err != nil {
		return errors.Join(errors.New("failed to close the backing services"), err)
	}

	return nil
}
