package worker

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/vlatan/lesson-videos/internal/config"
	"github.com/vlatan/lesson-videos/internal/drivers/database"
	"github.com/vlatan/lesson-videos/internal/drivers/rdb"
	"github.com/vlatan/lesson-videos/internal/integrations/yt"
	"github.com/vlatan/lesson-videos/internal/models"
	"github.com/vlatan/lesson-videos/internal/repositories/lessons"
	"github.com/vlatan/lesson-videos/internal/videos"
)

// Backlog lists the lesson videos stored without metadata
type Backlog interface {
	GetUnenriched(ctx context.Context, limit int) ([]models.LessonVideo, error)
}

// Enricher rebinds a video to a lesson, enriching it if possible
type Enricher interface {
	AttachToLesson(ctx context.Context, lessonID int64, reference string) (*models.LessonVideo, error)
}

type Service struct {
	backlog  Backlog
	enricher Enricher
	config   *config.Config
	cleanup  func() error
}

// Sweep outcome
type Report struct {
	Checked  int
	Enriched int
	Failed   int
}

// New creates the worker with all of its dependencies
func New() *Service {

	// Create essential services
	cfg := config.New()

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("couldn't create DB service; %v", err)
	}

	rdb, err := rdb.New(cfg)
	if err != nil {
		log.Fatalf("couldn't create Redis service; %v", err)
	}

	yt, err := yt.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("couldn't create YouTube service; %v", err)
	}

	repo := lessons.New(db)

	return &Service{
		backlog:  repo,
		enricher: videos.New(cfg, yt, repo, rdb),
		config:   cfg,
		cleanup: func() error {
			db.Close()
			return rdb.Close()
		},
	}
}

// Run the worker once and release the backing services
func (s *Service) Run(ctx context.Context) error {

	if s.cleanup != nil {
		defer func() {
			if err := s.cleanup(); err != nil {
				log.Printf("error during cleanup; %v", err)
			}
		}()
	}

	if s.config.YouTubeAPIKey == "" {
		return errors.New("no YouTube API key; nothing to enrich with")
	}

	log.Println("Worker running...")
	report, err := s.Sweep(ctx)
	log.Printf(
		"Checked %d lesson videos; enriched %d, failed %d",
		report.Checked, report.Enriched, report.Failed,
	)

	return err
}

// Sweep tries to enrich one batch of the lesson videos stored without metadata
func (s *Service) Sweep(ctx context.Context) (Report, error) {

	var report Report

	backlog, err := s.backlog.GetUnenriched(ctx, max(s.config.WorkerBatchSize, 1))
	if err != nil {
		return report, fmt.Errorf("could not fetch the backlog from DB; %w", err)
	}

	for _, lv := range backlog {

		if err := ctx.Err(); err != nil {
			return report, err
		}

		report.Checked++
		updated, err := s.enricher.AttachToLesson(ctx, lv.LessonID, lv.Reference)

		switch {
		case err != nil:
			report.Failed++
			log.Printf("could not refresh video '%s' on lesson %d; %v", lv.VideoID, lv.LessonID, err)
		case updated.Enriched:
			report.Enriched++
		}
	}

	return report, nil
}
