package videos

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"strings"

	"github.com/gosimple/slug"
	"github.com/microcosm-cc/bluemonday"
	"github.com/vlatan/lesson-videos/internal/config"
	"github.com/vlatan/lesson-videos/internal/drivers/rdb"
	"github.com/vlatan/lesson-videos/internal/integrations/yt"
	"github.com/vlatan/lesson-videos/internal/models"
	"github.com/vlatan/lesson-videos/internal/repositories/lessons"
	"github.com/vlatan/lesson-videos/internal/utils"
)

var (
	ErrInvalidReference = errors.New("invalid video reference")
	ErrInvalidLesson    = errors.New("invalid lesson id")
	ErrNotFound         = errors.New("video metadata not found")
	ErrUnavailable      = errors.New("video metadata temporarily unavailable")
)

const cacheKeyPrefix = "video:"

// MetadataLookup looks up a video on the provider
type MetadataLookup interface {
	LookupMetadata(ctx context.Context, videoID string) yt.Lookup
}

// Store persists the lesson to video bindings
type Store interface {
	Upsert(ctx context.Context, lv *models.LessonVideo) error
	Get(ctx context.Context, lessonID int64) (*models.LessonVideo, error)
	Delete(ctx context.Context, lessonID int64) error
	CountLessons(ctx context.Context, videoID string) (int, error)
}

// Evictor drops cached keys
type Evictor interface {
	Forget(ctx context.Context, keys ...string)
}

type Service struct {
	yt      MetadataLookup
	store   Store
	rdb     *rdb.Service // optional
	evictor Evictor      // nil without a cache
	config  *config.Config
	policy  *bluemonday.Policy
	retry   *utils.RetryConfig
}

// New creates new videos service.
// A nil Redis service disables the metadata cache.
func New(cfg *config.Config, yt MetadataLookup, store Store, rdb *rdb.Service) *Service {

	var evictor Evictor
	if rdb != nil {
		evictor = rdb
	}

	return &Service{
		yt:      yt,
		store:   store,
		rdb:     rdb,
		evictor: evictor,
		config:  cfg,
		policy:  bluemonday.StrictPolicy(),
		retry: &utils.RetryConfig{
			MaxRetries: cfg.LookupMaxRetries,
			Delay:      cfg.LookupRetryDelay,
			MaxJitter:  cfg.LookupMaxJitter,
		},
	}
}

// Resolve a raw video reference to a canonical video ID
func (s *Service) Resolve(reference string) (string, error) {

	if s.config.MaxReferenceLength > 0 && len(reference) > s.config.MaxReferenceLength {
		return "", fmt.Errorf("%w; longer than %d bytes", ErrInvalidReference, s.config.MaxReferenceLength)
	}

	id, ok := yt.ResolveVideoID(reference)
	if !ok {
		return "", ErrInvalidReference
	}

	return id, nil
}

// Metadata gets the video metadata, from cache if possible.
// Only found metadata is cached.
func (s *Service) Metadata(ctx context.Context, videoID string) (*models.VideoMetadata, error) {

	if !yt.IsValidVideoID(videoID) {
		return nil, ErrInvalidReference
	}

	fetch := func() (models.VideoMetadata, error) {
		return s.fetchMetadata(ctx, videoID)
	}

	var (
		metadata models.VideoMetadata
		err      error
	)

	if s.rdb == nil {
		metadata, err = fetch()
	} else {
		metadata, err = rdb.GetCachedData(ctx, s.rdb, cacheKeyPrefix+videoID, s.config.CacheTimeout, fetch)
	}

	if err != nil {
		return nil, err
	}

	return &metadata, nil
}

// Forget the cached metadata of a video
func (s *Service) Forget(ctx context.Context, videoID string) {
	if s.evictor != nil {
		s.evictor.Forget(ctx, cacheKeyPrefix+videoID)
	}
}

// Forget the video metadata once no lesson uses the video
func (s *Service) release(ctx context.Context, videoID string) {

	count, err := s.store.CountLessons(ctx, videoID)
	if err != nil {
		log.Printf("could not count lessons using video '%s'; %v", videoID, err)
		return
	}

	if count == 0 {
		s.Forget(ctx, videoID)
	}
}

// Lookup the metadata on the provider, retrying transient failures
func (s *Service) fetchMetadata(ctx context.Context, videoID string) (models.VideoMetadata, error) {

	var zero models.VideoMetadata

	lookup, err := utils.Retry(ctx, s.retry, func() (yt.Lookup, error) {
		lookup := s.yt.LookupMetadata(ctx, videoID)
		if lookup.Status == yt.Failed {
			return lookup, lookup.Err
		}
		return lookup, nil
	})

	if err != nil {
		return zero, fmt.Errorf("%w; %w", ErrUnavailable, err)
	}

	if lookup.Status != yt.Found || lookup.Metadata == nil {
		return zero, ErrNotFound
	}

	metadata := *lookup.Metadata
	metadata.Title = s.sanitize(metadata.Title)
	if metadata.Title == "" {
		metadata.Title = "Untitled"
	}

	if metadata.Description != nil {
		description := s.sanitize(*metadata.Description)
		metadata.Description = &description
		if description == "" {
			metadata.Description = nil
		}
	}

	return metadata, nil
}

// Strip any markup, keep the plain text
func (s *Service) sanitize(text string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(text)))
}

// AttachToLesson resolves the reference and binds the video to the lesson.
// Missing metadata never fails the binding, the video is stored unenriched.
func (s *Service) AttachToLesson(ctx context.Context, lessonID int64, reference string) (*models.LessonVideo, error) {

	if lessonID <= 0 {
		return nil, ErrInvalidLesson
	}

	videoID, err := s.Resolve(reference)
	if err != nil {
		return nil, err
	}

	lv := models.LessonVideo{
		LessonID:  lessonID,
		VideoID:   videoID,
		Reference: strings.TrimSpace(reference),
		Title:     "Untitled",
	}

	metadata, err := s.Metadata(ctx, videoID)
	switch {
	case err == nil:
		lv.Title = metadata.Title
		lv.Thumbnail = metadata.Thumbnail
		lv.Duration = metadata.Duration
		lv.PublishedAt = metadata.PublishedAt
		lv.ChannelTitle = metadata.ChannelTitle
		lv.Enriched = true
		lv.Slug = slug.Make(metadata.Title)
	case ctx.Err() != nil:
		return nil, ctx.Err()
	default:
		log.Printf("storing video '%s' for lesson %d without metadata; %v", videoID, lessonID, err)
	}

	// The video being replaced, if any
	previous, err := s.store.Get(ctx, lessonID)
	if err != nil && !errors.Is(err, lessons.ErrNotFound) {
		log.Printf("could not get the current video of lesson %d; %v", lessonID, err)
	}

	if err := s.store.Upsert(ctx, &lv); err != nil {
		return nil, err
	}

	if previous != nil && previous.VideoID != lv.VideoID {
		s.release(ctx, previous.VideoID)
	}

	return &lv, nil
}

// LessonVideo gets the video bound to the lesson
func (s *Service) LessonVideo(ctx context.Context, lessonID int64) (*models.LessonVideo, error) {
	if lessonID <= 0 {
		return nil, ErrInvalidLesson
	}
	return s.store.Get(ctx, lessonID)
}

// DetachFromLesson removes the video bound to the lesson
func (s *Service) DetachFromLesson(ctx context.Context, lessonID int64) error {
	if lessonID <= 0 {
		return ErrInvalidLesson
	}

	lv, err := s.store.Get(ctx, lessonID)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, lessonID); err != nil {
		return err
	}

	s.release(ctx, lv.VideoID)
	return nil
}
