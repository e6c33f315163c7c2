package lessons

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/vlatan/lesson-videos/internal/drivers/database"
	"github.com/vlatan/lesson-videos/internal/models"
)

var ErrNotFound = errors.New("lesson video not found")

type Repository struct {
	db database.Service
}

func New(db database.Service) *Repository {
	return &Repository{db: db}
}

// Upsert inserts or replaces the video bound to a lesson,
// and fills in the timestamps on the given object
func (r *Repository) Upsert(ctx context.Context, lv *models.LessonVideo) error {

	err := r.db.QueryRow(
		ctx,
		upsertLessonVideoQuery,
		lv.LessonID,
		lv.VideoID,
		lv.Reference,
		lv.Slug,
		lv.Title,
		lv.Thumbnail,
		lv.Duration,
		lv.Enriched,
		lv.PublishedAt,
		lv.ChannelTitle,
	).Scan(&lv.CreatedAt, &lv.UpdatedAt)

	if err != nil {
		return fmt.Errorf("could not upsert video for lesson %d; %w", lv.LessonID, err)
	}

	return nil
}

// Get the video bound to a lesson
func (r *Repository) Get(ctx context.Context, lessonID int64) (*models.LessonVideo, error) {

	lv, err := scanLessonVideo(r.db.QueryRow(ctx, getLessonVideoQuery, lessonID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("could not get video for lesson %d; %w", lessonID, err)
	}

	return lv, nil
}

// GetUnenriched gets up to limit lesson videos stored without metadata,
// the least recently updated first
func (r *Repository) GetUnenriched(ctx context.Context, limit int) ([]models.LessonVideo, error) {

	rows, err := r.db.Query(ctx, getUnenrichedQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("could not query unenriched lesson videos; %w", err)
	}

	videos, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.LessonVideo, error) {
		lv, err := scanLessonVideo(row)
		if err != nil {
			return models.LessonVideo{}, err
		}
		return *lv, nil
	})

	if err != nil {
		return nil, fmt.Errorf("could not scan unenriched lesson videos; %w", err)
	}

	return videos, nil
}

func scanLessonVideo(row pgx.Row) (*models.LessonVideo, error) {
	var lv models.LessonVideo
	err := row.Scan(
		&lv.LessonID,
		&lv.VideoID,
		&lv.Reference,
		&lv.Slug,
		&lv.Title,
		&lv.Thumbnail,
		&lv.Duration,
		&lv.Enriched,
		&lv.PublishedAt,
		&lv.ChannelTitle,
		&lv.CreatedAt,
		&lv.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &lv, nil
}

// Delete the video bound to a lesson
func (r *Repository) Delete(ctx context.Context, lessonID int64) error {

	rowsAffected, err := r.db.Exec(ctx, deleteLessonVideoQuery, lessonID)
	if err != nil {
		return fmt.Errorf("could not delete video for lesson %d; %w", lessonID, err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// CountLessons counts the lessons using a video
func (r *Repository) CountLessons(ctx context.Context, videoID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, countVideoLessonsQuery, videoID).Scan(&count)
	return count, err
}
