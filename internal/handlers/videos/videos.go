package videos

import (
	"context"

	"github.com/vlatan/lesson-videos/internal/models"
)

// Max accepted request body size
const maxBodySize = 1 << 16

// VideoService resolves, enriches and binds videos to lessons
type VideoService interface {
	Resolve(reference string) (string, error)
	Metadata(ctx context.Context, videoID string) (*models.VideoMetadata, error)
	AttachToLesson(ctx context.Context, lessonID int64, reference string) (*models.LessonVideo, error)
	LessonVideo(ctx context.Context, lessonID int64) (*models.LessonVideo, error)
	DetachFromLesson(ctx context.Context, lessonID int64) error
}

type Service struct {
	videos VideoService
}

func New(videos VideoService) *Service {
	return &Service{videos: videos}
}
