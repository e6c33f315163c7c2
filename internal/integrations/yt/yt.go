package yt

import (
	"context"
	"errors"

	"github.com/vlatan/lesson-videos/internal/config"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

type Service struct {
	youtube *youtube.Service // nil if no API key configured
}

// Create new YouTube service.
// Without an API key the service is created but never calls the API.
// Extra client options are appended after the config derived ones.
func New(ctx context.Context, cfg *config.Config, opts ...option.ClientOption) (*Service, error) {

	if cfg == nil {
		return nil, errors.New("unable to create YouTube service with nil config")
	}

	if cfg.YouTubeAPIKey == "" {
		return &Service{}, nil
	}

	co := []option.ClientOption{option.WithAPIKey(cfg.YouTubeAPIKey)}
	if cfg.YouTubeAPIEndpoint != "" {
		co = append(co, option.WithEndpoint(cfg.YouTubeAPIEndpoint))
	}

	youtube, err := youtube.NewService(ctx, append(co, opts...)...)
	if err != nil {
		return nil, err
	}

	return &Service{youtube: youtube}, nil
}

// Configured reports whether the service can reach the API
func (s *Service) Configured() bool {
	return s != nil && s.youtube != nil
}
