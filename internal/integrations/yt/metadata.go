package yt

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/vlatan/lesson-videos/internal/models"
	"google.golang.org/api/youtube/v3"
)

const untitled = "Untitled"

// Parts requested on a video lookup
var videoParts = []string{"snippet", "contentDetails", "status"}

type Status int

const (
	NotConfigured Status = iota
	NotFound
	Failed
	Found
)

func (s Status) String() string {
	switch s {
	case NotConfigured:
		return "not configured"
	case NotFound:
		return "not found"
	case Failed:
		return "failed"
	case Found:
		return "found"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Lookup is the outcome of a metadata lookup.
// Metadata is set only on Found, Err only on Failed.
type Lookup struct {
	Status   Status
	Metadata *models.VideoMetadata
	Err      error
}

// LookupMetadata fetches the video metadata from YouTube
// with a single request and reports why it is missing if so.
func (s *Service) LookupMetadata(ctx context.Context, videoID string) Lookup {

	if !s.Configured() {
		return Lookup{Status: NotConfigured}
	}

	response, err := s.youtube.Videos.List(videoParts).Id(videoID).Context(ctx).Do()
	if err != nil {
		log.Printf("unable to get a response from YouTube for video '%s'; %v", videoID, err)
		return Lookup{Status: Failed, Err: err}
	}

	if len(response.Items) == 0 {
		return Lookup{Status: NotFound}
	}

	return Lookup{Status: Found, Metadata: newVideoMetadata(response.Items[0])}
}

// FetchMetadata fetches the video metadata from YouTube.
// Returns nil if the metadata is unavailable for any reason.
func (s *Service) FetchMetadata(ctx context.Context, videoID string) *models.VideoMetadata {
	return s.LookupMetadata(ctx, videoID).Metadata
}

// Create metadata object out of YouTube video
func newVideoMetadata(video *youtube.Video) *models.VideoMetadata {

	metadata := models.VideoMetadata{
		VideoID: video.Id,
		Title:   untitled,
	}

	if snippet := video.Snippet; snippet != nil {
		if snippet.Title != "" {
			metadata.Title = snippet.Title
		}

		if snippet.Description != "" {
			description := snippet.Description
			metadata.Description = &description
		}

		if thumb := models.BestThumbnail(snippet.Thumbnails); thumb != nil {
			metadata.Thumbnail = thumb.Url
		}

		// Parse the upload date into an object
		if parsedTime, err := time.Parse(time.RFC3339, snippet.PublishedAt); err == nil {
			metadata.PublishedAt = &parsedTime
		}

		metadata.ChannelTitle = snippet.ChannelTitle
	}

	if details := video.ContentDetails; details != nil {
		if seconds, ok := ParseDuration(details.Duration); ok {
			metadata.Duration = &seconds
		}
	}

	if status := video.Status; status != nil {
		metadata.PrivacyStatus = status.PrivacyStatus
	}

	return &metadata
}
