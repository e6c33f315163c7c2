package yt

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/vlatan/lesson-videos/internal/config"
	"github.com/vlatan/lesson-videos/internal/models"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const videoResponse = `{
	"items": [{
		"id": "dQw4w9WgXcQ",
		"snippet": {
			"title": "Never Gonna Give You Up",
			"description": "The official video",
			"publishedAt": "2009-10-25T06:57:33Z",
			"channelTitle": "Rick Astley",
			"thumbnails": {
				"default": {"url": "https://i.ytimg.com/default.jpg", "width": 120, "height": 90},
				"high": {"url": "https://i.ytimg.com/high.jpg", "width": 480, "height": 360}
			}
		},
		"contentDetails": {"duration": "PT3M33S"},
		"status": {"privacyStatus": "public"}
	}]
}`

const bareVideoResponse = `{"items": [{"id": "aaaaaaaaaaa"}]}`

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Fake YouTube API answering videos.list by video ID
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/videos") {
			http.NotFound(w, r)
			return
		}

		if part := r.URL.Query().Get("part"); part != "snippet,contentDetails,status" {
			t.Errorf("got part %q", part)
		}

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("id") {
		case "dQw4w9WgXcQ":
			w.Write([]byte(videoResponse))
		case "aaaaaaaaaaa":
			w.Write([]byte(bareVideoResponse))
		case "quotaExceed":
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error": {"code": 403, "message": "quota exceeded"}}`))
		default:
			w.Write([]byte(`{"items": []}`))
		}
	}))

	t.Cleanup(srv.Close)
	return srv
}

func newTestService(t *testing.T, srv *httptest.Server) *Service {
	t.Helper()

	cfg := &config.Config{
		YouTubeAPIKey:      "test-key",
		YouTubeAPIEndpoint: srv.URL + "/",
	}

	s, err := New(context.Background(), cfg, option.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("failed to create YouTube service; %v", err)
	}

	return s
}

func TestNew(t *testing.T) {

	tests := []struct {
		name       string
		cfg        *config.Config
		configured bool
		wantErr    bool
	}{
		{"nil config", nil, false, true},
		{"no api key", &config.Config{}, false, false},
		{"api key", &config.Config{YouTubeAPIKey: "key"}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(context.Background(), tt.cfg)
			if gotErr := err != nil; gotErr != tt.wantErr {
				t.Fatalf("got error = %v, want error = %t", err, tt.wantErr)
			}

			if got := s.Configured(); got != tt.configured {
				t.Errorf("got configured %t, want %t", got, tt.configured)
			}
		})
	}
}

func TestFetchMetadataNotConfigured(t *testing.T) {

	var calls atomic.Int32
	client := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		calls.Add(1)
		return nil, errors.New("network not allowed")
	})}

	s, err := New(context.Background(), &config.Config{}, option.WithHTTPClient(client))
	if err != nil {
		t.Fatalf("failed to create YouTube service; %v", err)
	}

	if got := s.FetchMetadata(context.Background(), "dQw4w9WgXcQ"); got != nil {
		t.Errorf("got %+v, want nil", got)
	}

	if got := s.LookupMetadata(context.Background(), "dQw4w9WgXcQ").Status; got != NotConfigured {
		t.Errorf("got status %s, want %s", got, NotConfigured)
	}

	if n := calls.Load(); n != 0 {
		t.Errorf("got %d network calls, want 0", n)
	}
}

func TestLookupMetadata(t *testing.T) {

	s := newTestService(t, newTestServer(t))

	description := "The official video"
	duration := 213
	published := time.Date(2009, 10, 25, 6, 57, 33, 0, time.UTC)

	tests := []struct {
		name     string
		videoID  string
		status   Status
		expected *models.VideoMetadata
	}{
		{"full video", "dQw4w9WgXcQ", Found, &models.VideoMetadata{
			VideoID:       "dQw4w9WgXcQ",
			Title:         "Never Gonna Give You Up",
			Description:   &description,
			Duration:      &duration,
			Thumbnail:     "https://i.ytimg.com/high.jpg",
			PrivacyStatus: "public",
			PublishedAt:   &published,
			ChannelTitle:  "Rick Astley",
		}},
		{"bare video", "aaaaaaaaaaa", Found, &models.VideoMetadata{
			VideoID: "aaaaaaaaaaa",
			Title:   "Untitled",
		}},
		{"unknown video", "bbbbbbbbbbb", NotFound, nil},
		{"api error", "quotaExceed", Failed, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.LookupMetadata(context.Background(), tt.videoID)
			if got.Status != tt.status {
				t.Errorf("got status %s, want %s", got.Status, tt.status)
			}

			if gotErr := got.Err != nil; gotErr != (tt.status == Failed) {
				t.Errorf("got error = %v on status %s", got.Err, got.Status)
			}

			if diff := cmp.Diff(tt.expected, got.Metadata); diff != "" {
				t.Errorf("metadata mismatch (-want +got):\n%s", diff)
			}

			// The collapsed variant agrees with the lookup
			if diff := cmp.Diff(tt.expected, s.FetchMetadata(context.Background(), tt.videoID)); diff != "" {
				t.Errorf("fetched metadata mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLookupMetadataCancelled(t *testing.T) {

	s := newTestService(t, newTestServer(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := s.LookupMetadata(ctx, "dQw4w9WgXcQ")
	if got.Status != Failed || got.Err == nil {
		t.Errorf("got status %s with error %v, want failed", got.Status, got.Err)
	}
}

func TestProcessingDuration(t *testing.T) {

	md := newVideoMetadata(&youtube.Video{Id: "ccccccccccc", ContentDetails: &youtube.VideoContentDetails{Duration: "P0D"}})
	if md.Duration == nil || *md.Duration != 0 {
		t.Errorf("got duration %v, want 0", md.Duration)
	}

	md = newVideoMetadata(&youtube.Video{Id: "ccccccccccc", ContentDetails: &youtube.VideoContentDetails{Duration: "P1W"}})
	if md.Duration != nil {
		t.Errorf("got duration %d, want nil", *md.Duration)
	}
}
