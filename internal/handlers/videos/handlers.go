package videos

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vlatan/lesson-videos/internal/integrations/yt"
	"github.com/vlatan/lesson-videos/internal/utils"
	videoSvc "github.com/vlatan/lesson-videos/internal/videos"
)

type attachRequest struct {
	Reference string `json:"reference"`
}

type resolveResponse struct {
	VideoID string `json:"video_id"`
}

type durationResponse struct {
	Seconds int    `json:"seconds"`
	Human   string `json:"human"`
}

// Resolve a video reference from the query to a video ID
func (s *Service) ResolveHandler(w http.ResponseWriter, r *http.Request) {

	videoID, err := s.videos.Resolve(r.URL.Query().Get("ref"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, r, http.StatusOK, resolveResponse{VideoID: videoID})
}

// Serve the video metadata
func (s *Service) MetadataHandler(w http.ResponseWriter, r *http.Request) {

	metadata, err := s.videos.Metadata(r.Context(), r.PathValue("video"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, r, http.StatusOK, metadata)
}

// Convert an ISO 8601 duration from the query to seconds
func (s *Service) DurationHandler(w http.ResponseWriter, r *http.Request) {

	iso := r.URL.Query().Get("iso")
	seconds, ok := yt.ParseDuration(iso)
	if !ok {
		utils.JSONError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid duration '%s'", iso))
		return
	}

	utils.WriteJSON(w, r, http.StatusOK, durationResponse{
		Seconds: seconds,
		Human:   yt.HumanDuration(seconds),
	})
}

// Bind a video to a lesson
func (s *Service) AttachHandler(w http.ResponseWriter, r *http.Request) {

	id, err := lessonID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var body attachRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.JSONError(w, r, http.StatusBadRequest, "malformed request body")
		return
	}

	lv, err := s.videos.AttachToLesson(r.Context(), id, body.Reference)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, r, http.StatusOK, lv)
}

// Serve the video bound to a lesson
func (s *Service) LessonVideoHandler(w http.ResponseWriter, r *http.Request) {

	id, err := lessonID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	lv, err := s.videos.LessonVideo(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, r, http.StatusOK, lv)
}

// Remove the video bound to a lesson
func (s *Service) DetachHandler(w http.ResponseWriter, r *http.Request) {

	id, err := lessonID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.videos.DetachFromLesson(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

var _ VideoService = (*videoSvc.Service)(nil)
