package videos

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/vlatan/lesson-videos/internal/repositories/lessons"
	"github.com/vlatan/lesson-videos/internal/utils"
	videoSvc "github.com/vlatan/lesson-videos/internal/videos"
)

// Translate a service error into a JSON error response
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, videoSvc.ErrInvalidReference),
		errors.Is(err, videoSvc.ErrInvalidLesson):
		utils.JSONError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, videoSvc.ErrNotFound),
		errors.Is(err, lessons.ErrNotFound):
		utils.JSONError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, videoSvc.ErrUnavailable):
		utils.JSONError(w, r, http.StatusServiceUnavailable, videoSvc.ErrUnavailable.Error())
	default:
		log.Printf("Failed to serve '%s %s'; %v", r.Method, r.URL.Path, err)
		utils.JSONError(w, r, http.StatusInternalServerError, "")
	}
}

// Parse the lesson ID from the path
func lessonID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("lesson"), 10, 64)
	if err != nil || id <= 0 {
		return 0, videoSvc.ErrInvalidLesson
	}
	return id, nil
}
