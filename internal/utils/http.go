package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

type jsonError struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// HttpError provides shorter handling of http error
func HttpError(w http.ResponseWriter, status int) {
	http.Error(w, http.StatusText(status), status)
}

// WriteJSON encodes data to JSON first and then if succesfull
// writes it to the response writer with the given status
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	// Encode data to JSON
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Printf("Failed to encode JSON response on URI '%s': %v", r.RequestURI, err)
		HttpError(w, http.StatusInternalServerError)
		return
	}

	// Write to response
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		// Too late for recovery here, just log the error
		log.Printf("Failed to write JSON to response on URI '%s': %v", r.RequestURI, err)
	}
}

// JSONError writes a JSON error with a custom message.
// Empty message falls back to the status text.
func JSONError(w http.ResponseWriter, r *http.Request, status int, message string) {
	if message == "" {
		message = http.StatusText(status)
	}
	WriteJSON(w, r, status, jsonError{Error: message, Status: status})
}
