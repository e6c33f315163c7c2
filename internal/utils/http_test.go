package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHttpError(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"Bad Request", http.StatusBadRequest},
		{"Not Found", http.StatusNotFound},
		{"Internal Server Error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			HttpError(recorder, tt.status)

			// Check status code
			if recorder.Code != tt.status {
				t.Errorf("got %d, want %d", recorder.Code, tt.status)
			}

			// Check if the body contains the status text + newline
			expectedBody := http.StatusText(tt.status) + "\n"
			if recorder.Body.String() != expectedBody {
				t.Errorf("got %q, want %q", recorder.Body.String(), expectedBody)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {

	tests := []struct {
		name         string
		status       int
		data         any
		expectedCode int
		expectedBody string
	}{
		{"map", http.StatusOK, map[string]int{"seconds": 30}, http.StatusOK, `{"seconds":30}`},
		{"created", http.StatusCreated, []string{"a"}, http.StatusCreated, `["a"]`},
		{"unencodable", http.StatusOK, make(chan int), http.StatusInternalServerError, "Internal Server Error\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			recorder := httptest.NewRecorder()

			WriteJSON(recorder, req, tt.status, tt.data)

			if recorder.Code != tt.expectedCode {
				t.Errorf("got %d, want %d", recorder.Code, tt.expectedCode)
			}

			if recorder.Body.String() != tt.expectedBody {
				t.Errorf("got %q, want %q", recorder.Body.String(), tt.expectedBody)
			}
		})
	}
}

func TestJSONError(t *testing.T) {

	tests := []struct {
		name, message, expected string
		status                  int
	}{
		{"custom message", "invalid video reference", "invalid video reference", http.StatusBadRequest},
		{"default message", "", "Not Found", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			recorder := httptest.NewRecorder()

			JSONError(recorder, req, tt.status, tt.message)

			var got jsonError
			if err := json.Unmarshal(recorder.Body.Bytes(), &got); err != nil {
				t.Fatalf("failed to decode the body; %v", err)
			}

			if got.Error != tt.expected || got.Status != tt.status || recorder.Code != tt.status {
				t.Errorf("got %+v with code %d, want %q with %d", got, recorder.Code, tt.expected, tt.status)
			}
		})
	}
}
