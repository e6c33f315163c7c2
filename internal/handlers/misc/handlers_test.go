package misc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeChecker map[string]any

func (f fakeChecker) Health(ctx context.Context) map[string]any {
	return f
}

func TestHealthHandler(t *testing.T) {

	s := New(fakeChecker{"status": "up"}, fakeChecker{"status": "healthy"})

	req := httptest.NewRequest("GET", "/health/", nil)
	recorder := httptest.NewRecorder()
	s.HealthHandler(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("got %d, want %d", recorder.Code, http.StatusOK)
	}

	var got map[string]map[string]any
	if err := json.Unmarshal(recorder.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode the body; %v", err)
	}

	if got["database_status"]["status"] != "up" || got["redis_status"]["status"] != "healthy" {
		t.Errorf("got %v", got)
	}

	if _, ok := got["server_status"]["num_goroutine"]; !ok {
		t.Errorf("server stats missing in %v", got)
	}
}

func TestHealthCheckHandler(t *testing.T) {

	s := New(nil, nil)

	req := httptest.NewRequest("GET", "/healthcheck", nil)
	recorder := httptest.NewRecorder()
	s.HealthCheckHandler(recorder, req)

	if recorder.Code != http.StatusOK || recorder.Body.String() != "OK" {
		t.Errorf("got %d %q, want 200 \"OK\"", recorder.Code, recorder.Body.String())
	}
}

func TestBToMib(t *testing.T) {

	tests := []struct {
		bytes    uint64
		expected float64
	}{
		{0, 0},
		{1024 * 1024, 1},
		{1536 * 1024, 1.5},
	}

	for _, tt := range tests {
		if got := bToMib(tt.bytes); got != tt.expected {
			t.Errorf("got %v, want %v", got, tt.expected)
		}
	}
}
