package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAnalyzeReturnsLabelVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sentiment-analysis" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var req struct {
			Comment string `json:"comment"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if req.Comment != "great quarter" {
			t.Fatalf("unexpected comment %q", req.Comment)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"sentiment": "Tốt"})
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	label, err := client.Analyze(context.Background(), "great quarter")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != "Tốt" {
		t.Fatalf("label must be stored verbatim, got %q", label)
	}
}

func TestAnalyzeWrapsServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	if _, err := client.Analyze(context.Background(), "x"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestAnalyzeTimesOut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL, 20*time.Millisecond)
	if _, err := client.Analyze(context.Background(), "x"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable on timeout, got %v", err)
	}
}
