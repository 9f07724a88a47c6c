package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestStatusWithServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		var body interface{}
		switch r.URL.Path {
		case "/health":
			body = map[string]string{"status": "ok"}
		case "/api/comments":
			body = []map[string]interface{}{{"id": 1, "name": "Ana", "message": "so fluffy"}}
		default:
			http.NotFound(w, r)
			return
		}
		if err := json.NewEncoder(w).Encode(body); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("GOLDEN_SERVER_URL", srv.URL)

	var buf bytes.Buffer
	if err := runStatus(context.Background(), &buf); err != nil {
		t.Fatalf("status: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "✓ connected") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "Messages: 1") {
		t.Errorf("output = %q", out)
	}
}

func TestStatusUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("GOLDEN_SERVER_URL", url)

	var buf bytes.Buffer
	if err := runStatus(context.Background(), &buf); err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(buf.String(), "✗ cannot reach server") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestStatusFeedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"ok"}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("GOLDEN_SERVER_URL", srv.URL)

	var buf bytes.Buffer
	if err := runStatus(context.Background(), &buf); err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(buf.String(), "Messages: ✗") {
		t.Errorf("output = %q", buf.String())
	}
}
