package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/kozaktomas/photo-labels/internal/config"
	"github.com/kozaktomas/photo-labels/internal/labeler"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Load()
	lb, err := labeler.New(cfg.Labels, nil)
	if err != nil {
		t.Fatalf("failed to create labeler: %v", err)
	}
	t.Cleanup(func() { _ = lb.Close() })
	return NewServer(cfg, lb, nil, log.New(io.Discard))
}

func TestServer_Routes(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		statusCode int
	}{
		{"health", http.MethodGet, "/api/v1/health", "", http.StatusOK},
		{"layout", http.MethodPost, "/api/v1/layout", `{"width": 100, "height": 100, "persons": []}`, http.StatusOK},
		{"layout wrong method", http.MethodGet, "/api/v1/layout", "", http.StatusMethodNotAllowed},
		{"preflight", http.MethodOptions, "/api/v1/layout", "", http.StatusNoContent},
		{"photos without PhotoPrism", http.MethodGet, "/api/v1/photos/pt1/layout", "", http.StatusServiceUnavailable},
		{"albums without PhotoPrism", http.MethodGet, "/api/v1/albums/at1/layout", "", http.StatusServiceUnavailable},
		{"unknown route", http.MethodGet, "/api/v1/nope", "", http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			recorder := httptest.NewRecorder()
			s.Router().ServeHTTP(recorder, req)

			if recorder.Code != tc.statusCode {
				t.Errorf("%s %s: expected status %d, got %d", tc.method, tc.path, tc.statusCode, recorder.Code)
			}
		})
	}
}

func TestServer_Addr(t *testing.T) {
	t.Setenv("LABELS_HOST", "0.0.0.0")
	t.Setenv("LABELS_PORT", "9000")
	s := newTestServer(t)

	if s.httpServer.Addr != "0.0.0.0:9000" {
		t.Errorf("expected addr 0.0.0.0:9000, got %s", s.httpServer.Addr)
	}
}
