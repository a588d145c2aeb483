package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/photo-labels/internal/composite"
	"github.com/kozaktomas/photo-labels/internal/config"
	"github.com/kozaktomas/photo-labels/internal/labeler"
	"github.com/kozaktomas/photo-labels/internal/photoprism"
	"github.com/kozaktomas/photo-labels/internal/web/middleware"
)

// photoJSON is a 400x300 photo with one named and one unnamed face.
const photoJSON = `{
  "UID": "pt1",
  "Files": [{
    "UID": "fs1", "Hash": "hash1", "Primary": true, "Width": 400, "Height": 300,
    "Markers": [
      {"UID": "m1", "Type": "face", "Name": "Alice", "X": 0.4, "Y": 0.3, "W": 0.1, "H": 0.1333},
      {"UID": "m2", "Type": "face", "Name": "", "X": 0.1, "Y": 0.1, "W": 0.1, "H": 0.1333}
    ]
  }]
}`

// testLabeler creates a labeler with the default config
func testLabeler(t *testing.T) *labeler.Labeler {
	t.Helper()
	lb, err := labeler.New(config.DefaultLabels(), nil)
	if err != nil {
		t.Fatalf("failed to create labeler: %v", err)
	}
	t.Cleanup(func() { _ = lb.Close() })
	return lb
}

// grayJPEG encodes a plain gray JPEG of the given size
func grayJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.Gray{Y: 100})
		}
	}
	var buf bytes.Buffer
	if err := composite.Encode(&buf, img, 90); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// requestWithPhotoPrism creates a request with a PhotoPrism client in context
func requestWithPhotoPrism(t *testing.T, method, path string, pp *photoprism.PhotoPrism) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	ctx := middleware.SetPhotoPrismInContext(req.Context(), pp)
	return req.WithContext(ctx)
}

// requestWithChiParams creates a request with chi URL parameters
func requestWithChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// setupMockPhotoPrismServer creates a mock PhotoPrism server serving photo
// pt1, its primary file and album at1 (pt1 plus a missing photo).
func setupMockPhotoPrismServer(t *testing.T) *httptest.Server {
	t.Helper()

	jpeg := grayJPEG(t, 400, 300)
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/photos/pt1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(photoJSON))
	})
	mux.HandleFunc("/api/v1/photos/pt404", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	})
	mux.HandleFunc("/api/v1/photos", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("s") != "at1" {
			http.Error(w, `{"error":"album not found"}`, http.StatusNotFound)
			return
		}
		photos := []photoprism.Photo{{UID: "pt1"}, {UID: "pt404"}}
		if r.URL.Query().Get("offset") != "0" {
			photos = []photoprism.Photo{}
		}
		json.NewEncoder(w).Encode(photos)
	})
	mux.HandleFunc("/api/v1/dl/hash1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(jpeg)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// createPhotoPrismClient creates a PhotoPrism client connected to a mock server
func createPhotoPrismClient(t *testing.T, server *httptest.Server) *photoprism.PhotoPrism {
	t.Helper()
	pp, err := photoprism.NewPhotoPrismFromToken(server.URL, "test-token", "test-download-token")
	if err != nil {
		t.Fatalf("failed to create PhotoPrism client: %v", err)
	}
	return pp
}

// parseJSONResponse parses a JSON response body into the target type
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nBody: %s", err, recorder.Body.String())
	}
}

// assertStatusCode checks if the response has the expected status code
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d\nBody: %s", expected, recorder.Code, recorder.Body.String())
	}
}

// assertContentType checks if the response has the expected content type
func assertContentType(t *testing.T, recorder *httptest.ResponseRecorder, expected string) {
	t.Helper()
	ct := recorder.Header().Get("Content-Type")
	if ct != expected {
		t.Errorf("expected Content-Type '%s', got '%s'", expected, ct)
	}
}

// assertJSONError checks if the response is a JSON error with the expected message
func assertJSONError(t *testing.T, recorder *httptest.ResponseRecorder, expectedMessage string) {
	t.Helper()
	var result map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse error response: %v\nBody: %s", err, recorder.Body.String())
	}
	if result["error"] != expectedMessage {
		t.Errorf("expected error '%s', got '%s'", expectedMessage, result["error"])
	}
}
