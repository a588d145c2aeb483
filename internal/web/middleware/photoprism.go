package middleware

import (
	"context"
	"net/http"

	"github.com/kozaktomas/photo-labels/internal/labeler"
)

type contextKey string

const photoPrismContextKey contextKey = "photoprism"

// WithPhotoPrism is middleware that adds the shared PhotoPrism client to the
// context. Without a client (PhotoPrism not configured) requests get 503.
func WithPhotoPrism(src labeler.Source) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if src == nil {
				http.Error(w, `{"error": "PhotoPrism is not configured"}`, http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r.WithContext(SetPhotoPrismInContext(r.Context(), src)))
		})
	}
}

// SetPhotoPrismInContext returns a copy of ctx carrying src.
func SetPhotoPrismInContext(ctx context.Context, src labeler.Source) context.Context {
	return context.WithValue(ctx, photoPrismContextKey, src)
}

// GetPhotoPrismFromContext retrieves the PhotoPrism client from the request context.
// Returns nil if no client is available.
func GetPhotoPrismFromContext(ctx context.Context) labeler.Source {
	src, ok := ctx.Value(photoPrismContextKey).(labeler.Source)
	if !ok {
		return nil
	}
	return src
}

// MustGetPhotoPrism retrieves the PhotoPrism client from context.
// If not available, writes an error response and returns nil.
// Handlers should return immediately after receiving nil.
func MustGetPhotoPrism(ctx context.Context, w http.ResponseWriter) labeler.Source {
	src := GetPhotoPrismFromContext(ctx)
	if src == nil {
		http.Error(w, `{"error": "PhotoPrism client not available"}`, http.StatusInternalServerError)
		return nil
	}
	return src
}
