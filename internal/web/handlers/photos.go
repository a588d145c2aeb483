package handlers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/photo-labels/internal/labeler"
	"github.com/kozaktomas/photo-labels/internal/labels"
	"github.com/kozaktomas/photo-labels/internal/web/middleware"
)

// PhotosHandler lays out and renders labels of PhotoPrism photos.
type PhotosHandler struct {
	labeler *labeler.Labeler
	logger  *log.Logger
}

func NewPhotosHandler(lb *labeler.Labeler, logger *log.Logger) *PhotosHandler {
	return &PhotosHandler{labeler: lb, logger: logger}
}

// Layout handles GET /photos/{uid}/layout.
func (h *PhotosHandler) Layout(w http.ResponseWriter, r *http.Request) {
	src := middleware.MustGetPhotoPrism(r.Context(), w)
	if src == nil {
		return
	}

	pl, err := h.labeler.LayoutPhoto(r.Context(), src, chi.URLParam(r, "uid"))
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, pl)
}

// Labelled handles GET /photos/{uid}/labelled.jpg.
func (h *PhotosHandler) Labelled(w http.ResponseWriter, r *http.Request) {
	src := middleware.MustGetPhotoPrism(r.Context(), w)
	if src == nil {
		return
	}
	uid := chi.URLParam(r, "uid")

	pl, err := h.labeler.LayoutPhoto(r.Context(), src, uid)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	var buf bytes.Buffer
	if err := h.labeler.RenderPhoto(r.Context(), src, pl, &buf); err != nil {
		h.logger.Error("render failed", "photo", sanitizeForLog(uid), "err", err)
		respondError(w, statusFor(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("X-Layout-State", pl.Result.State.String())
	_, _ = buf.WriteTo(w)
}

type albumPhotoResponse struct {
	UID        string       `json:"uid"`
	State      labels.State `json:"state"`
	Labels     int          `json:"labels"`
	Iterations int          `json:"iterations"`
}

type albumLayoutResponse struct {
	Processed int                  `json:"processed"`
	Photos    []albumPhotoResponse `json:"photos"`
	Errors    []string             `json:"errors"`
}

// AlbumLayout handles GET /albums/{uid}/layout?limit=N. It lays out every
// photo of the album and reports the outcome without rendering.
func (h *PhotosHandler) AlbumLayout(w http.ResponseWriter, r *http.Request) {
	src := middleware.MustGetPhotoPrism(r.Context(), w)
	if src == nil {
		return
	}

	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	res, err := h.labeler.ExportAlbum(r.Context(), src, chi.URLParam(r, "uid"), labeler.ExportOptions{
		DryRun: true,
		Limit:  limit,
	})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	resp := albumLayoutResponse{
		Processed: res.ProcessedCount,
		Photos:    make([]albumPhotoResponse, 0, len(res.Photos)),
		Errors:    make([]string, 0, len(res.Errors)),
	}
	for _, p := range res.Photos {
		resp.Photos = append(resp.Photos, albumPhotoResponse{
			UID:        p.UID,
			State:      p.State,
			Labels:     p.Labels,
			Iterations: p.Iterations,
		})
	}
	for _, e := range res.Errors {
		resp.Errors = append(resp.Errors, e.Error())
	}
	respondJSON(w, http.StatusOK, resp)
}
