package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/kozaktomas/photo-labels/internal/constants"
	"github.com/kozaktomas/photo-labels/internal/labeler"
	"github.com/kozaktomas/photo-labels/internal/scene"
)

// LayoutHandler lays out labels for scenes posted by clients.
type LayoutHandler struct {
	labeler *labeler.Labeler
	logger  *log.Logger
}

func NewLayoutHandler(lb *labeler.Labeler, logger *log.Logger) *LayoutHandler {
	return &LayoutHandler{labeler: lb, logger: logger}
}

// Layout handles POST /layout. The body is a JSON or YAML scene; the
// response is the layout result.
func (h *LayoutHandler) Layout(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, constants.MaxSceneBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "scene too large")
			return
		}
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	sc, err := scene.Parse(data)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.labeler.LayoutScene(r.Context(), sc)
	if err != nil {
		h.logger.Error("layout failed", "err", err)
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// Render handles POST /render. The multipart form carries the scene in the
// "scene" field and the photo in the "image" file; the response is the
// labelled JPEG.
func (h *LayoutHandler) Render(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxRenderBodyBytes)
	if err := r.ParseMultipartForm(constants.MaxSceneBodyBytes); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	sc, err := scene.Parse([]byte(r.FormValue("scene")))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing image")
		return
	}
	defer file.Close()

	res, err := h.labeler.LayoutScene(r.Context(), sc)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	var buf bytes.Buffer
	if err := h.labeler.RenderScene(sc, res, file, &buf); err != nil {
		h.logger.Warn("render failed", "image", sanitizeForLog(header.Filename), "err", err)
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("X-Layout-State", res.State.String())
	_, _ = buf.WriteTo(w)
}
