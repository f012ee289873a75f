package api

import (
	"encoding/json"
	"net/http"

	"github.com/jlindh/studiocast/config"
	"github.com/jlindh/studiocast/pkg/provider"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	*config.Config
}

func New(cfg *config.Config) (*Handler, error) {
	h := &Handler{
		Config: cfg,
	}

	return h, nil
}

func (h *Handler) Attach(r chi.Router) {
	r.Post("/podcast/script", h.handleScript)
	r.Post("/podcast/audio", h.handleAudio)
	r.Post("/podcast/produce", h.handleProduce)

	r.Post("/research", h.handleResearch)

	r.Post("/sessions", h.handleSessionCreate)
	r.Post("/sessions/{id}/play", h.handleSessionPlay)
	r.Post("/sessions/{id}/pause", h.handleSessionPause)
	r.Post("/sessions/{id}/question", h.handleSessionQuestion)
}

func readJson(r *http.Request, v any) error {
	defer r.Body.Close()

	return json.NewDecoder(r.Body).Decode(v)
}

func writeJson(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(v)
}

func writeAudio(w http.ResponseWriter, contentType string, data []byte) {
	if contentType == "" {
		contentType = "audio/mpeg"
	}

	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}

func writeError(w http.ResponseWriter, code int, err error) {
	w.WriteHeader(code)

	text := http.StatusText(code)

	if err != nil {
		text = err.Error()
	}

	w.Write([]byte(text))
}

func statusFromError(err error) int {
	switch provider.KindOf(err) {
	case provider.ErrorKindValidation:
		return http.StatusBadRequest

	case provider.ErrorKindRateLimited:
		return http.StatusTooManyRequests

	case provider.ErrorKindTransient:
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}
