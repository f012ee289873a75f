package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/jlindh/studiocast/pkg/playback"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	if h.Scripts == nil || h.Studio == nil {
		writeError(w, http.StatusBadRequest, errors.New("no completer or synthesizer configured"))
		return
	}

	var req SessionRequest

	if err := readJson(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if req.Script == "" {
		writeError(w, http.StatusBadRequest, errors.New("script is required"))
		return
	}

	session := playback.NewSession(req.Script, h.Scripts, h.Studio)
	h.Sessions.Add(session)

	writeJson(w, SessionResult{
		ID: session.ID,

		Mode:     string(session.Mode()),
		Position: session.Position().Seconds(),
	})
}

func (h *Handler) handleSessionPlay(w http.ResponseWriter, r *http.Request) {
	session, err := h.Sessions.Get(chi.URLParam(r, "id"))

	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	position, err := session.Play()

	if err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}

	writeJson(w, SessionResult{
		ID: session.ID,

		Mode:     string(session.Mode()),
		Position: position.Seconds(),
	})
}

func (h *Handler) handleSessionPause(w http.ResponseWriter, r *http.Request) {
	session, err := h.Sessions.Get(chi.URLParam(r, "id"))

	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	var req TransportRequest

	if err := readJson(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := session.Pause(toDuration(req.Position)); err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}

	writeJson(w, SessionResult{
		ID: session.ID,

		Mode:     string(session.Mode()),
		Position: session.Position().Seconds(),
	})
}

func (h *Handler) handleSessionQuestion(w http.ResponseWriter, r *http.Request) {
	session, err := h.Sessions.Get(chi.URLParam(r, "id"))

	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	var req QuestionRequest

	if err := readJson(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if req.Question == "" {
		writeError(w, http.StatusBadRequest, errors.New("question is required"))
		return
	}

	track, err := session.AskQuestion(r.Context(), req.Question, toDuration(req.Position))

	if err != nil {
		if errors.Is(err, playback.ErrQuestionPending) {
			writeError(w, http.StatusConflict, err)
			return
		}

		writeError(w, statusFromError(err), err)
		return
	}

	w.Header().Set("X-Resume-Position", strconv.FormatFloat(session.Position().Seconds(), 'f', 3, 64))

	writeAudio(w, track.ContentType, track.Data)
}

func toDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

type SessionRequest struct {
	Script string `json:"script"`
}

type SessionResult struct {
	ID string `json:"id"`

	Mode     string  `json:"mode"`
	Position float64 `json:"position"`
}

type TransportRequest struct {
	Position float64 `json:"position"`
}

type QuestionRequest struct {
	Question string `json:"question"`

	Position float64 `json:"position"`
}
