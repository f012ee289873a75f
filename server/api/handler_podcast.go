package api

import (
	"errors"
	"net/http"

	"github.com/jlindh/studiocast/pkg/provider"
	"github.com/jlindh/studiocast/pkg/script"
)

func (h *Handler) handleScript(w http.ResponseWriter, r *http.Request) {
	if h.Scripts == nil {
		writeError(w, http.StatusBadRequest, errors.New("no completer configured"))
		return
	}

	var req ScriptRequest

	if err := readJson(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.Scripts.Script(r.Context(), script.ScriptRequest{
		Topic:    req.Topic,
		Prospect: req.Prospect,
		Question: req.Question,
	})

	if err != nil {
		writeError(w, statusFromError(err), err)
		return
	}

	writeJson(w, ScriptResult{
		Script: result,
	})
}

func (h *Handler) handleAudio(w http.ResponseWriter, r *http.Request) {
	if h.Studio == nil {
		writeError(w, http.StatusBadRequest, errors.New("no synthesizer configured"))
		return
	}

	var req AudioRequest

	if err := readJson(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if req.Script == "" {
		writeError(w, http.StatusBadRequest, errors.New("script is required"))
		return
	}

	track, err := h.Studio.Produce(r.Context(), req.Script)

	if err != nil {
		writeError(w, statusFromError(err), err)
		return
	}

	writeAudio(w, track.ContentType, track.Data)
}

func (h *Handler) handleProduce(w http.ResponseWriter, r *http.Request) {
	producer, err := h.Producer("")

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var req ProduceRequest

	if err := readJson(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if req.Input == "" {
		writeError(w, http.StatusBadRequest, errors.New("input is required"))
		return
	}

	production, err := producer.Produce(r.Context(), req.Input, &provider.ProduceOptions{})

	if err != nil {
		writeError(w, statusFromError(err), err)
		return
	}

	writeJson(w, ProduceResult{
		ID:  production.ID,
		URL: production.URL,

		Transcript: production.Transcript,
	})
}

func (h *Handler) handleResearch(w http.ResponseWriter, r *http.Request) {
	if h.Scripts == nil {
		writeError(w, http.StatusBadRequest, errors.New("no completer configured"))
		return
	}

	var req ResearchRequest

	if err := readJson(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	content, err := h.Scripts.Research(r.Context(), req.Topic)

	if err != nil {
		writeError(w, statusFromError(err), err)
		return
	}

	writeJson(w, ResearchResult{
		Content: content,
	})
}

type ScriptRequest struct {
	Topic    string `json:"topic"`
	Prospect string `json:"prospect,omitempty"`
	Question string `json:"question,omitempty"`
}

type ScriptResult struct {
	Script string `json:"script"`
}

type AudioRequest struct {
	Script string `json:"script"`
}

type ProduceRequest struct {
	Input string `json:"input"`
}

type ProduceResult struct {
	ID  string `json:"id"`
	URL string `json:"url,omitempty"`

	Transcript string `json:"transcript,omitempty"`
}

type ResearchRequest struct {
	Topic string `json:"topic"`
}

type ResearchResult struct {
	Content string `json:"content,omitempty"`
}
