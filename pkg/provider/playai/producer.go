package playai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jlindh/studiocast/pkg/provider"
)

var _ provider.Producer = (*Producer)(nil)

type Producer struct {
	*Config
}

func NewProducer(url string, options ...Option) (*Producer, error) {
	cfg := &Config{
		url: url,

		pollAttempts: 10,
		pollInterval: 2 * time.Second,
	}

	for _, option := range options {
		option(cfg)
	}

	if cfg.url == "" {
		cfg.url = "https://api.play.ai/"
	}

	if cfg.client == nil {
		cfg.client = http.DefaultClient
	}

	return &Producer{
		Config: cfg,
	}, nil
}

type noteRequest struct {
	Text string `json:"text"`

	VoiceType string `json:"voice_type,omitempty"`
	Style     string `json:"style,omitempty"`

	Speakers []noteSpeaker `json:"speakers,omitempty"`
}

type noteSpeaker struct {
	VoiceID string `json:"voice_id"`
	Role    string `json:"role"`
}

type noteResponse struct {
	PlayNoteID string `json:"playNoteId"`

	Status string `json:"status"`

	AudioURL   string `json:"audioUrl"`
	Transcript string `json:"transcript"`

	Message string `json:"message"`
}

func (p *Producer) Produce(ctx context.Context, input string, options *provider.ProduceOptions) (*provider.Production, error) {
	if options == nil {
		options = new(provider.ProduceOptions)
	}

	if strings.TrimSpace(input) == "" {
		return nil, provider.NewValidationError("text required")
	}

	id, err := p.createNote(ctx, input)

	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < p.pollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case <-time.After(p.pollInterval):
		}

		note, err := p.getNote(ctx, id)

		if err != nil {
			return nil, err
		}

		if note.Status == "completed" {
			return &provider.Production{
				ID: id,

				URL:        note.AudioURL,
				Transcript: note.Transcript,
			}, nil
		}

		if note.Status != "" && note.Status != "generating" && note.Status != "processing" {
			return nil, provider.NewFatalError("production failed: " + note.Status)
		}
	}

	return nil, provider.NewFatalError("production timed out")
}

func (p *Producer) createNote(ctx context.Context, text string) (string, error) {
	body := noteRequest{
		Text: text,

		VoiceType: "conversational",
		Style:     "podcast",

		Speakers: []noteSpeaker{
			{VoiceID: "male_01", Role: "host"},
			{VoiceID: "female_01", Role: "co-host"},
		},
	}

	data, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint(""), bytes.NewReader(data))

	if err != nil {
		return "", err
	}

	resp, err := p.do(req)

	if err != nil {
		return "", err
	}

	if resp.PlayNoteID == "" {
		return "", provider.NewFatalError("no play note id returned")
	}

	return resp.PlayNoteID, nil
}

func (p *Producer) getNote(ctx context.Context, id string) (*noteResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint(id), nil)

	if err != nil {
		return nil, err
	}

	return p.do(req)
}

func (p *Producer) endpoint(id string) string {
	result := strings.TrimRight(p.url, "/") + "/api/v1/playnotes"

	if id != "" {
		result += "/" + url.PathEscape(id)
	}

	return result
}

func (p *Producer) do(req *http.Request) (*noteResponse, error) {
	req.Header.Set("Authorization", p.token)
	req.Header.Set("X-USER-ID", p.user)
	req.Header.Set("Accept", "application/json")

	if req.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.client.Do(req)

	if err != nil {
		return nil, provider.NewTransientError(err.Error())
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		detail, _ := io.ReadAll(resp.Body)
		return nil, provider.NewFatalError(resp.Status + ": " + string(detail))
	}

	var result noteResponse

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}
