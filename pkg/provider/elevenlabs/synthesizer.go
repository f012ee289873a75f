package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jlindh/studiocast/pkg/provider"

	"github.com/google/uuid"
)

var _ provider.Synthesizer = (*Synthesizer)(nil)

type Synthesizer struct {
	*Config
}

func NewSynthesizer(url, model string, options ...Option) (*Synthesizer, error) {
	cfg := &Config{
		url:   url,
		model: model,
	}

	for _, option := range options {
		option(cfg)
	}

	if cfg.url == "" {
		cfg.url = "https://api.elevenlabs.io/"
	}

	if cfg.client == nil {
		cfg.client = http.DefaultClient
	}

	return &Synthesizer{
		Config: cfg,
	}, nil
}

type speechRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id,omitempty"`

	VoiceSettings *voiceSettings `json:"voice_settings,omitempty"`
}

type voiceSettings struct {
	Stability       float32 `json:"stability"`
	SimilarityBoost float32 `json:"similarity_boost"`
}

func (s *Synthesizer) Synthesize(ctx context.Context, content string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	if options == nil {
		options = new(provider.SynthesizeOptions)
	}

	if options.Voice == "" {
		return nil, provider.NewValidationError("voice id required")
	}

	body := speechRequest{
		Text:    content,
		ModelID: s.model,
	}

	if options.Stability != nil || options.Similarity != nil {
		settings := &voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.75,
		}

		if options.Stability != nil {
			settings.Stability = *options.Stability
		}

		if options.Similarity != nil {
			settings.SimilarityBoost = *options.Similarity
		}

		body.VoiceSettings = settings
	}

	data, _ := json.Marshal(body)

	url := strings.TrimRight(s.url, "/") + "/v1/text-to-speech/" + options.Voice

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))

	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", s.token)

	resp, err := s.client.Do(req)

	if err != nil {
		return nil, provider.NewTransientError(err.Error())
	}

	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, provider.NewRateLimitError(resp.Status, retryAfter(resp))
	}

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(resp.Body)
		return nil, provider.NewFatalError(resp.Status + ": " + string(detail))
	}

	audio, err := io.ReadAll(resp.Body)

	if err != nil {
		return nil, err
	}

	return &provider.Synthesis{
		ID:    uuid.NewString(),
		Model: s.model,

		Content:     audio,
		ContentType: "audio/mpeg",
	}, nil
}

func retryAfter(resp *http.Response) time.Duration {
	val := resp.Header.Get("Retry-After")

	if val == "" {
		return 0
	}

	seconds, err := strconv.ParseFloat(val, 64)

	if err != nil {
		return 0
	}

	return time.Duration(seconds * float64(time.Second))
}
