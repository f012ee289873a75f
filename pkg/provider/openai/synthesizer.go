package openai

import (
	"context"
	"io"

	"github.com/jlindh/studiocast/pkg/provider"

	"github.com/google/uuid"
	"github.com/openai/openai-go/v3"
)

var _ provider.Synthesizer = (*Synthesizer)(nil)

type Synthesizer struct {
	*Config
	speech openai.AudioSpeechService
}

func NewSynthesizer(url, model string, options ...Option) (*Synthesizer, error) {
	cfg := &Config{
		url:   url,
		model: model,
	}

	for _, option := range options {
		option(cfg)
	}

	return &Synthesizer{
		Config: cfg,
		speech: openai.NewAudioSpeechService(cfg.Options()...),
	}, nil
}

func (s *Synthesizer) Synthesize(ctx context.Context, content string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	if options == nil {
		options = new(provider.SynthesizeOptions)
	}

	voice := openai.AudioSpeechNewParamsVoiceUnion{
		OfString: openai.String(string(openai.AudioSpeechNewParamsVoiceStringAlloy)),
	}

	if options.Voice != "" {
		voice = openai.AudioSpeechNewParamsVoiceUnion{
			OfString: openai.String(options.Voice),
		}
	}

	req := openai.AudioSpeechNewParams{
		Model: s.model,
		Input: content,

		Voice: voice,

		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	}

	if options.Speed != nil {
		req.Speed = openai.Float(float64(*options.Speed))
	}

	if options.Instructions != "" {
		req.Instructions = openai.String(options.Instructions)
	}

	result, err := s.speech.New(ctx, req)

	if err != nil {
		return nil, convertError(err)
	}

	data, err := io.ReadAll(result.Body)

	if err != nil {
		return nil, err
	}

	return &provider.Synthesis{
		ID:    uuid.NewString(),
		Model: s.model,

		Content:     data,
		ContentType: "audio/mpeg",
	}, nil
}
