package replicate

import (
	"context"
	"errors"
	"io"
	"slices"

	"github.com/jlindh/studiocast/pkg/provider"

	"github.com/google/uuid"
)

var _ provider.Synthesizer = (*Synthesizer)(nil)

type Synthesizer struct {
	*Client

	model string
}

const (
	SpeechTurbo string = "minimax/speech-02-turbo"
	SpeechHD    string = "minimax/speech-02-hd"
)

var SupportedModels = []string{
	SpeechTurbo,
	SpeechHD,
}

func NewSynthesizer(model string, options ...Option) (*Synthesizer, error) {
	if !slices.Contains(SupportedModels, model) {
		return nil, errors.New("unsupported model")
	}

	client, err := New(model, options...)

	if err != nil {
		return nil, err
	}

	return &Synthesizer{
		Client: client,

		model: model,
	}, nil
}

func (s *Synthesizer) Synthesize(ctx context.Context, content string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	if options == nil {
		options = new(provider.SynthesizeOptions)
	}

	// https://replicate.com/minimax/speech-02-turbo/api/schema#input-schema
	input := map[string]any{
		"text": content,
	}

	if options.Voice != "" {
		input["voice_id"] = options.Voice
	}

	if options.Speed != nil {
		input["speed"] = *options.Speed
	}

	resp, err := s.Run(ctx, input)

	if err != nil {
		return nil, provider.NewFatalError(err.Error())
	}

	return s.convertAudio(resp)
}

func (s *Synthesizer) convertAudio(output PredictionOutput) (*provider.Synthesis, error) {
	file, ok := output.(*FileOutput)

	if !ok {
		return nil, errors.New("unsupported output")
	}

	data, err := io.ReadAll(file)

	if err != nil {
		return nil, err
	}

	return &provider.Synthesis{
		ID:    uuid.New().String(),
		Model: s.model,

		Content:     data,
		ContentType: "audio/mpeg",
	}, nil
}
