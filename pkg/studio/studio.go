package studio

import (
	"context"
	"log/slog"

	"github.com/jlindh/studiocast/pkg/audio"
	"github.com/jlindh/studiocast/pkg/synth"
	"github.com/jlindh/studiocast/pkg/transcript"
)

// Mixer lays background music under an assembled speech track.
type Mixer interface {
	Mix(ctx context.Context, speech *audio.Track, musicPath string, spec audio.MixSpec) (*audio.Track, error)
}

// Studio runs the full script-to-audio pipeline: parse, synthesize, assemble
// and optionally mix with background music.
type Studio struct {
	parser *transcript.Parser
	engine *synth.Engine

	mixer     Mixer
	musicPath string
	mixSpec   audio.MixSpec
}

type Option func(*Studio)

// WithMusic enables background music mixing. Without it Produce returns the
// plain speech track.
func WithMusic(mixer Mixer, path string, spec audio.MixSpec) Option {
	return func(s *Studio) {
		s.mixer = mixer
		s.musicPath = path
		s.mixSpec = spec
	}
}

func New(parser *transcript.Parser, engine *synth.Engine, options ...Option) *Studio {
	s := &Studio{
		parser: parser,
		engine: engine,

		mixSpec: audio.DefaultMixSpec(),
	}

	for _, option := range options {
		option(s)
	}

	return s
}

// Produce renders a speaker-labeled script into one finished track. An empty
// script yields an empty track, not an error. Any synthesis or mix failure
// aborts the run without a partial artifact.
func (s *Studio) Produce(ctx context.Context, script string) (*audio.Track, error) {
	utterances := s.parser.Parse(script)

	if len(utterances) == 0 {
		return audio.Assemble(nil), nil
	}

	slog.InfoContext(ctx, "producing podcast audio", "utterances", len(utterances))

	segments, err := s.engine.SynthesizeAll(ctx, utterances)

	if err != nil {
		return nil, err
	}

	speech := audio.Assemble(segments)

	if s.mixer == nil || s.musicPath == "" {
		return speech, nil
	}

	return s.mixer.Mix(ctx, speech, s.musicPath, s.mixSpec)
}

// Narrate renders short-form text (a follow-up answer) into a speech track
// without music.
func (s *Studio) Narrate(ctx context.Context, text string) (*audio.Track, error) {
	utterances := s.parser.Parse(text)

	if len(utterances) == 0 {
		return audio.Assemble(nil), nil
	}

	segments, err := s.engine.SynthesizeAll(ctx, utterances)

	if err != nil {
		return nil, err
	}

	return audio.Assemble(segments), nil
}
