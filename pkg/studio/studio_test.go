package studio

import (
	"context"
	"testing"

	"github.com/jlindh/studiocast/pkg/audio"
	"github.com/jlindh/studiocast/pkg/provider"
	"github.com/jlindh/studiocast/pkg/synth"
	"github.com/jlindh/studiocast/pkg/transcript"
	"github.com/jlindh/studiocast/pkg/voice"

	"github.com/stretchr/testify/require"
)

type stubSynthesizer struct {
	err error
}

func (s *stubSynthesizer) Synthesize(ctx context.Context, input string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	if s.err != nil {
		return nil, s.err
	}

	return &provider.Synthesis{
		Content:     []byte("<" + options.Voice + ":" + input + ">"),
		ContentType: "audio/mpeg",
	}, nil
}

type stubMixer struct {
	called bool
	err    error
}

func (m *stubMixer) Mix(ctx context.Context, speech *audio.Track, musicPath string, spec audio.MixSpec) (*audio.Track, error) {
	m.called = true

	if m.err != nil {
		return nil, m.err
	}

	return &audio.Track{
		Data: append([]byte("mixed:"), speech.Data...),

		ContentType: "audio/mpeg",
	}, nil
}

func newTestStudio(t *testing.T, synthesizer provider.Synthesizer, options ...Option) *Studio {
	t.Helper()

	parser, err := transcript.NewParser("Chris", "Chris", "Jenna")
	require.NoError(t, err)

	voices, err := voice.NewAssignment("Chris", map[string]string{
		"Chris": "voice-a",
		"Jenna": "voice-b",
	})
	require.NoError(t, err)

	return New(parser, synth.NewEngine(synthesizer, voices), options...)
}

func TestProduce(t *testing.T) {
	t.Run("two host script", func(t *testing.T) {
		s := newTestStudio(t, &stubSynthesizer{})

		track, err := s.Produce(t.Context(), "Chris: Hello.\nJenna: Hi there.")
		require.NoError(t, err)

		require.Equal(t, []byte("<voice-a:Hello.><voice-b:Hi there.>"), track.Data)
	})

	t.Run("empty script is a no-op", func(t *testing.T) {
		s := newTestStudio(t, &stubSynthesizer{})

		track, err := s.Produce(t.Context(), "")
		require.NoError(t, err)
		require.NotNil(t, track)
		require.Empty(t, track.Data)
	})

	t.Run("mixes when music configured", func(t *testing.T) {
		mixer := &stubMixer{}
		s := newTestStudio(t, &stubSynthesizer{}, WithMusic(mixer, "background.mp3", audio.DefaultMixSpec()))

		track, err := s.Produce(t.Context(), "Chris: Hello.")
		require.NoError(t, err)
		require.True(t, mixer.called)
		require.Equal(t, []byte("mixed:<voice-a:Hello.>"), track.Data)
	})

	t.Run("mix failure aborts without fallback", func(t *testing.T) {
		mixer := &stubMixer{err: provider.NewFatalError("ffmpeg exploded")}
		s := newTestStudio(t, &stubSynthesizer{}, WithMusic(mixer, "background.mp3", audio.DefaultMixSpec()))

		track, err := s.Produce(t.Context(), "Chris: Hello.")
		require.Error(t, err)
		require.Nil(t, track)
	})

	t.Run("synthesis failure aborts", func(t *testing.T) {
		s := newTestStudio(t, &stubSynthesizer{err: provider.NewFatalError("synthesis down")})

		track, err := s.Produce(t.Context(), "Chris: Hello.")
		require.Error(t, err)
		require.Nil(t, track)
		require.Equal(t, provider.ErrorKindFatal, provider.KindOf(err))
	})

	t.Run("unknown speaker uses default voice", func(t *testing.T) {
		s := newTestStudio(t, &stubSynthesizer{})

		track, err := s.Produce(t.Context(), "Moderator: Welcome.")
		require.NoError(t, err)
		require.Equal(t, []byte("<voice-a:Welcome.>"), track.Data)
	})
}

func TestNarrate(t *testing.T) {
	t.Run("skips music", func(t *testing.T) {
		mixer := &stubMixer{}
		s := newTestStudio(t, &stubSynthesizer{}, WithMusic(mixer, "background.mp3", audio.DefaultMixSpec()))

		track, err := s.Narrate(t.Context(), "Jenna: Quick answer.")
		require.NoError(t, err)
		require.False(t, mixer.called)
		require.Equal(t, []byte("<voice-b:Quick answer.>"), track.Data)
	})
}
