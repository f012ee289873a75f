package synth

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jlindh/studiocast/pkg/provider"
	"github.com/jlindh/studiocast/pkg/transcript"
	"github.com/jlindh/studiocast/pkg/voice"

	"github.com/stretchr/testify/require"
)

// mockSynthesizer is a configurable mock tracking call counts and in-flight
// concurrency.
type mockSynthesizer struct {
	mu sync.Mutex

	delay time.Duration

	// failures maps input text to a queue of errors returned before success
	failures map[string][]error

	calls    atomic.Int64
	inFlight atomic.Int64
	maxSeen  atomic.Int64
}

func (m *mockSynthesizer) Synthesize(ctx context.Context, input string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	m.calls.Add(1)

	current := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)

	for {
		seen := m.maxSeen.Load()

		if current <= seen || m.maxSeen.CompareAndSwap(seen, current) {
			break
		}
	}

	if m.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(m.delay):
		}
	}

	m.mu.Lock()
	if queue := m.failures[input]; len(queue) > 0 {
		err := queue[0]
		m.failures[input] = queue[1:]
		m.mu.Unlock()
		return nil, err
	}
	m.mu.Unlock()

	return &provider.Synthesis{
		Content:     []byte("audio:" + options.Voice + ":" + input),
		ContentType: "audio/mpeg",
	}, nil
}

func testVoices(t *testing.T) *voice.Assignment {
	t.Helper()

	voices, err := voice.NewAssignment("Chris", map[string]string{
		"Chris": "voice-a",
		"Jenna": "voice-b",
	})
	require.NoError(t, err)

	return voices
}

func testUtterances(n int) []transcript.Utterance {
	var result []transcript.Utterance

	speakers := []string{"Chris", "Jenna"}

	for i := range n {
		result = append(result, transcript.Utterance{
			Speaker: speakers[i%2],
			Text:    fmt.Sprintf("line %d", i),

			Index: i,
		})
	}

	return result
}

func TestSynthesizeAll(t *testing.T) {
	t.Run("preserves order", func(t *testing.T) {
		mock := &mockSynthesizer{delay: 5 * time.Millisecond}
		engine := NewEngine(mock, testVoices(t), WithConcurrency(3))

		utterances := testUtterances(8)

		results, err := engine.SynthesizeAll(t.Context(), utterances)
		require.NoError(t, err)
		require.Len(t, results, 8)

		for i, u := range utterances {
			voice := "voice-a"

			if u.Speaker == "Jenna" {
				voice = "voice-b"
			}

			require.Equal(t, []byte("audio:"+voice+":"+u.Text), results[i])
		}
	})

	t.Run("bounds concurrency", func(t *testing.T) {
		mock := &mockSynthesizer{delay: 10 * time.Millisecond}
		engine := NewEngine(mock, testVoices(t), WithConcurrency(3))

		_, err := engine.SynthesizeAll(t.Context(), testUtterances(10))
		require.NoError(t, err)

		require.LessOrEqual(t, mock.maxSeen.Load(), int64(3))
	})

	t.Run("empty input", func(t *testing.T) {
		mock := &mockSynthesizer{}
		engine := NewEngine(mock, testVoices(t))

		results, err := engine.SynthesizeAll(t.Context(), nil)
		require.NoError(t, err)
		require.Empty(t, results)
		require.Zero(t, mock.calls.Load())
	})

	t.Run("retries rate limit then succeeds", func(t *testing.T) {
		mock := &mockSynthesizer{
			failures: map[string][]error{
				"line 0": {
					provider.NewRateLimitError("too many requests", time.Millisecond),
				},
			},
		}

		engine := NewEngine(mock, testVoices(t), WithRetryBase(time.Millisecond))

		results, err := engine.SynthesizeAll(t.Context(), testUtterances(1))
		require.NoError(t, err)
		require.Len(t, results, 1)
		require.Equal(t, int64(2), mock.calls.Load())
	})

	t.Run("bounded retry count", func(t *testing.T) {
		mock := &mockSynthesizer{
			failures: map[string][]error{
				"line 0": {
					provider.NewRateLimitError("429", time.Millisecond),
					provider.NewRateLimitError("429", time.Millisecond),
					provider.NewRateLimitError("429", time.Millisecond),
					provider.NewRateLimitError("429", time.Millisecond),
				},
			},
		}

		engine := NewEngine(mock, testVoices(t), WithRetryBase(time.Millisecond), WithMaxAttempts(3))

		_, err := engine.SynthesizeAll(t.Context(), testUtterances(1))
		require.Error(t, err)
		require.Equal(t, provider.ErrorKindFatal, provider.KindOf(err))
		require.Equal(t, int64(3), mock.calls.Load())
	})

	t.Run("fatal error aborts without retry", func(t *testing.T) {
		mock := &mockSynthesizer{
			failures: map[string][]error{
				"line 0": {
					provider.NewFatalError("500 internal server error"),
				},
			},
		}

		engine := NewEngine(mock, testVoices(t))

		results, err := engine.SynthesizeAll(t.Context(), testUtterances(1))
		require.Error(t, err)
		require.Nil(t, results)
		require.Equal(t, int64(1), mock.calls.Load())
	})

	t.Run("no partial results on failure", func(t *testing.T) {
		mock := &mockSynthesizer{
			failures: map[string][]error{
				"line 3": {
					provider.NewFatalError("boom"),
				},
			},
		}

		engine := NewEngine(mock, testVoices(t), WithConcurrency(2))

		results, err := engine.SynthesizeAll(t.Context(), testUtterances(6))
		require.Error(t, err)
		require.Nil(t, results)
	})
}
