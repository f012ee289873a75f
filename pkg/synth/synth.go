package synth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jlindh/studiocast/pkg/provider"
	"github.com/jlindh/studiocast/pkg/transcript"
	"github.com/jlindh/studiocast/pkg/voice"

	"golang.org/x/sync/errgroup"
)

const (
	defaultConcurrency = 3
	defaultMaxAttempts = 3
	defaultRetryBase   = time.Second
)

// Engine renders utterances through a synthesizer with bounded concurrency.
// Rate-limited calls are retried with exponential backoff; any other provider
// failure aborts the whole run, including in-flight calls.
type Engine struct {
	synthesizer provider.Synthesizer
	voices      *voice.Assignment

	concurrency int
	maxAttempts int
	retryBase   time.Duration

	stability  *float32
	similarity *float32
}

type Option func(*Engine)

func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

func WithMaxAttempts(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxAttempts = n
		}
	}
}

func WithRetryBase(val time.Duration) Option {
	return func(e *Engine) {
		if val > 0 {
			e.retryBase = val
		}
	}
}

func WithVoiceSettings(stability, similarity float32) Option {
	return func(e *Engine) {
		e.stability = &stability
		e.similarity = &similarity
	}
}

func NewEngine(synthesizer provider.Synthesizer, voices *voice.Assignment, options ...Option) *Engine {
	e := &Engine{
		synthesizer: synthesizer,
		voices:      voices,

		concurrency: defaultConcurrency,
		maxAttempts: defaultMaxAttempts,
		retryBase:   defaultRetryBase,
	}

	for _, option := range options {
		option(e)
	}

	return e
}

// SynthesizeAll returns one audio segment per utterance, in utterance-index
// order regardless of completion order. On failure no partial result is
// returned.
func (e *Engine) SynthesizeAll(ctx context.Context, utterances []transcript.Utterance) ([][]byte, error) {
	if len(utterances) == 0 {
		return nil, nil
	}

	results := make([][]byte, len(utterances))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for _, u := range utterances {
		g.Go(func() error {
			data, err := e.synthesize(ctx, u)

			if err != nil {
				return fmt.Errorf("utterance %d: %w", u.Index, err)
			}

			results[u.Index] = data

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (e *Engine) synthesize(ctx context.Context, u transcript.Utterance) ([]byte, error) {
	options := &provider.SynthesizeOptions{
		Voice: e.voices.Resolve(u.Speaker),

		Stability:  e.stability,
		Similarity: e.similarity,
	}

	var lastErr error

	for attempt := 0; attempt < e.maxAttempts; attempt++ {
		result, err := e.synthesizer.Synthesize(ctx, u.Text, options)

		if err == nil {
			return result.Content, nil
		}

		retryAfter, ok := provider.IsRateLimited(err)

		if !ok {
			return nil, err
		}

		lastErr = err

		if retryAfter <= 0 {
			retryAfter = e.retryBase
		}

		delay := retryAfter * (1 << attempt)

		slog.Debug("synthesis rate limited",
			"utterance", u.Index,
			"attempt", attempt+1,
			"delay", delay,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case <-time.After(delay):
		}
	}

	return nil, provider.NewFatalError("rate limit retries exhausted: " + lastErr.Error())
}
