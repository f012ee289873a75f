package voice

import (
	"errors"
	"strings"
)

// Assignment maps speaker labels to synthesis voice identifiers. The table
// must be a bijection over the known speaker set so distinct speakers never
// share a voice within a run.
type Assignment struct {
	voices map[string]string

	fallback string
}

func NewAssignment(fallback string, voices map[string]string) (*Assignment, error) {
	if len(voices) == 0 {
		return nil, errors.New("no voices configured")
	}

	table := make(map[string]string, len(voices))
	seen := make(map[string]string, len(voices))

	for speaker, voice := range voices {
		if voice == "" {
			return nil, errors.New("empty voice for speaker: " + speaker)
		}

		key := strings.ToLower(speaker)

		if other, ok := seen[voice]; ok {
			return nil, errors.New("voice " + voice + " assigned to both " + other + " and " + speaker)
		}

		table[key] = voice
		seen[voice] = speaker
	}

	if _, ok := table[strings.ToLower(fallback)]; !ok {
		return nil, errors.New("no voice configured for default speaker: " + fallback)
	}

	return &Assignment{
		voices: table,

		fallback: fallback,
	}, nil
}

// Resolve returns the voice for a speaker. It is total: unknown speakers map
// to the default speaker's voice.
func (a *Assignment) Resolve(speaker string) string {
	if voice, ok := a.voices[strings.ToLower(speaker)]; ok {
		return voice
	}

	return a.voices[strings.ToLower(a.fallback)]
}
