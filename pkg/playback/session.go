package playback

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jlindh/studiocast/pkg/audio"

	"github.com/google/uuid"
)

type Mode string

const (
	ModePlaying   Mode = "playing"
	ModePaused    Mode = "paused"
	ModeAnswering Mode = "answering"
)

var (
	// ErrQuestionPending is returned when a follow-up question is asked while
	// another one is still being answered.
	ErrQuestionPending = errors.New("a question is already being answered")
)

// Answerer produces speaker-labeled answer text for a listener question.
type Answerer interface {
	Answer(ctx context.Context, question, scriptContext string) (string, error)
}

// Narrator renders short-form text into a speech track without music.
type Narrator interface {
	Narrate(ctx context.Context, text string) (*audio.Track, error)
}

// Session tracks playback of one produced episode and runs the follow-up
// flow: pause, answer, resume at the exact pre-question position. A session
// is owned by a single listener; its state needs no cross-session locking.
type Session struct {
	ID string

	answerer Answerer
	narrator Narrator

	transcript string

	mu       sync.Mutex
	mode     Mode
	position time.Duration
}

func NewSession(transcript string, answerer Answerer, narrator Narrator) *Session {
	return &Session{
		ID: uuid.NewString(),

		answerer: answerer,
		narrator: narrator,

		transcript: transcript,

		mode: ModePaused,
	}
}

func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mode
}

func (s *Session) Position() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.position
}

// Play resumes main playback at the stored position.
func (s *Session) Play() (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == ModeAnswering {
		return 0, ErrQuestionPending
	}

	s.mode = ModePlaying

	return s.position, nil
}

// Pause stops main playback at the given position reported by the player.
func (s *Session) Pause(position time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == ModeAnswering {
		return ErrQuestionPending
	}

	s.mode = ModePaused
	s.position = position

	return nil
}

// AskQuestion runs the follow-up flow. The main track position is frozen at
// the given timestamp for the whole answer cycle and is restored verbatim
// afterwards, whether the answer succeeded or not. Concurrent asks against
// the same session are rejected.
func (s *Session) AskQuestion(ctx context.Context, question string, position time.Duration) (*audio.Track, error) {
	s.mu.Lock()

	if s.mode == ModeAnswering {
		s.mu.Unlock()
		return nil, ErrQuestionPending
	}

	s.mode = ModeAnswering
	s.position = position

	s.mu.Unlock()

	// resume is always reachable: the session drops back to paused at the
	// captured position even when the answer fails
	defer func() {
		s.mu.Lock()
		s.mode = ModePaused
		s.position = position
		s.mu.Unlock()
	}()

	text, err := s.answerer.Answer(ctx, question, s.transcript)

	if err != nil {
		return nil, err
	}

	return s.narrator.Narrate(ctx, text)
}
