package session

import (
	"errors"
	"strings"
	"time"

	"github.com/mpetrov/cardbox/internal/card"
)

// ErrStaleAnswer is returned when a submitted answer does not correspond
// to the session's current card: a duplicate submission, an out-of-order
// delivery, or a submission outside the awaiting-answer phase. Stale
// answers are rejected without touching stats, the scheduler, or the
// review log.
var ErrStaleAnswer = errors.New("answer does not match the current card")

// LoadBatch installs a freshly selected batch and zeroes the stats.
// Call Advance afterwards to bring the first card up.
func LoadBatch(s *State, cards []card.Card, now time.Time) {
	s.Queue = cards
	s.Current = nil
	s.Options = nil
	s.CorrectAnswer = ""
	s.Stats = Stats{}
	s.StartedAt = now
	s.Phase = PhaseBatchLoading
}

// Advance pops the queue front into Current and enters the
// awaiting-answer phase. With the queue drained it finishes the session
// and returns nil.
func Advance(s *State) *card.Card {
	s.Options = nil
	s.CorrectAnswer = ""

	if len(s.Queue) == 0 {
		s.Current = nil
		s.Phase = PhaseFinished
		return nil
	}

	c := s.Queue[0]
	s.Queue = s.Queue[1:]
	s.Current = &c
	s.Phase = PhaseAwaitingAnswer
	return s.Current
}

// Display records what the user is shown for the current card: the
// shuffled option labels and the snapshot of the correct answer.
func Display(s *State, options []string, correctAnswer string) {
	s.Options = options
	s.CorrectAnswer = strings.TrimSpace(correctAnswer)
}

// Grade validates a submission against the current card and returns the
// outcome without mutating any state. A cardID mismatch or a submission
// outside the awaiting-answer phase yields ErrStaleAnswer.
//
// Comparison is exact string equality after trimming leading and trailing
// whitespace on both sides. A card shown with only the placeholder option
// has an empty snapshot and grades every answer as wrong.
func Grade(s *State, cardID int64, submitted string) (bool, error) {
	if s.Phase != PhaseAwaitingAnswer || s.Current == nil || s.Current.ID != cardID {
		return false, ErrStaleAnswer
	}
	if s.CorrectAnswer == "" {
		return false, nil
	}
	return strings.TrimSpace(submitted) == s.CorrectAnswer, nil
}

// Apply records a graded answer in the session stats. Called only after
// the outcome has been durably persisted, so a store failure never leaves
// the in-memory stats ahead of the card store.
func Apply(s *State, correct bool) {
	s.Stats.Total++
	if correct {
		s.Stats.Correct++
	}
}
