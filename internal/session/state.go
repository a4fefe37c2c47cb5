package session

import (
	"time"

	"github.com/mpetrov/cardbox/internal/card"
)

// Phase represents the current phase of a review session.
type Phase int

const (
	PhaseIdle           Phase = iota // No active queue yet
	PhaseBatchLoading                // Batch selection in progress
	PhaseAwaitingAnswer              // Exactly one card displayed
	PhaseFinished                    // Queue drained, summary available
)

// Stats tracks graded answers within one session. Total counts every
// graded (non-stale) answer; stale submissions never touch it.
type Stats struct {
	Correct int
	Total   int
}

// State is the ephemeral per-user session. It lives in process memory
// only and is discarded on completion, restart, or process exit.
type State struct {
	// ID is the UUID assigned at session start.
	ID string

	// UserID is the opaque user/chat identifier supplied by the transport.
	UserID string

	// Queue holds the remaining cards, front first.
	Queue []card.Card

	// Current is the card on display, nil between cards and after finish.
	Current *card.Card

	// Options are the shuffled answer labels shown for Current.
	Options []string

	// CorrectAnswer is snapshotted at display time. Grading compares
	// against this snapshot, never a fresh store read, so option edits
	// mid-display cannot skew the result. Empty for placeholder-only
	// cards, which grade every answer as wrong.
	CorrectAnswer string

	// Stats accumulates graded answers.
	Stats Stats

	// Phase is the current lifecycle phase.
	Phase Phase

	// StartedAt is when the batch was loaded.
	StartedAt time.Time
}

// NewState creates an idle session for the given user.
func NewState(id, userID string) *State {
	return &State{
		ID:     id,
		UserID: userID,
		Phase:  PhaseIdle,
	}
}

// Remaining returns the number of cards left after the current one.
func (s *State) Remaining() int {
	return len(s.Queue)
}

// Summary holds the figures shown when a session finishes.
type Summary struct {
	Correct int
	Total   int
	Percent float64
}

// BuildSummary computes the end-of-session summary from accumulated stats.
func BuildSummary(s *State) Summary {
	var percent float64
	if s.Stats.Total > 0 {
		percent = float64(s.Stats.Correct) / float64(s.Stats.Total) * 100
	}
	return Summary{
		Correct: s.Stats.Correct,
		Total:   s.Stats.Total,
		Percent: percent,
	}
}
