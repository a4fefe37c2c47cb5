// Package engine exposes the review engine to transport layers: a session
// registry keyed by an opaque user id, with one StartSession/SubmitAnswer
// cycle per displayed card. Sessions are held in memory only; losing them
// on restart simply means the user starts a fresh batch.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mpetrov/cardbox/internal/batch"
	"github.com/mpetrov/cardbox/internal/card"
	"github.com/mpetrov/cardbox/internal/session"
	"github.com/mpetrov/cardbox/internal/spacedrep"
	"github.com/mpetrov/cardbox/internal/store"
)

// ErrNoSession is returned when an answer arrives for a user without an
// active session.
var ErrNoSession = errors.New("no active session for user")

// MaxDisplayOptions caps the answer choices shown per card. Cards with
// fewer stored options are padded with distractors drawn from other
// cards' correct answers.
const MaxDisplayOptions = 4

// DefaultBatchLimit is the batch size used when the config leaves it zero.
const DefaultBatchLimit = 10

// Store is the persistence surface the engine needs beyond batch selection.
type Store interface {
	OptionsForCard(ctx context.Context, cardID int64) ([]card.Option, error)
	DistractorAnswers(ctx context.Context, cardID int64, n int) ([]string, error)
	CommitAnswer(ctx context.Context, cardID int64, upd store.ScheduleUpdate, rev card.Review) error
}

// Config tunes the engine. Zero values fall back to production defaults.
type Config struct {
	// BatchLimit is the maximum cards per review batch.
	BatchLimit int

	// Now supplies the clock; tests pin it for deterministic scheduling.
	Now func() time.Time
}

// Engine drives review sessions. Safe for concurrent use; each user's
// session remains logically single-threaded behind the registry lock.
type Engine struct {
	store    Store
	selector *batch.Selector
	limit    int
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*session.State
}

// New creates an engine over the given store and batch selector.
func New(st Store, selector *batch.Selector, cfg Config) *Engine {
	if cfg.BatchLimit <= 0 {
		cfg.BatchLimit = DefaultBatchLimit
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Engine{
		store:    st,
		selector: selector,
		limit:    cfg.BatchLimit,
		now:      cfg.Now,
		sessions: make(map[string]*session.State),
	}
}

// SessionView is what the transport renders for one displayed card.
type SessionView struct {
	SessionID string
	CardID    int64
	Category  string
	Question  string
	Options   []string
	Remaining int // cards left in the queue after this one
}

// StartResult is the outcome of a session start. NothingToReview is a
// normal terminal outcome, not an error: the store holds no cards at all.
type StartResult struct {
	NothingToReview bool
	View            *SessionView
}

// StartSession begins (or restarts) a review session for the user and
// returns the first card view. Any previous session for the same user is
// discarded.
func (e *Engine) StartSession(ctx context.Context, userID string) (*StartResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	s := session.NewState(uuid.New().String(), userID)

	s.Phase = session.PhaseBatchLoading
	cards, err := e.selector.SelectBatch(ctx, now, e.limit)
	if err != nil {
		return nil, fmt.Errorf("load batch: %w", err)
	}
	if len(cards) == 0 {
		// Empty means a card-less store; no session is registered.
		return &StartResult{NothingToReview: true}, nil
	}

	session.LoadBatch(s, cards, now)
	view, err := e.showNext(ctx, s)
	if err != nil {
		return nil, err
	}
	e.sessions[userID] = s
	return &StartResult{View: view}, nil
}

// AnswerResult reports one graded answer back to the transport.
type AnswerResult struct {
	Correct       bool
	CorrectAnswer string
	Explanation   string
	Finished      bool
	Stats         session.Stats
	Summary       *session.Summary // set when Finished
	Next          *SessionView     // set when not Finished
}

// SubmitAnswer grades one answer for the user's current card. The cardID
// must identify the card that is actually on display; a mismatch (double
// submission, out-of-order delivery) is rejected with
// session.ErrStaleAnswer and leaves every piece of state untouched.
//
// A store failure during the commit is returned to the caller as-is: the
// engine does not retry, and neither the card schedule, the review log,
// nor the in-memory stats advance.
func (e *Engine) SubmitAnswer(ctx context.Context, userID string, cardID int64, answer string) (*AnswerResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.sessions[userID]
	if !ok {
		return nil, ErrNoSession
	}

	correct, err := session.Grade(s, cardID, answer)
	if err != nil {
		return nil, err
	}

	current := s.Current
	now := e.now()
	res := spacedrep.Schedule(current.Ease, current.ReviewCount, correct, now)
	upd := store.ScheduleUpdate{
		Ease:        res.Ease,
		ReviewCount: res.ReviewCount,
		LastReview:  res.LastReview,
		NextReview:  res.NextReview,
	}
	rev := card.Review{
		CardID:     current.ID,
		UserAnswer: answer,
		Correct:    correct,
		ReviewedAt: now,
	}
	if err := e.store.CommitAnswer(ctx, current.ID, upd, rev); err != nil {
		return nil, fmt.Errorf("commit answer: %w", err)
	}

	session.Apply(s, correct)

	result := &AnswerResult{
		Correct:       correct,
		CorrectAnswer: s.CorrectAnswer,
		Explanation:   current.Explanation,
		Stats:         s.Stats,
	}

	if next := session.Advance(s); next == nil {
		sum := session.BuildSummary(s)
		result.Finished = true
		result.Summary = &sum
		delete(e.sessions, userID)
		return result, nil
	}

	view, err := e.display(ctx, s)
	if err != nil {
		return nil, err
	}
	result.Next = view
	return result, nil
}

// EndSession drops the user's session, if any. The next start builds a
// fresh batch.
func (e *Engine) EndSession(userID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.sessions, userID)
}

// showNext advances to the queue front and builds its view.
func (e *Engine) showNext(ctx context.Context, s *session.State) (*SessionView, error) {
	if session.Advance(s) == nil {
		return nil, fmt.Errorf("advance: empty queue for session %s", s.ID)
	}
	return e.display(ctx, s)
}

// display snapshots the current card's options into the session and
// returns the transport view. Option order is shuffled per display.
func (e *Engine) display(ctx context.Context, s *session.State) (*SessionView, error) {
	c := s.Current

	opts, err := e.store.OptionsForCard(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("load options for card %d: %w", c.ID, err)
	}

	labels, correct := card.DisplayOptions(opts)

	// Pad short option lists with other cards' correct answers, the way
	// the card has a full multiple-choice face even when the deck only
	// stored the right answer. Display-only, never persisted.
	if correct != "" && len(labels) < MaxDisplayOptions {
		distractors, err := e.store.DistractorAnswers(ctx, c.ID, MaxDisplayOptions-len(labels))
		if err != nil {
			return nil, fmt.Errorf("load distractors for card %d: %w", c.ID, err)
		}
		seen := make(map[string]bool, len(labels))
		for _, l := range labels {
			seen[l] = true
		}
		for _, d := range distractors {
			if !seen[d] {
				labels = append(labels, d)
				seen[d] = true
			}
		}
	}

	e.selector.Shuffle(labels)
	session.Display(s, labels, correct)

	return &SessionView{
		SessionID: s.ID,
		CardID:    c.ID,
		Category:  c.Category,
		Question:  c.Question,
		Options:   labels,
		Remaining: s.Remaining(),
	}, nil
}
