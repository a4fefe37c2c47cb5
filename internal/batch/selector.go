package batch

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/mpetrov/cardbox/internal/card"
)

// CardSource provides the card reads the selector needs. Implemented by
// the SQLite store; tests supply fakes.
type CardSource interface {
	// DueCards returns cards with next_review <= now, soonest first, up to limit.
	DueCards(ctx context.Context, now time.Time, limit int) ([]card.Card, error)

	// UpcomingCards returns cards with next_review > now, soonest first, up to limit.
	UpcomingCards(ctx context.Context, now time.Time, limit int) ([]card.Card, error)
}

// Selector assembles bounded review batches: due cards first in randomized
// order, then the soonest-due upcoming cards to fill the remainder.
type Selector struct {
	source CardSource

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector creates a selector. The random source drives the due-card
// shuffle; pass a seeded source in tests for deterministic batches.
func NewSelector(source CardSource, rng *rand.Rand) *Selector {
	return &Selector{source: source, rng: rng}
}

// SelectBatch returns up to limit cards to review at the given time.
//
// An empty result means the store holds no cards at all: when any cards
// exist, the upcoming-card fallback guarantees at least one entry, so
// callers can treat empty as "nothing to review" rather than "short batch".
func (s *Selector) SelectBatch(ctx context.Context, now time.Time, limit int) ([]card.Card, error) {
	if limit <= 0 {
		return nil, nil
	}

	due, err := s.source.DueCards(ctx, now, limit)
	if err != nil {
		return nil, fmt.Errorf("select due cards: %w", err)
	}

	s.shuffle(due)

	if len(due) >= limit {
		return due[:limit], nil
	}

	// Fill the remainder with the soonest not-yet-due cards, closest first
	// and unshuffled, so a small deck still yields a full session.
	upcoming, err := s.source.UpcomingCards(ctx, now, limit-len(due))
	if err != nil {
		return nil, fmt.Errorf("select upcoming cards: %w", err)
	}

	return append(due, upcoming...), nil
}

func (s *Selector) shuffle(cards []card.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// Shuffle randomizes a slice of answer labels in place. The session uses it
// to vary option order per display without sharing unsynchronized RNG state.
func (s *Selector) Shuffle(labels []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(len(labels), func(i, j int) {
		labels[i], labels[j] = labels[j], labels[i]
	})
}
