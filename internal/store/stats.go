package store

import (
	"context"
	"fmt"
	"time"
)

// DeckCounts summarizes the card table for the stats command.
type DeckCounts struct {
	Total int
	Due   int
}

// CountCards returns the total number of cards and how many are due now.
func (s *Store) CountCards(ctx context.Context, now time.Time) (DeckCounts, error) {
	var dc DeckCounts
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cards`).Scan(&dc.Total)
	if err != nil {
		return dc, fmt.Errorf("count cards: %w", err)
	}
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cards WHERE next_review <= ?`, now).Scan(&dc.Due)
	if err != nil {
		return dc, fmt.Errorf("count due cards: %w", err)
	}
	return dc, nil
}

// ReviewCounts summarizes the append-only review log.
type ReviewCounts struct {
	Correct   int
	Incorrect int
}

// Total returns the number of logged reviews.
func (rc ReviewCounts) Total() int {
	return rc.Correct + rc.Incorrect
}

// Accuracy returns the fraction of correct reviews, 0 when the log is empty.
func (rc ReviewCounts) Accuracy() float64 {
	if rc.Total() == 0 {
		return 0
	}
	return float64(rc.Correct) / float64(rc.Total())
}

// CountReviews tallies the review log.
func (s *Store) CountReviews(ctx context.Context) (ReviewCounts, error) {
	var rc ReviewCounts
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM card_reviews WHERE is_correct = 1`).Scan(&rc.Correct)
	if err != nil {
		return rc, fmt.Errorf("count correct reviews: %w", err)
	}
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM card_reviews WHERE is_correct = 0`).Scan(&rc.Incorrect)
	if err != nil {
		return rc, fmt.Errorf("count incorrect reviews: %w", err)
	}
	return rc, nil
}
