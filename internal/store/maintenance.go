package store

import (
	"context"
	"fmt"
	"time"
)

// Wipe deletes all cards, options, and reviews and resets the id
// counters. Used by `import --wipe` before a fresh load.
func (s *Store) Wipe(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin wipe tx: %w", err)
	}
	defer tx.Rollback()

	stmts := []string{
		`DELETE FROM card_options`,
		`DELETE FROM card_reviews`,
		`DELETE FROM cards`,
		`DELETE FROM sqlite_sequence WHERE name IN ('cards', 'card_options', 'card_reviews')`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("wipe: %s: %w", stmt, err)
		}
	}
	return tx.Commit()
}

// ResetProgress clears the review log and returns every card to its
// initial scheduling state: ease back to the ceiling, count zeroed, and
// due immediately. Cards and options are kept.
func (s *Store) ResetProgress(ctx context.Context, now time.Time, ease float64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM card_reviews`)
	if err != nil {
		return fmt.Errorf("reset: clear reviews: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE cards
		SET ease = ?, review_count = 0, last_review = ?, next_review = ?
	`, ease, now, now)
	if err != nil {
		return fmt.Errorf("reset: reschedule cards: %w", err)
	}

	return tx.Commit()
}
