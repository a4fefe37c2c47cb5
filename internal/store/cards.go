package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mpetrov/cardbox/internal/card"
)

const cardColumns = "id, category, question, explanation, last_review, next_review, review_count, ease"

// InsertCard stores a new card and returns its assigned id.
func (s *Store) InsertCard(ctx context.Context, c *card.Card) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO cards (category, question, explanation, last_review, next_review, review_count, ease)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, c.Category, c.Question, c.Explanation, c.LastReview, c.NextReview, c.ReviewCount, c.Ease)
	if err != nil {
		return 0, fmt.Errorf("insert card %q: %w", c.Question, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("card insert id: %w", err)
	}
	return id, nil
}

// InsertOption stores an answer option for a card.
func (s *Store) InsertOption(ctx context.Context, o card.Option) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO card_options (card_id, answer_text, is_correct)
		VALUES (?, ?, ?)
	`, o.CardID, o.Text, o.Correct)
	if err != nil {
		return fmt.Errorf("insert option for card %d: %w", o.CardID, err)
	}
	return nil
}

// FindCardByQuestion returns the card with the exact question text,
// or nil when none exists. The importer uses it for dedup.
func (s *Store) FindCardByQuestion(ctx context.Context, question string) (*card.Card, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+cardColumns+` FROM cards WHERE question = ?
	`, question)

	c, err := scanCard(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find card by question: %w", err)
	}
	return c, nil
}

// DueCards returns cards with next_review <= now, soonest first, up to limit.
func (s *Store) DueCards(ctx context.Context, now time.Time, limit int) ([]card.Card, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+cardColumns+` FROM cards
		WHERE next_review <= ?
		ORDER BY next_review ASC
		LIMIT ?
	`, now, limit)
	if err != nil {
		return nil, fmt.Errorf("query due cards: %w", err)
	}
	defer rows.Close()
	return scanCards(rows)
}

// UpcomingCards returns cards with next_review > now, soonest first, up to limit.
func (s *Store) UpcomingCards(ctx context.Context, now time.Time, limit int) ([]card.Card, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+cardColumns+` FROM cards
		WHERE next_review > ?
		ORDER BY next_review ASC
		LIMIT ?
	`, now, limit)
	if err != nil {
		return nil, fmt.Errorf("query upcoming cards: %w", err)
	}
	defer rows.Close()
	return scanCards(rows)
}

// OptionsForCard returns all answer options for a card.
func (s *Store) OptionsForCard(ctx context.Context, cardID int64) ([]card.Option, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, card_id, answer_text, is_correct
		FROM card_options WHERE card_id = ?
		ORDER BY id
	`, cardID)
	if err != nil {
		return nil, fmt.Errorf("query options for card %d: %w", cardID, err)
	}
	defer rows.Close()

	var opts []card.Option
	for rows.Next() {
		var o card.Option
		if err := rows.Scan(&o.ID, &o.CardID, &o.Text, &o.Correct); err != nil {
			return nil, fmt.Errorf("scan option row: %w", err)
		}
		opts = append(opts, o)
	}
	return opts, rows.Err()
}

// DistractorAnswers returns up to n correct answers from other cards, in
// random order. Used to pad cards that carry fewer than the full set of
// display options.
func (s *Store) DistractorAnswers(ctx context.Context, cardID int64, n int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT answer_text FROM card_options
		WHERE is_correct = 1 AND card_id != ?
		ORDER BY RANDOM()
		LIMIT ?
	`, cardID, n)
	if err != nil {
		return nil, fmt.Errorf("query distractors: %w", err)
	}
	defer rows.Close()

	var answers []string
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, fmt.Errorf("scan distractor row: %w", err)
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

// ScheduleUpdate carries the rescheduled card fields written after a
// graded answer.
type ScheduleUpdate struct {
	Ease        float64
	ReviewCount int
	LastReview  time.Time
	NextReview  time.Time
}

// CommitAnswer persists one graded answer atomically: the card's new
// schedule and the appended review record commit together or not at all,
// so a partial scheduling update is never observable.
func (s *Store) CommitAnswer(ctx context.Context, cardID int64, upd ScheduleUpdate, rev card.Review) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin answer tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE cards
		SET ease = ?, review_count = ?, last_review = ?, next_review = ?
		WHERE id = ?
	`, upd.Ease, upd.ReviewCount, upd.LastReview, upd.NextReview, cardID)
	if err != nil {
		return fmt.Errorf("update card %d schedule: %w", cardID, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO card_reviews (card_id, user_answer, is_correct, reviewed_at)
		VALUES (?, ?, ?, ?)
	`, rev.CardID, rev.UserAnswer, rev.Correct, rev.ReviewedAt)
	if err != nil {
		return fmt.Errorf("append review for card %d: %w", cardID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit answer for card %d: %w", cardID, err)
	}
	return nil
}

func scanCard(row *sql.Row) (*card.Card, error) {
	var c card.Card
	err := row.Scan(&c.ID, &c.Category, &c.Question, &c.Explanation,
		&c.LastReview, &c.NextReview, &c.ReviewCount, &c.Ease)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanCards(rows *sql.Rows) ([]card.Card, error) {
	var cards []card.Card
	for rows.Next() {
		var c card.Card
		err := rows.Scan(&c.ID, &c.Category, &c.Question, &c.Explanation,
			&c.LastReview, &c.NextReview, &c.ReviewCount, &c.Ease)
		if err != nil {
			return nil, fmt.Errorf("scan card row: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}
