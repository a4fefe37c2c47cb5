package card

import "time"

// Card is a single question/answer unit tracked by the scheduler.
type Card struct {
	ID          int64
	Category    string
	Question    string
	Explanation string
	LastReview  time.Time
	NextReview  time.Time
	ReviewCount int
	Ease        float64
}

// Due reports whether the card is due for review at the given time.
func (c *Card) Due(now time.Time) bool {
	return !now.Before(c.NextReview)
}

// Option is one selectable answer for a card. Exactly one option per
// card carries Correct = true.
type Option struct {
	ID      int64
	CardID  int64
	Text    string
	Correct bool
}

// Review records a single graded answer. The review log is append-only;
// the engine never mutates or deletes entries.
type Review struct {
	ID         int64
	CardID     int64
	UserAnswer string
	Correct    bool
	ReviewedAt time.Time
}
