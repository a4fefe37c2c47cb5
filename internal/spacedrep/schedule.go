package spacedrep

// Ease factor bounds, Anki-style. Ease never leaves this range.
const (
	MinEase = 1.3
	MaxEase = 2.5
)

// Per-answer ease adjustments.
const (
	EaseReward  = 0.1
	EasePenalty = 0.2
)

// DefaultEase is the starting factor for cards that have never been reviewed.
const DefaultEase = MaxEase

// MinIntervalDays floors every interval so a card is never rescheduled for
// the same moment it was answered, including on a first correct answer
// where review_count is still zero.
const MinIntervalDays = 1
