package spacedrep

import (
	"math"
	"time"
)

// Result holds the rescheduled state for a card after one graded answer.
type Result struct {
	Ease         float64
	ReviewCount  int
	IntervalDays int
	LastReview   time.Time
	NextReview   time.Time
}

// Schedule computes the next review state from the card's current ease and
// accumulated review count. Pure arithmetic, no side effects.
//
// A correct answer grows the interval multiplicatively in both ease and
// repetitions, so well-known cards drift out fast. An incorrect answer
// resets the card to a one-day interval and knocks the ease down.
// The review count increases either way and never resets.
func Schedule(ease float64, reviewCount int, correct bool, now time.Time) Result {
	var newEase float64
	var interval int

	if correct {
		newEase = math.Min(ease+EaseReward, MaxEase)
		interval = int(math.Floor(float64(reviewCount) * newEase))
		if interval < MinIntervalDays {
			interval = MinIntervalDays
		}
	} else {
		newEase = math.Max(ease-EasePenalty, MinEase)
		interval = MinIntervalDays
	}

	return Result{
		Ease:         newEase,
		ReviewCount:  reviewCount + 1,
		IntervalDays: interval,
		LastReview:   now,
		NextReview:   now.AddDate(0, 0, interval),
	}
}
