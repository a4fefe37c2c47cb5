package session

import (
	"errors"
	"testing"
	"time"

	"github.com/mpetrov/cardbox/internal/card"
)

var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func testCards(n int) []card.Card {
	cards := make([]card.Card, n)
	for i := range cards {
		cards[i] = card.Card{ID: int64(i + 1), Question: "q", Ease: 2.5}
	}
	return cards
}

func TestNewState_StartsIdle(t *testing.T) {
	s := NewState("sess-1", "user-1")
	if s.Phase != PhaseIdle {
		t.Errorf("Phase = %v, want PhaseIdle", s.Phase)
	}
	if s.Current != nil {
		t.Error("expected no current card")
	}
}

func TestLoadBatch_ResetsStats(t *testing.T) {
	s := NewState("sess-1", "user-1")
	s.Stats = Stats{Correct: 3, Total: 5}

	LoadBatch(s, testCards(2), now)

	if s.Phase != PhaseBatchLoading {
		t.Errorf("Phase = %v, want PhaseBatchLoading", s.Phase)
	}
	if s.Stats != (Stats{}) {
		t.Errorf("Stats = %+v, want zeroed", s.Stats)
	}
	if s.Remaining() != 2 {
		t.Errorf("Remaining = %d, want 2", s.Remaining())
	}
}

func TestAdvance_PopsFront(t *testing.T) {
	s := NewState("sess-1", "user-1")
	LoadBatch(s, testCards(2), now)

	c := Advance(s)
	if c == nil || c.ID != 1 {
		t.Fatalf("Advance = %+v, want card 1", c)
	}
	if s.Phase != PhaseAwaitingAnswer {
		t.Errorf("Phase = %v, want PhaseAwaitingAnswer", s.Phase)
	}
	if s.Remaining() != 1 {
		t.Errorf("Remaining = %d, want 1", s.Remaining())
	}
}

func TestAdvance_EmptyQueueFinishes(t *testing.T) {
	s := NewState("sess-1", "user-1")
	LoadBatch(s, testCards(1), now)
	Advance(s)

	if c := Advance(s); c != nil {
		t.Fatalf("Advance = %+v, want nil on drained queue", c)
	}
	if s.Phase != PhaseFinished {
		t.Errorf("Phase = %v, want PhaseFinished", s.Phase)
	}
	if s.Current != nil {
		t.Error("expected current card cleared")
	}
}

func TestGrade_ExactMatchAfterTrim(t *testing.T) {
	s := NewState("sess-1", "user-1")
	LoadBatch(s, testCards(1), now)
	Advance(s)
	Display(s, []string{"4", "5"}, "4")

	tests := []struct {
		submitted string
		want      bool
	}{
		{"4", true},
		{"  4  ", true},
		{"4\n", true},
		{"5", false},
		{"four", false},
		{"", false},
	}
	for _, tt := range tests {
		got, err := Grade(s, 1, tt.submitted)
		if err != nil {
			t.Fatalf("Grade(%q): %v", tt.submitted, err)
		}
		if got != tt.want {
			t.Errorf("Grade(%q) = %v, want %v", tt.submitted, got, tt.want)
		}
	}
}

func TestGrade_WrongCardIsStale(t *testing.T) {
	s := NewState("sess-1", "user-1")
	LoadBatch(s, testCards(2), now)
	Advance(s)
	Display(s, []string{"a", "b"}, "a")

	_, err := Grade(s, 2, "a")
	if !errors.Is(err, ErrStaleAnswer) {
		t.Fatalf("err = %v, want ErrStaleAnswer", err)
	}
	if s.Stats.Total != 0 {
		t.Errorf("Stats.Total = %d, want 0 after stale answer", s.Stats.Total)
	}
}

func TestGrade_FinishedSessionIsStale(t *testing.T) {
	s := NewState("sess-1", "user-1")
	LoadBatch(s, testCards(1), now)
	Advance(s)
	Advance(s) // drain

	_, err := Grade(s, 1, "a")
	if !errors.Is(err, ErrStaleAnswer) {
		t.Fatalf("err = %v, want ErrStaleAnswer", err)
	}
}

func TestGrade_PlaceholderCardAlwaysWrong(t *testing.T) {
	s := NewState("sess-1", "user-1")
	LoadBatch(s, testCards(1), now)
	Advance(s)
	Display(s, []string{card.PlaceholderAnswer}, "")

	for _, submitted := range []string{card.PlaceholderAnswer, "", "anything"} {
		got, err := Grade(s, 1, submitted)
		if err != nil {
			t.Fatalf("Grade(%q): %v", submitted, err)
		}
		if got {
			t.Errorf("Grade(%q) = true, want false for placeholder card", submitted)
		}
	}
}

func TestApply_CountsAnswers(t *testing.T) {
	s := NewState("sess-1", "user-1")
	LoadBatch(s, testCards(3), now)

	Apply(s, true)
	Apply(s, false)
	Apply(s, true)

	if s.Stats.Correct != 2 || s.Stats.Total != 3 {
		t.Errorf("Stats = %+v, want {Correct:2 Total:3}", s.Stats)
	}
}

func TestBuildSummary(t *testing.T) {
	s := NewState("sess-1", "user-1")
	s.Stats = Stats{Correct: 3, Total: 4}

	sum := BuildSummary(s)
	if sum.Percent != 75 {
		t.Errorf("Percent = %v, want 75", sum.Percent)
	}

	empty := NewState("sess-2", "user-1")
	if got := BuildSummary(empty).Percent; got != 0 {
		t.Errorf("Percent = %v, want 0 for zero answers", got)
	}
}

func TestDisplay_TrimsSnapshot(t *testing.T) {
	s := NewState("sess-1", "user-1")
	LoadBatch(s, testCards(1), now)
	Advance(s)
	Display(s, []string{" 4 "}, " 4 ")

	got, err := Grade(s, 1, "4")
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if !got {
		t.Error("Grade = false, want true against trimmed snapshot")
	}
}
