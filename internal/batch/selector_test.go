package batch

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/mpetrov/cardbox/internal/card"
)

// fakeSource is an in-memory CardSource over a fixed card list.
type fakeSource struct {
	cards []card.Card
	err   error
}

func (f *fakeSource) DueCards(_ context.Context, now time.Time, limit int) ([]card.Card, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []card.Card
	for _, c := range f.cards {
		if c.Due(now) {
			out = append(out, c)
		}
	}
	sortByNextReview(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeSource) UpcomingCards(_ context.Context, now time.Time, limit int) ([]card.Card, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []card.Card
	for _, c := range f.cards {
		if !c.Due(now) {
			out = append(out, c)
		}
	}
	sortByNextReview(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func sortByNextReview(cards []card.Card) {
	for i := 1; i < len(cards); i++ {
		for j := i; j > 0 && cards[j].NextReview.Before(cards[j-1].NextReview); j-- {
			cards[j], cards[j-1] = cards[j-1], cards[j]
		}
	}
}

func testCard(id int64, next time.Time) card.Card {
	return card.Card{ID: id, Question: "q", NextReview: next, Ease: 2.5}
}

func newTestSelector(src CardSource, seed int64) *Selector {
	return NewSelector(src, rand.New(rand.NewSource(seed)))
}

var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func TestSelectBatch_FillsWithUpcoming(t *testing.T) {
	// 3 due, 10 not due; limit 5 must return 3 due + the 2 soonest upcoming.
	src := &fakeSource{}
	for i := int64(1); i <= 3; i++ {
		src.cards = append(src.cards, testCard(i, now.AddDate(0, 0, -int(i))))
	}
	for i := int64(4); i <= 13; i++ {
		src.cards = append(src.cards, testCard(i, now.AddDate(0, 0, int(i))))
	}

	got, err := newTestSelector(src, 1).SelectBatch(context.Background(), now, 5)
	if err != nil {
		t.Fatalf("SelectBatch: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}

	dueSeen := map[int64]bool{}
	for _, c := range got[:3] {
		if c.ID > 3 {
			t.Errorf("card %d in due segment, want IDs 1-3", c.ID)
		}
		dueSeen[c.ID] = true
	}
	if len(dueSeen) != 3 {
		t.Errorf("due segment holds %d distinct cards, want 3", len(dueSeen))
	}

	// Fallback segment keeps ascending next_review order.
	if got[3].ID != 4 || got[4].ID != 5 {
		t.Errorf("fallback segment = [%d, %d], want [4, 5]", got[3].ID, got[4].ID)
	}
}

func TestSelectBatch_EmptyStore(t *testing.T) {
	got, err := newTestSelector(&fakeSource{}, 1).SelectBatch(context.Background(), now, 10)
	if err != nil {
		t.Fatalf("SelectBatch: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0 for empty store", len(got))
	}
}

func TestSelectBatch_ShortBatchIsNotEmpty(t *testing.T) {
	src := &fakeSource{cards: []card.Card{testCard(1, now.AddDate(0, 0, 3))}}

	got, err := newTestSelector(src, 1).SelectBatch(context.Background(), now, 10)
	if err != nil {
		t.Fatalf("SelectBatch: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1 (fallback must surface the only card)", len(got))
	}
	if got[0].ID != 1 {
		t.Errorf("ID = %d, want 1", got[0].ID)
	}
}

func TestSelectBatch_RespectsLimit(t *testing.T) {
	src := &fakeSource{}
	for i := int64(1); i <= 30; i++ {
		src.cards = append(src.cards, testCard(i, now.AddDate(0, 0, -1)))
	}

	got, err := newTestSelector(src, 1).SelectBatch(context.Background(), now, 10)
	if err != nil {
		t.Fatalf("SelectBatch: %v", err)
	}
	if len(got) != 10 {
		t.Errorf("len = %d, want 10", len(got))
	}
}

func TestSelectBatch_DueOrderVariesAcrossSeeds(t *testing.T) {
	src := &fakeSource{}
	for i := int64(1); i <= 8; i++ {
		src.cards = append(src.cards, testCard(i, now.AddDate(0, 0, -1)))
	}

	orders := map[[8]int64]bool{}
	for seed := int64(0); seed < 10; seed++ {
		got, err := newTestSelector(src, seed).SelectBatch(context.Background(), now, 8)
		if err != nil {
			t.Fatalf("SelectBatch: %v", err)
		}
		var key [8]int64
		for i, c := range got {
			key[i] = c.ID
		}
		orders[key] = true
	}
	if len(orders) < 2 {
		t.Error("due-card order identical across seeds, want randomized tie-break")
	}
}

func TestSelectBatch_PropagatesStoreError(t *testing.T) {
	src := &fakeSource{err: errors.New("database is locked")}

	_, err := newTestSelector(src, 1).SelectBatch(context.Background(), now, 5)
	if err == nil {
		t.Fatal("expected error from failing source")
	}
}
