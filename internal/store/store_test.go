package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpetrov/cardbox/internal/card"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	require.NoError(t, err, "open test store")
	t.Cleanup(func() {
		// Shared-cache in-memory DBs persist while any handle is open;
		// wipe so tests do not leak cards into each other.
		_ = s.Wipe(context.Background())
		s.Close()
	})
	return s
}

func insertTestCard(t *testing.T, s *Store, question string, next time.Time) int64 {
	t.Helper()
	id, err := s.InsertCard(context.Background(), &card.Card{
		Category:    "go",
		Question:    question,
		Explanation: "because",
		LastReview:  next.AddDate(0, 0, -1),
		NextReview:  next,
		Ease:        2.5,
	})
	require.NoError(t, err)
	return id
}

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func TestInsertAndFindCard(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id := insertTestCard(t, s, "what does := do?", testNow)
	require.NotZero(t, id)

	got, err := s.FindCardByQuestion(ctx, "what does := do?")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "go", got.Category)
	assert.Equal(t, 2.5, got.Ease)
	assert.Equal(t, 0, got.ReviewCount)

	missing, err := s.FindCardByQuestion(ctx, "never asked")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDueAndUpcomingCards(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	insertTestCard(t, s, "due yesterday", testNow.AddDate(0, 0, -1))
	insertTestCard(t, s, "due now", testNow)
	insertTestCard(t, s, "due tomorrow", testNow.AddDate(0, 0, 1))
	insertTestCard(t, s, "due next week", testNow.AddDate(0, 0, 7))

	due, err := s.DueCards(ctx, testNow, 10)
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, "due yesterday", due[0].Question)
	assert.Equal(t, "due now", due[1].Question)

	upcoming, err := s.UpcomingCards(ctx, testNow, 10)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "due tomorrow", upcoming[0].Question)
	assert.Equal(t, "due next week", upcoming[1].Question)
}

func TestOptionsForCard(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id := insertTestCard(t, s, "2+2?", testNow)
	for _, o := range []card.Option{
		{CardID: id, Text: "4", Correct: true},
		{CardID: id, Text: "5", Correct: false},
	} {
		require.NoError(t, s.InsertOption(ctx, o))
	}

	opts, err := s.OptionsForCard(ctx, id)
	require.NoError(t, err)
	require.Len(t, opts, 2)
	assert.True(t, opts[0].Correct)
	assert.Equal(t, "4", opts[0].Text)

	empty, err := s.OptionsForCard(ctx, id+100)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCommitAnswer_UpdatesScheduleAndLogs(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id := insertTestCard(t, s, "2+2?", testNow)

	upd := ScheduleUpdate{
		Ease:        2.5,
		ReviewCount: 1,
		LastReview:  testNow,
		NextReview:  testNow.AddDate(0, 0, 1),
	}
	rev := card.Review{CardID: id, UserAnswer: "4", Correct: true, ReviewedAt: testNow}
	require.NoError(t, s.CommitAnswer(ctx, id, upd, rev))

	got, err := s.FindCardByQuestion(ctx, "2+2?")
	require.NoError(t, err)
	assert.Equal(t, 1, got.ReviewCount)
	assert.True(t, got.NextReview.After(got.LastReview))

	rc, err := s.CountReviews(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, rc.Correct)
	assert.Equal(t, 0, rc.Incorrect)
	assert.Equal(t, 1.0, rc.Accuracy())
}

func TestDistractorAnswers_ExcludesOwnCard(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	a := insertTestCard(t, s, "q-a", testNow)
	b := insertTestCard(t, s, "q-b", testNow)
	c := insertTestCard(t, s, "q-c", testNow)
	require.NoError(t, s.InsertOption(ctx, card.Option{CardID: a, Text: "answer-a", Correct: true}))
	require.NoError(t, s.InsertOption(ctx, card.Option{CardID: b, Text: "answer-b", Correct: true}))
	require.NoError(t, s.InsertOption(ctx, card.Option{CardID: c, Text: "answer-c", Correct: true}))
	require.NoError(t, s.InsertOption(ctx, card.Option{CardID: c, Text: "wrong-c", Correct: false}))

	got, err := s.DistractorAnswers(ctx, a, 10)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"answer-b", "answer-c"}, got)
}

func TestResetProgress(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id := insertTestCard(t, s, "2+2?", testNow)
	upd := ScheduleUpdate{Ease: 1.7, ReviewCount: 4, LastReview: testNow, NextReview: testNow.AddDate(0, 0, 6)}
	rev := card.Review{CardID: id, UserAnswer: "5", Correct: false, ReviewedAt: testNow}
	require.NoError(t, s.CommitAnswer(ctx, id, upd, rev))

	later := testNow.AddDate(0, 0, 3)
	require.NoError(t, s.ResetProgress(ctx, later, 2.5))

	got, err := s.FindCardByQuestion(ctx, "2+2?")
	require.NoError(t, err)
	assert.Equal(t, 0, got.ReviewCount)
	assert.Equal(t, 2.5, got.Ease)
	assert.False(t, got.NextReview.After(later))

	rc, err := s.CountReviews(ctx)
	require.NoError(t, err)
	assert.Zero(t, rc.Total())
}

func TestWipe(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id := insertTestCard(t, s, "2+2?", testNow)
	require.NoError(t, s.InsertOption(ctx, card.Option{CardID: id, Text: "4", Correct: true}))

	require.NoError(t, s.Wipe(ctx))

	dc, err := s.CountCards(ctx, testNow)
	require.NoError(t, err)
	assert.Zero(t, dc.Total)
	assert.Zero(t, dc.Due)
}
