// Package importer bulk-loads cards and their answer options from JSON
// files. Import is a loader-side concern: it dedupes by question text so
// the engine never has to at read time.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mpetrov/cardbox/internal/card"
	"github.com/mpetrov/cardbox/internal/spacedrep"
)

// MaxOptionRunes caps stored option text length.
const MaxOptionRunes = 30

// DefaultCategory is assigned to cards imported without one.
const DefaultCategory = "unknown"

// Store is the persistence surface the importer needs.
type Store interface {
	FindCardByQuestion(ctx context.Context, question string) (*card.Card, error)
	InsertCard(ctx context.Context, c *card.Card) (int64, error)
	InsertOption(ctx context.Context, o card.Option) error
}

// Entry is one card as it appears in an import file.
type Entry struct {
	Category    string        `json:"category"`
	Question    string        `json:"question"`
	Explanation string        `json:"explanation"`
	Options     []EntryOption `json:"options"`
}

// EntryOption is one answer choice in an import file.
type EntryOption struct {
	Text    string `json:"text"`
	Correct bool   `json:"is_correct"`
}

// Report summarizes one import run.
type Report struct {
	Added      int
	Duplicates int
	Skipped    int
}

// Importer loads card files into a store.
type Importer struct {
	store Store
	now   func() time.Time
	log   *slog.Logger
}

// New creates an importer. A nil logger falls back to slog.Default.
func New(st Store, log *slog.Logger) *Importer {
	if log == nil {
		log = slog.Default()
	}
	return &Importer{store: st, now: time.Now, log: log}
}

// ImportPath loads a single .json file, or every .json file under a
// directory, and returns the combined report.
func (im *Importer) ImportPath(ctx context.Context, path string) (*Report, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if !info.IsDir() {
		return im.importFile(ctx, path)
	}

	total := &Report{}
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".json") {
			return nil
		}
		rep, err := im.importFile(ctx, p)
		if err != nil {
			return err
		}
		total.Added += rep.Added
		total.Duplicates += rep.Duplicates
		total.Skipped += rep.Skipped
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", path, err)
	}
	return total, nil
}

func (im *Importer) importFile(ctx context.Context, path string) (*Report, error) {
	im.log.Info("importing card file", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	rep, err := im.ImportEntries(ctx, entries)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	im.log.Info("file imported", "path", path,
		"added", rep.Added, "duplicates", rep.Duplicates, "skipped", rep.Skipped)
	return rep, nil
}

// ImportEntries loads parsed entries into the store. Entries without a
// question are skipped; a missing category defaults to "unknown"; a
// missing explanation stays empty. Cards whose exact question already
// exists are counted as duplicates and left alone.
func (im *Importer) ImportEntries(ctx context.Context, entries []Entry) (*Report, error) {
	rep := &Report{}
	now := im.now()

	for _, e := range entries {
		if strings.TrimSpace(e.Question) == "" {
			im.log.Warn("skipping entry without question")
			rep.Skipped++
			continue
		}
		if e.Category == "" {
			e.Category = DefaultCategory
		}

		existing, err := im.store.FindCardByQuestion(ctx, e.Question)
		if err != nil {
			return rep, err
		}
		if existing != nil {
			im.log.Debug("duplicate question, skipping", "question", e.Question)
			rep.Duplicates++
			continue
		}

		id, err := im.store.InsertCard(ctx, &card.Card{
			Category:    e.Category,
			Question:    e.Question,
			Explanation: e.Explanation,
			LastReview:  now,
			NextReview:  now, // new cards are due immediately
			Ease:        spacedrep.DefaultEase,
		})
		if err != nil {
			return rep, err
		}

		for _, o := range e.Options {
			err := im.store.InsertOption(ctx, card.Option{
				CardID:  id,
				Text:    truncate(o.Text, MaxOptionRunes),
				Correct: o.Correct,
			})
			if err != nil {
				return rep, err
			}
		}
		rep.Added++
	}
	return rep, nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
