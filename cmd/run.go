package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/mpetrov/cardbox/internal/batch"
	"github.com/mpetrov/cardbox/internal/engine"
	"github.com/mpetrov/cardbox/internal/store"
	"github.com/mpetrov/cardbox/internal/tui"
)

// runApp opens the store, builds the review engine, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	limit, _ := cmd.Flags().GetInt("limit")

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	eng := engine.New(st, batch.NewSelector(st, rng), engine.Config{
		BatchLimit: limit,
	})

	return tui.Run(eng)
}
