package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mpetrov/cardbox/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show deck and review statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		deck, err := st.CountCards(ctx, time.Now())
		if err != nil {
			return fmt.Errorf("count cards: %w", err)
		}
		reviews, err := st.CountReviews(ctx)
		if err != nil {
			return fmt.Errorf("count reviews: %w", err)
		}

		fmt.Printf("Cards:    %d (%d due now)\n", deck.Total, deck.Due)
		fmt.Printf("Reviews:  %d (%d correct, %d incorrect)\n",
			reviews.Total(), reviews.Correct, reviews.Incorrect)
		if reviews.Total() > 0 {
			fmt.Printf("Accuracy: %.0f%%\n", reviews.Accuracy()*100)
		}
		return nil
	},
}
