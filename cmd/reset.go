package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mpetrov/cardbox/internal/spacedrep"
	"github.com/mpetrov/cardbox/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset review progress for all cards",
	Long:  "Clear review history and restore every card to its initial schedule. Cards themselves are kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			fmt.Println("This clears all review history. Re-run with --yes to confirm.")
			return nil
		}

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

		if err := st.ResetProgress(ctx, time.Now(), spacedrep.DefaultEase); err != nil {
			return fmt.Errorf("reset progress: %w", err)
		}
		fmt.Println("Review progress reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
