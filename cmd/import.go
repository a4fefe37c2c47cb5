package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mpetrov/cardbox/internal/importer"
	"github.com/mpetrov/cardbox/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import cards from a JSON file or directory",
	Long:  "Import flashcards from a JSON file, or from every .json file under a directory. Cards whose question already exists are skipped.",
	Args:  cobra.ExactArgs(1),
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

		if wipe, _ := cmd.Flags().GetBool("wipe"); wipe {
			if err := st.Wipe(ctx); err != nil {
				return fmt.Errorf("wipe store: %w", err)
			}
			fmt.Println("Existing cards removed.")
		}

		log := slog.New(slog.NewTextHandler(os.Stderr, nil))
		report, err := importer.New(st, log).ImportPath(ctx, args[0])
		if err != nil {
			return fmt.Errorf("import %s: %w", args[0], err)
		}

		fmt.Printf("Imported %d cards (%d duplicates, %d skipped).\n",
			report.Added, report.Duplicates, report.Skipped)
		return nil
	},
}

func init() {
	importCmd.Flags().Bool("wipe", false, "Delete all existing cards and reviews before importing")
}
