package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mpetrov/cardbox/internal/engine"
	"github.com/mpetrov/cardbox/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "cardbox",
	Short: "Spaced-repetition flashcard trainer",
	Long:  "Cardbox — terminal flashcard trainer that schedules reviews with a spaced-repetition algorithm.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	// Optional .env in the working directory, same sources as the
	// CARDBOX_DB lookup but without polluting the parent shell.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CARDBOX_DB env var)")
	rootCmd.Flags().Int("limit", engine.DefaultBatchLimit, "Maximum cards per review batch")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then CARDBOX_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
