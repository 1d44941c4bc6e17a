package cmd

import (
	"github.com/spf13/cobra"

	"github.com/palabra-app/palabra/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "palabra",
	Short: "Spanish vocabulary trainer for the terminal",
	Long:  "Palabra — a terminal app for learning Spanish vocabulary through flashcards, quizzes and other exercises, with progress tracked locally.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PALABRA_DB env var)")
	rootCmd.PersistentFlags().String("content", "", "Path to a content directory (overrides the config file and the bundled course)")

	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(contentCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then PALABRA_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
