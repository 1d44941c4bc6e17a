package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/palabra-app/palabra/internal/app"
	"github.com/palabra-app/palabra/internal/assets"
	"github.com/palabra-app/palabra/internal/catalog"
	"github.com/palabra-app/palabra/internal/config"
	"github.com/palabra-app/palabra/internal/store"
)

// runApp opens the store, loads the catalog and launches the TUI.
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

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		fmt.Fprintln(os.Stderr, "Falling back to default settings.")
		cfg = config.Default()
	}

	cat, warnings, err := loadCatalog(cmd, cfg)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "content:", w)
	}

	return app.Run(app.Deps{
		Catalog:  cat,
		Config:   cfg.ExerciseConfig(),
		Progress: st.ProgressRepo(),
		Scores:   st.ScoreRepo(),
	})
}

// loadCatalog resolves the content source in priority order: the --content
// flag, the config file, then the course compiled into the binary.
func loadCatalog(cmd *cobra.Command, cfg *config.Config) (*catalog.Catalog, []catalog.LoadWarning, error) {
	if dir := contentDir(cmd, cfg); dir != "" {
		return catalog.Load(dir)
	}
	return catalog.LoadFS(assets.Content())
}

// contentDir returns the user-specified content directory, or "" when the
// bundled course should be used.
func contentDir(cmd *cobra.Command, cfg *config.Config) string {
	if dir, _ := cmd.Flags().GetString("content"); dir != "" {
		return dir
	}
	return cfg.Content.Dir
}
