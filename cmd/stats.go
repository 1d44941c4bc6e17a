package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/palabra-app/palabra/internal/config"
	"github.com/palabra-app/palabra/internal/progression"
	"github.com/palabra-app/palabra/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
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

		progress := st.ProgressRepo()

		total, err := progress.Count(ctx)
		if err != nil {
			return fmt.Errorf("count sessions: %w", err)
		}
		if total == 0 {
			fmt.Println("No sessions yet. Run `palabra` to start learning.")
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			cfg = config.Default()
		}
		cat, _, err := loadCatalog(cmd, cfg)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		completed, err := progress.CompletedModules(ctx)
		if err != nil {
			return fmt.Errorf("load completed modules: %w", err)
		}
		overall := progression.New(cat, completed).OverallStats()

		fmt.Printf("Sessions played:   %d\n", total)
		fmt.Printf("Modules completed: %d/%d (%d%%)\n", overall.Completed, overall.Total, overall.Percentage)
		fmt.Printf("Modules unlocked:  %d\n", overall.Available)

		days, err := progress.ByDay(ctx, 7)
		if err != nil {
			return fmt.Errorf("aggregate by day: %w", err)
		}
		if len(days) > 0 {
			fmt.Println("\nLast 7 days:")
			for _, d := range days {
				fmt.Printf("  %s  %2d sessions  avg %3.0f%%  %d min\n",
					d.Day, d.Sessions, d.AvgScore, d.TimeSpentSecs/60)
			}
		}

		scores, err := st.ScoreRepo().All(ctx)
		if err != nil {
			return fmt.Errorf("load scores: %w", err)
		}
		if len(scores) > 0 {
			best := scores[0]
			for _, s := range scores[1:] {
				if s.BestScore > best.BestScore {
					best = s
				}
			}
			fmt.Printf("\nBest module: %s (%d%%, %d attempts)\n", best.ModuleID, best.BestScore, best.Attempts)
		}
		return nil
	},
}
