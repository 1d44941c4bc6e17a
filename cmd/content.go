package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/palabra-app/palabra/internal/config"
	"github.com/palabra-app/palabra/internal/content"
	"github.com/palabra-app/palabra/internal/logger"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Maintain a content directory",
	Long:  "Offline maintenance for course content: validate, normalize and inventory a content directory, or import word lists from spreadsheets.",
}

var contentValidateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check the catalog and every data file against the schemas",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, log, err := contentSetup(cmd, args)
		if err != nil {
			return err
		}
		defer log.Sync()

		report, err := content.Validate(dir)
		if err != nil {
			return err
		}
		logReport(log, report)
		if !report.OK() {
			return fmt.Errorf("%d issue(s) found", len(report.Issues))
		}
		log.Info("content is valid", zap.Int("files", report.FilesChecked))
		return nil
	},
}

var contentFixCmd = &cobra.Command{
	Use:   "fix [dir]",
	Short: "Rewrite data files in canonical form, dropping duplicates",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, log, err := contentSetup(cmd, args)
		if err != nil {
			return err
		}
		defer log.Sync()

		res, err := content.Fix(dir)
		if err != nil {
			return err
		}
		logReport(log, res.Report)
		log.Info("fix complete",
			zap.Int("files_changed", res.FilesChanged),
			zap.Int("duplicates_dropped", res.DuplicatesDropped))
		return nil
	},
}

var contentOptimizeCmd = &cobra.Command{
	Use:   "optimize [dir]",
	Short: "Rewrite all content files with stable formatting",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, log, err := contentSetup(cmd, args)
		if err != nil {
			return err
		}
		defer log.Sync()

		res, err := content.Optimize(dir)
		if err != nil {
			return err
		}
		logReport(log, res.Report)
		log.Info("optimize complete", zap.Int("files_changed", res.FilesChanged))
		return nil
	},
}

var contentStatusCmd = &cobra.Command{
	Use:   "status [dir]",
	Short: "List every module with its item count and load problems",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _, err := contentSetup(cmd, args)
		if err != nil {
			return err
		}

		res, err := content.Status(dir)
		if err != nil {
			return err
		}
		for _, m := range res.Modules {
			line := fmt.Sprintf("unit %d  %-28s %-12s %3d items", m.Unit, m.ID, m.Mode, m.ItemCount)
			if m.Problem != "" {
				line += "  ⚠ " + m.Problem
			}
			fmt.Println(line)
		}
		fmt.Printf("\n%d modules across %d units", len(res.Modules), len(res.Units))
		if n := res.Problems(); n > 0 {
			fmt.Printf(", %d with problems", n)
		}
		fmt.Println()
		return nil
	},
}

var contentAllCmd = &cobra.Command{
	Use:   "all [dir]",
	Short: "Run fix, optimize and validate in sequence",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, log, err := contentSetup(cmd, args)
		if err != nil {
			return err
		}
		defer log.Sync()

		fixRes, err := content.Fix(dir)
		if err != nil {
			return err
		}
		log.Info("fix complete",
			zap.Int("files_changed", fixRes.FilesChanged),
			zap.Int("duplicates_dropped", fixRes.DuplicatesDropped))

		optRes, err := content.Optimize(dir)
		if err != nil {
			return err
		}
		log.Info("optimize complete", zap.Int("files_changed", optRes.FilesChanged))

		report, err := content.Validate(dir)
		if err != nil {
			return err
		}
		logReport(log, report)
		if !report.OK() {
			return fmt.Errorf("%d issue(s) remain after fixing", len(report.Issues))
		}
		log.Info("content is valid", zap.Int("files", report.FilesChecked))
		return nil
	},
}

var contentImportCmd = &cobra.Command{
	Use:   "import <file.xlsx|file.csv>",
	Short: "Import a word list from a spreadsheet as flashcard data",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		log, err := logger.New(verbose)
		if err != nil {
			return err
		}
		defer log.Sync()

		cfg := content.DefaultImportConfig()
		cfg.FrontColumn, _ = cmd.Flags().GetInt("front-col")
		cfg.BackColumn, _ = cmd.Flags().GetInt("back-col")
		cfg.ExampleColumn, _ = cmd.Flags().GetInt("example-col")
		cfg.Sheet, _ = cmd.Flags().GetString("sheet")
		skip, _ := cmd.Flags().GetBool("skip-header")
		cfg.SkipHeader = skip

		res, err := content.Import(args[0], cfg)
		if err != nil {
			return err
		}
		log.Info("import complete",
			zap.Int("rows", res.RowsRead),
			zap.Int("imported", res.Imported),
			zap.Int("skipped", res.Skipped))

		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			return fmt.Errorf("missing --output path for the imported cards")
		}
		if err := content.WriteCards(out, res.Cards); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		log.Info("cards written", zap.String("path", out))
		return nil
	},
}

func init() {
	contentCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose logging")

	contentImportCmd.Flags().StringP("output", "o", "", "Output path for the generated data file")
	contentImportCmd.Flags().Int("front-col", 0, "0-based column of the Spanish side")
	contentImportCmd.Flags().Int("back-col", 1, "0-based column of the English side")
	contentImportCmd.Flags().Int("example-col", 2, "0-based column of the example sentence")
	contentImportCmd.Flags().String("sheet", "", "xlsx sheet name (default: first sheet)")
	contentImportCmd.Flags().Bool("skip-header", true, "Skip the first row")

	contentCmd.AddCommand(contentValidateCmd)
	contentCmd.AddCommand(contentFixCmd)
	contentCmd.AddCommand(contentOptimizeCmd)
	contentCmd.AddCommand(contentStatusCmd)
	contentCmd.AddCommand(contentAllCmd)
	contentCmd.AddCommand(contentImportCmd)
}

// contentSetup resolves the target directory (positional arg, --content
// flag, then the config file) and builds the logger. The bundled course is
// read-only, so a directory on disk is required.
func contentSetup(cmd *cobra.Command, args []string) (string, *zap.Logger, error) {
	dir := ""
	if len(args) > 0 {
		dir = args[0]
	}
	if dir == "" {
		dir, _ = cmd.Flags().GetString("content")
	}
	if dir == "" {
		if cfg, err := config.Load(); err == nil {
			dir = cfg.Content.Dir
		}
	}
	if dir == "" {
		return "", nil, fmt.Errorf("no content directory: pass one as an argument or set content.dir in the config")
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	log, err := logger.New(verbose)
	if err != nil {
		return "", nil, err
	}
	return dir, log, nil
}

func logReport(log *zap.Logger, r *content.Report) {
	for _, issue := range r.Issues {
		log.Warn(issue.String())
	}
}
