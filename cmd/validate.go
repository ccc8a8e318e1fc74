package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ljmurray/marquee/internal/card"
	"github.com/ljmurray/marquee/internal/config"
	"github.com/ljmurray/marquee/internal/font"
	"github.com/ljmurray/marquee/internal/fontcheck"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [series_file]",
	Short: "Validate a series file without generating cards",
	Long: `Validate checks a series file before a batch run. It verifies the card
variant, resolves the font against the config font map, and reports episodes
whose source frames are missing or whose titles the font cannot render.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}

		series, err := config.LoadSeries(args[0])
		if err != nil {
			return fmt.Errorf("error loading series file: %v", err)
		}

		var errors []string
		var warnings []string

		variant, err := card.Lookup(env.cfg.General.AssetsDir, series.CardType)
		if err != nil {
			errors = append(errors, fmt.Sprintf("unknown card variant %q", series.CardType))
		}

		resolved, problems := font.Resolve(series.Font, env.cfg.Fonts, variant.FontDefaults, env.cfg.Policy())
		for _, p := range problems {
			errors = append(errors, p.String())
		}

		checker := fontcheck.New(env.logger)
		for _, ep := range series.Episodes {
			label := fmt.Sprintf("s%de%d", ep.Season, ep.Episode)

			if ep.Source == "" {
				errors = append(errors, fmt.Sprintf("%s: no source frame", label))
			} else if _, err := os.Stat(ep.Source); err != nil {
				warnings = append(warnings, fmt.Sprintf("%s: source frame %s not found", label, ep.Source))
			}

			if ep.Title == "" {
				warnings = append(warnings, fmt.Sprintf("%s: no title", label))
				continue
			}
			ok, err := resolved.ValidateTitle(checker, resolved.FormatTitle(ep.Title))
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("%s: could not check title glyphs: %v", label, err))
			} else if !ok {
				warnings = append(warnings, fmt.Sprintf("%s: font is missing glyphs for %q", label, ep.Title))
			}
		}

		// Display validation results
		fmt.Println("Validation Results:")
		fmt.Println("-------------------")

		if len(errors) == 0 {
			fmt.Printf("✅ Series file '%s' is ready for a batch run.\n", args[0])
		} else {
			fmt.Printf("❌ Series file '%s' has %d validation errors:\n", args[0], len(errors))
			for i, e := range errors {
				fmt.Printf("%d. %s\n", i+1, e)
			}
		}

		if len(warnings) > 0 {
			fmt.Println("\nWarnings:")
			for i, warn := range warnings {
				fmt.Printf("%d. %s\n", i+1, warn)
			}
		}

		if len(errors) > 0 {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(validateCmd)
}
