package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ljmurray/marquee/internal/card"
	"github.com/ljmurray/marquee/internal/config"
	"github.com/ljmurray/marquee/internal/font"
)

// fontsCmd represents the fonts command group
var fontsCmd = &cobra.Command{
	Use:   "fonts",
	Short: "Manage the named fonts in your config",
	Long:  `Commands for inspecting the named fonts defined in your config file.`,
}

// fontsListCmd represents the fonts ls command
var fontsListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the named fonts defined in your config",
	Run: func(cmd *cobra.Command, args []string) {
		env, err := loadEnvironment()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}

		if len(env.cfg.Fonts) == 0 {
			fmt.Println("No fonts defined in your config.")
			fmt.Println("Add [fonts.<label>] tables to:", config.GetConfigFilePath())
			return
		}

		labels := make([]string, 0, len(env.cfg.Fonts))
		for label := range env.cfg.Fonts {
			labels = append(labels, label)
		}
		sort.Strings(labels)

		defaults := card.OverlineType(env.cfg.General.AssetsDir).FontDefaults
		for _, label := range labels {
			resolved, problems := font.Resolve(font.Ref{Label: label}, env.cfg.Fonts, defaults, env.cfg.Policy())
			if len(problems) > 0 {
				fmt.Printf("❌ %s (%d problems)\n", label, len(problems))
				for i, p := range problems {
					fmt.Printf("   %d. %s\n", i+1, p)
				}
				continue
			}
			fmt.Printf("%s %s (%s)\n", colorSwatch(resolved.Color), label, resolved.File)
		}
	},
}

// fontsShowCmd represents the fonts show command
var fontsShowCmd = &cobra.Command{
	Use:   "show [label]",
	Short: "Show the resolved attributes of one named font",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}

		label := args[0]
		if _, ok := env.cfg.Fonts[label]; !ok {
			return fmt.Errorf("no font named %q in your config", label)
		}

		defaults := card.OverlineType(env.cfg.General.AssetsDir).FontDefaults
		resolved, problems := font.Resolve(font.Ref{Label: label}, env.cfg.Fonts, defaults, env.cfg.Policy())

		fmt.Printf("Font: %s\n", label)
		fmt.Printf("  File:              %s\n", resolved.File)
		fmt.Printf("  Color:             %s %s\n", resolved.Color, colorSwatch(resolved.Color))
		fmt.Printf("  Case:              %s\n", resolved.Case)
		fmt.Printf("  Size:              %.0f%%\n", resolved.Size*100)
		fmt.Printf("  Kerning:           %.0f%%\n", resolved.Kerning*100)
		fmt.Printf("  Stroke width:      %.0f%%\n", resolved.StrokeWidth*100)
		fmt.Printf("  Vertical shift:    %d\n", resolved.VerticalShift)
		fmt.Printf("  Interline spacing: %d\n", resolved.InterlineSpacing)
		fmt.Printf("  Interword spacing: %d\n", resolved.InterwordSpacing)
		if len(resolved.Replacements) > 0 {
			fmt.Println("  Replacements:")
			for from, to := range resolved.Replacements {
				fmt.Printf("    %q -> %q\n", from, to)
			}
		}

		if len(problems) > 0 {
			fmt.Printf("\n❌ %d attributes were rejected and fall back to defaults:\n", len(problems))
			for i, p := range problems {
				fmt.Printf("%d. %s\n", i+1, p)
			}
			return fmt.Errorf("font %q has invalid attributes", label)
		}
		return nil
	},
}

// colorSwatch renders a small truecolor block for a #xxxxxx color, or an
// empty marker for named colors the terminal cannot be asked to show.
func colorSwatch(hex string) string {
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return "  "
	}
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", r, g, b)
}

func init() {
	RootCmd.AddCommand(fontsCmd)
	fontsCmd.AddCommand(fontsListCmd)
	fontsCmd.AddCommand(fontsShowCmd)
}
