package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ljmurray/marquee/internal/app"
	"github.com/ljmurray/marquee/internal/font"
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a single title card",
	Long: `Create generates one title card from a source frame.

The font defaults to the card variant's built-in font; use --font to pick a
label from the config font map, or the --font-* flags for inline overrides.

Examples:
  marquee create --source frame.jpg --output card.jpg --title "The Long Way Home" --season-text 1 --episode-text 5
  marquee create --source frame.jpg --output card.jpg --title Pilot --font showtitle --extra line_position=bottom`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}

		variant, _ := cmd.Flags().GetString("variant")
		source, _ := cmd.Flags().GetString("source")
		output, _ := cmd.Flags().GetString("output")
		title, _ := cmd.Flags().GetString("title")
		seasonText, _ := cmd.Flags().GetString("season-text")
		episodeText, _ := cmd.Flags().GetString("episode-text")
		hideSeason, _ := cmd.Flags().GetBool("hide-season-text")
		hideEpisode, _ := cmd.Flags().GetBool("hide-episode-text")
		blur, _ := cmd.Flags().GetBool("blur")
		grayscale, _ := cmd.Flags().GetBool("grayscale")
		extras, _ := cmd.Flags().GetStringToString("extra")

		gen := newGenerator(env)
		return gen.Generate(app.Request{
			Variant:         variant,
			Source:          source,
			Output:          output,
			Title:           title,
			SeasonText:      seasonText,
			EpisodeText:     episodeText,
			HideSeasonText:  hideSeason,
			HideEpisodeText: hideEpisode,
			Font:            fontRefFromFlags(cmd),
			Blur:            blur,
			Grayscale:       grayscale,
			Extras:          extras,
		})
	},
}

func init() {
	RootCmd.AddCommand(createCmd)

	createCmd.Flags().String("variant", "overline", "Card variant to produce")
	createCmd.Flags().String("source", "", "Source frame to composite over")
	createCmd.Flags().String("output", "", "Output card file")
	createCmd.Flags().String("title", "", "Episode title text")
	createCmd.Flags().String("season-text", "", "Season index text")
	createCmd.Flags().String("episode-text", "", "Episode index text")
	createCmd.Flags().Bool("hide-season-text", false, "Omit the season text")
	createCmd.Flags().Bool("hide-episode-text", false, "Omit the episode text")
	createCmd.Flags().Bool("blur", false, "Blur the source frame")
	createCmd.Flags().Bool("grayscale", false, "Convert the source frame to grayscale")
	createCmd.Flags().StringToString("extra", nil, "Variant style extras as key=value pairs")

	createCmd.Flags().String("font", "", "Font label from the config font map")
	createCmd.Flags().String("font-file", "", "Font file override")
	createCmd.Flags().String("font-color", "", "Font color override, as #xxxxxx")
	createCmd.Flags().String("font-case", "", "Title case transform override")
	createCmd.Flags().String("font-size", "", "Font size override, as a percentage")
	createCmd.Flags().String("font-kerning", "", "Kerning override, as a percentage")
	createCmd.Flags().String("font-stroke-width", "", "Stroke width override, as a percentage")
	createCmd.Flags().Int("font-vertical-shift", 0, "Vertical shift override, in pixels")
	createCmd.Flags().Int("font-interline-spacing", 0, "Interline spacing override, in pixels")
	createCmd.Flags().Int("font-interword-spacing", 0, "Interword spacing override, in pixels")

	_ = createCmd.MarkFlagRequired("source")
	_ = createCmd.MarkFlagRequired("output")
}

// fontRefFromFlags builds the font reference: inline overrides when any
// --font-* flag is set, otherwise the --font label.
func fontRefFromFlags(cmd *cobra.Command) font.Ref {
	spec := &font.Spec{}
	inline := false

	if cmd.Flags().Changed("font-file") {
		v, _ := cmd.Flags().GetString("font-file")
		spec.File = &v
		inline = true
	}
	if cmd.Flags().Changed("font-color") {
		v, _ := cmd.Flags().GetString("font-color")
		spec.Color = &v
		inline = true
	}
	if cmd.Flags().Changed("font-case") {
		v, _ := cmd.Flags().GetString("font-case")
		spec.Case = &v
		inline = true
	}
	if cmd.Flags().Changed("font-size") {
		v, _ := cmd.Flags().GetString("font-size")
		spec.Size = &v
		inline = true
	}
	if cmd.Flags().Changed("font-kerning") {
		v, _ := cmd.Flags().GetString("font-kerning")
		spec.Kerning = &v
		inline = true
	}
	if cmd.Flags().Changed("font-stroke-width") {
		v, _ := cmd.Flags().GetString("font-stroke-width")
		spec.StrokeWidth = &v
		inline = true
	}
	if cmd.Flags().Changed("font-vertical-shift") {
		v, _ := cmd.Flags().GetInt("font-vertical-shift")
		spec.VerticalShift = &v
		inline = true
	}
	if cmd.Flags().Changed("font-interline-spacing") {
		v, _ := cmd.Flags().GetInt("font-interline-spacing")
		spec.InterlineSpacing = &v
		inline = true
	}
	if cmd.Flags().Changed("font-interword-spacing") {
		v, _ := cmd.Flags().GetInt("font-interword-spacing")
		spec.InterwordSpacing = &v
		inline = true
	}

	if inline {
		return font.Ref{Inline: spec}
	}
	if label, _ := cmd.Flags().GetString("font"); label != "" {
		return font.Ref{Label: label}
	}
	return font.Ref{}
}
