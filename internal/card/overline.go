package card

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ljmurray/marquee/internal/font"
	"github.com/ljmurray/marquee/internal/geometry"
)

// Overline produces cards featuring a thin line over (or under) the title
// text. The line is intersected by the index text and can be recolored.
type Overline struct {
	Base

	source string
	output string

	title       string
	seasonText  string
	episodeText string

	hideSeasonText  bool
	hideEpisodeText bool

	font font.Font

	episodeTextColor string
	lineColor        string
	linePosition     string
	lineWidth        int
	hideLine         bool
	omitGradient     bool
	separator        string

	episodeFont  string
	gradientFile string
}

// Overline layout constants.
const (
	overlineTitleColor  = "white"
	overlineDefaultCase = "upper"

	// Line thickness in pixels.
	overlineLineThickness = 7

	// Horizontal margin between the title block edge and the line ends.
	overlineLineMargin = 30

	// Rectangles narrower than this are suppressed rather than drawn.
	overlineMinLineWidth = 20

	overlineEpisodeTextFormat = "Episode {episode_number}"
)

func overlineTitleFont(assetsDir string) string {
	return filepath.Join(assetsDir, "overline", "HelveticaNeueMedium.ttf")
}

func overlineEpisodeFont(assetsDir string) string {
	return filepath.Join(assetsDir, "ProximaNovaSemibold.otf")
}

func overlineGradient(assetsDir string) string {
	return filepath.Join(assetsDir, "overline", "small_gradient.png")
}

// NewOverline constructs an overline card from resolved parameters,
// escaping text and parsing the variant's style extras.
func NewOverline(assetsDir string, p Params) (*Overline, error) {
	if err := p.check(); err != nil {
		return nil, err
	}

	o := &Overline{
		Base:   Base{Blur: p.Blur, Grayscale: p.Grayscale},
		source: p.Source,
		output: p.Output,

		title:       Escape(p.Title),
		seasonText:  Escape(strings.ToUpper(p.SeasonText)),
		episodeText: Escape(strings.ToUpper(p.EpisodeText)),

		hideSeasonText:  p.HideSeasonText,
		hideEpisodeText: p.HideEpisodeText,

		font: p.Font,

		episodeTextColor: p.Extra("episode_text_color", overlineTitleColor),
		lineColor:        p.Extra("line_color", overlineTitleColor),
		linePosition:     p.Extra("line_position", "top"),
		separator:        p.Extra("separator", "-"),

		episodeFont:  overlineEpisodeFont(assetsDir),
		gradientFile: overlineGradient(assetsDir),
	}

	if o.linePosition != "top" && o.linePosition != "bottom" {
		return nil, fmt.Errorf("extra line_position: %q must be \"top\" or \"bottom\"", o.linePosition)
	}

	var err error
	if o.lineWidth, err = p.IntExtra("line_width", overlineLineThickness); err != nil {
		return nil, err
	}
	if o.hideLine, err = p.BoolExtra("hide_line", false); err != nil {
		return nil, err
	}
	if o.omitGradient, err = p.BoolExtra("omit_gradient", false); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Overline) SourceFile() string { return o.source }
func (o *Overline) OutputFile() string { return o.output }

// GradientCommands overlays the darkening gradient, unless disabled.
func (o *Overline) GradientCommands() Commands {
	if o.omitGradient {
		return nil
	}
	return Commands{
		fmt.Sprintf(`"%s"`, o.gradientFile),
		"-composite",
	}
}

// TitleTextCommands adds the title text block. Placement depends on whether
// the line sits above or below the text.
func (o *Overline) TitleTextCommands() Commands {
	if len(o.title) == 0 {
		return nil
	}

	vertical := o.font.VerticalShift
	interline := o.font.InterlineSpacing
	if o.linePosition == "top" {
		vertical += 70
		interline += 25
	} else {
		vertical += 110
		interline -= 25
	}

	size := 55 * o.font.Size
	interword := 50 + o.font.InterwordSpacing
	kerning := -2 * o.font.Kerning
	strokeWidth := 5 * o.font.StrokeWidth

	return Commands{
		"-density 200",
		"-gravity south",
		fmt.Sprintf(`-font "%s"`, o.font.File),
		fmt.Sprintf(`-fill "%s"`, o.font.Color),
		"-pointsize " + fmtNum(size),
		"-strokewidth " + fmtNum(strokeWidth),
		"-stroke black",
		"-kerning " + fmtNum(kerning),
		fmt.Sprintf("-interline-spacing %d", interline),
		fmt.Sprintf("-interword-spacing %d", interword),
		fmt.Sprintf(`-annotate %s "%s"`, offset(0, vertical), o.title),
	}
}

// IndexTextCommands adds the season/episode text in the variant's fixed
// secondary font, independent of the title font overrides.
func (o *Overline) IndexTextCommands() Commands {
	if o.hideSeasonText && o.hideEpisodeText {
		return nil
	}

	var indexText string
	switch {
	case o.hideSeasonText:
		indexText = o.episodeText
	case o.hideEpisodeText:
		indexText = o.seasonText
	default:
		indexText = fmt.Sprintf("%s %s %s", o.seasonText, o.separator, o.episodeText)
	}

	vertical := o.font.VerticalShift
	if o.linePosition == "top" {
		vertical += 232
	} else {
		vertical += 65
	}

	return Commands{
		"-density 200",
		fmt.Sprintf(`-font "%s"`, o.episodeFont),
		fmt.Sprintf(`-fill "%s"`, o.episodeTextColor),
		"-strokewidth 2",
		"-pointsize 22",
		"-interword-spacing 18",
		fmt.Sprintf(`-annotate %s "%s"`, offset(0, vertical), indexText),
	}
}

// LineCommands derives the over/underline rectangles from the measured text
// dimensions. When index text is shown, a left and right rectangle flank it;
// if either would invert or fall under the minimum width, all line drawing
// is suppressed.
func (o *Overline) LineCommands(title, index geometry.Dimensions) Commands {
	if o.hideLine {
		return nil
	}

	vertical := o.font.VerticalShift
	if o.linePosition == "top" {
		vertical += 265
	} else {
		vertical += 98
	}
	y := float64(Height - vertical)
	half := float64(o.lineWidth) / 2

	style := Commands{
		fmt.Sprintf(`-fill "%s"`, o.lineColor),
		"-stroke black",
		"-strokewidth 2",
	}

	// With no index text the line is a single centered rectangle spanning
	// the title block, inset by the margins.
	if o.hideSeasonText && o.hideEpisodeText {
		rect := geometry.Rectangle{
			Start: geometry.Coordinate{
				X: Width/2 - title.Width/2 + overlineLineMargin,
				Y: y - half,
			},
			End: geometry.Coordinate{
				X: Width/2 + title.Width/2 - overlineLineMargin,
				Y: y + half,
			},
		}
		return append(style, rect.Draw())
	}

	left := geometry.Rectangle{
		Start: geometry.Coordinate{
			X: Width/2 - title.Width/2 + overlineLineMargin,
			Y: y - half,
		},
		End: geometry.Coordinate{
			X: Width/2 - index.Width/2,
			Y: y + half,
		},
	}
	right := geometry.Rectangle{
		Start: geometry.Coordinate{
			X: Width/2 + index.Width/2,
			Y: y - half,
		},
		End: geometry.Coordinate{
			X: Width/2 + title.Width/2 - overlineLineMargin,
			Y: y + half,
		},
	}

	if left.Inverted() || right.Inverted() ||
		left.NarrowerThan(overlineMinLineWidth) ||
		right.NarrowerThan(overlineMinLineWidth) {
		return nil
	}

	return append(style, left.Draw(), right.Draw())
}

// Pipeline measures the text blocks and assembles the full ordered command
// sequence: load, style, gradient, text, lines, output.
func (o *Overline) Pipeline(m Measurer) (Commands, error) {
	titleDims, err := m.Measure(o.TitleTextCommands(), MetricMax, MetricSum)
	if err != nil {
		return nil, fmt.Errorf("measure title text: %w", err)
	}
	indexDims, err := m.Measure(o.IndexTextCommands(), MetricMax, MetricSum)
	if err != nil {
		return nil, fmt.Errorf("measure index text: %w", err)
	}

	pipeline := Commands{fmt.Sprintf(`"%s"`, o.source)}
	pipeline = append(pipeline, o.ResizeAndStyle()...)
	pipeline = append(pipeline, o.GradientCommands()...)
	pipeline = append(pipeline, o.TitleTextCommands()...)
	pipeline = append(pipeline, o.IndexTextCommands()...)
	pipeline = append(pipeline, o.LineCommands(titleDims, indexDims)...)
	pipeline = append(pipeline, o.ResizeOutput()...)
	pipeline = append(pipeline, fmt.Sprintf(`"%s"`, o.output))

	return pipeline, nil
}

// OverlineType is the registry descriptor for the overline variant.
func OverlineType(assetsDir string) Type {
	titleFont := overlineTitleFont(assetsDir)

	return Type{
		Name: "overline",
		New: func(p Params) (Card, error) {
			return NewOverline(assetsDir, p)
		},
		FontDefaults: font.Defaults{
			Color:        overlineTitleColor,
			File:         titleFont,
			Replacements: map[string]string{},
			Case:         overlineDefaultCase,
		},
		EpisodeTextFormat: overlineEpisodeTextFormat,

		IsCustomFont: func(f font.Font, extras map[string]string) bool {
			if v, ok := extras["episode_text_color"]; ok && v != overlineTitleColor {
				return true
			}
			if v, ok := extras["line_color"]; ok && v != overlineTitleColor {
				return true
			}
			return f.Color != overlineTitleColor ||
				f.File != titleFont ||
				f.InterlineSpacing != 0 ||
				f.InterwordSpacing != 0 ||
				f.Kerning != 1.0 ||
				f.Size != 1.0 ||
				f.StrokeWidth != 1.0 ||
				f.VerticalShift != 0
		},

		IsCustomSeasonTitles: func(customEpisodeMap bool, episodeTextFormat string) bool {
			return customEpisodeMap ||
				!strings.EqualFold(episodeTextFormat, overlineEpisodeTextFormat)
		},

		ModifyExtras: func(extras map[string]string, customFont, customSeasonTitles bool) {
			if customFont {
				return
			}
			// Generic font: reset recolorable style extras to defaults.
			if _, ok := extras["episode_text_color"]; ok {
				extras["episode_text_color"] = overlineTitleColor
			}
			if _, ok := extras["line_color"]; ok {
				extras["line_color"] = overlineTitleColor
			}
		},
	}
}
