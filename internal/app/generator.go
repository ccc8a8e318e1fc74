// Package app orchestrates card generation: it resolves fonts against
// variant defaults, applies title formatting, constructs the requested card
// variant, and dispatches its pipeline to the compositor.
package app

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ljmurray/marquee/internal/card"
	"github.com/ljmurray/marquee/internal/font"
)

// Generator holds everything one card generation needs beyond the request
// itself. It is cheap to construct and safe to share across workers; per-card
// state lives in the card instances it creates.
type Generator struct {
	AssetsDir string
	FontMap   map[string]*font.Spec
	Policy    font.Policy

	Measurer card.Measurer
	Runner   card.Runner
	Glyphs   font.GlyphValidator

	Logger *slog.Logger
}

// Request describes one card to produce.
type Request struct {
	Variant string

	Source string
	Output string

	Title       string
	SeasonText  string
	EpisodeText string

	HideSeasonText  bool
	HideEpisodeText bool

	Font font.Ref

	Blur      bool
	Grayscale bool

	Extras map[string]string
}

// Generate produces one card. Font problems degrade the card to defaults and
// are logged; measurement or compositor failures are fatal for the card.
func (g *Generator) Generate(req Request) error {
	variant, err := card.Lookup(g.AssetsDir, req.Variant)
	if err != nil {
		return err
	}

	f, problems := font.Resolve(req.Font, g.FontMap, variant.FontDefaults, g.Policy)
	for _, p := range problems {
		g.Logger.Error("invalid font attribute",
			"card", req.Output, "field", p.Field, "problem", p.Message)
	}

	title := f.FormatTitle(req.Title)

	if g.Glyphs != nil {
		ok, err := f.ValidateTitle(g.Glyphs, title)
		if err != nil {
			g.Logger.Warn("glyph validation unavailable",
				"card", req.Output, "error", err)
		} else if !ok {
			g.Logger.Error("font cannot render every title character",
				"card", req.Output, "title", req.Title)
		}
	}

	c, err := variant.New(card.Params{
		Source:          req.Source,
		Output:          req.Output,
		Title:           title,
		SeasonText:      req.SeasonText,
		EpisodeText:     req.EpisodeText,
		HideSeasonText:  req.HideSeasonText,
		HideEpisodeText: req.HideEpisodeText,
		Font:            f,
		Blur:            req.Blur,
		Grayscale:       req.Grayscale,
		Extras:          req.Extras,
	})
	if err != nil {
		return fmt.Errorf("construct %s card: %w", variant.Name, err)
	}

	if err := card.Create(c, g.Measurer, g.Runner); err != nil {
		return err
	}

	g.Logger.Info("created card", "source", req.Source, "output", req.Output)
	return nil
}

// FormatIndex expands an index text format like "Episode {episode_number}"
// for a concrete episode.
func FormatIndex(format string, season, episode int) string {
	r := strings.NewReplacer(
		"{season_number}", strconv.Itoa(season),
		"{episode_number}", strconv.Itoa(episode),
	)
	return r.Replace(format)
}
