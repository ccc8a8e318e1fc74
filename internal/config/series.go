package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/ljmurray/marquee/internal/font"
)

// Series describes a batch of cards sharing one variant, font, and style.
type Series struct {
	Name     string `toml:"name"`
	CardType string `toml:"card_type"`

	// Font is an inline attribute table or a label from the config font map.
	Font font.Ref `toml:"font"`

	EpisodeTextFormat string `toml:"episode_text_format"`

	HideSeasonText  bool `toml:"hide_season_text"`
	HideEpisodeText bool `toml:"hide_episode_text"`
	Blur            bool `toml:"blur"`
	Grayscale       bool `toml:"grayscale"`

	Extras map[string]string `toml:"extras"`

	Episodes []SeriesEpisode `toml:"episode"`
}

// SeriesEpisode is one card to produce.
type SeriesEpisode struct {
	Season  int    `toml:"season"`
	Episode int    `toml:"episode"`
	Title   string `toml:"title"`
	Source  string `toml:"source"`
	Output  string `toml:"output"`
}

// LoadSeries reads a series file.
func LoadSeries(path string) (*Series, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("series file not found: %s", path)
	}

	var series Series
	if _, err := toml.DecodeFile(path, &series); err != nil {
		return nil, fmt.Errorf("error parsing series file: %v", err)
	}

	if series.CardType == "" {
		series.CardType = "overline"
	}
	if series.Extras == nil {
		series.Extras = map[string]string{}
	}

	return &series, nil
}
