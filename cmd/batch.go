package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ljmurray/marquee/internal/app"
	"github.com/ljmurray/marquee/internal/card"
	"github.com/ljmurray/marquee/internal/config"
	"github.com/ljmurray/marquee/internal/episodes"
	"github.com/ljmurray/marquee/internal/webclient"
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch [series_file]",
	Short: "Create every title card described by a series file",
	Long: `Batch generates cards for all episodes of a series file. Cards are
independent, so generation runs across a bounded worker pool; a failed card
is reported and does not stop the rest.

With --fill-titles, episodes missing a title are filled from TVmaze using
the series name.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}

		series, err := config.LoadSeries(args[0])
		if err != nil {
			return err
		}

		variant, err := card.Lookup(env.cfg.General.AssetsDir, series.CardType)
		if err != nil {
			return err
		}

		fillTitles, _ := cmd.Flags().GetBool("fill-titles")
		if fillTitles {
			if err := fillSeriesTitles(cmd.Context(), env, series); err != nil {
				return err
			}
		}

		episodeTextFormat := series.EpisodeTextFormat
		if episodeTextFormat == "" {
			episodeTextFormat = variant.EpisodeTextFormat
		}

		reqs := make([]app.Request, 0, len(series.Episodes))
		for _, ep := range series.Episodes {
			output := ep.Output
			if output == "" && ep.Source != "" {
				output = strings.TrimSuffix(ep.Source, filepath.Ext(ep.Source)) + "-card.jpg"
			}

			reqs = append(reqs, app.Request{
				Variant:         series.CardType,
				Source:          ep.Source,
				Output:          output,
				Title:           ep.Title,
				SeasonText:      "Season " + strconv.Itoa(ep.Season),
				EpisodeText:     app.FormatIndex(episodeTextFormat, ep.Season, ep.Episode),
				HideSeasonText:  series.HideSeasonText,
				HideEpisodeText: series.HideEpisodeText,
				Font:            series.Font,
				Blur:            series.Blur,
				Grayscale:       series.Grayscale,
				Extras:          series.Extras,
			})
		}

		workers, _ := cmd.Flags().GetInt("workers")
		gen := newGenerator(env)
		errs := gen.GenerateAll(reqs, workers)
		for _, err := range errs {
			env.logger.Error("card not produced", "error", err)
		}
		if len(errs) > 0 {
			return fmt.Errorf("%d of %d cards failed", len(errs), len(reqs))
		}

		env.logger.Info("batch complete", "series", series.Name, "cards", len(reqs))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(batchCmd)

	batchCmd.Flags().Int("workers", 4, "Number of cards to generate concurrently")
	batchCmd.Flags().Bool("fill-titles", false, "Fill missing episode titles from TVmaze")
}

// fillSeriesTitles looks the series up on TVmaze and fills empty titles.
func fillSeriesTitles(ctx context.Context, env *environment, series *config.Series) error {
	client := episodes.NewClient(webclient.New(nil), "")

	show, err := client.Search(ctx, series.Name)
	if err != nil {
		return err
	}
	eps, err := client.Episodes(ctx, show.ID)
	if err != nil {
		return err
	}

	for i, ep := range series.Episodes {
		if ep.Title != "" {
			continue
		}
		title := episodes.TitleFor(eps, ep.Season, ep.Episode)
		if title == "" {
			env.logger.Warn("no title found",
				"series", series.Name, "season", ep.Season, "episode", ep.Episode)
			continue
		}
		series.Episodes[i].Title = title
	}

	return nil
}
