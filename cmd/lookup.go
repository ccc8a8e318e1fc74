package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ljmurray/marquee/internal/episodes"
	"github.com/ljmurray/marquee/internal/webclient"
)

// lookupCmd represents the lookup command
var lookupCmd = &cobra.Command{
	Use:   "lookup [series_name]",
	Short: "Look up a series' episode titles on TVmaze",
	Long: `Lookup searches TVmaze for a series and prints its episode list, in the
form a series file expects. Useful for building a series file by hand.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := episodes.NewClient(webclient.New(nil), "")

		show, err := client.Search(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("error searching for series: %v", err)
		}

		eps, err := client.Episodes(cmd.Context(), show.ID)
		if err != nil {
			return fmt.Errorf("error fetching episodes: %v", err)
		}

		fmt.Printf("%s (TVmaze id %d)\n\n", show.Name, show.ID)
		for _, ep := range eps {
			fmt.Println("[[episode]]")
			fmt.Printf("season = %d\n", ep.Season)
			fmt.Printf("episode = %d\n", ep.Number)
			fmt.Printf("title = %q\n", ep.Name)
			fmt.Println()
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(lookupCmd)
}
