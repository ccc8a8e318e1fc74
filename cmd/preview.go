package cmd

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ljmurray/marquee/internal/preview"
)

// previewCmd represents the preview command
var previewCmd = &cobra.Command{
	Use:   "preview [card_file]",
	Short: "Render a generated card as ANSI art in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("error opening card: %v", err)
		}
		defer file.Close()

		img, _, err := image.Decode(file)
		if err != nil {
			return fmt.Errorf("error decoding card: %v", err)
		}

		cols, _ := cmd.Flags().GetInt("width")
		if cols <= 0 {
			cols = 76
			if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 4 {
				cols = w - 4
			}
			if cols > 120 {
				cols = 120
			}
		}

		fmt.Print(preview.Render(img, cols))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(previewCmd)

	previewCmd.Flags().IntP("width", "w", 0, "Preview width in terminal cells (default fits the terminal)")
}
