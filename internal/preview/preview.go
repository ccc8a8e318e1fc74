// Package preview renders a finished card as truecolor ANSI art for a quick
// terminal check without opening the image.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

// Render converts img to ANSI art cols cells wide. Rows follow the image's
// aspect ratio, with every text row covering two pixel rows via the upper
// half-block character. The image is supersampled 2x and the cell colors
// averaged, which reads much better for thin card lines and small text.
func Render(img image.Image, cols int) string {
	if cols < 2 {
		cols = 2
	}

	bounds := img.Bounds()
	rows := cols * bounds.Dy() / bounds.Dx() / 2
	if rows < 1 {
		rows = 1
	}

	scaled := resize.Resize(uint(cols*2), uint(rows*4), img, resize.Lanczos3)

	var b strings.Builder
	for y := 0; y < rows*4; y += 4 {
		for x := 0; x < cols*2; x += 2 {
			fg := averageAt(scaled, x, y, x+1, y+1)
			bg := averageAt(scaled, x, y+2, x+1, y+3)
			writeCell(&b, fg, bg)
		}
		b.WriteString("\x1b[0m\n")
	}

	return b.String()
}

// averageAt averages the two pixels covering one half of a character cell.
func averageAt(img image.Image, x1, y1, x2, y2 int) colorful.Color {
	a, _ := colorful.MakeColor(colorAt(img, x1, y1))
	b, _ := colorful.MakeColor(colorAt(img, x2, y2))
	return colorful.Color{
		R: (a.R + b.R) / 2,
		G: (a.G + b.G) / 2,
		B: (a.B + b.B) / 2,
	}
}

func colorAt(img image.Image, x, y int) color.Color {
	bounds := img.Bounds()
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		return img.At(x, y)
	}
	return color.RGBA{A: 255}
}

func writeCell(b *strings.Builder, fg, bg colorful.Color) {
	fr, fgG, fb := fg.RGB255()
	br, bgG, bb := bg.RGB255()
	fmt.Fprintf(b, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀",
		fr, fgG, fb, br, bgG, bb)
}
