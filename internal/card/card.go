// Package card turns resolved per-card parameters into the ordered drawing
// instruction a compositor executes. Each variant owns its own layout
// mathematics behind the shared Card contract; this package also defines the
// measurement and execution ports the variants are wired to.
package card

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ljmurray/marquee/internal/font"
	"github.com/ljmurray/marquee/internal/geometry"
)

// Canvas dimensions every variant lays out against. The source frame is
// resized to this geometry before any text is placed.
const (
	Width  = 3200
	Height = 1800
)

// Commands is an ordered sequence of drawing instruction fragments. Order is
// semantically significant: later fragments composite over earlier ones.
type Commands []string

// Metric selects how per-line measurements are combined into one dimension.
type Metric string

const (
	MetricMax Metric = "max"
	MetricSum Metric = "sum"
)

// Measurer returns the bounding-box dimensions a drawing fragment would
// occupy when rendered. An empty fragment measures as zero dimensions.
type Measurer interface {
	Measure(fragment Commands, width, height Metric) (geometry.Dimensions, error)
}

// Runner executes one fully assembled compositor instruction. The instruction
// carries no engine binary name; the implementation supplies its own.
type Runner interface {
	Run(instruction string) error
}

// Card is the contract every concrete variant implements: a fully
// constructed card can produce its complete ordered pipeline, given a
// Measurer for the text-measurement round-trip.
type Card interface {
	Pipeline(m Measurer) (Commands, error)
	SourceFile() string
	OutputFile() string
}

// Params is the declarative construction surface shared by all variants.
// Variant-specific style overrides travel in Extras and are parsed by the
// variant itself.
type Params struct {
	Source string
	Output string

	Title       string
	SeasonText  string
	EpisodeText string

	HideSeasonText  bool
	HideEpisodeText bool

	Font font.Font

	// Style modifiers applied by the shared base behavior.
	Blur      bool
	Grayscale bool

	Extras map[string]string
}

// check enforces the construction contract, naming the first offending
// field.
func (p Params) check() error {
	switch {
	case p.Source == "":
		return fmt.Errorf("%w: source", ErrMissingParam)
	case p.Output == "":
		return fmt.Errorf("%w: output", ErrMissingParam)
	case p.Font.File == "":
		return fmt.Errorf("%w: font file", ErrMissingParam)
	case p.Font.Color == "":
		return fmt.Errorf("%w: font color", ErrMissingParam)
	}
	return nil
}

// Extra returns the named extra, or fallback when unset.
func (p Params) Extra(key, fallback string) string {
	if v, ok := p.Extras[key]; ok {
		return v
	}
	return fallback
}

// BoolExtra parses the named extra as a boolean.
func (p Params) BoolExtra(key string, fallback bool) (bool, error) {
	v, ok := p.Extras[key]
	if !ok {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("extra %s: %q is not a boolean", key, v)
	}
	return b, nil
}

// IntExtra parses the named extra as an integer.
func (p Params) IntExtra(key string, fallback int) (int, error) {
	v, ok := p.Extras[key]
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("extra %s: %q is not an integer", key, v)
	}
	return n, nil
}

// escaper handles characters meaningful to the compositor's instruction
// syntax. Annotated text is always wrapped in double quotes, and percent
// signs would otherwise be eaten by annotate's escape expansion.
var escaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"`", "\\`",
	`%`, `\%`,
)

// Escape makes raw text safe to embed in a drawing instruction.
func Escape(text string) string {
	return escaper.Replace(text)
}

// Base carries the style-modifier pass-through shared by every variant.
type Base struct {
	Blur      bool
	Grayscale bool
}

// ResizeAndStyle fits the source frame to the canvas and applies the shared
// style modifiers.
func (b Base) ResizeAndStyle() Commands {
	cmds := Commands{
		fmt.Sprintf("-resize %dx%d^", Width, Height),
		"-gravity center",
		fmt.Sprintf("-extent %dx%d", Width, Height),
	}
	if b.Blur {
		cmds = append(cmds, "-blur 0x60")
	}
	if b.Grayscale {
		cmds = append(cmds, "-colorspace gray")
	}
	return cmds
}

// ResizeOutput scales the finished composite to the output card size.
func (b Base) ResizeOutput() Commands {
	return Commands{fmt.Sprintf("-resize %dx%d", Width, Height)}
}

// fmtNum renders a scaled layout constant without a trailing ".0".
func fmtNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// offset renders an annotate position like "+0+70".
func offset(x, y int) string {
	return fmt.Sprintf("%+d%+d", x, y)
}
