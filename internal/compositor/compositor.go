// Package compositor invokes the external ImageMagick engine: it executes
// assembled drawing instructions and implements the text measurement service
// by parsing annotate debug metrics.
package compositor

import (
	"fmt"
	"log/slog"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/ljmurray/marquee/internal/card"
	"github.com/ljmurray/marquee/internal/geometry"
)

// ImageMagick runs drawing instructions through the convert binary. It
// implements card.Runner and card.Measurer.
type ImageMagick struct {
	binary string
	logger *slog.Logger
}

func New(binary string, logger *slog.Logger) *ImageMagick {
	if binary == "" {
		binary = "convert"
	}
	return &ImageMagick{binary: binary, logger: logger}
}

// Run executes one assembled instruction through the configured binary. The
// instruction embeds its own quoting, so it goes through the shell the way it
// was assembled. A non-zero exit status is fatal for the card being generated.
func (im *ImageMagick) Run(instruction string) error {
	command := im.binary + " " + instruction
	im.logger.Debug("running compositor", "command", command)

	out, err := exec.Command("sh", "-c", command).CombinedOutput()
	if err != nil {
		return fmt.Errorf("compositor: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// metricsRe matches one annotate debug metrics line.
var metricsRe = regexp.MustCompile(`Metrics:.*width:\s+([\d.]+);.*height:\s+([\d.]+)`)

// Measure renders the fragment against a blank canvas with annotate
// debugging enabled and combines the per-line metrics: width is the widest
// line, height the sum of line heights. An empty fragment measures as zero.
func (im *ImageMagick) Measure(fragment card.Commands, width, height card.Metric) (geometry.Dimensions, error) {
	if len(fragment) == 0 {
		return geometry.Dimensions{}, nil
	}

	instruction := strings.Join([]string{
		im.binary,
		"-debug annotate",
		"xc:",
		card.Assemble(fragment),
		"null:",
	}, " ")

	// The metrics go to stderr; a failed render still reports through the
	// combined output.
	out, err := exec.Command("sh", "-c", instruction).CombinedOutput()
	if err != nil {
		return geometry.Dimensions{}, fmt.Errorf("measure: %w: %s", err, strings.TrimSpace(string(out)))
	}

	dims, ok := parseMetrics(string(out), width, height)
	if !ok {
		return geometry.Dimensions{}, fmt.Errorf("measure: no annotate metrics in compositor output")
	}
	return dims, nil
}

// parseMetrics folds every metrics line of the debug output into one
// Dimensions value according to the width and height policies.
func parseMetrics(output string, width, height card.Metric) (geometry.Dimensions, bool) {
	var dims geometry.Dimensions
	found := false

	for _, line := range strings.Split(output, "\n") {
		m := metricsRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		w, errW := strconv.ParseFloat(m[1], 64)
		h, errH := strconv.ParseFloat(m[2], 64)
		if errW != nil || errH != nil {
			continue
		}

		dims.Width = combine(dims.Width, w, width)
		dims.Height = combine(dims.Height, h, height)
		found = true
	}

	return dims, found
}

func combine(acc, v float64, policy card.Metric) float64 {
	switch policy {
	case card.MetricSum:
		return acc + v
	default: // card.MetricMax
		if v > acc {
			return v
		}
		return acc
	}
}
