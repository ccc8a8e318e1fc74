package card

import (
	"fmt"
	"strings"
)

// Assemble flattens ordered fragments into one compositor instruction. No
// validation happens here: fragments are well-formed by the time they reach
// assembly, and degenerate geometry has already been suppressed.
func Assemble(fragments ...Commands) string {
	var parts []string
	for _, fragment := range fragments {
		parts = append(parts, fragment...)
	}
	return strings.Join(parts, " ")
}

// Create builds the card's full pipeline and dispatches it to the runner. A
// measurement or compositor failure is fatal for this card and reported with
// the source it belonged to.
func Create(c Card, m Measurer, r Runner) error {
	pipeline, err := c.Pipeline(m)
	if err != nil {
		return fmt.Errorf("card for %q: %w", c.SourceFile(), err)
	}
	if err := r.Run(Assemble(pipeline)); err != nil {
		return fmt.Errorf("card for %q: %w", c.SourceFile(), err)
	}
	return nil
}
