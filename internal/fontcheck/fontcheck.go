// Package fontcheck reports whether a font file can render a piece of text.
// It parses the font with x/image/font/sfnt and looks up a glyph for every
// rune; a missing glyph (index 0, the .notdef slot) fails the check.
package fontcheck

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"unicode"

	"golang.org/x/image/font/sfnt"
)

// Checker implements font.GlyphValidator. Parsed fonts are cached by path
// since a series validates many titles against the same file. One Checker is
// shared across batch workers, so the cache is mutex-guarded.
type Checker struct {
	logger *slog.Logger

	mu     sync.Mutex
	parsed map[string]*sfnt.Font
}

func New(logger *slog.Logger) *Checker {
	return &Checker{
		logger: logger,
		parsed: make(map[string]*sfnt.Font),
	}
}

// Validate reports whether every character of text has a glyph in the font
// at fontFile. Whitespace is always considered renderable.
func (c *Checker) Validate(fontFile string, text string) (bool, error) {
	f, err := c.load(fontFile)
	if err != nil {
		return false, err
	}

	var buf sfnt.Buffer
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		index, err := f.GlyphIndex(&buf, r)
		if err != nil {
			return false, fmt.Errorf("glyph lookup for %q: %w", r, err)
		}
		if index == 0 {
			c.logger.Warn("font is missing a glyph",
				"font", fontFile, "character", string(r))
			return false, nil
		}
	}

	return true, nil
}

func (c *Checker) load(path string) (*sfnt.Font, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if f, ok := c.parsed[path]; ok {
		return f, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}

	c.parsed[path] = f
	return f, nil
}
