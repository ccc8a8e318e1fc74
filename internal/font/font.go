// Package font merges a raw font specification with a card type's defaults
// and validates every overridable attribute independently. A rejected field
// keeps its default and records a Problem; resolution never aborts early, so
// a single bad attribute degrades the card instead of failing it.
package font

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Percentage tokens: digits with an optional decimal part, ending in '%'.
var (
	percentRe         = regexp.MustCompile(`^-?\d+\.?\d*%$`)
	percentPositiveRe = regexp.MustCompile(`^\d+\.?\d*%$`)
	colorRe           = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

// Defaults holds the card type's built-in typographic attributes. Scale
// factors (size, kerning, stroke width) always default to 1.0 and the pixel
// offsets to 0, so only the type-specific attributes appear here.
type Defaults struct {
	Color        string
	File         string
	Replacements map[string]string
	Case         string
}

// Policy carries process-wide font preferences that resolution needs; it is
// passed in explicitly rather than read from global state.
type Policy struct {
	// ValidateGlyphs enables glyph-coverage checking of title text unless a
	// spec overrides it per card.
	ValidateGlyphs bool
}

// Font is the fully merged, validated attribute set for one card. It is
// constructed once per card-generation request and read-only afterwards.
type Font struct {
	Color            string
	Size             float64
	File             string
	Replacements     map[string]string
	Case             string
	VerticalShift    int
	InterlineSpacing int
	InterwordSpacing int
	Kerning          float64
	StrokeWidth      float64

	// CheckGlyphs mirrors the resolved validate toggle.
	CheckGlyphs bool

	// Valid is false when any field of the raw specification was rejected.
	// Rejected fields retain their defaults.
	Valid bool
}

// Problem is a field-level validation diagnostic produced during resolution.
type Problem struct {
	Field   string
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("font %s: %s", p.Field, p.Message)
}

// GlyphValidator reports whether a font file can render every character of
// the given text. Implemented by fontcheck; stubbed in tests.
type GlyphValidator interface {
	Validate(fontFile string, text string) (bool, error)
}

// Resolve merges ref against defaults and returns the resolved Font along
// with every field-level Problem encountered. Fields are validated
// independently: one bad field does not block the rest, and a bad field's
// default is retained. A ref that is present but neither a table nor a known
// label yields an invalid Font with all defaults in place.
func Resolve(ref Ref, fontMap map[string]*Spec, defaults Defaults, policy Policy) (Font, []Problem) {
	f := Font{
		Color:        defaults.Color,
		Size:         1.0,
		File:         defaults.File,
		Replacements: copyReplacements(defaults.Replacements),
		Case:         defaults.Case,
		Kerning:      1.0,
		StrokeWidth:  1.0,
		CheckGlyphs:  policy.ValidateGlyphs,
		Valid:        true,
	}

	var problems []Problem
	spec := &Spec{}

	switch {
	case ref.Label != "":
		if s, ok := fontMap[ref.Label]; ok {
			spec = s
		} else {
			problems = append(problems, Problem{
				Field:   "font",
				Message: fmt.Sprintf("unknown font label %q", ref.Label),
			})
		}
	case ref.Inline != nil:
		spec = ref.Inline
	case ref.malformed:
		problems = append(problems, Problem{
			Field:   "font",
			Message: "must be a table of attributes or a font label",
		})
	}

	// Type-level problems recorded while decoding the raw table.
	problems = append(problems, spec.problems...)

	if spec.Validate != nil {
		f.CheckGlyphs = *spec.Validate
	}

	if spec.Case != nil {
		name := strings.ToLower(*spec.Case)
		if !KnownCase(name) {
			problems = append(problems, Problem{
				Field:   "case",
				Message: fmt.Sprintf("%q is not a known case transform", *spec.Case),
			})
		} else {
			f.Case = name
		}
	}

	if spec.Color != nil {
		if !colorRe.MatchString(*spec.Color) {
			problems = append(problems, Problem{
				Field:   "color",
				Message: fmt.Sprintf("%q is invalid - specify as \"#xxxxxx\"", *spec.Color),
			})
		} else {
			f.Color = *spec.Color
		}
	}

	if spec.File != nil {
		if _, err := os.Stat(*spec.File); err != nil {
			problems = append(problems, Problem{
				Field:   "file",
				Message: fmt.Sprintf("%q not found", *spec.File),
			})
		} else {
			abs, err := filepath.Abs(*spec.File)
			if err != nil {
				abs = *spec.File
			}
			f.File = abs
			// A manually specified font does not inherit the card type's
			// automatic glyph substitutions.
			f.Replacements = map[string]string{}
		}
	}

	if spec.Replacements != nil {
		if repl, problem := validateReplacements(spec.Replacements); problem != nil {
			problems = append(problems, *problem)
		} else {
			f.Replacements = repl
		}
	}

	if spec.Size != nil {
		if v, ok := parsePercentage(*spec.Size, false); !ok {
			problems = append(problems, Problem{
				Field:   "size",
				Message: fmt.Sprintf("%q is invalid - specify as \"x%%\"", *spec.Size),
			})
		} else {
			f.Size = v
		}
	}

	if spec.VerticalShift != nil {
		f.VerticalShift = *spec.VerticalShift
	}

	if spec.InterlineSpacing != nil {
		f.InterlineSpacing = *spec.InterlineSpacing
	}

	if spec.InterwordSpacing != nil {
		f.InterwordSpacing = *spec.InterwordSpacing
	}

	if spec.Kerning != nil {
		if v, ok := parsePercentage(*spec.Kerning, true); !ok {
			problems = append(problems, Problem{
				Field:   "kerning",
				Message: fmt.Sprintf("%q is invalid - specify as \"x%%\"", *spec.Kerning),
			})
		} else {
			f.Kerning = v
		}
	}

	if spec.StrokeWidth != nil {
		if v, ok := parsePercentage(*spec.StrokeWidth, false); !ok {
			problems = append(problems, Problem{
				Field:   "stroke_width",
				Message: fmt.Sprintf("%q is invalid - specify as \"x%%\"", *spec.StrokeWidth),
			})
		} else {
			f.StrokeWidth = v
		}
	}

	if len(problems) > 0 {
		f.Valid = false
	}

	return f, problems
}

// ValidateTitle reports whether every character of title is renderable with
// this font. It returns true unconditionally when glyph checking is
// disabled for this font.
func (f Font) ValidateTitle(v GlyphValidator, title string) (bool, error) {
	if !f.CheckGlyphs {
		return true, nil
	}
	return v.Validate(f.File, title)
}

// FormatTitle applies the font's character replacements and case transform
// to raw title text.
func (f Font) FormatTitle(title string) string {
	for from, to := range f.Replacements {
		title = strings.ReplaceAll(title, from, to)
	}
	return applyCase(f.Case, title)
}

// parsePercentage parses a token like "150%" into 1.5. Negative values are
// only accepted when signed is true.
func parsePercentage(token string, signed bool) (float64, bool) {
	re := percentPositiveRe
	if signed {
		re = percentRe
	}
	if !re.MatchString(token) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(token, "%"), 64)
	if err != nil {
		return 0, false
	}
	return v / 100.0, true
}

// validateReplacements checks that every key is exactly one character and
// every value is a string.
func validateReplacements(raw map[string]any) (map[string]string, *Problem) {
	out := make(map[string]string, len(raw))
	for key, value := range raw {
		if len([]rune(key)) != 1 {
			return nil, &Problem{
				Field:   "replacements",
				Message: fmt.Sprintf("key %q is invalid - must be one character", key),
			}
		}
		s, ok := value.(string)
		if !ok {
			return nil, &Problem{
				Field:   "replacements",
				Message: fmt.Sprintf("value for %q is invalid - can only substitute strings", key),
			}
		}
		out[key] = s
	}
	return out, nil
}

func copyReplacements(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
