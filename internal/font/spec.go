package font

import (
	"encoding/json"
	"fmt"
)

// Spec is a raw font specification: every overridable attribute is optional
// and absent attributes fall back to the card type's defaults during Resolve.
// Replacement values are typed loosely so non-string substitutions can be
// rejected with a diagnostic instead of a decode failure.
type Spec struct {
	Validate         *bool          `toml:"validate"`
	Case             *string        `toml:"case"`
	Color            *string        `toml:"color"`
	File             *string        `toml:"file"`
	Replacements     map[string]any `toml:"replacements"`
	Size             *string        `toml:"size"`
	Kerning          *string        `toml:"kerning"`
	StrokeWidth      *string        `toml:"stroke_width"`
	VerticalShift    *int           `toml:"vertical_shift"`
	InterlineSpacing *int           `toml:"interline_spacing"`
	InterwordSpacing *int           `toml:"interword_spacing"`

	// problems holds type-level diagnostics recorded while decoding a loose
	// table; Resolve surfaces them alongside its own.
	problems []Problem
}

// Ref is how a card or series refers to its font: either an inline table of
// attributes or a string label resolved through the configured font map.
// The zero Ref means "no font customization".
type Ref struct {
	Label  string
	Inline *Spec

	// malformed is set when the value is present but neither a string nor a
	// table; Resolve treats the whole specification as invalid and empty.
	malformed bool
}

// IsZero reports whether no font was specified at all.
func (r Ref) IsZero() bool {
	return r.Label == "" && r.Inline == nil && !r.malformed
}

// Malformed constructs the Ref used for a present-but-unusable value.
func Malformed() Ref {
	return Ref{malformed: true}
}

// UnmarshalTOML accepts either a font label string or an inline attribute
// table. Anything else marks the Ref malformed rather than failing the
// surrounding document.
func (r *Ref) UnmarshalTOML(v any) error {
	switch value := v.(type) {
	case string:
		r.Label = value
	case map[string]any:
		r.Inline = decodeSpec(value)
	default:
		r.malformed = true
	}
	return nil
}

// UnmarshalJSON mirrors UnmarshalTOML for the HTTP surface.
func (r *Ref) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	switch value := v.(type) {
	case string:
		r.Label = value
	case map[string]any:
		r.Inline = decodeSpec(value)
	default:
		r.malformed = true
	}
	return nil
}

// decodeSpec converts a loose attribute table into a Spec, recording a
// Problem for every attribute of the wrong type so later attributes still
// decode.
func decodeSpec(table map[string]any) *Spec {
	s := &Spec{}

	bad := func(field, want string) {
		s.problems = append(s.problems, Problem{
			Field:   field,
			Message: fmt.Sprintf("must be %s", want),
		})
	}

	for key, raw := range table {
		switch key {
		case "validate":
			if v, ok := raw.(bool); ok {
				s.Validate = &v
			} else {
				bad(key, "a boolean")
			}
		case "case":
			if v, ok := raw.(string); ok {
				s.Case = &v
			} else {
				bad(key, "a string")
			}
		case "color":
			if v, ok := raw.(string); ok {
				s.Color = &v
			} else {
				bad(key, "a string")
			}
		case "file":
			if v, ok := raw.(string); ok {
				s.File = &v
			} else {
				bad(key, "a string")
			}
		case "replacements":
			if v, ok := raw.(map[string]any); ok {
				s.Replacements = v
			} else {
				bad(key, "a table")
			}
		case "size":
			if v, ok := raw.(string); ok {
				s.Size = &v
			} else {
				bad(key, "a percentage string")
			}
		case "kerning":
			if v, ok := raw.(string); ok {
				s.Kerning = &v
			} else {
				bad(key, "a percentage string")
			}
		case "stroke_width":
			if v, ok := raw.(string); ok {
				s.StrokeWidth = &v
			} else {
				bad(key, "a percentage string")
			}
		case "vertical_shift":
			if v, ok := toInt(raw); ok {
				s.VerticalShift = &v
			} else {
				bad(key, "an integer")
			}
		case "interline_spacing":
			if v, ok := toInt(raw); ok {
				s.InterlineSpacing = &v
			} else {
				bad(key, "an integer")
			}
		case "interword_spacing":
			if v, ok := toInt(raw); ok {
				s.InterwordSpacing = &v
			} else {
				bad(key, "an integer")
			}
		default:
			// Unrecognized attributes are ignored; only a known attribute
			// with a bad value invalidates the font.
		}
	}

	return s
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		// JSON decodes every number as float64; accept integral values.
		if n == float64(int(n)) {
			return int(n), true
		}
		return 0, false
	default:
		return 0, false
	}
}
