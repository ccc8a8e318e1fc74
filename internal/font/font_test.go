package font

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func testDefaults() Defaults {
	return Defaults{
		Color:        "white",
		File:         "/assets/TitleFont.ttf",
		Replacements: map[string]string{"…": "..."},
		Case:         "upper",
	}
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestResolveEmptyRefUsesDefaults(t *testing.T) {
	f, problems := Resolve(Ref{}, nil, testDefaults(), Policy{ValidateGlyphs: true})

	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
	if !f.Valid {
		t.Error("Valid = false for an empty spec")
	}
	if f.Color != "white" || f.File != "/assets/TitleFont.ttf" || f.Case != "upper" {
		t.Errorf("defaults not applied: %+v", f)
	}
	if f.Size != 1.0 || f.Kerning != 1.0 || f.StrokeWidth != 1.0 {
		t.Errorf("scale factors should default to 1.0: %+v", f)
	}
	if f.VerticalShift != 0 || f.InterlineSpacing != 0 || f.InterwordSpacing != 0 {
		t.Errorf("pixel offsets should default to 0: %+v", f)
	}
	if !f.CheckGlyphs {
		t.Error("CheckGlyphs should follow the policy")
	}
}

func TestResolveColor(t *testing.T) {
	tests := []struct {
		color string
		ok    bool
	}{
		{"#1a2b3c", true},
		{"#ABCDEF", true},
		{"1a2b3c", false},
		{"#1a2b3", false},
		{"#1a2b3cd", false},
		{"#ggg000", false},
	}

	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			ref := Ref{Inline: &Spec{Color: strPtr(tt.color)}}
			f, problems := Resolve(ref, nil, testDefaults(), Policy{})

			if tt.ok {
				if len(problems) != 0 {
					t.Fatalf("unexpected problems: %v", problems)
				}
				if f.Color != tt.color {
					t.Errorf("Color = %q, want %q", f.Color, tt.color)
				}
			} else {
				if len(problems) != 1 || problems[0].Field != "color" {
					t.Fatalf("want one color problem, got %v", problems)
				}
				if f.Color != "white" {
					t.Errorf("rejected color should keep default, got %q", f.Color)
				}
				if f.Valid {
					t.Error("Valid = true with a rejected field")
				}
			}
		})
	}
}

func TestResolvePercentages(t *testing.T) {
	tests := []struct {
		name  string
		spec  Spec
		check func(t *testing.T, f Font, problems []Problem)
	}{
		{
			name: "size 150%",
			spec: Spec{Size: strPtr("150%")},
			check: func(t *testing.T, f Font, problems []Problem) {
				if len(problems) != 0 || f.Size != 1.5 {
					t.Errorf("Size = %v, problems %v", f.Size, problems)
				}
			},
		},
		{
			name: "size rejects negative",
			spec: Spec{Size: strPtr("-10%")},
			check: func(t *testing.T, f Font, problems []Problem) {
				if len(problems) != 1 || f.Size != 1.0 {
					t.Errorf("Size = %v, problems %v", f.Size, problems)
				}
			},
		},
		{
			name: "kerning accepts negative",
			spec: Spec{Kerning: strPtr("-10%")},
			check: func(t *testing.T, f Font, problems []Problem) {
				if len(problems) != 0 || f.Kerning != -0.1 {
					t.Errorf("Kerning = %v, problems %v", f.Kerning, problems)
				}
			},
		},
		{
			name: "stroke width decimal",
			spec: Spec{StrokeWidth: strPtr("0.5%")},
			check: func(t *testing.T, f Font, problems []Problem) {
				if len(problems) != 0 || f.StrokeWidth != 0.005 {
					t.Errorf("StrokeWidth = %v, problems %v", f.StrokeWidth, problems)
				}
			},
		},
		{
			name: "not a percentage",
			spec: Spec{Size: strPtr("abc%")},
			check: func(t *testing.T, f Font, problems []Problem) {
				if len(problems) != 1 || f.Size != 1.0 {
					t.Errorf("Size = %v, problems %v", f.Size, problems)
				}
			},
		},
		{
			name: "missing percent sign",
			spec: Spec{Size: strPtr("150")},
			check: func(t *testing.T, f Font, problems []Problem) {
				if len(problems) != 1 || f.Size != 1.0 {
					t.Errorf("Size = %v, problems %v", f.Size, problems)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := tt.spec
			f, problems := Resolve(Ref{Inline: &spec}, nil, testDefaults(), Policy{})
			tt.check(t, f, problems)
		})
	}
}

func TestResolveReplacements(t *testing.T) {
	good := Ref{Inline: &Spec{Replacements: map[string]any{"a": "4", "e": "3"}}}
	f, problems := Resolve(good, nil, testDefaults(), Policy{})
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
	if f.Replacements["a"] != "4" || f.Replacements["e"] != "3" {
		t.Errorf("Replacements = %v", f.Replacements)
	}

	multiKey := Ref{Inline: &Spec{Replacements: map[string]any{"ab": "4"}}}
	f, problems = Resolve(multiKey, nil, testDefaults(), Policy{})
	if len(problems) != 1 || problems[0].Field != "replacements" {
		t.Fatalf("want one replacements problem, got %v", problems)
	}
	if f.Replacements["…"] != "..." {
		t.Error("rejected replacements should keep defaults")
	}

	badValue := Ref{Inline: &Spec{Replacements: map[string]any{"a": 4}}}
	_, problems = Resolve(badValue, nil, testDefaults(), Policy{})
	if len(problems) != 1 || problems[0].Field != "replacements" {
		t.Fatalf("want one replacements problem, got %v", problems)
	}
}

func TestResolveFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "Custom.ttf")
	if err := os.WriteFile(file, []byte("font"), 0644); err != nil {
		t.Fatal(err)
	}

	f, problems := Resolve(Ref{Inline: &Spec{File: strPtr(file)}}, nil, testDefaults(), Policy{})
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
	if !filepath.IsAbs(f.File) {
		t.Errorf("File should be absolute, got %q", f.File)
	}
	if len(f.Replacements) != 0 {
		t.Errorf("a custom file should reset default replacements, got %v", f.Replacements)
	}

	missing := filepath.Join(dir, "nope.ttf")
	f, problems = Resolve(Ref{Inline: &Spec{File: strPtr(missing)}}, nil, testDefaults(), Policy{})
	if len(problems) != 1 || problems[0].Field != "file" {
		t.Fatalf("want one file problem, got %v", problems)
	}
	if f.File != "/assets/TitleFont.ttf" {
		t.Errorf("missing file should keep default, got %q", f.File)
	}
	if f.Replacements["…"] != "..." {
		t.Error("missing file should keep default replacements")
	}
}

func TestResolveCase(t *testing.T) {
	f, problems := Resolve(Ref{Inline: &Spec{Case: strPtr("Lower")}}, nil, testDefaults(), Policy{})
	if len(problems) != 0 || f.Case != "lower" {
		t.Errorf("Case = %q, problems %v", f.Case, problems)
	}

	f, problems = Resolve(Ref{Inline: &Spec{Case: strPtr("shouty")}}, nil, testDefaults(), Policy{})
	if len(problems) != 1 || problems[0].Field != "case" {
		t.Fatalf("want one case problem, got %v", problems)
	}
	if f.Case != "upper" {
		t.Errorf("rejected case should keep default, got %q", f.Case)
	}
}

func TestResolveIndependentFields(t *testing.T) {
	// A bad color must not block a good size from applying.
	ref := Ref{Inline: &Spec{
		Color:         strPtr("not-a-color"),
		Size:          strPtr("120%"),
		VerticalShift: intPtr(-20),
	}}
	f, problems := Resolve(ref, nil, testDefaults(), Policy{})

	if len(problems) != 1 {
		t.Fatalf("want exactly one problem, got %v", problems)
	}
	if f.Size != 1.2 || f.VerticalShift != -20 {
		t.Errorf("valid fields should apply despite a bad sibling: %+v", f)
	}
	if f.Valid {
		t.Error("Valid = true with a rejected field")
	}
}

func TestResolveIntegerOffsets(t *testing.T) {
	ref := Ref{Inline: &Spec{
		VerticalShift:    intPtr(-20),
		InterlineSpacing: intPtr(-40),
		InterwordSpacing: intPtr(15),
	}}
	f, problems := Resolve(ref, nil, testDefaults(), Policy{})
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
	if f.VerticalShift != -20 || f.InterlineSpacing != -40 || f.InterwordSpacing != 15 {
		t.Errorf("offsets not applied: %+v", f)
	}
}

func TestResolveIdempotent(t *testing.T) {
	ref := Ref{Inline: &Spec{
		Color:   strPtr("#1a2b3c"),
		Size:    strPtr("150%"),
		Kerning: strPtr("-10%"),
	}}

	first, _ := Resolve(ref, nil, testDefaults(), Policy{ValidateGlyphs: true})
	second, _ := Resolve(ref, nil, testDefaults(), Policy{ValidateGlyphs: true})

	// Maps aside, the structs must match field for field.
	firstRepl, secondRepl := first.Replacements, second.Replacements
	first.Replacements, second.Replacements = nil, nil
	if !reflect.DeepEqual(first, second) {
		t.Errorf("resolution is not idempotent: %+v vs %+v", first, second)
	}
	if len(firstRepl) != len(secondRepl) {
		t.Errorf("replacements differ: %v vs %v", firstRepl, secondRepl)
	}
}

func TestResolveLabels(t *testing.T) {
	fontMap := map[string]*Spec{
		"showtitle": {Color: strPtr("#cc7722"), Size: strPtr("110%")},
	}

	f, problems := Resolve(Ref{Label: "showtitle"}, fontMap, testDefaults(), Policy{})
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
	if f.Color != "#cc7722" || f.Size != 1.1 {
		t.Errorf("label spec not applied: %+v", f)
	}

	f, problems = Resolve(Ref{Label: "nope"}, fontMap, testDefaults(), Policy{})
	if len(problems) != 1 || problems[0].Field != "font" {
		t.Fatalf("want one font problem, got %v", problems)
	}
	if f.Valid || f.Color != "white" {
		t.Errorf("unknown label should keep defaults and be invalid: %+v", f)
	}
}

func TestResolveMalformedRef(t *testing.T) {
	f, problems := Resolve(Malformed(), nil, testDefaults(), Policy{})
	if len(problems) != 1 {
		t.Fatalf("want one problem, got %v", problems)
	}
	if f.Valid || f.Color != "white" {
		t.Errorf("malformed ref should keep defaults and be invalid: %+v", f)
	}
}

func TestResolveValidateOverride(t *testing.T) {
	off := false
	f, _ := Resolve(Ref{Inline: &Spec{Validate: &off}}, nil, testDefaults(), Policy{ValidateGlyphs: true})
	if f.CheckGlyphs {
		t.Error("per-spec validate=false should override the policy")
	}
}

func TestFormatTitle(t *testing.T) {
	f := Font{
		Case:         "upper",
		Replacements: map[string]string{"é": "e"},
	}
	if got := f.FormatTitle("Café Nights"); got != "CAFE NIGHTS" {
		t.Errorf("FormatTitle = %q", got)
	}

	blank := Font{Case: "blank"}
	if got := blank.FormatTitle("anything"); got != "" {
		t.Errorf("blank case should suppress the title, got %q", got)
	}

	title := Font{Case: "title"}
	if got := title.FormatTitle("the long WAY home"); got != "The Long Way Home" {
		t.Errorf("title case = %q", got)
	}
}

type stubValidator struct {
	ok     bool
	called bool
}

func (s *stubValidator) Validate(string, string) (bool, error) {
	s.called = true
	return s.ok, nil
}

func TestValidateTitle(t *testing.T) {
	v := &stubValidator{ok: false}
	f := Font{CheckGlyphs: false}

	ok, err := f.ValidateTitle(v, "title")
	if err != nil || !ok {
		t.Errorf("disabled checking should pass unconditionally: %v %v", ok, err)
	}
	if v.called {
		t.Error("validator should not run when checking is disabled")
	}

	f.CheckGlyphs = true
	ok, _ = f.ValidateTitle(v, "title")
	if ok || !v.called {
		t.Errorf("enabled checking should consult the validator: ok=%v called=%v", ok, v.called)
	}
}

func TestRefUnmarshalTOML(t *testing.T) {
	var r Ref
	if err := r.UnmarshalTOML("showtitle"); err != nil {
		t.Fatal(err)
	}
	if r.Label != "showtitle" || r.Inline != nil {
		t.Errorf("string should become a label: %+v", r)
	}

	r = Ref{}
	if err := r.UnmarshalTOML(map[string]any{"color": "#1a2b3c", "vertical_shift": int64(-20)}); err != nil {
		t.Fatal(err)
	}
	if r.Inline == nil || r.Inline.Color == nil || *r.Inline.Color != "#1a2b3c" {
		t.Fatalf("table should become an inline spec: %+v", r.Inline)
	}
	if r.Inline.VerticalShift == nil || *r.Inline.VerticalShift != -20 {
		t.Errorf("int64 vertical_shift not decoded: %+v", r.Inline)
	}

	r = Ref{}
	if err := r.UnmarshalTOML(42); err != nil {
		t.Fatal(err)
	}
	if !r.malformed {
		t.Error("non-string non-table value should mark the ref malformed")
	}
}

func TestRefUnmarshalJSON(t *testing.T) {
	var r Ref
	if err := r.UnmarshalJSON([]byte(`{"size":"150%","interline_spacing":-40}`)); err != nil {
		t.Fatal(err)
	}
	if r.Inline == nil || r.Inline.Size == nil || *r.Inline.Size != "150%" {
		t.Fatalf("inline spec not decoded: %+v", r.Inline)
	}
	if r.Inline.InterlineSpacing == nil || *r.Inline.InterlineSpacing != -40 {
		t.Errorf("JSON number should decode as an integer: %+v", r.Inline)
	}

	r = Ref{}
	if err := r.UnmarshalJSON([]byte(`{"interline_spacing":1.5}`)); err != nil {
		t.Fatal(err)
	}
	if len(r.Inline.problems) != 1 {
		t.Errorf("fractional integer should record a problem: %v", r.Inline.problems)
	}

	r = Ref{}
	if err := r.UnmarshalJSON([]byte(`null`)); err != nil {
		t.Fatal(err)
	}
	if !r.IsZero() {
		t.Errorf("null should leave the ref zero: %+v", r)
	}
}

func TestDecodeSpecIgnoresUnknownAttributes(t *testing.T) {
	var r Ref
	if err := r.UnmarshalTOML(map[string]any{"wieght": "bold", "size": "150%"}); err != nil {
		t.Fatal(err)
	}
	f, problems := Resolve(r, nil, testDefaults(), Policy{})
	if len(problems) != 0 {
		t.Errorf("unknown attribute should not surface a problem, got %v", problems)
	}
	if !f.Valid || f.Size != 1.5 {
		t.Errorf("known attributes should still apply: %+v", f)
	}
}
