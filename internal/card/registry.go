package card

import (
	"errors"
	"fmt"

	"github.com/ljmurray/marquee/internal/font"
)

var (
	// ErrMissingParam is returned when construction parameters violate the
	// contract; the wrapping error names the field.
	ErrMissingParam = errors.New("missing required card parameter")

	// ErrUnknownVariant is returned for a variant name with no registered
	// card type.
	ErrUnknownVariant = errors.New("unknown card variant")
)

// Type describes one card variant: how to construct it, its font defaults,
// and the classification helpers callers use to decide whether a generated
// card is generic enough to reuse.
type Type struct {
	Name string

	// New constructs a card instance from resolved parameters.
	New func(Params) (Card, error)

	// FontDefaults are the variant's built-in typographic attributes.
	FontDefaults font.Defaults

	// EpisodeTextFormat is the variant's standard index text format.
	EpisodeTextFormat string

	// IsCustomFont reports whether the font or style extras deviate from
	// the variant's defaults.
	IsCustomFont func(f font.Font, extras map[string]string) bool

	// IsCustomSeasonTitles reports whether season/episode text formatting
	// deviates from the variant's standard format.
	IsCustomSeasonTitles func(customEpisodeMap bool, episodeTextFormat string) bool

	// ModifyExtras normalizes style-only extras back to variant defaults
	// when no custom font is in effect, so style noise does not register as
	// customization.
	ModifyExtras func(extras map[string]string, customFont, customSeasonTitles bool)
}

// Types returns every registered variant, keyed by name. Variant defaults
// reference files under assetsDir.
func Types(assetsDir string) map[string]Type {
	overline := OverlineType(assetsDir)
	return map[string]Type{
		overline.Name: overline,
	}
}

// Lookup resolves a variant name against the registry.
func Lookup(assetsDir, name string) (Type, error) {
	t, ok := Types(assetsDir)[name]
	if !ok {
		return Type{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return t, nil
}
