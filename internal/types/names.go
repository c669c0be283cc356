package types

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Name is a validated theme, scheme, swatch, or role identifier. Names come
// from directory entries and user-written TOML, so they are checked before
// they participate in path construction.
type Name string

// ParseName validates raw as an identifier of the given kind ("theme",
// "scheme", "swatch", "role"). The kind only appears in error messages.
func ParseName(kind, raw string) (Name, error) {
	if raw == "" {
		return "", fmt.Errorf("%s name must not be empty", kind)
	}
	if strings.ContainsAny(raw, "/\\") {
		return "", fmt.Errorf("%s name %q must not contain path separators", kind, raw)
	}
	if strings.HasPrefix(raw, ".") {
		return "", fmt.Errorf("%s name %q must not start with a dot", kind, raw)
	}
	for _, r := range raw {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("%s name %q must not contain control characters", kind, raw)
		}
	}

	return Name(raw), nil
}

func (n Name) String() string {
	return string(n)
}

// asciiFold decomposes accented characters and strips combining marks, so
// "Solarizéd" folds to "Solarized".
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// ASCII returns a transliterated ASCII form of the name for use in contexts
// that cannot carry Unicode (legacy terminal configs, filenames on foreign
// systems). Characters with no ASCII decomposition are replaced with "_".
func (n Name) ASCII() string {
	folded, _, err := transform.String(asciiFold, string(n))
	if err != nil {
		folded = string(n)
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r < 128 {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}

	return b.String()
}
