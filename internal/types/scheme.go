// Package types provides the shared domain types for themer: themes, schemes,
// swatches, palettes, roles, and their layered-override merge rules. It exists
// as a leaf package so config, themes, manifest, and render can all share
// these definitions without import cycles.
package types

import (
	"fmt"
	"strings"

	"github.com/themerdev/themer/internal/merge"
)

// Swatch is one named color entry inside a Palette.
type Swatch struct {
	Name  Name   `json:"name" toml:"name"`
	Color string `json:"color" toml:"color"`
}

// Palette is an identity-keyed, order-preserving set of swatches. Identity is
// the swatch name.
type Palette []Swatch

// Get returns the swatch with the given name.
func (p Palette) Get(name Name) (Swatch, bool) {
	for _, s := range p {
		if s.Name == name {
			return s, true
		}
	}

	return Swatch{}, false
}

// Merge unions p over base: base order is preserved, name collisions keep
// base's position but take p's swatch, names only in p append after.
func (p Palette) Merge(base Palette) Palette {
	return merge.IdentitySet(p, base, func(s Swatch) string { return string(s.Name) })
}

// Role is a semantic color assignment. Value either references a palette
// swatch by name or is a literal "#rrggbb" color.
type Role struct {
	Name  Name   `json:"name" toml:"name"`
	Value string `json:"value" toml:"value"`
}

// Roles is an ordered append-only collection of role assignments. Duplicate
// names are allowed; later entries shadow earlier ones at lookup time.
type Roles []Role

// Merge extends base with all of r's entries appended after.
func (r Roles) Merge(base Roles) Roles {
	return merge.Append(r, base)
}

// ResolvedRole is a role assignment with its palette reference resolved to a
// concrete color.
type ResolvedRole struct {
	Name  Name   `json:"name"`
	Color string `json:"color"`
}

// ResolvedRoles holds one entry per role name, in first-assignment order,
// with later duplicate assignments having replaced earlier values.
type ResolvedRoles []ResolvedRole

// Get returns the resolved color for a role name.
func (r ResolvedRoles) Get(name Name) (string, bool) {
	for _, role := range r {
		if role.Name == name {
			return role.Color, true
		}
	}

	return "", false
}

// Meta carries optional scheme metadata. Pointer fields distinguish "not set"
// from "set to empty" for the optional-scalar merge rule.
type Meta struct {
	Author       *string `json:"author,omitempty" toml:"author"`
	AuthorASCII  *string `json:"author_ascii,omitempty" toml:"author_ascii"`
	License      *string `json:"license,omitempty" toml:"license"`
	LicenseASCII *string `json:"license_ascii,omitempty" toml:"license_ascii"`
	Blurb        *string `json:"blurb,omitempty" toml:"blurb"`
	BlurbASCII   *string `json:"blurb_ascii,omitempty" toml:"blurb_ascii"`
}

// Merge combines m over base field-wise with the optional-scalar rule.
func (m Meta) Merge(base Meta) Meta {
	return Meta{
		Author:       merge.Optional(m.Author, base.Author),
		AuthorASCII:  merge.Optional(m.AuthorASCII, base.AuthorASCII),
		License:      merge.Optional(m.License, base.License),
		LicenseASCII: merge.Optional(m.LicenseASCII, base.LicenseASCII),
		Blurb:        merge.Optional(m.Blurb, base.Blurb),
		BlurbASCII:   merge.Optional(m.BlurbASCII, base.BlurbASCII),
	}
}

// Extra carries auxiliary scheme data with no semantic role assignment.
type Extra struct {
	// Rainbow is an ordered list of swatch names used by templates that want
	// a representative color sequence. An empty list counts as absent.
	Rainbow []string `json:"rainbow,omitempty" toml:"rainbow"`
}

// Merge combines e over base; Rainbow replaces as a whole when non-empty.
func (e Extra) Merge(base Extra) Extra {
	return Extra{Rainbow: merge.NonEmptySlice(e.Rainbow, base.Rainbow)}
}

// RawScheme is the unresolved scheme record as written in a theme base file
// or a per-scheme file, before inheritance and role resolution.
type RawScheme struct {
	Scheme      string  `toml:"scheme"`
	SchemeASCII string  `toml:"scheme_ascii"`
	Meta        Meta    `toml:"meta"`
	Palette     Palette `toml:"palette"`
	Roles       Roles   `toml:"role"`
	Extra       Extra   `toml:"extra"`
}

// Merge combines r over base field-wise: scalars replace when non-empty, the
// palette unions by swatch name, roles append, meta merges per field.
func (r RawScheme) Merge(base RawScheme) RawScheme {
	return RawScheme{
		Scheme:      merge.NonEmpty(r.Scheme, base.Scheme),
		SchemeASCII: merge.NonEmpty(r.SchemeASCII, base.SchemeASCII),
		Meta:        r.Meta.Merge(base.Meta),
		Palette:     r.Palette.Merge(base.Palette),
		Roles:       r.Roles.Merge(base.Roles),
		Extra:       r.Extra.Merge(base.Extra),
	}
}

// Scheme is a fully resolved render unit: validated names, merged palette,
// and roles resolved to concrete colors. Its JSON serialization is the stable
// form hashed into manifest entries, so field order and tags are part of the
// persisted contract.
type Scheme struct {
	Name      Name          `json:"scheme"`
	NameASCII string        `json:"scheme_ascii"`
	Meta      Meta          `json:"meta"`
	Palette   Palette       `json:"palette"`
	Roles     ResolvedRoles `json:"roles"`
	Extra     Extra         `json:"extra"`
}

// IntoScheme validates and resolves r into a Scheme. fallbackName is used
// when the record carries no explicit scheme name (single-scheme themes use
// the theme name, per-scheme files use the file stem).
func (r RawScheme) IntoScheme(fallbackName string) (*Scheme, error) {
	rawName := r.Scheme
	if rawName == "" {
		rawName = fallbackName
	}

	name, err := ParseName("scheme", rawName)
	if err != nil {
		return nil, err
	}

	nameASCII := r.SchemeASCII
	if nameASCII == "" {
		nameASCII = name.ASCII()
	}

	for _, s := range r.Palette {
		if _, err := ParseName("swatch", string(s.Name)); err != nil {
			return nil, fmt.Errorf("scheme %q: %w", name, err)
		}
		if err := validateColor(s.Color); err != nil {
			return nil, fmt.Errorf("scheme %q swatch %q: %w", name, s.Name, err)
		}
	}

	roles, err := r.Roles.resolve(r.Palette)
	if err != nil {
		return nil, fmt.Errorf("scheme %q: %w", name, err)
	}

	for _, swatchName := range r.Extra.Rainbow {
		if _, ok := r.Palette.Get(Name(swatchName)); !ok {
			return nil, fmt.Errorf("scheme %q: rainbow references unknown swatch %q", name, swatchName)
		}
	}

	return &Scheme{
		Name:      name,
		NameASCII: nameASCII,
		Meta:      r.Meta,
		Palette:   r.Palette,
		Roles:     roles,
		Extra:     r.Extra,
	}, nil
}

// resolve maps each role assignment to a concrete color. Later assignments to
// the same role name replace earlier ones in place.
func (r Roles) resolve(palette Palette) (ResolvedRoles, error) {
	resolved := make(ResolvedRoles, 0, len(r))
	index := make(map[Name]int, len(r))

	for _, role := range r {
		if _, err := ParseName("role", string(role.Name)); err != nil {
			return nil, err
		}

		var color string
		if strings.HasPrefix(role.Value, "#") {
			if err := validateColor(role.Value); err != nil {
				return nil, fmt.Errorf("role %q: %w", role.Name, err)
			}
			color = role.Value
		} else {
			swatch, ok := palette.Get(Name(role.Value))
			if !ok {
				return nil, fmt.Errorf("role %q references unknown swatch %q", role.Name, role.Value)
			}
			color = swatch.Color
		}

		if i, ok := index[role.Name]; ok {
			resolved[i].Color = color
			continue
		}
		index[role.Name] = len(resolved)
		resolved = append(resolved, ResolvedRole{Name: role.Name, Color: color})
	}

	return resolved, nil
}

func validateColor(color string) error {
	if !strings.HasPrefix(color, "#") {
		return fmt.Errorf("color %q must start with '#'", color)
	}
	hex := color[1:]
	if len(hex) != 6 && len(hex) != 8 {
		return fmt.Errorf("color %q must be #rrggbb or #rrggbbaa", color)
	}
	for _, r := range hex {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return fmt.Errorf("color %q contains non-hex digit %q", color, r)
		}
	}

	return nil
}
