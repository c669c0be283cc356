// Package merge implements the override-combination rules used when layering
// configuration fragments, theme base records, and provider tables. Every rule
// takes a more-specific value ("self") and a less-specific fallback ("base")
// and returns the combined result with self winning.
//
// There is one rule per container shape rather than one per concrete type:
// optionals, identity-keyed sets, ordered append-only collections, and
// non-empty replacement. Record types compose these field by field in their
// own Merge methods.
package merge

// Optional returns self when present, otherwise base.
func Optional[T any](self, base *T) *T {
	if self != nil {
		return self
	}
	return base
}

// NonEmpty returns self when it is not the zero string, otherwise base.
func NonEmpty(self, base string) string {
	if self != "" {
		return self
	}
	return base
}

// NonEmptySlice returns self when it has at least one element, otherwise
// base. This is the "replace if non-default" rule: emptiness, not presence,
// is the merge trigger.
func NonEmptySlice[T any](self, base []T) []T {
	if len(self) > 0 {
		return self
	}
	return base
}

// IdentitySet unions two identity-keyed collections. Ordering of base is
// preserved for non-colliding keys; a key present in both keeps base's
// position but takes self's value entirely (no field-level merge). Keys only
// in self are appended after base, in self's order.
func IdentitySet[T any](self, base []T, key func(T) string) []T {
	out := make([]T, len(base))
	index := make(map[string]int, len(base))
	for i, item := range base {
		out[i] = item
		index[key(item)] = i
	}

	for _, item := range self {
		if i, ok := index[key(item)]; ok {
			out[i] = item
			continue
		}
		index[key(item)] = len(out)
		out = append(out, item)
	}

	return out
}

// Append extends base with all of self's entries appended after. Duplicate
// keys are allowed; shadowing at lookup time is the caller's concern.
func Append[T any](self, base []T) []T {
	out := make([]T, 0, len(base)+len(self))
	out = append(out, base...)
	out = append(out, self...)

	return out
}
