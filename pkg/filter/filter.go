// Package filter narrows menu items and orders by optional criteria.
//
// Every function is pure: inputs are never modified and the relative order of
// the survivors is preserved. Unset criteria (empty strings, nil pointers)
// are skipped, so applying an empty criteria value returns the input set.
package filter

// Bool returns a pointer for use in criteria structs.
func Bool(b bool) *bool { return &b }

func keep[T any](in []T, pred func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if pred(v) {
			out = append(out, v)
		}
	}
	return out
}
