package sliceutil

// Filter returns a new slice holding the items
// for which keep reports true, in their original order.
func Filter[T any](items []T, keep func(T) bool) []T {
	var out []T
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// Difference returns the items of a that are not in b,
// in their original order.
func Difference[T comparable](a, b []T) []T {
	if len(b) == 0 {
		return Filter(a, func(T) bool { return true })
	}
	seen := make(map[T]struct{}, len(b))
	for _, v := range b {
		seen[v] = struct{}{}
	}
	return Filter(a, func(v T) bool {
		_, ok := seen[v]
		return !ok
	})
}
