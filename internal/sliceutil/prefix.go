package sliceutil

// CommonPrefix returns the longest prefix shared by both slices.
// The result aliases a.
func CommonPrefix[T comparable](a, b []T) []T {
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	return a[:i]
}
