package sliceutil

// Transform maps f over a slice,
// such as flag values into the generator's own types.
// An empty input yields nil.
func Transform[From, To any](from []From, f func(From) To) []To {
	if len(from) == 0 {
		return nil
	}
	to := make([]To, len(from))
	for i, v := range from {
		to[i] = f(v)
	}
	return to
}
