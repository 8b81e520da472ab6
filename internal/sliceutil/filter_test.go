package sliceutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	t.Parallel()

	isEven := func(i int) bool { return i%2 == 0 }

	tests := []struct {
		desc string
		give []int
		want []int
	}{
		{desc: "empty"},
		{desc: "none", give: []int{1, 3, 5}},
		{desc: "all", give: []int{2, 4}, want: []int{2, 4}},
		{desc: "some", give: []int{1, 2, 3, 4, 5, 6}, want: []int{2, 4, 6}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Filter(tt.give, isEven))
		})
	}
}

func TestFilter_doesNotModifyInput(t *testing.T) {
	t.Parallel()

	give := []int{1, 2, 3}
	Filter(give, func(i int) bool { return i > 1 })
	assert.Equal(t, []int{1, 2, 3}, give)
}

func TestDifference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		a, b []string
		want []string
	}{
		{desc: "empty"},
		{desc: "nothing removed", a: []string{"x", "y"}, want: []string{"x", "y"}},
		{desc: "all removed", a: []string{"x", "y"}, b: []string{"y", "x"}},
		{
			desc: "order kept",
			a:    []string{"Countable", "Iterator", "Traversable"},
			b:    []string{"Traversable"},
			want: []string{"Countable", "Iterator"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Difference(tt.a, tt.b))
		})
	}
}
