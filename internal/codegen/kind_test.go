package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give string
		want Kind
	}{
		{"", KindClass},
		{"class", KindClass},
		{"Trait", KindTrait},
		{" interface ", KindInterface},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.give, func(t *testing.T) {
			t.Parallel()

			got, err := ParseKind(tt.give)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			var k Kind
			require.NoError(t, k.UnmarshalText([]byte(tt.give)))
			assert.Equal(t, tt.want, k)
		})
	}

	_, err := ParseKind("enum")
	var argErr *InvalidArgumentError
	require.ErrorAs(t, err, &argErr)
}

func TestKind_capabilities(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind

		keyword         string
		canExtend       bool
		canImplement    bool
		hasModifiers    bool
		hasProperties   bool
		hasMethodBodies bool
	}{
		{KindClass, "class", true, true, true, true, true},
		{KindTrait, "trait", false, false, false, true, true},
		{KindInterface, "interface", false, true, false, false, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.keyword, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.keyword, tt.kind.Keyword())
			assert.Equal(t, tt.canExtend, tt.kind.CanExtend())
			assert.Equal(t, tt.canImplement, tt.kind.CanImplement())
			assert.Equal(t, tt.hasModifiers, tt.kind.HasModifiers())
			assert.Equal(t, tt.hasProperties, tt.kind.HasProperties())
			assert.Equal(t, tt.hasMethodBodies, tt.kind.HasMethodBodies())

			text, err := tt.kind.MarshalText()
			require.NoError(t, err)
			assert.Equal(t, tt.keyword, string(text))
		})
	}
}

func TestFlag_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give Flag
		want string
	}{
		{0, "0"},
		{FlagAbstract, "abstract"},
		{FlagFinal | FlagObjectType, "final|object"},
		{FlagAbstract | 0x100, "abstract|0x100"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.give.String())
		})
	}
}

func TestParseVisibility(t *testing.T) {
	t.Parallel()

	for _, v := range []Visibility{Public, Protected, Private} {
		got, err := ParseVisibility(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}

	got, err := ParseVisibility("")
	require.NoError(t, err)
	assert.Equal(t, Public, got)

	_, err = ParseVisibility("internal")
	assert.Error(t, err)
}
