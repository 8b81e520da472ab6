package phpsrc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/phpgen/internal/codegen"
	"go.abhg.dev/phpgen/internal/importer"
	"go.abhg.dev/phpgen/internal/sliceutil"
	"go.uber.org/zap/zaptest"
)

const _libSource = `<?php
namespace Lib;

interface Named
{
    const PREFIX = 'n';

    public function getName(): string;
}

abstract class Base implements Named
{
    public $id;
    private $secret = 'x';

    public function getName(): string
    {
        return 'base';
    }

    public function save()
    {
    }
}
`

const _appSource = `<?php
namespace App;

use Lib\Base;

class Post extends Base implements \Countable
{
    public $title = '';

    public function GETNAME(): string
    {
        return $this->title;
    }

    public function count(): int
    {
        return 1;
    }
}
`

func newTestIndex(t *testing.T) *Index {
	t.Helper()

	return NewIndex(
		parse(t, "Lib.php", _libSource),
		parse(t, "App.php", _appSource),
	)
}

func TestIndex_Lookup(t *testing.T) {
	t.Parallel()

	idx := newTestIndex(t)

	tests := []struct {
		give string
		want string // qualified name or empty if not found
	}{
		{give: `Lib\Base`, want: `Lib\Base`},
		{give: `\lib\base`, want: `Lib\Base`},
		{give: `App\Post`, want: `App\Post`},
		{give: "Post"},
		{give: `Lib\Missing`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.give, func(t *testing.T) {
			t.Parallel()

			c := idx.Lookup(tt.give)
			if tt.want == "" {
				assert.Nil(t, c)
				return
			}
			require.NotNil(t, c)
			assert.Equal(t, tt.want, c.QualifiedName())
		})
	}
}

func TestIndex_Find(t *testing.T) {
	t.Parallel()

	idx := newTestIndex(t)

	assert.Len(t, idx.Find("post"), 1)
	assert.Len(t, idx.Find(`App\Post`), 1)
	assert.Empty(t, idx.Find(`Lib\Post`))
	assert.Empty(t, idx.Find("Nothing"))
	assert.Len(t, idx.Classes(), 3)
}

func TestClass_inheritance(t *testing.T) {
	t.Parallel()

	idx := newTestIndex(t)
	post := idx.Lookup(`App\Post`)
	require.NotNil(t, post)

	parent := post.Parent()
	require.NotNil(t, parent)
	assert.Equal(t, "Base", parent.Name())

	assert.Equal(t, []string{"Countable", `Lib\Named`}, post.InterfaceNames())

	constants := post.Constants()
	require.Len(t, constants, 1)
	assert.Equal(t, "PREFIX", constants[0].Name)
	assert.Equal(t, `Lib\Named`, constants[0].DeclaringClass)

	assert.Equal(t, []string{"title", "id"},
		sliceutil.Transform(post.Properties(), func(p *importer.PropertyInfo) string { return p.Name }),
		"private properties of the parent are hidden")

	assert.Equal(t, []string{"GETNAME", "count", "save"},
		sliceutil.Transform(post.Methods(), func(m *importer.MethodInfo) string { return m.Name }),
		"method names are case-insensitive")
}

func TestClass_inheritanceCycle(t *testing.T) {
	t.Parallel()

	idx := NewIndex(parse(t, "cycle.php", `<?php
class A extends B
{
    public $a;
}

class B extends A
{
    public $b;
}
`))
	a := idx.Lookup("A")
	require.NotNil(t, a)
	assert.Len(t, a.Properties(), 2)
	assert.Empty(t, a.InterfaceNames())
}

func TestClass_importOwnMembers(t *testing.T) {
	t.Parallel()

	idx := newTestIndex(t)

	im := importer.Importer{Logger: zaptest.NewLogger(t)}
	d, err := im.Import(idx.Lookup(`App\Post`), codegen.KindClass)
	require.NoError(t, err)

	want := `namespace App;

use Lib\Base;

class Post extends Base implements \Countable
{
    public $title = '';

    public function GETNAME(): string
    {
        return $this->title;
    }

    public function count(): int
    {
        return 1;
    }
}
`
	assert.Equal(t, want, d.Generate())
}

func TestClass_importAsInterface(t *testing.T) {
	t.Parallel()

	idx := newTestIndex(t)

	im := importer.Importer{Inherited: true, Logger: zaptest.NewLogger(t)}
	d, err := im.Import(idx.Lookup(`Lib\Base`), codegen.KindInterface)
	require.NoError(t, err)
	assert.False(t, d.HasConstant("PREFIX"), "interfaces keep only their own members")

	want := `namespace Lib;

interface Base extends Named
{
    public function getName(): string;

    public function save();
}
`
	assert.Equal(t, want, d.Generate())
}

func TestDedent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		give string
		want string
	}{
		{desc: "empty", give: "", want: ""},
		{desc: "blank", give: "\n    \n  ", want: ""},
		{desc: "single line", give: " return 1; ", want: "return 1;"},
		{
			desc: "nested",
			give: "\n        if ($x) {\n            return;\n        }\n    ",
			want: "if ($x) {\n    return;\n}",
		},
		{
			desc: "inner blank line",
			give: "\n\t\t$a = 1;\n\n\t\t$b = 2;\n\t",
			want: "$a = 1;\n\n$b = 2;",
		},
		{
			desc: "interior whitespace kept",
			give: "\n    a();  \n    \n      \n    b();\n",
			want: "a();  \n\n  \nb();",
		},
		{
			desc: "uneven",
			give: "\n      a();\n    b();\n",
			want: "  a();\nb();",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, dedent(tt.give))
		})
	}
}
