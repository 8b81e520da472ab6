package phpsrc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/phpgen/internal/codegen"
	"go.abhg.dev/phpgen/internal/importer"
	"go.abhg.dev/phpgen/internal/phpname"
	"go.uber.org/zap/zaptest"
)

const _userSource = `<?php

declare(strict_types=1);

namespace App\Model;

use App\Contracts\Entity;
use Lib\Base as BaseModel;

/**
 * A user.
 */
abstract class User extends BaseModel implements Entity, \JsonSerializable
{
    const TABLE = 'users';

    /** @var string */
    protected $name = 'anonymous';

    private static $count = 0, $cache;

    public function __construct(string $name, ?Entity &$owner = null, int ...$ids)
    {
        $this->name = $name;

        if ($owner) { // {
            self::$count++;
        }
    }

    abstract protected function load(array $rows = [1, 2]): ?Entity;
}
`

func parse(t *testing.T, name, src string) *File {
	t.Helper()

	p := Parser{Logger: zaptest.NewLogger(t)}
	f, err := p.ParseFile(name, []byte(src))
	require.NoError(t, err)
	return f
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	f := parse(t, "User.php", _userSource)
	require.Len(t, f.Classes, 1)

	c := f.Classes[0]
	assert.Equal(t, codegen.KindClass, c.Kind())
	assert.Equal(t, "User", c.Name())
	assert.Equal(t, `App\Model`, c.NamespaceName())
	assert.Equal(t, `App\Model\User`, c.QualifiedName())
	assert.Equal(t, "/**\n * A user.\n */", c.DocComment())
	assert.True(t, c.IsAbstract())
	assert.False(t, c.IsFinal())
	assert.Equal(t, `Lib\Base`, c.ParentName())
	assert.Nil(t, c.Parent(), "not indexed")
	assert.Equal(t, []string{`App\Contracts\Entity`, "JsonSerializable"}, c.InterfaceNames())
	assert.Equal(t, []phpname.Use{
		{Name: `App\Contracts\Entity`},
		{Name: `Lib\Base`, Alias: "BaseModel"},
	}, c.Uses())

	assert.Equal(t, []*importer.ConstantInfo{
		{Name: "TABLE", DeclaringClass: `App\Model\User`, Value: "'users'"},
	}, c.Constants())

	assert.Equal(t, []*importer.PropertyInfo{
		{
			Name:           "name",
			DeclaringClass: `App\Model\User`,
			Visibility:     codegen.Protected,
			Default:        "'anonymous'",
			DocComment:     "/** @var string */",
		},
		{
			Name:           "count",
			DeclaringClass: `App\Model\User`,
			Visibility:     codegen.Private,
			Static:         true,
			Default:        "0",
		},
		{
			Name:           "cache",
			DeclaringClass: `App\Model\User`,
			Visibility:     codegen.Private,
			Static:         true,
		},
	}, c.Properties())

	methods := c.Methods()
	require.Len(t, methods, 2)

	ctor := methods[0]
	assert.Equal(t, "__construct", ctor.Name)
	assert.Equal(t, codegen.Public, ctor.Visibility)
	assert.Equal(t, []*importer.ParameterInfo{
		{Name: "name", Type: "string"},
		{Name: "owner", Type: `?App\Contracts\Entity`, ByRef: true, Default: "null"},
		{Name: "ids", Type: "int", Variadic: true},
	}, ctor.Parameters)
	assert.Equal(t, "$this->name = $name;\n\nif ($owner) { // {\n    self::$count++;\n}", ctor.Body)

	load := methods[1]
	assert.Equal(t, "load", load.Name)
	assert.True(t, load.Abstract)
	assert.Equal(t, codegen.Protected, load.Visibility)
	assert.Equal(t, `?App\Contracts\Entity`, load.ReturnType)
	assert.Equal(t, []*importer.ParameterInfo{
		{Name: "rows", Type: "array", Default: "[1, 2]"},
	}, load.Parameters)
	assert.Empty(t, load.Body)
}

func TestParseFile_roundTrip(t *testing.T) {
	t.Parallel()

	f := parse(t, "User.php", `<?php
namespace App\Model;

use App\Contracts\Entity;
use Lib\Base as BaseModel;

/**
 * A user.
 */
abstract class User extends BaseModel implements Entity, \JsonSerializable
{
    const TABLE = 'users';

    protected $name = 'anonymous';

    private static $count = 0, $cache;

    public function __construct(string $name, ?Entity &$owner = null, int ...$ids)
    {
        $this->name = $name;

        if ($owner) {
            self::$count++;
        }
    }

    abstract protected function load(array $rows = [1, 2]): ?Entity;
}
`)
	require.Len(t, f.Classes, 1)

	im := importer.Importer{Logger: zaptest.NewLogger(t)}
	d, err := im.Import(f.Classes[0], codegen.KindClass)
	require.NoError(t, err)

	want := `namespace App\Model;

use App\Contracts\Entity;
use Lib\Base as BaseModel;

/**
 * A user.
 */
abstract class User extends BaseModel implements Entity, \JsonSerializable
{
    const TABLE = 'users';

    protected $name = 'anonymous';

    private static $count = 0;

    private static $cache = null;

    public function __construct(string $name, ?Entity &$owner = null, int ...$ids)
    {
        $this->name = $name;

        if ($owner) {
            self::$count++;
        }
    }

    protected abstract function load(array $rows = [1, 2]): ?Entity;
}
`
	assert.Equal(t, want, d.Generate())
}

func TestParseFile_kinds(t *testing.T) {
	t.Parallel()

	f := parse(t, "kinds.php", `<?php
interface Shape extends Countable, Stringable
{
    public function area(): float;
}

trait Named
{
    public $name;
}

final class Square
{
}

enum Suit
{
    case Hearts;
}
`)
	require.Len(t, f.Classes, 3)

	shape := f.Classes[0]
	assert.Equal(t, codegen.KindInterface, shape.Kind())
	assert.Empty(t, shape.ParentName())
	assert.Equal(t, []string{"Countable", "Stringable"}, shape.InterfaceNames())
	require.Len(t, shape.Methods(), 1)
	assert.Equal(t, "float", shape.Methods()[0].ReturnType)

	assert.Equal(t, codegen.KindTrait, f.Classes[1].Kind())
	assert.Equal(t, "Named", f.Classes[1].Name())

	assert.Equal(t, codegen.KindClass, f.Classes[2].Kind())
	assert.True(t, f.Classes[2].IsFinal())
}

func TestParseFile_bracedNamespaces(t *testing.T) {
	t.Parallel()

	f := parse(t, "ns.php", `<?php
namespace A {
    class X {}
}

namespace B {
    use A\X;

    class Y extends X {}
}
`)
	require.Len(t, f.Classes, 2)
	assert.Equal(t, `A\X`, f.Classes[0].QualifiedName())
	assert.Equal(t, `B\Y`, f.Classes[1].QualifiedName())
	assert.Equal(t, `A\X`, f.Classes[1].ParentName())
}

func TestParseFile_ignoresNonDeclarations(t *testing.T) {
	t.Parallel()

	f := parse(t, "misc.php", `<?php
$name = Foo::class;
$obj = new class {
    public function run() {}
};
$text = 'class Fake {}';
// class Commented {}
/* interface Hidden {} */
$call = $obj->class;

function helper()
{
    return function () use ($name) {
        return $name;
    };
}

class Real
{
    use SomeTrait;

    public function ok() {}
}
`)
	require.Len(t, f.Classes, 1)
	assert.Equal(t, "Real", f.Classes[0].Name())
	assert.Len(t, f.Classes[0].Methods(), 1)
}

func TestParseFile_errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		give string
		want string
	}{
		{
			desc: "missing name",
			give: "<?php\nclass {\n}\n",
			want: "bad.php:2: expected name after class",
		},
		{
			desc: "missing body",
			give: "<?php\n\nclass Foo extends Bar\n",
			want: "bad.php:3: class Foo has no body or an unterminated body",
		},
		{
			desc: "unterminated body",
			give: "<?php\ninterface Foo {\n",
			want: "bad.php:2: interface Foo has no body or an unterminated body",
		},
		{
			desc: "bad namespace",
			give: "<?php\nnamespace Foo\n",
			want: `bad.php:2: expected ';' or '{' after namespace "Foo"`,
		},
		{
			desc: "missing parameters",
			give: "<?php\nclass Foo {\n  function bar;\n}\n",
			want: "bad.php:3: expected parameters for Foo::bar",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			p := Parser{Logger: zaptest.NewLogger(t)}
			_, err := p.ParseFile("bad.php", []byte(tt.give))
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestScopeResolve(t *testing.T) {
	t.Parallel()

	sc := &scope{
		namespace: `App\Model`,
		uses: []phpname.Use{
			{Name: `Lib\Base`},
			{Name: `Vendor\Pkg`, Alias: "P"},
		},
	}

	tests := []struct {
		give string
		want string
	}{
		{give: "Local", want: `App\Model\Local`},
		{give: `Sub\Local`, want: `App\Model\Sub\Local`},
		{give: `\Global`, want: "Global"},
		{give: "Base", want: `Lib\Base`},
		{give: "base", want: `Lib\Base`},
		{give: `P\Thing`, want: `Vendor\Pkg\Thing`},
		{give: `namespace\Rel`, want: `App\Model\Rel`},
		{give: "string", want: "string"},
		{give: "self", want: "self"},
		{give: "", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.give, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, sc.resolve(tt.give))
		})
	}
}

func TestScopeResolveType(t *testing.T) {
	t.Parallel()

	sc := &scope{
		namespace: "App",
		uses:      []phpname.Use{{Name: `Lib\Base`}},
	}

	tests := []struct {
		give string
		want string
	}{
		{give: "", want: ""},
		{give: "int", want: "int"},
		{give: "?Base", want: `?Lib\Base`},
		{give: "Base|null", want: `Lib\Base|null`},
		{give: "(Base&Local)|false", want: `(Lib\Base&App\Local)|false`},
		{give: "? Base", want: `?Lib\Base`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.give, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, sc.resolveType(tt.give))
		})
	}
}
