package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/phpgen/internal/docblock"
	"go.abhg.dev/phpgen/internal/phpvalue"
)

func sampleDecl(t *testing.T, kind Kind) *Declaration {
	t.Helper()

	d := New(kind).SetName("SampleDecl")
	require.NoError(t, d.AddProperties("foo", "bar"))
	require.NoError(t, d.AddMethods("baz"))
	return d
}

func TestGenerate_sample(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		want string
	}{
		{
			kind: KindClass,
			want: "class SampleDecl\n" +
				"{\n" +
				"    public $foo = null;\n" +
				"\n" +
				"    public $bar = null;\n" +
				"\n" +
				"    public function baz()\n" +
				"    {\n" +
				"    }\n" +
				"}\n",
		},
		{
			kind: KindTrait,
			want: "trait SampleDecl\n" +
				"{\n" +
				"    public $foo = null;\n" +
				"\n" +
				"    public $bar = null;\n" +
				"\n" +
				"    public function baz()\n" +
				"    {\n" +
				"    }\n" +
				"}\n",
		},
		{
			// Properties are inert on interfaces, and methods have no body.
			kind: KindInterface,
			want: "interface SampleDecl\n" +
				"{\n" +
				"    public function baz();\n" +
				"}\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.kind.String(), func(t *testing.T) {
			t.Parallel()

			d := sampleDecl(t, tt.kind)
			got := d.Generate()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, d.Generate(), "generate must be idempotent")
		})
	}
}

func TestGenerate_empty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "class Foo\n{\n}\n", NewClass().SetName("Foo").Generate())
}

func TestGenerate_traitNamespaced(t *testing.T) {
	t.Parallel()

	d := NewTrait().SetName(`My\Namespaced\FunClass`)
	assert.Equal(t, `My\Namespaced`, d.NamespaceName())
	assert.Equal(t,
		"namespace My\\Namespaced;\n"+
			"\n"+
			"trait FunClass\n"+
			"{\n"+
			"}\n",
		d.Generate())
}

func TestGenerate_traitIgnoresStaleValues(t *testing.T) {
	t.Parallel()

	d := NewClass().
		SetName("FunClass").
		SetExtendedClass("Base").
		AddImplementedInterface("Countable").
		SetFinal(true)
	d.SetKind(KindTrait)

	assert.Equal(t, "trait FunClass\n{\n}\n", d.Generate())
}

func TestGenerate_header(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		give *Declaration
		want string
	}{
		{
			desc: "abstract",
			give: NewClass().SetName("A").SetAbstract(true),
			want: "abstract class A\n",
		},
		{
			desc: "final",
			give: NewClass().SetName("A").SetFinal(true),
			want: "final class A\n",
		},
		{
			desc: "other flags do not render",
			give: NewClass().SetName("A").SetFlags(FlagObjectType | FlagImplementsInterfaces),
			want: "class A\n",
		},
		{
			desc: "global namespace",
			give: NewClass().SetName("A").SetExtendedClass("Base"),
			want: "class A extends Base\n",
		},
		{
			desc: "extends same namespace",
			give: NewClass().SetName(`Foo\A`).SetExtendedClass(`Foo\Base`),
			want: "class A extends Base\n",
		},
		{
			desc: "extends imported",
			give: NewClass().
				SetName(`Foo\A`).
				AddUse(`Bar\Base`, "").
				SetExtendedClass(`Bar\Base`),
			want: "class A extends Base\n",
		},
		{
			desc: "extends aliased",
			give: NewClass().
				SetName(`Foo\A`).
				AddUse(`Bar\Base`, "BarBase").
				SetExtendedClass(`Bar\Base`),
			want: "class A extends BarBase\n",
		},
		{
			desc: "implements",
			give: NewClass().
				SetName(`Foo\A`).
				SetImplementedInterfaces([]string{"Countable", `Foo\Thing`}),
			want: "class A implements \\Countable, Thing\n",
		},
		{
			desc: "everything",
			give: NewClass().
				SetName("A").
				SetAbstract(true).
				SetExtendedClass("B").
				AddImplementedInterface("C"),
			want: "abstract class A extends B implements C\n",
		},
		{
			desc: "interface extends",
			give: NewInterface().
				SetName("A").
				AddImplementedInterface("B").
				AddImplementedInterface("C"),
			want: "interface A extends B, C\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			assert.Contains(t, tt.give.Generate(), tt.want)
		})
	}
}

func TestGenerate_full(t *testing.T) {
	t.Parallel()

	d := NewClass().
		SetName(`App\Model\User`).
		SetDocBlock(docblock.New("A user of the system.").AddTag("since", "1.0")).
		AddUse(`App\Contract\Entity`, "").
		AddUse(`Psr\Log\LoggerInterface`, "Logger").
		SetExtendedClass(`App\Model\Base`).
		AddImplementedInterface(`App\Contract\Entity`).
		SetFinal(true)

	require.NoError(t, d.AddConstant(NewConstant("TABLE", phpvalue.MustNew("users"))))

	require.NoError(t, d.AddProperties(
		NewProperty("name").
			SetVisibility(Protected).
			SetDefaultValue(phpvalue.MustNew("")),
		NewProperty("count").
			SetStatic(true).
			SetVisibility(Private).
			SetDefaultValue(phpvalue.MustNew(0)),
	))

	ctor := NewMethod("__construct").
		SetDocBlock(docblock.New("Builds a user.")).
		AddParameter(NewParameter("name").SetType("string")).
		AddParameter(NewParameter("logger").
			SetType(`?Psr\Log\LoggerInterface`).
			SetDefaultValue(phpvalue.Null)).
		SetBody("$this->name = $name;\n\nself::$count++;\n")
	tags := NewMethod("tags").
		SetVisibility(Public).
		SetFinal(true).
		AddParameter(NewParameter("tags").SetType("string").SetVariadic(true)).
		SetReturnType("array").
		SetBody("return $tags;")
	find := NewMethod("find").
		SetStatic(true).
		AddParameter(NewParameter("id").SetType("int")).
		AddParameter(NewParameter("out").SetType("array").SetPassedByReference(true)).
		SetReturnType(`?App\Model\User`).
		SetBody("return null;")
	require.NoError(t, d.AddMethods(ctor, tags, find))

	want := `namespace App\Model;

use App\Contract\Entity;
use Psr\Log\LoggerInterface as Logger;

/**
 * A user of the system.
 *
 * @since 1.0
 */
final class User extends Base implements Entity
{
    const TABLE = 'users';

    protected $name = '';

    private static $count = 0;

    /**
     * Builds a user.
     */
    public function __construct(string $name, ?Logger $logger = null)
    {
        $this->name = $name;

        self::$count++;
    }

    public final function tags(string ...$tags): array
    {
        return $tags;
    }

    public static function find(int $id, array &$out): ?User
    {
        return null;
    }
}
`
	assert.Equal(t, want, d.Generate())
}

func TestGenerate_abstractMethod(t *testing.T) {
	t.Parallel()

	d := NewClass().SetName("A").SetAbstract(true)
	require.NoError(t, d.AddMethod(NewMethod("run").
		SetVisibility(Protected).
		SetAbstract(true).
		SetBody("ignored();")))

	assert.Equal(t,
		"abstract class A\n"+
			"{\n"+
			"    protected abstract function run();\n"+
			"}\n",
		d.Generate())
}

func TestGenerate_traitDropsMethodModifiers(t *testing.T) {
	t.Parallel()

	d := NewTrait().SetName("T")
	require.NoError(t, d.AddMethod(NewMethod("run").
		SetAbstract(true).
		SetFinal(true).
		SetBody("return 1;")))

	assert.Equal(t,
		"trait T\n"+
			"{\n"+
			"    public function run()\n"+
			"    {\n"+
			"        return 1;\n"+
			"    }\n"+
			"}\n",
		d.Generate())
}

func TestGenerate_interfaceConstants(t *testing.T) {
	t.Parallel()

	d := NewInterface().SetName("HasVersion")
	require.NoError(t, d.AddConstant(NewConstant("VERSION", phpvalue.MustNew(2))))
	require.NoError(t, d.AddMethod(NewMethod("version").SetReturnType("INT")))

	assert.Equal(t,
		"interface HasVersion\n"+
			"{\n"+
			"    const VERSION = 2;\n"+
			"\n"+
			"    public function version(): int;\n"+
			"}\n",
		d.Generate())
}

func TestBodyLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		give string
		want []string
	}{
		{desc: "empty", give: "", want: []string{}},
		{desc: "blank", give: "\n  \n", want: []string{}},
		{desc: "single", give: "return;", want: []string{"return;"}},
		{
			desc: "trimmed edges",
			give: "\n\nfoo();\n\n",
			want: []string{"foo();"},
		},
		{
			desc: "inner lines verbatim",
			give: "a();  \n   \n\nb();\t",
			want: []string{"a();  ", "   ", "", "b();\t"},
		},
		{
			desc: "crlf",
			give: "a();\r\nb();\r\n",
			want: []string{"a();", "b();"},
		},
		{
			desc: "indentation kept",
			give: "if ($x) {\n    y();\n}",
			want: []string{"if ($x) {", "    y();", "}"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, bodyLines(tt.give))
		})
	}
}
