package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/phpgen/internal/codegen"
	"go.abhg.dev/phpgen/internal/iotest"
)

func kindOf(k codegen.Kind) *codegen.Kind { return &k }

func TestCLIParser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		give []string
		want params
	}{
		{
			desc: "minimal",
			give: []string{"User.yaml"},
			want: params{
				Output:    "-",
				Highlight: highlightNone,
				Style:     "plain",
				Inputs:    []string{"User.yaml"},
			},
		},
		{
			desc: "many arguments",
			give: []string{
				"-out", "mem://localhost/out.php",
				"-kind", "trait",
				"-inherited",
				"-decl", "Post",
				`-decl=\App\Comment`,
				"-use", `Lib\Base as B`,
				"-use", `Lib\Helper`,
				"-highlight=HTML",
				"-style", "monokai",
				"-debug=debug.log",
				"decls.yaml",
				"src/Post.php",
			},
			want: params{
				Debug:     "debug.log",
				Output:    "mem://localhost/out.php",
				Kind:      kindOf(codegen.KindTrait),
				Inherited: true,
				Decls:     []declName{"Post", `App\Comment`},
				Uses: []useValue{
					{Name: `Lib\Base`, Alias: "B"},
					{Name: `Lib\Helper`},
				},
				Highlight: highlightHTML,
				Style:     "monokai",
				Inputs:    []string{"decls.yaml", "src/Post.php"},
			},
		},
		{
			desc: "debug without file",
			give: []string{"-debug", "-kind=interface", "a.php"},
			want: params{
				Debug:     "-",
				Output:    "-",
				Kind:      kindOf(codegen.KindInterface),
				Highlight: highlightNone,
				Style:     "plain",
				Inputs:    []string{"a.php"},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			got, err := (&cliParser{
				Stdout: iotest.Writer(t),
				Stderr: iotest.Writer(t),
			}).Parse(tt.give)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestCLIParser_configFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "phpgen.conf")
	require.NoError(t, os.WriteFile(path, []byte(
		"# defaults for this project\n"+
			"kind trait\n"+
			"use Lib\\Base as B\n"+
			"highlight terminal\n"+
			"out mem://localhost/from-config.php\n",
	), 0o644))

	got, err := (&cliParser{
		Stdout: iotest.Writer(t),
		Stderr: iotest.Writer(t),
	}).Parse([]string{"-config", path, "-out", "-", "a.yaml"})
	require.NoError(t, err)

	assert.Equal(t, kindOf(codegen.KindTrait), got.Kind)
	assert.Equal(t, []useValue{{Name: `Lib\Base`, Alias: "B"}}, got.Uses)
	assert.Equal(t, highlightTerminal, got.Highlight)
	assert.Equal(t, "-", got.Output, "command line wins over the config file")
}

// Environment variables are process-wide
// so this test must not run in parallel.
func TestCLIParser_env(t *testing.T) {
	t.Setenv("PHPGEN_KIND", "interface")
	t.Setenv("PHPGEN_INHERITED", "true")
	t.Setenv("PHPGEN_STYLE", "plain")

	got, err := (&cliParser{
		Stdout: iotest.Writer(t),
		Stderr: iotest.Writer(t),
	}).Parse([]string{"a.php"})
	require.NoError(t, err)

	assert.Equal(t, kindOf(codegen.KindInterface), got.Kind)
	assert.True(t, got.Inherited)
}

func TestCLIParser_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		give []string
		want string // expected messages
	}{
		{
			desc: "no inputs",
			want: "Please provide at least one input file",
		},
		{
			desc: "unrecognized",
			give: []string{"-foo=bar", "a.yaml"},
			want: "flag provided but not defined: -foo",
		},
		{
			desc: "bad kind",
			give: []string{"-kind=widget", "a.yaml"},
			want: `invalid value "widget" for flag -kind`,
		},
		{
			desc: "bad highlight",
			give: []string{"-highlight=pdf", "a.yaml"},
			want: `unknown highlight mode "pdf"`,
		},
		{
			desc: "bad style",
			give: []string{"-style=no-such-style", "a.yaml"},
			want: `Unknown style "no-such-style"`,
		},
		{
			desc: "empty use",
			give: []string{"-use= ", "a.yaml"},
			want: "expected form 'Name' or 'Name as Alias'",
		},
		{
			desc: "empty decl",
			give: []string{`-decl=\`, "a.yaml"},
			want: "declaration name must not be empty",
		},
		{
			desc: "missing config file",
			give: []string{"-config=/does/not/exist.conf", "a.yaml"},
			want: "exist.conf",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			var stderr bytes.Buffer
			_, err := (&cliParser{
				Stdout: iotest.Writer(t),
				Stderr: &stderr,
			}).Parse(tt.give)
			require.Error(t, err)
			assert.Contains(t, stderr.String(), tt.want)
		})
	}
}

func TestCLIParser_helpTopic(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	_, err := (&cliParser{
		Stdout: iotest.Writer(t),
		Stderr: &stderr,
	}).Parse([]string{"-h", "declarations"})
	assert.ErrorIs(t, err, errHelp)
	assert.Contains(t, stderr.String(), "Declaration files describe declarations")
}

func TestCLIParser_version(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	_, err := (&cliParser{
		Stdout: &stdout,
		Stderr: iotest.Writer(t),
	}).Parse([]string{"-version"})
	assert.ErrorIs(t, err, errHelp)
	assert.Equal(t, "phpgen "+_version+"\n", stdout.String())
}
