package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/phpgen/internal/iotest"
)

// TestIntegration runs phpgen against each directory in testdata/integration.
//
// Each directory holds an "args" file with one argument per line,
// the input files those arguments name,
// and the expected output in "want.php".
func TestIntegration(t *testing.T) {
	t.Parallel()

	dirs, err := filepath.Glob("testdata/integration/*")
	require.NoError(t, err)
	require.NotEmpty(t, dirs)

	for _, dir := range dirs {
		dir, err := filepath.Abs(dir)
		require.NoError(t, err)

		t.Run(filepath.Base(dir), func(t *testing.T) {
			t.Parallel()

			argsFile, err := os.ReadFile(filepath.Join(dir, "args"))
			require.NoError(t, err)
			want, err := os.ReadFile(filepath.Join(dir, "want.php"))
			require.NoError(t, err)

			var args []string
			for _, arg := range strings.Split(strings.TrimSpace(string(argsFile)), "\n") {
				arg = strings.TrimSpace(arg)
				if !strings.HasPrefix(arg, "-") {
					arg = filepath.Join(dir, arg)
				}
				args = append(args, arg)
			}

			var stdout, stderr bytes.Buffer
			exitCode := (&mainCmd{
				Stdout: &stdout,
				Stderr: &stderr,
			}).Run(args)
			require.Zero(t, exitCode, "stderr:\n%s", stderr.String())
			assert.Equal(t, string(want), stdout.String())
		})
	}
}

// TestIntegration_writeFile writes generated code to a local file.
func TestIntegration_writeFile(t *testing.T) {
	t.Parallel()

	input, err := filepath.Abs("testdata/integration/config/shop.toml")
	require.NoError(t, err)
	want, err := os.ReadFile("testdata/integration/config/want.php")
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "src", "Shop.php")
	exitCode := (&mainCmd{
		Stdout: iotest.Writer(t),
		Stderr: iotest.Writer(t),
	}).Run([]string{"-out", out, input})
	require.Zero(t, exitCode)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}
