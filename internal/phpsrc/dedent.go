package phpsrc

import (
	"strings"

	"go.abhg.dev/phpgen/internal/sliceutil"
)

// dedent removes the indentation shared by all non-blank lines,
// along with leading and trailing blank lines
// and the whitespace before the closing brace.
// Other lines are kept as written.
func dedent(s string) string {
	lines := strings.Split(s, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}

	var indent []byte
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lead := []byte(line[:len(line)-len(strings.TrimLeft(line, " \t"))])
		if i == 0 {
			indent = lead
		} else {
			indent = sliceutil.CommonPrefix(indent, lead)
		}
	}

	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, string(indent))
	}
	return strings.TrimRight(strings.Join(lines, "\n"), " \t\r")
}
