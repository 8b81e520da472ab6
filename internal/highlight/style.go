package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// PlainStyle is a minimal syntax highlighting style for Chroma.
// It leaves most text as-is, fades comments,
// and makes keywords bold.
var PlainStyle = chroma.MustNewStyle("plain", map[chroma.TokenType]string{
	chroma.Comment:    "#666666",
	chroma.Keyword:    "bold",
	chroma.PreWrapper: "bg:#eeeeee",
	chroma.Background: "bg:#eeeeee",
})

func init() {
	styles.Register(PlainStyle)
}

// LookupStyle finds a registered Chroma style by name.
// It reports false if there's no such style.
func LookupStyle(name string) (*chroma.Style, bool) {
	if s, ok := styles.Registry[name]; ok {
		return s, true
	}
	s, ok := styles.Registry[strings.ToLower(name)]
	return s, ok
}

// StyleNames lists the names of all registered styles.
func StyleNames() []string {
	return styles.Names()
}
