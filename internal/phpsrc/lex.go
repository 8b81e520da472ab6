package phpsrc

import (
	"bytes"

	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	whitespaceToken = iota
	openTagToken
	closeTagToken
	docCommentToken
	blockCommentToken
	lineCommentToken
	attributeToken
	singleQuotedToken
	doubleQuotedToken
	braceBlockToken
	parenBlockToken
	bracketBlockToken
	ellipsisToken
	doubleColonToken
	semicolonToken
	commaToken
	assignToken
	variableToken
	nameToken
	anyToken
)

var (
	whitespaceMatcher   = parsly.NewToken(whitespaceToken, "Whitespace", matcher.NewWhiteSpace())
	openTagMatcher      = parsly.NewToken(openTagToken, "<?php", matcher.NewFragment("<?php"))
	closeTagMatcher     = parsly.NewToken(closeTagToken, "?>", matcher.NewFragment("?>"))
	docCommentMatcher   = parsly.NewToken(docCommentToken, "DocComment", matcher.NewSeqBlock("/**", "*/"))
	blockCommentMatcher = parsly.NewToken(blockCommentToken, "Comment", matcher.NewSeqBlock("/*", "*/"))
	lineCommentMatcher  = parsly.NewToken(lineCommentToken, "LineComment", &lineCommentMatch{})
	attributeMatcher    = parsly.NewToken(attributeToken, "Attribute", &attributeMatch{})
	singleQuotedMatcher = parsly.NewToken(singleQuotedToken, "SingleQuote", matcher.NewBlock('\'', '\'', '\\'))
	doubleQuotedMatcher = parsly.NewToken(doubleQuotedToken, "DoubleQuote", matcher.NewBlock('"', '"', '\\'))
	braceBlockMatcher   = parsly.NewToken(braceBlockToken, "{...}", &blockMatch{open: '{', close: '}'})
	parenBlockMatcher   = parsly.NewToken(parenBlockToken, "(...)", &blockMatch{open: '(', close: ')'})
	bracketBlockMatcher = parsly.NewToken(bracketBlockToken, "[...]", &blockMatch{open: '[', close: ']'})
	ellipsisMatcher     = parsly.NewToken(ellipsisToken, "...", matcher.NewFragment("..."))
	doubleColonMatcher  = parsly.NewToken(doubleColonToken, "::", matcher.NewFragment("::"))
	semicolonMatcher    = parsly.NewToken(semicolonToken, ";", matcher.NewByte(';'))
	commaMatcher        = parsly.NewToken(commaToken, ",", matcher.NewByte(','))
	assignMatcher       = parsly.NewToken(assignToken, "=", &assignMatch{})
	variableMatcher     = parsly.NewToken(variableToken, "Variable", &variableMatch{})
	nameMatcher         = parsly.NewToken(nameToken, "Name", &nameMatch{})
	anyMatcher          = parsly.NewToken(anyToken, "Any", &anyMatch{})
)

// _commentMatchers come first in every match list
// so that comments never leak into other tokens.
var _commentMatchers = []*parsly.Token{
	docCommentMatcher,
	blockCommentMatcher,
	lineCommentMatcher,
	attributeMatcher,
}

func withComments(tokens ...*parsly.Token) []*parsly.Token {
	all := make([]*parsly.Token, 0, len(_commentMatchers)+len(tokens))
	all = append(all, _commentMatchers...)
	return append(all, tokens...)
}

type anyMatch struct{}

func (*anyMatch) Match(cursor *parsly.Cursor) int {
	if cursor.Pos < cursor.InputSize {
		return 1
	}
	return 0
}

// assignMatch matches a lone '=',
// and not the first byte of '==', '=>', or '==='.
type assignMatch struct{}

func (*assignMatch) Match(cursor *parsly.Cursor) int {
	input, pos := cursor.Input[:cursor.InputSize], cursor.Pos
	if pos >= len(input) || input[pos] != '=' {
		return 0
	}
	if pos+1 < len(input) && (input[pos+1] == '=' || input[pos+1] == '>') {
		return 0
	}
	return 1
}

// nameMatch matches identifiers and qualified names
// such as Foo, Foo\Bar, and \Foo\Bar.
type nameMatch struct{}

func (*nameMatch) Match(cursor *parsly.Cursor) int {
	input, pos := cursor.Input[:cursor.InputSize], cursor.Pos
	if pos >= len(input) {
		return 0
	}

	start := pos
	if input[pos] == '\\' {
		pos++
	}
	if pos >= len(input) || !isNameStart(input[pos]) {
		return 0
	}
	for pos < len(input) {
		switch b := input[pos]; {
		case isNamePart(b):
			pos++
		case b == '\\' && pos+1 < len(input) && isNameStart(input[pos+1]):
			pos++
		default:
			return pos - start
		}
	}
	return pos - start
}

// variableMatch matches $name.
type variableMatch struct{}

func (*variableMatch) Match(cursor *parsly.Cursor) int {
	input, pos := cursor.Input[:cursor.InputSize], cursor.Pos
	if pos+1 >= len(input) || input[pos] != '$' || !isNameStart(input[pos+1]) {
		return 0
	}
	end := pos + 2
	for end < len(input) && isNamePart(input[end]) {
		end++
	}
	return end - pos
}

// lineCommentMatch matches // and # comments up to the end of the line.
// "#[" starts an attribute, not a comment.
type lineCommentMatch struct{}

func (*lineCommentMatch) Match(cursor *parsly.Cursor) int {
	input, pos := cursor.Input[:cursor.InputSize], cursor.Pos
	switch {
	case bytes.HasPrefix(input[pos:], []byte("//")):
	case bytes.HasPrefix(input[pos:], []byte("#")) && !bytes.HasPrefix(input[pos:], []byte("#[")):
	default:
		return 0
	}
	return skipLineComment(input, pos) - pos
}

// attributeMatch matches #[...] attributes.
type attributeMatch struct{}

func (*attributeMatch) Match(cursor *parsly.Cursor) int {
	input, pos := cursor.Input[:cursor.InputSize], cursor.Pos
	if !bytes.HasPrefix(input[pos:], []byte("#[")) {
		return 0
	}
	end, ok := skipBlock(input, pos+1, '[', ']')
	if !ok {
		return 0
	}
	return end - pos
}

// blockMatch matches a balanced block between open and close,
// ignoring delimiters inside strings and comments.
type blockMatch struct{ open, close byte }

func (m *blockMatch) Match(cursor *parsly.Cursor) int {
	input, pos := cursor.Input[:cursor.InputSize], cursor.Pos
	if pos >= len(input) || input[pos] != m.open {
		return 0
	}
	end, ok := skipBlock(input, pos, m.open, m.close)
	if !ok {
		return 0
	}
	return end - pos
}

// skipBlock returns the offset just past the delimiter
// that closes the block opened at input[pos].
func skipBlock(input []byte, pos int, open, close byte) (end int, ok bool) {
	depth := 0
	for pos < len(input) {
		switch b := input[pos]; {
		case b == '\'' || b == '"' || b == '`':
			pos = skipString(input, pos)
			continue
		case b == '/' && pos+1 < len(input) && input[pos+1] == '/':
			pos = skipLineComment(input, pos)
			continue
		case b == '#' && !(pos+1 < len(input) && input[pos+1] == '['):
			pos = skipLineComment(input, pos)
			continue
		case b == '/' && pos+1 < len(input) && input[pos+1] == '*':
			idx := bytes.Index(input[pos+2:], []byte("*/"))
			if idx < 0 {
				return 0, false
			}
			pos += idx + 4
			continue
		case b == open:
			depth++
		case b == close:
			depth--
			if depth == 0 {
				return pos + 1, true
			}
		}
		pos++
	}
	return 0, false
}

// skipString returns the offset just past the string
// that starts with the quote at input[pos].
// An unterminated string runs to the end of the input.
func skipString(input []byte, pos int) int {
	quote := input[pos]
	for pos++; pos < len(input); pos++ {
		switch input[pos] {
		case '\\':
			pos++
		case quote:
			return pos + 1
		}
	}
	return len(input)
}

// skipLineComment returns the offset of the newline
// that ends the comment starting at input[pos],
// or the end of the input.
func skipLineComment(input []byte, pos int) int {
	if idx := bytes.IndexByte(input[pos:], '\n'); idx >= 0 {
		return pos + idx
	}
	return len(input)
}

func isNameStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' || b >= 0x80
}

func isNamePart(b byte) bool {
	return isNameStart(b) || (b >= '0' && b <= '9')
}
