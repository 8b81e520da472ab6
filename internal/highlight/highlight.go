package highlight

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"sync"

	"braces.dev/errtrace"
	chroma "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
)

// Highlighter highlights PHP code.
type Highlighter struct {
	// Style used for syntax highlighting of code.
	// Defaults to PlainStyle.
	Style *chroma.Style

	// UseClasses specifies whether the HTML output
	// uses inline 'style' attributes for highlighting,
	// or classes, assuming use of an appropriate style sheet.
	UseClasses bool

	// Lexer splits code into tokens.
	// Defaults to PHPLexer.
	Lexer Lexer

	once      sync.Once
	style     *chroma.Style
	lexer     Lexer
	formatter *chromahtml.Formatter
}

func (h *Highlighter) init() {
	h.once.Do(func() {
		h.style = h.Style
		if h.style == nil {
			h.style = PlainStyle
		}
		h.lexer = h.Lexer
		if h.lexer == nil {
			h.lexer = PHPLexer
		}
		h.formatter = chromahtml.New(
			chromahtml.PreventSurroundingPre(true),
			chromahtml.WithClasses(h.UseClasses),
		)
	})
}

// Spans splits source code into highlighted spans.
// If the code can't be tokenized,
// the spans report the failure and hold the code as plain text.
func (h *Highlighter) Spans(src []byte) []Span {
	h.init()

	tokens, err := h.lexer.Lex(src)
	if err != nil {
		return []Span{
			&ErrorSpan{Msg: "Could not highlight code", Err: err},
			&TextSpan{Text: src},
		}
	}
	return []Span{&TokenSpan{Tokens: tokens}}
}

// WriteCSS writes the style classes for this highlighter to writer.
// If this highlighter is not using classes, WriteCSS is a no-op.
func (h *Highlighter) WriteCSS(w io.Writer) error {
	h.init()

	if !h.UseClasses {
		return nil
	}

	return errtrace.Wrap(h.formatter.WriteCSS(w, h.style))
}

// HTML renders the given code block into HTML.
func (h *Highlighter) HTML(code *Code) string {
	h.init()

	if code == nil {
		return ""
	}

	r := codeRenderer{fmt: h.formatter, sty: h.style}
	if h.UseClasses {
		fmt.Fprintf(&r, "<pre class=%q>", chroma.StandardTypes[chroma.PreWrapper])
	} else {
		style := chromahtml.StyleEntryToCSS(h.style.Get(chroma.PreWrapper))
		fmt.Fprintf(&r, "<pre style=%q>", style)
	}
	r.RenderSpans(code.Spans)
	fmt.Fprint(&r, "</pre>")
	return r.String()
}

// Terminal writes source code to w
// colored with ANSI escape sequences for 256-color terminals.
func (h *Highlighter) Terminal(w io.Writer, src []byte) error {
	h.init()

	tokens, err := h.lexer.Lex(src)
	if err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(formatters.TTY256.Format(w, h.style, chroma.Literator(tokens...)))
}

type codeRenderer struct {
	bytes.Buffer

	fmt chroma.Formatter
	sty *chroma.Style
}

func (r *codeRenderer) RenderSpans(spans []Span) {
	for _, span := range spans {
		r.RenderSpan(span)
	}
}

func (r *codeRenderer) RenderSpan(span Span) {
	switch b := span.(type) {
	case *TokenSpan:
		_ = r.fmt.Format(r, r.sty, chroma.Literator(b.Tokens...))
	case *TextSpan:
		template.HTMLEscape(r, b.Text)
	case *AnchorSpan:
		fmt.Fprintf(r, "<span id=%q>", b.ID)
		r.RenderSpans(b.Spans)
		r.WriteString("</span>")
	case *ErrorSpan:
		r.WriteString("<strong>")
		template.HTMLEscape(r, []byte(b.Msg))
		r.WriteString("</strong>")
		r.WriteString("<pre><code>")
		template.HTMLEscape(r, []byte(b.Err.Error()))
		r.WriteString("</code></pre>")
	default:
		panic(fmt.Sprintf("unrecognized span type %T", b))
	}
}
