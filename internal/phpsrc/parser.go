// Package phpsrc reads class-like declarations out of PHP source files.
//
// It scans the skeleton of a file:
// namespaces, imports, and class, trait, and interface declarations
// with their constants, properties, and method signatures.
// Method bodies and default values are kept as opaque text.
// It does not evaluate or validate PHP code.
//
// Parsed declarations implement [importer.Class].
// Add files to an [Index] to resolve parent classes across files.
package phpsrc

import (
	"bytes"
	"strings"

	"braces.dev/errtrace"
	"github.com/viant/parsly"
	"go.abhg.dev/phpgen/internal/codegen"
	"go.abhg.dev/phpgen/internal/importer"
	"go.abhg.dev/phpgen/internal/phpname"
	"go.uber.org/zap"
)

// File is a parsed PHP source file.
type File struct {
	// Name of the file, as passed to ParseFile.
	Name string

	// Declarations found in the file, in source order.
	Classes []*Class
}

// Parser parses PHP source files.
//
// The zero value is ready to use.
type Parser struct {
	// Logger receives debug messages about skipped constructs.
	Logger *zap.Logger
}

// ParseFile scans src for class-like declarations.
// name is used in error messages.
func (p *Parser) ParseFile(name string, src []byte) (*File, error) {
	log := p.Logger
	if log == nil {
		log = zap.NewNop()
	}

	fp := &fileParser{
		name: name,
		src:  src,
		log:  log.With(zap.String("file", name)),
		file: &File{Name: name},
	}
	if err := fp.parseStatements(0, len(src), &scope{}); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return fp.file, nil
}

// scope is the namespace and imports in effect.
type scope struct {
	namespace string
	uses      []phpname.Use
}

// resolve turns a class reference into a fully qualified name
// following PHP's name resolution rules.
func (s *scope) resolve(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || phpname.IsBuiltin(name) {
		return name
	}
	if strings.HasPrefix(name, phpname.Separator) {
		return phpname.Trim(name)
	}
	if rest, ok := cutKeyword(name, "namespace\\"); ok {
		return phpname.Join(s.namespace, rest)
	}

	first, rest, qualified := strings.Cut(name, phpname.Separator)
	for _, u := range s.uses {
		if phpname.EqualFold(u.LocalName(), first) {
			if qualified {
				return u.Name + phpname.Separator + rest
			}
			return u.Name
		}
	}
	return phpname.Join(s.namespace, name)
}

// resolveType resolves every class name inside a type expression
// such as ?Foo, Foo|Bar, or (A&B)|null.
func (s *scope) resolveType(typ string) string {
	var (
		sb    strings.Builder
		start = -1
	)
	flush := func(end int) {
		if start >= 0 {
			sb.WriteString(s.resolve(typ[start:end]))
			start = -1
		}
	}
	for i := 0; i < len(typ); i++ {
		b := typ[i]
		if isNamePart(b) || b == '\\' {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
		if b != ' ' && b != '\t' && b != '\n' && b != '\r' {
			sb.WriteByte(b)
		}
	}
	flush(len(typ))
	return sb.String()
}

type fileParser struct {
	name string
	src  []byte
	log  *zap.Logger
	file *File
}

// cursor builds a cursor over src[start:end].
func (fp *fileParser) cursor(start, end int) *parsly.Cursor {
	return parsly.NewCursor(fp.name, fp.src[start:end], 0)
}

func (fp *fileParser) errorf(offset int, format string, args ...any) error {
	line := bytes.Count(fp.src[:offset], []byte("\n")) + 1
	return errtrace.Errorf("%v:%v: "+format, append([]any{fp.name, line}, args...)...)
}

// parseStatements scans top-level statements in src[start:end].
func (fp *fileParser) parseStatements(start, end int, sc *scope) error {
	c := fp.cursor(start, end)

	var (
		doc       string
		modifiers []string
		prev      string // text of the previous significant token
	)
	for {
		m := c.MatchAfterOptional(whitespaceMatcher, withComments(
			openTagMatcher,
			closeTagMatcher,
			singleQuotedMatcher,
			doubleQuotedMatcher,
			braceBlockMatcher,
			doubleColonMatcher,
			semicolonMatcher,
			variableMatcher,
			nameMatcher,
			anyMatcher,
		)...)

		switch m.Code {
		case parsly.EOF, parsly.Invalid:
			return nil

		case docCommentToken:
			doc = m.Text(c)
			continue

		case blockCommentToken, lineCommentToken, attributeToken, openTagToken, closeTagToken:
			continue

		case nameToken:
			word := m.Text(c)
			lower := strings.ToLower(word)
			offset := start + m.Offset
			prevWord := prev
			prev = lower
			switch {
			case lower == "namespace" && prevWord != "::":
				ns, err := fp.parseNamespace(c, start, offset)
				if err != nil {
					return errtrace.Wrap(err)
				}
				if ns != nil {
					sc = ns
				}
				doc, modifiers, prev = "", nil, ""

			case lower == "use" && prevWord == "":
				fp.parseUse(c, sc)
				doc, modifiers, prev = "", nil, ""

			case lower == "abstract" || lower == "final" || lower == "readonly":
				modifiers = append(modifiers, lower)

			case (lower == "class" || lower == "trait" || lower == "interface") &&
				prevWord != "::" && prevWord != "new" && prevWord != ">":
				class, err := fp.parseClass(c, start, offset, lower, sc)
				if err != nil {
					return errtrace.Wrap(err)
				}
				class.doc = doc
				class.applyModifiers(modifiers)
				fp.file.Classes = append(fp.file.Classes, class)
				doc, modifiers, prev = "", nil, ""

			case lower == "enum" && prevWord != "::" && prevWord != ">":
				fp.log.Debug("skipping enum", zap.Int("offset", offset))
				doc, modifiers = "", nil

			default:
				doc, modifiers = "", nil
			}
			continue

		case semicolonToken, braceBlockToken:
			// A statement ended; the next "use" is a statement again.
			doc, modifiers, prev = "", nil, ""
			continue
		}

		doc, modifiers = "", nil
		prev = m.Text(c)
	}
}

// parseNamespace handles "namespace Foo;" and "namespace Foo { ... }".
// For the braced form, the block is parsed right away
// and a nil scope is returned.
func (fp *fileParser) parseNamespace(c *parsly.Cursor, base, offset int) (*scope, error) {
	var name string
	m := c.MatchAfterOptional(whitespaceMatcher, nameMatcher, braceBlockMatcher, semicolonMatcher)
	if m.Code == nameToken {
		name = phpname.Trim(m.Text(c))
		m = c.MatchAfterOptional(whitespaceMatcher, braceBlockMatcher, semicolonMatcher)
	}

	switch m.Code {
	case semicolonToken:
		return &scope{namespace: name}, nil
	case braceBlockToken:
		blockStart := base + m.Offset
		blockEnd := blockStart + len(m.Text(c))
		return nil, errtrace.Wrap(fp.parseStatements(blockStart+1, blockEnd-1, &scope{namespace: name}))
	default:
		return nil, fp.errorf(offset, "expected ';' or '{' after namespace %q", name)
	}
}

// parseUse handles top-level import statements.
// Function and constant imports, and group imports, are skipped.
func (fp *fileParser) parseUse(c *parsly.Cursor, sc *scope) {
	text, _ := scanUntil(c, ';')
	text = strings.TrimSpace(text)

	lower := strings.ToLower(text)
	if strings.HasPrefix(lower, "function ") || strings.HasPrefix(lower, "const ") {
		fp.log.Debug("skipping non-class import", zap.String("use", text))
		return
	}
	if strings.Contains(text, "{") {
		fp.log.Debug("skipping group import", zap.String("use", text))
		return
	}

	for _, part := range strings.Split(text, ",") {
		if u := phpname.ParseUse(part); u.Name != "" {
			sc.uses = append(sc.uses, u)
		}
	}
}

// parseClass parses a declaration header and body.
// The keyword has already been consumed.
func (fp *fileParser) parseClass(c *parsly.Cursor, base, offset int, keyword string, sc *scope) (*Class, error) {
	m := c.MatchAfterOptional(whitespaceMatcher, nameMatcher)
	if m.Code != nameToken {
		return nil, fp.errorf(offset, "expected name after %v", keyword)
	}

	kind, err := codegen.ParseKind(keyword)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	uses := append([]phpname.Use(nil), sc.uses...)
	class := &Class{
		kind:      kind,
		name:      m.Text(c),
		namespace: sc.namespace,
		uses:      uses,
		scope:     &scope{namespace: sc.namespace, uses: uses},
	}
	sc = class.scope

	var list *[]string
	for {
		m := c.MatchAfterOptional(whitespaceMatcher, withComments(
			braceBlockMatcher,
			commaMatcher,
			nameMatcher,
		)...)
		switch m.Code {
		case blockCommentToken, lineCommentToken, docCommentToken, attributeToken:
			continue

		case commaToken:
			continue

		case nameToken:
			word := m.Text(c)
			switch strings.ToLower(word) {
			case "extends":
				if kind == codegen.KindInterface {
					list = &class.interfaceNames
				} else {
					list = nil
				}
			case "implements":
				list = &class.interfaceNames
			default:
				name := sc.resolve(word)
				switch {
				case list != nil:
					*list = append(*list, name)
				case class.parentName == "":
					class.parentName = name
				default:
					return nil, fp.errorf(base+m.Offset, "unexpected %q in header of %v", word, class.name)
				}
			}

		case braceBlockToken:
			bodyStart := base + m.Offset
			bodyEnd := bodyStart + len(m.Text(c))
			if err := fp.parseBody(class, bodyStart+1, bodyEnd-1); err != nil {
				return nil, errtrace.Wrap(err)
			}
			return class, nil

		default:
			return nil, fp.errorf(offset, "%v %v has no body or an unterminated body", keyword, class.name)
		}
	}
}

// member accumulates the modifiers of a member declaration.
type member struct {
	doc        string
	visibility codegen.Visibility
	static     bool
	abstract   bool
	final      bool
}

// parseBody parses the members in src[start:end].
func (fp *fileParser) parseBody(class *Class, start, end int) error {
	c := fp.cursor(start, end)

	var mb member
	for {
		m := c.MatchAfterOptional(whitespaceMatcher, withComments(
			braceBlockMatcher,
			semicolonMatcher,
			variableMatcher,
			nameMatcher,
			anyMatcher,
		)...)

		switch m.Code {
		case parsly.EOF, parsly.Invalid:
			return nil

		case docCommentToken:
			mb.doc = m.Text(c)

		case blockCommentToken, lineCommentToken, attributeToken:

		case semicolonToken, braceBlockToken:
			mb = member{}

		case variableToken:
			fp.parseProperties(c, class, &mb, strings.TrimPrefix(m.Text(c), "$"))
			mb = member{}

		case nameToken:
			word := m.Text(c)
			switch strings.ToLower(word) {
			case "public", "var":
				mb.visibility = codegen.Public
			case "protected":
				mb.visibility = codegen.Protected
			case "private":
				mb.visibility = codegen.Private
			case "static":
				mb.static = true
			case "abstract":
				mb.abstract = true
			case "final":
				mb.final = true
			case "const":
				fp.parseConstants(c, class, &mb)
				mb = member{}
			case "function":
				if err := fp.parseMethod(c, start, class, &mb); err != nil {
					return errtrace.Wrap(err)
				}
				mb = member{}
			case "use", "case":
				text, _ := scanUntil(c, ';')
				fp.log.Debug("skipping member statement",
					zap.String("class", class.QualifiedName()),
					zap.String("statement", word+" "+strings.TrimSpace(text)))
				mb = member{}
			}
			// Anything else is a property type or "readonly".
		}
	}
}

// parseConstants parses "NAME = value[, NAME = value];".
// The "const" keyword has already been consumed.
func (fp *fileParser) parseConstants(c *parsly.Cursor, class *Class, mb *member) {
	for {
		m := c.MatchAfterOptional(whitespaceMatcher, nameMatcher, semicolonMatcher)
		if m.Code != nameToken {
			return
		}
		name := m.Text(c)

		// Typed constants: "const int NAME = 1;"
		if next := c.MatchAfterOptional(whitespaceMatcher, assignMatcher, nameMatcher); next.Code == nameToken {
			name = next.Text(c)
			c.MatchAfterOptional(whitespaceMatcher, assignMatcher)
		}

		value, stop := scanUntil(c, ';', ',')
		class.constants = append(class.constants, &importer.ConstantInfo{
			Name:           name,
			DeclaringClass: class.QualifiedName(),
			Value:          strings.TrimSpace(value),
			DocComment:     mb.doc,
		})
		if stop != ',' {
			return
		}
	}
}

// parseProperties parses "$name [= value][, $name [= value]];".
// The first variable has already been consumed.
func (fp *fileParser) parseProperties(c *parsly.Cursor, class *Class, mb *member, name string) {
	for {
		prop := &importer.PropertyInfo{
			Name:           name,
			DeclaringClass: class.QualifiedName(),
			Visibility:     mb.visibility,
			Static:         mb.static,
			DocComment:     mb.doc,
		}
		class.properties = append(class.properties, prop)

		m := c.MatchAfterOptional(whitespaceMatcher, assignMatcher, commaMatcher, semicolonMatcher, braceBlockMatcher)
		stop := byte(';')
		switch m.Code {
		case assignToken:
			var value string
			value, stop = scanUntil(c, ';', ',')
			prop.Default = strings.TrimSpace(value)
		case commaToken:
			stop = ','
		case braceBlockToken:
			fp.log.Debug("skipping property hooks", zap.String("property", name))
		}
		if stop != ',' {
			return
		}

		m = c.MatchAfterOptional(whitespaceMatcher, variableMatcher)
		if m.Code != variableToken {
			return
		}
		name = strings.TrimPrefix(m.Text(c), "$")
	}
}

// parseMethod parses a method signature and its body.
// The "function" keyword has already been consumed.
func (fp *fileParser) parseMethod(c *parsly.Cursor, base int, class *Class, mb *member) error {
	offset := base + c.Pos

	m := c.MatchAfterOptional(whitespaceMatcher, nameMatcher, anyMatcher)
	if m.Code == anyToken && m.Text(c) == "&" {
		m = c.MatchAfterOptional(whitespaceMatcher, nameMatcher)
	}
	if m.Code != nameToken {
		return fp.errorf(offset, "expected method name in %v", class.name)
	}
	method := &importer.MethodInfo{
		Name:           m.Text(c),
		DeclaringClass: class.QualifiedName(),
		Visibility:     mb.visibility,
		Static:         mb.static,
		Abstract:       mb.abstract,
		Final:          mb.final,
		DocComment:     mb.doc,
	}

	m = c.MatchAfterOptional(whitespaceMatcher, parenBlockMatcher)
	if m.Code != parenBlockToken {
		return fp.errorf(offset, "expected parameters for %v::%v", class.name, method.Name)
	}
	params := m.Text(c)
	method.Parameters = fp.parseParameters(params[1:len(params)-1], class.scope)

	var ret strings.Builder
	for {
		m = c.MatchAfterOptional(whitespaceMatcher, withComments(
			braceBlockMatcher,
			semicolonMatcher,
			nameMatcher,
			anyMatcher,
		)...)
		switch m.Code {
		case blockCommentToken, lineCommentToken, docCommentToken, attributeToken:
			continue

		case nameToken:
			ret.WriteString(m.Text(c))
			continue

		case anyToken:
			switch text := m.Text(c); text {
			case ":":
			case "?", "|", "&", "(", ")":
				ret.WriteString(text)
			default:
				return fp.errorf(offset, "unexpected %q in signature of %v::%v", text, class.name, method.Name)
			}
			continue

		case braceBlockToken:
			body := m.Text(c)
			method.Body = dedent(body[1 : len(body)-1])

		case semicolonToken:
			// abstract or interface method

		default:
			return fp.errorf(offset, "unterminated method %v::%v", class.name, method.Name)
		}
		break
	}
	method.ReturnType = class.scope.resolveType(ret.String())

	class.methods = append(class.methods, method)
	return nil
}

// parseParameters parses the text between the parentheses
// of a method signature.
func (fp *fileParser) parseParameters(text string, sc *scope) []*importer.ParameterInfo {
	var params []*importer.ParameterInfo

	c := parsly.NewCursor(fp.name, []byte(text), 0)
	for c.Pos < c.InputSize {
		part, _ := scanUntil(c, ',')
		if p := parseParameter(part, sc); p != nil {
			params = append(params, p)
		}
	}
	return params
}

func parseParameter(text string, sc *scope) *importer.ParameterInfo {
	var (
		p   importer.ParameterInfo
		typ strings.Builder
	)

	c := parsly.NewCursor("", []byte(text), 0)
	for {
		m := c.MatchAfterOptional(whitespaceMatcher, withComments(
			ellipsisMatcher,
			assignMatcher,
			variableMatcher,
			nameMatcher,
			anyMatcher,
		)...)

		switch m.Code {
		case parsly.EOF, parsly.Invalid:
			if p.Name == "" {
				return nil
			}
			p.Type = sc.resolveType(typ.String())
			return &p

		case nameToken:
			switch word := m.Text(c); strings.ToLower(word) {
			case "public", "protected", "private", "readonly":
				// promoted constructor property
			default:
				typ.WriteString(word)
			}

		case ellipsisToken:
			p.Variadic = true

		case variableToken:
			p.Name = strings.TrimPrefix(m.Text(c), "$")

		case assignToken:
			p.Default = strings.TrimSpace(text[c.Pos:])
			c.Pos = c.InputSize

		case anyToken:
			switch t := m.Text(c); {
			case t == "&" && p.Name == "" && !p.Variadic:
				// "&" right before the variable is by-reference;
				// inside a type it is an intersection.
				if isByRef(text[c.Pos:]) {
					p.ByRef = true
				} else {
					typ.WriteString(t)
				}
			case t == "?" || t == "|" || t == "(" || t == ")":
				typ.WriteString(t)
			}
		}
	}
}

// isByRef reports whether the text following an '&'
// is the rest of a parameter, as opposed to the rest of a type.
func isByRef(rest string) bool {
	rest = strings.TrimSpace(rest)
	return strings.HasPrefix(rest, "$") || strings.HasPrefix(rest, "...")
}

// scanUntil consumes input up to and including the first of the stop
// bytes that appears outside of strings, comments, and brackets.
// It returns the text before the stop byte
// and the stop byte, or 0 at the end of the input.
func scanUntil(c *parsly.Cursor, stops ...byte) (string, byte) {
	start := c.Pos
	for {
		m := c.MatchAfterOptional(whitespaceMatcher, withComments(
			singleQuotedMatcher,
			doubleQuotedMatcher,
			braceBlockMatcher,
			parenBlockMatcher,
			bracketBlockMatcher,
			anyMatcher,
		)...)

		switch m.Code {
		case parsly.EOF, parsly.Invalid:
			return string(c.Input[start:c.Pos]), 0
		case anyToken:
			b := c.Input[m.Offset]
			for _, stop := range stops {
				if b == stop {
					return string(c.Input[start:m.Offset]), b
				}
			}
		}
	}
}

// cutKeyword is like strings.CutPrefix but ignores case.
func cutKeyword(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return s[len(prefix):], true
}
