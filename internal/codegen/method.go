package codegen

import (
	"strings"

	"go.abhg.dev/phpgen/internal/docblock"
	"go.abhg.dev/phpgen/internal/phpname"
)

// Method is a method of a declaration.
//
// The body is opaque text.
// It is stored as given and emitted line by line
// inside the method's braces.
type Method struct {
	name       string
	docBlock   *docblock.DocBlock
	visibility Visibility
	static     bool
	abstract   bool
	final      bool
	params     []*Parameter
	returnType string
	body       string

	// Kind of the declaration that owns this method.
	// abstract and final are inert unless the owner allows modifiers.
	owner Kind
}

// NewMethod builds a public method with no parameters and an empty body.
func NewMethod(name string) *Method {
	return &Method{name: strings.TrimSpace(name)}
}

// Name returns the name of the method as it was given.
func (m *Method) Name() string { return m.name }

// SetName sets the name of the method.
//
// Renaming a method that already belongs to a declaration
// does not re-key it inside that declaration.
func (m *Method) SetName(name string) *Method {
	m.name = strings.TrimSpace(name)
	return m
}

// DocBlock returns the documentation of the method, if any.
func (m *Method) DocBlock() *docblock.DocBlock { return m.docBlock }

// SetDocBlock sets the documentation of the method.
func (m *Method) SetDocBlock(d *docblock.DocBlock) *Method {
	m.docBlock = d
	return m
}

// Visibility returns the visibility of the method.
func (m *Method) Visibility() Visibility { return m.visibility }

// SetVisibility sets the visibility of the method.
func (m *Method) SetVisibility(v Visibility) *Method {
	m.visibility = v
	return m
}

// IsStatic reports whether this is a static method.
func (m *Method) IsStatic() bool { return m.static }

// SetStatic sets whether this is a static method.
func (m *Method) SetStatic(static bool) *Method {
	m.static = static
	return m
}

// IsAbstract reports whether this is an abstract method.
// It is always false for methods of traits and interfaces.
func (m *Method) IsAbstract() bool { return m.abstract && m.owner.HasModifiers() }

// SetAbstract sets whether this is an abstract method.
func (m *Method) SetAbstract(abstract bool) *Method {
	m.abstract = abstract
	return m
}

// IsFinal reports whether this is a final method.
// It is always false for methods of traits and interfaces.
func (m *Method) IsFinal() bool { return m.final && m.owner.HasModifiers() }

// SetFinal sets whether this is a final method.
func (m *Method) SetFinal(final bool) *Method {
	m.final = final
	return m
}

// Parameters returns the parameters of the method in order.
func (m *Method) Parameters() []*Parameter { return m.params }

// AddParameter appends a parameter and records its position.
func (m *Method) AddParameter(p *Parameter) *Method {
	p.position = len(m.params)
	m.params = append(m.params, p)
	return m
}

// SetParameters replaces the parameter list.
func (m *Method) SetParameters(params []*Parameter) *Method {
	m.params = nil
	for _, p := range params {
		m.AddParameter(p)
	}
	return m
}

// ReturnType returns the return type hint, or an empty string.
func (m *Method) ReturnType() string { return m.returnType }

// SetReturnType sets the return type hint.
func (m *Method) SetReturnType(typ string) *Method {
	m.returnType = strings.TrimSpace(typ)
	return m
}

// Body returns the body of the method.
func (m *Method) Body() string { return m.body }

// SetBody sets the body of the method.
func (m *Method) SetBody(body string) *Method {
	m.body = body
	return m
}

func (m *Method) generate(sb *strings.Builder, r *phpname.Resolver, kind Kind) {
	abstract := m.abstract && kind.HasModifiers()
	final := m.final && kind.HasModifiers()

	sb.WriteString(m.docBlock.Generate(_indent))
	sb.WriteString(_indent)
	sb.WriteString(m.visibility.String())
	sb.WriteString(" ")
	if m.static {
		sb.WriteString("static ")
	}
	if abstract {
		sb.WriteString("abstract ")
	}
	if final {
		sb.WriteString("final ")
	}
	sb.WriteString("function ")
	sb.WriteString(m.name)
	sb.WriteString("(")
	for i, p := range m.params {
		if i > 0 {
			sb.WriteString(", ")
		}
		p.generate(sb, r)
	}
	sb.WriteString(")")
	if m.returnType != "" {
		sb.WriteString(": ")
		sb.WriteString(r.Type(m.returnType))
	}

	if abstract || !kind.HasMethodBodies() {
		sb.WriteString(";\n")
		return
	}

	sb.WriteString("\n")
	sb.WriteString(_indent)
	sb.WriteString("{\n")
	for _, line := range bodyLines(m.body) {
		if line != "" {
			sb.WriteString(_indent)
			sb.WriteString(_indent)
			sb.WriteString(line)
		}
		sb.WriteString("\n")
	}
	sb.WriteString(_indent)
	sb.WriteString("}\n")
}

// bodyLines splits a body into lines,
// dropping blank lines at either end.
// Lines in between are returned exactly as given.
func bodyLines(body string) []string {
	lines := strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")

	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}
