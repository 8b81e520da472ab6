package codegen

import (
	"strings"

	"go.abhg.dev/phpgen/internal/docblock"
	"go.abhg.dev/phpgen/internal/phpvalue"
)

// Property is a property of a class or trait.
type Property struct {
	name         string
	defaultValue *phpvalue.Value
	visibility   Visibility
	static       bool
	docBlock     *docblock.DocBlock
}

// NewProperty builds a public, non-static property with a null default.
func NewProperty(name string) *Property {
	return (&Property{}).SetName(name)
}

// Name returns the name of the property without the leading '$'.
func (p *Property) Name() string { return p.name }

// SetName sets the name of the property.
// A leading '$' is dropped.
func (p *Property) SetName(name string) *Property {
	p.name = strings.TrimPrefix(name, "$")
	return p
}

// DefaultValue returns the default value.
// A nil value renders as null.
func (p *Property) DefaultValue() *phpvalue.Value { return p.defaultValue }

// SetDefaultValue sets the default value.
func (p *Property) SetDefaultValue(v *phpvalue.Value) *Property {
	p.defaultValue = v
	return p
}

// Visibility returns the visibility of the property.
func (p *Property) Visibility() Visibility { return p.visibility }

// SetVisibility sets the visibility of the property.
func (p *Property) SetVisibility(v Visibility) *Property {
	p.visibility = v
	return p
}

// IsStatic reports whether this is a static property.
func (p *Property) IsStatic() bool { return p.static }

// SetStatic sets whether this is a static property.
func (p *Property) SetStatic(static bool) *Property {
	p.static = static
	return p
}

// DocBlock returns the documentation of the property, if any.
func (p *Property) DocBlock() *docblock.DocBlock { return p.docBlock }

// SetDocBlock sets the documentation of the property.
func (p *Property) SetDocBlock(d *docblock.DocBlock) *Property {
	p.docBlock = d
	return p
}

func (p *Property) generate(sb *strings.Builder) {
	sb.WriteString(p.docBlock.Generate(_indent))
	sb.WriteString(_indent)
	sb.WriteString(p.visibility.String())
	sb.WriteString(" ")
	if p.static {
		sb.WriteString("static ")
	}
	sb.WriteString("$")
	sb.WriteString(p.name)
	sb.WriteString(" = ")
	sb.WriteString(p.defaultValue.Generate())
	sb.WriteString(";\n")
}
