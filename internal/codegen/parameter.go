package codegen

import (
	"strings"

	"go.abhg.dev/phpgen/internal/phpname"
	"go.abhg.dev/phpgen/internal/phpvalue"
)

// Parameter is a parameter of a method.
type Parameter struct {
	name         string
	typ          string
	defaultValue *phpvalue.Value // nil if the parameter is required
	byRef        bool
	variadic     bool
	position     int
}

// NewParameter builds a required, untyped parameter.
func NewParameter(name string) *Parameter {
	return (&Parameter{}).SetName(name)
}

// Name returns the name of the parameter without the leading '$'.
func (p *Parameter) Name() string { return p.name }

// SetName sets the name of the parameter.
// A leading '$' is dropped.
func (p *Parameter) SetName(name string) *Parameter {
	p.name = strings.TrimPrefix(strings.TrimSpace(name), "$")
	return p
}

// Type returns the type hint, or an empty string.
func (p *Parameter) Type() string { return p.typ }

// SetType sets the type hint.
func (p *Parameter) SetType(typ string) *Parameter {
	p.typ = strings.TrimSpace(typ)
	return p
}

// DefaultValue returns the default value,
// or nil if the parameter doesn't have one.
func (p *Parameter) DefaultValue() *phpvalue.Value { return p.defaultValue }

// SetDefaultValue sets the default value.
// Pass nil to make the parameter required.
func (p *Parameter) SetDefaultValue(v *phpvalue.Value) *Parameter {
	p.defaultValue = v
	return p
}

// PassedByReference reports whether the parameter is passed by reference.
func (p *Parameter) PassedByReference() bool { return p.byRef }

// SetPassedByReference sets whether the parameter is passed by reference.
func (p *Parameter) SetPassedByReference(byRef bool) *Parameter {
	p.byRef = byRef
	return p
}

// IsVariadic reports whether this is a variadic parameter.
func (p *Parameter) IsVariadic() bool { return p.variadic }

// SetVariadic sets whether this is a variadic parameter.
func (p *Parameter) SetVariadic(variadic bool) *Parameter {
	p.variadic = variadic
	return p
}

// Position returns the zero-based index of the parameter
// in its method's parameter list.
func (p *Parameter) Position() int { return p.position }

func (p *Parameter) generate(sb *strings.Builder, r *phpname.Resolver) {
	if p.typ != "" {
		sb.WriteString(r.Type(p.typ))
		sb.WriteString(" ")
	}
	if p.byRef {
		sb.WriteString("&")
	}
	if p.variadic {
		sb.WriteString("...")
	}
	sb.WriteString("$")
	sb.WriteString(p.name)
	if p.defaultValue != nil && !p.variadic {
		sb.WriteString(" = ")
		sb.WriteString(p.defaultValue.Generate())
	}
}
