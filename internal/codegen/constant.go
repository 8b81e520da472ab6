package codegen

import (
	"strings"

	"go.abhg.dev/phpgen/internal/docblock"
	"go.abhg.dev/phpgen/internal/phpvalue"
)

// Constant is a class constant.
type Constant struct {
	name     string
	value    *phpvalue.Value
	docBlock *docblock.DocBlock
}

// NewConstant builds a constant with the given value.
func NewConstant(name string, value *phpvalue.Value) *Constant {
	return &Constant{name: name, value: value}
}

// Name returns the name of the constant.
func (c *Constant) Name() string { return c.name }

// Value returns the value of the constant.
func (c *Constant) Value() *phpvalue.Value { return c.value }

// DocBlock returns the documentation of the constant, if any.
func (c *Constant) DocBlock() *docblock.DocBlock { return c.docBlock }

// SetDocBlock sets the documentation of the constant.
func (c *Constant) SetDocBlock(d *docblock.DocBlock) *Constant {
	c.docBlock = d
	return c
}

func (c *Constant) generate(sb *strings.Builder) {
	sb.WriteString(c.docBlock.Generate(_indent))
	sb.WriteString(_indent)
	sb.WriteString("const ")
	sb.WriteString(c.name)
	sb.WriteString(" = ")
	sb.WriteString(c.value.Generate())
	sb.WriteString(";\n")
}
