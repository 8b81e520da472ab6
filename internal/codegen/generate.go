package codegen

import (
	"strings"

	"go.abhg.dev/phpgen/internal/phpname"
)

// _indent is one level of indentation in generated code.
const _indent = "    "

// Generate renders the declaration as PHP source code.
//
// Generate does not modify the declaration.
// Calling it repeatedly on an unchanged declaration
// produces identical output.
func (d *Declaration) Generate() string {
	var sb strings.Builder
	r := d.resolver()

	if d.namespace != "" {
		sb.WriteString("namespace ")
		sb.WriteString(d.namespace)
		sb.WriteString(";\n\n")
	}

	if len(d.uses) > 0 {
		for _, u := range d.uses {
			sb.WriteString("use ")
			sb.WriteString(u.String())
			sb.WriteString(";\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(d.docBlock.Generate(""))
	d.generateHeader(&sb, r)
	sb.WriteString("{\n")

	first := true
	separate := func() {
		if !first {
			sb.WriteString("\n")
		}
		first = false
	}

	for _, c := range d.constants.Values() {
		separate()
		c.generate(&sb)
	}
	for _, p := range d.Properties() {
		separate()
		p.generate(&sb)
	}
	for _, m := range d.methods.Values() {
		separate()
		m.generate(&sb, r, d.kind)
	}

	sb.WriteString("}\n")
	return sb.String()
}

func (d *Declaration) generateHeader(sb *strings.Builder, r *phpname.Resolver) {
	switch {
	case d.IsAbstract():
		sb.WriteString("abstract ")
	case d.IsFinal():
		sb.WriteString("final ")
	}

	sb.WriteString(d.kind.Keyword())
	sb.WriteString(" ")
	sb.WriteString(d.name)

	if parent := d.ExtendedClass(); parent != "" {
		sb.WriteString(" extends ")
		sb.WriteString(r.Class(parent))
	}

	if ifaces := d.ImplementedInterfaces(); len(ifaces) > 0 {
		sb.WriteString(" ")
		sb.WriteString(d.kind.contractKeyword())
		sb.WriteString(" ")
		for i, name := range ifaces {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(r.Class(name))
		}
	}
	sb.WriteString("\n")
}

func (d *Declaration) resolver() *phpname.Resolver {
	return &phpname.Resolver{
		Namespace: d.namespace,
		Uses:      d.uses,
	}
}
