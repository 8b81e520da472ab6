// Package importer populates declarations
// from the metadata of existing declarations.
//
// The metadata comes from a provider implementing [Class].
// The importer applies the rules of the target kind:
// traits drop the parent class and interfaces,
// interfaces drop properties,
// and only classes keep the parent class.
package importer

import (
	"strings"

	"braces.dev/errtrace"
	"go.abhg.dev/phpgen/internal/codegen"
	"go.abhg.dev/phpgen/internal/docblock"
	"go.abhg.dev/phpgen/internal/phpname"
	"go.abhg.dev/phpgen/internal/phpvalue"
	"go.abhg.dev/phpgen/internal/sliceutil"
	"go.uber.org/zap"
)

// Importer builds declarations from [Class] metadata.
type Importer struct {
	// Inherited keeps members declared by supertypes
	// when importing as a class.
	// Traits and interfaces, and classes by default,
	// keep only members declared by the class itself.
	Inherited bool

	Logger *zap.Logger
}

// Import builds a declaration of the given kind from the class.
//
// The returned declaration is independent of the class;
// callers may modify it freely.
func (im *Importer) Import(class Class, kind codegen.Kind) (*codegen.Declaration, error) {
	if class == nil {
		return nil, errtrace.Wrap(&codegen.InvalidArgumentError{
			Op:     "Import",
			Reason: "class must not be nil",
		})
	}

	log := im.Logger
	if log == nil {
		log = zap.NewNop()
	}
	qname := phpname.Join(class.NamespaceName(), class.Name())
	log = log.With(zap.String("class", qname), zap.Stringer("kind", kind))

	d := codegen.New(kind).
		SetName(class.Name()).
		SetNamespaceName(class.NamespaceName()).
		SetDocBlock(docblock.Parse(class.DocComment()))

	if ul, ok := class.(UseLister); ok {
		for _, u := range ul.Uses() {
			d.AddUse(u.Name, u.Alias)
		}
	}

	switch kind {
	case codegen.KindClass:
		d.SetExtendedClass(class.ParentName())
		d.SetImplementedInterfaces(ownInterfaces(class))
		if mods, ok := class.(Modifiers); ok {
			switch {
			case mods.IsAbstract():
				d.SetAbstract(true)
			case mods.IsFinal():
				d.SetFinal(true)
			}
		}
	case codegen.KindInterface:
		d.SetImplementedInterfaces(ownInterfaces(class))
	default:
		if parent := class.ParentName(); parent != "" {
			log.Debug("dropping parent class", zap.String("parent", parent))
		}
		if ifaces := class.InterfaceNames(); len(ifaces) > 0 {
			log.Debug("dropping interfaces", zap.Strings("interfaces", ifaces))
		}
	}

	// Only classes walk the supertype chain.
	inherited := im.Inherited && kind == codegen.KindClass
	own := func(declaring string) bool {
		if inherited || sameClass(declaring, qname) {
			return true
		}
		log.Debug("skipping inherited member", zap.String("declaringClass", declaring))
		return false
	}

	for _, c := range class.Constants() {
		if !own(c.DeclaringClass) {
			continue
		}
		constant := codegen.NewConstant(c.Name, rawValue(c.Value)).
			SetDocBlock(docblock.Parse(c.DocComment))
		if err := d.AddConstant(constant); err != nil {
			return nil, errtrace.Wrap(err)
		}
	}

	if kind.HasProperties() {
		for _, p := range class.Properties() {
			if !own(p.DeclaringClass) {
				continue
			}
			if err := d.AddProperty(importProperty(p)); err != nil {
				return nil, errtrace.Wrap(err)
			}
		}
	} else if props := class.Properties(); len(props) > 0 {
		log.Debug("dropping properties", zap.Int("count", len(props)))
	}

	for _, m := range class.Methods() {
		if !own(m.DeclaringClass) {
			continue
		}
		if err := d.AddMethod(importMethod(m)); err != nil {
			return nil, errtrace.Wrap(err)
		}
	}

	log.Debug("imported",
		zap.Int("constants", len(d.Constants())),
		zap.Int("properties", len(d.Properties())),
		zap.Int("methods", len(d.Methods())))
	return d, nil
}

// ownInterfaces lists the interfaces of the class
// that it doesn't inherit from its parent.
func ownInterfaces(class Class) []string {
	ifaces := class.InterfaceNames()
	if parent := class.Parent(); parent != nil {
		ifaces = sliceutil.Difference(ifaces, parent.InterfaceNames())
	}
	return ifaces
}

func importProperty(p *PropertyInfo) *codegen.Property {
	return codegen.NewProperty(p.Name).
		SetVisibility(p.Visibility).
		SetStatic(p.Static).
		SetDefaultValue(rawValue(p.Default)).
		SetDocBlock(docblock.Parse(p.DocComment))
}

func importMethod(m *MethodInfo) *codegen.Method {
	return codegen.NewMethod(m.Name).
		SetVisibility(m.Visibility).
		SetStatic(m.Static).
		SetAbstract(m.Abstract).
		SetFinal(m.Final).
		SetParameters(sliceutil.Transform(m.Parameters, importParameter)).
		SetReturnType(m.ReturnType).
		SetBody(m.Body).
		SetDocBlock(docblock.Parse(m.DocComment))
}

func importParameter(p *ParameterInfo) *codegen.Parameter {
	param := codegen.NewParameter(p.Name).
		SetType(p.Type).
		SetPassedByReference(p.ByRef).
		SetVariadic(p.Variadic)
	if p.Default != "" {
		param.SetDefaultValue(phpvalue.Raw(p.Default))
	}
	return param
}

// rawValue wraps a PHP expression.
// The empty expression and null both yield nil.
func rawValue(expr string) *phpvalue.Value {
	expr = strings.TrimSpace(expr)
	if expr == "" || strings.EqualFold(expr, "null") {
		return nil
	}
	return phpvalue.Raw(expr)
}

// sameClass reports whether two class names refer to the same class.
// Class names in PHP are case-insensitive.
func sameClass(a, b string) bool {
	return phpname.EqualFold(phpname.Trim(a), phpname.Trim(b))
}
