// Package codegen models PHP class-like declarations
// and generates their source code.
//
// A [Declaration] is built empty with [New] or from a configuration map
// with [FromConfig], mutated through its methods,
// and rendered with [Declaration.Generate].
// The same type serves classes, traits, and interfaces;
// see [Kind] for what each kind supports.
//
// Declarations are not safe for concurrent mutation.
package codegen

import (
	"fmt"

	"braces.dev/errtrace"
	"go.abhg.dev/phpgen/internal/docblock"
	"go.abhg.dev/phpgen/internal/phpname"
)

// Declaration is a class, trait, or interface.
type Declaration struct {
	kind      Kind
	name      string
	namespace string
	docBlock  *docblock.DocBlock
	uses      []phpname.Use

	constants  memberSet[*Constant]
	properties memberSet[*Property]
	methods    memberSet[*Method]

	// Only read through the kind checks below.
	extendedClass string
	interfaces    []string
	flags         Flag
}

// New builds an empty declaration of the given kind.
func New(kind Kind) *Declaration {
	return &Declaration{
		kind:       kind,
		constants:  newMemberSet[*Constant](false),
		properties: newMemberSet[*Property](false),
		methods:    newMemberSet[*Method](true),
	}
}

// NewClass builds an empty class.
func NewClass() *Declaration { return New(KindClass) }

// NewTrait builds an empty trait.
func NewTrait() *Declaration { return New(KindTrait) }

// NewInterface builds an empty interface.
func NewInterface() *Declaration { return New(KindInterface) }

// Kind returns the kind of the declaration.
func (d *Declaration) Kind() Kind { return d.kind }

// SetKind changes the kind of the declaration.
//
// Values recorded for capabilities that the new kind lacks
// are kept but ignored, so converting back restores them.
func (d *Declaration) SetKind(k Kind) *Declaration {
	d.kind = k
	for _, m := range d.methods.Values() {
		m.owner = k
	}
	return d
}

// Name returns the short name of the declaration.
func (d *Declaration) Name() string { return d.name }

// SetName sets the name of the declaration.
//
// If the name is qualified, it is split
// and the namespace part replaces the current namespace.
// An empty name is ignored.
func (d *Declaration) SetName(name string) *Declaration {
	ns, short := phpname.Split(name)
	if short == "" {
		return d
	}
	if ns != "" {
		d.namespace = ns
	}
	d.name = short
	return d
}

// NamespaceName returns the namespace, or an empty string.
func (d *Declaration) NamespaceName() string { return d.namespace }

// SetNamespaceName sets the namespace.
func (d *Declaration) SetNamespaceName(ns string) *Declaration {
	d.namespace = phpname.Trim(ns)
	return d
}

// QualifiedName returns the namespace and name joined together.
func (d *Declaration) QualifiedName() string {
	return phpname.Join(d.namespace, d.name)
}

// DocBlock returns the documentation of the declaration, if any.
func (d *Declaration) DocBlock() *docblock.DocBlock { return d.docBlock }

// SetDocBlock sets the documentation of the declaration.
func (d *Declaration) SetDocBlock(doc *docblock.DocBlock) *Declaration {
	d.docBlock = doc
	return d
}

// AddUse adds an import.
// Adding an identical name and alias pair again is a no-op.
func (d *Declaration) AddUse(name, alias string) *Declaration {
	u := phpname.Use{Name: phpname.Trim(name), Alias: alias}
	if u.Name == "" {
		return d
	}
	for _, have := range d.uses {
		if have == u {
			return d
		}
	}
	d.uses = append(d.uses, u)
	return d
}

// Uses returns the imports in the order they were added.
func (d *Declaration) Uses() []phpname.Use {
	return append([]phpname.Use(nil), d.uses...)
}

// HasUse reports whether the given name is imported, with or without
// an alias.
func (d *Declaration) HasUse(name string) bool {
	name = phpname.Trim(name)
	for _, u := range d.uses {
		if u.Name == name {
			return true
		}
	}
	return false
}

// SetExtendedClass sets the parent class.
// Ignored unless the declaration is a class.
func (d *Declaration) SetExtendedClass(name string) *Declaration {
	if !d.kind.CanExtend() {
		return d
	}
	d.extendedClass = phpname.Trim(name)
	return d
}

// ExtendedClass returns the parent class,
// or an empty string if there is none or the kind can't have one.
func (d *Declaration) ExtendedClass() string {
	if !d.kind.CanExtend() {
		return ""
	}
	return d.extendedClass
}

// AddImplementedInterface adds an interface to the list of
// implemented interfaces (or extended interfaces, for interfaces).
// Ignored for traits, and for names already in the list.
func (d *Declaration) AddImplementedInterface(name string) *Declaration {
	if !d.kind.CanImplement() {
		return d
	}
	name = phpname.Trim(name)
	if name == "" {
		return d
	}
	for _, have := range d.interfaces {
		if have == name {
			return d
		}
	}
	d.interfaces = append(d.interfaces, name)
	return d
}

// SetImplementedInterfaces replaces the list of implemented interfaces.
// Ignored for traits.
func (d *Declaration) SetImplementedInterfaces(names []string) *Declaration {
	if !d.kind.CanImplement() {
		return d
	}
	d.interfaces = nil
	for _, n := range names {
		d.AddImplementedInterface(n)
	}
	return d
}

// ImplementedInterfaces returns the implemented interfaces in order.
// It is empty for traits.
func (d *Declaration) ImplementedInterfaces() []string {
	if !d.kind.CanImplement() {
		return nil
	}
	return append([]string(nil), d.interfaces...)
}

// SetFlags replaces the flags.
// Ignored unless the declaration is a class.
func (d *Declaration) SetFlags(f Flag) *Declaration {
	if !d.kind.HasModifiers() {
		return d
	}
	d.flags = f
	return d
}

// AddFlag sets the given flags.
// Ignored unless the declaration is a class.
func (d *Declaration) AddFlag(f Flag) *Declaration {
	if !d.kind.HasModifiers() {
		return d
	}
	d.flags |= f
	return d
}

// RemoveFlag clears the given flags.
// Ignored unless the declaration is a class.
func (d *Declaration) RemoveFlag(f Flag) *Declaration {
	if !d.kind.HasModifiers() {
		return d
	}
	d.flags &^= f
	return d
}

// Flags returns the flags.
// It is always zero unless the declaration is a class.
func (d *Declaration) Flags() Flag {
	if !d.kind.HasModifiers() {
		return 0
	}
	return d.flags
}

// SetAbstract marks the class abstract.
// An abstract class is not final.
func (d *Declaration) SetAbstract(abstract bool) *Declaration {
	if !abstract {
		return d.RemoveFlag(FlagAbstract)
	}
	return d.RemoveFlag(FlagFinal).AddFlag(FlagAbstract)
}

// IsAbstract reports whether the class is abstract.
func (d *Declaration) IsAbstract() bool { return d.Flags()&FlagAbstract != 0 }

// SetFinal marks the class final.
// A final class is not abstract.
func (d *Declaration) SetFinal(final bool) *Declaration {
	if !final {
		return d.RemoveFlag(FlagFinal)
	}
	return d.RemoveFlag(FlagAbstract).AddFlag(FlagFinal)
}

// IsFinal reports whether the class is final.
func (d *Declaration) IsFinal() bool { return d.Flags()&FlagFinal != 0 }

// AddConstant adds a constant.
// It fails with a [DuplicateMemberError] if the name is taken.
func (d *Declaration) AddConstant(c *Constant) error {
	if c == nil || c.name == "" {
		return errtrace.Wrap(invalidArgf("AddConstant", "constant must have a name"))
	}
	if !d.constants.Add(c.name, c) {
		return errtrace.Wrap(&DuplicateMemberError{Member: "constant", Name: c.name})
	}
	return nil
}

// HasConstant reports whether a constant with the exact name exists.
func (d *Declaration) HasConstant(name string) bool { return d.constants.Has(name) }

// Constant returns the constant with the given name.
func (d *Declaration) Constant(name string) (*Constant, bool) { return d.constants.Get(name) }

// Constants returns the constants in insertion order.
func (d *Declaration) Constants() []*Constant { return d.constants.Values() }

// AddProperty adds a property.
//
// It fails with a [DuplicateMemberError] if a property with the exact
// same name exists.
// Interfaces don't hold properties; for them this is a no-op.
func (d *Declaration) AddProperty(p *Property) error {
	if p == nil || p.name == "" {
		return errtrace.Wrap(invalidArgf("AddProperty", "property must have a name"))
	}
	if !d.kind.HasProperties() {
		return nil
	}
	if !d.properties.Add(p.name, p) {
		return errtrace.Wrap(&DuplicateMemberError{Member: "property", Name: p.name})
	}
	return nil
}

// AddProperties adds several properties.
//
// Each item is a property name (string), a *Property,
// or a configuration map as accepted by [PropertyFromConfig].
// Anything else fails with an [InvalidArgumentError].
// Items before a failing item stay added.
func (d *Declaration) AddProperties(items ...any) error {
	for _, item := range items {
		var p *Property
		switch v := item.(type) {
		case string:
			p = NewProperty(v)
		case *Property:
			p = v
		case map[string]any:
			var err error
			if p, err = PropertyFromConfig(v); err != nil {
				return errtrace.Wrap(err)
			}
		default:
			return errtrace.Wrap(invalidArgf("AddProperty", "expects string for name or *Property, got %T", item))
		}
		if err := d.AddProperty(p); err != nil {
			return errtrace.Wrap(err)
		}
	}
	return nil
}

// HasProperty reports whether a property with the exact name exists.
func (d *Declaration) HasProperty(name string) bool {
	if !d.kind.HasProperties() {
		return false
	}
	return d.properties.Has(name)
}

// Property returns the property with the exact name.
func (d *Declaration) Property(name string) (*Property, bool) {
	if !d.kind.HasProperties() {
		return nil, false
	}
	return d.properties.Get(name)
}

// Properties returns the properties in insertion order.
func (d *Declaration) Properties() []*Property {
	if !d.kind.HasProperties() {
		return nil
	}
	return d.properties.Values()
}

// RemoveProperty removes the property with the exact name, if any.
func (d *Declaration) RemoveProperty(name string) *Declaration {
	d.properties.Remove(name)
	return d
}

// AddMethod adds a method.
//
// Method names are case-insensitive:
// it fails with a [DuplicateMemberError]
// if a method with the same name in any case exists.
func (d *Declaration) AddMethod(m *Method) error {
	if m == nil || m.name == "" {
		return errtrace.Wrap(invalidArgf("AddMethod", "method must have a name"))
	}
	if !d.methods.Add(m.name, m) {
		return errtrace.Wrap(&DuplicateMemberError{Member: "method", Name: m.name})
	}
	m.owner = d.kind
	return nil
}

// AddMethods adds several methods.
//
// Each item is a method name (string), a *Method,
// or a configuration map as accepted by [MethodFromConfig].
// Anything else fails with an [InvalidArgumentError].
// Items before a failing item stay added.
func (d *Declaration) AddMethods(items ...any) error {
	for _, item := range items {
		var m *Method
		switch v := item.(type) {
		case string:
			m = NewMethod(v)
		case *Method:
			m = v
		case map[string]any:
			var err error
			if m, err = MethodFromConfig(v); err != nil {
				return errtrace.Wrap(err)
			}
		default:
			return errtrace.Wrap(invalidArgf("AddMethod", "expects string for name or *Method, got %T", item))
		}
		if err := d.AddMethod(m); err != nil {
			return errtrace.Wrap(err)
		}
	}
	return nil
}

// HasMethod reports whether a method with the name exists,
// ignoring case.
func (d *Declaration) HasMethod(name string) bool { return d.methods.Has(name) }

// Method returns the method with the given name, ignoring case.
func (d *Declaration) Method(name string) (*Method, bool) { return d.methods.Get(name) }

// Methods returns the methods in insertion order.
func (d *Declaration) Methods() []*Method { return d.methods.Values() }

// RemoveMethod removes the method with the given name, ignoring case.
// It does nothing if there is no such method.
func (d *Declaration) RemoveMethod(name string) *Declaration {
	d.methods.Remove(name)
	return d
}

func (d *Declaration) String() string {
	return fmt.Sprintf("%v %v", d.kind, d.QualifiedName())
}
