package phpsrc

import (
	"go.abhg.dev/phpgen/internal/codegen"
	"go.abhg.dev/phpgen/internal/importer"
	"go.abhg.dev/phpgen/internal/phpname"
)

// Class is a class, trait, or interface declared in a source file.
//
// Supertypes are resolved through the [Index] the file was added to.
// A Class that isn't in an index only reports its own members.
type Class struct {
	kind      codegen.Kind
	name      string
	namespace string
	doc       string
	abstract  bool
	final     bool

	parentName     string
	interfaceNames []string // extended interfaces for interfaces

	uses  []phpname.Use
	scope *scope

	constants  []*importer.ConstantInfo
	properties []*importer.PropertyInfo
	methods    []*importer.MethodInfo

	index *Index
}

var (
	_ importer.Class     = (*Class)(nil)
	_ importer.UseLister = (*Class)(nil)
	_ importer.Modifiers = (*Class)(nil)
)

func (c *Class) applyModifiers(mods []string) {
	for _, mod := range mods {
		switch mod {
		case "abstract":
			c.abstract = true
		case "final":
			c.final = true
		}
	}
}

// Kind reports which keyword declared the class.
func (c *Class) Kind() codegen.Kind { return c.kind }

// Name is the short name of the class.
func (c *Class) Name() string { return c.name }

// NamespaceName is the namespace the class was declared in.
func (c *Class) NamespaceName() string { return c.namespace }

// QualifiedName is the fully qualified name of the class,
// without a leading separator.
func (c *Class) QualifiedName() string {
	return phpname.Join(c.namespace, c.name)
}

// DocComment is the documentation comment right before the class.
func (c *Class) DocComment() string { return c.doc }

// IsAbstract reports whether the class was declared abstract.
func (c *Class) IsAbstract() bool { return c.abstract }

// IsFinal reports whether the class was declared final.
func (c *Class) IsFinal() bool { return c.final }

// ParentName is the fully qualified name of the extended class.
func (c *Class) ParentName() string { return c.parentName }

// Uses lists the imports in effect at the declaration.
func (c *Class) Uses() []phpname.Use {
	return append([]phpname.Use(nil), c.uses...)
}

// Parent returns the extended class if the index knows it.
func (c *Class) Parent() importer.Class {
	if p := c.parent(); p != nil {
		return p
	}
	return nil
}

func (c *Class) parent() *Class {
	if c.parentName == "" {
		return nil
	}
	return c.lookup(c.parentName)
}

func (c *Class) lookup(name string) *Class {
	if c.index == nil {
		return nil
	}
	return c.index.Lookup(name)
}

// InterfaceNames lists the interfaces the class implements,
// directly or through its supertypes.
// Interfaces that the index doesn't know are still listed.
func (c *Class) InterfaceNames() []string {
	var (
		names []string
		seen  = make(map[string]struct{})
	)
	for _, cls := range c.lineage() {
		for _, name := range cls.interfaceNames {
			key := phpname.Fold(name)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

// Constants lists the constants of the class and its supertypes.
func (c *Class) Constants() []*importer.ConstantInfo {
	return collect(c.lineage(),
		func(cls *Class) []*importer.ConstantInfo { return cls.constants },
		func(ci *importer.ConstantInfo) string { return ci.Name })
}

// Properties lists the properties of the class and its supertypes.
// Private properties of supertypes are not visible and are omitted.
func (c *Class) Properties() []*importer.PropertyInfo {
	return collect(c.lineage(),
		func(cls *Class) []*importer.PropertyInfo {
			if cls == c {
				return cls.properties
			}
			var visible []*importer.PropertyInfo
			for _, p := range cls.properties {
				if p.Visibility != codegen.Private {
					visible = append(visible, p)
				}
			}
			return visible
		},
		func(pi *importer.PropertyInfo) string { return pi.Name })
}

// Methods lists the methods of the class and its supertypes.
func (c *Class) Methods() []*importer.MethodInfo {
	return collect(c.lineage(),
		func(cls *Class) []*importer.MethodInfo { return cls.methods },
		func(mi *importer.MethodInfo) string { return phpname.Fold(mi.Name) })
}

// lineage lists the class followed by its known supertypes,
// nearest first.
// Each class appears once even if the hierarchy has a cycle.
func (c *Class) lineage() []*Class {
	var (
		classes []*Class
		seen    = make(map[*Class]struct{})
		queue   = []*Class{c}
	)
	for len(queue) > 0 {
		cls := queue[0]
		queue = queue[1:]
		if _, ok := seen[cls]; ok {
			continue
		}
		seen[cls] = struct{}{}
		classes = append(classes, cls)

		if p := cls.parent(); p != nil {
			queue = append(queue, p)
		}
		for _, name := range cls.interfaceNames {
			if iface := cls.lookup(name); iface != nil {
				queue = append(queue, iface)
			}
		}
	}
	return classes
}

// collect gathers the members of each class in order.
// A member hides later members with the same key.
func collect[T any](classes []*Class, members func(*Class) []T, key func(T) string) []T {
	var (
		out  []T
		seen = make(map[string]struct{})
	)
	for _, cls := range classes {
		for _, m := range members(cls) {
			k := key(m)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, m)
		}
	}
	return out
}
