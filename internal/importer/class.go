package importer

import (
	"go.abhg.dev/phpgen/internal/codegen"
	"go.abhg.dev/phpgen/internal/phpname"
)

// Class is the metadata of an existing declaration,
// as reported by a metadata provider.
//
// Member lists include members inherited from supertypes,
// each tagged with the class that declares it,
// in the order a PHP reflection API would report them:
// own members first, then inherited ones, nearest supertype first.
// Names within each list are unique.
type Class interface {
	// Name is the short name of the declaration.
	Name() string

	// NamespaceName is the namespace of the declaration,
	// or an empty string for the global namespace.
	NamespaceName() string

	// DocComment is the raw documentation comment,
	// including the delimiters, or an empty string.
	DocComment() string

	// ParentName is the fully qualified name of the parent class,
	// or an empty string.
	ParentName() string

	// Parent is the parent class,
	// or nil if there is none or it can't be resolved.
	Parent() Class

	// InterfaceNames lists the fully qualified names of all interfaces
	// the declaration implements (or extends, for interfaces),
	// including those inherited from the parent.
	InterfaceNames() []string

	Constants() []*ConstantInfo
	Properties() []*PropertyInfo
	Methods() []*MethodInfo
}

// UseLister is implemented by providers that know the imports
// in effect where the declaration was found.
type UseLister interface {
	Uses() []phpname.Use
}

// Modifiers is implemented by providers that know
// whether a class was declared abstract or final.
type Modifiers interface {
	IsAbstract() bool
	IsFinal() bool
}

// ConstantInfo describes a class constant.
type ConstantInfo struct {
	Name           string
	DeclaringClass string // fully qualified

	// Value is the PHP source of the value expression.
	Value      string
	DocComment string
}

// PropertyInfo describes a property.
type PropertyInfo struct {
	Name           string // without the '$'
	DeclaringClass string // fully qualified
	Visibility     codegen.Visibility
	Static         bool

	// Default is the PHP source of the default value expression.
	// It is empty if the property doesn't declare one.
	Default    string
	DocComment string
}

// MethodInfo describes a method.
type MethodInfo struct {
	Name           string
	DeclaringClass string // fully qualified
	Visibility     codegen.Visibility
	Static         bool
	Abstract       bool
	Final          bool
	Parameters     []*ParameterInfo
	ReturnType     string

	// Body is the text between the braces of the method,
	// without the common indentation.
	// It is empty for methods without a body.
	Body       string
	DocComment string
}

// ParameterInfo describes a method parameter.
type ParameterInfo struct {
	Name     string // without the '$'
	Type     string
	ByRef    bool
	Variadic bool

	// Default is the PHP source of the default value expression,
	// or empty if the parameter is required.
	Default string
}
