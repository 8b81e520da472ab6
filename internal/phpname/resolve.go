package phpname

import "strings"

// Use is a single import statement:
//
//	use Name;
//	use Name as Alias;
type Use struct {
	Name  string // fully qualified, without a leading separator
	Alias string // optional
}

// ParseUse parses the body of an import statement,
// with or without the "use" keyword and trailing semicolon.
//
//	ParseUse(`My\First\Use\Class`)         // {Name: "My\First\Use\Class"}
//	ParseUse(`My\Second\Class as MyAlias`) // {Name: "My\Second\Class", Alias: "MyAlias"}
func ParseUse(s string) Use {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ";")
	if rest, ok := cutWord(s, "use"); ok {
		s = rest
	}

	fields := strings.Fields(s)
	if len(fields) == 3 && strings.EqualFold(fields[1], "as") {
		return Use{Name: Trim(fields[0]), Alias: fields[2]}
	}
	return Use{Name: Trim(s)}
}

// String renders the use statement body without the keyword.
func (u Use) String() string {
	if u.Alias == "" {
		return u.Name
	}
	return u.Name + " as " + u.Alias
}

// LocalName is the name by which the import is referenced
// inside the file: the alias if any, the short name otherwise.
func (u Use) LocalName() string {
	if u.Alias != "" {
		return u.Alias
	}
	return Short(u.Name)
}

// Resolver renders references to classes and types
// from the point of view of a declaration
// in a specific namespace with specific imports.
type Resolver struct {
	Namespace string
	Uses      []Use
}

// Class renders a reference to the class with the given fully qualified
// name.
//
// Imported classes render with their alias or short name,
// classes in the same namespace render with their short name,
// and everything else renders fully qualified with a leading separator.
func (r *Resolver) Class(name string) string {
	fqn := Trim(name)
	if fqn == "" {
		return ""
	}

	for _, u := range r.Uses {
		if u.Name == fqn {
			return u.LocalName()
		}
	}

	// An unqualified reference to an imported alias
	// already resolves inside the file.
	if !IsQualified(fqn) {
		for _, u := range r.Uses {
			if u.LocalName() == fqn {
				return fqn
			}
		}
	}

	ns, short := Split(fqn)
	if ns == Trim(r.Namespace) {
		return short
	}
	return Separator + fqn
}

// Type renders a type hint.
//
// Built-in types are kept as-is.
// Nullable (?T) and union (A|B) types are resolved part by part.
// Class names are resolved with [Resolver.Class].
func (r *Resolver) Type(typ string) string {
	typ = strings.TrimSpace(typ)
	if typ == "" {
		return ""
	}

	if rest, ok := strings.CutPrefix(typ, "?"); ok {
		return "?" + r.Type(rest)
	}

	if strings.Contains(typ, "|") {
		parts := strings.Split(typ, "|")
		for i, p := range parts {
			parts[i] = r.Type(p)
		}
		return strings.Join(parts, "|")
	}

	if IsBuiltin(typ) {
		return strings.ToLower(typ)
	}
	return r.Class(typ)
}

var _builtinTypes = map[string]struct{}{
	"array":    {},
	"bool":     {},
	"callable": {},
	"false":    {},
	"float":    {},
	"int":      {},
	"iterable": {},
	"mixed":    {},
	"never":    {},
	"null":     {},
	"object":   {},
	"parent":   {},
	"self":     {},
	"static":   {},
	"string":   {},
	"true":     {},
	"void":     {},
}

// IsBuiltin reports whether the type is a built-in PHP type
// that is never namespaced.
func IsBuiltin(typ string) bool {
	_, ok := _builtinTypes[strings.ToLower(strings.TrimSpace(typ))]
	return ok
}

func cutWord(s, word string) (rest string, ok bool) {
	if len(s) <= len(word) || !strings.EqualFold(s[:len(word)], word) {
		return s, false
	}
	switch s[len(word)] {
	case ' ', '\t', '\n':
		return strings.TrimSpace(s[len(word):]), true
	}
	return s, false
}
