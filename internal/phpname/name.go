// Package phpname splits and resolves PHP names.
//
// Names are separated by [Separator].
// A name with a leading separator is fully qualified;
// the leading separator is dropped by every function in this package.
package phpname

import "strings"

// Separator separates the segments of a namespaced name.
const Separator = `\`

// Split splits a possibly-qualified name into its namespace and short name.
//
//	Split(`My\Namespaced\FunClass`) // "My\Namespaced", "FunClass"
//	Split(`FunClass`)               // "", "FunClass"
func Split(name string) (namespace, short string) {
	name = Trim(name)
	idx := strings.LastIndex(name, Separator)
	if idx < 0 {
		return "", name
	}
	return name[:idx], name[idx+1:]
}

// Join joins a namespace and a short name.
// The namespace may be empty.
func Join(namespace, short string) string {
	namespace = Trim(namespace)
	if namespace == "" {
		return short
	}
	return namespace + Separator + short
}

// Short returns the last segment of the name.
func Short(name string) string {
	_, short := Split(name)
	return short
}

// Trim removes leading and trailing separators from a name.
func Trim(name string) string {
	return strings.Trim(strings.TrimSpace(name), Separator)
}

// IsQualified reports whether the name contains a namespace segment.
func IsQualified(name string) bool {
	return strings.Contains(Trim(name), Separator)
}

// Descends reports whether name is declared in namespace ns
// or in one of its sub-namespaces.
// Names are compared ignoring case.
//
//	Descends(`App`, `App\Blog\Post`) // true
//	Descends(`App`, `Application\Post`) // false
//	Descends(``, `Post`) // true
func Descends(ns, name string) bool {
	ns, name = Trim(ns), Trim(name)
	if ns == "" {
		return true
	}
	if len(name) <= len(ns) || !EqualFold(name[:len(ns)], ns) {
		return false
	}
	return name[len(ns):len(ns)+1] == Separator
}

// Fold returns the key under which PHP compares names.
// PHP folds only ASCII letters,
// so "straße" and "STRASSE" stay distinct.
func Fold(name string) string {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + 'a' - 'A'
		}
		return r
	}, name)
}

// EqualFold reports whether two names are the same to PHP.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}
