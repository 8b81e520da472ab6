package phpsrc

import "go.abhg.dev/phpgen/internal/phpname"

// Index holds the declarations of a set of files
// so that they can refer to each other.
type Index struct {
	classes []*Class
	byName  map[string]*Class // lowercase qualified name
}

// NewIndex builds an index over the given files.
func NewIndex(files ...*File) *Index {
	idx := &Index{byName: make(map[string]*Class)}
	for _, f := range files {
		idx.Add(f)
	}
	return idx
}

// Add adds the declarations of a file to the index.
// If a name is declared more than once, the first declaration wins.
func (idx *Index) Add(f *File) {
	for _, c := range f.Classes {
		c.index = idx
		idx.classes = append(idx.classes, c)

		key := phpname.Fold(c.QualifiedName())
		if _, ok := idx.byName[key]; !ok {
			idx.byName[key] = c
		}
	}
}

// Lookup finds a declaration by its fully qualified name.
// The leading separator is optional and case is ignored.
// It returns nil if the name is unknown.
func (idx *Index) Lookup(name string) *Class {
	return idx.byName[phpname.Fold(phpname.Trim(name))]
}

// Find finds declarations by name.
// A qualified name is looked up exactly;
// a short name matches every declaration with that short name.
func (idx *Index) Find(name string) []*Class {
	if phpname.IsQualified(name) {
		if c := idx.Lookup(name); c != nil {
			return []*Class{c}
		}
		return nil
	}

	var found []*Class
	for _, c := range idx.classes {
		if phpname.EqualFold(c.name, phpname.Trim(name)) {
			found = append(found, c)
		}
	}
	return found
}

// Classes lists all declarations in the order they were added.
func (idx *Index) Classes() []*Class {
	return append([]*Class(nil), idx.classes...)
}
