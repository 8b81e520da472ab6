package flagvalue

import (
	"strings"

	"braces.dev/errtrace"
)

// List is a flag.Getter for flags that may be repeated,
// such as -decl and -use.
// Each occurrence is parsed by the element's own Set
// and appended in command line order.
type List[T any, PT Getter[T]] []T

// ListOf adapts a slice so that each occurrence of the flag
// appends to it.
//
//	var uses []useValue
//	flag.Var(flagvalue.ListOf(&uses), "use", "")
func ListOf[T any, PT Getter[T]](vs *[]T) *List[T, PT] {
	return (*List[T, PT])(vs)
}

// Get returns the values parsed so far.
func (lv *List[T, PT]) Get() any { return []T(*lv) }

// String joins the values with ", ",
// the way help text and error messages show them.
func (lv *List[T, PT]) String() string {
	items := make([]string, len(*lv))
	for i := range *lv {
		items[i] = PT(&(*lv)[i]).String()
	}
	return strings.Join(items, ", ")
}

// Set parses one occurrence of the flag.
// A value that fails to parse is not appended.
func (lv *List[T, PT]) Set(s string) error {
	var v T
	if err := PT(&v).Set(s); err != nil {
		return errtrace.Wrap(err)
	}
	*lv = append(*lv, v)
	return nil
}
