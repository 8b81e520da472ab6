package codegen

import "fmt"

// InvalidArgumentError reports malformed input to an operation:
// a value of the wrong type, a missing name,
// or a literal that cannot be rendered.
type InvalidArgumentError struct {
	Op     string // operation that failed, e.g. "AddProperty"
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	if e.Op == "" {
		return e.Reason
	}
	return e.Op + ": " + e.Reason
}

// DuplicateMemberError reports an attempt to add a member
// whose name is already taken inside a declaration.
type DuplicateMemberError struct {
	Member string // "property", "method", or "constant"
	Name   string // the colliding name as passed in
}

func (e *DuplicateMemberError) Error() string {
	return fmt.Sprintf("a %v by name %v already exists in this declaration", e.Member, e.Name)
}

func invalidArgf(op, format string, args ...any) *InvalidArgumentError {
	return &InvalidArgumentError{Op: op, Reason: fmt.Sprintf(format, args...)}
}
