// Package errdefer joins the errors of deferred cleanup
// into the error returned by a function.
//
// The function must use a named error return.
package errdefer

import (
	"errors"
	"io"
)

// Close calls Close on the given Closer
// and joins any error it returns into *err.
func Close(err *error, closer io.Closer) {
	Call(err, closer.Close)
}

// Call calls fn and joins any error it returns into *err.
func Call(err *error, fn func() error) {
	*err = errors.Join(*err, fn())
}
