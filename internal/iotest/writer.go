// Package iotest provides io helpers for tests.
package iotest

import (
	"bytes"
	"io"
	"sync"
	"testing"
)

// Writer builds an io.Writer that logs each line written to it
// with the given testing.TB.
// A partial last line is logged when the test finishes.
func Writer(t testing.TB) io.Writer {
	w := &writer{t: t}
	t.Cleanup(w.flush)
	return w
}

type writer struct {
	t testing.TB

	mu   sync.Mutex
	buff bytes.Buffer // partial line
}

func (w *writer) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n := len(b)
	for {
		idx := bytes.IndexByte(b, '\n')
		if idx < 0 {
			w.buff.Write(b)
			return n, nil
		}

		w.buff.Write(b[:idx])
		w.t.Logf("%s", w.buff.Bytes())
		w.buff.Reset()
		b = b[idx+1:]
	}
}

func (w *writer) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buff.Len() > 0 {
		w.t.Logf("%s", w.buff.Bytes())
		w.buff.Reset()
	}
}
