package flagvalue

import (
	"flag"
	"io"
	"os"

	"braces.dev/errtrace"
)

// FileSwitch is a flag that accepts both "-x" and "-x=path".
//
// Without a path, output goes to a fallback writer.
// With a path, output is appended to that file.
type FileSwitch string

var _ flag.Getter = (*FileSwitch)(nil)

// Get returns the path passed to the flag,
// "-" if the flag was passed without a path,
// or an empty string if the flag wasn't passed.
func (fs *FileSwitch) Get() any { return string(*fs) }

func (fs *FileSwitch) String() string {
	return string(*fs)
}

// IsBoolFlag marks this as a flag
// that doesn't require a value.
func (*FileSwitch) IsBoolFlag() bool {
	return true
}

// Set receives the value for this flag.
func (fs *FileSwitch) Set(v string) error {
	switch v {
	case "true":
		v = "-"
	case "false":
		v = ""
	}
	*fs = FileSwitch(v)
	return nil
}

// Bool reports whether this flag is on.
func (fs *FileSwitch) Bool() bool {
	return len(*fs) > 0
}

// Open returns a writer for this flag and a function to close it.
//
//   - the flag is off: returns nil
//   - the flag was passed without a path: returns the fallback
//   - the flag was passed with a path: opens the file for appending,
//     creating it if needed
func (fs *FileSwitch) Open(fallback io.Writer) (w io.Writer, close func() error, err error) {
	switch *fs {
	case "":
		return nil, nopClose, nil
	case "-":
		return fallback, nopClose, nil
	default:
		f, err := os.OpenFile(string(*fs), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, errtrace.Wrap(err)
		}
		return f, f.Close, nil
	}
}

func nopClose() error { return nil }
