package errdefer_test

import (
	"fmt"
	"io"
	"strings"

	"go.abhg.dev/phpgen/internal/errdefer"
)

type declarationFile struct {
	io.Reader
}

func (*declarationFile) Close() error { return nil }

func readDeclarations(src string) (_ string, err error) {
	f := &declarationFile{Reader: strings.NewReader(src)}
	defer errdefer.Close(&err, f)
	// NOTE: err must be a named return.

	b, err := io.ReadAll(f)
	return string(b), err
}

func ExampleClose() {
	got, err := readDeclarations("name: FunClass")
	if err != nil {
		panic(err)
	}
	fmt.Println(got)
	// Output: name: FunClass
}
