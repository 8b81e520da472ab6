// Package declconfig decodes declaration description files.
//
// A file holds either a single declaration,
//
//	name: FunClass
//	namespace: My\Namespaced
//
// or several declarations under a "declarations" key,
//
//	declarations:
//	  - name: First
//	  - name: Second
//
// YAML files may also hold a top-level list of declarations,
// or several documents separated by "---".
// JSON files are decoded as YAML.
//
// Decoded declarations are suitable for codegen.FromConfig.
package declconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"braces.dev/errtrace"
	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a declaration file.
type Format int

const (
	// YAML is YAML or JSON.
	YAML Format = iota + 1

	// TOML is TOML.
	TOML
)

func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

var _formats = map[string]Format{
	".yaml": YAML,
	".yml":  YAML,
	".json": YAML,
	".toml": TOML,
}

// FormatOf picks a format based on the extension of a file name or URL.
// It reports false if the extension isn't recognized.
func FormatOf(name string) (Format, bool) {
	f, ok := _formats[strings.ToLower(path.Ext(name))]
	return f, ok
}

// Decode decodes the declarations in data.
// The format is picked by [FormatOf] from name.
func Decode(name string, data []byte) ([]map[string]any, error) {
	format, ok := FormatOf(name)
	if !ok {
		return nil, errtrace.Errorf("%v: unrecognized declaration file extension", name)
	}

	decls, err := DecodeFormat(format, data)
	if err != nil {
		return nil, errtrace.Errorf("%v: %w", name, err)
	}
	return decls, nil
}

// DecodeFormat decodes the declarations in data
// written in the given format.
func DecodeFormat(format Format, data []byte) ([]map[string]any, error) {
	var docs []any
	switch format {
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		for {
			var doc any
			if err := dec.Decode(&doc); err != nil {
				if errors.Is(err, io.EOF) {
					break
				}
				return nil, errtrace.Wrap(err)
			}
			if doc != nil {
				docs = append(docs, doc)
			}
		}

	case TOML:
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, errtrace.Wrap(err)
		}
		if len(doc) > 0 {
			docs = append(docs, doc)
		}

	default:
		return nil, errtrace.Errorf("unsupported format %v", format)
	}

	var decls []map[string]any
	for _, doc := range docs {
		ds, err := declarations(normalize(doc))
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		decls = append(decls, ds...)
	}
	return decls, nil
}

// declarations extracts declarations from a decoded document.
func declarations(doc any) ([]map[string]any, error) {
	switch doc := doc.(type) {
	case map[string]any:
		list, ok := doc["declarations"]
		if !ok {
			return []map[string]any{doc}, nil
		}
		if len(doc) > 1 {
			return nil, errtrace.New(`"declarations" cannot be combined with other top-level keys`)
		}
		return declarations(list)

	case []any:
		decls := make([]map[string]any, 0, len(doc))
		for i, item := range doc {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, errtrace.Errorf("declaration %d: expected a map, got %T", i, item)
			}
			decls = append(decls, m)
		}
		return decls, nil

	default:
		return nil, errtrace.Errorf("expected a declaration or a list of declarations, got %T", doc)
	}
}

// normalize converts decoded values into the shapes
// that codegen.FromConfig and phpvalue understand:
// maps keyed by strings and lists of any.
func normalize(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []map[string]any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = normalize(val)
		}
		return out
	default:
		return v
	}
}
