// Package phpvalue renders Go values as PHP literals.
//
// Supported values are nil, booleans, integers, floats, strings,
// slices of supported values (rendered as lists),
// maps with string keys (rendered as associative arrays, sorted by key),
// [Array] for associative arrays with a fixed order,
// and [Expr] for verbatim expressions such as constants.
package phpvalue

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"braces.dev/errtrace"
)

// Value is a validated PHP literal.
// The zero value and the nil pointer both render as null.
type Value struct {
	v any
}

// Expr is a PHP expression that is rendered verbatim,
// for example "self::DEFAULT" or "PHP_EOL".
type Expr string

// Array is an associative array that renders its entries in order.
type Array []Entry

// Entry is a single key-value pair inside an [Array].
// Keys are strings or integers.
type Entry struct {
	Key   any
	Value any
}

// Null is the PHP null literal.
var Null = &Value{}

// New validates v and wraps it into a Value.
// It fails if v, or anything nested inside it, is not supported.
func New(v any) (*Value, error) {
	if err := validate(v); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &Value{v: v}, nil
}

// MustNew is like [New] but panics if the value is not supported.
func MustNew(v any) *Value {
	val, err := New(v)
	if err != nil {
		panic(err)
	}
	return val
}

// Raw builds a Value that renders the given expression verbatim.
func Raw(expr string) *Value {
	return &Value{v: Expr(expr)}
}

// Interface returns the Go value held by this Value.
func (val *Value) Interface() any {
	if val == nil {
		return nil
	}
	return val.v
}

// IsNull reports whether the value renders as null.
func (val *Value) IsNull() bool {
	if val == nil || val.v == nil {
		return true
	}
	e, ok := val.v.(Expr)
	return ok && strings.EqualFold(strings.TrimSpace(string(e)), "null")
}

// Generate renders the value as a PHP literal.
func (val *Value) Generate() string {
	var sb strings.Builder
	write(&sb, val.Interface())
	return sb.String()
}

func (val *Value) String() string {
	return val.Generate()
}

func validate(v any) error {
	switch v := v.(type) {
	case nil, bool, string, Expr,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return nil
	case *Value:
		return nil
	case Array:
		for _, e := range v {
			switch e.Key.(type) {
			case string, int, int64:
			default:
				return errtrace.Errorf("unsupported array key %v (%T)", e.Key, e.Key)
			}
			if err := validate(e.Value); err != nil {
				return errtrace.Wrap(err)
			}
		}
		return nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if err := validate(rv.Index(i).Interface()); err != nil {
				return errtrace.Wrap(err)
			}
		}
		return nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return errtrace.Errorf("unsupported map key type %v", rv.Type().Key())
		}
		iter := rv.MapRange()
		for iter.Next() {
			if err := validate(iter.Value().Interface()); err != nil {
				return errtrace.Wrap(err)
			}
		}
		return nil
	}

	return errtrace.Errorf("unsupported value %v (%T)", v, v)
}

func write(sb *strings.Builder, v any) {
	switch v := v.(type) {
	case nil:
		sb.WriteString("null")
	case *Value:
		write(sb, v.Interface())
	case Expr:
		sb.WriteString(string(v))
	case bool:
		sb.WriteString(strconv.FormatBool(v))
	case string:
		writeString(sb, v)
	case int:
		sb.WriteString(strconv.Itoa(v))
	case int8, int16, int32, int64:
		sb.WriteString(strconv.FormatInt(reflect.ValueOf(v).Int(), 10))
	case uint, uint8, uint16, uint32, uint64:
		sb.WriteString(strconv.FormatUint(reflect.ValueOf(v).Uint(), 10))
	case float32:
		writeFloat(sb, float64(v), 32)
	case float64:
		writeFloat(sb, v, 64)
	case Array:
		sb.WriteString("[")
		for i, e := range v {
			if i > 0 {
				sb.WriteString(", ")
			}
			write(sb, e.Key)
			sb.WriteString(" => ")
			write(sb, e.Value)
		}
		sb.WriteString("]")
	default:
		writeReflect(sb, reflect.ValueOf(v))
	}
}

func writeReflect(sb *strings.Builder, rv reflect.Value) {
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		sb.WriteString("[")
		for i := 0; i < rv.Len(); i++ {
			if i > 0 {
				sb.WriteString(", ")
			}
			write(sb, rv.Index(i).Interface())
		}
		sb.WriteString("]")

	case reflect.Map:
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)

		sb.WriteString("[")
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeString(sb, k)
			sb.WriteString(" => ")
			write(sb, rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface())
		}
		sb.WriteString("]")

	default:
		// New rejects everything else.
		panic(fmt.Sprintf("unsupported value %v", rv))
	}
}

var _stringEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func writeString(sb *strings.Builder, s string) {
	sb.WriteByte('\'')
	_stringEscaper.WriteString(sb, s)
	sb.WriteByte('\'')
}

func writeFloat(sb *strings.Builder, f float64, bits int) {
	switch {
	case math.IsInf(f, 1):
		sb.WriteString("INF")
		return
	case math.IsInf(f, -1):
		sb.WriteString("-INF")
		return
	case math.IsNaN(f):
		sb.WriteString("NAN")
		return
	}

	s := strconv.FormatFloat(f, 'g', -1, bits)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	sb.WriteString(s)
}
