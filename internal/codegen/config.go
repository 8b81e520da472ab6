package codegen

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"braces.dev/errtrace"
	"go.abhg.dev/phpgen/internal/docblock"
	"go.abhg.dev/phpgen/internal/phpname"
	"go.abhg.dev/phpgen/internal/phpvalue"
)

// FromConfig builds a declaration from a plain configuration map,
// as decoded from YAML, TOML, or JSON.
//
// Recognized keys are:
//
//	name                   required; may be qualified
//	namespace              or namespacename
//	kind                   class (default), trait, or interface
//	docblock               string or map (see below)
//	uses                   list of "Name" or "Name as Alias" or {name, alias}
//	extendedclass
//	implementedinterfaces  list of names
//	flags                  "abstract|final", a list of flag names, or an integer
//	constants              map of name to value, or list of {name, value}
//	properties             list of names or property maps
//	methods                list of names or method maps
//
// Keys are matched case-insensitively, ignoring '_' and '-',
// so "extendedClass" and "extended_class" are the same key.
// Unknown keys are ignored.
//
// The kind is applied first so that the remaining keys
// follow that kind's rules.
func FromConfig(cfg map[string]any) (*Declaration, error) {
	const op = "FromConfig"

	c := normalizeConfig(cfg)
	name, err := configString(op, c, "name")
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	if name == "" {
		return nil, errtrace.Wrap(invalidArgf(op, "name is required"))
	}

	kindName, err := configString(op, c, "kind")
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	kind, err := ParseKind(kindName)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	d := New(kind).SetName(name)

	for _, key := range []string{"namespace", "namespacename"} {
		ns, err := configString(op, c, key)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		if ns != "" {
			d.SetNamespaceName(ns)
		}
	}

	if v, ok := c["docblock"]; ok {
		doc, err := docBlockFromConfig(op, v)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		d.SetDocBlock(doc)
	}

	if v, ok := c["uses"]; ok {
		if err := usesFromConfig(d, v); err != nil {
			return nil, errtrace.Wrap(err)
		}
	}

	parent, err := configString(op, c, "extendedclass")
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	d.SetExtendedClass(parent)

	if v, ok := c["implementedinterfaces"]; ok {
		names, err := configStrings(op, "implementedinterfaces", v)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		d.SetImplementedInterfaces(names)
	}

	if v, ok := c["flags"]; ok {
		flags, err := flagsFromConfig(op, v)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		d.SetFlags(flags)
	}

	if v, ok := c["constants"]; ok {
		if err := constantsFromConfig(d, v); err != nil {
			return nil, errtrace.Wrap(err)
		}
	}

	if v, ok := c["properties"]; ok {
		items, ok := configList(v)
		if !ok {
			return nil, errtrace.Wrap(invalidArgf(op, "properties must be a list, got %T", v))
		}
		if err := d.AddProperties(items...); err != nil {
			return nil, errtrace.Wrap(err)
		}
	}

	if v, ok := c["methods"]; ok {
		items, ok := configList(v)
		if !ok {
			return nil, errtrace.Wrap(invalidArgf(op, "methods must be a list, got %T", v))
		}
		if err := d.AddMethods(items...); err != nil {
			return nil, errtrace.Wrap(err)
		}
	}

	return d, nil
}

// PropertyFromConfig builds a property from a configuration map
// with the keys name (required), defaultvalue, visibility, static,
// and docblock.
// A missing defaultvalue renders as null.
func PropertyFromConfig(cfg map[string]any) (*Property, error) {
	const op = "PropertyFromConfig"

	c := normalizeConfig(cfg)
	name, err := configString(op, c, "name")
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	if name == "" {
		return nil, errtrace.Wrap(invalidArgf(op, "property name is required"))
	}
	p := NewProperty(name)

	if v, ok := configAny(c, "defaultvalue", "default"); ok {
		val, err := literalFromConfig(op, v)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		p.SetDefaultValue(val)
	}

	vis, err := visibilityFromConfig(op, c)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	p.SetVisibility(vis)

	static, err := configBool(op, c, "static")
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	p.SetStatic(static)

	if v, ok := c["docblock"]; ok {
		doc, err := docBlockFromConfig(op, v)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		p.SetDocBlock(doc)
	}

	return p, nil
}

// MethodFromConfig builds a method from a configuration map
// with the keys name (required), visibility, static, abstract, final,
// parameters, returntype, body, and docblock.
func MethodFromConfig(cfg map[string]any) (*Method, error) {
	const op = "MethodFromConfig"

	c := normalizeConfig(cfg)
	name, err := configString(op, c, "name")
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	if name == "" {
		return nil, errtrace.Wrap(invalidArgf(op, "method name is required"))
	}
	m := NewMethod(name)

	vis, err := visibilityFromConfig(op, c)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	m.SetVisibility(vis)

	for _, f := range []struct {
		key string
		set func(bool) *Method
	}{
		{"static", m.SetStatic},
		{"abstract", m.SetAbstract},
		{"final", m.SetFinal},
	} {
		b, err := configBool(op, c, f.key)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		f.set(b)
	}

	if v, ok := c["parameters"]; ok {
		items, ok := configList(v)
		if !ok {
			return nil, errtrace.Wrap(invalidArgf(op, "parameters must be a list, got %T", v))
		}
		for _, item := range items {
			p, err := parameterFromConfig(item)
			if err != nil {
				return nil, errtrace.Wrap(err)
			}
			m.AddParameter(p)
		}
	}

	ret, err := configString(op, c, "returntype")
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	m.SetReturnType(ret)

	body, err := configString(op, c, "body")
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	m.SetBody(body)

	if v, ok := c["docblock"]; ok {
		doc, err := docBlockFromConfig(op, v)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		m.SetDocBlock(doc)
	}

	return m, nil
}

// parameterFromConfig builds a parameter from a name
// or a map with the keys name (required), type, defaultvalue,
// passedbyreference, and variadic.
// Unlike properties, a parameter without defaultvalue is required.
func parameterFromConfig(item any) (*Parameter, error) {
	const op = "ParameterFromConfig"

	switch v := item.(type) {
	case string:
		return NewParameter(v), nil
	case *Parameter:
		return v, nil
	case map[string]any:
		c := normalizeConfig(v)
		name, err := configString(op, c, "name")
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		if name == "" {
			return nil, errtrace.Wrap(invalidArgf(op, "parameter name is required"))
		}
		p := NewParameter(name)

		typ, err := configString(op, c, "type")
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		p.SetType(typ)

		if dv, ok := configAny(c, "defaultvalue", "default"); ok {
			val, err := literalFromConfig(op, dv)
			if err != nil {
				return nil, errtrace.Wrap(err)
			}
			if val == nil {
				val = phpvalue.Null
			}
			p.SetDefaultValue(val)
		}

		byRef, err := configBool(op, c, "passedbyreference")
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		p.SetPassedByReference(byRef)

		variadic, err := configBool(op, c, "variadic")
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		p.SetVariadic(variadic)
		return p, nil
	default:
		return nil, errtrace.Wrap(invalidArgf(op, "expects string for name or map, got %T", item))
	}
}

func usesFromConfig(d *Declaration, v any) error {
	const op = "FromConfig"

	items, ok := configList(v)
	if !ok {
		return errtrace.Wrap(invalidArgf(op, "uses must be a list, got %T", v))
	}
	for _, item := range items {
		switch u := item.(type) {
		case string:
			use := phpname.ParseUse(u)
			d.AddUse(use.Name, use.Alias)
		case map[string]any:
			c := normalizeConfig(u)
			name, err := configString(op, c, "name")
			if err != nil {
				return errtrace.Wrap(err)
			}
			alias, err := configString(op, c, "alias")
			if err != nil {
				return errtrace.Wrap(err)
			}
			if name == "" {
				return errtrace.Wrap(invalidArgf(op, "use requires a name"))
			}
			d.AddUse(name, alias)
		default:
			return errtrace.Wrap(invalidArgf(op, "use must be a string or map, got %T", item))
		}
	}
	return nil
}

func constantsFromConfig(d *Declaration, v any) error {
	const op = "FromConfig"

	if m, ok := v.(map[string]any); ok {
		names := make([]string, 0, len(m))
		for name := range m {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			val, err := literalFromConfig(op, m[name])
			if err != nil {
				return errtrace.Wrap(err)
			}
			if err := d.AddConstant(NewConstant(name, val)); err != nil {
				return errtrace.Wrap(err)
			}
		}
		return nil
	}

	items, ok := configList(v)
	if !ok {
		return errtrace.Wrap(invalidArgf(op, "constants must be a map or list, got %T", v))
	}
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return errtrace.Wrap(invalidArgf(op, "constant must be a map, got %T", item))
		}
		c := normalizeConfig(m)
		name, err := configString(op, c, "name")
		if err != nil {
			return errtrace.Wrap(err)
		}
		val, err := literalFromConfig(op, c["value"])
		if err != nil {
			return errtrace.Wrap(err)
		}
		if err := d.AddConstant(NewConstant(name, val)); err != nil {
			return errtrace.Wrap(err)
		}
	}
	return nil
}

func docBlockFromConfig(op string, v any) (*docblock.DocBlock, error) {
	switch doc := v.(type) {
	case nil:
		return nil, nil
	case string:
		if strings.HasPrefix(strings.TrimSpace(doc), "/**") {
			return docblock.Parse(doc), nil
		}
		return docblock.New(doc), nil
	case *docblock.DocBlock:
		return doc, nil
	case map[string]any:
		c := normalizeConfig(doc)
		short, err := configString(op, c, "shortdescription")
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		long, err := configString(op, c, "longdescription")
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		d := docblock.New(short).SetLongDescription(long)

		tags, _ := configList(c["tags"])
		for _, t := range tags {
			switch t := t.(type) {
			case string:
				name, body, _ := strings.Cut(strings.TrimPrefix(t, "@"), " ")
				d.AddTag(name, strings.TrimSpace(body))
			case map[string]any:
				tc := normalizeConfig(t)
				name, err := configString(op, tc, "name")
				if err != nil {
					return nil, errtrace.Wrap(err)
				}
				body, err := configString(op, tc, "body")
				if err != nil {
					return nil, errtrace.Wrap(err)
				}
				d.AddTag(name, body)
			default:
				return nil, errtrace.Wrap(invalidArgf(op, "docblock tag must be a string or map, got %T", t))
			}
		}
		return d, nil
	default:
		return nil, errtrace.Wrap(invalidArgf(op, "docblock must be a string or map, got %T", v))
	}
}

func flagsFromConfig(op string, v any) (Flag, error) {
	var names []string
	switch f := v.(type) {
	case nil:
		return 0, nil
	case Flag:
		return f, nil
	case int:
		return Flag(f), nil
	case int64:
		return Flag(f), nil
	case string:
		names = strings.FieldsFunc(f, func(r rune) bool {
			return r == '|' || r == ',' || r == ' '
		})
	default:
		var err error
		if names, err = configStrings(op, "flags", v); err != nil {
			return 0, errtrace.Wrap(err)
		}
	}

	var flags Flag
	for _, name := range names {
		f, err := ParseFlag(name)
		if err != nil {
			return 0, errtrace.Wrap(err)
		}
		flags |= f
	}
	return flags, nil
}

func visibilityFromConfig(op string, c map[string]any) (Visibility, error) {
	s, err := configString(op, c, "visibility")
	if err != nil {
		return 0, errtrace.Wrap(err)
	}
	vis, err := ParseVisibility(s)
	if err != nil {
		return 0, errtrace.Wrap(err)
	}
	return vis, nil
}

// literalFromConfig converts a decoded configuration value
// into a PHP literal.
// A nil value yields a nil *phpvalue.Value.
func literalFromConfig(op string, v any) (*phpvalue.Value, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case *phpvalue.Value:
		return v, nil
	}
	val, err := phpvalue.New(v)
	if err != nil {
		return nil, errtrace.Wrap(invalidArgf(op, "%v", err))
	}
	return val, nil
}

// normalizeConfig returns a copy of the map
// with normalized keys.
func normalizeConfig(cfg map[string]any) map[string]any {
	c := make(map[string]any, len(cfg))
	for k, v := range cfg {
		c[normalizeKey(k)] = v
	}
	return c
}

func normalizeKey(k string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || r == '-' {
			return -1
		}
		return r
	}, strings.ToLower(k))
}

// configAny returns the value of the first of the keys that is present.
func configAny(c map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := c[k]; ok {
			return v, true
		}
	}
	return nil, false
}

func configString(op string, c map[string]any, key string) (string, error) {
	switch v := c[key].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return "", errtrace.Wrap(invalidArgf(op, "%v must be a string, got %T", key, v))
	}
}

func configBool(op string, c map[string]any, key string) (bool, error) {
	switch v := c[key].(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	default:
		return false, errtrace.Wrap(invalidArgf(op, "%v must be a boolean, got %T", key, v))
	}
}

func configStrings(op, key string, v any) ([]string, error) {
	items, ok := configList(v)
	if !ok {
		return nil, errtrace.Wrap(invalidArgf(op, "%v must be a list, got %T", key, v))
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, errtrace.Wrap(invalidArgf(op, "%v must hold strings, got %T", key, item))
		}
		out = append(out, s)
	}
	return out, nil
}

// configList turns any slice into []any.
// Decoders differ in the slice types they produce:
// TOML arrays of tables decode to []map[string]any.
func configList(v any) ([]any, bool) {
	switch v := v.(type) {
	case nil:
		return nil, true
	case []any:
		return v, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}
