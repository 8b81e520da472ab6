package codegen

import (
	"fmt"
	"strings"

	"braces.dev/errtrace"
)

// Kind is the kind of a declaration.
//
// All kinds share the same model;
// a kind decides which parts of the model are active.
// Writes to a part that a kind does not support are accepted
// and ignored, and reads report the zero value.
type Kind int

const (
	// KindClass is an ordinary class.
	// Everything is supported.
	KindClass Kind = iota

	// KindTrait is a mix-in.
	// It cannot extend a class, implement interfaces,
	// or be abstract or final.
	KindTrait

	// KindInterface is a contract.
	// It cannot extend a class, be abstract or final,
	// or hold properties.
	// Its implemented interfaces render as the interfaces it extends,
	// and its methods have no bodies.
	KindInterface
)

var _kindKeywords = map[Kind]string{
	KindClass:     "class",
	KindTrait:     "trait",
	KindInterface: "interface",
}

// Keyword returns the PHP keyword that introduces this kind.
func (k Kind) Keyword() string {
	if kw, ok := _kindKeywords[k]; ok {
		return kw
	}
	return "class"
}

func (k Kind) String() string {
	if kw, ok := _kindKeywords[k]; ok {
		return kw
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind parses the name of a kind: "class", "trait", or "interface".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "class", "":
		return KindClass, nil
	case "trait":
		return KindTrait, nil
	case "interface":
		return KindInterface, nil
	}
	return 0, errtrace.Wrap(&InvalidArgumentError{
		Op:     "ParseKind",
		Reason: fmt.Sprintf("unknown declaration kind %q", s),
	})
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return errtrace.Wrap(err)
	}
	*k = v
	return nil
}

// CanExtend reports whether declarations of this kind
// may extend a class.
func (k Kind) CanExtend() bool { return k == KindClass }

// CanImplement reports whether declarations of this kind
// may list interfaces.
// Classes implement them; interfaces extend them.
func (k Kind) CanImplement() bool { return k == KindClass || k == KindInterface }

// HasModifiers reports whether declarations of this kind
// may carry flags, and whether their methods may be abstract or final.
func (k Kind) HasModifiers() bool { return k == KindClass }

// HasProperties reports whether declarations of this kind
// may hold properties.
func (k Kind) HasProperties() bool { return k != KindInterface }

// HasMethodBodies reports whether methods of this kind have bodies.
func (k Kind) HasMethodBodies() bool { return k != KindInterface }

// contractKeyword is the keyword before the list of interfaces.
func (k Kind) contractKeyword() string {
	if k == KindInterface {
		return "extends"
	}
	return "implements"
}

// Flag is a declaration modifier.
type Flag uint

// Declaration flags.
// Only FlagAbstract and FlagFinal affect generated code.
const (
	FlagAbstract Flag = 1 << iota
	FlagFinal
	FlagImplementsInterfaces
	FlagObjectType
)

var _flagNames = []struct {
	flag Flag
	name string
}{
	{FlagAbstract, "abstract"},
	{FlagFinal, "final"},
	{FlagImplementsInterfaces, "implements"},
	{FlagObjectType, "object"},
}

// ParseFlag parses the name of a single flag.
func ParseFlag(s string) (Flag, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, f := range _flagNames {
		if f.name == s {
			return f.flag, nil
		}
	}
	return 0, errtrace.Wrap(&InvalidArgumentError{
		Op:     "ParseFlag",
		Reason: fmt.Sprintf("unknown flag %q", s),
	})
}

func (f Flag) String() string {
	var names []string
	for _, fn := range _flagNames {
		if f&fn.flag != 0 {
			names = append(names, fn.name)
			f &^= fn.flag
		}
	}
	if f != 0 {
		names = append(names, fmt.Sprintf("0x%x", uint(f)))
	}
	if len(names) == 0 {
		return "0"
	}
	return strings.Join(names, "|")
}

// Visibility is the visibility of a member.
type Visibility int

// Supported visibilities.
// The zero value is public.
const (
	Public Visibility = iota
	Protected
	Private
)

func (v Visibility) String() string {
	switch v {
	case Protected:
		return "protected"
	case Private:
		return "private"
	default:
		return "public"
	}
}

// ParseVisibility parses "public", "protected", or "private".
// The empty string is public.
func ParseVisibility(s string) (Visibility, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "public", "":
		return Public, nil
	case "protected":
		return Protected, nil
	case "private":
		return Private, nil
	}
	return 0, errtrace.Wrap(&InvalidArgumentError{
		Op:     "ParseVisibility",
		Reason: fmt.Sprintf("unknown visibility %q", s),
	})
}
