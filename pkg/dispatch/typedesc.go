package dispatch

import "strings"

// TypeKind enumerates the shapes a declared parameter type can take.
type TypeKind uint8

const (
	// TypeNone means the parameter declares no type and accepts anything.
	TypeNone TypeKind = iota
	// TypeAny is the explicit "accepts any value" declaration.
	TypeAny
	// TypeArray is the built-in keyed collection type.
	TypeArray
	// TypeNamed is a single named type or interface.
	TypeNamed
	// TypeUnion is satisfied by a value matching any member.
	TypeUnion
	// TypeIntersection is satisfied only by a value matching every member.
	TypeIntersection
)

// TypeDesc is an explicit declared-type descriptor attached to hook parameters
// when they are registered. It replaces runtime type introspection entirely.
type TypeDesc struct {
	Kind    TypeKind
	Name    string     // set for TypeNamed
	Members []TypeDesc // set for TypeUnion and TypeIntersection
}

func None() TypeDesc  { return TypeDesc{Kind: TypeNone} }
func Any() TypeDesc   { return TypeDesc{Kind: TypeAny} }
func Array() TypeDesc { return TypeDesc{Kind: TypeArray} }

// Named declares a single named type or interface, e.g. "string" or "countable".
func Named(name string) TypeDesc { return TypeDesc{Kind: TypeNamed, Name: name} }

// Union declares a type satisfied by any of its members.
func Union(members ...TypeDesc) TypeDesc {
	return TypeDesc{Kind: TypeUnion, Members: members}
}

// Intersection declares a type satisfied only by all of its members at once.
func Intersection(members ...TypeDesc) TypeDesc {
	return TypeDesc{Kind: TypeIntersection, Members: members}
}

// arrayCapable lists the named capabilities a native keyed collection
// satisfies on its own. A parameter declared as any one of them can therefore
// receive a raw map directly.
var arrayCapable = map[string]bool{
	"countable":    true,
	"indexable":    true,
	"iterable":     true,
	"enumerable":   true,
	"serializable": true,
}

// AcceptsArray reports whether a parameter declared with this descriptor can
// legitimately receive a raw keyed payload.
//
// A union accepts the payload when any member does. An intersection accepts it
// only when every member does: the payload must satisfy all constituent
// capabilities at once, not each member's check in isolation.
func (d TypeDesc) AcceptsArray() bool {
	switch d.Kind {
	case TypeNone, TypeAny, TypeArray:
		return true
	case TypeNamed:
		return arrayCapable[strings.ToLower(d.Name)]
	case TypeUnion:
		for _, m := range d.Members {
			if m.AcceptsArray() {
				return true
			}
		}
		return false
	case TypeIntersection:
		if len(d.Members) == 0 {
			return false
		}
		for _, m := range d.Members {
			if !m.AcceptsArray() {
				return false
			}
		}
		return true
	default:
		return false
	}
}
