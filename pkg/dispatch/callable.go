package dispatch

import (
	"context"
	"fmt"
	"strings"
)

// Kind identifies one of the three supported callable shapes.
type Kind uint8

const (
	// KindFunc is an inline function.
	KindFunc Kind = iota
	// KindBound is a method bound to a live instance.
	KindBound
	// KindStatic is a type+method reference resolvable by name.
	KindStatic
)

// Func is the invocation form every callable shape normalizes to. Arguments
// arrive as the subset of the named-value bag selected by parameter binding.
type Func func(ctx context.Context, args map[string]any) (any, error)

// Callable is a closed representation of the three supported callable shapes.
// Use NewFunc, Bound or Static to construct one.
type Callable struct {
	kind     Kind
	fn       Func
	receiver any
	typeName string
	method   string
	params   []Param
}

// NewFunc wraps an inline function with its declared parameters.
func NewFunc(fn Func, params ...Param) Callable {
	return Callable{kind: KindFunc, fn: fn, params: params}
}

// Bound wraps a method bound to a specific instance. The callable must be
// invoked on that exact instance, so fn is expected to be a method value
// closed over receiver; the receiver is retained for diagnostics.
func Bound(receiver any, method string, fn Func, params ...Param) Callable {
	return Callable{
		kind:     KindBound,
		fn:       fn,
		receiver: receiver,
		typeName: qualifiedTypeName(receiver),
		method:   method,
		params:   params,
	}
}

// Static references a handler by type and method name. The actual function is
// resolved through a Registry at dispatch time, which is what lets the
// reference survive serialization.
func Static(typeName, method string) Callable {
	return Callable{kind: KindStatic, typeName: typeName, method: method}
}

// ParseRef parses the portable "Type@method" form into a static reference.
func ParseRef(ref string) (Callable, error) {
	typeName, method, ok := strings.Cut(ref, "@")
	if !ok || typeName == "" || method == "" {
		return Callable{}, fmt.Errorf("%w: %q", ErrInvalidRef, ref)
	}
	return Static(typeName, method), nil
}

func (c Callable) Kind() Kind { return c.kind }

// Queueable reports whether the callable may be handed to a deferred-execution
// boundary. Only static references qualify.
func (c Callable) Queueable() bool { return c.kind == KindStatic }

// Ref renders the portable "Type@method" form. Only static references have
// one: a bound reference would lose its instance identity and an inline
// function its captured closure, so both are refused.
func (c Callable) Ref() (string, error) {
	switch c.kind {
	case KindStatic:
		return c.typeName + "@" + c.method, nil
	case KindBound:
		return "", fmt.Errorf("%w: %s@%s", ErrBoundReference, c.typeName, c.method)
	default:
		return "", ErrInlineReference
	}
}

// String returns a diagnostic label for error messages.
func (c Callable) String() string {
	switch c.kind {
	case KindStatic:
		return c.typeName + "@" + c.method
	case KindBound:
		return fmt.Sprintf("%s.%s (bound)", c.typeName, c.method)
	default:
		return "func"
	}
}

func qualifiedTypeName(v any) string {
	return strings.TrimLeft(fmt.Sprintf("%T", v), "*")
}
