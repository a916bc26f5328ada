package dispatch

import (
	"fmt"
	"sync"
	"unicode"
	"unicode/utf8"
)

// Registry maps portable type+method references to registered handler
// functions and their declared parameters. Queued hooks resolve through it
// after crossing the serialization boundary.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]registration
}

type registration struct {
	fn     Func
	params []Param
}

// NewRegistry creates an empty handler registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]registration)}
}

// Register associates a type+method reference with a handler function and its
// declared parameters. Method names must be exported: an unexported method is
// not accessible through a portable reference.
func (r *Registry) Register(typeName, method string, fn Func, params ...Param) error {
	if typeName == "" || method == "" || fn == nil {
		return &DispatchError{TypeName: typeName, Method: method, Reason: "type name, method and handler are all required"}
	}
	if !isExported(method) {
		return &DispatchError{TypeName: typeName, Method: method, Reason: "method is not accessible"}
	}

	key := typeName + "@" + method

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[key]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, key)
	}
	r.handlers[key] = registration{fn: fn, params: params}
	return nil
}

// MustRegister is Register that panics on error, for package-level wiring.
func (r *Registry) MustRegister(typeName, method string, fn Func, params ...Param) {
	if err := r.Register(typeName, method, fn, params...); err != nil {
		panic(err)
	}
}

func (r *Registry) lookup(typeName, method string) (registration, error) {
	if !isExported(method) {
		return registration{}, &DispatchError{TypeName: typeName, Method: method, Reason: "method is not accessible"}
	}

	r.mu.RLock()
	reg, ok := r.handlers[typeName+"@"+method]
	r.mu.RUnlock()
	if !ok {
		return registration{}, &DispatchError{TypeName: typeName, Method: method, Reason: "method cannot be resolved by name"}
	}
	return reg, nil
}

func isExported(name string) bool {
	ch, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(ch)
}
