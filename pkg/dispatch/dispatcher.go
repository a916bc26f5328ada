package dispatch

import "context"

// Dispatcher normalizes the three callable shapes into a single invocation
// path: resolve the target, bind its declared parameters against the value
// bag, then call it with the resolved arguments.
type Dispatcher struct {
	registry *Registry
}

// NewDispatcher creates a dispatcher resolving static references through the
// given registry. A nil registry yields an empty one, so static references
// fail with a resolution error rather than a panic.
func NewDispatcher(registry *Registry) *Dispatcher {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Dispatcher{registry: registry}
}

// Registry exposes the dispatcher's handler registry for wiring.
func (d *Dispatcher) Registry() *Registry { return d.registry }

// Invoke calls the callable with parameters bound by name from bag.
func (d *Dispatcher) Invoke(ctx context.Context, c Callable, bag map[string]any) (any, error) {
	fn := c.fn
	params := c.params

	if c.kind == KindStatic {
		reg, err := d.registry.lookup(c.typeName, c.method)
		if err != nil {
			return nil, err
		}
		fn = reg.fn
		if len(params) == 0 {
			params = reg.params
		}
	}

	if fn == nil {
		return nil, &DispatchError{TypeName: c.typeName, Method: c.method, Reason: "callable has no invocable target"}
	}

	args, err := Bind(params, bag)
	if err != nil {
		return nil, err
	}
	return fn(ctx, args)
}
