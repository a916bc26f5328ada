// Package dispatch normalizes the callable shapes a state machine definition
// may reference and invokes them with typed, name-bound parameters.
//
// Three shapes are supported: an inline function, a method bound to a live
// instance, and a static type+method reference. Only the static shape has a
// portable "Type@method" string form, which makes it the only shape allowed to
// cross a serialization or deferred-execution boundary. Bound and inline
// callables carry live identity or captured closures that a string cannot.
//
// Parameter types are declared explicitly through TypeDesc descriptors at
// registration time; the package performs no runtime type introspection.
// The Bind function resolves declared parameters by name against a value bag
// and decides whether a parameter may receive a raw keyed payload.
package dispatch
