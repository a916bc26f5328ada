package dispatch

// Param describes one declared parameter of a hook callable.
type Param struct {
	Name     string
	Type     TypeDesc
	Required bool
	Default  any
}

// Bind resolves declared parameters against a named-value bag.
//
// Only parameters whose name matches a bag key are supplied from the bag;
// unmatched optional parameters fall back to their declared default. A
// required parameter with no matching key and no default fails the binding,
// as does a keyed payload offered to a parameter whose declared type cannot
// accept one.
func Bind(params []Param, bag map[string]any) (map[string]any, error) {
	args := make(map[string]any, len(params))
	for _, p := range params {
		v, ok := bag[p.Name]
		if !ok {
			if p.Required && p.Default == nil {
				return nil, &BindError{Param: p.Name, Reason: "required parameter has no matching value and no default"}
			}
			if p.Default != nil {
				args[p.Name] = p.Default
			}
			continue
		}
		if _, isMap := v.(map[string]any); isMap && !p.Type.AcceptsArray() {
			return nil, &BindError{Param: p.Name, Reason: "declared type cannot receive a keyed payload"}
		}
		args[p.Name] = v
	}
	return args, nil
}
