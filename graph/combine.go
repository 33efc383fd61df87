package graph

// Values is the identity aggregation combinator: it resolves to the
// dependencies' values as a []any in declared order. Out-of-order worker
// completion is invisible to the caller.
func Values(values []any) (any, error) {
	return values, nil
}

// NewGather wraps deps in a composite that resolves to their values in the
// given order.
func NewGather(name string, deps ...*Node) *Node {
	return NewComposite(name, deps, Values)
}

// Strings converts an identity-aggregated value to []string. It returns
// false if the value is not a []any of strings.
func Strings(value any) ([]string, bool) {
	list, ok := value.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, len(list))
	for i, v := range list {
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		out[i] = s
	}
	return out, true
}
