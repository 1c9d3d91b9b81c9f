package prettyprint

import "github.com/janus-lang/janus/pkg/values"

// Value renders a normal-form Value by quoting it back to syntax at
// depth 0 and delegating to CTerm — mirrors values.String's own
// "quote once, render once" discipline, just routed through the
// structured Doc renderer instead of a flat Sprintf.
func Value(v values.Value) Doc {
	return CTerm(values.Quote0(v))
}
