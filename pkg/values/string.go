package values

// String renders a value by quoting it back to syntax at depth 0 and
// delegating to the term's own Stringer — keeps exactly one rendering
// implementation (syntax's) rather than a second ad-hoc one here.
func String(v Value) string {
	return Quote0(v).String()
}
