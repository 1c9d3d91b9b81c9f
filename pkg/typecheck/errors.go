package typecheck

import (
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/janus-lang/janus/pkg/semiring"
	"github.com/janus-lang/janus/pkg/syntax"
	"github.com/janus-lang/janus/pkg/values"
)

// Offender is one entry of a MultiplicityError's offender list: a name
// whose accumulated usage didn't fit the allowance it was declared
// with.
type Offender struct {
	Name      syntax.Name
	Type      values.Value
	Used      semiring.Q
	Available semiring.Q
}

func (o Offender) String() string {
	return fmt.Sprintf("%s : %s used %s, available %s", o.Name, values.String(o.Type), o.Used, o.Available)
}

// MultiplicityError reports that one or more bound variables have an
// accumulated usage that does not fit their declared usage (used too
// often, or a linear binding left unused). Label, when present,
// names the binder whose discharge the violation was found at.
type MultiplicityError struct {
	Label     string
	HasLabel  bool
	Offenders []Offender
}

func (e *MultiplicityError) Error() string {
	parts := make([]string, len(e.Offenders))
	for i, o := range e.Offenders {
		parts[i] = o.String()
	}
	if e.HasLabel {
		return fmt.Sprintf("multiplicity error at %s: %s", e.Label, strings.Join(parts, "; "))
	}
	return fmt.Sprintf("multiplicity error: %s", strings.Join(parts, "; "))
}

// ErasureError reports that a term was used in a non-erased position
// when only an erased one is allowed — typically a type former found
// where a runtime value was expected.
type ErasureError struct {
	Term  fmt.Stringer
	Usage semiring.Q
}

func (e *ErasureError) Error() string {
	return fmt.Sprintf("erasure error: %s used with relevance implying usage %s, expected Erased", e.Term, e.Usage)
}

// InferenceError reports that a synthesised type did not match what
// the surrounding context expected of it.
type InferenceError struct {
	ExpectedShape string
	Actual        values.Value
	Term          fmt.Stringer
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference error: expected %s, inferred %s, in %s", e.ExpectedShape, values.String(e.Actual), e.Term)
}

// CheckError reports that no checking rule applies to a term against
// the type it's being checked against.
type CheckError struct {
	Expected values.Value
	Term     fmt.Stringer
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("check error: no rule applies to check %s against %s", e.Term, values.String(e.Expected))
}

// UnknownVarError reports a free variable with no binding in the
// typing context.
type UnknownVarError struct {
	Name syntax.Name
}

func (e *UnknownVarError) Error() string {
	return fmt.Sprintf("unknown variable: %s", e.Name)
}

// internalError wraps a checker invariant violation (non-zero usage
// escaping an erased check, inferring the type of a Bound) in a
// distinct, unexported type so callers can tell a bug in the checker
// itself apart from a user-facing ErrorKind. It carries a stack trace
// via github.com/pkg/errors so cmd/janus can print one under --debug.
type internalError struct {
	cause error
}

func (e *internalError) Error() string {
	return e.cause.Error()
}

func (e *internalError) Unwrap() error {
	return e.cause
}

func newInternalError(format string, args ...any) error {
	return &internalError{cause: pkgerrors.Errorf(format, args...)}
}

// IsInternal reports whether err is an internal invariant violation
// rather than one of the user-facing ErrorKinds.
func IsInternal(err error) bool {
	var ie *internalError
	return pkgerrors.As(err, &ie)
}
