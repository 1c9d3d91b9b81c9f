package prettyprint_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/janus-lang/janus/pkg/prettyprint"
	"github.com/janus-lang/janus/pkg/semiring"
	"github.com/janus-lang/janus/pkg/syntax"
	"github.com/janus-lang/janus/pkg/typecheck"
	"github.com/janus-lang/janus/pkg/values"
)

func TestErrorMultiplicityErrorRendersOffenderLine(t *testing.T) {
	err := &typecheck.MultiplicityError{
		HasLabel: true,
		Label:    "x",
		Offenders: []typecheck.Offender{
			{Name: syntax.Local(0), Type: values.VUniverse{}, Used: semiring.Many, Available: semiring.One},
		},
	}
	got := prettyprint.RenderPlain(prettyprint.Error(err), 80)
	require.Contains(t, got, "Error: multiplicity error at x")
	require.Contains(t, got, "%0")
	require.Contains(t, got, "used w, available 1")
}

func TestErrorUnknownVarErrorRendersName(t *testing.T) {
	err := &typecheck.UnknownVarError{Name: syntax.Global("y")}
	got := prettyprint.RenderPlain(prettyprint.Error(err), 80)
	require.Equal(t, "Error: unknown variable y", got)
}

func TestErrorCheckErrorRendersTermAndExpected(t *testing.T) {
	err := &typecheck.CheckError{Term: syntax.Universe{}, Expected: values.VMUnitType{}}
	got := prettyprint.RenderPlain(prettyprint.Error(err), 80)
	require.Contains(t, got, "check error")
	require.Contains(t, got, "U")
	require.Contains(t, got, "I")
}

func TestErrorErasureErrorRendersTermAndUsages(t *testing.T) {
	err := &typecheck.ErasureError{Term: syntax.Universe{}, Usage: semiring.Many}
	got := prettyprint.RenderPlain(prettyprint.Error(err), 80)
	require.Contains(t, got, "erasure error")
	require.Contains(t, got, "implying usage w")
	require.Contains(t, got, "expected 0")
}

func TestErrorInferenceErrorRendersExpectedShapeAndActual(t *testing.T) {
	err := &typecheck.InferenceError{ExpectedShape: "a Pi type", Actual: values.VUniverse{}, Term: syntax.Universe{}}
	got := prettyprint.RenderPlain(prettyprint.Error(err), 80)
	require.Contains(t, got, "expected a Pi type")
	require.Contains(t, got, "inferred")
}

func TestErrorFallsBackToPlainTextForUnknownErrorTypes(t *testing.T) {
	err := &typecheck.UnknownVarError{Name: syntax.Global("z")}
	var plain error = &wrappedErr{inner: err}
	got := prettyprint.RenderPlain(prettyprint.Error(plain), 80)
	require.Equal(t, plain.Error(), got)
}

type wrappedErr struct{ inner error }

func (w *wrappedErr) Error() string { return "wrapped: " + w.inner.Error() }
