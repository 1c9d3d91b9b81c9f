package typecheck_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/janus-lang/janus/pkg/janusctx"
	"github.com/janus-lang/janus/pkg/semiring"
	"github.com/janus-lang/janus/pkg/syntax"
	"github.com/janus-lang/janus/pkg/typecheck"
	"github.com/janus-lang/janus/pkg/values"
)

// baseContext builds Γ₀ = assume (0 a : U) (1 x : a), the setup shared
// by spec.md §8's concrete scenarios.
func baseContext(t *testing.T) janusctx.Context {
	t.Helper()
	ctx := janusctx.NewContext()
	aDef := values.VNeutral{Neutral: values.NFree{Name: syntax.Global("a")}}
	ctx = ctx.ExtendGlobal("a", semiring.Zero, values.VUniverse{}, aDef)
	// x : a — a's own value (a neutral reference to the global), not
	// a's type, is what "x has type a" means here.
	ctx = ctx.ExtendGlobal("x", semiring.One, aDef, values.VNeutral{Neutral: values.NFree{Name: syntax.Global("x")}})
	return ctx
}

// identityPi builds (0 x : U) -> (1 y : x) -> x, the usage-annotated
// identity-like function type from scenario 1/2/6.
func identityPi() syntax.CTerm {
	return syntax.Pi{
		Usage:  semiring.Zero,
		Domain: syntax.Universe{},
		Codom: syntax.Pi{
			Usage:  semiring.One,
			Domain: syntax.Inf{Term: syntax.Bound{Index: 0}},
			Codom:  syntax.Inf{Term: syntax.Bound{Index: 1}},
		},
	}
}

func identityAnnotated() syntax.ITerm {
	// (\x. \y. y) : (0 x:U) -> (1 y:x) -> x
	body := syntax.Lam{Body: syntax.Lam{Body: syntax.Inf{Term: syntax.Bound{Index: 0}}}}
	return syntax.Ann{Term: body, Type: identityPi()}
}

func TestScenario1ApplicationSucceeds(t *testing.T) {
	ctx := baseContext(t)
	// (\x. \y. y : ...) a x
	term := syntax.App{
		Fun: syntax.App{
			Fun: identityAnnotated(),
			Arg: syntax.Inf{Term: syntax.Free{Name: syntax.Global("a")}},
		},
		Arg: syntax.Inf{Term: syntax.Free{Name: syntax.Global("x")}},
	}
	ty, err := typecheck.Infer(ctx, semiring.One, term)
	require.NoError(t, err)
	require.Equal(t, "a", values.String(ty))
}

func TestScenario3UnknownVariable(t *testing.T) {
	ctx := janusctx.NewContext()
	ctx = ctx.ExtendGlobal("a", semiring.Zero, values.VUniverse{}, values.VNeutral{Neutral: values.NFree{Name: syntax.Global("a")}})
	// assume (1 x : b) — b is never bound.
	term := syntax.Ann{
		Term: syntax.Inf{Term: syntax.Free{Name: syntax.Global("b")}},
		Type: syntax.Universe{},
	}
	_, err := typecheck.Infer(ctx, semiring.One, term)
	var unknownErr *typecheck.UnknownVarError
	require.ErrorAs(t, err, &unknownErr)
	require.Equal(t, syntax.Global("b"), unknownErr.Name)
}

func TestMultiplicativePairScalesFirstComponentByContainerUsage(t *testing.T) {
	ctx := janusctx.NewContext()
	aDef := values.VNeutral{Neutral: values.NFree{Name: syntax.Global("a")}}
	ctx = ctx.ExtendGlobal("a", semiring.Zero, values.VUniverse{}, aDef)
	ctx = ctx.ExtendGlobal("x", semiring.One, aDef, values.VNeutral{Neutral: values.NFree{Name: syntax.Global("x")}})
	ctx = ctx.ExtendGlobal("y", semiring.One, aDef, values.VNeutral{Neutral: values.NFree{Name: syntax.Global("y")}})

	// <x, y> : (_ : a) ⊗[w] a — the pair itself is declared reusable
	// (Many), so its first component's usage is scaled by Many even
	// though x is only declared usage One: a multiplicity violation.
	pairType := syntax.MPairType{Usage: semiring.Many, Domain: syntax.Inf{Term: syntax.Free{Name: syntax.Global("a")}}, Codom: syntax.Inf{Term: syntax.Free{Name: syntax.Global("a")}}}
	pair := syntax.MPair{
		Fst: syntax.Inf{Term: syntax.Free{Name: syntax.Global("x")}},
		Snd: syntax.Inf{Term: syntax.Free{Name: syntax.Global("y")}},
	}
	term := syntax.Ann{Term: pair, Type: pairType}
	_, err := typecheck.Infer(ctx, semiring.One, term)
	var multErr *typecheck.MultiplicityError
	require.ErrorAs(t, err, &multErr)
	require.Len(t, multErr.Offenders, 1)
	require.Equal(t, syntax.Global("x"), multErr.Offenders[0].Name)
}

func TestScenario6TypeOfIdAppliedToA(t *testing.T) {
	ctx := janusctx.NewContext()
	ctx = ctx.ExtendGlobal("A", semiring.Zero, values.VUniverse{}, values.VNeutral{Neutral: values.NFree{Name: syntax.Global("A")}})
	idVal, err := typecheck.Infer(ctx, semiring.Zero, identityAnnotated())
	require.NoError(t, err)
	ctx = ctx.ExtendGlobal("id", semiring.Many, idVal, values.EvalC(syntax.Inf{Term: identityAnnotated()}, ctx.Env()))

	term := syntax.App{Fun: syntax.Free{Name: syntax.Global("id")}, Arg: syntax.Inf{Term: syntax.Free{Name: syntax.Global("A")}}}
	ty, err := typecheck.Infer(ctx, semiring.Zero, term)
	require.NoError(t, err)

	pi, ok := ty.(values.VPi)
	require.True(t, ok)
	require.Equal(t, semiring.One, pi.Usage)
}

func TestErasedSoundnessTypingATypeYieldsNoUsageObligation(t *testing.T) {
	ctx := baseContext(t)
	// Checking `a` (a reference to a Zero-usage global) as a type must
	// not force the caller to have consumed it.
	term := syntax.Ann{Term: syntax.Inf{Term: syntax.Free{Name: syntax.Global("a")}}, Type: syntax.Universe{}}
	_, err := typecheck.Infer(ctx, semiring.Zero, term)
	require.NoError(t, err)
}

func TestUnusedLinearBindingFailsMultiplicity(t *testing.T) {
	ctx := baseContext(t)
	// \_. x : (1 _:a) -> a ignores its own bound argument entirely
	// (the body refers to the outer global x instead), so the freshly
	// minted local never gets used and fails its own discharge.
	pi := syntax.Pi{Usage: semiring.One, Domain: syntax.Inf{Term: syntax.Free{Name: syntax.Global("a")}}, Codom: syntax.Inf{Term: syntax.Free{Name: syntax.Global("a")}}}
	lam := syntax.Lam{Body: syntax.Inf{Term: syntax.Free{Name: syntax.Global("x")}}}
	term := syntax.Ann{Term: lam, Type: pi}
	_, err := typecheck.Infer(ctx, semiring.One, term)
	var multErr *typecheck.MultiplicityError
	require.ErrorAs(t, err, &multErr)
}

func TestLambdaCheckSucceedsWhenArgumentUsedExactlyOnce(t *testing.T) {
	ctx := baseContext(t)
	pi := syntax.Pi{Usage: semiring.One, Domain: syntax.Inf{Term: syntax.Free{Name: syntax.Global("a")}}, Codom: syntax.Inf{Term: syntax.Free{Name: syntax.Global("a")}}}
	lam := syntax.Lam{Body: syntax.Inf{Term: syntax.Bound{Index: 0}}}
	term := syntax.Ann{Term: lam, Type: pi}
	// The term is the annotated lambda itself, so its inferred type is
	// the Pi it was checked against — not the codomain a call would
	// instantiate to.
	ty, err := typecheck.Infer(ctx, semiring.One, term)
	require.NoError(t, err)
	piTy, ok := ty.(values.VPi)
	require.True(t, ok)
	require.Equal(t, semiring.One, piTy.Usage)
}

func TestDependentTypeFormerRejectedAtPresentRelevance(t *testing.T) {
	ctx := baseContext(t)
	// A Pi type used in a runtime (Present) position is an erasure error.
	pi := syntax.Pi{Usage: semiring.Zero, Domain: syntax.Universe{}, Codom: syntax.Universe{}}
	term := syntax.Ann{Term: pi, Type: syntax.Universe{}}
	_, err := typecheck.Infer(ctx, semiring.One, term)
	var erasureErr *typecheck.ErasureError
	require.ErrorAs(t, err, &erasureErr)
}

func TestAppOnNonFunctionIsInferenceError(t *testing.T) {
	ctx := baseContext(t)
	term := syntax.App{Fun: syntax.Free{Name: syntax.Global("x")}, Arg: syntax.Inf{Term: syntax.Free{Name: syntax.Global("a")}}}
	_, err := typecheck.Infer(ctx, semiring.Zero, term)
	var inferErr *typecheck.InferenceError
	require.ErrorAs(t, err, &inferErr)
}

func TestAdditivePairChecksBothProjectionsIndependently(t *testing.T) {
	ctx := baseContext(t)
	// <U, MUnit> : U & U — both slots are declared as U, so Fst (a type)
	// checks fine but Snd (a value, not a type) does not.
	apairType := syntax.APairType{Fst: syntax.Universe{}, Snd: syntax.Universe{}}
	apair := syntax.APair{Fst: syntax.Universe{}, Snd: syntax.MUnit{}}
	term := syntax.Ann{Term: apair, Type: apairType}
	_, err := typecheck.Infer(ctx, semiring.Zero, term)
	var checkErr *typecheck.CheckError
	require.ErrorAs(t, err, &checkErr)
}

func TestAdditivePairCombinesUsageViaLub(t *testing.T) {
	ctx := baseContext(t)
	// <x, x> : a & a, both projections referencing the same Present-usage
	// global: the combined usage is Lub(One, One) = One, not Add(One, One)
	// = Many, so this must check successfully at relevance One.
	apairType := syntax.APairType{Fst: syntax.Inf{Term: syntax.Free{Name: syntax.Global("a")}}, Snd: syntax.Inf{Term: syntax.Free{Name: syntax.Global("a")}}}
	apair := syntax.APair{Fst: syntax.Inf{Term: syntax.Free{Name: syntax.Global("x")}}, Snd: syntax.Inf{Term: syntax.Free{Name: syntax.Global("x")}}}
	term := syntax.Ann{Term: apair, Type: apairType}
	_, err := typecheck.Infer(ctx, semiring.One, term)
	require.NoError(t, err)
}

// TestAdditivePairTypeSndDependsOnFstValue exercises the genuinely
// dependent form of &, `(x : U) & x` (a "sigma of types" pair) — Snd's
// Bound(0) refers to whatever type value Fst's slot is given, the same
// dependent-codomain shape Pi/MPairType already have.
func TestAdditivePairTypeSndDependsOnFstValue(t *testing.T) {
	ctx := baseContext(t)
	apairType := syntax.APairType{Fst: syntax.Universe{}, Snd: syntax.Inf{Term: syntax.Bound{Index: 0}}}
	require.NoError(t, typecheck.CheckIsType(ctx, apairType))

	// Fst's value is I (a type); Snd's expected type is therefore I
	// itself, so the second component must be a value of type I.
	apair := syntax.APair{Fst: syntax.MUnitType{}, Snd: syntax.MUnit{}}
	term := syntax.Ann{Term: apair, Type: apairType}
	_, err := typecheck.Infer(ctx, semiring.Zero, term)
	require.NoError(t, err)
}

// TestAdditivePairTypeSndDependsOnFstValueRejectsMismatch confirms the
// dependency is actually enforced, not silently ignored: giving a
// second component that doesn't match the first component's own value
// (rather than some other fixed type) still fails.
func TestAdditivePairTypeSndDependsOnFstValueRejectsMismatch(t *testing.T) {
	ctx := baseContext(t)
	apairType := syntax.APairType{Fst: syntax.Universe{}, Snd: syntax.Inf{Term: syntax.Bound{Index: 0}}}
	apair := syntax.APair{Fst: syntax.MUnitType{}, Snd: syntax.Universe{}}
	term := syntax.Ann{Term: apair, Type: apairType}
	_, err := typecheck.Infer(ctx, semiring.Zero, term)
	var checkErr *typecheck.CheckError
	require.ErrorAs(t, err, &checkErr)
}

func TestMultiplicativePairZeroUsageChecksDomainErased(t *testing.T) {
	ctx := baseContext(t)
	pairType := syntax.MPairType{Usage: semiring.Zero, Domain: syntax.Universe{}, Codom: syntax.MUnitType{}}
	pair := syntax.MPair{Fst: syntax.Universe{}, Snd: syntax.MUnit{}}
	term := syntax.Ann{Term: pair, Type: pairType}
	_, err := typecheck.Infer(ctx, semiring.Zero, term)
	require.NoError(t, err)
}
