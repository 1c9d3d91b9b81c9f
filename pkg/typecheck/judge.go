// Package typecheck implements Janus's bidirectional, usage-counting
// typing judgment: iType (inference) and cType (checking) mutually
// recurse over ITerm/CTerm, threading a janusctx.Usage map that
// Infer — the public iType0 entry point — scales and validates against
// the declared allowances in the context.
package typecheck

import (
	"github.com/janus-lang/janus/pkg/janusctx"
	"github.com/janus-lang/janus/pkg/semiring"
	"github.com/janus-lang/janus/pkg/syntax"
	"github.com/janus-lang/janus/pkg/values"
)

// Infer is iType0(Γ, r, e): the primary entry point into the checker. r is
// the usage the caller intends to consume e at (e.g. the declared
// usage of a `let`, or One for a bare `:type`/eval expression). It
// projects r to a relevance for the internal judgment, scales the
// resulting usage by r, and validates the scaled usage against every
// binding's declared allowance before returning e's type.
func Infer(ctx janusctx.Context, r semiring.Q, e syntax.ITerm) (values.Value, error) {
	qs, ty, err := iType(semiring.Relevance(r), ctx, e)
	if err != nil {
		return nil, err
	}
	scaled := janusctx.Scale(r, qs)
	if err := checkMultiplicity(ctx.Types, "", scaled); err != nil {
		return nil, err
	}
	return ty, nil
}

// CheckIsType validates that ty is well-formed as a type in ctx — the
// same erased check against Universe that Ann performs on its own Type
// field before evaluating it. The `assume` REPL statement uses this to
// validate a declared binding's type before adding the binding as an
// unassigned global with no definition of its own.
func CheckIsType(ctx janusctx.Context, ty syntax.CTerm) error {
	return checkErased(ctx, ty, values.VUniverse{})
}

// checkErased runs term ⇐ expected with relevance Erased against ctx's
// erased shadow (§4.5.2), and asserts the resulting usage is entirely
// Zero — a non-Zero usage escaping an erased check is a checker bug,
// not a user error, so it's reported as an internalError.
func checkErased(ctx janusctx.Context, term syntax.CTerm, expected values.Value) error {
	qs, err := cType(semiring.Erased, ctx.Forget(), term, expected)
	if err != nil {
		return err
	}
	if !qs.IsAllZero() {
		return newInternalError("typecheck: erased check of %s produced non-zero usage", term)
	}
	return nil
}

// checkDependentFormer implements the shared body of Pi/MPairType/
// APairType checking against 𝘜: check the domain, then introduce a fresh local
// of usage Zero bound to it and check the codomain under it — both in
// the erased context, since only r = Erased reaches this point.
func checkDependentFormer(ctx janusctx.Context, domain, codom syntax.CTerm) error {
	if err := checkErased(ctx, domain, values.VUniverse{}); err != nil {
		return err
	}
	domainVal := values.EvalC(domain, ctx.Env())
	x := ctx.NextLocal()
	ctxX := ctx.Extend(janusctx.Binding{Name: x, Usage: semiring.Zero, Type: domainVal})
	codomOpened := values.SubstCTerm(0, syntax.Free{Name: x}, codom)
	return checkErased(ctxX, codomOpened, values.VUniverse{})
}

// discharge verifies every binding's accumulated usage in u fits its
// declared allowance, then removes those entries from u. label
// identifies the binder for diagnostics (e.g. "lambda",
// "multiplicative pair elimination").
func discharge(u janusctx.Usage, label string, bindings ...janusctx.Binding) (janusctx.Usage, error) {
	if err := checkMultiplicityFor(label, bindings, u); err != nil {
		return nil, err
	}
	out := u
	for _, b := range bindings {
		out = out.Without(b.Name)
	}
	return out, nil
}

func checkMultiplicityFor(label string, bindings []janusctx.Binding, u janusctx.Usage) error {
	var offenders []Offender
	for _, b := range bindings {
		used := u.Get(b.Name)
		if !semiring.FitsIn(used, b.Usage) {
			offenders = append(offenders, Offender{Name: b.Name, Type: b.Type, Used: used, Available: b.Usage})
		}
	}
	if len(offenders) > 0 {
		return &MultiplicityError{Label: label, HasLabel: label != "", Offenders: offenders}
	}
	return nil
}

// checkMultiplicity is the top-level form used by Infer: it checks
// every entry of qs (not just a fixed set of just-discharged bindings)
// against types, since at the top of iType0 every surviving usage
// entry refers to some still-live binding in the context.
func checkMultiplicity(types janusctx.TypeEnv, label string, qs janusctx.Usage) error {
	var offenders []Offender
	for _, name := range qs.SortedKeys() {
		used := qs.Get(name)
		b, ok := types.Find(name)
		if !ok {
			return newInternalError("typecheck: checkMultiplicity: %s has no binding in context", name)
		}
		if !semiring.FitsIn(used, b.Usage) {
			offenders = append(offenders, Offender{Name: name, Type: b.Type, Used: used, Available: b.Usage})
		}
	}
	if len(offenders) > 0 {
		return &MultiplicityError{Label: label, HasLabel: label != "", Offenders: offenders}
	}
	return nil
}

// iType is the internal inference judgment iType : R → ITerm → (Usage, Type).
func iType(r semiring.R, ctx janusctx.Context, term syntax.ITerm) (janusctx.Usage, values.Value, error) {
	switch t := term.(type) {
	case syntax.Ann:
		if err := checkErased(ctx, t.Type, values.VUniverse{}); err != nil {
			return nil, nil, err
		}
		typeVal := values.EvalC(t.Type, ctx.Env())
		qs, err := cType(r, ctx, t.Term, typeVal)
		if err != nil {
			return nil, nil, err
		}
		return qs, typeVal, nil

	case syntax.Free:
		b, ok := ctx.Lookup(t.Name)
		if !ok {
			return nil, nil, &UnknownVarError{Name: t.Name}
		}
		return janusctx.Single(t.Name, semiring.Extend(r)), b.Type, nil

	case syntax.App:
		qs1, t1, err := iType(r, ctx, t.Fun)
		if err != nil {
			return nil, nil, err
		}
		pi, ok := t1.(values.VPi)
		if !ok {
			return nil, nil, &InferenceError{ExpectedShape: "Pi", Actual: t1, Term: t.Fun}
		}
		s := semiring.Mul(pi.Usage, semiring.Extend(r))
		if s == semiring.Zero {
			if err := checkErased(ctx, t.Arg, pi.Domain); err != nil {
				return nil, nil, err
			}
			arg := values.EvalC(t.Arg, ctx.Env())
			return qs1, pi.Codom(arg), nil
		}
		qs2, err := cType(semiring.Present, ctx, t.Arg, pi.Domain)
		if err != nil {
			return nil, nil, err
		}
		arg := values.EvalC(t.Arg, ctx.Env())
		return janusctx.Combine(qs1, janusctx.Scale(s, qs2)), pi.Codom(arg), nil

	case syntax.MPairElim:
		qsL, tL, err := iType(r, ctx, t.Scrutinee)
		if err != nil {
			return nil, nil, err
		}
		pairTy, ok := tL.(values.VMPairType)
		if !ok {
			return nil, nil, &InferenceError{ExpectedShape: "MPairType", Actual: tL, Term: t.Scrutinee}
		}

		z := ctx.NextLocal()
		ctxZ := ctx.Extend(janusctx.Binding{Name: z, Usage: semiring.Zero, Type: tL})
		retOpenedZ := values.SubstCTerm(0, syntax.Free{Name: z}, t.Type)
		if err := checkErased(ctxZ, retOpenedZ, values.VUniverse{}); err != nil {
			return nil, nil, err
		}

		x := ctx.NextLocal()
		xUsage := semiring.Mul(pairTy.Usage, semiring.Extend(r))
		xVal := values.Vfree(x)
		ctx1 := ctx.Extend(janusctx.Binding{Name: x, Usage: xUsage, Type: pairTy.Domain})

		y := ctx1.NextLocal()
		yUsage := semiring.Extend(r)
		ctxXY := ctx1.Extend(janusctx.Binding{Name: y, Usage: yUsage, Type: pairTy.Codom(xVal)})

		bodyOpened := values.SubstCTerm(1, syntax.Free{Name: x}, values.SubstCTerm(0, syntax.Free{Name: y}, t.Body))

		pairReplacement := syntax.Ann{
			Term: syntax.MPair{Fst: syntax.Inf{Term: syntax.Free{Name: x}}, Snd: syntax.Inf{Term: syntax.Free{Name: y}}},
			Type: values.Quote(0, tL),
		}
		expectedBodyCTerm := values.SubstCTerm(0, pairReplacement, t.Type)
		expectedBodyType := values.EvalC(expectedBodyCTerm, ctx.Env())

		qsBody, err := cType(r, ctxXY, bodyOpened, expectedBodyType)
		if err != nil {
			return nil, nil, err
		}

		combined := janusctx.Combine(qsL, qsBody)
		discharged, err := discharge(combined, "multiplicative pair elimination",
			janusctx.Binding{Name: x, Usage: xUsage, Type: pairTy.Domain},
			janusctx.Binding{Name: y, Usage: yUsage, Type: pairTy.Codom(xVal)},
		)
		if err != nil {
			return nil, nil, err
		}

		resultCTerm := values.SubstCTerm(0, t.Scrutinee, t.Type)
		resultType := values.EvalC(resultCTerm, ctx.Env())
		return discharged, resultType, nil

	case syntax.MUnitElim:
		qsL, tL, err := iType(r, ctx, t.Scrutinee)
		if err != nil {
			return nil, nil, err
		}
		if _, ok := tL.(values.VMUnitType); !ok {
			return nil, nil, &InferenceError{ExpectedShape: "MUnitType", Actual: tL, Term: t.Scrutinee}
		}

		z := ctx.NextLocal()
		ctxZ := ctx.Extend(janusctx.Binding{Name: z, Usage: semiring.Zero, Type: tL})
		retOpenedZ := values.SubstCTerm(0, syntax.Free{Name: z}, t.Type)
		if err := checkErased(ctxZ, retOpenedZ, values.VUniverse{}); err != nil {
			return nil, nil, err
		}

		unitReplacement := syntax.Ann{Term: syntax.MUnit{}, Type: syntax.MUnitType{}}
		expectedBodyCTerm := values.SubstCTerm(0, unitReplacement, t.Type)
		expectedBodyType := values.EvalC(expectedBodyCTerm, ctx.Env())

		qsBody, err := cType(r, ctx, t.Body, expectedBodyType)
		if err != nil {
			return nil, nil, err
		}

		resultCTerm := values.SubstCTerm(0, t.Scrutinee, t.Type)
		resultType := values.EvalC(resultCTerm, ctx.Env())
		return janusctx.Combine(qsL, qsBody), resultType, nil

	case syntax.Fst:
		qs, tPair, err := iType(r, ctx, t.Pair)
		if err != nil {
			return nil, nil, err
		}
		apair, ok := tPair.(values.VAPairType)
		if !ok {
			return nil, nil, &InferenceError{ExpectedShape: "APairType", Actual: tPair, Term: t.Pair}
		}
		return qs, apair.Fst, nil

	case syntax.Snd:
		qs, tPair, err := iType(r, ctx, t.Pair)
		if err != nil {
			return nil, nil, err
		}
		apair, ok := tPair.(values.VAPairType)
		if !ok {
			return nil, nil, &InferenceError{ExpectedShape: "APairType", Actual: tPair, Term: t.Pair}
		}
		fstVal := values.Eval(syntax.Fst{Pair: t.Pair}, ctx.Env())
		return qs, apair.Snd(fstVal), nil

	case syntax.Bound:
		return nil, nil, newInternalError("typecheck: encountered Bound(%d) during inference; binders must be opened before checking", t.Index)

	default:
		return nil, nil, newInternalError("typecheck: iType: unhandled ITerm %T", term)
	}
}

// cType is the internal checking judgment cType : R → CTerm → Type → Usage.
func cType(r semiring.R, ctx janusctx.Context, term syntax.CTerm, expected values.Value) (janusctx.Usage, error) {
	switch t := term.(type) {
	case syntax.Inf:
		qs, actual, err := iType(r, ctx, t.Term)
		if err != nil {
			return nil, err
		}
		if !syntax.EqCTerm(values.Quote0(expected), values.Quote0(actual)) {
			return nil, &InferenceError{ExpectedShape: values.String(expected), Actual: actual, Term: t.Term}
		}
		return qs, nil

	case syntax.Lam:
		pi, ok := expected.(values.VPi)
		if !ok {
			return nil, &CheckError{Expected: expected, Term: term}
		}
		x := ctx.NextLocal()
		xUsage := semiring.Mul(pi.Usage, semiring.Extend(r))
		ctxX := ctx.Extend(janusctx.Binding{Name: x, Usage: xUsage, Type: pi.Domain})
		bodyOpened := values.SubstCTerm(0, syntax.Free{Name: x}, t.Body)
		expectedBody := pi.Codom(values.Vfree(x))
		qs, err := cType(r, ctxX, bodyOpened, expectedBody)
		if err != nil {
			return nil, err
		}
		return discharge(qs, "lambda", janusctx.Binding{Name: x, Usage: xUsage, Type: pi.Domain})

	case syntax.Universe:
		if _, ok := expected.(values.VUniverse); !ok {
			return nil, &CheckError{Expected: expected, Term: term}
		}
		if r != semiring.Erased {
			return nil, &ErasureError{Term: term, Usage: semiring.Extend(r)}
		}
		return nil, nil

	case syntax.MUnitType:
		if _, ok := expected.(values.VUniverse); !ok {
			return nil, &CheckError{Expected: expected, Term: term}
		}
		if r != semiring.Erased {
			return nil, &ErasureError{Term: term, Usage: semiring.Extend(r)}
		}
		return nil, nil

	case syntax.AUnitType:
		if _, ok := expected.(values.VUniverse); !ok {
			return nil, &CheckError{Expected: expected, Term: term}
		}
		if r != semiring.Erased {
			return nil, &ErasureError{Term: term, Usage: semiring.Extend(r)}
		}
		return nil, nil

	case syntax.Pi:
		if _, ok := expected.(values.VUniverse); !ok {
			return nil, &CheckError{Expected: expected, Term: term}
		}
		if r != semiring.Erased {
			return nil, &ErasureError{Term: term, Usage: semiring.Extend(r)}
		}
		return nil, checkDependentFormer(ctx, t.Domain, t.Codom)

	case syntax.MPairType:
		if _, ok := expected.(values.VUniverse); !ok {
			return nil, &CheckError{Expected: expected, Term: term}
		}
		if r != semiring.Erased {
			return nil, &ErasureError{Term: term, Usage: semiring.Extend(r)}
		}
		return nil, checkDependentFormer(ctx, t.Domain, t.Codom)

	case syntax.APairType:
		if _, ok := expected.(values.VUniverse); !ok {
			return nil, &CheckError{Expected: expected, Term: term}
		}
		if r != semiring.Erased {
			return nil, &ErasureError{Term: term, Usage: semiring.Extend(r)}
		}
		return nil, checkDependentFormer(ctx, t.Fst, t.Snd)

	case syntax.MPair:
		pairTy, ok := expected.(values.VMPairType)
		if !ok {
			return nil, &CheckError{Expected: expected, Term: term}
		}
		s := semiring.Mul(pairTy.Usage, semiring.Extend(r))
		if s == semiring.Zero {
			if err := checkErased(ctx, t.Fst, pairTy.Domain); err != nil {
				return nil, err
			}
			fstVal := values.EvalC(t.Fst, ctx.Env())
			qs2, err := cType(r, ctx, t.Snd, pairTy.Codom(fstVal))
			if err != nil {
				return nil, err
			}
			return qs2, nil
		}
		qs1, err := cType(semiring.Present, ctx, t.Fst, pairTy.Domain)
		if err != nil {
			return nil, err
		}
		fstVal := values.EvalC(t.Fst, ctx.Env())
		qs2, err := cType(r, ctx, t.Snd, pairTy.Codom(fstVal))
		if err != nil {
			return nil, err
		}
		return janusctx.Combine(qs2, janusctx.Scale(s, qs1)), nil

	case syntax.MUnit:
		if _, ok := expected.(values.VMUnitType); !ok {
			return nil, &CheckError{Expected: expected, Term: term}
		}
		return nil, nil

	case syntax.APair:
		apairTy, ok := expected.(values.VAPairType)
		if !ok {
			return nil, &CheckError{Expected: expected, Term: term}
		}
		qs1, err := cType(r, ctx, t.Fst, apairTy.Fst)
		if err != nil {
			return nil, err
		}
		fstVal := values.EvalC(t.Fst, ctx.Env())
		qs2, err := cType(r, ctx, t.Snd, apairTy.Snd(fstVal))
		if err != nil {
			return nil, err
		}
		return janusctx.Lub(qs1, qs2), nil

	case syntax.AUnit:
		if _, ok := expected.(values.VAUnitType); !ok {
			return nil, &CheckError{Expected: expected, Term: term}
		}
		return nil, nil

	default:
		return nil, &CheckError{Expected: expected, Term: term}
	}
}
