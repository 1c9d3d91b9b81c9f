package values

import (
	"github.com/pkg/errors"

	"github.com/janus-lang/janus/pkg/syntax"
)

// Eval interprets an inferable term into a value under env. A Free name
// with no binding in env.Names evaluates to the neutral Vfree(name), and
// Bound i resolves to env.Locals.At(i), the value pushed i frames ago.
func Eval(term syntax.ITerm, env Env) Value {
	switch t := term.(type) {
	case syntax.Ann:
		return EvalC(t.Term, env)
	case syntax.Bound:
		return env.Locals.At(t.Index)
	case syntax.Free:
		if g, ok := t.Name.(syntax.Global); ok {
			if v, found := env.Names[string(g)]; found {
				return v
			}
		}
		return Vfree(t.Name)
	case syntax.App:
		fn := Eval(t.Fun, env)
		arg := EvalC(t.Arg, env)
		return Apply(fn, arg)
	case syntax.MPairElim:
		scrutinee := Eval(t.Scrutinee, env)
		body := func(x, y Value) Value { return EvalC(t.Body, env.Push(x).Push(y)) }
		motive := func(z Value) Value { return EvalC(t.Type, env.Push(z)) }
		return evalMPairElim(scrutinee, body, motive)
	case syntax.MUnitElim:
		scrutinee := Eval(t.Scrutinee, env)
		body := EvalC(t.Body, env)
		motive := func(z Value) Value { return EvalC(t.Type, env.Push(z)) }
		return evalMUnitElim(scrutinee, body, motive)
	case syntax.Fst:
		switch p := Eval(t.Pair, env).(type) {
		case VAPair:
			return p.Fst
		case VNeutral:
			return VNeutral{Neutral: NFst{Pair: p.Neutral}}
		default:
			panic(errors.Errorf("values: Fst of non-pair value %T", p))
		}
	case syntax.Snd:
		switch p := Eval(t.Pair, env).(type) {
		case VAPair:
			return p.Snd
		case VNeutral:
			return VNeutral{Neutral: NSnd{Pair: p.Neutral}}
		default:
			panic(errors.Errorf("values: Snd of non-pair value %T", p))
		}
	default:
		panic(errors.Errorf("values: Eval of unknown ITerm %T", term))
	}
}

func evalMPairElim(scrutinee Value, body Closure2, motive Closure1) Value {
	switch s := scrutinee.(type) {
	case VMPair:
		return body(s.Fst, s.Snd)
	case VNeutral:
		return VNeutral{Neutral: NMPairElim{Scrutinee: s.Neutral, Body: body, Type: motive}}
	default:
		panic(errors.Errorf("values: MPairElim of non-pair value %T", scrutinee))
	}
}

func evalMUnitElim(scrutinee Value, body Value, motive Closure1) Value {
	switch s := scrutinee.(type) {
	case VMUnit:
		return body
	case VNeutral:
		return VNeutral{Neutral: NMUnitElim{Scrutinee: s.Neutral, Body: body, Type: motive}}
	default:
		panic(errors.Errorf("values: MUnitElim of non-unit value %T", scrutinee))
	}
}

// EvalC interprets a checkable term into a value under env.
func EvalC(term syntax.CTerm, env Env) Value {
	switch t := term.(type) {
	case syntax.Inf:
		return Eval(t.Term, env)
	case syntax.Lam:
		return VLam{Body: func(v Value) Value { return EvalC(t.Body, env.Push(v)) }}
	case syntax.Universe:
		return VUniverse{}
	case syntax.Pi:
		domain := EvalC(t.Domain, env)
		return VPi{Usage: t.Usage, Domain: domain, Codom: func(v Value) Value { return EvalC(t.Codom, env.Push(v)) }}
	case syntax.MPairType:
		domain := EvalC(t.Domain, env)
		return VMPairType{Usage: t.Usage, Domain: domain, Codom: func(v Value) Value { return EvalC(t.Codom, env.Push(v)) }}
	case syntax.MPair:
		return VMPair{Fst: EvalC(t.Fst, env), Snd: EvalC(t.Snd, env)}
	case syntax.MUnitType:
		return VMUnitType{}
	case syntax.MUnit:
		return VMUnit{}
	case syntax.APairType:
		fst := EvalC(t.Fst, env)
		return VAPairType{Fst: fst, Snd: func(v Value) Value { return EvalC(t.Snd, env.Push(v)) }}
	case syntax.APair:
		return VAPair{Fst: EvalC(t.Fst, env), Snd: EvalC(t.Snd, env)}
	case syntax.AUnitType:
		return VAUnitType{}
	case syntax.AUnit:
		return VAUnit{}
	default:
		panic(errors.Errorf("values: EvalC of unknown CTerm %T", term))
	}
}
