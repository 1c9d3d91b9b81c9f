package values

import (
	"github.com/pkg/errors"

	"github.com/janus-lang/janus/pkg/syntax"
)

// Quote is the evaluator's inverse: given the number of binders already
// passed (the next fresh quote level to mint), it applies every closure
// in v to a fresh Vfree(syntax.Quote(n)) marker and rebuilds syntax from
// the result. Two values are definitionally equal iff their Quote(0)
// forms are α-equal (EqCTerm).
func Quote(n int, v Value) syntax.CTerm {
	switch t := v.(type) {
	case VUniverse:
		return syntax.Universe{}
	case VPi:
		return syntax.Pi{
			Usage:  t.Usage,
			Domain: Quote(n, t.Domain),
			Codom:  Quote(n+1, t.Codom(Vfree(syntax.Quote(n)))),
		}
	case VMPairType:
		return syntax.MPairType{
			Usage:  t.Usage,
			Domain: Quote(n, t.Domain),
			Codom:  Quote(n+1, t.Codom(Vfree(syntax.Quote(n)))),
		}
	case VMPair:
		return syntax.MPair{Fst: Quote(n, t.Fst), Snd: Quote(n, t.Snd)}
	case VMUnitType:
		return syntax.MUnitType{}
	case VMUnit:
		return syntax.MUnit{}
	case VAPairType:
		return syntax.APairType{
			Fst: Quote(n, t.Fst),
			Snd: Quote(n+1, t.Snd(Vfree(syntax.Quote(n)))),
		}
	case VAPair:
		return syntax.APair{Fst: Quote(n, t.Fst), Snd: Quote(n, t.Snd)}
	case VAUnitType:
		return syntax.AUnitType{}
	case VAUnit:
		return syntax.AUnit{}
	case VLam:
		return syntax.Lam{Body: Quote(n+1, t.Body(Vfree(syntax.Quote(n))))}
	case VNeutral:
		return syntax.Inf{Term: quoteNeutral(n, t.Neutral)}
	default:
		panic(errors.Errorf("values: Quote of unknown Value %T", v))
	}
}

// quoteNeutral quotes a stuck neutral back to an inferable term,
// resolving Quote(k) markers to the Bound index they correspond to at
// the current depth n (Bound(n - k - 1)) and leaving every other free
// variable (Global or Local minted by the checker) as Free.
func quoteNeutral(n int, neu Neutral) syntax.ITerm {
	switch t := neu.(type) {
	case NFree:
		if q, ok := t.Name.(syntax.Quote); ok {
			return syntax.Bound{Index: n - int(q) - 1}
		}
		return syntax.Free{Name: t.Name}
	case NApp:
		return syntax.App{Fun: quoteNeutral(n, t.Fun), Arg: Quote(n, t.Arg)}
	case NFst:
		return syntax.Fst{Pair: quoteNeutral(n, t.Pair)}
	case NSnd:
		return syntax.Snd{Pair: quoteNeutral(n, t.Pair)}
	case NMPairElim:
		return syntax.MPairElim{
			Scrutinee: quoteNeutral(n, t.Scrutinee),
			Body:      Quote(n+2, t.Body(Vfree(syntax.Quote(n)), Vfree(syntax.Quote(n+1)))),
			Type:      Quote(n+1, t.Type(Vfree(syntax.Quote(n)))),
		}
	case NMUnitElim:
		return syntax.MUnitElim{
			Scrutinee: quoteNeutral(n, t.Scrutinee),
			Body:      Quote(n, t.Body),
			Type:      Quote(n+1, t.Type(Vfree(syntax.Quote(n)))),
		}
	default:
		panic(errors.Errorf("values: quoteNeutral of unknown Neutral %T", neu))
	}
}

// Quote0 is Quote(0, v) — definitional equality of two values is
// equality of their Quote0 forms (typecheck compares them with
// syntax.EqCTerm).
func Quote0(v Value) syntax.CTerm {
	return Quote(0, v)
}
