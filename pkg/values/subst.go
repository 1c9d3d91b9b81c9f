package values

import "github.com/janus-lang/janus/pkg/syntax"

// SubstITerm replaces Bound(i) by replacement throughout term, shifting
// i by one (or two, for the doubly-binding MPairElim body) on every
// descent into a binder — capture is impossible because replacement is
// always closed (the checker only ever substitutes in an already-opened
// scrutinee term, never a term with free Bound references of its own).
func SubstITerm(i int, replacement syntax.ITerm, term syntax.ITerm) syntax.ITerm {
	switch t := term.(type) {
	case syntax.Ann:
		return syntax.Ann{Term: SubstCTerm(i, replacement, t.Term), Type: SubstCTerm(i, replacement, t.Type)}
	case syntax.Bound:
		if t.Index == i {
			return replacement
		}
		return t
	case syntax.Free:
		return t
	case syntax.App:
		return syntax.App{Fun: SubstITerm(i, replacement, t.Fun), Arg: SubstCTerm(i, replacement, t.Arg)}
	case syntax.MPairElim:
		return syntax.MPairElim{
			Scrutinee: SubstITerm(i, replacement, t.Scrutinee),
			Body:      SubstCTerm(i+2, replacement, t.Body),
			Type:      SubstCTerm(i+1, replacement, t.Type),
		}
	case syntax.MUnitElim:
		return syntax.MUnitElim{
			Scrutinee: SubstITerm(i, replacement, t.Scrutinee),
			Body:      SubstCTerm(i, replacement, t.Body),
			Type:      SubstCTerm(i+1, replacement, t.Type),
		}
	case syntax.Fst:
		return syntax.Fst{Pair: SubstITerm(i, replacement, t.Pair)}
	case syntax.Snd:
		return syntax.Snd{Pair: SubstITerm(i, replacement, t.Pair)}
	default:
		return t
	}
}

// SubstCTerm is SubstITerm's counterpart for checkable terms.
func SubstCTerm(i int, replacement syntax.ITerm, term syntax.CTerm) syntax.CTerm {
	switch t := term.(type) {
	case syntax.Inf:
		return syntax.Inf{Term: SubstITerm(i, replacement, t.Term)}
	case syntax.Lam:
		return syntax.Lam{Body: SubstCTerm(i+1, replacement, t.Body)}
	case syntax.Universe:
		return t
	case syntax.Pi:
		return syntax.Pi{Usage: t.Usage, Domain: SubstCTerm(i, replacement, t.Domain), Codom: SubstCTerm(i+1, replacement, t.Codom)}
	case syntax.MPairType:
		return syntax.MPairType{Usage: t.Usage, Domain: SubstCTerm(i, replacement, t.Domain), Codom: SubstCTerm(i+1, replacement, t.Codom)}
	case syntax.MPair:
		return syntax.MPair{Fst: SubstCTerm(i, replacement, t.Fst), Snd: SubstCTerm(i, replacement, t.Snd)}
	case syntax.MUnitType:
		return t
	case syntax.MUnit:
		return t
	case syntax.APairType:
		return syntax.APairType{Fst: SubstCTerm(i, replacement, t.Fst), Snd: SubstCTerm(i+1, replacement, t.Snd)}
	case syntax.APair:
		return syntax.APair{Fst: SubstCTerm(i, replacement, t.Fst), Snd: SubstCTerm(i, replacement, t.Snd)}
	case syntax.AUnitType:
		return t
	case syntax.AUnit:
		return t
	default:
		return t
	}
}
