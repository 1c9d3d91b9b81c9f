package syntax

// EqITerm is α-invariant structural equality on inferable terms: Bound
// indices compare directly (they're already de-Bruijn-canonical), Free
// names compare via Name.Eq.
func EqITerm(a, b ITerm) bool {
	switch x := a.(type) {
	case Ann:
		y, ok := b.(Ann)
		return ok && EqCTerm(x.Term, y.Term) && EqCTerm(x.Type, y.Type)
	case Bound:
		y, ok := b.(Bound)
		return ok && x.Index == y.Index
	case Free:
		y, ok := b.(Free)
		return ok && x.Name.Eq(y.Name)
	case App:
		y, ok := b.(App)
		return ok && EqITerm(x.Fun, y.Fun) && EqCTerm(x.Arg, y.Arg)
	case MPairElim:
		y, ok := b.(MPairElim)
		return ok && EqITerm(x.Scrutinee, y.Scrutinee) && EqCTerm(x.Body, y.Body) && EqCTerm(x.Type, y.Type)
	case MUnitElim:
		y, ok := b.(MUnitElim)
		return ok && EqITerm(x.Scrutinee, y.Scrutinee) && EqCTerm(x.Body, y.Body) && EqCTerm(x.Type, y.Type)
	case Fst:
		y, ok := b.(Fst)
		return ok && EqITerm(x.Pair, y.Pair)
	case Snd:
		y, ok := b.(Snd)
		return ok && EqITerm(x.Pair, y.Pair)
	default:
		return false
	}
}

// EqCTerm is α-invariant structural equality on checkable terms.
func EqCTerm(a, b CTerm) bool {
	switch x := a.(type) {
	case Inf:
		y, ok := b.(Inf)
		return ok && EqITerm(x.Term, y.Term)
	case Lam:
		y, ok := b.(Lam)
		return ok && EqCTerm(x.Body, y.Body)
	case Universe:
		_, ok := b.(Universe)
		return ok
	case Pi:
		y, ok := b.(Pi)
		return ok && x.Usage == y.Usage && EqCTerm(x.Domain, y.Domain) && EqCTerm(x.Codom, y.Codom)
	case MPairType:
		y, ok := b.(MPairType)
		return ok && x.Usage == y.Usage && EqCTerm(x.Domain, y.Domain) && EqCTerm(x.Codom, y.Codom)
	case MPair:
		y, ok := b.(MPair)
		return ok && EqCTerm(x.Fst, y.Fst) && EqCTerm(x.Snd, y.Snd)
	case MUnitType:
		_, ok := b.(MUnitType)
		return ok
	case MUnit:
		_, ok := b.(MUnit)
		return ok
	case APairType:
		y, ok := b.(APairType)
		return ok && EqCTerm(x.Fst, y.Fst) && EqCTerm(x.Snd, y.Snd)
	case APair:
		y, ok := b.(APair)
		return ok && EqCTerm(x.Fst, y.Fst) && EqCTerm(x.Snd, y.Snd)
	case AUnitType:
		_, ok := b.(AUnitType)
		return ok
	case AUnit:
		_, ok := b.(AUnit)
		return ok
	default:
		return false
	}
}
