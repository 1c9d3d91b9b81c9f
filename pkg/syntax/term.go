// Package syntax defines the two-sorted term language of Janus:
// inferable terms (ITerm) synthesise their own type, checkable terms
// (CTerm) require one supplied from outside. Both sorts are de Bruijn
// *indexed* for bound variables; the checker substitutes fresh Local
// names for Bound 0 on every descent, so nothing downstream of the
// parser ever has to rename a binder.
package syntax

import (
	"fmt"

	"github.com/janus-lang/janus/pkg/semiring"
)

// Q is the usage semiring element a binder is annotated with in the
// surface grammar; re-exported here so syntax's exported API doesn't
// force every caller to also import pkg/semiring for this one type.
type Q = semiring.Q

const (
	QZero = semiring.Zero
	QOne  = semiring.One
	QMany = semiring.Many
)

// ITerm is an inferable term: App(e, Ann(c, ty)), Free(n), Bound(i), ...
type ITerm interface {
	isITerm()
	fmt.Stringer
}

// CTerm is a checkable term: Lam(body), Universe, Pi(q, a, b), ...
type CTerm interface {
	isCTerm()
	fmt.Stringer
}

// --- Inferable terms -------------------------------------------------

// Ann is a type-annotated checkable term: (e : ty).
type Ann struct {
	Term CTerm
	Type CTerm
}

func (Ann) isITerm() {}
func (a Ann) String() string { return fmt.Sprintf("(%s : %s)", a.Term, a.Type) }

// Bound is a de Bruijn index referring to an enclosing binder. The
// checker opens every binder it descends into immediately, substituting
// a fresh Free(Local) for Bound 0, so Bound only ever appears inside
// terms that haven't yet been opened by the typing judgment.
type Bound struct {
	Index int
}

func (Bound) isITerm() {}
func (b Bound) String() string { return fmt.Sprintf("#%d", b.Index) }

// Free is a reference to a name already bound in the context — either a
// user Global or a Local minted by the checker while descending.
type Free struct {
	Name Name
}

func (Free) isITerm() {}
func (f Free) String() string { return f.Name.String() }

// App is function application e(c).
type App struct {
	Fun ITerm
	Arg CTerm
}

func (App) isITerm() {}
func (a App) String() string { return fmt.Sprintf("%s(%s)", a.Fun, a.Arg) }

// MPairElim eliminates a multiplicative (⊗) pair: let ⟨x,y⟩ = e in body,
// with the motive Type (dependent on the scrutinee) making this a
// full dependent eliminator rather than a simple destructuring let.
type MPairElim struct {
	Scrutinee ITerm
	Body      CTerm
	Type      CTerm
}

func (MPairElim) isITerm() {}
func (e MPairElim) String() string {
	return fmt.Sprintf("mpairElim(%s, %s, %s)", e.Scrutinee, e.Body, e.Type)
}

// MUnitElim eliminates the multiplicative unit I: let () = e in body.
type MUnitElim struct {
	Scrutinee ITerm
	Body      CTerm
	Type      CTerm
}

func (MUnitElim) isITerm() {}
func (e MUnitElim) String() string {
	return fmt.Sprintf("munitElim(%s, %s, %s)", e.Scrutinee, e.Body, e.Type)
}

// Fst projects the first component of an additive (&) pair.
type Fst struct {
	Pair ITerm
}

func (Fst) isITerm() {}
func (f Fst) String() string { return fmt.Sprintf("fst(%s)", f.Pair) }

// Snd projects the second component of an additive (&) pair.
type Snd struct {
	Pair ITerm
}

func (Snd) isITerm() {}
func (s Snd) String() string { return fmt.Sprintf("snd(%s)", s.Pair) }

// --- Checkable terms ---------------------------------------------------

// Inf embeds an inferable term where a checkable one is expected; the
// checker infers its type and compares against what's expected.
type Inf struct {
	Term ITerm
}

func (Inf) isCTerm() {}
func (i Inf) String() string { return i.Term.String() }

// Lam is a λ-abstraction; its bound variable's multiplicity is supplied
// by the Pi type it's checked against, not carried on the term itself.
type Lam struct {
	Body CTerm
}

func (Lam) isCTerm() {}
func (l Lam) String() string { return fmt.Sprintf("\\. %s", l.Body) }

// Universe is 𝘜, the type of types.
type Universe struct{}

func (Universe) isCTerm() {}
func (Universe) String() string { return "U" }

// Pi is the dependent function type (q x:a) -> b, where q is the
// multiplicity the codomain b expects to consume of its argument.
type Pi struct {
	Usage  Q
	Domain CTerm
	Codom  CTerm
}

func (Pi) isCTerm() {}
func (p Pi) String() string { return fmt.Sprintf("(%s x:%s) -> %s", p.Usage, p.Domain, p.Codom) }

// MPairType is the multiplicative (tensor) pair type (q x:a) * b.
type MPairType struct {
	Usage  Q
	Domain CTerm
	Codom  CTerm
}

func (MPairType) isCTerm() {}
func (t MPairType) String() string { return fmt.Sprintf("(%s x:%s) * %s", t.Usage, t.Domain, t.Codom) }

// MPair is a multiplicative pair introduction ⟨e1, e2⟩.
type MPair struct {
	Fst CTerm
	Snd CTerm
}

func (MPair) isCTerm() {}
func (p MPair) String() string { return fmt.Sprintf("<%s, %s>", p.Fst, p.Snd) }

// MUnitType is the multiplicative unit type I.
type MUnitType struct{}

func (MUnitType) isCTerm() {}
func (MUnitType) String() string { return "I" }

// MUnit is the multiplicative unit value ().
type MUnit struct{}

func (MUnit) isCTerm() {}
func (MUnit) String() string { return "()" }

// APairType is the additive (with) pair type a & b; Snd may reference
// the bound first component via Bound(0), the same dependent-codomain
// shape as Pi/MPairType's Codom.
type APairType struct {
	Fst CTerm
	Snd CTerm
}

func (APairType) isCTerm() {}
func (t APairType) String() string { return fmt.Sprintf("%s & %s", t.Fst, t.Snd) }

// APair is an additive pair introduction (e1, e2); eliminating one
// projection does not consume the other.
type APair struct {
	Fst CTerm
	Snd CTerm
}

func (APair) isCTerm() {}
func (p APair) String() string { return fmt.Sprintf("(%s, %s)", p.Fst, p.Snd) }

// AUnitType is the additive unit (top) type T.
type AUnitType struct{}

func (AUnitType) isCTerm() {}
func (AUnitType) String() string { return "T" }

// AUnit is the unique additive unit value.
type AUnit struct{}

func (AUnit) isCTerm() {}
func (AUnit) String() string { return "<>" }
