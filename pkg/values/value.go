// Package values implements Janus's normalization-by-evaluation kernel:
// weak-head values with host-function closures, the evaluator, free
// variable injection, quotation back to syntax, and capture-avoiding
// substitution. The evaluator is pure and total on well-typed input; on
// ill-typed input it may diverge, which is why pkg/typecheck never
// calls it before a term has passed the judgment it's embedded in.
package values

import (
	"fmt"

	"github.com/janus-lang/janus/pkg/semiring"
	"github.com/janus-lang/janus/pkg/syntax"
)

// Value is a weak-head normal form. Functions and dependent codomains
// are represented as host closures (func(Value) Value) rather than
// deferred syntax — the standard NbE trick that turns β-reduction into
// a Go function call instead of substitution-and-reduce.
type Value interface {
	isValue()
}

// Closure1 is a one-argument host closure, used for Pi/MPairType/
// APairType codomains and Lam bodies: given the argument's value, it
// produces the codomain type (or the body's value).
type Closure1 func(Value) Value

// Closure2 is a two-argument host closure, used for MPairElim bodies
// which bind both components of the eliminated pair at once.
type Closure2 func(Value, Value) Value

type VUniverse struct{}

func (VUniverse) isValue() {}

type VPi struct {
	Usage  semiring.Q
	Domain Value
	Codom  Closure1
}

func (VPi) isValue() {}

type VMPairType struct {
	Usage  semiring.Q
	Domain Value
	Codom  Closure1
}

func (VMPairType) isValue() {}

type VMPair struct {
	Fst Value
	Snd Value
}

func (VMPair) isValue() {}

type VMUnitType struct{}

func (VMUnitType) isValue() {}

type VMUnit struct{}

func (VMUnit) isValue() {}

// VAPairType is the additive pair type; Snd is a Closure1 over the
// first component's value, mirroring VPi/VMPairType's dependent
// codomain — the additive pair's Snd inference rule applies it to
// eval(Fst e).
type VAPairType struct {
	Fst Value
	Snd Closure1
}

func (VAPairType) isValue() {}

type VAPair struct {
	Fst Value
	Snd Value
}

func (VAPair) isValue() {}

type VAUnitType struct{}

func (VAUnitType) isValue() {}

type VAUnit struct{}

func (VAUnit) isValue() {}

type VLam struct {
	Body Closure1
}

func (VLam) isValue() {}

// VNeutral wraps a stuck computation — one blocked on a free variable.
type VNeutral struct {
	Neutral Neutral
}

func (VNeutral) isValue() {}

// Neutral is a stuck (rigid) application chain rooted at a free variable.
type Neutral interface {
	isNeutral()
}

// NFree is a stuck variable reference — the base case of every neutral.
type NFree struct {
	Name syntax.Name
}

func (NFree) isNeutral() {}

// NApp is a stuck application: neutral function, evaluated argument.
type NApp struct {
	Fun Neutral
	Arg Value
}

func (NApp) isNeutral() {}

// NFst is a stuck first projection of an additive pair.
type NFst struct {
	Pair Neutral
}

func (NFst) isNeutral() {}

// NSnd is a stuck second projection of an additive pair.
type NSnd struct {
	Pair Neutral
}

func (NSnd) isNeutral() {}

// NMPairElim is a stuck multiplicative-pair elimination: the scrutinee
// is neutral, so the body and motive stay as closures over it.
type NMPairElim struct {
	Scrutinee Neutral
	Body      Closure2
	Type      Closure1
}

func (NMPairElim) isNeutral() {}

// NMUnitElim is a stuck multiplicative-unit elimination.
type NMUnitElim struct {
	Scrutinee Neutral
	Body      Value
	Type      Closure1
}

func (NMUnitElim) isNeutral() {}

// Vfree injects a free variable directly into the value domain, used to
// seed fresh locals before type checking their scope and to seed the
// fresh quote markers quote/quoteNeutral apply closures to.
func Vfree(n syntax.Name) Value {
	return VNeutral{Neutral: NFree{Name: n}}
}

// Apply performs β-reduction: a VLam closure is called directly, a
// stuck neutral grows one more frame of application.
func Apply(fn Value, arg Value) Value {
	switch f := fn.(type) {
	case VLam:
		return f.Body(arg)
	case VNeutral:
		return VNeutral{Neutral: NApp{Fun: f.Neutral, Arg: arg}}
	default:
		panic(fmt.Sprintf("values: Apply of non-function value %T", fn))
	}
}
