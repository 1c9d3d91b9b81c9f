package janusctx

import (
	"sort"

	"github.com/janus-lang/janus/pkg/semiring"
	"github.com/janus-lang/janus/pkg/syntax"
)

// nameKey turns a Name into a comparable map key. Go interface values
// with only comparable underlying types (Global is a string, Local and
// Quote are ints) are already valid map keys, so this is a plain type
// alias of Name kept around only so call sites read as "the usage map's
// key", not "a Name" — a usage map indexes by identity of the name, a
// typing Binding's Name is the same thing semantically.
type nameKey = syntax.Name

// Usage maps a Name to the semiring element recording how many times it
// would be consumed if the term were reduced; an absent key means Zero.
// Iteration order is never meaningful — only SortedKeys (used for diagnostics)
// imposes one, for deterministic error messages.
type Usage map[nameKey]semiring.Q

// Get returns the usage recorded for n, defaulting to Zero.
func (u Usage) Get(n syntax.Name) semiring.Q {
	if u == nil {
		return semiring.Zero
	}
	return u[n]
}

// Single builds a one-entry usage map, the base case most inference
// rules start from (e.g. Free(n) contributes { n: extend(r) }).
func Single(n syntax.Name, q semiring.Q) Usage {
	return Usage{n: q}
}

// Combine merges two usage maps pointwise by ⊕, the rule every
// multi-premise typing rule uses to combine its sub-usages.
func Combine(a, b Usage) Usage {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(Usage, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = semiring.Add(out[k], v)
	}
	return out
}

// Scale maps every entry through (q ⊗ ·), used when iType0 scales the
// internal judgment's usage by the relevance it was asked to run at.
func Scale(q semiring.Q, u Usage) Usage {
	if len(u) == 0 {
		return nil
	}
	out := make(Usage, len(u))
	for k, v := range u {
		out[k] = semiring.Mul(q, v)
	}
	return out
}

// Lub combines two usage maps by the element-wise least upper bound,
// the rule APair introduction uses: an additive pair offers a choice of
// projection, so its usage is whichever projection ends up taken.
func Lub(a, b Usage) Usage {
	out := make(Usage, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		if existing, ok := out[k]; ok {
			out[k] = semiring.Lub(existing, v)
		} else {
			out[k] = semiring.Lub(semiring.Zero, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Without returns a copy of u with n's entry removed — the step a
// discharged binder takes after its usage has been checked against its
// declared allowance.
func (u Usage) Without(n syntax.Name) Usage {
	if len(u) == 0 {
		return u
	}
	out := make(Usage, len(u))
	for k, v := range u {
		if !k.Eq(n) {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// IsAllZero reports whether every entry in u is Zero — u itself being
// empty counts as all-zero. Used by the erased sub-judgment to assert
// its invariant: nothing erased may come back with nonzero usage.
func (u Usage) IsAllZero() bool {
	for _, v := range u {
		if v != semiring.Zero {
			return false
		}
	}
	return true
}

// SortedKeys returns u's keys in a stable, deterministic order (Globals
// before Locals before everything else, then by printed form within
// each kind, so Local %10 sorts before %2) purely for reproducible diagnostics — iteration order of the
// map itself is never semantically meaningful.
func (u Usage) SortedKeys() []syntax.Name {
	keys := make([]syntax.Name, 0, len(u))
	for k := range u {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return rankName(keys[i]) < rankName(keys[j])
	})
	return keys
}

func rankName(n syntax.Name) string {
	switch t := n.(type) {
	case syntax.Global:
		return "0:" + string(t)
	case syntax.Local:
		return "1:" + t.String()
	default:
		return "2:" + n.String()
	}
}
