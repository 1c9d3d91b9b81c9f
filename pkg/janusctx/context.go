// Package janusctx implements the context the typing judgment is
// threaded through: a pair of an (unordered) Global-to-value mapping
// for definitions and an (ordered, innermost-first) list of typing
// Bindings. It's named janusctx rather than context to avoid shadowing
// the standard library package in files that need both.
package janusctx

import (
	"github.com/janus-lang/janus/pkg/semiring"
	"github.com/janus-lang/janus/pkg/syntax"
	"github.com/janus-lang/janus/pkg/values"
)

// Binding pairs a name with a declared usage allowance and a type
// value. Global bindings live for the life of the process; Local
// bindings live only for the depth of one recursive typing call.
type Binding struct {
	Name  syntax.Name
	Usage semiring.Q
	Type  values.Value
}

// TypeEnv is the ordered (innermost-first) list of Bindings the typing
// judgment consults. Ordering matters: find must return the innermost
// binding when names shadow, so new Bindings are prepended.
type TypeEnv []Binding

// Extend returns a TypeEnv with b shadowing anything already bound to
// the same name, without mutating the receiver.
func (env TypeEnv) Extend(b Binding) TypeEnv {
	next := make(TypeEnv, 0, len(env)+1)
	next = append(next, b)
	next = append(next, env...)
	return next
}

// Find returns the innermost Binding for n, if any.
func (env TypeEnv) Find(n syntax.Name) (Binding, bool) {
	for _, b := range env {
		if b.Name.Eq(n) {
			return b, true
		}
	}
	return Binding{}, false
}

// Forget rewrites every usage annotation in env to Zero, producing the
// "erased shadow" used when type-checking a type — checking a type
// must not be able to accidentally consume a runtime resource.
func (env TypeEnv) Forget() TypeEnv {
	next := make(TypeEnv, len(env))
	for i, b := range env {
		next[i] = Binding{Name: b.Name, Usage: semiring.Zero, Type: b.Type}
	}
	return next
}

// Context is the pair (NameEnv, TypeEnv) threaded through the checker:
// NameEnv resolves Globals to their definitions for the evaluator,
// TypeEnv resolves any name to its declared usage and type for typing.
type Context struct {
	Names values.NameEnv
	Types TypeEnv
}

// NewContext returns an empty context.
func NewContext() Context {
	return Context{}
}

// Lookup finds n's typing Binding.
func (c Context) Lookup(n syntax.Name) (Binding, bool) {
	return c.Types.Find(n)
}

// Extend returns a Context with b added to the typing environment.
// NameEnv is untouched — Extend is used for the Local bindings minted
// while descending into binders, which have no evaluator definition of
// their own (they're resolved as free variables, not as defined
// globals) until they're discharged.
func (c Context) Extend(b Binding) Context {
	return Context{Names: c.Names, Types: c.Types.Extend(b)}
}

// ExtendGlobal adds both a typing Binding and its evaluator definition —
// used for top-level `assume` and `let` statements, which the evaluator
// needs to be able to resolve a Global to a value.
func (c Context) ExtendGlobal(name string, usage semiring.Q, typ values.Value, def values.Value) Context {
	names := c.Names.Extend(name, def)
	types := c.Types.Extend(Binding{Name: syntax.Global(name), Usage: usage, Type: typ})
	return Context{Names: names, Types: types}
}

// Forget returns a Context whose TypeEnv has every usage zeroed — the
// erased subcontext the checker runs type-level judgments against.
func (c Context) Forget() Context {
	return Context{Names: c.Names, Types: c.Types.Forget()}
}

// Env builds the values.Env the evaluator needs to normalise under this
// context: it carries the Global definitions but starts with an empty
// local stack, since the typing judgment always evaluates terms that
// have already had their Bound variables opened to Locals.
func (c Context) Env() values.Env {
	return values.NewEnv(c.Names)
}

// NextLocal returns the de Bruijn level a freshly minted Local should
// use: the current TypeEnv length, which guarantees it's distinct from
// every Local already in scope (levels only ever grow as we descend).
func (c Context) NextLocal() syntax.Local {
	return syntax.Local(len(c.Types))
}
