package syntax

import "fmt"

// Name is either a free, user-introduced Global or a Local minted while
// the checker descends into a binder. Locals are de Bruijn *levels*,
// not indices: a Local's int is the environment length at the point it
// was created, which makes freshness a simple counter bump rather than
// a renaming pass.
type Name interface {
	isName()
	String() string
	Eq(Name) bool
}

// Global is a free name the user introduced via `assume` or `let`.
type Global string

func (Global) isName() {}

func (g Global) String() string { return string(g) }

func (g Global) Eq(other Name) bool {
	o, ok := other.(Global)
	return ok && g == o
}

// Local is a fresh de Bruijn level minted during type checking.
type Local int

func (Local) isName() {}

func (l Local) String() string { return fmt.Sprintf("%%%d", int(l)) }

func (l Local) Eq(other Name) bool {
	o, ok := other.(Local)
	return ok && l == o
}

// Quote is the marker quote(n, ...) uses for the fresh free variables it
// injects when opening closures; quote0's output never contains Quote
// names that survive de Bruijn re-indexing — they are immediately
// rewritten to Bound indices.
type Quote int

func (Quote) isName() {}

func (q Quote) String() string { return fmt.Sprintf("!%d", int(q)) }

func (q Quote) Eq(other Name) bool {
	o, ok := other.(Quote)
	return ok && q == o
}
