package surface

import (
	"github.com/janus-lang/janus/pkg/semiring"
	"github.com/janus-lang/janus/pkg/syntax"
)

// Binding is one entry of an Assume statement: `(q name : ty)`.
type Binding struct {
	Name  string
	Usage semiring.Q
	Type  syntax.CTerm
}

// Stmt is a top-level form the REPL/file loader processes against a
// live Context, per spec.md §6's Parser interface.
type Stmt interface {
	isStmt()
}

// Assume introduces one or more globals with declared usage and type
// but no definition; the evaluator resolves them as free variables.
type Assume struct {
	Bindings []Binding
}

func (Assume) isStmt() {}

// Let binds a name to a usage-annotated, type-checked term.
type Let struct {
	Usage semiring.Q
	Name  string
	Term  syntax.ITerm
}

func (Let) isStmt() {}

// Eval type-checks and evaluates a term without binding it, printing
// the result.
type Eval struct {
	Usage semiring.Q
	Term  syntax.ITerm
}

func (Eval) isStmt() {}

// PutStrLn prints a literal string followed by a newline.
type PutStrLn struct {
	Text string
}

func (PutStrLn) isStmt() {}

// Out prints a literal string with no trailing newline.
type Out struct {
	Text string
}

func (Out) isStmt() {}

// CommandKind classifies a REPL command line (§4.9).
type CommandKind int

const (
	CmdType CommandKind = iota
	CmdBrowse
	CmdLoad
	CmdQuit
	CmdHelp
)

// CommandLine is one parsed REPL command: `:type <expr>`, `:browse`,
// `:load <file>`, `:quit`, `:help`. Arg holds the expression text for
// CmdType (re-parsed by the caller as a term) or the filename for
// CmdLoad; it's empty for CmdBrowse/CmdQuit/CmdHelp.
type CommandLine struct {
	Kind CommandKind
	Arg  string
}
