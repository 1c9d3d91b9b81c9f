package main

import (
	"fmt"
	"io"

	"github.com/janus-lang/janus/pkg/janusctx"
	"github.com/janus-lang/janus/pkg/prettyprint"
	"github.com/janus-lang/janus/pkg/surface"
	"github.com/janus-lang/janus/pkg/syntax"
	"github.com/janus-lang/janus/pkg/typecheck"
	"github.com/janus-lang/janus/pkg/values"
)

// IState is the shell's one piece of mutable state (spec.md §6): the
// stream accepted statements print their results to, and the Context
// accumulated from every Assume/Let so far. Mutation only ever happens
// between top-level statements, never during one — ExecStmt is never
// called concurrently with itself.
type IState struct {
	outFile io.Writer
	context janusctx.Context
	width   int
}

// NewIState returns an empty interpreter state writing to out, wrapping
// output at the pretty-printer's default width.
func NewIState(out io.Writer) *IState {
	return &IState{outFile: out, context: janusctx.NewContext(), width: prettyprint.DefaultWidth}
}

// ExecStmt type-checks and, where applicable, evaluates one top-level
// statement against state's Context. Assume and Let extend the Context
// in place; Eval, PutStrLn and Out only print.
func (s *IState) ExecStmt(stmt surface.Stmt) error {
	switch st := stmt.(type) {
	case surface.Assume:
		return s.execAssume(st)
	case surface.Let:
		return s.execLet(st)
	case surface.Eval:
		return s.execEval(st)
	case surface.PutStrLn:
		fmt.Fprintln(s.outFile, st.Text)
		return nil
	case surface.Out:
		fmt.Fprint(s.outFile, st.Text)
		return nil
	default:
		return fmt.Errorf("unhandled statement type %T", stmt)
	}
}

// execAssume validates each binding's declared type and adds it as a
// Global with no definition of its own — the evaluator resolves a
// later reference to it as the neutral value vfree(Global name).
func (s *IState) execAssume(st surface.Assume) error {
	for _, b := range st.Bindings {
		if err := typecheck.CheckIsType(s.context, b.Type); err != nil {
			return err
		}
		typeVal := values.EvalC(b.Type, s.context.Env())
		s.context = s.context.ExtendGlobal(b.Name, b.Usage, typeVal, values.Vfree(syntax.Global(b.Name)))
	}
	return nil
}

// execLet type-checks Term at Usage, evaluates it, and binds the
// result as a new Global, printing the binding's name and type.
func (s *IState) execLet(st surface.Let) error {
	ty, err := typecheck.Infer(s.context, st.Usage, st.Term)
	if err != nil {
		return err
	}
	val := values.Eval(st.Term, s.context.Env())
	s.context = s.context.ExtendGlobal(st.Name, st.Usage, ty, val)
	fmt.Fprintf(s.outFile, "%s : %s\n", st.Name, s.render(ty))
	return nil
}

// execEval type-checks and evaluates Term without binding it, printing
// the resulting value alongside its type.
func (s *IState) execEval(st surface.Eval) error {
	ty, err := typecheck.Infer(s.context, st.Usage, st.Term)
	if err != nil {
		return err
	}
	val := values.Eval(st.Term, s.context.Env())
	fmt.Fprintf(s.outFile, "%s : %s\n", s.render(val), s.render(ty))
	return nil
}

func (s *IState) render(v values.Value) string {
	return prettyprint.RenderWidth(prettyprint.Value(v), s.width)
}
