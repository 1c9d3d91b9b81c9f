package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/iancoleman/strcase"

	"github.com/janus-lang/janus/pkg/config"
	"github.com/janus-lang/janus/pkg/prettyprint"
	"github.com/janus-lang/janus/pkg/semiring"
	"github.com/janus-lang/janus/pkg/surface"
	"github.com/janus-lang/janus/pkg/syntax"
	"github.com/janus-lang/janus/pkg/typecheck"
)

// replHistory is a minimal in-memory, append-only log of accepted
// input lines, mirroring the teacher's repl_history.go but without its
// interactive up/down navigation — this shell reads from a plain
// bufio.Scanner, not a line-editing widget.
type replHistory struct {
	path    string
	entries []string
}

func newReplHistory(path string) *replHistory {
	h := &replHistory{path: path}
	h.load()
	return h
}

func (h *replHistory) load() {
	data, err := os.ReadFile(h.path)
	if err != nil {
		return
	}
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line != "" {
			h.entries = append(h.entries, line)
		}
	}
}

// Add appends line to history (skipping blanks and immediate repeats)
// and persists it to disk.
func (h *replHistory) Add(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == line {
		return
	}
	h.entries = append(h.entries, line)
	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintln(f, line)
}

// runREPL drives the interactive loop: read a line, dispatch it either
// as a `:`-prefixed command or as a statement, print the result, and
// repeat until `:quit` or EOF. Returns the process exit code.
func runREPL(cfg *config.Config, logger *slog.Logger) int {
	state := NewIState(os.Stdout)
	if cfg.Width > 0 {
		state.width = cfg.Width
	}
	history := newReplHistory(config.HistoryPath())

	if cfg.Prelude != "" {
		if err := loadFile(state, cfg.Prelude, logger); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load prelude %s: %v\n", cfg.Prelude, err)
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Fprint(os.Stdout, cfg.Prompt)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			fmt.Fprint(os.Stdout, cfg.Prompt)
			continue
		}
		history.Add(line)

		if strings.HasPrefix(strings.TrimSpace(line), ":") {
			if quit := dispatchCommand(state, line, logger); quit {
				return 0
			}
		} else if err := execLine(state, line); err != nil {
			printErr(state, err, logger)
		}
		fmt.Fprint(os.Stdout, cfg.Prompt)
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "input error: %v\n", err)
		return 1
	}
	fmt.Fprintln(os.Stdout)
	return 0
}

// execLine parses a single statement and runs it against state.
func execLine(state *IState, line string) error {
	p := surface.NewParser(line)
	stmt, err := p.ParseStmt()
	if err != nil {
		return err
	}
	return state.ExecStmt(stmt)
}

// dispatchCommand handles one `:`-prefixed REPL command. Returns true
// when the command requests the shell to exit.
func dispatchCommand(state *IState, line string, logger *slog.Logger) bool {
	cmd, err := surface.ParseCommandLine(line)
	if err != nil {
		fmt.Println(err)
		return false
	}
	switch cmd.Kind {
	case surface.CmdQuit:
		return true
	case surface.CmdHelp:
		printHelp()
	case surface.CmdBrowse:
		browse(state)
	case surface.CmdType:
		if err := typeCommand(state, cmd.Arg); err != nil {
			printErr(state, err, logger)
		}
	case surface.CmdLoad:
		if err := loadFile(state, cmd.Arg, logger); err != nil {
			printErr(state, err, logger)
		}
	}
	return false
}

// typeCommand parses Arg as a standalone inferable term, runs `iType0`
// against it, and prints its type without evaluating it.
func typeCommand(state *IState, arg string) error {
	p := surface.NewParser(arg)
	term, err := p.ParseTerm()
	if err != nil {
		return err
	}
	ty, err := typecheck.Infer(state.context, semiring.One, term)
	if err != nil {
		return err
	}
	fmt.Println(state.render(ty))
	return nil
}

// browse lists every current Global binding with its declared usage
// and type.
func browse(state *IState) {
	for _, b := range state.context.Types {
		name, ok := b.Name.(syntax.Global)
		if !ok {
			continue
		}
		fmt.Printf("%s %s : %s\n", b.Usage, string(name), state.render(b.Type))
	}
}

// loadFile parses every statement in path and runs it against state in
// order, stopping at the first error. Each call is tagged with a fresh
// batch id so a --debug session's logs can tell which :load produced
// which downstream errors.
func loadFile(state *IState, path string, logger *slog.Logger) error {
	batch := uuid.New().String()
	logger.Debug("load batch starting", "batch", batch, "path", path)

	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	p := surface.NewParser(string(src))
	stmts, err := p.ParseProgram()
	if err != nil {
		return err
	}
	for i, stmt := range stmts {
		if err := state.ExecStmt(stmt); err != nil {
			logger.Debug("load batch failed", "batch", batch, "statement", i)
			return err
		}
	}
	logger.Debug("load batch finished", "batch", batch, "statements", len(stmts))
	return nil
}

// helpEntry pairs a command name (as the parser spells it, lower
// camelCase) with its one-line description; name is re-cased to kebab
// form for display, matching cobra's own usage-string convention.
type helpEntry struct {
	name, usage, desc string
}

var helpEntries = []helpEntry{
	{"type", "<expr>", "infer and print an expression's type without evaluating it"},
	{"browse", "", "list current global bindings with their usage and type"},
	{"load", "<file>", "parse and run every statement in a file"},
	{"quit", "", "exit the shell"},
	{"help", "", "print this message"},
}

func printHelp() {
	fmt.Println("Available commands:")
	for _, e := range helpEntries {
		name := strcase.ToKebab(e.name)
		if e.usage != "" {
			fmt.Printf("  :%-8s %-8s %s\n", name, e.usage, e.desc)
		} else {
			fmt.Printf("  :%-17s %s\n", name, e.desc)
		}
	}
	fmt.Println()
	fmt.Println("Otherwise, type a statement: `assume (q x : ty) ...`, `let q x = term`,")
	fmt.Println("`eval term`, `putStrLn \"...\"`, or `out \"...\"`.")
}

// printErr renders err through the pretty-printer for the user and, if
// it's an internal invariant violation, additionally logs it with a
// stack trace for --debug sessions rather than treating it as an
// ordinary user-facing ErrorKind.
func printErr(state *IState, err error, logger *slog.Logger) {
	fmt.Println(prettyprint.RenderWidth(prettyprint.Error(err), state.width))
	if typecheck.IsInternal(err) {
		logger.Debug("internal invariant violation", "error", fmt.Sprintf("%+v", err))
	}
}
