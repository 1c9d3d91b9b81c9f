package surface_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/janus-lang/janus/pkg/semiring"
	"github.com/janus-lang/janus/pkg/surface"
	"github.com/janus-lang/janus/pkg/syntax"
)

func parseExpr(t *testing.T, src string) syntax.CTerm {
	t.Helper()
	p := surface.NewParser(src)
	term, err := p.ParseExpr()
	require.NoError(t, err)
	return term
}

func TestParserBuildsIdentityPiWithBoundIndices(t *testing.T) {
	got := parseExpr(t, "(0 x : U) -> (1 y : x) -> x")
	want := syntax.Pi{
		Usage:  semiring.Zero,
		Domain: syntax.Universe{},
		Codom: syntax.Pi{
			Usage:  semiring.One,
			Domain: syntax.Inf{Term: syntax.Bound{Index: 0}},
			Codom:  syntax.Inf{Term: syntax.Bound{Index: 1}},
		},
	}
	require.True(t, syntax.EqCTerm(want, got), "got %s", got)
}

func TestParserBuildsAnnotatedIdentityLambda(t *testing.T) {
	got := parseExpr(t, "(\\x. \\y. y : (0 x : U) -> (1 y : x) -> x)")
	inf, ok := got.(syntax.Inf)
	require.True(t, ok)
	ann, ok := inf.Term.(syntax.Ann)
	require.True(t, ok)
	want := syntax.Lam{Body: syntax.Lam{Body: syntax.Inf{Term: syntax.Bound{Index: 0}}}}
	require.True(t, syntax.EqCTerm(want, ann.Term))
}

func TestParserBuildsApplicationSpine(t *testing.T) {
	got := parseExpr(t, "(\\x. \\y. y : (0 x : U) -> (1 y : x) -> x) a x")
	inf, ok := got.(syntax.Inf)
	require.True(t, ok)
	app, ok := inf.Term.(syntax.App)
	require.True(t, ok)
	require.Equal(t, syntax.Inf{Term: syntax.Free{Name: syntax.Global("x")}}, app.Arg)
	innerApp, ok := app.Fun.(syntax.App)
	require.True(t, ok)
	require.Equal(t, syntax.Inf{Term: syntax.Free{Name: syntax.Global("a")}}, innerApp.Arg)
}

func TestParserUnicodeSpellingsProduceSameTree(t *testing.T) {
	ascii := parseExpr(t, "(0 x : U) -> x * x")
	unicode := parseExpr(t, "(0 x : 𝘜) → x ⊗ x")
	require.True(t, syntax.EqCTerm(ascii, unicode))
}

func TestParserDefaultsOmittedUsageToMany(t *testing.T) {
	got := parseExpr(t, "(x : U) -> U")
	pi, ok := got.(syntax.Pi)
	require.True(t, ok)
	require.Equal(t, semiring.Many, pi.Usage)
}

func TestParserMultiplicativePairAndUnit(t *testing.T) {
	pair := parseExpr(t, "<U, I>")
	require.Equal(t, syntax.MPair{Fst: syntax.Universe{}, Snd: syntax.MUnitType{}}, pair)

	unit := parseExpr(t, "<>")
	require.Equal(t, syntax.MUnit{}, unit)
}

func TestParserAdditivePairAndType(t *testing.T) {
	pairTy := parseExpr(t, "U & T")
	require.Equal(t, syntax.APairType{Fst: syntax.Universe{}, Snd: syntax.AUnitType{}}, pairTy)

	pair := parseExpr(t, "(U, top)")
	require.Equal(t, syntax.APair{Fst: syntax.Universe{}, Snd: syntax.AUnit{}}, pair)
}

// A named-binder additive pair type, as spec.md's scenario 4 uses it:
// the Snd slot references the bound Fst via Bound(0), just like
// MPairType's Codom.
func TestParserNamedBinderAdditivePairTypeBindsSndToFst(t *testing.T) {
	got := parseExpr(t, "(x : U) & x")
	want := syntax.APairType{Fst: syntax.Universe{}, Snd: syntax.Inf{Term: syntax.Bound{Index: 0}}}
	require.True(t, syntax.EqCTerm(want, got), "got %s", got)
}

// Without an immediately-following &, a binder-shaped prefix still
// falls back to annotating a plain reference, exactly as it does for
// -> and *.
func TestParserAmpFallsBackToAnnotationWithoutBinderConfirmation(t *testing.T) {
	got := parseExpr(t, "(x : U & U)")
	want := syntax.Inf{Term: syntax.Ann{
		Term: syntax.Inf{Term: syntax.Free{Name: syntax.Global("x")}},
		Type: syntax.APairType{Fst: syntax.Universe{}, Snd: syntax.Universe{}},
	}}
	require.Equal(t, want, got)
}

func TestParserFstSndOnParenthesizedAnnotation(t *testing.T) {
	got := parseExpr(t, "fst (x : U & U)")
	inf, ok := got.(syntax.Inf)
	require.True(t, ok)
	fst, ok := inf.Term.(syntax.Fst)
	require.True(t, ok)
	ann, ok := fst.Pair.(syntax.Ann)
	require.True(t, ok)
	require.Equal(t, syntax.APairType{Fst: syntax.Universe{}, Snd: syntax.Universe{}}, ann.Type)
}

func TestParserMultiplicativePairEliminatorBindsInOrder(t *testing.T) {
	// let <x, y> as z : U = p in y — the motive ignores z (non-dependent
	// here), and Body references only y, which must come out as Bound 0.
	got := parseExpr(t, "let <x, y> as z : U = (p : U * U) in y")
	inf, ok := got.(syntax.Inf)
	require.True(t, ok)
	elim, ok := inf.Term.(syntax.MPairElim)
	require.True(t, ok)
	require.Equal(t, syntax.Inf{Term: syntax.Bound{Index: 0}}, elim.Body)
	require.Equal(t, syntax.Universe{}, elim.Type)
}

func TestParserMultiplicativeUnitEliminatorBindsNoNewNames(t *testing.T) {
	got := parseExpr(t, "let <> as z : U = (p : I) in U")
	inf, ok := got.(syntax.Inf)
	require.True(t, ok)
	elim, ok := inf.Term.(syntax.MUnitElim)
	require.True(t, ok)
	require.Equal(t, syntax.Universe{}, elim.Body)
}

func TestParserRejectsBareEmptyParens(t *testing.T) {
	p := surface.NewParser("()")
	_, err := p.ParseExpr()
	require.Error(t, err)
}

func TestParserStmtAssumeThenLet(t *testing.T) {
	p := surface.NewParser(`assume (0 a : U) (1 x : a)
let 1 id = (\y. y : (1 _ : a) -> a) `)
	stmts, err := p.ParseProgram()
	require.NoError(t, err)
	require.Len(t, stmts, 2)

	assume, ok := stmts[0].(surface.Assume)
	require.True(t, ok)
	require.Len(t, assume.Bindings, 2)
	require.Equal(t, "a", assume.Bindings[0].Name)
	require.Equal(t, semiring.Zero, assume.Bindings[0].Usage)
	require.Equal(t, "x", assume.Bindings[1].Name)
	require.Equal(t, semiring.One, assume.Bindings[1].Usage)
	// x's type `a` resolves as a free Global, not a Bound — assume
	// bindings are globals, not lexically-scoped locals.
	require.Equal(t, syntax.Inf{Term: syntax.Free{Name: syntax.Global("a")}}, assume.Bindings[1].Type)

	let, ok := stmts[1].(surface.Let)
	require.True(t, ok)
	require.Equal(t, semiring.One, let.Usage)
	require.Equal(t, "id", let.Name)
	_, ok = let.Term.(syntax.Ann)
	require.True(t, ok)
}

func TestParserPutStrLnAndOut(t *testing.T) {
	p := surface.NewParser(`putStrLn "hi"
out "bye"`)
	stmts, err := p.ParseProgram()
	require.NoError(t, err)
	require.Equal(t, surface.PutStrLn{Text: "hi"}, stmts[0])
	require.Equal(t, surface.Out{Text: "bye"}, stmts[1])
}

func TestParseCommandLineRecognisesKnownCommands(t *testing.T) {
	cmd, err := surface.ParseCommandLine(":type id A")
	require.NoError(t, err)
	require.Equal(t, surface.CmdType, cmd.Kind)
	require.Equal(t, "id A", cmd.Arg)

	cmd, err = surface.ParseCommandLine(":quit")
	require.NoError(t, err)
	require.Equal(t, surface.CmdQuit, cmd.Kind)
	require.Equal(t, "", cmd.Arg)
}

func TestParseCommandLineRejectsUnknownCommand(t *testing.T) {
	_, err := surface.ParseCommandLine(":bogus")
	require.Error(t, err)
}
