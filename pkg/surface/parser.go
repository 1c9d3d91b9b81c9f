package surface

import (
	"strconv"
	"strings"

	"github.com/janus-lang/janus/pkg/semiring"
	"github.com/janus-lang/janus/pkg/syntax"
)

// Parser is a recursive-descent parser over a fully pre-lexed token
// slice — buffering the whole stream up front (Janus sources are small)
// means the binder-vs-grouping-vs-annotation ambiguity after '(' can be
// resolved with plain index lookahead instead of a streaming lexer's
// push-back machinery.
type Parser struct {
	toks  []Token
	pos   int
	scope []string // innermost-first names currently bound by \ or (q x:a)->...
}

// NewParser lexes src in full and returns a Parser positioned at its
// first token.
func NewParser(src string) *Parser {
	lx := NewLexer(src)
	var toks []Token
	for {
		t := lx.Next()
		toks = append(toks, t)
		if t.Type == EOF {
			break
		}
	}
	return &Parser{toks: toks}
}

func (p *Parser) cur() Token {
	return p.toks[p.pos]
}

func (p *Parser) peekAt(k int) Token {
	i := p.pos + k
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[i]
}

func (p *Parser) advance() Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expect(tt TokenType) (Token, error) {
	if p.cur().Type != tt {
		return Token{}, &SyntaxError{Span: p.cur().Span, Msg: "expected " + tt.String() + ", found " + p.cur().Type.String()}
	}
	return p.advance(), nil
}

func (p *Parser) pushName(name string) {
	p.scope = append([]string{name}, p.scope...)
}

func (p *Parser) popNames(n int) {
	p.scope = p.scope[n:]
}

// resolve turns an identifier into Bound i (if it's in lexical scope)
// or Free(Global name) otherwise.
func (p *Parser) resolve(name string) syntax.ITerm {
	for i, n := range p.scope {
		if n == name {
			return syntax.Bound{Index: i}
		}
	}
	return syntax.Free{Name: syntax.Global(name)}
}

// --- Statements --------------------------------------------------------

// ParseProgram parses every Stmt in the token stream until EOF.
func (p *Parser) ParseProgram() ([]Stmt, error) {
	var stmts []Stmt
	for p.cur().Type != EOF {
		s, err := p.ParseStmt()
		if err != nil {
			return stmts, err
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

// ParseStmt parses one top-level form: assume/let/eval/putStrLn/out.
func (p *Parser) ParseStmt() (Stmt, error) {
	switch p.cur().Type {
	case KwAssume:
		return p.parseAssume()
	case KwLet:
		return p.parseLet()
	case KwEval:
		return p.parseEvalStmt()
	case KwPutStrLn:
		p.advance()
		tok, err := p.expect(String)
		if err != nil {
			return nil, err
		}
		return PutStrLn{Text: tok.Text}, nil
	case KwOut:
		p.advance()
		tok, err := p.expect(String)
		if err != nil {
			return nil, err
		}
		return Out{Text: tok.Text}, nil
	default:
		return nil, &SyntaxError{Span: p.cur().Span, Msg: "expected a statement (assume, let, eval, putStrLn, out), found " + p.cur().Type.String()}
	}
}

func (p *Parser) parseAssume() (Stmt, error) {
	p.advance() // 'assume'
	var bindings []Binding
	for p.cur().Type == LParen {
		b, err := p.parseBinding()
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, b)
	}
	if len(bindings) == 0 {
		return nil, &SyntaxError{Span: p.cur().Span, Msg: "assume requires at least one (q name : type) binding"}
	}
	return Assume{Bindings: bindings}, nil
}

// parseBinding parses one `(q? name : type)` binding, consuming the
// surrounding parens. Unlike parsePiOrMPairHead, it never pushes the
// bound name into lexical scope: assume introduces a Global, resolved
// later as a free reference, not a de Bruijn-indexed local.
func (p *Parser) parseBinding() (Binding, error) {
	if _, err := p.expect(LParen); err != nil {
		return Binding{}, err
	}
	q, name, err := p.parseUsageAndName()
	if err != nil {
		return Binding{}, err
	}
	if _, err := p.expect(Colon); err != nil {
		return Binding{}, err
	}
	ty, err := p.ParseExpr()
	if err != nil {
		return Binding{}, err
	}
	if _, err := p.expect(RParen); err != nil {
		return Binding{}, err
	}
	return Binding{Name: name, Usage: q, Type: ty}, nil
}

// parseUsageAndName consumes an optional leading usage digit/keyword
// followed by a binder name.
func (p *Parser) parseUsageAndName() (semiring.Q, string, error) {
	q := semiring.Many
	switch p.cur().Type {
	case Number:
		tok := p.advance()
		n, _ := strconv.Atoi(tok.Text)
		switch n {
		case 0:
			q = semiring.Zero
		case 1:
			q = semiring.One
		default:
			return 0, "", &SyntaxError{Span: tok.Span, Msg: "invalid usage prefix " + tok.Text + ", expected 0, 1, or w"}
		}
	case KwOmega:
		p.advance()
		q = semiring.Many
	}
	nameTok, err := p.expect(Ident)
	if err != nil {
		return 0, "", err
	}
	return q, nameTok.Text, nil
}

func (p *Parser) parseLet() (Stmt, error) {
	p.advance() // 'let'
	q := p.parseOptionalUsage()
	nameTok, err := p.expect(Ident)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(Equals); err != nil {
		return nil, err
	}
	term, err := p.parseInferableTerm("let binding")
	if err != nil {
		return nil, err
	}
	return Let{Usage: q, Name: nameTok.Text, Term: term}, nil
}

func (p *Parser) parseEvalStmt() (Stmt, error) {
	p.advance() // 'eval'
	q := p.parseOptionalUsage()
	term, err := p.parseInferableTerm("eval")
	if err != nil {
		return nil, err
	}
	return Eval{Usage: q, Term: term}, nil
}

func (p *Parser) parseOptionalUsage() semiring.Q {
	switch p.cur().Type {
	case Number:
		tok := p.advance()
		n, _ := strconv.Atoi(tok.Text)
		if n == 0 {
			return semiring.Zero
		}
		if n == 1 {
			return semiring.One
		}
		return semiring.Many
	case KwOmega:
		p.advance()
		return semiring.Many
	default:
		return semiring.Many
	}
}

// ParseTerm parses one standalone inferable term, the form the `:type`
// REPL command and `eval`/`let` statements all ultimately need: an
// expression whose outermost form carries its own type (an annotation,
// a variable, an application, a projection, or an eliminator), not a
// bare canonical form like a lambda or a pair literal.
func (p *Parser) ParseTerm() (syntax.ITerm, error) {
	return p.parseInferableTerm("expression")
}

// parseInferableTerm parses a term that must resolve to an ITerm (the
// surface forms Let/Eval require), reporting where in a syntax error
// when the parsed expression has no inferable outermost form.
func (p *Parser) parseInferableTerm(where string) (syntax.ITerm, error) {
	start := p.cur().Span
	c, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}
	inf, ok := c.(syntax.Inf)
	if !ok {
		return nil, &SyntaxError{Span: start, Msg: where + " requires an inferable term (e.g. an annotated `(term : type)`), found " + c.String()}
	}
	return inf.Term, nil
}

// --- Expressions ---------------------------------------------------

// ParseExpr parses one checkable term at the top precedence level
// (lowest-binding infix operators first): `->`, then `&`, then `*`,
// then the application spine.
func (p *Parser) ParseExpr() (syntax.CTerm, error) {
	return p.parseArrow()
}

func (p *Parser) parseArrow() (syntax.CTerm, error) {
	lhs, err := p.parseAmp()
	if err != nil {
		return nil, err
	}
	if p.cur().Type == Arrow {
		p.advance()
		rhs, err := p.parseArrow()
		if err != nil {
			return nil, err
		}
		return syntax.Pi{Usage: semiring.Many, Domain: lhs, Codom: rhs}, nil
	}
	return lhs, nil
}

func (p *Parser) parseAmp() (syntax.CTerm, error) {
	lhs, err := p.parseStar()
	if err != nil {
		return nil, err
	}
	if p.cur().Type == Amp {
		p.advance()
		rhs, err := p.parseAmp()
		if err != nil {
			return nil, err
		}
		return syntax.APairType{Fst: lhs, Snd: rhs}, nil
	}
	return lhs, nil
}

func (p *Parser) parseStar() (syntax.CTerm, error) {
	lhs, err := p.parseApp()
	if err != nil {
		return nil, err
	}
	if p.cur().Type == Star {
		p.advance()
		rhs, err := p.parseStar()
		if err != nil {
			return nil, err
		}
		return syntax.MPairType{Usage: semiring.Many, Domain: lhs, Codom: rhs}, nil
	}
	return lhs, nil
}

func beginsAtom(tt TokenType) bool {
	switch tt {
	case Ident, KwFst, KwSnd, LParen, LAngle, KwU, KwI, KwT, KwTop, Lambda:
		return true
	default:
		return false
	}
}

// parseApp parses an application spine: an atom followed by zero or
// more further atoms, each becoming App.Arg against the running
// App.Fun — only possible when the head resolved to an inferable term,
// since App.Fun : ITerm.
func (p *Parser) parseApp() (syntax.CTerm, error) {
	head, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	inf, ok := head.(syntax.Inf)
	if !ok {
		return head, nil
	}
	fn := inf.Term
	for beginsAtom(p.cur().Type) {
		arg, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		fn = syntax.App{Fun: fn, Arg: arg}
	}
	return syntax.Inf{Term: fn}, nil
}

func (p *Parser) parseAtom() (syntax.CTerm, error) {
	switch p.cur().Type {
	case Lambda:
		return p.parseLambda()
	case KwU:
		p.advance()
		return syntax.Universe{}, nil
	case KwI:
		p.advance()
		return syntax.MUnitType{}, nil
	case KwT:
		p.advance()
		return syntax.AUnitType{}, nil
	case KwTop:
		p.advance()
		return syntax.AUnit{}, nil
	case KwFst:
		p.advance()
		arg, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		inf, ok := arg.(syntax.Inf)
		if !ok {
			return nil, &SyntaxError{Span: p.cur().Span, Msg: "fst requires an inferable argument"}
		}
		return syntax.Inf{Term: syntax.Fst{Pair: inf.Term}}, nil
	case KwSnd:
		p.advance()
		arg, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		inf, ok := arg.(syntax.Inf)
		if !ok {
			return nil, &SyntaxError{Span: p.cur().Span, Msg: "snd requires an inferable argument"}
		}
		return syntax.Inf{Term: syntax.Snd{Pair: inf.Term}}, nil
	case LAngle:
		return p.parseAngle()
	case LParen:
		return p.parseParen()
	case KwLet:
		return p.parseElim()
	case Ident:
		tok := p.advance()
		return syntax.Inf{Term: p.resolve(tok.Text)}, nil
	default:
		return nil, &SyntaxError{Span: p.cur().Span, Msg: "expected an expression, found " + p.cur().Type.String()}
	}
}

// parseLambda parses `\ name+ . body`, desugaring multi-argument
// lambdas into nested single-binder Lam nodes, innermost name bound
// tightest (Bound 0 inside body).
func (p *Parser) parseLambda() (syntax.CTerm, error) {
	p.advance() // '\'
	var names []string
	for p.cur().Type == Ident {
		names = append(names, p.advance().Text)
	}
	if len(names) == 0 {
		return nil, &SyntaxError{Span: p.cur().Span, Msg: "lambda requires at least one bound name"}
	}
	if _, err := p.expect(Dot); err != nil {
		return nil, err
	}
	for _, n := range names {
		p.pushName(n)
	}
	body, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}
	p.popNames(len(names))
	result := body
	for range names {
		result = syntax.Lam{Body: result}
	}
	return result, nil
}

// parseAngle parses `<>` (MUnit) or `<fst, snd>` (MPair).
func (p *Parser) parseAngle() (syntax.CTerm, error) {
	p.advance() // '<'
	if p.cur().Type == RAngle {
		p.advance()
		return syntax.MUnit{}, nil
	}
	fst, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(Comma); err != nil {
		return nil, err
	}
	snd, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RAngle); err != nil {
		return nil, err
	}
	return syntax.MPair{Fst: fst, Snd: snd}, nil
}

// parseElim parses the two dependent eliminators, both spelled with a
// leading `let` in expression position (never ambiguous with the
// top-level `let` Stmt, which is only ever recognised by ParseStmt
// before any call into ParseExpr reaches here):
//
//	let <x, y> as z : Ty = e in Body    -- MPairElim
//	let <> as z : Ty = e in Body        -- MUnitElim
func (p *Parser) parseElim() (syntax.CTerm, error) {
	p.advance() // 'let'
	if _, err := p.expect(LAngle); err != nil {
		return nil, err
	}
	if p.cur().Type == RAngle {
		p.advance()
		return p.parseElimTail(nil)
	}
	xTok, err := p.expect(Ident)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(Comma); err != nil {
		return nil, err
	}
	yTok, err := p.expect(Ident)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RAngle); err != nil {
		return nil, err
	}
	return p.parseElimTail([]string{xTok.Text, yTok.Text})
}

// parseElimTail parses the `as z : Ty = e in Body` common to both
// eliminators. names is nil for MUnitElim, [x, y] for MPairElim; its
// order matches the evaluator's push(x).push(y) convention, so Bound 0
// inside Body is y and Bound 1 is x.
func (p *Parser) parseElimTail(names []string) (syntax.CTerm, error) {
	if _, err := p.expect(KwAs); err != nil {
		return nil, err
	}
	zTok, err := p.expect(Ident)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(Colon); err != nil {
		return nil, err
	}
	p.pushName(zTok.Text)
	motive, err := p.ParseExpr()
	p.popNames(1)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(Equals); err != nil {
		return nil, err
	}
	scrutinee, err := p.parseInferableTerm("pair/unit eliminator scrutinee")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(KwIn); err != nil {
		return nil, err
	}
	for _, n := range names {
		p.pushName(n)
	}
	body, err := p.ParseExpr()
	p.popNames(len(names))
	if err != nil {
		return nil, err
	}
	if names == nil {
		return syntax.Inf{Term: syntax.MUnitElim{Scrutinee: scrutinee, Body: body, Type: motive}}, nil
	}
	return syntax.Inf{Term: syntax.MPairElim{Scrutinee: scrutinee, Body: body, Type: motive}}, nil
}

// parseParen disambiguates the forms beginning with '(':
//   - `(q name : domain) -> codom` / `(q name : domain) * codom` /
//     `(name : domain) & codom`                                   — Pi/MPairType/APairType
//   - `(term : type)`                                             — Ann
//   - `(fst, snd)`                                                 — APair
//   - `()`                                                         — MUnit's cousin is `<>`; `()` has no meaning of its own here
//   - `(term)`                                                     — grouping
func (p *Parser) parseParen() (syntax.CTerm, error) {
	start := p.cur().Span
	p.advance() // '('

	if p.looksLikeBinder() {
		term, ok, err := p.tryParseBinderForm()
		if err != nil {
			return nil, err
		}
		if ok {
			return term, nil
		}
		// Not actually a binder — e.g. `(x : U & U)`, annotating a plain
		// reference rather than declaring a Pi/MPairType parameter.
		// tryParseBinderForm already rewound to right after '('.
	}

	if p.cur().Type == RParen {
		return nil, &SyntaxError{Span: start, Msg: "empty parentheses (); did you mean <> for the multiplicative unit?"}
	}

	first, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}
	switch p.cur().Type {
	case Colon:
		p.advance()
		ty, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RParen); err != nil {
			return nil, err
		}
		return syntax.Inf{Term: syntax.Ann{Term: first, Type: ty}}, nil
	case Comma:
		p.advance()
		second, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RParen); err != nil {
			return nil, err
		}
		return syntax.APair{Fst: first, Snd: second}, nil
	case RParen:
		p.advance()
		return first, nil
	default:
		return nil, &SyntaxError{Span: p.cur().Span, Msg: "expected ':', ',', or ')' , found " + p.cur().Type.String()}
	}
}

// looksLikeBinder peeks (without consuming) for a `usage? name :`
// prefix right after the '(' already consumed by parseParen. This is
// only a necessary condition, not sufficient: `(x : U & U)` also
// matches but is actually an Ann of a plain reference, not a binder —
// tryParseBinderForm resolves the ambiguity by committing only once
// an immediately-following ->, * or & confirms it.
func (p *Parser) looksLikeBinder() bool {
	k := 0
	switch p.peekAt(k).Type {
	case Number, KwOmega:
		k++
	}
	if p.peekAt(k).Type != Ident {
		return false
	}
	return p.peekAt(k+1).Type == Colon
}

// tryParseBinderForm attempts `(q name : domain) -> codom`,
// `(q name : domain) * codom`, or `(name : domain) & codom` starting
// right after the '(' consumed by parseParen. If domain and the
// closing ')' parse but no ->, *, or & follows, the position is
// rewound to its entry point and (nil, false, nil) is returned so the
// caller can reparse the same tokens as a plain Ann/grouping/APair
// instead — e.g. `(x : U & U)`'s outer parens look like a binder up
// through ':' but are actually annotating the reference `x` (the
// inner `U & U` is its type, not a continuation of this binder). A
// genuine parse failure (bad domain, missing ')') is propagated as an
// error rather than silently falling back, since looksLikeBinder
// already confirmed a binder-shaped prefix.
func (p *Parser) tryParseBinderForm() (syntax.CTerm, bool, error) {
	save := p.pos
	q, name, err := p.parseUsageAndName()
	if err != nil {
		p.pos = save
		return nil, false, nil
	}
	if _, err := p.expect(Colon); err != nil {
		p.pos = save
		return nil, false, nil
	}
	domain, err := p.ParseExpr()
	if err != nil {
		return nil, false, err
	}
	if _, err := p.expect(RParen); err != nil {
		return nil, false, err
	}
	if p.cur().Type != Arrow && p.cur().Type != Star && p.cur().Type != Amp {
		p.pos = save
		return nil, false, nil
	}
	p.pushName(name)
	defer p.popNames(1)
	switch p.cur().Type {
	case Arrow:
		p.advance()
		codom, err := p.ParseExpr()
		if err != nil {
			return nil, true, err
		}
		return syntax.Pi{Usage: q, Domain: domain, Codom: codom}, true, nil
	case Star:
		p.advance()
		codom, err := p.ParseExpr()
		if err != nil {
			return nil, true, err
		}
		return syntax.MPairType{Usage: q, Domain: domain, Codom: codom}, true, nil
	default: // Amp
		p.advance()
		codom, err := p.ParseExpr()
		if err != nil {
			return nil, true, err
		}
		return syntax.APairType{Fst: domain, Snd: codom}, true, nil
	}
}

// --- REPL command lines ----------------------------------------------

var commandNames = map[string]CommandKind{
	"type":   CmdType,
	"browse": CmdBrowse,
	"load":   CmdLoad,
	"quit":   CmdQuit,
	"help":   CmdHelp,
}

// ParseCommandLine recognises a REPL command line (`:type <expr>`,
// `:browse`, `:load <file>`, `:quit`, `:help`). Arg is the raw,
// trimmed remainder of the line — the caller re-parses it as an
// expression (CmdType) or treats it as a filename (CmdLoad).
func ParseCommandLine(line string) (CommandLine, error) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, ":") {
		return CommandLine{}, &SyntaxError{Msg: "not a command: " + line}
	}
	rest := trimmed[1:]
	word := rest
	var arg string
	if idx := strings.IndexAny(rest, " \t"); idx >= 0 {
		word = rest[:idx]
		arg = strings.TrimSpace(rest[idx+1:])
	}
	kind, ok := commandNames[word]
	if !ok {
		return CommandLine{}, &SyntaxError{Msg: "unknown command :" + word}
	}
	return CommandLine{Kind: kind, Arg: arg}, nil
}
