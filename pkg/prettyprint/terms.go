package prettyprint

import (
	"fmt"

	"github.com/janus-lang/janus/pkg/semiring"
	"github.com/janus-lang/janus/pkg/syntax"
)

// UsageStyle picks the StyleKind matching a usage semiring element, so
// the three usages read as three distinct colours in a terminal.
func UsageStyle(q semiring.Q) StyleKind {
	switch q {
	case semiring.Zero:
		return StyleZero
	case semiring.One:
		return StyleOne
	default:
		return StyleMany
	}
}

// Usage renders a usage element styled by UsageStyle.
func Usage(q semiring.Q) Doc {
	return Styled(UsageStyle(q), Text(q.String()))
}

// NameDoc renders a Name plainly — Global/Local/Quote's own Stringer
// already produces the right surface spelling for each.
func NameDoc(n syntax.Name) Doc {
	return Text(n.String())
}

// CTerm renders a checkable term as a structured Doc, grouping binary
// operators and nesting the bodies of binders rather than Sprintf'ing
// syntax.CTerm.String()'s flat form directly.
func CTerm(c syntax.CTerm) Doc {
	switch t := c.(type) {
	case syntax.Inf:
		return ITerm(t.Term)
	case syntax.Lam:
		return Group(Concat(Text("\\. "), Nest(2, CTerm(t.Body))))
	case syntax.Universe:
		return Text("U")
	case syntax.Pi:
		return binder("(", Usage(t.Usage), t.Domain, "->", t.Codom)
	case syntax.MPairType:
		return binder("(", Usage(t.Usage), t.Domain, "*", t.Codom)
	case syntax.MPair:
		return Group(Concat(Text("<"), CTerm(t.Fst), Text(","), Line(), CTerm(t.Snd), Text(">")))
	case syntax.MUnitType:
		return Text("I")
	case syntax.MUnit:
		return Text("<>")
	case syntax.APairType:
		return Group(Concat(CTerm(t.Fst), Text(" &"), Line(), CTerm(t.Snd)))
	case syntax.APair:
		return Group(Concat(Text("("), CTerm(t.Fst), Text(","), Line(), CTerm(t.Snd), Text(")")))
	case syntax.AUnitType:
		return Text("T")
	case syntax.AUnit:
		return Text("top")
	default:
		return Text(fmt.Sprintf("%s", c))
	}
}

// binder renders the common `(q x : domain) op codom` shape Pi and
// MPairType share.
func binder(open string, usage Doc, domain syntax.CTerm, op string, codom syntax.CTerm) Doc {
	return Group(Concat(
		Text(open), usage, Text(" x : "), CTerm(domain), Text(") "+op),
		Line(),
		Nest(2, CTerm(codom)),
	))
}

// ITerm renders an inferable term as a structured Doc.
func ITerm(i syntax.ITerm) Doc {
	switch t := i.(type) {
	case syntax.Ann:
		return Group(Concat(Text("("), CTerm(t.Term), Text(" :"), Line(), CTerm(t.Type), Text(")")))
	case syntax.Bound:
		return Text(fmt.Sprintf("#%d", t.Index))
	case syntax.Free:
		return NameDoc(t.Name)
	case syntax.App:
		return Group(Concat(ITerm(t.Fun), Text("("), CTerm(t.Arg), Text(")")))
	case syntax.Fst:
		return Concat(Text("fst "), ITerm(t.Pair))
	case syntax.Snd:
		return Concat(Text("snd "), ITerm(t.Pair))
	case syntax.MPairElim:
		return Group(Concat(
			Text("let <x,y> as z : "), CTerm(t.Type), Text(" ="), Line(),
			Nest(2, ITerm(t.Scrutinee)), Line(),
			Text("in "), Nest(2, CTerm(t.Body)),
		))
	case syntax.MUnitElim:
		return Group(Concat(
			Text("let <> as z : "), CTerm(t.Type), Text(" ="), Line(),
			Nest(2, ITerm(t.Scrutinee)), Line(),
			Text("in "), Nest(2, CTerm(t.Body)),
		))
	default:
		return Text(fmt.Sprintf("%s", i))
	}
}
