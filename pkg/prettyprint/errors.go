package prettyprint

import (
	"fmt"

	"github.com/janus-lang/janus/pkg/semiring"
	"github.com/janus-lang/janus/pkg/typecheck"
)

// Error renders one of typecheck's five user-facing ErrorKinds as a
// styled Doc: a bold "Error:" header naming the kind, the offending
// term/type highlighted, and (for MultiplicityError) one entry per
// offender with its name highlighted, each on its own line when the
// message does not fit the width. Any other error — including an internal invariant
// violation typecheck.IsInternal flags — falls back to its plain
// Error() text with no highlighting, since those aren't meant to be
// read as a diagnosis of the user's program.
func Error(err error) Doc {
	switch e := err.(type) {
	case *typecheck.MultiplicityError:
		header := "multiplicity error"
		if e.HasLabel {
			header = fmt.Sprintf("multiplicity error at %s", e.Label)
		}
		lines := []Doc{Concat(Styled(StyleBold, Text("Error:")), Text(" "+header))}
		for _, o := range e.Offenders {
			lines = append(lines, Nest(2, Concat(
				Line(),
				Styled(StyleError, NameDoc(o.Name)),
				Text(" : "), Value(o.Type),
				Text(" used "), Usage(o.Used),
				Text(", available "), Usage(o.Available),
			)))
		}
		return Group(Concat(lines...))
	case *typecheck.ErasureError:
		return Concat(
			Styled(StyleBold, Text("Error:")), Text(" erasure error — "),
			Styled(StyleError, Text(e.Term.String())),
			Text(" used with relevance implying usage "), Usage(e.Usage),
			Text(", expected "), Usage(semiring.Zero),
		)
	case *typecheck.InferenceError:
		return Group(Concat(
			Styled(StyleBold, Text("Error:")), Text(" inference error — expected "),
			Styled(StyleDim, Text(e.ExpectedShape)),
			Text(", inferred"), Line(),
			Nest(2, Value(e.Actual)),
			Text(", in "), Styled(StyleError, Text(e.Term.String())),
		))
	case *typecheck.CheckError:
		return Group(Concat(
			Styled(StyleBold, Text("Error:")), Text(" check error — no rule applies to check "),
			Styled(StyleError, Text(e.Term.String())),
			Text(" against"), Line(),
			Nest(2, Value(e.Expected)),
		))
	case *typecheck.UnknownVarError:
		return Concat(
			Styled(StyleBold, Text("Error:")), Text(" unknown variable "),
			Styled(StyleError, NameDoc(e.Name)),
		)
	default:
		return Text(err.Error())
	}
}
