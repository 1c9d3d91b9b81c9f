package prettyprint

import (
	"os"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-isatty"
)

// Styles reuse the teacher REPL's palette (cmd/dang/repl.go's
// promptStyle/resultStyle/errorStyle/dimStyle colour numbers) so a
// Janus REPL session reads consistently with the one it was modelled
// on: 63 (prompt/unrestricted), 42 (result/linear), 196 (error), 241
// (dim/source context). Erased (0) gets its own muted grey, 8, since
// the teacher has no usage-semiring concept to reuse a colour from.
var (
	boldStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	zeroStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	oneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	manyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
)

func applyStyle(kind StyleKind, s string) string {
	switch kind {
	case StyleBold:
		return boldStyle.Render(s)
	case StyleDim:
		return dimStyle.Render(s)
	case StyleError:
		return errorStyle.Render(s)
	case StyleZero:
		return zeroStyle.Render(s)
	case StyleOne:
		return oneStyle.Render(s)
	case StyleMany:
		return manyStyle.Render(s)
	default:
		return s
	}
}

// ColorEnabled reports whether Render should apply lipgloss styling:
// standard output must be an interactive terminal and NO_COLOR must be
// unset, matching the degrade-to-plain-text behaviour §4.8 calls for
// under redirection or NO_COLOR.
func ColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}
