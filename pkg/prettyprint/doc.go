// Package prettyprint renders Janus's terms, values and error taxonomy
// into a small Wadler-style Doc tree (text, concat, nest, group — the
// usual layout combinators, implemented directly here since no pack
// example carries a dedicated pretty-printing library) and lays that
// tree out against a target width with charm.land/lipgloss/v2 styling
// applied when rendering to an interactive, colour-capable terminal.
//
// This is a second, structured rendering distinct from syntax's own
// Stringer methods: those exist purely for compact %v/debug output and
// never import prettyprint, avoiding a cycle (syntax is lower in the
// dependency graph than prettyprint). prettyprint's Doc trees add the
// grouping and indentation a REPL's :type output wants for anything
// beyond a one-line term.
package prettyprint

import (
	"strings"
	"unicode/utf8"
)

// Doc is an immutable pretty-printing document.
type Doc interface {
	isDoc()
}

type textDoc string

func (textDoc) isDoc() {}

type concatDoc struct{ docs []Doc }

func (concatDoc) isDoc() {}

type nestDoc struct {
	indent int
	doc    Doc
}

func (nestDoc) isDoc() {}

// lineDoc is a soft break: a single space when its enclosing group is
// laid out flat, a newline plus the current indent when broken.
type lineDoc struct{}

func (lineDoc) isDoc() {}

// groupDoc tries to lay out its contents on one line; Render only
// breaks its lineDocs if the flattened group doesn't fit the
// remaining width.
type groupDoc struct{ doc Doc }

func (groupDoc) isDoc() {}

// styledDoc tags a subtree with a semantic style that Render applies
// as lipgloss styling when colour output is enabled, and ignores
// otherwise. Style nesting is by the innermost enclosing styledDoc —
// intended usage is wrapping leaf Text, not whole multi-line subtrees.
type styledDoc struct {
	kind StyleKind
	doc  Doc
}

func (styledDoc) isDoc() {}

// StyleKind names a semantic highlight Render applies via lipgloss.
type StyleKind int

const (
	StyleNone StyleKind = iota
	StyleBold           // section headers, e.g. "Error:"
	StyleDim            // source context, separators
	StyleError          // the offending term/type in an error message
	StyleZero           // the erased (0) semiring element
	StyleOne            // the linear (1) semiring element
	StyleMany           // the unrestricted (w) semiring element
)

// Text is a leaf document holding literal text with no embedded line
// breaks.
func Text(s string) Doc { return textDoc(s) }

// Concat sequences documents with no separator.
func Concat(docs ...Doc) Doc { return concatDoc{docs: docs} }

// Nest increases the indent used by any lineDoc inside d by n columns.
func Nest(n int, d Doc) Doc { return nestDoc{indent: n, doc: d} }

// Line is a soft line break: a space when flat, a newline+indent when
// its enclosing Group breaks.
func Line() Doc { return lineDoc{} }

// Group lays its contents out flat if they fit in the remaining
// width, or breaks every Line inside otherwise.
func Group(d Doc) Doc { return groupDoc{doc: d} }

// Styled tags d with a semantic highlight kind for Render to apply.
func Styled(kind StyleKind, d Doc) Doc { return styledDoc{kind: kind, doc: d} }

// Join concatenates docs with sep placed between each pair.
func Join(sep Doc, docs ...Doc) Doc {
	if len(docs) == 0 {
		return Text("")
	}
	parts := make([]Doc, 0, 2*len(docs)-1)
	for i, d := range docs {
		if i > 0 {
			parts = append(parts, sep)
		}
		parts = append(parts, d)
	}
	return Concat(parts...)
}

// DefaultWidth is the target line width Render wraps against absent a
// narrower request (e.g. from a REPL that knows its terminal size).
const DefaultWidth = 80

type layoutMode int

const (
	modeFlat layoutMode = iota
	modeBreak
)

type item struct {
	indent int
	mode   layoutMode
	style  StyleKind
	doc    Doc
}

// RenderPlain lays d out against width columns with no styling — the
// deterministic form used by tests and any caller writing to a
// non-interactive destination.
func RenderPlain(d Doc, width int) string {
	return render(d, width, false)
}

// Render lays d out against DefaultWidth and additionally applies
// lipgloss styling when standard output is an interactive,
// colour-capable terminal (degrading to RenderPlain's output under
// NO_COLOR or when redirected) — the entry point named in §4.8.
func Render(d Doc) string {
	return render(d, DefaultWidth, ColorEnabled())
}

// RenderWidth is Render with an explicit target width, for a caller
// that knows its terminal size (or a configured override) instead of
// assuming DefaultWidth.
func RenderWidth(d Doc, width int) string {
	return render(d, width, ColorEnabled())
}

func render(d Doc, width int, color bool) string {
	var b strings.Builder
	col := 0
	stack := []item{{indent: 0, mode: modeBreak, style: StyleNone, doc: d}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch x := it.doc.(type) {
		case textDoc:
			s := string(x)
			col += utf8.RuneCountInString(s)
			if color && it.style != StyleNone {
				s = applyStyle(it.style, s)
			}
			b.WriteString(s)
		case concatDoc:
			for i := len(x.docs) - 1; i >= 0; i-- {
				stack = append(stack, item{indent: it.indent, mode: it.mode, style: it.style, doc: x.docs[i]})
			}
		case nestDoc:
			stack = append(stack, item{indent: it.indent + x.indent, mode: it.mode, style: it.style, doc: x.doc})
		case styledDoc:
			stack = append(stack, item{indent: it.indent, mode: it.mode, style: x.kind, doc: x.doc})
		case groupDoc:
			flat := item{indent: it.indent, mode: modeFlat, style: it.style, doc: x.doc}
			if it.mode == modeBreak && flatWidth(x.doc) > width-col {
				stack = append(stack, item{indent: it.indent, mode: modeBreak, style: it.style, doc: x.doc})
			} else {
				stack = append(stack, flat)
			}
		case lineDoc:
			if it.mode == modeFlat {
				b.WriteString(" ")
				col++
			} else {
				b.WriteString("\n")
				b.WriteString(strings.Repeat(" ", it.indent))
				col = it.indent
			}
		}
	}
	return b.String()
}

// flatWidth measures how many columns d would take laid out flat — a
// single-group lookahead rather than Wadler's full rest-of-document
// fits check, which is simpler and, for terms/values/errors this size,
// never produces a visibly worse wrap.
func flatWidth(d Doc) int {
	switch x := d.(type) {
	case textDoc:
		return utf8.RuneCountInString(string(x))
	case concatDoc:
		total := 0
		for _, c := range x.docs {
			total += flatWidth(c)
		}
		return total
	case nestDoc:
		return flatWidth(x.doc)
	case styledDoc:
		return flatWidth(x.doc)
	case groupDoc:
		return flatWidth(x.doc)
	case lineDoc:
		return 1
	default:
		return 0
	}
}
