package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/janus-lang/janus/pkg/syntax"
)

func TestReplHistoryAddSkipsBlanksAndConsecutiveRepeats(t *testing.T) {
	dir := t.TempDir()
	h := newReplHistory(filepath.Join(dir, "history"))

	h.Add("")
	h.Add("eval x")
	h.Add("eval x")
	h.Add("eval y")

	require.Equal(t, []string{"eval x", "eval y"}, h.entries)
}

func TestReplHistoryPersistsAcrossLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "history")
	h := newReplHistory(path)
	h.Add("assume (0 a : U)")
	h.Add("eval a")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "assume (0 a : U)\neval a\n", string(data))

	reloaded := newReplHistory(path)
	require.Equal(t, []string{"assume (0 a : U)", "eval a"}, reloaded.entries)
}

func TestTypeCommandPrintsInferredType(t *testing.T) {
	state := NewIState(&bytes.Buffer{})
	require.NoError(t, execProgram(t, state, `assume (0 a : U) (1 x : a)`))
	require.NoError(t, typeCommand(state, "x"))
}

func TestTypeCommandPropagatesParseErrors(t *testing.T) {
	state := NewIState(&bytes.Buffer{})
	err := typeCommand(state, "(")
	require.Error(t, err)
}

func TestBrowseListsOnlyGlobalBindings(t *testing.T) {
	state := NewIState(&bytes.Buffer{})
	require.NoError(t, execProgram(t, state, `assume (0 a : U) (1 x : a)`))

	var names []string
	for _, b := range state.context.Types {
		if g, ok := b.Name.(syntax.Global); ok {
			names = append(names, string(g))
		}
	}
	require.ElementsMatch(t, []string{"a", "x"}, names)
}

func TestLoadFileRunsEveryStatementInOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prelude.janus")
	require.NoError(t, os.WriteFile(path, []byte("assume (0 a : U) (1 x : a)\nlet 1 y = x\n"), 0o644))

	state := NewIState(&bytes.Buffer{})
	logger := newLogger(false, false)
	require.NoError(t, loadFile(state, path, logger))

	_, ok := state.context.Lookup(syntax.Global("y"))
	require.True(t, ok)
}

func TestLoadFileReturnsErrorForMissingFile(t *testing.T) {
	state := NewIState(&bytes.Buffer{})
	logger := newLogger(false, false)
	err := loadFile(state, filepath.Join(t.TempDir(), "nope.janus"), logger)
	require.Error(t, err)
}

func TestHelpEntriesCoverAllFiveCommands(t *testing.T) {
	require.Len(t, helpEntries, 5)
	var names []string
	for _, e := range helpEntries {
		names = append(names, e.name)
	}
	require.ElementsMatch(t, []string{"type", "browse", "load", "quit", "help"}, names)
}
