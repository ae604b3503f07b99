package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ashn.dev/microlisp"
)

func TestParseArgsFile(t *testing.T) {
	opts, err := parseArgs([]string{"prog.lisp"})
	require.NoError(t, err)
	require.NotNil(t, opts.file)
	assert.Equal(t, "prog.lisp", *opts.file)
	assert.Nil(t, opts.cmds)
}

func TestParseArgsCommand(t *testing.T) {
	opts, err := parseArgs([]string{"-c", "(+ 1 2)"})
	require.NoError(t, err)
	require.NotNil(t, opts.cmds)
	assert.Equal(t, "(+ 1 2)", *opts.cmds)

	opts, err = parseArgs([]string{"--command=(list)", "--dump-ast"})
	require.NoError(t, err)
	require.NotNil(t, opts.cmds)
	assert.Equal(t, "(list)", *opts.cmds)
	assert.True(t, opts.dumpAst)
	assert.False(t, opts.dumpTokens)

	_, err = parseArgs([]string{"-c"})
	assert.EqualError(t, err, "expected command argument")
}

func TestParseArgsVerbatimFile(t *testing.T) {
	opts, err := parseArgs([]string{"--dump-tokens", "--", "-odd.lisp"})
	require.NoError(t, err)
	require.NotNil(t, opts.file)
	assert.Equal(t, "-odd.lisp", *opts.file)
	assert.True(t, opts.dumpTokens)

	opts, err = parseArgs([]string{"--"})
	require.NoError(t, err)
	assert.Nil(t, opts.file)
}

func TestParseArgsRejectsExtraArguments(t *testing.T) {
	_, err := parseArgs([]string{"a.lisp", "b.lisp"})
	assert.EqualError(t, err, "unexpected argument b.lisp")

	_, err = parseArgs([]string{"--", "a.lisp", "b.lisp"})
	assert.EqualError(t, err, "unexpected argument b.lisp")

	_, err = parseArgs([]string{"a.lisp", "--", "b.lisp"})
	assert.EqualError(t, err, "unexpected argument b.lisp")
}

func TestParseArgsFlags(t *testing.T) {
	opts, err := parseArgs([]string{"-h"})
	require.NoError(t, err)
	assert.True(t, opts.help)

	_, err = parseArgs([]string{"--verbose"})
	assert.EqualError(t, err, "unknown flag --verbose")
}

func TestIsBlank(t *testing.T) {
	ctx := microlisp.NewContext()
	assert.True(t, isBlank(&ctx, ""))
	assert.True(t, isBlank(&ctx, "   "))
	assert.True(t, isBlank(&ctx, "; just a comment"))
	assert.True(t, isBlank(&ctx, ";; one\n  ; two"))
	assert.False(t, isBlank(&ctx, "nil"))
	assert.False(t, isBlank(&ctx, "1 ; trailing"))
	assert.False(t, isBlank(&ctx, "99999999999999999999"))
}
