package microlisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func read(t *testing.T, source string) Value {
	t.Helper()
	ctx := NewContext()
	value, err := ReadStr(&ctx, source)
	require.NoError(t, err)
	return value
}

func TestReadInteger(t *testing.T) {
	value := read(t, "123")
	assert.IsType(t, &Integer{}, value)
	assert.Equal(t, "123", value.String())
}

func TestReadString(t *testing.T) {
	value := read(t, `"abc"`)
	require.IsType(t, &String{}, value)
	assert.Equal(t, "abc", value.(*String).Data())
	assert.Equal(t, `"abc"`, value.String())
}

func TestReadEmptyString(t *testing.T) {
	value := read(t, `""`)
	require.IsType(t, &String{}, value)
	assert.Equal(t, "", value.(*String).Data())
}

func TestReadStringWithEscapedQuoteIsSymbol(t *testing.T) {
	value := read(t, `"a\"b"`)
	assert.IsType(t, &Symbol{}, value)
	assert.Equal(t, `"a\"b"`, value.String())
}

func TestReadUnterminatedStringIsSymbol(t *testing.T) {
	value := read(t, `"abc`)
	assert.IsType(t, &Symbol{}, value)
}

func TestReadBooleansAndNil(t *testing.T) {
	assert.Equal(t, &Boolean{true}, read(t, "true"))
	assert.Equal(t, &Boolean{false}, read(t, "false"))
	assert.IsType(t, &Nil{}, read(t, "nil"))
}

func TestReadSymbol(t *testing.T) {
	value := read(t, "+")
	assert.Equal(t, &Symbol{"+"}, value)
	assert.Equal(t, &Symbol{"-1"}, read(t, "-1"))
	assert.Equal(t, &Symbol{"nil?"}, read(t, "nil?"))
}

func TestReadList(t *testing.T) {
	value := read(t, "(+ 1 2)")
	require.IsType(t, &List{}, value)
	assert.Equal(t, 3, value.(*List).Len())
	assert.Equal(t, "(+ 1 2)", value.String())
}

func TestReadNestedList(t *testing.T) {
	value := read(t, "( + 2 (* 3 4) )")
	require.IsType(t, &List{}, value)
	assert.Equal(t, "(+ 2 (* 3 4))", value.String())
	assert.IsType(t, &List{}, value.(*List).Slice()[2])
}

func TestReadEmptyList(t *testing.T) {
	value := read(t, "()")
	require.IsType(t, &List{}, value)
	assert.True(t, value.(*List).IsEmpty())
}

func TestReadSkipsComments(t *testing.T) {
	assert.Equal(t, "(a b)", read(t, "(a ; comment\n b)").String())
	assert.Equal(t, "x", read(t, "; leading\nx").String())
}

func TestReadIgnoresTrailingForms(t *testing.T) {
	assert.Equal(t, "1", read(t, "1 2 3").String())
}

func TestReadShorthandIsNotExpanded(t *testing.T) {
	assert.Equal(t, &Symbol{"'"}, read(t, "'x"))
	assert.Equal(t, "(' x)", read(t, "('x)").String())
}

func TestReadUnmatchedCloseReadsAsSymbol(t *testing.T) {
	assert.Equal(t, &Symbol{")"}, read(t, ")"))
}

func TestReadUnterminatedList(t *testing.T) {
	ctx := NewContext()
	for _, source := range []string{"(", "(+ 1 2", "(a (b c)", ""} {
		_, err := ReadStr(&ctx, source)
		require.Error(t, err, source)
		assert.IsType(t, ParseError{}, err)
		assert.True(t, IsIncomplete(err), source)
		assert.EqualError(t, err, "unexpected end of input")
	}
}

func TestReadIntegerOutOfRange(t *testing.T) {
	ctx := NewContext()
	_, err := ReadStr(&ctx, "99999999999999999999")
	require.Error(t, err)
	assert.False(t, IsIncomplete(err))
	assert.EqualError(t, err, "integer literal `99999999999999999999` is out of range")
}

func TestReadErrorLocation(t *testing.T) {
	ctx := NewContext()
	_, err := ReadAll(&ctx, "(a\n b\n", &SourceLocation{"test.lisp", 1})
	var parseError ParseError
	require.ErrorAs(t, err, &parseError)
	require.NotNil(t, parseError.Location)
	assert.Equal(t, "test.lisp", parseError.Location.File)
	assert.Equal(t, 2, parseError.Location.Line)
}

func TestReadAll(t *testing.T) {
	ctx := NewContext()
	forms, err := ReadAll(&ctx, "(def! x 1) ; set\n x \"s\"", nil)
	require.NoError(t, err)
	require.Len(t, forms, 3)
	assert.Equal(t, "(def! x 1)", forms[0].String())
	assert.Equal(t, "x", forms[1].String())
	assert.Equal(t, `"s"`, forms[2].String())

	forms, err = ReadAll(&ctx, " ; nothing\n", nil)
	require.NoError(t, err)
	assert.Empty(t, forms)
}

func TestReaderPeekAndNext(t *testing.T) {
	ctx := NewContext()
	reader := NewReader(&ctx, Lex("a b", nil))

	token, err := reader.Peek()
	require.NoError(t, err)
	assert.Equal(t, "a", token.Literal)

	token, err = reader.Next()
	require.NoError(t, err)
	assert.Equal(t, "a", token.Literal)

	token, err = reader.Next()
	require.NoError(t, err)
	assert.Equal(t, "b", token.Literal)

	_, err = reader.Peek()
	assert.True(t, IsIncomplete(err))
}

func TestReadStringKeepsInvalidUTF8(t *testing.T) {
	value := read(t, "\"a\xffb\"")
	require.IsType(t, &String{}, value)
	assert.Equal(t, "a\xffb", value.(*String).Data())
}
