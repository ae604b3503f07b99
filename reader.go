package microlisp

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	literalTrue  = "true"
	literalFalse = "false"
	literalNil   = "nil"
)

type Reader struct {
	ctx      *Context
	tokens   []Token
	position int
	location *SourceLocation // Reported when the input runs out.
}

// Comment tokens are dropped before reading.
func NewReader(ctx *Context, tokens []Token) Reader {
	forms := make([]Token, 0, len(tokens))
	for _, token := range tokens {
		if token.Kind != TOKEN_COMMENT {
			forms = append(forms, token)
		}
	}

	var location *SourceLocation
	if len(tokens) != 0 {
		location = tokens[len(tokens)-1].Location
	}

	return Reader{
		ctx:      ctx,
		tokens:   forms,
		position: 0,
		location: location,
	}
}

func (self *Reader) eofError() ParseError {
	return ParseError{
		Location:   self.location,
		why:        "unexpected end of input",
		incomplete: true,
	}
}

func (self *Reader) isEof() bool {
	return self.position >= len(self.tokens)
}

func (self *Reader) Peek() (Token, error) {
	if self.isEof() {
		return Token{}, self.eofError()
	}
	return self.tokens[self.position], nil
}

func (self *Reader) Next() (Token, error) {
	token, err := self.Peek()
	if err != nil {
		return Token{}, err
	}
	self.position += 1
	return token, nil
}

func (self *Reader) ReadForm() (Value, error) {
	token, err := self.Next()
	if err != nil {
		return nil, err
	}
	if token.Kind == TOKEN_LPAREN {
		return self.readList()
	}
	return self.readAtom(token)
}

// The terminator is recognized by symbol equality on whatever ReadForm
// returns, so any atom reading as the symbol ")" closes the list.
func (self *Reader) readList() (Value, error) {
	elements := make([]Value, 0)
	for {
		form, err := self.ReadForm()
		if err != nil {
			return nil, err
		}
		if symbol, ok := form.(*Symbol); ok && symbol.name == TOKEN_RPAREN {
			break
		}
		elements = append(elements, form)
	}
	return self.ctx.NewList(elements), nil
}

func isInteger(literal string) bool {
	if len(literal) == 0 {
		return false
	}
	for _, r := range literal {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Strings holding an escaped quote fail the two-quote rule and read as
// symbols.
func isString(literal string) bool {
	return strings.HasPrefix(literal, "\"") &&
		strings.HasSuffix(literal, "\"") &&
		strings.Count(literal, "\"") == 2
}

func (self *Reader) readAtom(token Token) (Value, error) {
	literal := token.Literal

	if literal == literalTrue || literal == literalFalse {
		return self.ctx.NewBoolean(literal == literalTrue), nil
	}

	if isInteger(literal) {
		data, err := strconv.ParseInt(literal, 10, 64)
		if err != nil {
			return nil, ParseError{
				Location: token.Location,
				why:      fmt.Sprintf("integer literal %s is out of range", quote(literal)),
			}
		}
		return self.ctx.NewInteger(data), nil
	}

	if literal == literalNil {
		return self.ctx.Nil, nil
	}

	if isString(literal) {
		return self.ctx.NewString(literal[1 : len(literal)-1]), nil
	}

	return self.ctx.NewSymbol(literal), nil
}

// Reads the first form of source. Trailing tokens are ignored.
func ReadStr(ctx *Context, source string) (Value, error) {
	reader := NewReader(ctx, Lex(source, nil))
	return reader.ReadForm()
}

// Reads every form of source in order.
func ReadAll(ctx *Context, source string, location *SourceLocation) ([]Value, error) {
	reader := NewReader(ctx, Lex(source, location))
	forms := make([]Value, 0)
	for !reader.isEof() {
		form, err := reader.ReadForm()
		if err != nil {
			return nil, err
		}
		forms = append(forms, form)
	}
	return forms, nil
}
