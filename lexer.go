package microlisp

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token Kinds
const (
	// Meta
	TOKEN_EOF = "end-of-file"
	// Atoms and Literals
	TOKEN_ATOM    = "atom"
	TOKEN_STRING  = "string"
	TOKEN_COMMENT = "comment"
	// Delimiters
	TOKEN_LPAREN   = "("
	TOKEN_RPAREN   = ")"
	TOKEN_LBRACKET = "["
	TOKEN_RBRACKET = "]"
	TOKEN_LBRACE   = "{"
	TOKEN_RBRACE   = "}"
	// Reader Macro Characters
	TOKEN_QUOTE          = "'"
	TOKEN_QUASIQUOTE     = "`"
	TOKEN_UNQUOTE        = "~"
	TOKEN_SPLICE_UNQUOTE = "~@"
	TOKEN_META           = "^"
	TOKEN_DEREF          = "@"
)

// Characters that always form a token on their own.
const singleCharacterTokens = "[]{}()'`~^@"

// Characters that end an atom.
const atomTerminators = "[]{}('\"`,;)"

type Token struct {
	Kind     string
	Literal  string
	Location *SourceLocation // Optional
}

func (self Token) String() string {
	return self.Kind
}

func (self Token) IntoValue(ctx *Context) Value {
	line := Value(ctx.Nil)
	if self.Location != nil {
		line = ctx.NewInteger(int64(self.Location.Line))
	}
	return ctx.NewList([]Value{
		ctx.NewString(self.Kind),
		ctx.NewString(self.Literal),
		line,
	})
}

// Scans source by byte offset so token literals are exact slices of the
// input, invalid UTF-8 included.
type Lexer struct {
	source   string
	location SourceLocation
	position int
}

func NewLexer(source string, location *SourceLocation) Lexer {
	lexer := Lexer{
		source:   source,
		location: SourceLocation{"<string>", 1},
		position: 0,
	}
	if location != nil {
		lexer.location = *location
	}
	return lexer
}

// Splits source into the literal text of its tokens, comments included.
func Tokenize(source string) []string {
	tokens := make([]string, 0)
	lexer := NewLexer(source, nil)
	for token := lexer.NextToken(); token.Kind != TOKEN_EOF; token = lexer.NextToken() {
		tokens = append(tokens, token.Literal)
	}
	return tokens
}

// Lexes every token in source, excluding the trailing end-of-file token.
func Lex(source string, location *SourceLocation) []Token {
	tokens := make([]Token, 0)
	lexer := NewLexer(source, location)
	for token := lexer.NextToken(); token.Kind != TOKEN_EOF; token = lexer.NextToken() {
		tokens = append(tokens, token)
	}
	return tokens
}

func (self *Lexer) currentRune() rune {
	if self.isEof() {
		return rune(0)
	}
	r, _ := utf8.DecodeRuneInString(self.source[self.position:])
	return r
}

func (self *Lexer) peekRune() rune {
	if self.isEof() {
		return rune(0)
	}
	_, size := utf8.DecodeRuneInString(self.source[self.position:])
	if self.position+size >= len(self.source) {
		return rune(0)
	}
	r, _ := utf8.DecodeRuneInString(self.source[self.position+size:])
	return r
}

func (self *Lexer) isEof() bool {
	return self.position >= len(self.source)
}

func (self *Lexer) advanceRune() {
	if self.isEof() {
		return
	}
	r, size := utf8.DecodeRuneInString(self.source[self.position:])
	if r == '\n' {
		self.location.Line += 1
	}
	self.position += size
}

func (self *Lexer) skipWhitespaceAndCommas() {
	for !self.isEof() && (unicode.IsSpace(self.currentRune()) || self.currentRune() == ',') {
		self.advanceRune()
	}
}

func (self *Lexer) newToken(kind string, start int, location *SourceLocation) Token {
	return Token{
		Kind:     kind,
		Literal:  self.source[start:self.position],
		Location: location,
	}
}

// The closing quote is optional. An unterminated string runs to the end of
// the input and is left for the reader to classify.
func (self *Lexer) lexString(start int, location *SourceLocation) Token {
	self.advanceRune() // opening quote
	for !self.isEof() {
		if self.currentRune() == '\\' {
			self.advanceRune()
			self.advanceRune()
			continue
		}
		if self.currentRune() == '"' {
			self.advanceRune()
			break
		}
		self.advanceRune()
	}
	return self.newToken(TOKEN_STRING, start, location)
}

func (self *Lexer) lexComment(start int, location *SourceLocation) Token {
	for !self.isEof() && self.currentRune() != '\n' {
		self.advanceRune()
	}
	return self.newToken(TOKEN_COMMENT, start, location)
}

func (self *Lexer) lexAtom(start int, location *SourceLocation) Token {
	for !self.isEof() {
		r := self.currentRune()
		if unicode.IsSpace(r) || strings.ContainsRune(atomTerminators, r) {
			break
		}
		self.advanceRune()
	}
	return self.newToken(TOKEN_ATOM, start, location)
}

func (self *Lexer) NextToken() Token {
	self.skipWhitespaceAndCommas()
	location := &SourceLocation{self.location.File, self.location.Line}
	start := self.position

	if self.isEof() {
		return Token{
			Kind:     TOKEN_EOF,
			Literal:  "",
			Location: location,
		}
	}

	if self.currentRune() == '~' && self.peekRune() == '@' {
		self.advanceRune()
		self.advanceRune()
		return self.newToken(TOKEN_SPLICE_UNQUOTE, start, location)
	}

	if strings.ContainsRune(singleCharacterTokens, self.currentRune()) {
		kind := string(self.currentRune())
		self.advanceRune()
		return self.newToken(kind, start, location)
	}

	if self.currentRune() == '"' {
		return self.lexString(start, location)
	}

	if self.currentRune() == ';' {
		return self.lexComment(start, location)
	}

	return self.lexAtom(start, location)
}
