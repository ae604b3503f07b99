package microlisp

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Utility function used to get the address of literals.
func Ptr[T any](v T) *T {
	return &v
}

func escape(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '\t':
			sb.WriteString("\\t")
		case '\n':
			sb.WriteString("\\n")
		case '"':
			sb.WriteString("\\\"")
		case '\\':
			sb.WriteString("\\\\")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func quote(s string) string {
	if strings.Contains(s, "`") {
		return fmt.Sprintf(`"%s"`, s)
	}
	return fmt.Sprintf("`%s`", s)
}

type Value interface {
	Typename() string
	String() string
	Equal(Value) bool
	CombEncode(e *CombEncoder) error
}

// Callable values may appear in the head position of an application.
type Callable interface {
	Value
	Call(ctx *Context, args []Value) (Value, error)
}

type CombEncoder struct {
	w           io.Writer
	indentText  *string // Optional: nil implies single-line default formatting.
	indentLevel int     // Number of times the indent text is written before main text per line.

	err error // Internal sticky error.
}

func NewCombEncoder(w io.Writer, indent *string) *CombEncoder {
	return &CombEncoder{
		w:           w,
		indentText:  indent,
		indentLevel: 0,
		err:         nil,
	}
}

func (e *CombEncoder) writeString(s string) error {
	if e.err != nil {
		return e.err
	}

	_, e.err = io.WriteString(e.w, s)

	return e.err
}

func (e *CombEncoder) writeIndent(s string) error {
	if e.indentText != nil {
		for range e.indentLevel {
			e.writeString(*e.indentText)
		}
	}

	e.writeString(s)

	return e.err
}

func (e *CombEncoder) writeEndOfLine() error {
	if e.indentText != nil {
		e.writeString("\n")
	} else {
		e.writeString(" ")
	}

	return e.err
}

func (e *CombEncoder) fail(value Value) error {
	if e.err == nil {
		e.err = fmt.Errorf("invalid comb value %s", value.String())
	}
	return e.err
}

type Context struct {
	Nil             *Nil
	BaseEnvironment *Environment
	Stdout          io.Writer // Destination of print and prn.
}

func NewContext() Context {
	ctx := Context{}
	ctx.Nil = ctx.NewNil()
	ctx.Stdout = os.Stdout
	ctx.BaseEnvironment = NewBaseEnvironment(CoreNamespace())
	return ctx
}

func (ctx *Context) NewNil() *Nil {
	return &Nil{}
}

func (ctx *Context) NewBoolean(data bool) *Boolean {
	return &Boolean{data}
}

func (ctx *Context) NewInteger(data int64) *Integer {
	return &Integer{data}
}

func (ctx *Context) NewString(data string) *String {
	return &String{data}
}

func (ctx *Context) NewSymbol(name string) *Symbol {
	return &Symbol{name}
}

func (ctx *Context) NewList(elements []Value) *List {
	return NewList(elements...)
}

type Nil struct{}

func (self *Nil) Typename() string {
	return "nil"
}

func (self *Nil) String() string {
	return "nil"
}

func (self *Nil) Equal(other Value) bool {
	_, ok := other.(*Nil)
	return ok
}

func (self *Nil) CombEncode(e *CombEncoder) error {
	return e.writeString(self.String())
}

type Boolean struct {
	data bool
}

func (self *Boolean) Typename() string {
	return "boolean"
}

func (self *Boolean) String() string {
	if self.data {
		return "true"
	}
	return "false"
}

func (self *Boolean) Equal(other Value) bool {
	othr, ok := other.(*Boolean)
	if !ok {
		return false
	}
	return self.data == othr.data
}

func (self *Boolean) CombEncode(e *CombEncoder) error {
	return e.writeString(self.String())
}

func (self *Boolean) Data() bool {
	return self.data
}

type Integer struct {
	data int64
}

func (self *Integer) Typename() string {
	return "integer"
}

func (self *Integer) String() string {
	return strconv.FormatInt(self.data, 10)
}

func (self *Integer) Equal(other Value) bool {
	othr, ok := other.(*Integer)
	if !ok {
		return false
	}
	return self.data == othr.data
}

func (self *Integer) CombEncode(e *CombEncoder) error {
	return e.writeString(self.String())
}

func (self *Integer) Data() int64 {
	return self.data
}

type String struct {
	data string
}

func (self *String) Typename() string {
	return "string"
}

// Strings render wrapped in quotes with their contents verbatim. The reader
// never decodes escapes, so this round-trips anything the reader accepts.
func (self *String) String() string {
	return fmt.Sprintf("\"%s\"", self.data)
}

func (self *String) Equal(other Value) bool {
	othr, ok := other.(*String)
	if !ok {
		return false
	}
	return self.data == othr.data
}

func (self *String) CombEncode(e *CombEncoder) error {
	return e.writeString(fmt.Sprintf("\"%s\"", escape(self.data)))
}

func (self *String) Data() string {
	return self.data
}

type Symbol struct {
	name string
}

func (self *Symbol) Typename() string {
	return "symbol"
}

func (self *Symbol) String() string {
	return self.name
}

func (self *Symbol) Equal(other Value) bool {
	othr, ok := other.(*Symbol)
	if !ok {
		return false
	}
	return self.name == othr.name
}

func (self *Symbol) CombEncode(e *CombEncoder) error {
	return e.writeString(self.name)
}

func (self *Symbol) Name() string {
	return self.name
}

type BuiltinFunc func(ctx *Context, args []Value) (Value, error)

// Host function. Receives already evaluated arguments.
type Builtin struct {
	name string
	impl BuiltinFunc
}

func (self *Builtin) Typename() string {
	return "builtin"
}

func (self *Builtin) String() string {
	return "#function"
}

func (self *Builtin) Equal(other Value) bool {
	return self == other
}

func (self *Builtin) CombEncode(e *CombEncoder) error {
	return e.fail(self)
}

func (self *Builtin) Call(ctx *Context, args []Value) (Value, error) {
	return self.impl(ctx, args)
}

func (self *Builtin) Name() string {
	return self.name
}

type Closure struct {
	params []*Symbol
	body   Value
	env    *Environment // Defining environment.
}

func (self *Closure) Typename() string {
	return "function"
}

func (self *Closure) String() string {
	return "#function"
}

func (self *Closure) Equal(other Value) bool {
	return self == other
}

func (self *Closure) CombEncode(e *CombEncoder) error {
	return e.fail(self)
}

func (self *Closure) Call(ctx *Context, args []Value) (Value, error) {
	env, err := NewEnvironment(self.env, self.params, args)
	if err != nil {
		return nil, err
	}
	return Eval(ctx, self.body, env)
}

// Everything except false and nil is true.
func IsTruthy(value Value) bool {
	switch value := value.(type) {
	case *Nil:
		return false
	case *Boolean:
		return value.data
	}
	return true
}
