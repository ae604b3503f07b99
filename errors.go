package microlisp

import (
	"errors"
	"fmt"
)

type SourceLocation struct {
	File string
	Line int
}

type ParseError struct {
	Location   *SourceLocation // Optional
	why        string
	incomplete bool // Input ended before the form was complete.
}

func (self ParseError) Error() string {
	return self.why
}

// Reports whether err is a parse failure caused by running out of input,
// meaning more source text could complete the form.
func IsIncomplete(err error) bool {
	var parseError ParseError
	if errors.As(err, &parseError) {
		return parseError.incomplete
	}
	return false
}

// Error Kinds
const (
	ERROR_BINDING  = "binding error"  // Unbound symbols and arity mismatches.
	ERROR_TYPE     = "type error"     // Wrong kind of value or malformed form.
	ERROR_HOST     = "host error"     // Host function failures such as I/O.
	ERROR_INTERNAL = "internal error" // Evaluator consistency failures.
)

type Error struct {
	Kind  string
	Value Value
}

func (self Error) Error() string {
	if message, ok := self.Value.(*String); ok {
		return fmt.Sprintf("%s: %s", self.Kind, message.data)
	}
	return fmt.Sprintf("%s: %s", self.Kind, self.Value.String())
}

func NewError(kind string, value Value) Error {
	return Error{
		Kind:  kind,
		Value: value,
	}
}

func newErrorf(kind string, format string, args ...any) Error {
	return NewError(kind, &String{fmt.Sprintf(format, args...)})
}

// Reports whether err is an evaluation Error of the given kind.
func IsKind(err error, kind string) bool {
	var e Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
