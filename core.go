package microlisp

import (
	"fmt"
	"os"
	"strings"
)

func expectArgumentCount(name string, args []Value, count int) error {
	if len(args) != count {
		return newErrorf(ERROR_BINDING, "%s expects %d argument(s), received %d", name, count, len(args))
	}
	return nil
}

func expectMinimumArgumentCount(name string, args []Value, count int) error {
	if len(args) < count {
		return newErrorf(ERROR_BINDING, "%s expects at least %d argument(s), received %d", name, count, len(args))
	}
	return nil
}

func expectInteger(name string, value Value) (*Integer, error) {
	integer, ok := value.(*Integer)
	if !ok {
		return nil, newErrorf(ERROR_TYPE, "%s expected an integer, received %s %s", name, value.Typename(), value.String())
	}
	return integer, nil
}

func expectString(name string, value Value) (*String, error) {
	str, ok := value.(*String)
	if !ok {
		return nil, newErrorf(ERROR_TYPE, "%s expected a string, received %s %s", name, value.Typename(), value.String())
	}
	return str, nil
}

// Left fold of op over one or more integers.
func arithmetic(name string, op func(a, b int64) (int64, error)) BuiltinFunc {
	return func(ctx *Context, args []Value) (Value, error) {
		if err := expectMinimumArgumentCount(name, args, 1); err != nil {
			return nil, err
		}
		first, err := expectInteger(name, args[0])
		if err != nil {
			return nil, err
		}

		result := first.data
		for _, arg := range args[1:] {
			integer, err := expectInteger(name, arg)
			if err != nil {
				return nil, err
			}
			result, err = op(result, integer.data)
			if err != nil {
				return nil, err
			}
		}
		return ctx.NewInteger(result), nil
	}
}

// Binary ordering over two integers or two strings.
func comparison(name string, op func(cmp int) bool) BuiltinFunc {
	return func(ctx *Context, args []Value) (Value, error) {
		if err := expectArgumentCount(name, args, 2); err != nil {
			return nil, err
		}

		switch lhs := args[0].(type) {
		case *Integer:
			rhs, err := expectInteger(name, args[1])
			if err != nil {
				return nil, err
			}
			cmp := 0
			if lhs.data < rhs.data {
				cmp = -1
			} else if lhs.data > rhs.data {
				cmp = +1
			}
			return ctx.NewBoolean(op(cmp)), nil
		case *String:
			rhs, err := expectString(name, args[1])
			if err != nil {
				return nil, err
			}
			return ctx.NewBoolean(op(strings.Compare(lhs.data, rhs.data))), nil
		}

		return nil, newErrorf(ERROR_TYPE, "%s cannot compare %s %s", name, args[0].Typename(), args[0].String())
	}
}

// Unary list primitive.
func listFunction(name string, fn func(ctx *Context, list *List) Value) BuiltinFunc {
	return func(ctx *Context, args []Value) (Value, error) {
		if err := expectArgumentCount(name, args, 1); err != nil {
			return nil, err
		}
		list, err := expectList(name, args[0])
		if err != nil {
			return nil, err
		}
		return fn(ctx, list), nil
	}
}

func builtinPrint(ctx *Context, args []Value) (Value, error) {
	s := make([]string, len(args))
	for i, arg := range args {
		s[i] = arg.String()
	}
	if _, err := fmt.Fprintln(ctx.Stdout, strings.Join(s, " ")); err != nil {
		return nil, newErrorf(ERROR_HOST, "print: %v", err)
	}
	return ctx.Nil, nil
}

func builtinConcat(ctx *Context, args []Value) (Value, error) {
	result := ctx.NewList(nil)
	for i := len(args) - 1; i >= 0; i -= 1 {
		list, err := expectList("concat", args[i])
		if err != nil {
			return nil, err
		}
		result = list.Concat(result)
	}
	return result, nil
}

func builtinCons(ctx *Context, args []Value) (Value, error) {
	if err := expectArgumentCount("cons", args, 2); err != nil {
		return nil, err
	}
	list, err := expectList("cons", args[1])
	if err != nil {
		return nil, err
	}
	return list.Cons(args[0]), nil
}

func builtinStr(ctx *Context, args []Value) (Value, error) {
	var sb strings.Builder
	for _, arg := range args {
		str, err := expectString("str", arg)
		if err != nil {
			return nil, err
		}
		sb.WriteString(str.data)
	}
	return ctx.NewString(sb.String()), nil
}

func builtinReadString(ctx *Context, args []Value) (Value, error) {
	if err := expectArgumentCount("read-string", args, 1); err != nil {
		return nil, err
	}
	source, err := expectString("read-string", args[0])
	if err != nil {
		return nil, err
	}
	return ReadStr(ctx, source.data)
}

func builtinSlurp(ctx *Context, args []Value) (Value, error) {
	if err := expectArgumentCount("slurp", args, 1); err != nil {
		return nil, err
	}
	path, err := expectString("slurp", args[0])
	if err != nil {
		return nil, err
	}
	bytes, err := os.ReadFile(path.data)
	if err != nil {
		return nil, newErrorf(ERROR_HOST, "slurp: %v", err)
	}
	return ctx.NewString(strings.TrimSpace(string(bytes))), nil
}

// Host functions available to every program.
func CoreNamespace() map[string]Value {
	builtins := map[string]BuiltinFunc{
		"+": arithmetic("+", func(a, b int64) (int64, error) { return a + b, nil }),
		"-": arithmetic("-", func(a, b int64) (int64, error) { return a - b, nil }),
		"*": arithmetic("*", func(a, b int64) (int64, error) { return a * b, nil }),
		"/": arithmetic("/", func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, newErrorf(ERROR_HOST, "division by zero")
			}
			return a / b, nil
		}),

		"=": func(ctx *Context, args []Value) (Value, error) {
			if err := expectArgumentCount("=", args, 2); err != nil {
				return nil, err
			}
			return ctx.NewBoolean(args[0].Equal(args[1])), nil
		},
		"<":  comparison("<", func(cmp int) bool { return cmp < 0 }),
		"<=": comparison("<=", func(cmp int) bool { return cmp <= 0 }),
		">":  comparison(">", func(cmp int) bool { return cmp > 0 }),
		">=": comparison(">=", func(cmp int) bool { return cmp >= 0 }),

		"list": func(ctx *Context, args []Value) (Value, error) {
			return ctx.NewList(args), nil
		},
		"list?": func(ctx *Context, args []Value) (Value, error) {
			if err := expectArgumentCount("list?", args, 1); err != nil {
				return nil, err
			}
			_, ok := args[0].(*List)
			return ctx.NewBoolean(ok), nil
		},
		"car": listFunction("car", func(ctx *Context, list *List) Value {
			if list.IsEmpty() {
				return ctx.Nil
			}
			return list.Car()
		}),
		"cdr": listFunction("cdr", func(ctx *Context, list *List) Value {
			if list.IsEmpty() {
				return list
			}
			return list.Cdr()
		}),
		"count": listFunction("count", func(ctx *Context, list *List) Value {
			return ctx.NewInteger(int64(list.Len()))
		}),
		"empty?": listFunction("empty?", func(ctx *Context, list *List) Value {
			return ctx.NewBoolean(list.IsEmpty())
		}),
		"reverse": listFunction("reverse", func(ctx *Context, list *List) Value {
			return list.Reverse()
		}),
		"concat": builtinConcat,
		"cons":   builtinCons,

		"str":         builtinStr,
		"print":       builtinPrint,
		"prn":         builtinPrint,
		"read-string": builtinReadString,
		"slurp":       builtinSlurp,
		"type": func(ctx *Context, args []Value) (Value, error) {
			if err := expectArgumentCount("type", args, 1); err != nil {
				return nil, err
			}
			return ctx.NewString(args[0].Typename()), nil
		},
	}

	namespace := make(map[string]Value, len(builtins))
	for name, impl := range builtins {
		namespace[name] = &Builtin{name, impl}
	}
	return namespace
}
