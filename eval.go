package microlisp

// Special Forms
const (
	FORM_DEF        = "def!"
	FORM_DO         = "do"
	FORM_FN         = "fn*"
	FORM_IF         = "if"
	FORM_LET        = "let*"
	FORM_QUOTE      = "quote"
	FORM_QUASIQUOTE = "quasiquote"
)

// Heads recognized inside a quasiquote.
const (
	symbolUnquote       = "unquote"
	symbolSpliceUnquote = "splice-unquote"
)

var SpecialForms = []string{
	FORM_DEF,
	FORM_DO,
	FORM_FN,
	FORM_IF,
	FORM_LET,
	FORM_QUOTE,
	FORM_QUASIQUOTE,
}

// A special form handler receives the whole unevaluated form.
type specialForm func(ctx *Context, form *List, env *Environment) (Value, error)

func isSpecialForm(name string) bool {
	for _, special := range SpecialForms {
		if special == name {
			return true
		}
	}
	return false
}

func lookupSpecialForm(name string) (specialForm, bool) {
	switch name {
	case FORM_DEF:
		return evalDef, true
	case FORM_DO:
		return evalDo, true
	case FORM_FN:
		return evalFn, true
	case FORM_IF:
		return evalIf, true
	case FORM_LET:
		return evalLet, true
	case FORM_QUOTE:
		return evalQuote, true
	case FORM_QUASIQUOTE:
		return evalQuasiquote, true
	}
	return nil, false
}

// Evaluation recurses on the Go stack, so nesting depth is bounded only by
// the goroutine stack limit.
func Eval(ctx *Context, form Value, env *Environment) (Value, error) {
	list, ok := form.(*List)
	if !ok {
		if symbol, ok := form.(*Symbol); ok {
			return env.Get(symbol.name)
		}
		return form, nil
	}

	if list.IsEmpty() {
		return list, nil
	}

	if head, ok := list.Car().(*Symbol); ok && isSpecialForm(head.name) {
		handler, found := lookupSpecialForm(head.name)
		if !found {
			return nil, newErrorf(ERROR_INTERNAL, "no special form found: %s", quote(head.name))
		}
		return handler(ctx, list, env)
	}

	return apply(ctx, list, env)
}

func apply(ctx *Context, list *List, env *Environment) (Value, error) {
	evaluated := make([]Value, 0)
	for element := range list.All() {
		value, err := Eval(ctx, element, env)
		if err != nil {
			return nil, err
		}
		evaluated = append(evaluated, value)
	}

	callable, ok := evaluated[0].(Callable)
	if !ok {
		return nil, newErrorf(ERROR_TYPE, "attempted to call non-function value %s", evaluated[0].String())
	}
	return callable.Call(ctx, evaluated[1:])
}

// Returns the forms following the head, checking their count lies within
// [min, max].
func expectFormArgs(form *List, min int, max int) ([]Value, error) {
	name := form.Car().String()
	args := form.Cdr().Slice()
	if len(args) < min || len(args) > max {
		if min == max {
			return nil, newErrorf(ERROR_TYPE, "%s expects %d form(s), received %d", name, min, len(args))
		}
		return nil, newErrorf(ERROR_TYPE, "%s expects %d to %d forms, received %d", name, min, max, len(args))
	}
	return args, nil
}

func expectSymbol(name string, value Value) (*Symbol, error) {
	symbol, ok := value.(*Symbol)
	if !ok {
		return nil, newErrorf(ERROR_TYPE, "%s expected a symbol, received %s %s", name, value.Typename(), value.String())
	}
	return symbol, nil
}

func expectList(name string, value Value) (*List, error) {
	list, ok := value.(*List)
	if !ok {
		return nil, newErrorf(ERROR_TYPE, "%s expected a list, received %s %s", name, value.Typename(), value.String())
	}
	return list, nil
}

// (def! symbol expr)
func evalDef(ctx *Context, form *List, env *Environment) (Value, error) {
	args, err := expectFormArgs(form, 2, 2)
	if err != nil {
		return nil, err
	}
	symbol, err := expectSymbol(FORM_DEF, args[0])
	if err != nil {
		return nil, err
	}

	value, err := Eval(ctx, args[1], env)
	if err != nil {
		return nil, err
	}
	env.Set(symbol.name, value)
	return value, nil
}

// (do form...)
func evalDo(ctx *Context, form *List, env *Environment) (Value, error) {
	body := form.Cdr()
	if body.IsEmpty() {
		return nil, newErrorf(ERROR_TYPE, "%s requires at least one form", FORM_DO)
	}

	var result Value
	for element := range body.All() {
		value, err := Eval(ctx, element, env)
		if err != nil {
			return nil, err
		}
		result = value
	}
	return result, nil
}

// (fn* (param...) body)
func evalFn(ctx *Context, form *List, env *Environment) (Value, error) {
	args, err := expectFormArgs(form, 2, 2)
	if err != nil {
		return nil, err
	}
	binders, err := expectList(FORM_FN, args[0])
	if err != nil {
		return nil, err
	}

	params := make([]*Symbol, 0)
	for binder := range binders.All() {
		param, err := expectSymbol(FORM_FN, binder)
		if err != nil {
			return nil, err
		}
		params = append(params, param)
	}

	return &Closure{
		params: params,
		body:   args[1],
		env:    env,
	}, nil
}

// (if predicate then [else])
func evalIf(ctx *Context, form *List, env *Environment) (Value, error) {
	args, err := expectFormArgs(form, 2, 3)
	if err != nil {
		return nil, err
	}

	predicate, err := Eval(ctx, args[0], env)
	if err != nil {
		return nil, err
	}
	if IsTruthy(predicate) {
		return Eval(ctx, args[1], env)
	}
	if len(args) == 3 {
		return Eval(ctx, args[2], env)
	}
	return ctx.Nil, nil
}

// (let* (binder expr ...) body)
//
// Each expression is evaluated in the new environment, so it sees the
// binders before it.
func evalLet(ctx *Context, form *List, env *Environment) (Value, error) {
	args, err := expectFormArgs(form, 2, 2)
	if err != nil {
		return nil, err
	}
	bindings, err := expectList(FORM_LET, args[0])
	if err != nil {
		return nil, err
	}
	pairs := bindings.Slice()
	if len(pairs)%2 != 0 {
		return nil, newErrorf(ERROR_TYPE, "%s bindings must be in pairs", FORM_LET)
	}

	inner, err := NewEnvironment(env, nil, nil)
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(pairs); i += 2 {
		binder, err := expectSymbol(FORM_LET, pairs[i])
		if err != nil {
			return nil, err
		}
		value, err := Eval(ctx, pairs[i+1], inner)
		if err != nil {
			return nil, err
		}
		inner.Set(binder.name, value)
	}

	return Eval(ctx, args[1], inner)
}

// (quote form)
func evalQuote(ctx *Context, form *List, env *Environment) (Value, error) {
	args, err := expectFormArgs(form, 1, 1)
	if err != nil {
		return nil, err
	}
	return args[0], nil
}

// (quasiquote (element...))
//
// Only the top-level elements are inspected. Nested lists other than
// unquote and splice-unquote forms are kept literally.
func evalQuasiquote(ctx *Context, form *List, env *Environment) (Value, error) {
	args, err := expectFormArgs(form, 1, 1)
	if err != nil {
		return nil, err
	}
	template, ok := args[0].(*List)
	if !ok {
		return args[0], nil
	}

	pieces := make([]*List, 0)
	for element := range template.All() {
		piece, err := unquote(ctx, element, env)
		if err != nil {
			return nil, err
		}
		pieces = append(pieces, piece)
	}

	result := ctx.NewList(nil)
	for i := len(pieces) - 1; i >= 0; i -= 1 {
		result = pieces[i].Concat(result)
	}
	return result, nil
}

// Returns the list of items element contributes to a quasiquote.
func unquote(ctx *Context, element Value, env *Environment) (*List, error) {
	list, ok := element.(*List)
	if !ok || list.IsEmpty() {
		return ctx.NewList([]Value{element}), nil
	}
	head, ok := list.Car().(*Symbol)
	if !ok || (head.name != symbolUnquote && head.name != symbolSpliceUnquote) {
		return ctx.NewList([]Value{element}), nil
	}

	args, err := expectFormArgs(list, 1, 1)
	if err != nil {
		return nil, err
	}
	value, err := Eval(ctx, args[0], env)
	if err != nil {
		return nil, err
	}

	if head.name == symbolUnquote {
		return ctx.NewList([]Value{value}), nil
	}
	return expectList(symbolSpliceUnquote, value)
}

// Evaluates every form of source in the base environment and returns the
// value of the last one, or nil when there are none.
func EvalSource(ctx *Context, source string, location *SourceLocation) (Value, error) {
	return evalSourceIn(ctx, source, location, ctx.BaseEnvironment)
}

func evalSourceIn(ctx *Context, source string, location *SourceLocation, env *Environment) (Value, error) {
	forms, err := ReadAll(ctx, source, location)
	if err != nil {
		return nil, err
	}

	var result Value = ctx.Nil
	for _, form := range forms {
		value, err := Eval(ctx, form, env)
		if err != nil {
			return nil, err
		}
		result = value
	}
	return result, nil
}
