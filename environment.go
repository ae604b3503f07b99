package microlisp

import (
	"os"
)

type Environment struct {
	outer *Environment // Optional
	store map[string]Value
}

// Binds each binder to the value at the same position.
func NewEnvironment(outer *Environment, binders []*Symbol, values []Value) (*Environment, error) {
	if len(binders) != len(values) {
		return nil, newErrorf(ERROR_BINDING, "expected %d argument(s), received %d", len(binders), len(values))
	}

	env := &Environment{
		outer: outer,
		store: map[string]Value{},
	}
	for i, binder := range binders {
		env.Set(binder.name, values[i])
	}
	return env, nil
}

// Builds a root environment from a mapping of host functions, then adds eval
// and load-file, both of which evaluate in that root environment.
func NewBaseEnvironment(namespace map[string]Value) *Environment {
	env := &Environment{
		outer: nil,
		store: map[string]Value{},
	}
	for name, value := range namespace {
		env.Set(name, value)
	}

	env.Set("eval", &Builtin{"eval", func(ctx *Context, args []Value) (Value, error) {
		if err := expectArgumentCount("eval", args, 1); err != nil {
			return nil, err
		}
		return Eval(ctx, args[0], env)
	}})
	env.Set("load-file", &Builtin{"load-file", func(ctx *Context, args []Value) (Value, error) {
		if err := expectArgumentCount("load-file", args, 1); err != nil {
			return nil, err
		}
		path, err := expectString("load-file", args[0])
		if err != nil {
			return nil, err
		}
		bytes, err := os.ReadFile(path.data)
		if err != nil {
			return nil, newErrorf(ERROR_HOST, "load-file: %v", err)
		}
		return evalSourceIn(ctx, string(bytes), &SourceLocation{path.data, 1}, env)
	}})

	return env
}

// Always writes to the local scope, shadowing any outer binding.
func (self *Environment) Set(name string, value Value) {
	self.store[name] = value
}

// Returns the innermost environment binding name, or nil.
func (self *Environment) Find(name string) *Environment {
	for env := self; env != nil; env = env.outer {
		if _, ok := env.store[name]; ok {
			return env
		}
	}
	return nil
}

func (self *Environment) Get(name string) (Value, error) {
	env := self.Find(name)
	if env == nil {
		return nil, newErrorf(ERROR_BINDING, "no such symbol: %s", quote(name))
	}
	return env.store[name], nil
}

func (self *Environment) Outer() *Environment {
	return self.outer
}
