// Package bindrt models the runtime helper that transformed code calls:
// helper(target, ctx, ...args). A plain function becomes a reflective bound
// function whose target, context and arguments stay inspectable, so two
// bound functions can be compared with ReflectiveEqual. Anything with its
// own bind is passed through to it and loses that property.
package bindrt

import (
	"errors"
	"fmt"
)

var (
	// ErrNotBindable is returned when the target is neither callable nor has a bind method.
	ErrNotBindable = errors.New("bindrt: target has no bind")
	// ErrNotCallable is the panic value for invoking a passthrough result that is not callable.
	ErrNotCallable = errors.New("bindrt: value is not callable")
)

// Callable is a function value in the runtime model.
type Callable interface {
	Invoke(this any, args ...any) any
}

// Binder is a value with a custom bind, e.g. a mock or a function whose
// bind was overridden. Bind never wraps a Binder reflectively.
type Binder interface {
	Bind(ctx any, args ...any) any
}

// Func adapts a Go function to Callable. Identity is the *Func pointer.
type Func struct {
	Name string
	Fn   func(this any, args ...any) any
}

// NewFunc returns a named callable.
func NewFunc(name string, fn func(this any, args ...any) any) *Func {
	return &Func{Name: name, Fn: fn}
}

func (f *Func) Invoke(this any, args ...any) any {
	return f.Fn(this, args...)
}

func (f *Func) String() string {
	if f.Name == "" {
		return "func"
	}
	return "func " + f.Name
}

// Kind distinguishes the two results of Bind.
type Kind uint8

const (
	// KindReflective keeps target, context and arguments for comparison.
	KindReflective Kind = iota + 1
	// KindPassthrough holds whatever the target's own bind returned.
	KindPassthrough
)

func (k Kind) String() string {
	switch k {
	case KindReflective:
		return "reflective"
	case KindPassthrough:
		return "passthrough"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Bound is the value returned by Bind.
type Bound struct {
	kind   Kind
	target Callable
	ctx    any
	args   []any
	value  any
}

// Bind binds target to ctx and the leading args.
//
// A Binder always goes through its own Bind, even when it is also
// Callable. A Callable gets a reflective wrapper. Anything else is an
// error, matching a call to bind on a non-function.
func Bind(target any, ctx any, args ...any) (*Bound, error) {
	switch t := target.(type) {
	case Binder:
		return &Bound{kind: KindPassthrough, value: t.Bind(ctx, args...)}, nil
	case Callable:
		return &Bound{
			kind:   KindReflective,
			target: t,
			ctx:    ctx,
			args:   append([]any(nil), args...),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrNotBindable, target)
	}
}

// Kind reports which variant b holds.
func (b *Bound) Kind() Kind { return b.kind }

// Reflective returns the bound target, context and a copy of the bound
// arguments. ok is false for a passthrough value.
func (b *Bound) Reflective() (target Callable, ctx any, args []any, ok bool) {
	if b.kind != KindReflective {
		return nil, nil, nil, false
	}
	return b.target, b.ctx, append([]any(nil), b.args...), true
}

// Passthrough returns the result of the target's own bind.
func (b *Bound) Passthrough() (any, bool) {
	if b.kind != KindPassthrough {
		return nil, false
	}
	return b.value, true
}

// Invoke calls the bound function. The receiver passed in is ignored for a
// reflective value, as with a natively bound function; call-time args are
// appended to the bound ones.
func (b *Bound) Invoke(this any, args ...any) any {
	if b.kind == KindReflective {
		all := make([]any, 0, len(b.args)+len(args))
		all = append(all, b.args...)
		all = append(all, args...)
		return b.target.Invoke(b.ctx, all...)
	}
	v, _ := b.Passthrough()
	fn, ok := v.(Callable)
	if !ok {
		panic(fmt.Errorf("%w: %T", ErrNotCallable, v))
	}
	return fn.Invoke(this, args...)
}

// IsReflective reports whether v was produced by a reflective Bind.
func IsReflective(v any) bool {
	b, ok := v.(*Bound)
	return ok && b.kind == KindReflective
}
