package bindrt

import (
	"math"
	"reflect"
)

// Same reports whether x and y are the same value: identity for pointers,
// maps, slices and channels, == for other comparable values. Floats follow
// SameValue, so NaN equals NaN and +0 differs from -0. Go func values
// have no identity and are never the same; wrap them in *Func.
func Same(x, y any) bool {
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	vx, vy := reflect.ValueOf(x), reflect.ValueOf(y)
	if vx.Type() != vy.Type() {
		return false
	}
	switch vx.Kind() {
	case reflect.Float32, reflect.Float64:
		fx, fy := vx.Float(), vy.Float()
		if fx == fy {
			// +0 и -0
			return math.Signbit(fx) == math.Signbit(fy)
		}
		return math.IsNaN(fx) && math.IsNaN(fy)
	case reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return vx.Pointer() == vy.Pointer()
	case reflect.Slice:
		return vx.Pointer() == vy.Pointer() && vx.Len() == vy.Len()
	case reflect.Func:
		return false
	}
	if !vx.Comparable() {
		return false
	}
	return x == y
}

// ReflectiveEqual reports whether f and g are reflective bound functions
// with the same context, pairwise equal arguments and equal targets. Targets
// and arguments are equal when they are the Same or, recursively,
// reflectively equal.
func ReflectiveEqual(f, g any) bool {
	bf, ok := f.(*Bound)
	if !ok || bf.kind != KindReflective {
		return false
	}
	bg, ok := g.(*Bound)
	if !ok || bg.kind != KindReflective {
		return false
	}
	return Same(bf.ctx, bg.ctx) &&
		argsEqual(bf.args, bg.args) &&
		(Same(bf.target, bg.target) || ReflectiveEqual(bf.target, bg.target))
}

func argsEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Same(a[i], b[i]) && !ReflectiveEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// ArrayShallowEq reports whether a and b are the same slice or have
// pairwise Same elements.
func ArrayShallowEq(a, b []any) bool {
	if Same(a, b) {
		return true
	}
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Same(a[i], b[i]) {
			return false
		}
	}
	return true
}

// ShallowReflectiveEqual compares two objects key by key. Values must be
// the Same or reflectively equal. A nil map is null: it only equals nil.
func ShallowReflectiveEqual(a, b map[string]any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if Same(a, b) {
		return true
	}
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok {
			return false
		}
		if !Same(va, vb) && !ReflectiveEqual(va, vb) {
			return false
		}
	}
	return true
}

// ShouldComponentUpdate reports whether props or state changed in a way
// that ShallowReflectiveEqual can see.
func ShouldComponentUpdate(prevProps, nextProps, prevState, nextState map[string]any) bool {
	return !ShallowReflectiveEqual(prevProps, nextProps) ||
		!ShallowReflectiveEqual(prevState, nextState)
}
