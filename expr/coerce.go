package expr

import (
	"math/big"
	"reflect"
	"sync"
)

// Converter turns a host value into an expression node.
type Converter func(value any) (Expr, error)

// Registry maps host value types to converters. It is safe for concurrent
// use, although registration is meant to happen at start up.
type Registry struct {
	mu         sync.RWMutex
	exact      map[reflect.Type]Converter
	interfaces []interfaceConverter
}

type interfaceConverter struct {
	iface     reflect.Type
	converter Converter
}

var defaultRegistry = NewRegistry()

// NewRegistry creates a registry that knows the builtin conversions: Exprs
// pass through, literal kinds become atoms and strings become names.
func NewRegistry() *Registry {
	r := &Registry{
		exact: map[reflect.Type]Converter{},
	}

	atom := func(value any) (Expr, error) {
		return NewAtom(value)
	}
	for _, v := range []any{
		None, Ellipsis, false,
		int(0), int8(0), int16(0), int32(0), int64(0),
		uint(0), uint8(0), uint16(0), uint32(0), uint64(0),
		new(big.Int), big.Int{},
		float32(0), float64(0), complex64(0), complex128(0),
		[]byte{},
	} {
		r.exact[reflect.TypeOf(v)] = atom
	}
	r.exact[reflect.TypeOf("")] = func(value any) (Expr, error) {
		return NewName(value.(string)), nil
	}
	return r
}

// Register installs a converter for values of type t, replacing any previous
// one. If t is an interface type, the converter applies to every value that
// implements it and has no exact registration; interfaces are tried in
// registration order.
func (r *Registry) Register(t reflect.Type, converter Converter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t.Kind() != reflect.Interface {
		r.exact[t] = converter
		return
	}
	for i, ic := range r.interfaces {
		if ic.iface == t {
			r.interfaces[i].converter = converter
			return
		}
	}
	r.interfaces = append(r.interfaces, interfaceConverter{iface: t, converter: converter})
}

// ToExpr converts value to an expression node. Expression nodes are returned
// unchanged.
func (r *Registry) ToExpr(value any) (Expr, error) {
	switch v := value.(type) {
	case Expr:
		return v, nil
	case nil:
		return NewAtom(None)
	}

	t := reflect.TypeOf(value)
	r.mu.RLock()
	converter, ok := r.exact[t]
	if !ok {
		for _, ic := range r.interfaces {
			if t.Implements(ic.iface) {
				converter, ok = ic.converter, true
				break
			}
		}
	}
	r.mu.RUnlock()

	if !ok {
		return nil, NewUnsupportedValueError(value)
	}
	return converter(value)
}

// ToExpr converts value to an expression node using the process wide registry.
func ToExpr(value any) (Expr, error) {
	return defaultRegistry.ToExpr(value)
}

// Register installs a converter in the process wide registry.
func Register(t reflect.Type, converter Converter) {
	defaultRegistry.Register(t, converter)
}

// RegisterType installs a typed converter for T in the process wide registry.
func RegisterType[T any](converter func(T) (Expr, error)) {
	Register(reflect.TypeFor[T](), func(value any) (Expr, error) {
		return converter(value.(T))
	})
}

// literalExpr wraps a folded value. Unlike ToExpr, strings stay string literals.
func literalExpr(value any) (Expr, error) {
	if e, ok := value.(Expr); ok {
		return e, nil
	}
	return NewAtom(value)
}
