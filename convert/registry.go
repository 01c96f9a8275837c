package convert

import (
	"errors"
	"reflect"
	"slices"
	"sync"

	"struct-mapper/options"
)

// Registry chains user converters, most recently registered first, in front
// of the built-in scalar converters. It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	converters []Converter
	builtins   []Typed
}

// NewRegistry returns a registry whose primitive conversions are limited to
// the allowed categories.
func NewRegistry(allowed options.CategoryEnum) *Registry {
	return &Registry{
		builtins: []Typed{primitiveConverter{allowed: allowed}, sameKindConverter{}, uuidConverter{}},
	}
}

// Register adds converters in front of those already registered.
func (r *Registry) Register(converters ...Converter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]Converter, 0, len(r.converters)+len(converters))
	for _, c := range slices.Backward(converters) {
		if c != nil {
			next = append(next, c)
		}
	}

	r.converters = append(next, r.converters...)
}

// Converters returns the user converters in lookup order.
func (r *Registry) Converters() []Converter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.converters)
}

// CanConvert reports whether some converter statically supports src -> dst.
func (r *Registry) CanConvert(src, dst reflect.Type) bool {
	for _, c := range r.Converters() {
		if Supports(c, src, dst) {
			return true
		}
	}

	for _, c := range r.builtins {
		if c.Supports(src, dst) {
			return true
		}
	}

	return false
}

// Convert tries user converters then built-ins.
func (r *Registry) Convert(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	out, err := r.ConvertUser(src, dst)
	if !errors.Is(err, ErrCannotConvert) {
		return out, err
	}

	return r.ConvertBuiltin(src, dst)
}

// ConvertUser tries the registered converters only. Untyped converters are
// always tried; an ErrCannotConvert result moves on to the next converter.
func (r *Registry) ConvertUser(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	if !src.IsValid() {
		return reflect.Value{}, Cannot(nil, dst)
	}

	for _, c := range r.Converters() {
		if typed, ok := c.(Typed); ok && !typed.Supports(src.Type(), dst) {
			continue
		}

		out, err := c.Convert(src, dst)
		if errors.Is(err, ErrCannotConvert) {
			continue
		}

		return out, err
	}

	return reflect.Value{}, Cannot(src.Type(), dst)
}

// ConvertBuiltin tries the built-in scalar converters only.
func (r *Registry) ConvertBuiltin(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	if !src.IsValid() {
		return reflect.Value{}, Cannot(nil, dst)
	}

	for _, c := range r.builtins {
		if c.Supports(src.Type(), dst) {
			return c.Convert(src, dst)
		}
	}

	return reflect.Value{}, Cannot(src.Type(), dst)
}
