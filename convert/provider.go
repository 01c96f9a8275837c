package convert

import "reflect"

// Provider instantiates destination values. Provide returns a pointer to a
// fresh value of t, or an invalid value to let the next provider try.
type Provider interface {
	Provide(t reflect.Type) reflect.Value
}

type ProviderFunc func(t reflect.Type) reflect.Value

func (f ProviderFunc) Provide(t reflect.Type) reflect.Value { return f(t) }

// For returns a provider that answers only for T using fn.
func For[T any](fn func() *T) Provider {
	target := reflect.TypeFor[T]()

	return ProviderFunc(func(t reflect.Type) reflect.Value {
		if t != target {
			return reflect.Value{}
		}

		return reflect.ValueOf(fn())
	})
}

// Provide asks each non-nil provider in turn and returns the first usable
// answer: a non-nil pointer whose element is assignable to t.
func Provide(t reflect.Type, providers ...Provider) (reflect.Value, bool) {
	for _, p := range providers {
		if p == nil {
			continue
		}

		v := p.Provide(t)
		if !v.IsValid() || v.Kind() != reflect.Ptr || v.IsNil() || !v.Elem().Type().AssignableTo(t) {
			continue
		}

		if v.Elem().Type() != t {
			out := reflect.New(t)
			out.Elem().Set(v.Elem())

			return out, true
		}

		return v, true
	}

	return reflect.Value{}, false
}
