// Package convert defines the value-conversion capability consumed by the
// mapping engine: converters, conditions and providers, plus a registry
// that chains user converters in front of the built-in ones.
//
// A converter that cannot handle a pair returns an error wrapping
// ErrCannotConvert; the engine then falls back to structural conversion.
//
// Any function of the shapes accepted by caster.Parse becomes a converter:
//
//	c, err := convert.Func(strconv.Itoa)
package convert
