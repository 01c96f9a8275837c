package engine

import "reflect"

type identity struct {
	ptr uintptr
	len int
	src reflect.Type
	dst reflect.Type
}

// Context tracks the destinations under construction during one top-level
// call. It is confined to the calling goroutine.
type Context struct {
	resolve  bool
	visiting map[identity]reflect.Value
}

func newContext(resolve bool) *Context {
	return &Context{resolve: resolve, visiting: map[identity]reflect.Value{}}
}

// key returns the identity of a reference-backed source, or false when src
// has none or cycle resolution is off.
func (c *Context) key(src reflect.Value, dst reflect.Type) (identity, bool) {
	if !c.resolve {
		return identity{}, false
	}

	switch src.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice:
		if src.IsNil() {
			return identity{}, false
		}

		id := identity{ptr: src.Pointer(), src: src.Type(), dst: dst}
		if src.Kind() == reflect.Slice {
			id.len = src.Len()
		}

		return id, true
	default:
		return identity{}, false
	}
}

func (c *Context) lookup(src reflect.Value, dst reflect.Type) (reflect.Value, bool) {
	id, ok := c.key(src, dst)
	if !ok {
		return reflect.Value{}, false
	}

	v, ok := c.visiting[id]

	return v, ok
}

func (c *Context) register(src reflect.Value, dst reflect.Value) {
	if id, ok := c.key(src, dst.Type()); ok {
		c.visiting[id] = dst
	}
}
