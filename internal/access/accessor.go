package access

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unsafe"

	"struct-mapper/internal/common"
	"struct-mapper/naming"
	"struct-mapper/options"
)

var (
	ErrInvalidPath     = errors.New("invalid property path")
	ErrNotInstantiable = errors.New("type cannot be instantiated")
	ErrInaccessible    = errors.New("property is not accessible")
)

// Allocator returns a pointer to a fresh value of t.
type Allocator func(t reflect.Type) (reflect.Value, error)

// Accessor enumerates and manipulates properties.
type Accessor interface {
	// Properties lists the direct properties of a struct type visible on side.
	// An interface type exposes its getters on the Read side.
	Properties(t reflect.Type, side Side) []Property
	// Resolve turns a dotted path into properties of t.
	Resolve(t reflect.Type, path string, side Side) (Path, error)
	// Read follows p from root. ok is false when a nil pointer interrupts the path.
	Read(root reflect.Value, p Path) (value reflect.Value, ok bool, err error)
	// Write assigns value at p under root, allocating nil intermediates.
	Write(root reflect.Value, p Path, value reflect.Value, alloc Allocator) error
}

type cacheKey struct {
	t    reflect.Type
	side Side
}

// Reflect is the reflection-based Accessor.
type Reflect struct {
	private     bool
	source      naming.Convention
	destination naming.Convention

	cache sync.Map // cacheKey -> []Property
}

// New builds an accessor from the access level and the naming conventions of cfg.
func New(cfg options.Config) *Reflect {
	r := &Reflect{
		private:     cfg.FieldAccess == options.AccessPrivate,
		source:      cfg.Source.Convention,
		destination: cfg.Destination.Convention,
	}

	if r.source == nil {
		r.source = naming.Go
	}

	if r.destination == nil {
		r.destination = naming.Go
	}

	return r
}

func (r *Reflect) Properties(t reflect.Type, side Side) []Property {
	t = common.Base(t)
	if !readable(t, side) {
		return nil
	}

	key := cacheKey{t: t, side: side}
	if cached, ok := r.cache.Load(key); ok {
		return cached.([]Property)
	}

	props := r.collect(t, side)
	actual, _ := r.cache.LoadOrStore(key, props)

	return actual.([]Property)
}

func readable(t reflect.Type, side Side) bool {
	if t == nil {
		return false
	}

	return t.Kind() == reflect.Struct || (t.Kind() == reflect.Interface && side == Read)
}

func (r *Reflect) collect(t reflect.Type, side Side) []Property {
	if t.Kind() == reflect.Interface {
		return r.methodSet(t)
	}

	var props []Property

	taken := map[string]struct{}{}

	for _, f := range reflect.VisibleFields(t) {
		if f.Anonymous || (!f.IsExported() && !r.private) || promotedThroughPointer(t, f.Index) {
			continue
		}

		props = append(props, Property{
			Name:     f.Name,
			Owner:    t,
			Type:     f.Type,
			Kind:     KindField,
			Index:    f.Index,
			Exported: f.IsExported(),
		})
		taken[strings.ToLower(f.Name)] = struct{}{}
	}

	ptr := reflect.PointerTo(t)
	for i := range ptr.NumMethod() {
		m := ptr.Method(i)

		var (
			name string
			ok   bool
			prop = Property{Owner: t, Method: m.Name, Exported: true}
		)

		if side == Read {
			name, ok = r.source.Getter(m.Name, m.Type)
			prop.Kind = KindGetter
		} else {
			name, ok = r.destination.Setter(m.Name, m.Type)
			prop.Kind = KindSetter
		}

		if !ok {
			continue
		}

		if _, dup := taken[strings.ToLower(name)]; dup {
			continue
		}

		prop.Name = name
		if side == Read {
			prop.Type = m.Type.Out(0)
		} else {
			prop.Type = m.Type.In(1)
		}

		props = append(props, prop)
		taken[strings.ToLower(name)] = struct{}{}
	}

	return props
}

// methodSet lists the getters declared by interface t.
func (r *Reflect) methodSet(t reflect.Type) []Property {
	var props []Property

	taken := map[string]struct{}{}

	for i := range t.NumMethod() {
		m := t.Method(i)
		if !m.IsExported() {
			continue
		}

		name, ok := r.source.Getter(m.Name, withReceiver(t, m.Type))
		if !ok {
			continue
		}

		if _, dup := taken[strings.ToLower(name)]; dup {
			continue
		}

		props = append(props, Property{
			Name:     name,
			Owner:    t,
			Type:     m.Type.Out(0),
			Kind:     KindGetter,
			Method:   m.Name,
			Exported: true,
		})
		taken[strings.ToLower(name)] = struct{}{}
	}

	return props
}

// withReceiver prepends recv to the inputs of an interface method type, giving
// it the shape of a concrete method.
func withReceiver(recv, fn reflect.Type) reflect.Type {
	in := []reflect.Type{recv}
	for i := range fn.NumIn() {
		in = append(in, fn.In(i))
	}

	out := make([]reflect.Type, fn.NumOut())
	for i := range out {
		out[i] = fn.Out(i)
	}

	return reflect.FuncOf(in, out, fn.IsVariadic())
}

// promotedThroughPointer reports fields reached through an embedded pointer,
// which cannot be written without allocating the embedded value.
func promotedThroughPointer(t reflect.Type, index []int) bool {
	for _, i := range index[:len(index)-1] {
		f := t.Field(i)
		if f.Type.Kind() == reflect.Ptr {
			return true
		}

		t = f.Type
	}

	return false
}

func (r *Reflect) Resolve(t reflect.Type, path string, side Side) (Path, error) {
	segments := strings.Split(strings.TrimSpace(path), ".")

	var (
		out   Path
		owner = common.Base(t)
	)

	for i, segment := range segments {
		if segment == "" {
			return nil, fmt.Errorf("%w: %q has an empty segment", ErrInvalidPath, path)
		}

		switch {
		case readable(owner, side):
		case owner != nil && owner.Kind() == reflect.Interface:
			return nil, fmt.Errorf("%w: %q crosses interface %s", ErrNotInstantiable, path, common.TypeName(owner))
		default:
			return nil, fmt.Errorf("%w: %q: %s is not a struct", ErrInvalidPath, path, common.TypeName(owner))
		}

		last := i == len(segments)-1

		candidates := r.Properties(owner, side)
		if !last && side == Write {
			candidates = fieldsOnly(r.Properties(owner, Read))
		}

		prop, ok := lookup(candidates, segment)
		if !ok {
			return nil, fmt.Errorf("%w: %q: %s has no property %q", ErrInvalidPath, path, common.TypeName(owner), segment)
		}

		out = append(out, prop)
		owner = common.Base(prop.Type)
	}

	return out, nil
}

func fieldsOnly(props []Property) []Property {
	out := make([]Property, 0, len(props))
	for _, p := range props {
		if p.Kind == KindField {
			out = append(out, p)
		}
	}

	return out
}

func lookup(props []Property, name string) (Property, bool) {
	for _, p := range props {
		if p.Name == name {
			return p, true
		}
	}

	for _, p := range props {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}

	return Property{}, false
}

func (r *Reflect) Read(root reflect.Value, p Path) (reflect.Value, bool, error) {
	cur := root

	for _, prop := range p {
		cur = indirect(cur)
		if !cur.IsValid() {
			return reflect.Value{}, false, nil
		}

		if !ownedBy(cur.Type(), prop.Owner) {
			return reflect.Value{}, false, fmt.Errorf("%w: %s is read from %s", ErrInvalidPath, prop.Name, common.TypeName(cur.Type()))
		}

		if !cur.CanAddr() {
			tmp := reflect.New(cur.Type()).Elem()
			tmp.Set(cur)
			cur = tmp
		}

		next, err := r.get(cur, prop)
		if err != nil {
			return reflect.Value{}, false, err
		}

		cur = next
	}

	return cur, true, nil
}

// ownedBy reports whether a value of type t carries properties of owner.
func ownedBy(t, owner reflect.Type) bool {
	if owner.Kind() == reflect.Interface {
		return t.Implements(owner) || reflect.PointerTo(t).Implements(owner)
	}

	return t == owner
}

func (r *Reflect) get(owner reflect.Value, prop Property) (reflect.Value, error) {
	switch prop.Kind {
	case KindField:
		f := owner.FieldByIndex(prop.Index)
		if !f.CanInterface() {
			f = reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem()
		}

		return f, nil

	case KindGetter:
		m := owner.Addr().MethodByName(prop.Method)
		if !m.IsValid() {
			return reflect.Value{}, fmt.Errorf("%w: %s.%s", ErrInaccessible, common.TypeName(prop.Owner), prop.Method)
		}

		out := m.Call(nil)
		if len(out) == 2 && !out[1].IsNil() {
			return reflect.Value{}, fmt.Errorf("%s.%s: %w", common.TypeName(prop.Owner), prop.Method, out[1].Interface().(error))
		}

		return out[0], nil

	default:
		return reflect.Value{}, fmt.Errorf("%w: %s is write-only", ErrInaccessible, prop.Name)
	}
}

func (r *Reflect) Write(root reflect.Value, p Path, value reflect.Value, alloc Allocator) error {
	if len(p) == 0 {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	cur, err := deref(root, alloc)
	if err != nil {
		return err
	}

	if !cur.CanAddr() {
		return fmt.Errorf("%w: destination %s is not addressable", ErrInaccessible, common.TypeName(cur.Type()))
	}

	for _, prop := range p[:len(p)-1] {
		if prop.Kind != KindField {
			return fmt.Errorf("%w: intermediate %s is not a field", ErrInvalidPath, prop)
		}

		if cur, err = deref(field(cur, prop), alloc); err != nil {
			return err
		}
	}

	last := p.Last()

	if value.IsValid() && !value.Type().AssignableTo(last.Type) {
		return fmt.Errorf("%w: %s is not assignable to %s (%s)", ErrInvalidPath,
			common.TypeName(value.Type()), common.TypeName(last.Type), last.Name)
	}

	if !value.IsValid() {
		value = reflect.Zero(last.Type)
	}

	switch last.Kind {
	case KindField:
		field(cur, last).Set(value)
		return nil

	case KindSetter:
		m := cur.Addr().MethodByName(last.Method)
		if !m.IsValid() {
			return fmt.Errorf("%w: %s.%s", ErrInaccessible, common.TypeName(last.Owner), last.Method)
		}

		out := m.Call([]reflect.Value{value})
		if len(out) == 1 && !out[0].IsNil() {
			return fmt.Errorf("%s.%s: %w", common.TypeName(last.Owner), last.Method, out[0].Interface().(error))
		}

		return nil

	default:
		return fmt.Errorf("%w: %s is read-only", ErrInaccessible, last.Name)
	}
}

func field(owner reflect.Value, prop Property) reflect.Value {
	f := owner.FieldByIndex(prop.Index)
	if !f.CanSet() {
		f = reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem()
	}

	return f
}

// deref follows pointers, allocating nil ones, until a struct is reached.
func deref(v reflect.Value, alloc Allocator) (reflect.Value, error) {
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			if alloc == nil || !v.CanSet() {
				return reflect.Value{}, fmt.Errorf("%w: nil %s", ErrNotInstantiable, common.TypeName(v.Type()))
			}

			ptr, err := alloc(v.Type().Elem())
			if err != nil {
				return reflect.Value{}, err
			}

			v.Set(ptr)
		}

		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: %s is not a struct", ErrNotInstantiable, common.TypeName(v.Type()))
	}

	return v, nil
}

// indirect follows pointers and interfaces, returning an invalid value on nil.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}

		v = v.Elem()
	}

	return v
}
