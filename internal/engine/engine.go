package engine

import (
	"errors"
	"fmt"
	"reflect"

	"struct-mapper/caster"
	"struct-mapper/convert"
	"struct-mapper/internal/access"
	"struct-mapper/internal/common"
	"struct-mapper/internal/mapping"
	"struct-mapper/internal/plan"
	"struct-mapper/options"
	"struct-mapper/primitive"
)

var errNilDestination = errors.New("destination must be a non-nil pointer")

// Engine maps values with the plans of a store.
type Engine struct {
	store    *plan.Store
	registry *convert.Registry
	provider convert.Provider
	accessor access.Accessor
	cfg      options.Config
}

// New returns an engine over store. registry supplies the converter chain,
// provider the global instantiation hook; both may be nil.
func New(store *plan.Store, registry *convert.Registry, provider convert.Provider) *Engine {
	if registry == nil {
		registry = convert.NewRegistry(store.Compiler().Config().Conversions)
	}

	return &Engine{
		store:    store,
		registry: registry,
		provider: provider,
		accessor: store.Compiler().Accessor(),
		cfg:      store.Compiler().Config(),
	}
}

// Map converts src into a new value of type dst. A nil src gives the zero
// value of dst.
func (e *Engine) Map(src any, dst reflect.Type) (reflect.Value, error) {
	sv := reflect.ValueOf(src)
	pair := plan.NewTypePair(typeOf(sv), dst)

	if dst == nil {
		return reflect.Value{}, wrap(pair, "", errNilDestination)
	}

	out, err := e.convert(newContext(e.cfg.ResolveCircular), sv, dst, nil)
	if err != nil {
		return reflect.Value{}, wrap(pair, "", err)
	}

	return out, nil
}

// MapInto maps src onto the value dst points to. Struct destinations are
// updated in place, so properties no mapping writes keep their values.
func (e *Engine) MapInto(src any, dst any) error {
	sv, dv := reflect.ValueOf(src), reflect.ValueOf(dst)

	if dv.Kind() != reflect.Ptr || dv.IsNil() {
		return wrap(plan.NewTypePair(typeOf(sv), typeOf(dv)), "", errNilDestination)
	}

	target := dv.Type().Elem()
	pair := plan.NewTypePair(typeOf(sv), target)

	base := indirect(sv)
	if !base.IsValid() {
		return nil
	}

	ctx := newContext(e.cfg.ResolveCircular)

	if structural(base.Type()) && structural(common.Base(target)) {
		tm, err := e.plan(base.Type(), common.Base(target))
		if err != nil {
			return wrap(pair, "", err)
		}

		if tm.Converter() == nil {
			ptr, err := e.derefAlloc(dv, tm)
			if err != nil {
				return wrap(pair, "", err)
			}

			ctx.register(sv, ptr)

			return wrap(pair, "", e.populate(ctx, sv, ptr, tm))
		}
	}

	out, err := e.convert(ctx, sv, target, nil)
	if err != nil {
		return wrap(pair, "", err)
	}

	dv.Elem().Set(out)

	return nil
}

// derefAlloc follows dst down to a pointer to a struct, allocating nil levels.
func (e *Engine) derefAlloc(dst reflect.Value, tm *plan.TypeMap) (reflect.Value, error) {
	for dst.Elem().Kind() == reflect.Ptr {
		if dst.Elem().IsNil() {
			ptr, err := e.allocate(dst.Elem().Type().Elem(), []convert.Provider{tm.Provider()})
			if err != nil {
				return reflect.Value{}, err
			}

			dst.Elem().Set(ptr)
		}

		dst = dst.Elem()
	}

	return dst, nil
}

func (e *Engine) plan(src, dst reflect.Type) (*plan.TypeMap, error) {
	return e.store.GetOrCreate(src, dst, plan.Definition{})
}

// populate runs the steps of tm from root into the struct dst points to.
func (e *Engine) populate(ctx *Context, root, dst reflect.Value, tm *plan.TypeMap) error {
	for _, st := range tm.Steps() {
		if st.Skip {
			continue
		}

		if err := e.apply(ctx, root, dst, st.Mapping, tm); err != nil {
			return wrap(tm.Pair(), st.Path(), err)
		}
	}

	return nil
}

func (e *Engine) apply(ctx *Context, root, dst reflect.Value, m mapping.Mapping, tm *plan.TypeMap) error {
	var value reflect.Value

	switch m.Kind {
	case mapping.KindProperty:
		v, ok, err := e.accessor.Read(root, m.Source)
		if err != nil {
			return err
		}

		if !ok {
			// a nil pointer on the way leaves the destination alone
			return nil
		}

		value = v
	case mapping.KindConstant:
		value = m.Constant
	default:
		value = root
	}

	if m.Condition != nil && !m.Condition(value) {
		return nil
	}

	provs := []convert.Provider{m.Provider, tm.Provider()}
	target := m.Destination.Type()

	out, err := e.convertMapping(ctx, value, target, m.Converter, provs)
	if err != nil {
		return err
	}

	return e.accessor.Write(dst, m.Destination, out, func(t reflect.Type) (reflect.Value, error) {
		return e.allocate(t, provs)
	})
}

// convertMapping applies the mapping's own converter, falling back to the
// engine chain on ErrCannotConvert. Its output is converted further when it
// does not fit dst.
func (e *Engine) convertMapping(ctx *Context, src reflect.Value, dst reflect.Type, c convert.Converter, provs []convert.Provider) (reflect.Value, error) {
	if c == nil || !src.IsValid() {
		return e.convert(ctx, src, dst, provs)
	}

	out, err := c.Convert(src, dst)
	switch {
	case errors.Is(err, convert.ErrCannotConvert):
		return e.convert(ctx, src, dst, provs)
	case err != nil:
		return reflect.Value{}, err
	case !out.IsValid():
		return reflect.Zero(dst), nil
	case out.Type().AssignableTo(dst):
		return out, nil
	default:
		return e.convert(ctx, out, dst, provs)
	}
}

func (e *Engine) convert(ctx *Context, src reflect.Value, dst reflect.Type, provs []convert.Provider) (reflect.Value, error) {
	if src.IsValid() && src.Kind() == reflect.Interface && !src.IsNil() {
		src = src.Elem()
	}

	if convert.IsNil(src) {
		return reflect.Zero(dst), nil
	}

	if out, ok, err := e.planConverter(src, dst, provs); ok {
		return out, err
	}

	if out, err := e.registry.ConvertUser(src, dst); !errors.Is(err, convert.ErrCannotConvert) {
		return out, err
	}

	if src.Type().AssignableTo(dst) {
		return src, nil
	}

	if out, err := e.registry.ConvertBuiltin(src, dst); !errors.Is(err, convert.ErrCannotConvert) {
		return out, err
	}

	switch {
	case dst.Kind() == reflect.Ptr:
		return e.toPointer(ctx, src, dst, provs)
	case src.Kind() == reflect.Ptr:
		return e.convert(ctx, src.Elem(), dst, provs)
	}

	switch caster.Dispatch(src.Type(), dst) {
	case caster.DispatcherStruct:
		ptr, err := e.toStruct(ctx, src, dst, provs)
		if err != nil {
			return reflect.Value{}, err
		}

		return ptr.Elem(), nil
	case caster.DispatcherSlice:
		return e.toSlice(ctx, src, dst, provs)
	case caster.DispatcherMap:
		return e.toMap(ctx, src, dst, provs)
	case caster.DispatcherInterface:
		if reflect.PointerTo(src.Type()).Implements(dst) {
			ptr := reflect.New(src.Type())
			ptr.Elem().Set(src)

			return ptr, nil
		}
	}

	return reflect.Value{}, convert.Cannot(src.Type(), dst)
}

// planConverter runs the whole-plan converter of a stored plan accepting
// the pair. ok is false when there is none or it declines.
func (e *Engine) planConverter(src reflect.Value, dst reflect.Type, provs []convert.Provider) (reflect.Value, bool, error) {
	tm := e.store.Get(src.Type(), dst)
	if tm == nil || tm.Converter() == nil {
		return reflect.Value{}, false, nil
	}

	in := indirect(src)
	if !in.IsValid() {
		return reflect.Zero(dst), true, nil
	}

	out, err := tm.Converter().Convert(in, common.Base(dst))
	switch {
	case errors.Is(err, convert.ErrCannotConvert):
		return reflect.Value{}, false, nil
	case err != nil:
		return reflect.Value{}, true, err
	}

	out, err = e.fit(out, dst, append(provs, tm.Provider()))

	return out, true, err
}

// fit adapts a converter result to dst by adding or removing one pointer level.
func (e *Engine) fit(out reflect.Value, dst reflect.Type, provs []convert.Provider) (reflect.Value, error) {
	switch {
	case !out.IsValid():
		return reflect.Zero(dst), nil
	case out.Type().AssignableTo(dst):
		return out, nil
	case dst.Kind() == reflect.Ptr && out.Type().AssignableTo(dst.Elem()):
		ptr, err := e.allocate(dst.Elem(), provs)
		if err != nil {
			return reflect.Value{}, err
		}

		ptr.Elem().Set(out)

		return ptr, nil
	case out.Kind() == reflect.Ptr && !out.IsNil() && out.Type().Elem().AssignableTo(dst):
		return out.Elem(), nil
	default:
		return reflect.Value{}, fmt.Errorf("converter returned %s: %w", common.TypeName(out.Type()), convert.Cannot(out.Type(), dst))
	}
}

// toPointer builds a *T destination. Struct destinations are registered in
// the context before they are populated, so cycles back to src reuse them.
func (e *Engine) toPointer(ctx *Context, src reflect.Value, dst reflect.Type, provs []convert.Provider) (reflect.Value, error) {
	if existing, ok := ctx.lookup(src, dst); ok {
		return existing, nil
	}

	elem := dst.Elem()

	base := indirect(src)
	if !base.IsValid() {
		return reflect.Zero(dst), nil
	}

	if structural(base.Type()) && structural(elem) {
		tm, err := e.plan(base.Type(), elem)
		if err != nil {
			return reflect.Value{}, err
		}

		if tm.Converter() == nil {
			ptr, err := e.allocate(elem, append(provs, tm.Provider()))
			if err != nil {
				return reflect.Value{}, err
			}

			ctx.register(src, ptr)

			if err := e.populate(ctx, src, ptr, tm); err != nil {
				return reflect.Value{}, err
			}

			return ptr, nil
		}
	}

	v, err := e.convert(ctx, src, elem, provs)
	if err != nil {
		return reflect.Value{}, err
	}

	ptr, err := e.allocate(elem, provs)
	if err != nil {
		return reflect.Value{}, err
	}

	ptr.Elem().Set(v)

	return ptr, nil
}

// toStruct maps a struct value through the plan of its pair and returns a
// pointer to the new destination.
func (e *Engine) toStruct(ctx *Context, src reflect.Value, dst reflect.Type, provs []convert.Provider) (reflect.Value, error) {
	tm, err := e.plan(src.Type(), dst)
	if err != nil {
		return reflect.Value{}, err
	}

	ptr, err := e.allocate(dst, append(provs, tm.Provider()))
	if err != nil {
		return reflect.Value{}, err
	}

	if err := e.populate(ctx, src, ptr, tm); err != nil {
		return reflect.Value{}, err
	}

	return ptr, nil
}

// toSlice maps element by element. Slices are registered before their
// elements are mapped; arrays keep the shorter length.
func (e *Engine) toSlice(ctx *Context, src reflect.Value, dst reflect.Type, provs []convert.Provider) (reflect.Value, error) {
	if existing, ok := ctx.lookup(src, dst); ok {
		return existing, nil
	}

	n := src.Len()

	var out reflect.Value

	if dst.Kind() == reflect.Slice {
		out = reflect.MakeSlice(dst, n, n)
		ctx.register(src, out)
	} else {
		out = reflect.New(dst).Elem()
		n = min(n, dst.Len())
	}

	for i := range n {
		v, err := e.convert(ctx, src.Index(i), dst.Elem(), provs)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("[%d]: %w", i, err)
		}

		out.Index(i).Set(v)
	}

	return out, nil
}

// toMap maps keys and values entry by entry.
func (e *Engine) toMap(ctx *Context, src reflect.Value, dst reflect.Type, provs []convert.Provider) (reflect.Value, error) {
	if existing, ok := ctx.lookup(src, dst); ok {
		return existing, nil
	}

	out := reflect.MakeMapWithSize(dst, src.Len())
	ctx.register(src, out)

	iter := src.MapRange()
	for iter.Next() {
		k, err := e.convert(ctx, iter.Key(), dst.Key(), provs)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("key %v: %w", iter.Key(), err)
		}

		v, err := e.convert(ctx, iter.Value(), dst.Elem(), provs)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("[%v]: %w", iter.Key(), err)
		}

		out.SetMapIndex(k, v)
	}

	return out, nil
}

// allocate returns a pointer to a fresh t from the first provider that
// answers, the global provider, or reflect.New.
func (e *Engine) allocate(t reflect.Type, provs []convert.Provider) (reflect.Value, error) {
	chain := make([]convert.Provider, 0, len(provs)+1)
	chain = append(chain, provs...)
	chain = append(chain, e.provider)

	if v, ok := convert.Provide(t, chain...); ok {
		return v, nil
	}

	if e.cfg.IsInhibited(t) {
		return reflect.Value{}, fmt.Errorf("%w: %s is inhibited", access.ErrNotInstantiable, common.TypeName(t))
	}

	switch t.Kind() {
	case reflect.Interface, reflect.Func, reflect.Chan:
		return reflect.Value{}, fmt.Errorf("%w: %s", access.ErrNotInstantiable, common.TypeName(t))
	default:
		return reflect.New(t), nil
	}
}

// structural reports struct types mapped property by property.
func structural(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Struct && primitive.FromReflectType(t) == 0
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}

		v = v.Elem()
	}

	return v
}

func typeOf(v reflect.Value) reflect.Type {
	if !v.IsValid() {
		return nil
	}

	return v.Type()
}
