package mapping

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"struct-mapper/convert"
	"struct-mapper/internal/access"
	"struct-mapper/internal/common"
	"struct-mapper/internal/diagnostic"
)

// Declaration is a block of explicit mapping statements for one type pair.
type Declaration func(b *Builder)

// SourceRef stands for the source root inside a declaration.
type SourceRef struct {
	typ reflect.Type
}

// Get selects a dotted property path below the source root.
func (s *SourceRef) Get(path string) Ref {
	return Ref{path: path}
}

// Type returns the source type the declaration is bound to.
func (s *SourceRef) Type() reflect.Type {
	return s.typ
}

// Ref is a source property selected with SourceRef.Get.
type Ref struct {
	path string
}

type modifiers struct {
	converter    convert.Converter
	condition    convert.Condition
	provider     convert.Provider
	hasConverter bool
	hasCondition bool
	hasProvider  bool
}

func (m modifiers) any() bool {
	return m.hasConverter || m.hasCondition || m.hasProvider
}

// Builder records explicit mappings for one (source, destination) pair.
// Using, When and WithProvider apply to the next Map or Skip; each may be
// called once per mapping. Map and Skip return a Target that must be
// completed with To.
type Builder struct {
	src, dst reflect.Type
	accessor access.Accessor
	pair     string
	block    int

	sourceOnce sync.Once
	source     *SourceRef

	pending  modifiers
	open     *Target
	mappings []Mapping
	diags    diagnostic.Diagnostics
}

// NewBuilder returns a builder bound to src and dst.
func NewBuilder(src, dst reflect.Type, accessor access.Accessor) *Builder {
	src, dst = common.Base(src), common.Base(dst)

	return &Builder{
		src:      src,
		dst:      dst,
		accessor: accessor,
		pair:     common.TypeName(src) + " -> " + common.TypeName(dst),
	}
}

// Source returns the source root stand-in, created on first use.
func (b *Builder) Source() *SourceRef {
	b.sourceOnce.Do(func() {
		b.source = &SourceRef{typ: b.src}
	})

	return b.source
}

// SourceType returns the bound source type.
func (b *Builder) SourceType() reflect.Type { return b.src }

// DestinationType returns the bound destination type.
func (b *Builder) DestinationType() reflect.Type { return b.dst }

// Using attaches a converter to the next mapping.
func (b *Builder) Using(c convert.Converter) *Builder {
	b.closeStatement()

	if b.pending.hasConverter {
		b.usage("Using called twice for one mapping")
		return b
	}

	b.pending.converter, b.pending.hasConverter = c, true

	return b
}

// When gates the next mapping on a condition evaluated against its source value.
func (b *Builder) When(c convert.Condition) *Builder {
	b.closeStatement()

	if b.pending.hasCondition {
		b.usage("When called twice for one mapping")
		return b
	}

	b.pending.condition, b.pending.hasCondition = c, true

	return b
}

// WithProvider sets the provider instantiating the next mapping's destination values.
func (b *Builder) WithProvider(p convert.Provider) *Builder {
	b.closeStatement()

	if b.pending.hasProvider {
		b.usage("WithProvider called twice for one mapping")
		return b
	}

	b.pending.provider, b.pending.hasProvider = p, true

	return b
}

// Map starts a mapping from a source property (a Ref), the source root
// (the SourceRef) or a constant (any other value, nil for zero).
func (b *Builder) Map(from any) *Target {
	b.closeStatement()

	t := &Target{b: b, mods: b.pending}
	b.pending = modifiers{}

	switch v := from.(type) {
	case *SourceRef:
		t.kind = KindSource
	case Ref:
		t.kind, t.source = KindProperty, v.path
	case nil:
		t.kind = KindConstant
	default:
		t.kind, t.constant = KindConstant, reflect.ValueOf(v)
	}

	b.open = t

	return t
}

// Skip reserves a destination path so nothing is mapped to it.
func (b *Builder) Skip() *Target {
	b.closeStatement()

	t := &Target{b: b, mods: b.pending, skip: true}
	b.pending = modifiers{}
	b.open = t

	return t
}

// Fail records a caller-defined error against the current declaration.
func (b *Builder) Fail(format string, args ...any) {
	b.diags.AddError(diagnostic.CodeMergeError, b.prefix()+fmt.Sprintf(format, args...), b.pair, "")
}

// Target completes a statement with its destination path.
type Target struct {
	b        *Builder
	mods     modifiers
	kind     Kind
	source   string
	constant reflect.Value
	skip     bool
	done     bool
}

// To records the destination path and saves the mapping.
func (t *Target) To(path string) {
	b := t.b

	if t.done {
		b.usage("To called twice for one mapping")
		return
	}

	t.done = true
	if b.open == t {
		b.open = nil
	}

	dst, err := b.accessor.Resolve(b.dst, path, access.Write)
	if err != nil {
		b.pathError("destination", path, err)
		return
	}

	m := Mapping{
		Kind:        t.kind,
		Destination: dst,
		Constant:    t.constant,
		Skip:        t.skip,
		Converter:   t.mods.converter,
		Condition:   t.mods.condition,
		Provider:    t.mods.provider,
		Origin:      OriginExplicit,
	}

	if t.kind == KindProperty && !t.skip {
		if m.Source, err = b.accessor.Resolve(b.src, t.source, access.Read); err != nil {
			b.pathError("source", t.source, err)
			return
		}
	}

	b.save(m)
}

func (b *Builder) save(m Mapping) {
	for _, existing := range b.mappings {
		if existing.Path() == m.Path() {
			b.diags.AddError(diagnostic.CodeDuplicateMapping,
				b.prefix()+fmt.Sprintf("destination already mapped by %q", existing.String()), b.pair, m.Path())

			return
		}
	}

	b.mappings = append(b.mappings, m)
}

// closeStatement reports a Map or Skip left without a destination.
func (b *Builder) closeStatement() {
	if b.open == nil {
		return
	}

	open := b.open
	b.open = nil
	open.done = true

	msg := "Map called without a destination"
	if open.skip {
		msg = "Skip called without a destination"
	}

	b.diags.AddError(diagnostic.CodeMissingDestination, b.prefix()+msg, b.pair, open.source)
}

// finish closes the current declaration block.
func (b *Builder) finish() {
	b.closeStatement()

	if b.pending.any() {
		b.usage("Using, When or WithProvider not followed by Map or Skip")
		b.pending = modifiers{}
	}
}

func (b *Builder) usage(msg string) {
	b.diags.AddError(diagnostic.CodeBuilderUsage, b.prefix()+msg, b.pair, "")
}

func (b *Builder) pathError(side, path string, err error) {
	code := diagnostic.CodeInvalidPath
	if errors.Is(err, access.ErrNotInstantiable) {
		code = diagnostic.CodeNotInstantiable
	}

	b.diags.AddError(code, b.prefix()+fmt.Sprintf("%s path: %v", side, err), b.pair, path)
}

func (b *Builder) prefix() string {
	return fmt.Sprintf("declaration %d: ", b.block+1)
}

// run executes one declaration, converting panics into merge errors.
func (b *Builder) run(decl Declaration) {
	defer b.finish()

	defer func() {
		r := recover()
		if r == nil {
			return
		}

		switch v := r.(type) {
		case *diagnostic.Report:
			b.diags.Merge(v.Diagnostics)
		case error:
			b.diags.AddError(diagnostic.CodeMergeError, b.prefix()+v.Error(), b.pair, "")
		default:
			b.diags.AddError(diagnostic.CodeMergeError, b.prefix()+fmt.Sprint(v), b.pair, "")
		}
	}()

	decl(b)
}

// Explicit runs decls in order against a fresh builder and returns the
// explicit mappings with every diagnostic they produced.
func Explicit(src, dst reflect.Type, accessor access.Accessor, decls ...Declaration) ([]Mapping, diagnostic.Diagnostics) {
	b := NewBuilder(src, dst, accessor)

	for i, decl := range decls {
		if decl == nil {
			continue
		}

		b.block = i
		b.run(decl)
	}

	return b.mappings, b.diags
}
