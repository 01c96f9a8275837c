package mapping

import (
	"fmt"
	"reflect"
	"strings"

	"struct-mapper/convert"
	"struct-mapper/internal/common"
	"struct-mapper/internal/diagnostic"
)

// Lookup resolves the transform and condition names used in a File.
type Lookup interface {
	Transform(name string) (convert.Converter, bool)
	Condition(name string) (convert.Condition, bool)
}

// TypeIndex resolves the type identifiers of a File to reflect types.
type TypeIndex struct {
	types []reflect.Type
}

// NewTypeIndex indexes the given types; pointers are indexed by their base.
func NewTypeIndex(types ...reflect.Type) *TypeIndex {
	idx := &TypeIndex{}
	idx.Add(types...)

	return idx
}

// Add indexes more types, ignoring unnamed ones and duplicates.
func (idx *TypeIndex) Add(types ...reflect.Type) {
	for _, t := range types {
		t = common.Base(t)
		if t == nil || t.Name() == "" {
			continue
		}

		dup := false
		for _, known := range idx.types {
			if known == t {
				dup = true
				break
			}
		}

		if !dup {
			idx.types = append(idx.types, t)
		}
	}
}

// Resolve finds a type by "pkg.Name", "full/import/path.Name" or "Name".
// The first indexed type wins when several match.
func (idx *TypeIndex) Resolve(id string) (reflect.Type, bool) {
	if id == "" {
		return nil, false
	}

	lastDot := strings.LastIndex(id, ".")
	if lastDot < 0 {
		for _, t := range idx.types {
			if t.Name() == id {
				return t, true
			}
		}

		return nil, false
	}

	pkg, name := id[:lastDot], id[lastDot+1:]
	if pkg == "" || name == "" {
		return nil, false
	}

	for _, t := range idx.types {
		if t.Name() == name && t.PkgPath() == pkg {
			return t, true
		}
	}

	for _, t := range idx.types {
		if t.Name() == name && strings.HasSuffix(t.PkgPath(), "/"+pkg) {
			return t, true
		}
	}

	return nil, false
}

// Declared is a declaration read from a file together with its type pair.
type Declared struct {
	Source      reflect.Type
	Destination reflect.Type
	Declaration Declaration
}

// Declarations turns every type mapping of f into a Declaration. Unknown
// types and unknown transform or condition names are reported and the
// affected type mapping is left out.
func (f *File) Declarations(idx *TypeIndex, lookup Lookup) ([]Declared, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	for _, td := range f.Transforms {
		if _, ok := lookup.Transform(td.Name); !ok {
			diags.AddError(diagnostic.CodeUnknownTransform,
				fmt.Sprintf("declared transform %q is not registered", td.Name), "", td.Name)
		}
	}

	out := make([]Declared, 0, len(f.TypeMappings))

	for i := range f.TypeMappings {
		tm := &f.TypeMappings[i]
		pair := tm.Pair()

		src, ok := idx.Resolve(tm.Source)
		if !ok {
			diags.AddError(diagnostic.CodeTypeNotFound, fmt.Sprintf("source type %q not found", tm.Source), pair, "")
		}

		dst, okDst := idx.Resolve(tm.Target)
		if !okDst {
			diags.AddError(diagnostic.CodeTypeNotFound, fmt.Sprintf("target type %q not found", tm.Target), pair, "")
		}

		decl, declDiags := tm.declaration(lookup)
		diags.Merge(declDiags)

		if !ok || !okDst || declDiags.HasErrors() {
			continue
		}

		out = append(out, Declared{Source: src, Destination: dst, Declaration: decl})
	}

	return out, diags
}

type fieldStatement struct {
	fm        FieldMapping
	converter convert.Converter
	condition convert.Condition
}

// declaration resolves the names used by tm and returns the builder block.
func (tm *TypeMapping) declaration(lookup Lookup) (Declaration, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	pair := tm.Pair()
	stmts := make([]fieldStatement, 0, len(tm.Fields)+len(tm.OneToOne))

	for _, src := range sortedKeys(tm.OneToOne) {
		stmts = append(stmts, fieldStatement{fm: FieldMapping{Source: src, Target: StringArray{tm.OneToOne[src]}}})
	}

	for _, fm := range tm.Fields {
		st := fieldStatement{fm: fm}

		if len(fm.Target) == 0 {
			diags.AddError(diagnostic.CodeMissingDestination, "field mapping must specify target", pair, fm.Source)
			continue
		}

		if fm.Source == "" && fm.Default == nil {
			diags.AddError(diagnostic.CodeInvalidPath, "field mapping must specify source (or default)",
				pair, fm.Target.First())

			continue
		}

		if fm.Transform != "" {
			c, ok := lookup.Transform(fm.Transform)
			if !ok {
				diags.AddError(diagnostic.CodeUnknownTransform,
					fmt.Sprintf("referenced transform %q is not registered", fm.Transform), pair, fm.Target.First())

				continue
			}

			st.converter = c
		}

		if fm.Condition != "" {
			c, ok := lookup.Condition(fm.Condition)
			if !ok {
				diags.AddError(diagnostic.CodeUnknownTransform,
					fmt.Sprintf("referenced condition %q is not registered", fm.Condition), pair, fm.Target.First())

				continue
			}

			st.condition = c
		}

		stmts = append(stmts, st)
	}

	ignore := tm.Ignore

	return func(b *Builder) {
		for _, st := range stmts {
			for _, target := range st.fm.Target {
				if st.converter != nil {
					b.Using(st.converter)
				}

				if st.condition != nil {
					b.When(st.condition)
				}

				switch {
				case st.fm.Default != nil:
					b.Map(*st.fm.Default).To(target)
				case st.fm.Source == SourceRoot:
					b.Map(b.Source()).To(target)
				default:
					b.Map(b.Source().Get(st.fm.Source)).To(target)
				}
			}
		}

		for _, path := range ignore {
			b.Skip().To(path)
		}
	}, diags
}
