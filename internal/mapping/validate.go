package mapping

import (
	"fmt"
	"strings"

	"struct-mapper/internal/analyze"
	"struct-mapper/internal/diagnostic"
)

// Validate checks a declaration file against a statically loaded type graph.
// It only proves that types and paths exist; convertibility is left to the
// runtime compile. Transform names must be declared in the file itself.
func Validate(f *File, graph *analyze.TypeGraph) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError(diagnostic.CodeMergeError, "declaration file is nil", "", "")
		return res
	}

	if graph == nil {
		res.AddError(diagnostic.CodeTypeNotFound, "type graph is nil", "", "")
		return res
	}

	declared := map[string]struct{}{}

	for _, td := range f.Transforms {
		if td.Name == "" {
			continue
		}

		if _, ok := declared[td.Name]; ok {
			res.AddError(diagnostic.CodeDuplicateMapping, fmt.Sprintf("duplicate transform %q", td.Name), "", td.Name)
			continue
		}

		declared[td.Name] = struct{}{}
	}

	for i := range f.TypeMappings {
		tm := &f.TypeMappings[i]
		pair := tm.Pair()

		srcT := graph.Resolve(tm.Source)
		if srcT == nil {
			res.AddError(diagnostic.CodeTypeNotFound, fmt.Sprintf("source type %q not found", tm.Source), pair, "")
		}

		dstT := graph.Resolve(tm.Target)
		if dstT == nil {
			res.AddError(diagnostic.CodeTypeNotFound, fmt.Sprintf("target type %q not found", tm.Target), pair, "")
		}

		if srcT == nil || dstT == nil {
			continue
		}

		validateTypeMapping(res, tm, srcT, dstT, declared)
	}

	return res
}

func validateTypeMapping(res *diagnostic.Diagnostics, tm *TypeMapping, srcT, dstT *analyze.TypeInfo, declared map[string]struct{}) {
	pair := tm.Pair()
	targets := map[string]struct{}{}

	claim := func(path string) {
		if _, dup := targets[path]; dup {
			res.AddError(diagnostic.CodeDuplicateMapping, "destination mapped more than once", pair, path)
		}

		targets[path] = struct{}{}
	}

	for _, src := range sortedKeys(tm.OneToOne) {
		dst := tm.OneToOne[src]
		checkPath(res, pair, "source", src, srcT, false)
		checkPath(res, pair, "target", dst, dstT, true)
		claim(dst)
	}

	for _, fm := range tm.Fields {
		if len(fm.Target) == 0 {
			res.AddError(diagnostic.CodeMissingDestination, "field mapping must specify target", pair, fm.Source)
		}

		for _, dst := range fm.Target {
			checkPath(res, pair, "target", dst, dstT, true)
			claim(dst)
		}

		switch {
		case fm.Default != nil, fm.Source == SourceRoot:
			// nothing to resolve
		case fm.Source == "":
			res.AddError(diagnostic.CodeInvalidPath, "field mapping must specify source (or default)", pair, fm.Target.First())
		default:
			checkPath(res, pair, "source", fm.Source, srcT, false)
		}

		if fm.Transform != "" {
			if _, ok := declared[fm.Transform]; !ok {
				res.AddError(diagnostic.CodeUnknownTransform,
					fmt.Sprintf("referenced transform %q is not declared in transforms", fm.Transform), pair, fm.Target.First())
			}
		}
	}

	for _, ig := range tm.Ignore {
		checkPath(res, pair, "ignore", ig, dstT, true)
		claim(ig)
	}
}

func checkPath(res *diagnostic.Diagnostics, pair, side, path string, root *analyze.TypeInfo, write bool) {
	if err := validatePathAgainstType(path, root, write); err != nil {
		res.AddError(diagnostic.CodeInvalidPath, fmt.Sprintf("invalid %s path: %v", side, err), pair, path)
	}
}

// validatePathAgainstType walks a dotted path through struct fields. The last
// segment may also name a getter (read side) or a setter (write side).
func validatePathAgainstType(path string, root *analyze.TypeInfo, write bool) error {
	segments := strings.Split(path, ".")
	current := root

	for i, seg := range segments {
		if seg == "" {
			return fmt.Errorf("%q has an empty segment", path)
		}

		current = current.Deref()
		if current == nil {
			return fmt.Errorf("nil type while resolving %q", seg)
		}

		if current.Kind != analyze.TypeKindStruct {
			return fmt.Errorf("cannot access %q on non-struct kind %s", seg, current.Kind)
		}

		if fld := current.Field(seg); fld != nil {
			current = fld.Type
			continue
		}

		if i == len(segments)-1 && hasAccessor(current, seg, write) {
			return nil
		}

		return fmt.Errorf("property %q not found in %s", seg, current.ID)
	}

	return nil
}

func hasAccessor(t *analyze.TypeInfo, name string, write bool) bool {
	if write {
		m := t.Method("Set" + name)
		return m != nil && m.IsSetter()
	}

	for _, candidate := range []string{name, "Get" + name, "Is" + name} {
		if m := t.Method(candidate); m != nil && m.IsGetter() {
			return true
		}
	}

	return false
}
