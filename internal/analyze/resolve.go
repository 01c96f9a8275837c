package analyze

import (
	"cmp"
	"slices"
	"strings"
)

// Resolve finds a named type by an identifier like:
//   - "store.Order" (short)
//   - "struct-mapper/store.Order" (full)
//   - "Order" (name only).
//
// Candidates are tried in TypeID order so the result is stable.
func (g *TypeGraph) Resolve(id string) *TypeInfo {
	if g == nil || id == "" {
		return nil
	}

	ids := g.sortedIDs()

	lastDot := strings.LastIndex(id, ".")
	if lastDot < 0 {
		for _, tid := range ids {
			if tid.Name == id {
				return g.Types[tid]
			}
		}

		return nil
	}

	pkg, name := id[:lastDot], id[lastDot+1:]
	if pkg == "" || name == "" {
		return nil
	}

	// 1) exact match (for fully qualified import path)
	if t := g.GetType(TypeID{PkgPath: pkg, Name: name}); t != nil {
		return t
	}

	// 2) suffix match (for short forms like "store.Order" vs "struct-mapper/store.Order")
	for _, tid := range ids {
		if tid.Name == name && strings.HasSuffix(tid.PkgPath, "/"+pkg) {
			return g.Types[tid]
		}
	}

	return nil
}

func (g *TypeGraph) sortedIDs() []TypeID {
	ids := make([]TypeID, 0, len(g.Types))
	for id := range g.Types {
		ids = append(ids, id)
	}

	slices.SortFunc(ids, func(a, b TypeID) int {
		return cmp.Or(cmp.Compare(a.PkgPath, b.PkgPath), cmp.Compare(a.Name, b.Name))
	})

	return ids
}
