package match

import (
	"strings"

	"struct-mapper/internal/access"
)

// Coverage is the set of destination paths declared explicitly. The zero
// value covers nothing.
type Coverage struct {
	paths map[string]struct{}
}

// NewCoverage builds a coverage from dotted destination paths.
func NewCoverage(paths ...string) Coverage {
	c := Coverage{paths: make(map[string]struct{}, len(paths))}
	for _, p := range paths {
		c.paths[p] = struct{}{}
	}

	return c
}

// Covers reports whether p itself was declared.
func (c Coverage) Covers(p access.Path) bool {
	_, ok := c.paths[p.String()]
	return ok
}

// Descends reports whether a path below p was declared.
func (c Coverage) Descends(p access.Path) bool {
	prefix := p.String() + "."
	for declared := range c.paths {
		if strings.HasPrefix(declared, prefix) {
			return true
		}
	}

	return false
}
