package plan

import (
	"reflect"

	"struct-mapper/internal/common"
)

// TypePair identifies a plan by its source and destination base types.
type TypePair struct {
	Source      reflect.Type
	Destination reflect.Type
}

// NewTypePair strips pointers from both types.
func NewTypePair(src, dst reflect.Type) TypePair {
	return TypePair{Source: common.Base(src), Destination: common.Base(dst)}
}

// String returns "store.Order -> warehouse.Order".
func (p TypePair) String() string {
	return common.TypeName(p.Source) + " -> " + common.TypeName(p.Destination)
}

// Accepts reports whether a plan stored under p can map src to dst:
// src is assignable to p.Source and dst to p.Destination.
func (p TypePair) Accepts(src, dst reflect.Type) bool {
	return src.AssignableTo(p.Source) && dst.AssignableTo(p.Destination)
}
