package mapper

import (
	"struct-mapper/internal/diagnostic"
	"struct-mapper/internal/engine"
	"struct-mapper/internal/mapping"
	"struct-mapper/internal/plan"
)

type (
	// Builder records explicit mappings inside a Declaration.
	Builder = mapping.Builder
	// Declaration is a block of explicit mapping statements.
	Declaration = mapping.Declaration
	// TypeMap is the compiled plan of one type pair.
	TypeMap  = plan.TypeMap
	TypePair = plan.TypePair
	// Definition is what a caller contributes to a type map.
	Definition = plan.Definition
	// Report carries every diagnostic of a failed compile.
	Report = diagnostic.Report
	// MappingError reports a runtime failure at one destination path.
	MappingError = engine.MappingError
)

var (
	ErrMapping       = engine.ErrMapping
	ErrConfiguration = diagnostic.ErrConfiguration
)
