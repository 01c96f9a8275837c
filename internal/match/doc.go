// Package match discovers implicit property correspondences between two Go
// types.
//
// Every destination path is compared with every readable source path
// (flattened through nested structs) by tokenizing both sides and applying
// the configured strategy:
//   - standard: all destination tokens matched, every source segment used
//   - loose: the last destination segment matched by the last source segment
//   - strict: identical token sequences
//   - fuzzy: Levenshtein similarity weighted with type compatibility
//
// Equal best scores make a destination ambiguous. Destination structs
// without a candidate are expanded into their own properties; a type never
// repeats on one path.
package match
