// Package engine executes compiled type maps against live values.
//
// A call to Map or MapInto walks the plan of the top-level type pair in
// order. Each mapping reads its source value, checks its condition, converts
// the value and writes it to the destination path. Conversion tries, in
// order:
//  1. the mapping's own converter
//  2. the whole-plan converter of a stored plan for the pair
//  3. user converters of the registry
//  4. plain assignment
//  5. built-in scalar converters
//  6. structural conversion: nested plans, pointers, slices, arrays, maps
//
// Every call owns a Context that remembers the destinations under
// construction, so a source graph with cycles maps to a destination graph
// with the same cycles.
package engine
