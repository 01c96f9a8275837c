// Package options holds the immutable policy snapshot consulted while
// matching and mapping: access levels, naming, matching strategy,
// ambiguity handling, cycle resolution and implicit conversions.
//
// A Config is a value. Every Option returns a modified copy, so a snapshot
// handed to a compile can never change underneath it.
package options
