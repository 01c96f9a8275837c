// Package access enumerates, resolves, reads and writes properties of Go
// types through reflection.
//
// A property is an exported struct field, an unexported field when private
// access is enabled, or a getter/setter method recognised by the naming
// convention of its side. Paths are dotted property names resolved from a
// root struct type, e.g. "Customer.Address.City".
//
// Intermediate path segments are always fields; nil pointers met while
// writing are allocated through the caller's Allocator.
package access
