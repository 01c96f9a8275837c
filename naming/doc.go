// Package naming turns Go property names into comparable token lists.
//
// A name passes through a Transformer (e.g. stripping accessor prefixes),
// then a Tokenizer that splits it into lower-cased tokens. Conventions decide
// which methods of a type count as property getters and setters.
package naming
