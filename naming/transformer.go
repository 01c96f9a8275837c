package naming

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Transformer rewrites a property name before it is tokenized.
type Transformer func(name string) string

// Identity leaves names untouched.
func Identity(name string) string { return name }

// StripAccessorPrefix removes a leading Get, Set or Is word
// ("GetName" -> "Name", "IsActive" -> "Active"). "Settings" is left alone
// because the prefix must end on a word boundary.
func StripAccessorPrefix(name string) string {
	for _, prefix := range []string{"Get", "Set", "Is", "get", "set", "is"} {
		rest, ok := strings.CutPrefix(name, prefix)
		if !ok || rest == "" {
			continue
		}

		if r, _ := utf8.DecodeRuneInString(rest); unicode.IsUpper(r) || r == '_' {
			return strings.TrimLeft(rest, "_")
		}
	}

	return name
}

// Chain applies transformers left to right.
func Chain(ts ...Transformer) Transformer {
	return func(name string) string {
		for _, t := range ts {
			if t != nil {
				name = t(name)
			}
		}

		return name
	}
}

// ParseTransformer returns the transformer registered under name.
func ParseTransformer(name string) (Transformer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "identity", "none":
		return Identity, nil
	case "strip_accessor_prefix", "strip_prefix":
		return StripAccessorPrefix, nil
	default:
		return nil, fmt.Errorf("unknown transformer %q", name)
	}
}
