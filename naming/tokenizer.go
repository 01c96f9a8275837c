package naming

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
)

// Tokenizer splits a property name into case-folded tokens.
type Tokenizer interface {
	Tokenize(name string) []string
}

// TokenizerFunc adapts a function to the Tokenizer interface.
type TokenizerFunc func(name string) []string

func (f TokenizerFunc) Tokenize(name string) []string { return f(name) }

var (
	// CamelCase splits on case transitions and on '_', '-' and ' '.
	// Examples:
	//   - "OrderID" -> ["order", "id"]
	//   - "customerName" -> ["customer", "name"]
	//   - "XMLParser" -> ["xml", "parser"]
	//   - "getHTTPResponse" -> ["get", "http", "response"]
	CamelCase Tokenizer = TokenizerFunc(func(name string) []string {
		return fold(splitCamelCase(name))
	})

	// Underscore splits on separators only and keeps case transitions intact.
	Underscore Tokenizer = TokenizerFunc(func(name string) []string {
		return fold(strings.FieldsFunc(name, isSeparator))
	})
)

// Singular wraps t so every token is reduced to its singular form,
// letting "Items" match "Item".
func Singular(t Tokenizer) Tokenizer {
	return TokenizerFunc(func(name string) []string {
		tokens := t.Tokenize(name)
		for i, tok := range tokens {
			tokens[i] = inflect.Singularize(tok)
		}

		return tokens
	})
}

// ParseTokenizer returns the tokenizer registered under name.
func ParseTokenizer(name string) (Tokenizer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "camel", "camelcase":
		return CamelCase, nil
	case "underscore", "snake":
		return Underscore, nil
	case "singular", "camel_singular":
		return Singular(CamelCase), nil
	default:
		return nil, fmt.Errorf("unknown tokenizer %q", name)
	}
}

// Join concatenates tokens into a single comparable key.
func Join(tokens []string) string {
	return strings.Join(tokens, "")
}

func fold(tokens []string) []string {
	caser := cases.Fold()
	for i, tok := range tokens {
		tokens[i] = caser.String(tok)
	}

	return tokens
}

func splitCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var (
		tokens  []string
		current strings.Builder
	)

	runes := []rune(s)
	for i := range runes {
		r := runes[i]

		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && shouldStartNewToken(runes, i) && current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

func shouldStartNewToken(runes []rune, i int) bool {
	r := runes[i]
	prev := runes[i-1]

	// "orderID" splits before 'I'
	if unicode.IsUpper(r) && !unicode.IsUpper(prev) && !isSeparator(prev) {
		return true
	}

	// "XMLParser" splits before 'P'
	return unicode.IsUpper(r) && unicode.IsUpper(prev) &&
		i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
