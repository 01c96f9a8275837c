package mapping

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"struct-mapper/internal/common"
)

// SourceRoot is the source path selecting the source value itself.
const SourceRoot = "."

// File is the root of a YAML declaration file.
type File struct {
	// Version of the declaration schema.
	Version string `yaml:"version,omitempty"`

	// TypeMappings lists the declared type pairs.
	TypeMappings []TypeMapping `yaml:"mappings"`

	// Transforms lists the named converters the file refers to.
	Transforms []TransformDef `yaml:"transforms,omitempty"`
}

// TypeMapping declares the explicit mappings of one type pair.
type TypeMapping struct {
	// Source type identifier ("store.Order", "struct-mapper/store.Order" or "Order").
	Source string `yaml:"source"`

	// Target type identifier, same forms as Source.
	Target string `yaml:"target"`

	// OneToOne maps source paths to destination paths without modifiers.
	// Example: { "OrderID": "ID", "Customer.Name": "CustomerName" }
	OneToOne map[string]string `yaml:"121,omitempty"`

	// Fields declares mappings with modifiers, constants and 1:many targets.
	Fields []FieldMapping `yaml:"fields,omitempty"`

	// Ignore lists destination paths that are skipped.
	Ignore []string `yaml:"ignore,omitempty"`
}

// FieldMapping declares one source feeding one or more destination paths.
type FieldMapping struct {
	// Source is a dotted source path, or SourceRoot for the source itself.
	Source string `yaml:"source,omitempty"`

	// Target lists the destination paths (string or list in YAML).
	Target StringArray `yaml:"target"`

	// Default makes this a constant mapping; Source is ignored.
	Default *string `yaml:"default,omitempty"`

	// Transform names the converter applied to the value.
	Transform string `yaml:"transform,omitempty"`

	// Condition names the condition gating the mapping.
	Condition string `yaml:"condition,omitempty"`
}

// IsConstant reports whether the field maps a default value.
func (f *FieldMapping) IsConstant() bool {
	return f.Default != nil
}

// TransformDef documents a named converter used by a file.
type TransformDef struct {
	Name        string `yaml:"name"`
	SourceType  string `yaml:"source_type,omitempty"`
	TargetType  string `yaml:"target_type,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// StringArray holds one or many strings; YAML accepts a scalar or a sequence.
type StringArray []string

// UnmarshalYAML accepts either a single string or an array of strings.
func (s *StringArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		if err := node.Decode(&str); err != nil {
			return err
		}

		if str != "" {
			*s = StringArray{str}
		} else {
			*s = StringArray{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		if err := node.Decode(&arr); err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("expected string or array, got %v", node.Kind)
	}
}

// MarshalYAML writes a single string when there is exactly one element.
func (s StringArray) MarshalYAML() (any, error) {
	if common.IsSingle(s) {
		return s[0], nil
	}

	return []string(s), nil
}

// First returns the first element or "".
func (s StringArray) First() string {
	if v, ok := common.First(s); ok {
		return v
	}

	return ""
}

// Contains reports whether str is one of the elements.
func (s StringArray) Contains(str string) bool {
	return slices.Contains(s, str)
}

// Pair returns the "source -> target" label used in diagnostics.
func (tm *TypeMapping) Pair() string {
	return tm.Source + " -> " + tm.Target
}
