package options

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"struct-mapper/naming"
)

// File is the YAML form of a Config. Unset fields keep their defaults.
type File struct {
	Strategy           string   `yaml:"strategy,omitempty"`
	FieldAccess        string   `yaml:"field_access,omitempty"`
	FieldMatching      *bool    `yaml:"field_matching,omitempty"`
	IgnoreAmbiguity    *bool    `yaml:"ignore_ambiguity,omitempty"`
	ResolveCircular    *bool    `yaml:"resolve_circular,omitempty"`
	MaxDepth           int      `yaml:"max_depth,omitempty"`
	MinConfidence      float64  `yaml:"min_confidence,omitempty"`
	AmbiguityThreshold float64  `yaml:"ambiguity_threshold,omitempty"`
	Conversions        []string `yaml:"conversions,omitempty"`
	Source             SideFile `yaml:"source,omitempty"`
	Destination        SideFile `yaml:"destination,omitempty"`
}

// SideFile is the YAML form of a Side.
type SideFile struct {
	Convention  string   `yaml:"convention,omitempty"`
	Tokenizer   string   `yaml:"tokenizer,omitempty"`
	Transformer []string `yaml:"transformer,omitempty"`
}

// LoadFile reads a YAML policy file and applies it on top of Default.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read options file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes YAML policy data and applies it on top of Default.
func Parse(data []byte) (Config, error) {
	var f File

	if err := yaml.Unmarshal(data, &f); err != nil {
		return Config{}, fmt.Errorf("failed to parse options YAML: %w", err)
	}

	opts, err := f.Options()
	if err != nil {
		return Config{}, err
	}

	return New(opts...), nil
}

// Options converts the file into Option values, reporting every invalid entry.
func (f File) Options() ([]Option, error) {
	var (
		opts []Option
		errs []error
	)

	if f.Strategy != "" {
		s, err := ParseStrategy(f.Strategy)
		errs = append(errs, err)
		opts = append(opts, WithStrategy(s))
	}

	if f.FieldAccess != "" {
		a, err := ParseAccessLevel(f.FieldAccess)
		errs = append(errs, err)
		opts = append(opts, WithFieldAccess(a))
	}

	if f.FieldMatching != nil {
		opts = append(opts, WithFieldMatching(*f.FieldMatching))
	}

	if f.IgnoreAmbiguity != nil {
		opts = append(opts, WithIgnoreAmbiguity(*f.IgnoreAmbiguity))
	}

	if f.ResolveCircular != nil {
		opts = append(opts, WithResolveCircular(*f.ResolveCircular))
	}

	if f.MaxDepth > 0 {
		opts = append(opts, WithMaxDepth(f.MaxDepth))
	}

	if f.MinConfidence > 0 {
		opts = append(opts, WithMinConfidence(f.MinConfidence))
	}

	if f.AmbiguityThreshold > 0 {
		opts = append(opts, WithAmbiguityThreshold(f.AmbiguityThreshold))
	}

	if len(f.Conversions) > 0 {
		c, err := ParseCategories(f.Conversions...)
		errs = append(errs, err)
		opts = append(opts, WithConversions(c))
	}

	src, err := f.Source.side()
	errs = append(errs, err)
	opts = append(opts, WithSourceNaming(src))

	dst, err := f.Destination.side()
	errs = append(errs, err)
	opts = append(opts, WithDestinationNaming(dst))

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return opts, nil
}

func (s SideFile) side() (Side, error) {
	var (
		side Side
		errs []error
		err  error
	)

	if s.Convention != "" {
		side.Convention, err = naming.ParseConvention(s.Convention)
		errs = append(errs, err)
	}

	if s.Tokenizer != "" {
		side.Tokenizer, err = naming.ParseTokenizer(s.Tokenizer)
		errs = append(errs, err)
	}

	if len(s.Transformer) > 0 {
		chain := make([]naming.Transformer, 0, len(s.Transformer))
		for _, name := range s.Transformer {
			t, err := naming.ParseTransformer(name)
			errs = append(errs, err)
			chain = append(chain, t)
		}

		side.Transformer = naming.Chain(chain...)
	}

	return side, errors.Join(errs...)
}
