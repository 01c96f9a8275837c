package mapping

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses a YAML declaration file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read declaration file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File and normalizes it.
func Parse(data []byte) (*File, error) {
	var f File

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse declaration YAML: %w", err)
	}

	if f.Version == "" {
		f.Version = "1"
	}

	Normalize(&f)

	return &f, nil
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// Normalize expands 121 shorthand into leading Fields entries, ordered by
// source path so the result does not depend on map iteration.
func Normalize(f *File) {
	for i := range f.TypeMappings {
		tm := &f.TypeMappings[i]
		if len(tm.OneToOne) == 0 {
			continue
		}

		expanded := make([]FieldMapping, 0, len(tm.OneToOne))
		for _, src := range sortedKeys(tm.OneToOne) {
			expanded = append(expanded, FieldMapping{
				Source: src,
				Target: StringArray{tm.OneToOne[src]},
			})
		}

		tm.Fields = append(expanded, tm.Fields...)
		tm.OneToOne = nil
	}
}

func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
