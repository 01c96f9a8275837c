package mapper

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"struct-mapper/convert"
	"struct-mapper/internal/mapping"
)

// RegisterTransform names a converter for use in declaration files.
// Registering a name again replaces the converter.
func (m *Mapper) RegisterTransform(name string, c convert.Converter) error {
	if name == "" || c == nil {
		return fmt.Errorf("%w: transform needs a name and a converter", ErrConfiguration)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.transforms[name] = c

	return nil
}

// RegisterFunc names a function converter, see convert.Func.
func (m *Mapper) RegisterFunc(name string, fn any) error {
	c, err := convert.Func(fn)
	if err != nil {
		return fmt.Errorf("transform %q: %w", name, err)
	}

	return m.RegisterTransform(name, c)
}

// RegisterCondition names a condition for use in declaration files.
// not_nil, nil and not_zero are built in.
func (m *Mapper) RegisterCondition(name string, c convert.Condition) error {
	if name == "" || c == nil {
		return fmt.Errorf("%w: condition needs a name and a function", ErrConfiguration)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.conditions[name] = c

	return nil
}

// Transform returns the converter registered under name.
func (m *Mapper) Transform(name string) (convert.Converter, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.transforms[name]

	return c, ok
}

// Condition returns the condition registered under name.
func (m *Mapper) Condition(name string) (convert.Condition, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.conditions[name]

	return c, ok
}

// LoadDeclarations reads a YAML declaration file and merges its mappings.
// types lists the Go types the file may name.
func (m *Mapper) LoadDeclarations(path string, types ...reflect.Type) error {
	f, err := mapping.LoadFile(path)
	if err != nil {
		return err
	}

	return m.applyDeclarations(f, types)
}

// ParseDeclarations is LoadDeclarations for in-memory YAML.
func (m *Mapper) ParseDeclarations(data []byte, types ...reflect.Type) error {
	f, err := mapping.Parse(data)
	if err != nil {
		return err
	}

	return m.applyDeclarations(f, types)
}

// applyDeclarations resolves every type mapping first and merges nothing
// when one of them fails to resolve. Merge failures are collected per pair.
func (m *Mapper) applyDeclarations(f *mapping.File, types []reflect.Type) error {
	declared, diags := f.Declarations(mapping.NewTypeIndex(types...), m)
	if err := diags.Err(); err != nil {
		return err
	}

	var errs []error

	for _, d := range declared {
		_, err := m.store.GetOrCreate(d.Source, d.Destination, Definition{
			Declarations: []mapping.Declaration{d.Declaration},
		})
		if err != nil {
			errs = append(errs, err)
		}
	}

	m.logger.Debug("declarations applied", slog.Int("mappings", len(declared)), slog.Int("failed", len(errs)))

	return errors.Join(errs...)
}
