package engine

import (
	"errors"
	"fmt"

	"struct-mapper/internal/plan"
)

// ErrMapping is the sentinel every MappingError unwraps to.
var ErrMapping = errors.New("mapping failed")

// MappingError reports a runtime failure at one destination path.
type MappingError struct {
	Pair plan.TypePair
	Path string
	Err  error
}

func (e *MappingError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s: %v", ErrMapping, e.Pair, e.Err)
	}

	return fmt.Sprintf("%s: %s at %s: %v", ErrMapping, e.Pair, e.Path, e.Err)
}

func (e *MappingError) Unwrap() []error {
	return []error{ErrMapping, e.Err}
}

// wrap attaches pair and path to err. A nested MappingError is re-rooted
// at pair with its path prefixed by path.
func wrap(pair plan.TypePair, path string, err error) error {
	if err == nil {
		return nil
	}

	var me *MappingError
	if errors.As(err, &me) {
		return &MappingError{Pair: pair, Path: joinPath(path, me.Path), Err: me.Err}
	}

	return &MappingError{Pair: pair, Path: path, Err: err}
}

func joinPath(outer, inner string) string {
	switch {
	case outer == "":
		return inner
	case inner == "":
		return outer
	default:
		return outer + "." + inner
	}
}
