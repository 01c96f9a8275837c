package diagnostic

import (
	"errors"
	"strings"
)

// Diagnostic codes shared by the compile pipeline.
const (
	CodeBuilderUsage       = "builder_usage"
	CodeMissingDestination = "missing_destination"
	CodeAmbiguousMatch     = "ambiguous_match"
	CodeDuplicateMapping   = "duplicate_mapping"
	CodeAccessorError      = "accessor_error"
	CodeNotInstantiable    = "not_instantiable"
	CodeMergeError         = "merge_error"
	CodeInvalidPath        = "invalid_path"
	CodeUnknownTransform   = "unknown_transform"
	CodeUnmapped           = "unmapped"
	CodeTypeNotFound       = "type_not_found"
	CodeNoRoute            = "no_conversion_route"
)

// ErrConfiguration is the sentinel every Report unwraps to.
var ErrConfiguration = errors.New("mapping configuration error")

// Report is the error raised once per failed compile attempt.
// It carries every accumulated diagnostic, not only the first.
type Report struct {
	Diagnostics Diagnostics
}

func (r *Report) Error() string {
	parts := make([]string, 0, len(r.Diagnostics.Errors))
	for _, e := range r.Diagnostics.Errors {
		parts = append(parts, e.String())
	}

	return ErrConfiguration.Error() + ": " + strings.Join(parts, "; ")
}

func (r *Report) Unwrap() error {
	return ErrConfiguration
}

// Messages returns the formatted error messages in accumulation order.
func (r *Report) Messages() []string {
	out := make([]string, 0, len(r.Diagnostics.Errors))
	for _, e := range r.Diagnostics.Errors {
		out = append(out, e.String())
	}

	return out
}

// Codes returns the error codes in accumulation order.
func (r *Report) Codes() []string {
	out := make([]string, 0, len(r.Diagnostics.Errors))
	for _, e := range r.Diagnostics.Errors {
		out = append(out, e.Code)
	}

	return out
}
