package engine

import (
	"fmt"
)

// BuildError kinds.
const (
	ErrSchemaMismatch = "schema_mismatch"
	ErrBadInput       = "bad_input"
)

// BuildError is the single structured failure surfaced by a build. A failed
// build never returns a partially populated result; a half-filled report
// would be worse than no report.
type BuildError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Row     int    `json:"row,omitempty"`
}

func (e *BuildError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: %s (file %q)", e.Kind, e.Message, e.File)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func schemaMismatch(file, format string, args ...interface{}) *BuildError {
	return &BuildError{
		Kind:    ErrSchemaMismatch,
		Message: fmt.Sprintf(format, args...),
		File:    file,
	}
}
