package core

// validation.go checks the header row of a sheet before any cell is read.
//
// The check is exact: same names, same count, same order, same case. A sheet
// that fails it is rejected whole and never reaches coercion.

import (
	"fmt"
	"strings"

	"github.com/JonMunkholm/stockview/internal/schema"
)

// SchemaMismatchError reports how a sheet header differs from the canonical layout.
type SchemaMismatchError struct {
	Expected []string
	Actual   []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch: columns incorrect or out of order (expected [%s], got [%s])",
		strings.Join(e.Expected, ", "), strings.Join(e.Actual, ", "))
}

// Unwrap lets errors.Is(err, ErrSchemaMismatch) match.
func (e *SchemaMismatchError) Unwrap() error {
	return ErrSchemaMismatch
}

// FirstDifference returns the position of the first differing header,
// or -1 when the headers are identical.
func (e *SchemaMismatchError) FirstDifference() int {
	n := min(len(e.Expected), len(e.Actual))
	for i := 0; i < n; i++ {
		if e.Expected[i] != e.Actual[i] {
			return i
		}
	}
	if len(e.Expected) != len(e.Actual) {
		return n
	}
	return -1
}

// ValidateSchema returns nil when header equals the canonical layout exactly.
func ValidateSchema(header []string, specs []schema.FieldSpec) error {
	expected := schema.Headers(specs)

	if len(header) == len(expected) {
		match := true
		for i := range expected {
			if header[i] != expected[i] {
				match = false
				break
			}
		}
		if match {
			return nil
		}
	}

	actual := make([]string, len(header))
	copy(actual, header)
	return &SchemaMismatchError{Expected: expected, Actual: actual}
}
