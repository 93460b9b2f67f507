package core

// validation.go checks data at the two boundaries the core cares about.
//
//  1. Header validation: required columns of a registered table must be
//     present when the table is loaded.
//  2. Input validation: form inputs are checked for required fields and
//     well-formed typed values before a row is appended.
//
// Input validation reports every problem at once so a caller can show the
// full list; header validation stops at the first missing column.

import (
	"context"
	"fmt"
	"strings"
)

// ValidationError represents a single validation error for a field.
type ValidationError struct {
	Field   string // Field/column name
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationErrors is a list of input problems. It unwraps to ErrInvalidInput.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, len(ve))
	for i, e := range ve {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

func (ve ValidationErrors) Unwrap() error { return ErrInvalidInput }

// ValidateHeaders checks that every required column of def is in header.
func ValidateHeaders(def TableDefinition, header []string) error {
	have := make(map[string]struct{}, len(header))
	for _, h := range header {
		have[h] = struct{}{}
	}
	for _, col := range def.RequiredColumns() {
		if _, ok := have[col]; !ok {
			return &MissingColumnError{Table: def.Info.Name, Column: col}
		}
	}
	return nil
}

// ValidateInputs checks that each required field has a non-blank value.
// Every missing field is reported.
func ValidateInputs(inputs map[string]string, required []string) error {
	var errs ValidationErrors
	for _, field := range required {
		if strings.TrimSpace(inputs[field]) == "" {
			errs = append(errs, ValidationError{Field: field, Message: "required field is empty"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateCell validates a single input value against a field specification.
// Empty values are always valid.
func ValidateCell(value string, spec FieldSpec) error {
	value = CleanCell(value)
	if value == "" {
		return nil
	}

	switch spec.Type {
	case FieldNumeric:
		if _, ok := ParseNumber(value); !ok {
			return fmt.Errorf("invalid number format")
		}
	case FieldDate:
		if _, ok := ParseDate(value); !ok {
			return fmt.Errorf("invalid date format (use YYYY-MM-DD or similar)")
		}
	case FieldBool:
		if _, ok := ParseBool(value); !ok {
			return fmt.Errorf("must be yes/no, true/false, or 1/0")
		}
	}
	return nil
}

// ValidateValues type-checks inputs against the columns of def.
func ValidateValues(def TableDefinition, inputs map[string]string) error {
	var errs ValidationErrors
	for _, spec := range def.FieldSpecs {
		raw, ok := inputs[spec.Name]
		if !ok {
			continue
		}
		if err := ValidateCell(raw, spec); err != nil {
			errs = append(errs, ValidationError{
				Field:   spec.Name,
				Value:   raw,
				Message: fmt.Sprintf("invalid %s: %s", fieldTypeName(spec.Type), err),
			})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LoadTable reads a table and checks its header against the registered
// definition, if any. An empty table is returned as-is.
func LoadTable(ctx context.Context, r TableReader, name string) (Table, error) {
	t, err := r.ReadTable(ctx, name)
	tableReads.WithLabelValues(name).Inc()
	if err != nil {
		return Table{}, fmt.Errorf("read table %s: %w", name, err)
	}
	if t.IsEmpty() {
		return t, nil
	}
	if def, ok := Get(name); ok {
		if err := ValidateHeaders(def, t.Header); err != nil {
			return Table{}, err
		}
	}
	return t, nil
}
