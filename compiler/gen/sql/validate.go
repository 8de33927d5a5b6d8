package sql

import (
	"fmt"
	"strings"

	"github.com/syssam/sqlmodel/compiler/gen"
)

// ValidationError is one problem found in a table definition.
type ValidationError struct {
	Table   string
	Column  string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s.%s: %s", e.Table, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Table, e.Message)
}

// ValidationResult holds the results of validation.
type ValidationResult struct {
	Errors   []*ValidationError
	Warnings []*ValidationError
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// String returns a human-readable summary of the validation result.
func (r *ValidationResult) String() string {
	var sb strings.Builder
	write := func(title string, errs []*ValidationError) {
		if len(errs) == 0 {
			return
		}
		sb.WriteString(title + ":\n")
		for _, e := range errs {
			sb.WriteString("  - " + e.Error() + "\n")
		}
	}
	write("Errors", r.Errors)
	write("Warnings", r.Warnings)
	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}
	return sb.String()
}

func (r *ValidationResult) merge(o *ValidationResult) {
	r.Errors = append(r.Errors, o.Errors...)
	r.Warnings = append(r.Warnings, o.Warnings...)
}

// ValidateTable checks the constraints MySQL puts on a table definition.
// The literal CREATE TABLE fragment is not validated; only migration plans
// are.
func ValidateTable(t *gen.Table) *ValidationResult {
	result := &ValidationResult{}
	var primary, auto []*gen.Column
	for _, c := range t.Columns {
		if strings.EqualFold(c.KeyKind, "PRIMARY") {
			primary = append(primary, c)
		}
		if c.Auto {
			auto = append(auto, c)
			if !c.HasKey {
				result.Errors = append(result.Errors, &ValidationError{
					Table:   t.Name,
					Column:  c.StorageName,
					Message: "auto increment column must have a key",
				})
			}
		}
	}
	switch {
	case len(primary) == 0:
		result.Warnings = append(result.Warnings, &ValidationError{
			Table:   t.Name,
			Message: "table has no primary key",
		})
	case len(primary) > 1:
		result.Errors = append(result.Errors, &ValidationError{
			Table:   t.Name,
			Message: fmt.Sprintf("multiple primary keys: %s", FieldNames(primary)),
		})
	}
	if len(auto) > 1 {
		result.Errors = append(result.Errors, &ValidationError{
			Table:   t.Name,
			Message: fmt.Sprintf("multiple auto increment columns: %s", FieldNames(auto)),
		})
	}
	return result
}

// ValidateSchema validates tables that are planned together.
func ValidateSchema(tables []*gen.Table) *ValidationResult {
	result := &ValidationResult{}
	names := make(map[string]string, len(tables))
	for _, t := range tables {
		if prev, ok := names[t.Name]; ok {
			result.Errors = append(result.Errors, &ValidationError{
				Table:   t.Name,
				Message: fmt.Sprintf("table name used by both %s and %s", prev, t.Type),
			})
		}
		names[t.Name] = t.Type
		result.merge(ValidateTable(t))
	}
	return result
}
