package sqlmodel

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for common operations.
var (
	// ErrRowConversion is matched by every RowError.
	ErrRowConversion = errors.New("sqlmodel: row conversion failed")

	// ErrMissingValue is returned when a row has no value at a decoded position.
	ErrMissingValue = errors.New("sqlmodel: missing row value")

	// ErrNullValue is returned when a NULL is decoded into a non-nullable field.
	ErrNullValue = errors.New("sqlmodel: unexpected NULL value")

	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("sqlmodel: record not found")

	// ErrPoolClosed is returned when locking a pool that was closed.
	ErrPoolClosed = errors.New("sqlmodel: pool closed")

	// ErrMissingParam is returned when a named placeholder has no bound value.
	ErrMissingParam = errors.New("sqlmodel: missing named parameter")
)

// RowError is returned by generated FromRow methods when a positional value
// is missing or cannot be converted to the field type. It carries the row it
// was decoding, unchanged, so callers can inspect or retry.
type RowError struct {
	Row    Row    // Row being decoded.
	Index  int    // Position of the failing value.
	Column string // Storage name of the failing column.
	Err    error  // ErrMissingValue or a *ConvertError.
}

// Error returns the error string.
func (e *RowError) Error() string {
	return fmt.Sprintf("sqlmodel: decoding column %d (%s): %v", e.Index, e.Column, e.Err)
}

// Unwrap returns the underlying error.
func (e *RowError) Unwrap() error {
	return e.Err
}

// Is reports whether the target matches ErrRowConversion.
func (e *RowError) Is(target error) bool {
	return target == ErrRowConversion
}

// NewRowError returns a new RowError for the given row position.
func NewRowError(row Row, index int, column string, err error) *RowError {
	return &RowError{Row: row, Index: index, Column: column, Err: err}
}

// IsRowError returns true if the error is a RowError.
func IsRowError(err error) bool {
	if err == nil {
		return false
	}
	var e *RowError
	return errors.As(err, &e)
}

// ConvertError describes a value that could not be converted to a Go type.
type ConvertError struct {
	Value any    // Source value.
	To    string // Destination Go type.
	Err   error  // Optional cause.
}

// Error returns the error string.
func (e *ConvertError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sqlmodel: cannot convert %T(%v) to %s: %v", e.Value, e.Value, e.To, e.Err)
	}
	return fmt.Sprintf("sqlmodel: cannot convert %T(%v) to %s", e.Value, e.Value, e.To)
}

// Unwrap returns the underlying error.
func (e *ConvertError) Unwrap() error {
	return e.Err
}

// FuncError annotates an error with the name of the function it passed
// through. Generated methods wrap failures with their own name.
type FuncError struct {
	Func string
	Err  error
}

// Error returns the error string.
func (e *FuncError) Error() string {
	return e.Func + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *FuncError) Unwrap() error {
	return e.Err
}

// WrapFunc wraps err with the function name. It returns nil if err is nil.
func WrapFunc(name string, err error) error {
	if err == nil {
		return nil
	}
	return &FuncError{Func: name, Err: err}
}

// Trace returns the chain of function names an error passed through,
// outermost first.
func Trace(err error) []string {
	var names []string
	for err != nil {
		var fe *FuncError
		if !errors.As(err, &fe) {
			break
		}
		names = append(names, fe.Func)
		err = fe.Err
	}
	return names
}

// NotFoundError represents an error when a record is not found.
type NotFoundError struct {
	table string
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("sqlmodel: %s not found", e.table)
}

// Is reports whether the target error matches NotFoundError.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// NewNotFoundError returns a new NotFoundError for the given table.
func NewNotFoundError(table string) *NotFoundError {
	return &NotFoundError{table: table}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// ConstraintError represents a database constraint violation error.
type ConstraintError struct {
	msg  string
	wrap error
}

// Error returns the error string.
func (e ConstraintError) Error() string {
	return fmt.Sprintf("sqlmodel: constraint failed: %s", e.msg)
}

// Unwrap returns the underlying error.
func (e ConstraintError) Unwrap() error {
	return e.wrap
}

// NewConstraintError returns a new ConstraintError with the given message.
func NewConstraintError(msg string, wrap error) error {
	return ConstraintError{msg: msg, wrap: wrap}
}

// IsConstraintError returns true if the error is a ConstraintError.
func IsConstraintError(err error) bool {
	if err == nil {
		return false
	}
	var e ConstraintError
	return errors.As(err, &e)
}

// MissingKeysError is returned by generated DecodeMsgpack methods when the
// encoded map lacks some of the model's fields.
type MissingKeysError struct {
	Keys []string
}

// Error returns the error string.
func (e *MissingKeysError) Error() string {
	return "sqlmodel: missing keys: " + strings.Join(e.Keys, ", ")
}
