package sqlmodel_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/sqlmodel"
)

func TestRowError(t *testing.T) {
	row := sqlmodel.Row{Columns: []string{"id", "name"}, Values: []any{int64(1)}}
	err := sqlmodel.NewRowError(row, 1, "name", sqlmodel.ErrMissingValue)

	assert.Equal(t, "sqlmodel: decoding column 1 (name): sqlmodel: missing row value", err.Error())
	assert.True(t, errors.Is(err, sqlmodel.ErrRowConversion))
	assert.True(t, errors.Is(err, sqlmodel.ErrMissingValue))
	assert.True(t, sqlmodel.IsRowError(fmt.Errorf("wrap: %w", err)))
	assert.False(t, sqlmodel.IsRowError(nil))
	assert.Equal(t, row, err.Row)
}

func TestConvertError(t *testing.T) {
	err := &sqlmodel.ConvertError{Value: "x", To: "int"}
	assert.Equal(t, `sqlmodel: cannot convert string(x) to int`, err.Error())

	cause := errors.New("bad digit")
	err = &sqlmodel.ConvertError{Value: "x", To: "int", Err: cause}
	assert.Equal(t, `sqlmodel: cannot convert string(x) to int: bad digit`, err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestWrapFunc(t *testing.T) {
	assert.NoError(t, sqlmodel.WrapFunc("F", nil))

	base := errors.New("boom")
	err := sqlmodel.WrapFunc("User.Save", sqlmodel.WrapFunc("Insert", base))
	assert.Equal(t, "User.Save: Insert: boom", err.Error())
	assert.ErrorIs(t, err, base)
	assert.Equal(t, []string{"User.Save", "Insert"}, sqlmodel.Trace(err))
	assert.Empty(t, sqlmodel.Trace(base))
}

func TestNotFoundError(t *testing.T) {
	err := sqlmodel.NewNotFoundError("users")
	assert.Equal(t, "sqlmodel: users not found", err.Error())
	assert.True(t, errors.Is(err, sqlmodel.ErrNotFound))
	assert.True(t, sqlmodel.IsNotFound(fmt.Errorf("wrap: %w", err)))
	assert.True(t, sqlmodel.IsNotFound(sqlmodel.ErrNotFound))
	assert.False(t, sqlmodel.IsNotFound(nil))
	assert.False(t, sqlmodel.IsNotFound(errors.New("other")))
}

func TestConstraintError(t *testing.T) {
	cause := errors.New("Duplicate entry 'a' for key 'name'")
	err := sqlmodel.NewConstraintError(cause.Error(), cause)

	assert.Equal(t, "sqlmodel: constraint failed: Duplicate entry 'a' for key 'name'", err.Error())
	assert.True(t, sqlmodel.IsConstraintError(fmt.Errorf("wrap: %w", err)))
	assert.False(t, sqlmodel.IsConstraintError(cause))
	assert.ErrorIs(t, err, cause)
}

func TestRequireKeys(t *testing.T) {
	require.NoError(t, sqlmodel.RequireKeys(map[string]bool{"id": true, "name": true}, "id", "name"))

	err := sqlmodel.RequireKeys(map[string]bool{"id": true}, "id", "name", "email")
	var mk *sqlmodel.MissingKeysError
	require.ErrorAs(t, err, &mk)
	assert.Equal(t, []string{"name", "email"}, mk.Keys)
	assert.Equal(t, "sqlmodel: missing keys: name, email", err.Error())
}
