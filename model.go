package sqlmodel

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	dsql "github.com/syssam/sqlmodel/dialect/sql"
)

// Model is implemented by every generated model. It exposes the table, the
// named values of the columns other than the identity column and the pool
// the model lives in.
type Model interface {
	PoolOwner
	TableName() string
	FieldValuesWithoutID() Params
}

// RowDecoder is implemented by generated models. FromRow decodes a positional
// row, in field declaration order.
type RowDecoder interface {
	FromRow(Row) error
}

// Identified is implemented by generated models that have an identity column.
// Identity returns the column storage name, its current value and whether
// the value is set (non-zero).
type Identified interface {
	Identity() (column string, value any, ok bool)
}

// Creator is implemented by generated models and returns the literal
// CREATE TABLE statement of the model.
type Creator interface {
	CreateTable() string
}

// ReplaceNames applies the from/to replacement pairs to a field list, in
// order. It backs the generated FieldNamesReplace methods.
func ReplaceNames(names string, pairs ...[2]string) string {
	for _, p := range pairs {
		names = strings.ReplaceAll(names, p[0], p[1])
	}
	return names
}

// GetMulti runs stmt on the pool of T and decodes every row into T.
func GetMulti[T any, PT interface {
	*T
	RowDecoder
	PoolOwner
}](ctx context.Context, stmt string, params Params) ([]T, error) {
	const funcName = "GetMulti"
	g, err := PT(new(T)).Lock()
	if err != nil {
		return nil, WrapFunc(funcName, err)
	}
	defer g.Unlock()
	rows, err := g.Query(ctx, stmt, params)
	if err != nil {
		return nil, WrapFunc(funcName, err)
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		var v T
		if err := PT(&v).FromRow(row); err != nil {
			return nil, WrapFunc(funcName, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// GetSingle runs stmt on the pool of T and decodes the first row. It returns
// nil without error when the statement yields no rows.
func GetSingle[T any, PT interface {
	*T
	RowDecoder
	PoolOwner
}](ctx context.Context, stmt string, params Params) (*T, error) {
	const funcName = "GetSingle"
	g, err := PT(new(T)).Lock()
	if err != nil {
		return nil, WrapFunc(funcName, err)
	}
	defer g.Unlock()
	rows, err := g.Query(ctx, stmt, params)
	if err != nil {
		return nil, WrapFunc(funcName, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	v := new(T)
	if err := PT(v).FromRow(rows[0]); err != nil {
		return nil, WrapFunc(funcName, err)
	}
	return v, nil
}

// InsertStmt returns the INSERT statement of m, without the identity column,
// with identifiers quoted for dialect d.
func InsertStmt(m Model, d string) string {
	var (
		names = m.FieldValuesWithoutID().Names()
		cols  = make([]string, len(names))
		saves = make([]string, len(names))
	)
	for i, n := range names {
		cols[i] = dsql.QuoteIdent(d, n)
		saves[i] = ":" + n
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", dsql.QuoteIdent(d, m.TableName()), strings.Join(cols, ", "), strings.Join(saves, ", "))
}

// UpdateStmt returns the UPDATE statement of m, keyed by its identity
// column, with identifiers quoted for dialect d.
func UpdateStmt(m Model, d, column string) string {
	names := m.FieldValuesWithoutID().Names()
	sets := make([]string, len(names))
	for i, n := range names {
		sets[i] = dsql.QuoteIdent(d, n) + "=:" + n
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s=:%s", dsql.QuoteIdent(d, m.TableName()), strings.Join(sets, ", "), dsql.QuoteIdent(d, column), column)
}

// Insert stores m as a new record.
func Insert(ctx context.Context, m Model) (sql.Result, error) {
	const funcName = "Insert"
	g, err := m.Lock()
	if err != nil {
		return nil, WrapFunc(funcName, err)
	}
	defer g.Unlock()
	res, err := g.Exec(ctx, InsertStmt(m, g.Dialect()), m.FieldValuesWithoutID())
	return res, WrapFunc(funcName, err)
}

// Update stores m over the record that has the same identity. It fails
// with a NotFoundError when the statement matches no record.
func Update(ctx context.Context, m interface {
	Model
	Identified
}) (sql.Result, error) {
	const funcName = "Update"
	column, value, ok := m.Identity()
	if !ok {
		return nil, WrapFunc(funcName, fmt.Errorf("%s has no identity value", m.TableName()))
	}
	g, err := m.Lock()
	if err != nil {
		return nil, WrapFunc(funcName, err)
	}
	defer g.Unlock()
	res, err := g.Exec(ctx, UpdateStmt(m, g.Dialect(), column), m.FieldValuesWithoutID().With(column, value))
	if err != nil {
		return nil, WrapFunc(funcName, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, WrapFunc(funcName, NewNotFoundError(m.TableName()))
	}
	return res, nil
}

// Save updates m when its identity is set and inserts it otherwise.
func Save(ctx context.Context, m interface {
	Model
	Identified
}) (sql.Result, error) {
	if _, _, ok := m.Identity(); ok {
		return Update(ctx, m)
	}
	return Insert(ctx, m)
}
