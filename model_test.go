package sqlmodel_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/sqlmodel"
	"github.com/syssam/sqlmodel/dialect"
)

// member is written the way the generator emits a model for
//
//	//sqlmodel:table name="members" who="memberPool"
//	type member struct {
//		ID   int64 `sqlmodel:"auto;key:PRIMARY"`
//		Name string `sqlmodel:"key:UNIQUE"`
//	}
type member struct {
	ID   int64
	Name string
}

var members *sqlmodel.Pool

type memberPool struct{}

func (memberPool) Lock() (*sqlmodel.Guard, error) { return members.Lock() }

func (*member) TableName() string           { return "members" }
func (*member) FieldsWithBackquote() string { return "`id`, `name`" }

func (_m *member) FieldValuesWithoutID() sqlmodel.Params {
	return sqlmodel.Params{{Name: "name", Value: _m.Name}}
}

func (*member) Lock() (*sqlmodel.Guard, error) {
	const funcName = "member.Lock"
	g, err := new(memberPool).Lock()
	if err != nil {
		return nil, sqlmodel.WrapFunc(funcName, err)
	}
	return g, nil
}

func (_m *member) Identity() (string, any, bool) {
	return "id", _m.ID, !sqlmodel.IsZero(_m.ID)
}

func (_m *member) FromRow(row sqlmodel.Row) error {
	v0, ok := row.Get(0)
	if !ok {
		return sqlmodel.NewRowError(row, 0, "id", sqlmodel.ErrMissingValue)
	}
	f0, err := sqlmodel.Convert[int64](v0)
	if err != nil {
		return sqlmodel.NewRowError(row, 0, "id", err)
	}
	v1, ok := row.Get(1)
	if !ok {
		return sqlmodel.NewRowError(row, 1, "name", sqlmodel.ErrMissingValue)
	}
	f1, err := sqlmodel.Convert[string](v1)
	if err != nil {
		return sqlmodel.NewRowError(row, 1, "name", err)
	}
	_m.ID = f0
	_m.Name = f1
	return nil
}

var (
	_ sqlmodel.Model      = (*member)(nil)
	_ sqlmodel.RowDecoder = (*member)(nil)
	_ sqlmodel.Identified = (*member)(nil)
)

func openMembers(t *testing.T) {
	t.Helper()
	pool, err := sqlmodel.OpenPool(dialect.SQLite, filepath.Join(t.TempDir(), "members.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })
	members = pool

	g, err := pool.Lock()
	require.NoError(t, err)
	defer g.Unlock()
	_, err = g.Exec(context.Background(), "CREATE TABLE `members` (`id` INTEGER PRIMARY KEY AUTOINCREMENT, `name` TEXT NOT NULL UNIQUE)", nil)
	require.NoError(t, err)
}

// =============================================================================
// Statement Tests
// =============================================================================

func TestStatements(t *testing.T) {
	m := &member{}
	assert.Equal(t, "INSERT INTO `members` (`name`) VALUES (:name)", sqlmodel.InsertStmt(m, dialect.MySQL))
	assert.Equal(t, "UPDATE `members` SET `name`=:name WHERE `id`=:id", sqlmodel.UpdateStmt(m, dialect.SQLite, "id"))
	assert.Equal(t, `INSERT INTO "members" ("name") VALUES (:name)`, sqlmodel.InsertStmt(m, dialect.Postgres))
	assert.Equal(t, `UPDATE "members" SET "name"=:name WHERE "id"=:id`, sqlmodel.UpdateStmt(m, dialect.Postgres, "id"))
	assert.Equal(t, "`id`, `name` AS `member_name`", sqlmodel.ReplaceNames(m.FieldsWithBackquote(), [2]string{"`name`", "`name` AS `member_name`"}))
	assert.Equal(t, "id, name", sqlmodel.ReplaceNames("id, name"))
}

// =============================================================================
// Round Trip Tests
// =============================================================================

func TestModel_RoundTrip(t *testing.T) {
	openMembers(t)
	ctx := context.Background()

	ada := &member{Name: "ada"}
	_, err := sqlmodel.Save(ctx, ada)
	require.NoError(t, err)
	_, err = sqlmodel.Insert(ctx, &member{Name: "grace"})
	require.NoError(t, err)

	all, err := sqlmodel.GetMulti[member](ctx, "SELECT `id`, `name` FROM `members` ORDER BY `id`", nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, member{ID: 1, Name: "ada"}, all[0])
	assert.Equal(t, member{ID: 2, Name: "grace"}, all[1])

	got := all[0]
	got.Name = "lovelace"
	res, err := sqlmodel.Save(ctx, &got)
	require.NoError(t, err)
	n, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	one, err := sqlmodel.GetSingle[member](ctx, "SELECT `id`, `name` FROM `members` WHERE `id`=:id", sqlmodel.Params{{Name: "id", Value: 1}})
	require.NoError(t, err)
	require.NotNil(t, one)
	assert.Equal(t, "lovelace", one.Name)

	none, err := sqlmodel.GetSingle[member](ctx, "SELECT `id`, `name` FROM `members` WHERE `id`=:id", sqlmodel.Params{{Name: "id", Value: 99}})
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestModel_SavePostgres(t *testing.T) {
	pool, mock := newMockPool(t, dialect.Postgres)
	members = pool
	ctx := context.Background()

	mock.ExpectExec(`INSERT INTO "members" ("name") VALUES ($1)`).
		WithArgs("ann").
		WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectExec(`UPDATE "members" SET "name"=$1 WHERE "id"=$2`).
		WithArgs("ann", int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := sqlmodel.Save(ctx, &member{Name: "ann"})
	require.NoError(t, err)
	_, err = sqlmodel.Save(ctx, &member{ID: 4, Name: "ann"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestModel_UpdateNotFound(t *testing.T) {
	openMembers(t)

	_, err := sqlmodel.Save(context.Background(), &member{ID: 42, Name: "ghost"})
	require.Error(t, err)
	assert.True(t, sqlmodel.IsNotFound(err))
	assert.ErrorIs(t, err, sqlmodel.ErrNotFound)
	assert.Equal(t, []string{"Update"}, sqlmodel.Trace(err))
	assert.Contains(t, err.Error(), "members not found")
}

func TestModel_Constraint(t *testing.T) {
	openMembers(t)
	ctx := context.Background()

	_, err := sqlmodel.Insert(ctx, &member{Name: "ada"})
	require.NoError(t, err)
	_, err = sqlmodel.Insert(ctx, &member{Name: "ada"})
	require.Error(t, err)
	assert.True(t, sqlmodel.IsConstraintError(err))
	assert.Equal(t, []string{"Insert"}, sqlmodel.Trace(err))
}

func TestModel_UpdateWithoutIdentity(t *testing.T) {
	_, err := sqlmodel.Update(context.Background(), &member{Name: "ada"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "members has no identity value")
}

func TestModel_ClosedPool(t *testing.T) {
	openMembers(t)
	require.NoError(t, members.Close())

	_, err := sqlmodel.GetMulti[member](context.Background(), "SELECT `id`, `name` FROM `members`", nil)
	assert.ErrorIs(t, err, sqlmodel.ErrPoolClosed)
	assert.Equal(t, []string{"GetMulti", "member.Lock"}, sqlmodel.Trace(err))
}

// =============================================================================
// FromRow Tests
// =============================================================================

func TestFromRow_Failures(t *testing.T) {
	orig := member{ID: 5, Name: "keep"}

	m := orig
	row := sqlmodel.NewRow(int64(1))
	err := m.FromRow(row)
	require.Error(t, err)
	assert.ErrorIs(t, err, sqlmodel.ErrRowConversion)
	assert.ErrorIs(t, err, sqlmodel.ErrMissingValue)
	assert.Equal(t, orig, m, "the model is untouched on failure")

	var re *sqlmodel.RowError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 1, re.Index)
	assert.Equal(t, "name", re.Column)
	assert.Equal(t, row, re.Row)

	err = m.FromRow(sqlmodel.NewRow("x", "name"))
	require.Error(t, err)
	var ce *sqlmodel.ConvertError
	assert.ErrorAs(t, err, &ce)
	assert.Equal(t, orig, m)

	require.NoError(t, m.FromRow(sqlmodel.NewRow(int64(8), []byte("ok"), "extra")))
	assert.Equal(t, member{ID: 8, Name: "ok"}, m)
}
