package sqlmodel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/sqlmodel"
	"github.com/syssam/sqlmodel/dialect"
)

func TestParams(t *testing.T) {
	p := sqlmodel.Params{{Name: "id", Value: 1}, {Name: "name", Value: "ada"}}
	assert.Equal(t, []string{"id", "name"}, p.Names())

	v, ok := p.Get("name")
	assert.True(t, ok)
	assert.Equal(t, "ada", v)
	_, ok = p.Get("email")
	assert.False(t, ok)

	q := p.With("email", "a@b.c")
	assert.Len(t, p, 2, "With does not modify the receiver")
	assert.Equal(t, []string{"id", "name", "email"}, q.Names())
	assert.Equal(t, map[string]any{"id": 1, "name": "ada", "email": "a@b.c"}, q.Map())
}

// =============================================================================
// Bind Tests
// =============================================================================

func TestParams_Bind(t *testing.T) {
	p := sqlmodel.Params{{Name: "id", Value: 7}, {Name: "name", Value: "ada"}}
	tests := []struct {
		name    string
		dialect string
		query   string
		want    string
		args    []any
	}{
		{
			name:    "mysql",
			dialect: dialect.MySQL,
			query:   "UPDATE `users` SET `name`=:name WHERE `id`=:id",
			want:    "UPDATE `users` SET `name`=? WHERE `id`=?",
			args:    []any{"ada", 7},
		},
		{
			name:    "mysql repeats arguments",
			dialect: dialect.MySQL,
			query:   "SELECT * FROM t WHERE a=:id OR b=:id",
			want:    "SELECT * FROM t WHERE a=? OR b=?",
			args:    []any{7, 7},
		},
		{
			name:    "postgres reuses positions",
			dialect: dialect.Postgres,
			query:   "SELECT * FROM t WHERE a=:id OR b=:id AND c=:name",
			want:    "SELECT * FROM t WHERE a=$1 OR b=$1 AND c=$2",
			args:    []any{7, "ada"},
		},
		{
			name:    "quoted text is untouched",
			dialect: dialect.SQLite,
			query:   "SELECT ':id', \":name\" FROM t WHERE id=:id",
			want:    "SELECT ':id', \":name\" FROM t WHERE id=?",
			args:    []any{7},
		},
		{
			name:    "casts are untouched",
			dialect: dialect.Postgres,
			query:   "SELECT :name::text",
			want:    "SELECT $1::text",
			args:    []any{"ada"},
		},
		{
			name:    "no placeholders",
			dialect: dialect.MySQL,
			query:   "SELECT 1",
			want:    "SELECT 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, args, err := p.Bind(tt.query, tt.dialect)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestParams_BindMissing(t *testing.T) {
	_, _, err := sqlmodel.Params{}.Bind("SELECT * FROM t WHERE id=:id", dialect.MySQL)
	require.Error(t, err)
	assert.ErrorIs(t, err, sqlmodel.ErrMissingParam)
	assert.Contains(t, err.Error(), `"id"`)
}
