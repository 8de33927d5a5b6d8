package gen

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/sqlmodel/compiler/load"
	"github.com/syssam/sqlmodel/internal/logger"
)

// =============================================================================
// Type mapping
// =============================================================================

func TestMapType(t *testing.T) {
	tests := []struct {
		goType string
		want   string
	}{
		{"int", "int(11)"},
		{"int32", "int(11)"},
		{"int64", "bigint(20)"},
		{"int8", "tinyint(4)"},
		{"int16", "smallint(6)"},
		{"string", "varchar(32)"},
		{"bool", "tinyint(1)"},
		{"float64", "double"},
		{"time.Time", "datetime"},
		{"decimal.Decimal", "decimal(20,6)"},
		{"uuid.UUID", "char(36)"},
		{"[]byte", "blob"},
		// Identity fallback at both stages.
		{"Status", "Status"},
		{"*string", "*string"},
		// Case-sensitive.
		{"String", "String"},
	}
	for _, tt := range tests {
		t.Run(tt.goType, func(t *testing.T) {
			assert.Equal(t, tt.want, MapType(tt.goType))
		})
	}
}

func TestMapType_FirstMatch(t *testing.T) {
	orig := GoTypes
	t.Cleanup(func() { GoTypes = orig })
	GoTypes = append([]TypePair{{"int", "bigint"}}, orig...)
	assert.Equal(t, "bigint(20)", MapType("int"))
}

// =============================================================================
// NewTable
// =============================================================================

func TestNewTable(t *testing.T) {
	tbl := newTestTable(t, userModel)

	assert.Equal(t, "users", tbl.Name)
	assert.Equal(t, "AppPool", tbl.Who)
	assert.Equal(t, "User", tbl.Type)
	assert.Equal(t, "model", tbl.Package)
	require.Len(t, tbl.Columns, 2)

	id, name := tbl.Columns[0], tbl.Columns[1]
	assert.True(t, id.ID)
	assert.True(t, id.Auto)
	assert.True(t, id.HasKey)
	assert.Equal(t, "int(11)", id.StorageType)
	assert.Equal(t, "`id` int(11) NOT NULL AUTO_INCREMENT", id.Definition())
	assert.Equal(t, "PRIMARY KEY (`id`)", id.KeyClause())

	assert.False(t, name.ID)
	assert.Equal(t, "`name` varchar(32) NOT NULL", name.Definition())
	assert.Empty(t, name.KeyClause())
}

func TestNewTable_Defaults(t *testing.T) {
	var buf bytes.Buffer
	cfg := MustNewConfig(WithLogger(logger.NewLogger(&logger.Config{Level: logger.DebugLevel, Output: &buf})))
	decl := parseDecl(t, "package model\n\n//sqlmodel:model\ntype Tag struct {\n\tLabel string `sqlmodel:\"unique\"`\n}\n")

	tbl, err := NewTable(cfg, decl)
	require.NoError(t, err)
	assert.Equal(t, load.DefaultTable, tbl.Name)
	assert.Equal(t, load.DefaultWho, tbl.Who)
	assert.False(t, tbl.HasID())
	assert.Contains(t, buf.String(), "table name not set")
	assert.Contains(t, buf.String(), "unknown field option")
}

func TestNewTable_Overrides(t *testing.T) {
	tbl := newTestTable(t, `package model

import "time"

//sqlmodel:table name="events"
type Event struct {
	ID      int64
	Title   string    `+"`sqlmodel:\"name:event_title;type:varchar(255);key\"`"+`
	Payload []byte    `+"`sqlmodel:\"key:UNIQUE\"`"+`
	At      time.Time `+"`sqlmodel:\"type:timestamp\"`"+`
}
`)
	title := tbl.Columns[1]
	assert.Equal(t, "title", title.Name)
	assert.Equal(t, "Title", title.GoName)
	assert.Equal(t, "event_title", title.StorageName)
	assert.Equal(t, "varchar(255)", title.StorageType, "explicit type wins over the inferred varchar(32)")
	assert.Equal(t, "KEY (`event_title`)", title.KeyClause())

	assert.Equal(t, "UNIQUE KEY (`payload`)", tbl.Columns[2].KeyClause())
	assert.Equal(t, "timestamp", tbl.Columns[3].StorageType)
	assert.Equal(t, "bigint(20)", tbl.Columns[0].StorageType)
	assert.False(t, tbl.Columns[0].Auto)

	assert.Equal(t, []string{"event_title", "payload"}, storageNames(tbl.Keys()))
}

func TestNewTable_CanonicalTypes(t *testing.T) {
	tbl := newTestTable(t, `package model

import (
	dec "github.com/shopspring/decimal"
	"github.com/google/uuid"
)

//sqlmodel:table name="wallets"
type Wallet struct {
	ID      uuid.UUID
	Balance dec.Decimal
	Tags    []string
	Owner   *uuid.UUID
}
`)
	assert.Equal(t, "uuid.UUID", tbl.Columns[0].Canonical)
	assert.Equal(t, "char(36)", tbl.Columns[0].StorageType)
	assert.Equal(t, "dec.Decimal", tbl.Columns[1].GoType)
	assert.Equal(t, "decimal.Decimal", tbl.Columns[1].Canonical)
	assert.Equal(t, "decimal(20,6)", tbl.Columns[1].StorageType)
	assert.Equal(t, "[]string", tbl.Columns[2].StorageType)
	assert.Equal(t, "*uuid.UUID", tbl.Columns[3].Canonical)
}

func TestNewTable_Errors(t *testing.T) {
	t.Run("duplicate logical name", func(t *testing.T) {
		decl := parseDecl(t, "package m\n\n//sqlmodel:table name=\"t\"\ntype T struct {\n\tUserID int\n\tUserId int\n}\n")
		_, err := NewTable(MustNewConfig(), decl)
		require.Error(t, err)
		assert.True(t, IsSchemaError(err))
		assert.ErrorIs(t, err, ErrInvalidSchema)
		assert.Contains(t, err.Error(), `duplicate logical name "user_id"`)
	})

	t.Run("duplicate storage name", func(t *testing.T) {
		decl := parseDecl(t, "package m\n\n//sqlmodel:table name=\"t\"\ntype T struct {\n\tA int `sqlmodel:\"name:b\"`\n\tB int\n}\n")
		_, err := NewTable(MustNewConfig(), decl)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `duplicate column name "b"`)
	})

	t.Run("invalid pool owner", func(t *testing.T) {
		decl := parseDecl(t, "package m\n\n//sqlmodel:table who=\"not a type\"\ntype T struct {\n\tA int\n}\n")
		_, err := NewTable(MustNewConfig(), decl)
		require.Error(t, err)
		assert.True(t, IsSchemaError(err))
	})

	t.Run("invalid names", func(t *testing.T) {
		tests := []struct {
			name    string
			src     string
			message string
		}{
			{
				name:    "column rename",
				src:     "package m\n\n//sqlmodel:table name=\"t\"\ntype T struct {\n\tUserName string `sqlmodel:\"name:user-name\"`\n}\n",
				message: `column name "user-name" is not a valid SQL identifier`,
			},
			{
				name:    "dotted column",
				src:     "package m\n\n//sqlmodel:table name=\"t\"\ntype T struct {\n\tA int `sqlmodel:\"name:t.a\"`\n}\n",
				message: `column name "t.a" is not a valid SQL identifier`,
			},
			{
				name:    "table",
				src:     "package m\n\n//sqlmodel:table name=\"user list\"\ntype T struct {\n\tA int\n}\n",
				message: `table name "user list" is not a valid SQL identifier`,
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := NewTable(MustNewConfig(), parseDecl(t, tt.src))
				require.Error(t, err)
				assert.True(t, IsSchemaError(err))
				assert.Contains(t, err.Error(), tt.message)
			})
		}
	})

	t.Run("qualified table", func(t *testing.T) {
		decl := parseDecl(t, "package m\n\n//sqlmodel:table name=\"app.users\"\ntype T struct {\n\tA int\n}\n")
		tbl, err := NewTable(MustNewConfig(), decl)
		require.NoError(t, err)
		assert.Equal(t, "app.users", tbl.Name)
	})

	t.Run("nil declaration", func(t *testing.T) {
		_, err := NewTable(MustNewConfig(), nil)
		require.Error(t, err)
	})
}

// =============================================================================
// Identity selection
// =============================================================================

func TestTable_WithoutID(t *testing.T) {
	t.Run("excludes the identity column", func(t *testing.T) {
		tbl := newTestTable(t, userModel)
		assert.Equal(t, []string{"name"}, storageNames(tbl.WithoutID()))
		id, ok := tbl.IDColumn()
		require.True(t, ok)
		assert.Equal(t, "ID", id.GoName)
	})

	t.Run("keeps every column without an identity", func(t *testing.T) {
		tbl := newTestTable(t, "package m\n\n//sqlmodel:table name=\"t\"\ntype T struct {\n\tB int\n\tA int\n\tUserID int\n}\n")
		assert.Equal(t, storageNames(tbl.Columns), storageNames(tbl.WithoutID()))
		assert.Equal(t, []string{"b", "a", "user_id"}, storageNames(tbl.Columns), "declaration order is kept")
		_, ok := tbl.IDColumn()
		assert.False(t, ok)
	})

	t.Run("renamed identity is still the identity", func(t *testing.T) {
		tbl := newTestTable(t, "package m\n\n//sqlmodel:table name=\"t\"\ntype T struct {\n\tID int `sqlmodel:\"name:user_id\"`\n\tA int\n}\n")
		assert.Equal(t, []string{"a"}, storageNames(tbl.WithoutID()))
	})
}

func TestColumn_Exported(t *testing.T) {
	tbl := newTestTable(t, "package m\n\n//sqlmodel:table name=\"t\"\ntype T struct {\n\tA int\n\tb int\n}\n")
	assert.True(t, tbl.Columns[0].Exported())
	assert.False(t, tbl.Columns[1].Exported())
}
