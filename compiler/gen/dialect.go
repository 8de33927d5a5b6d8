package gen

import (
	"context"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/sqlmodel/internal/logger"
)

// =============================================================================
// Interface Segregation: generators of the individual outputs
// =============================================================================

// ModelGenerator renders the methods of the models declared in one source
// file. It is the one capability a dialect must provide.
type ModelGenerator interface {
	// Name returns the dialect name (e.g., "sql").
	Name() string
	// GenFile assembles one output file for the tables of one source file.
	GenFile(pkg string, tables []*Table) (*jen.File, error)
}

// GraphQLGenerator renders a GraphQL schema document describing tables.
// This is optional; it runs when FeatureGraphQL is enabled.
type GraphQLGenerator interface {
	GenGraphQL(tables []*Table) ([]byte, error)
}

// MigrateGenerator renders the migration plan creating tables.
// This is optional; it runs when FeatureMigrate is enabled.
type MigrateGenerator interface {
	GenMigrate(ctx context.Context, tables []*Table) ([]byte, error)
}

// GeneratorHelper provides helper methods for dialect implementations.
// Generator implements this interface, allowing dialect packages to use the
// configuration without importing the orchestration.
type GeneratorHelper interface {
	// NewFile creates a new Jennifer file with the standard header comment.
	NewFile(pkg string) *jen.File

	// GoType returns the Jennifer code for a column's Go type, qualified by
	// the imports of the declaring file.
	GoType(t *Table, c *Column) jen.Code

	// RuntimePkg returns the import path of the runtime package.
	RuntimePkg() string

	// FeatureEnabled reports if the given feature name is enabled.
	FeatureEnabled(name string) bool

	// Logger returns the generator logger.
	Logger() logger.Logger
}
