// Package gen turns loaded model declarations into tables and renders their
// generated methods.
//
// # Pipeline
//
//	source files (//sqlmodel:table directives)
//	        ↓  compiler/load
//	   []*load.Decl
//	        ↓  NewTable
//	   []*Table (columns, keys, storage types)
//	        ↓  ModelGenerator (compiler/gen/sql)
//	   *jen.File per source file
//	        ↓  WriteAll
//	   <file>_sqlmodel.go
//
// Rendering is all or nothing. Every output is rendered in memory and nothing
// is written when a single table fails.
//
// # Configuration
//
// Configuration uses functional options:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithSuffix("_sqlmodel.go"),
//	    gen.WithFeatures(gen.FeatureGraphQL),
//	    gen.WithoutFeatures("msgpack"),
//	)
//
// # Dialects
//
// A dialect implements ModelGenerator and optionally GraphQLGenerator and
// MigrateGenerator. The generator itself implements GeneratorHelper, which
// dialects use to create files and resolve column types:
//
//	g := gen.NewGenerator(cfg)
//	g.WithDialect(sql.NewDialect(g))
//	outputs, err := g.Generate(ctx, decls)
//
// # Errors
//
//   - SchemaError: a declaration cannot be mapped to a table
//   - ConfigError: an invalid option
//   - GenerationError: rendering or writing failed
package gen
