// Package sql renders the sqlmodel methods of SQL-backed models.
//
// For every model of a source file the dialect writes, into one
// <file>_sqlmodel.go:
//
//   - statement fragments: TableName, CreateTable, FieldNames,
//     FieldsWithBackquote, FieldSaves, FieldUpdates and their WithoutID forms
//   - FieldValues, the ordered named parameters of the model
//   - FromRow, the positional row decoder
//   - Equal and EqualWithoutID
//   - Lock, which delegates to the pool owner named by the table directive
//   - GetMulti, GetSingle and Save shorthands over the runtime helpers
//   - With<Field> setters, msgpack map marshalling and String, per feature
//
// Usage:
//
//	g := gen.NewGenerator(cfg)
//	g.WithDialect(sql.NewDialect(g))
//	outputs, err := g.Generate(ctx, decls)
package sql
