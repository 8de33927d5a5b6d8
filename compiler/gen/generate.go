package gen

import (
	"bytes"
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/sqlmodel/compiler/load"
	"github.com/syssam/sqlmodel/internal/logger"
)

// Names of the per-directory files written by optional features.
const (
	GraphQLFile = "schema.graphql"
	MigrateFile = "schema.sql"
)

// Output is one rendered file.
type Output struct {
	Path    string
	Content []byte
	// Tables lists the model types rendered into the file.
	Tables []string
}

// Generator renders the sqlmodel methods of loaded declarations.
//
// Generation is all or nothing: every output is rendered in memory first,
// and nothing is written when any declaration fails.
//
// Example:
//
//	import "github.com/syssam/sqlmodel/compiler/gen/sql"
//
//	g := gen.NewGenerator(cfg)
//	g.WithDialect(sql.NewDialect(g))
//	outputs, err := g.Generate(ctx, decls)
type Generator struct {
	cfg *Config

	// Dialect generator for the model methods.
	dialect ModelGenerator

	// Optional capabilities detected on the dialect.
	graphqlGen GraphQLGenerator
	migrateGen MigrateGenerator
}

// NewGenerator creates a generator. You must call WithDialect before
// Generate. A nil cfg uses the defaults of NewConfig.
func NewGenerator(cfg *Config) *Generator {
	if cfg == nil {
		cfg = MustNewConfig()
	}
	return &Generator{cfg: cfg}
}

// WithDialect sets the dialect. Optional capabilities are detected via type
// assertion.
func (g *Generator) WithDialect(d ModelGenerator) *Generator {
	if d != nil {
		g.dialect = d
		if gg, ok := d.(GraphQLGenerator); ok {
			g.graphqlGen = gg
		}
		if mg, ok := d.(MigrateGenerator); ok {
			g.migrateGen = mg
		}
	}
	return g
}

// Config returns the generator configuration.
func (g *Generator) Config() *Config { return g.cfg }

// Tables builds the table of every declaration. The first invalid
// declaration aborts the build.
func (g *Generator) Tables(decls []*load.Decl) ([]*Table, error) {
	tables := make([]*Table, 0, len(decls))
	for _, d := range decls {
		t, err := NewTable(g.cfg, d)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// Generate builds, renders and (unless DryRun is set) writes the outputs of
// the declarations. It returns the rendered outputs.
func (g *Generator) Generate(ctx context.Context, decls []*load.Decl) ([]*Output, error) {
	tables, err := g.Tables(decls)
	if err != nil {
		return nil, err
	}
	outputs, err := g.Render(ctx, tables)
	if err != nil {
		return nil, err
	}
	if g.cfg.DryRun {
		g.Logger().Info("dry run, nothing written", "files", len(outputs))
		return outputs, nil
	}
	if _, err := WriteAll(g.Logger(), outputs); err != nil {
		return nil, err
	}
	return outputs, nil
}

// Render renders the outputs of tables in parallel. Outputs are ordered by
// path.
func (g *Generator) Render(ctx context.Context, tables []*Table) ([]*Output, error) {
	if g.dialect == nil {
		return nil, NewConfigError("Dialect", nil, "no dialect set: call WithDialect() before Generate()")
	}
	var (
		byFile = groupBy(tables, func(t *Table) string { return t.File })
		byDir  = groupBy(tables, func(t *Table) string { return filepath.Dir(t.File) })
		tasks  []func(context.Context) (*Output, error)
	)
	for _, file := range sortedKeys(byFile) {
		group := byFile[file]
		tasks = append(tasks, func(context.Context) (*Output, error) {
			return g.renderFile(file, group)
		})
	}
	if g.cfg.Enabled(FeatureGraphQL) && g.graphqlGen != nil {
		for _, dir := range sortedKeys(byDir) {
			group := byDir[dir]
			tasks = append(tasks, func(context.Context) (*Output, error) {
				b, err := g.graphqlGen.GenGraphQL(group)
				if err != nil {
					return nil, NewGenerationError("graphql", dir, "", err)
				}
				return &Output{Path: filepath.Join(dir, GraphQLFile), Content: b, Tables: typeNames(group)}, nil
			})
		}
	}
	if g.cfg.Enabled(FeatureMigrate) && g.migrateGen != nil {
		for _, dir := range sortedKeys(byDir) {
			group := byDir[dir]
			tasks = append(tasks, func(ctx context.Context) (*Output, error) {
				b, err := g.migrateGen.GenMigrate(ctx, group)
				if err != nil {
					return nil, NewGenerationError("migrate", dir, "", err)
				}
				return &Output{Path: filepath.Join(dir, MigrateFile), Content: b, Tables: typeNames(group)}, nil
			})
		}
	}

	outputs := make([]*Output, len(tasks))
	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(g.cfg.workers())
	for i, task := range tasks {
		errg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			out, err := task(ctx)
			if err != nil {
				return err
			}
			outputs[i] = out
			return nil
		})
	}
	if err := errg.Wait(); err != nil {
		return nil, err
	}
	sort.SliceStable(outputs, func(i, j int) bool { return outputs[i].Path < outputs[j].Path })
	return outputs, nil
}

// renderFile assembles and renders the generated file of one source file.
func (g *Generator) renderFile(file string, tables []*Table) (*Output, error) {
	path := OutputPath(file, g.cfg.suffix())
	f, err := g.dialect.GenFile(tables[0].Package, tables)
	if err != nil {
		return nil, NewGenerationError("model", path, "", err)
	}
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, NewGenerationError("render", path, "", err)
	}
	g.Logger().Debug("rendered", "file", path, "models", len(tables))
	return &Output{Path: path, Content: buf.Bytes(), Tables: typeNames(tables)}, nil
}

// OutputPath returns the generated file path of a source file.
//
//	OutputPath("model/user.go", "_sqlmodel.go") // "model/user_sqlmodel.go"
func OutputPath(file, suffix string) string {
	return strings.TrimSuffix(file, ".go") + suffix
}

// =============================================================================
// GeneratorHelper implementation
// =============================================================================

var _ GeneratorHelper = (*Generator)(nil)

// NewFile creates a new Jennifer file with the header comment.
func (g *Generator) NewFile(pkg string) *jen.File {
	f := jen.NewFile(pkg)
	if g.cfg.Header != "" {
		f.HeaderComment(g.cfg.Header)
	}
	return f
}

// GoType returns the Jennifer code for a column's Go type.
func (g *Generator) GoType(t *Table, c *Column) jen.Code {
	if c.Expr == nil {
		return jen.Id(c.GoType)
	}
	return TypeCode(c.Expr, t.Imports)
}

// RuntimePkg returns the import path of the runtime package.
func (g *Generator) RuntimePkg() string { return g.cfg.runtimePkg() }

// FeatureEnabled reports if the given feature name is enabled.
func (g *Generator) FeatureEnabled(name string) bool {
	enabled, _ := g.cfg.FeatureEnabled(name)
	return enabled
}

// Logger returns the configured logger.
func (g *Generator) Logger() logger.Logger { return g.cfg.logger() }

func groupBy(tables []*Table, key func(*Table) string) map[string][]*Table {
	m := make(map[string][]*Table)
	for _, t := range tables {
		k := key(t)
		m[k] = append(m[k], t)
	}
	return m
}

func sortedKeys(m map[string][]*Table) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func typeNames(tables []*Table) []string {
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.Type
	}
	return names
}
