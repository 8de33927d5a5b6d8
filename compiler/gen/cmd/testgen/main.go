// testgen writes a sample model to a temp directory and generates its
// methods with every feature enabled.
// Run: go run ./compiler/gen/cmd/testgen
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/syssam/sqlmodel/compiler/gen"
	"github.com/syssam/sqlmodel/compiler/gen/sql"
	"github.com/syssam/sqlmodel/internal/logger"
)

const sample = `package shop

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//sqlmodel:table name="orders" who="ShopPool"
type Order struct {
	ID        int64           ` + "`sqlmodel:\"auto;key:PRIMARY\"`" + `
	Number    string          ` + "`sqlmodel:\"type:varchar(64);key:UNIQUE\"`" + `
	Customer  uuid.UUID
	Total     decimal.Decimal ` + "`sqlmodel:\"type:decimal(12,2)\"`" + `
	Paid      bool
	CreatedAt time.Time       ` + "`sqlmodel:\"key\"`" + `
}

//sqlmodel:table name="order_lines" who="ShopPool"
type Line struct {
	ID    int64 ` + "`sqlmodel:\"auto;key:PRIMARY\"`" + `
	Order int64 ` + "`sqlmodel:\"name:order_id;key\"`" + `
	SKU   string
	Qty   int
}
`

func main() {
	outDir, err := os.MkdirTemp("", "sqlmodel-testgen-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp dir: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Output directory: %s\n", outDir)

	if err := os.WriteFile(filepath.Join(outDir, "shop.go"), []byte(sample), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write sample: %v\n", err)
		os.Exit(1)
	}

	cfg, err := gen.NewConfig(
		gen.WithFeatures(gen.FeatureStringer, gen.FeatureGraphQL, gen.FeatureMigrate),
		gen.WithLogger(logger.NewLogger(&logger.Config{Level: logger.DebugLevel, Output: os.Stderr})),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create config: %v\n", err)
		os.Exit(1)
	}

	outputs, err := sql.Generate(context.Background(), cfg, []string{outDir})
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nGenerated files:")
	for _, o := range outputs {
		rel, _ := filepath.Rel(outDir, o.Path)
		fmt.Printf("  %s (%d bytes, %s)\n", rel, len(o.Content), strings.Join(o.Tables, ", "))
	}

	// Show the first 80 lines of the model file.
	fmt.Println("\n--- Sample: shop_sqlmodel.go ---")
	content, err := os.ReadFile(filepath.Join(outDir, "shop_sqlmodel.go"))
	if err == nil {
		lines := strings.SplitAfter(string(content), "\n")
		if len(lines) > 80 {
			lines = append(lines[:80], "... (truncated)\n")
		}
		fmt.Print(strings.Join(lines, ""))
	}

	fmt.Printf("\nTo inspect generated code: ls -la %s\n", outDir)
	fmt.Println("Done!")
}
