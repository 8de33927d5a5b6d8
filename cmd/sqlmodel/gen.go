package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/syssam/sqlmodel/compiler/gen"
	"github.com/syssam/sqlmodel/compiler/gen/sql"
	"github.com/syssam/sqlmodel/internal/logger"
)

func newGenCommand(ro *rootOptions) *cobra.Command {
	var (
		fl    genFlags
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "gen [files|dirs|packages...]",
		Short: "Generate model methods next to the annotated source files",
		Long: `Generate model methods for every struct carrying a //sqlmodel:table or
//sqlmodel:model directive. Arguments may be .go files, directories or
package patterns; the current directory is used when none is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			cfg, err := fl.config(cmd, ro)
			if err != nil {
				return err
			}
			run := func(ctx context.Context) error {
				return generate(ctx, cfg, args, cmd.OutOrStdout())
			}
			if watch {
				return watchAndRun(cmd.Context(), cfg.Suffix, args, run)
			}
			return run(cmd.Context())
		},
	}
	fl.register(cmd)
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Regenerate when source files change")
	return cmd
}

// generate runs one generation. Dry runs print every output to out.
func generate(ctx context.Context, cfg *gen.Config, args []string, out io.Writer) error {
	log := logger.FromContext(ctx)
	outputs, err := sql.Generate(ctx, cfg, args)
	if err != nil {
		return err
	}
	if cfg.DryRun {
		for _, o := range outputs {
			if _, err := fmt.Fprintf(out, "// %s\n%s\n", o.Path, o.Content); err != nil {
				return err
			}
		}
	}
	models := 0
	for _, o := range outputs {
		if strings.HasSuffix(o.Path, cfg.Suffix) {
			models += len(o.Tables)
		}
	}
	log.Info("generation done", "files", len(outputs), "models", models)
	return nil
}
