package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syssam/sqlmodel/compiler/gen"
	"github.com/syssam/sqlmodel/compiler/gen/sql"
	"github.com/syssam/sqlmodel/compiler/load"
)

func newDDLCommand(ro *rootOptions) *cobra.Command {
	var (
		fl    genFlags
		atlas bool
	)
	cmd := &cobra.Command{
		Use:   "ddl [files|dirs|packages...]",
		Short: "Print the CREATE TABLE statement of every model",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			cfg, err := fl.config(cmd, ro)
			if err != nil {
				return err
			}
			decls, err := load.Load(cmd.Context(), cfg.Suffix, args, cfg.Names...)
			if err != nil {
				return err
			}
			g := gen.NewGenerator(cfg)
			tables, err := g.Tables(decls)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if atlas {
				b, err := sql.NewDialect(g).GenMigrate(cmd.Context(), tables)
				if err != nil {
					return err
				}
				_, err = out.Write(b)
				return err
			}
			for i, t := range tables {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, sql.CreateTable(t))
			}
			return nil
		},
	}
	fl.register(cmd)
	cmd.Flags().BoolVar(&atlas, "atlas", false, "Print the MySQL migration plan instead of the literal statements")
	return cmd
}
