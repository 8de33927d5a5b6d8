package main

import (
	"github.com/spf13/cobra"

	"github.com/syssam/sqlmodel/compiler/funcname"
	"github.com/syssam/sqlmodel/internal/logger"
)

func newFuncnameCommand(_ *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "funcname files...",
		Short: "Insert a funcName constant into functions marked " + funcname.Directive,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.FromContext(cmd.Context())
			for _, path := range args {
				changed, err := funcname.RewriteFile(path)
				if err != nil {
					return err
				}
				if changed {
					log.Info("rewrote", "file", path)
				} else {
					log.Debug("unchanged", "file", path)
				}
			}
			return nil
		},
	}
}
