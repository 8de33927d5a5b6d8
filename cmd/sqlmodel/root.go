package main

import (
	"github.com/spf13/cobra"

	"github.com/syssam/sqlmodel/internal/logger"
)

// rootOptions are shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
	logJSON    bool

	file *fileConfig
	log  logger.Logger
}

func newRootCommand() *cobra.Command {
	ro := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "sqlmodel",
		Short:         "Generate SQL model methods for annotated Go structs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return ro.setup(cmd)
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&ro.configPath, "config", "", "Path to the YAML config file (default ./"+defaultConfigFile+" when present)")
	flags.StringVar(&ro.logLevel, "log-level", "info", "Log level: debug, info, warn, error or disabled")
	flags.BoolVar(&ro.logJSON, "log-json", false, "Write logs as JSON")

	cmd.AddCommand(newGenCommand(ro))
	cmd.AddCommand(newDDLCommand(ro))
	cmd.AddCommand(newFuncnameCommand(ro))
	return cmd
}

// setup loads the config file and builds the logger. Flags win over the file.
func (ro *rootOptions) setup(cmd *cobra.Command) error {
	fc, err := loadConfig(ro.configPath)
	if err != nil {
		return err
	}
	ro.file = fc
	level, json := ro.logLevel, ro.logJSON
	if fc.Log.Level != "" && !cmd.Flags().Changed("log-level") {
		level = fc.Log.Level
	}
	if fc.Log.JSON && !cmd.Flags().Changed("log-json") {
		json = true
	}
	ro.log = logger.NewLogger(&logger.Config{
		Level:  logger.ParseLevel(level),
		Output: cmd.ErrOrStderr(),
		JSON:   json,
	})
	cmd.SetContext(logger.ContextWithLogger(cmd.Context(), ro.log))
	if ro.configPath != "" || fc.path != "" {
		ro.log.Debug("loaded config", "file", fc.path)
	}
	return nil
}
