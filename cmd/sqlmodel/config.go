package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/syssam/sqlmodel/compiler/gen"
)

const defaultConfigFile = "sqlmodel.yaml"

// fileConfig is the YAML config file.
//
//	suffix: _sqlmodel.go
//	header: "Code generated by sqlmodel. DO NOT EDIT."
//	features: [stringer, graphql]
//	disable: [msgpack]
//	names: [Legacy]
//	workers: 4
//	log:
//	  level: debug
type fileConfig struct {
	Suffix string `yaml:"suffix"`
	// Header is a pointer so that an empty header can be requested.
	Header   *string  `yaml:"header"`
	Runtime  string   `yaml:"runtime"`
	Features []string `yaml:"features"`
	Disable  []string `yaml:"disable"`
	Names    []string `yaml:"names"`
	Workers  int      `yaml:"workers"`
	Log      struct {
		Level string `yaml:"level"`
		JSON  bool   `yaml:"json"`
	} `yaml:"log"`

	path string
}

// loadConfig reads the config file at path. With an empty path the default
// file is read when it exists.
func loadConfig(path string) (*fileConfig, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
	case !explicit && errors.Is(err, fs.ErrNotExist):
		return &fileConfig{}, nil
	default:
		return nil, fmt.Errorf("reading config: %w", err)
	}
	fc := &fileConfig{path: path}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return fc, nil
}

// genFlags are the generation flags shared by gen and ddl.
type genFlags struct {
	suffix   string
	header   string
	runtime  string
	features []string
	disable  []string
	names    []string
	workers  int
	graphql  bool
	migrate  bool
	dryRun   bool
}

func (f *genFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.suffix, "suffix", gen.DefaultSuffix, "Suffix of generated files")
	flags.StringVar(&f.header, "header", gen.DefaultHeader, "Header comment of generated files; empty disables it")
	flags.StringVar(&f.runtime, "runtime", gen.DefaultRuntimePkg, "Import path of the runtime package")
	flags.StringSliceVar(&f.features, "feature", nil, "Enable a feature (builder, msgpack, stringer, graphql, migrate)")
	flags.StringSliceVar(&f.disable, "disable", nil, "Disable a feature, including default ones")
	flags.StringSliceVar(&f.names, "type", nil, "Select a type that has no directive")
	flags.IntVar(&f.workers, "workers", 0, "Parallel rendering workers; 0 means GOMAXPROCS")
	flags.BoolVar(&f.graphql, "graphql", false, "Also write "+gen.GraphQLFile+" per directory")
	flags.BoolVar(&f.migrate, "migrate", false, "Also write "+gen.MigrateFile+" per directory")
	flags.BoolVar(&f.dryRun, "dry-run", false, "Print generated files instead of writing them")
}

// config merges the config file and the flags into a generator config.
// Flags set on the command line win.
func (f *genFlags) config(cmd *cobra.Command, ro *rootOptions) (*gen.Config, error) {
	var (
		fc      = ro.file
		changed = cmd.Flags().Changed
		opts    []gen.Option
	)
	if fc == nil {
		fc = &fileConfig{}
	}
	if fc.Suffix != "" {
		opts = append(opts, gen.WithSuffix(fc.Suffix))
	}
	if fc.Header != nil {
		opts = append(opts, gen.WithHeader(*fc.Header))
	}
	if fc.Runtime != "" {
		opts = append(opts, gen.WithRuntimePackage(fc.Runtime))
	}
	if fc.Workers != 0 {
		opts = append(opts, gen.WithWorkers(fc.Workers))
	}
	opts = append(opts,
		gen.WithFeatureNames(fc.Features...),
		gen.WithoutFeatures(fc.Disable...),
		gen.WithNames(fc.Names...),
	)

	if changed("suffix") {
		opts = append(opts, gen.WithSuffix(f.suffix))
	}
	if changed("header") {
		opts = append(opts, gen.WithHeader(f.header))
	}
	if changed("runtime") {
		opts = append(opts, gen.WithRuntimePackage(f.runtime))
	}
	if changed("workers") {
		opts = append(opts, gen.WithWorkers(f.workers))
	}
	features := f.features
	if f.graphql {
		features = append(features, gen.FeatureGraphQL.Name)
	}
	if f.migrate {
		features = append(features, gen.FeatureMigrate.Name)
	}
	opts = append(opts,
		gen.WithFeatureNames(features...),
		gen.WithoutFeatures(f.disable...),
		gen.WithNames(f.names...),
		gen.WithDryRun(f.dryRun),
	)
	if ro.log != nil {
		opts = append(opts, gen.WithLogger(ro.log))
	}
	return gen.NewConfig(opts...)
}
