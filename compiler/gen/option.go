package gen

import (
	"errors"
	"runtime"
	"slices"
	"strings"

	"github.com/syssam/sqlmodel/internal/logger"
)

// Defaults of a Config.
const (
	DefaultHeader     = "Code generated by sqlmodel. DO NOT EDIT."
	DefaultSuffix     = "_sqlmodel.go"
	DefaultRuntimePkg = "github.com/syssam/sqlmodel"
)

// Config holds the generator configuration.
type Config struct {
	// Header is the comment written at the top of every generated file.
	Header string
	// Suffix replaces ".go" in the name of a source file to form the name
	// of its generated file.
	Suffix string
	// RuntimePkg is the import path of the runtime package the generated
	// code links against.
	RuntimePkg string
	// Features enabled for this run.
	Features []Feature
	// Names selects types without a directive.
	Names []string
	// Workers bounds parallel rendering; zero means GOMAXPROCS.
	Workers int
	// DryRun renders every file but writes none.
	DryRun bool
	// Logger receives progress and diagnostics; nil discards them.
	Logger logger.Logger
}

// Option configures code generation.
type Option func(*Config) error

// WithHeader sets the file header comment.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithSuffix sets the generated file suffix, e.g. "_sqlmodel.go".
func WithSuffix(suffix string) Option {
	return func(c *Config) error {
		if !strings.HasSuffix(suffix, ".go") || strings.HasSuffix(suffix, "_test.go") || suffix == ".go" {
			return NewConfigError("Suffix", suffix, "suffix must end in .go, differ from .go and not be a test file")
		}
		c.Suffix = suffix
		return nil
	}
}

// WithRuntimePackage sets the import path of the runtime package.
func WithRuntimePackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("RuntimePkg", nil, "runtime package cannot be empty")
		}
		c.RuntimePkg = pkg
		return nil
	}
}

// WithFeatures enables specific features.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		for _, f := range features {
			if !c.hasFeature(f.Name) {
				c.Features = append(c.Features, f)
			}
		}
		return nil
	}
}

// WithFeatureNames enables features by name.
func WithFeatureNames(names ...string) Option {
	return func(c *Config) error {
		for _, name := range names {
			f, ok := FeatureByName(name)
			if !ok {
				return NewConfigError("Features", name, "unknown feature")
			}
			if !c.hasFeature(f.Name) {
				c.Features = append(c.Features, f)
			}
		}
		return nil
	}
}

// WithoutFeatures disables features by name, including default ones.
func WithoutFeatures(names ...string) Option {
	return func(c *Config) error {
		for _, name := range names {
			if _, ok := FeatureByName(name); !ok {
				return NewConfigError("Features", name, "unknown feature")
			}
		}
		c.Features = slices.DeleteFunc(c.Features, func(f Feature) bool {
			return slices.Contains(names, f.Name)
		})
		return nil
	}
}

// WithNames selects types by name even when they carry no directive.
func WithNames(names ...string) Option {
	return func(c *Config) error {
		c.Names = append(c.Names, names...)
		return nil
	}
}

// WithWorkers sets the number of parallel workers.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return NewConfigError("Workers", n, "workers cannot be negative")
		}
		c.Workers = n
		return nil
	}
}

// WithDryRun renders output without writing it.
func WithDryRun(dry bool) Option {
	return func(c *Config) error {
		c.DryRun = dry
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a Config with the defaults and the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Header:     DefaultHeader,
		Suffix:     DefaultSuffix,
		RuntimePkg: DefaultRuntimePkg,
		Features:   DefaultFeatures(),
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// FeatureEnabled reports whether the named feature is enabled. It fails on
// names that are not registered.
func (c *Config) FeatureEnabled(name string) (bool, error) {
	if _, ok := FeatureByName(name); !ok {
		return false, NewConfigError("Features", name, "unknown feature")
	}
	return c.hasFeature(name), nil
}

func (c *Config) hasFeature(name string) bool {
	for _, f := range c.Features {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Enabled reports whether f is enabled.
func (c *Config) Enabled(f Feature) bool {
	return c != nil && c.hasFeature(f.Name)
}

func (c *Config) logger() logger.Logger {
	if c == nil || c.Logger == nil {
		return logger.Nop()
	}
	return c.Logger
}

func (c *Config) workers() int {
	if c == nil || c.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return c.Workers
}

func (c *Config) suffix() string {
	if c == nil || c.Suffix == "" {
		return DefaultSuffix
	}
	return c.Suffix
}

func (c *Config) runtimePkg() string {
	if c == nil || c.RuntimePkg == "" {
		return DefaultRuntimePkg
	}
	return c.RuntimePkg
}

// Runtime returns the runtime package import path.
func (c *Config) Runtime() string { return c.runtimePkg() }
