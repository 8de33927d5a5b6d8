package main

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/sqlmodel/compiler/gen"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sqlmodel.yaml")
	writeFile(t, path, `
suffix: _gen.go
header: ""
runtime: example.com/rt
features: [stringer]
disable: [builder]
names: [Legacy]
workers: 2
log:
  level: warn
  json: true
`)
	fc, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "_gen.go", fc.Suffix)
	require.NotNil(t, fc.Header)
	assert.Empty(t, *fc.Header)
	assert.Equal(t, "example.com/rt", fc.Runtime)
	assert.Equal(t, []string{"stringer"}, fc.Features)
	assert.Equal(t, []string{"builder"}, fc.Disable)
	assert.Equal(t, []string{"Legacy"}, fc.Names)
	assert.Equal(t, 2, fc.Workers)
	assert.Equal(t, "warn", fc.Log.Level)
	assert.True(t, fc.Log.JSON)
}

func TestLoadConfig_Failures(t *testing.T) {
	dir := t.TempDir()

	_, err := loadConfig(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err, "an explicit config file must exist")

	path := filepath.Join(dir, "typo.yaml")
	writeFile(t, path, "sufix: _gen.go\n")
	_, err = loadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sufix")

	empty := filepath.Join(dir, "empty.yaml")
	writeFile(t, empty, "")
	fc, err := loadConfig(empty)
	require.NoError(t, err)
	assert.Nil(t, fc.Header)
}

func TestGenFlags_Config(t *testing.T) {
	header := ""
	ro := &rootOptions{file: &fileConfig{
		Suffix:   "_gen.go",
		Header:   &header,
		Features: []string{"stringer"},
		Disable:  []string{"builder"},
		Names:    []string{"Legacy"},
	}}
	var fl genFlags
	cmd := &cobra.Command{Use: "test"}
	fl.register(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--suffix", "_db.go", "--migrate", "--type", "Other"}))

	cfg, err := fl.config(cmd, ro)
	require.NoError(t, err)
	assert.Equal(t, "_db.go", cfg.Suffix)
	assert.Empty(t, cfg.Header)
	assert.Equal(t, gen.DefaultRuntimePkg, cfg.RuntimePkg)
	assert.Equal(t, []string{"Legacy", "Other"}, cfg.Names)
	assert.True(t, cfg.Enabled(gen.FeatureStringer))
	assert.True(t, cfg.Enabled(gen.FeatureMigrate))
	assert.True(t, cfg.Enabled(gen.FeatureMsgpack))
	assert.False(t, cfg.Enabled(gen.FeatureBuilder))
}
