package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/sqlmodel/internal/logger"
)

func TestNewConfig_Defaults(t *testing.T) {
	c, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultHeader, c.Header)
	assert.Equal(t, DefaultSuffix, c.Suffix)
	assert.Equal(t, DefaultRuntimePkg, c.Runtime())
	assert.True(t, c.Enabled(FeatureBuilder))
	assert.True(t, c.Enabled(FeatureMsgpack))
	assert.False(t, c.Enabled(FeatureGraphQL))
	assert.Positive(t, c.workers())
}

func TestWithHeader(t *testing.T) {
	c := &Config{Header: "existing"}
	require.NoError(t, WithHeader("")(c))
	assert.Equal(t, "", c.Header)
}

func TestWithSuffix(t *testing.T) {
	tests := []struct {
		suffix  string
		wantErr bool
	}{
		{"_gen.go", false},
		{".sqlmodel.go", false},
		{".go", true},
		{"_gen_test.go", true},
		{"_gen.txt", true},
	}
	for _, tt := range tests {
		t.Run(tt.suffix, func(t *testing.T) {
			c := &Config{}
			err := WithSuffix(tt.suffix)(c)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsConfigError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.suffix, c.suffix())
		})
	}
}

func TestWithFeatures(t *testing.T) {
	t.Run("by value and name without duplicates", func(t *testing.T) {
		c, err := NewConfig(WithFeatures(FeatureGraphQL), WithFeatureNames("graphql", "migrate"))
		require.NoError(t, err)
		assert.True(t, c.Enabled(FeatureGraphQL))
		assert.True(t, c.Enabled(FeatureMigrate))
		count := 0
		for _, f := range c.Features {
			if f.Name == "graphql" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := NewConfig(WithFeatureNames("privacy"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingConfig)
	})

	t.Run("disable a default", func(t *testing.T) {
		c, err := NewConfig(WithoutFeatures("msgpack"))
		require.NoError(t, err)
		assert.False(t, c.Enabled(FeatureMsgpack))
		assert.True(t, c.Enabled(FeatureBuilder))
	})
}

func TestConfigFeatureEnabled(t *testing.T) {
	c := &Config{Features: []Feature{FeatureStringer}}

	enabled, err := c.FeatureEnabled("stringer")
	require.NoError(t, err)
	assert.True(t, enabled)

	enabled, err = c.FeatureEnabled("graphql")
	require.NoError(t, err)
	assert.False(t, enabled)

	_, err = c.FeatureEnabled("nonexistent")
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestApplyAll(t *testing.T) {
	c := &Config{}
	err := c.ApplyAll(WithWorkers(-1), WithRuntimePackage(""), WithLogger(nil), WithWorkers(2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Workers")
	assert.Contains(t, err.Error(), "RuntimePkg")
	assert.Contains(t, err.Error(), "Logger")
	assert.Equal(t, 2, c.workers())
}

func TestMustNewConfig(t *testing.T) {
	assert.Panics(t, func() { MustNewConfig(WithSuffix("x")) })
	assert.NotPanics(t, func() {
		c := MustNewConfig(WithLogger(logger.Nop()), WithNames("User"), WithDryRun(true))
		assert.Equal(t, []string{"User"}, c.Names)
		assert.True(t, c.DryRun)
	})
}

func TestFeatureStage(t *testing.T) {
	assert.Equal(t, "stable", FeatureBuilder.Stage.String())
	assert.Equal(t, "experimental", FeatureGraphQL.Stage.String())
	assert.Equal(t, "unknown", FeatureStage(0).String())
	assert.Len(t, DefaultFeatures(), 2)
}
