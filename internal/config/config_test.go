package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaults_DriverPerBuildTarget(t *testing.T) {
	cases := []struct {
		target string
		driver string
	}{
		{"local", "sqlite"},
		{"cloud-dev", "postgres"},
		{"cloud", "postgres"},
	}
	for _, tc := range cases {
		t.Run(tc.target, func(t *testing.T) {
			cfg := &Config{BuildTarget: tc.target, DBDriver: "auto"}
			require.NoError(t, cfg.ResolveDefaults())
			assert.Equal(t, tc.driver, cfg.DBDriver)
		})
	}
}

func TestResolveDefaults_ExplicitDriverWins(t *testing.T) {
	cfg := &Config{BuildTarget: "cloud-dev", DBDriver: "sqlite"}
	require.NoError(t, cfg.ResolveDefaults())
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "./data/vocab.db", cfg.SQLitePath, "sqlite gets a default path")
}

func TestResolveDefaults_Rejections(t *testing.T) {
	err := (&Config{BuildTarget: "on-prem"}).ResolveDefaults()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported BUILD_TARGET")

	err = (&Config{BuildTarget: "local", DBDriver: "spanner"}).ResolveDefaults()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported DB_DRIVER")
}

func TestNew_ReadsPrefixedEnv(t *testing.T) {
	t.Setenv("VOCAB_BACKEND_BUILD_TARGET", "local")
	t.Setenv("VOCAB_BACKEND_HTTP_PORT", "9191")
	t.Setenv("VOCAB_BACKEND_DEV_MODE", "true")
	t.Setenv("VOCAB_BACKEND_SQLITE_PATH", "/tmp/vocab-test.db")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, ":9191", cfg.GetHTTPAddr())
	assert.True(t, cfg.DevMode)
	assert.Equal(t, "/tmp/vocab-test.db", cfg.SQLitePath)
	assert.Equal(t, "en", cfg.SourceLang)
	assert.Equal(t, "de", cfg.TargetLang)
}

func TestNewForTesting(t *testing.T) {
	cfg := NewForTesting()
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, ":memory:", cfg.SQLitePath)
	assert.True(t, cfg.DevMode)
	assert.True(t, cfg.IsTesting())
	assert.False(t, cfg.IsProduction())
}
