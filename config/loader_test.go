package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault_Valid(t *testing.T) {
	cfg := Default()

	require.NoError(t, Validate(cfg))
	require.Equal(t, 16181, cfg.Server.Port)
	require.Equal(t, "/api/v1", cfg.API.BasePath)
	require.Equal(t, "info", cfg.Logging.Level)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
server:
  port: 8080
  gzip: false
  indent: "  "
api:
  compat: true
catalog:
  path: testdata/motors.yml
`))
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.Server.Port)
	require.False(t, cfg.Server.Gzip)
	require.Equal(t, "  ", cfg.Server.Indent)
	require.True(t, cfg.API.Compat)
	require.Equal(t, "/api/v1", cfg.API.BasePath)
	require.Equal(t, "testdata/motors.yml", cfg.Catalog.Path)
	require.Equal(t, "info", cfg.Logging.Level)
	require.True(t, cfg.Logging.Console)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"port out of range", "server: {port: 70000}"},
		{"negative port", "server: {port: -1}"},
		{"relative base path", "api: {basePath: api}"},
		{"empty catalog", "catalog: {path: \"\"}"},
		{"unknown level", "logging: {level: loud}"},
		{"markup indent", "server: {indent: \"<x>\"}"},
		{"not yaml", "server: [port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
		})
	}
}

func TestLoadAppConfig(t *testing.T) {
	prev := Config
	defer func() { Config = prev }()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("server: {port: 9090}\n"), 0o600))

	require.NoError(t, LoadAppConfig(filepath.Join(dir, "missing.yml"), path))
	require.Equal(t, 9090, Config.Server.Port)
}

func TestLoadAppConfig_Missing(t *testing.T) {
	err := LoadAppConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.ErrorContains(t, err, "failed to read config")
}
