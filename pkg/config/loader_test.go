package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "users-api", cfg.Service.Name)
	assert.Equal(t, "local", cfg.Service.Runtime)
	assert.Equal(t, 3000, cfg.Service.Port)
	assert.Equal(t, "file://users.json", cfg.Storage.URI)
	assert.Equal(t, "name", cfg.Conflict.Policy)
	assert.True(t, cfg.Logging.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Metrics.Datadog.Enabled)
	assert.Equal(t, "users.", cfg.Metrics.Datadog.Namespace)
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	path := writeYAML(t, `
service:
  name: "cadastro"
  port: 8080
storage:
  uri: "memory://"
conflict:
  policy: "id_or_name"
logging:
  enabled: false
  format: "console"
`)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "cadastro", cfg.Service.Name)
	assert.Equal(t, 9090, cfg.Service.Port) // ambiente vence o arquivo
	assert.Equal(t, "5s", cfg.Service.Timeout)
	assert.Equal(t, "memory://", cfg.Storage.URI)
	assert.Equal(t, "id_or_name", cfg.Conflict.Policy)
	assert.False(t, cfg.Logging.Enabled) // false explícito no YAML não é sobrescrito pelo default
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_EnvReference(t *testing.T) {
	t.Setenv("USERS_FILE", "/tmp/users.json")
	t.Setenv("STORE_URI", "file://${env.USERS_FILE}")

	cfg, err := Load(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "file:///tmp/users.json", cfg.Storage.URI)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nao-existe.yaml"))
	assert.ErrorContains(t, err, "falha leitura config")

	_, err = Load(context.Background(), writeYAML(t, "service: [nao, e, mapa"))
	assert.ErrorContains(t, err, "falha ao parsear YAML")

	_, err = Load(context.Background(), writeYAML(t, "conflict:\n  policy: email\n"))
	assert.ErrorContains(t, err, "Policy")

	t.Setenv("PORT", "abc")
	_, err = Load(context.Background(), "")
	assert.ErrorContains(t, err, "PORT")
}
