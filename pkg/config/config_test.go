package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	assert.Nil(t, cfg.LLM)
	assert.Zero(t, cfg.Port)
}

func TestLoadParsesAppConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"port": 9000, "llm": [{"type":"gemini","api_keys":["k1"],"models":["gemini-2.5-flash"]}]}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.NotNil(t, cfg.LLM)
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadSystemConfigDefaults(t *testing.T) {
	sys := LoadSystemConfig(filepath.Join(t.TempDir(), "system.json"))
	assert.Equal(t, 2, sys.MaxRetries)
	assert.Equal(t, 0.4, sys.Temperature)
	assert.Equal(t, 8080, sys.ServerPort)
	assert.Equal(t, "info", sys.LogLevel)
}

func TestLoadSystemConfigOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "system.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"temperature": 0.2, "retrieval_limit": 5}`), 0o644))

	sys := LoadSystemConfig(path)
	assert.Equal(t, 0.2, sys.Temperature)
	assert.Equal(t, 5, sys.RetrievalLimit)
	// Untouched fields keep defaults.
	assert.Equal(t, 120000, sys.LLMTimeoutMs)
}

func TestResolveCredentialPrefersConfigKeys(t *testing.T) {
	t.Setenv(CredentialEnvVar, "env-key")

	cfg := &Config{LLM: []byte(`[{"type":"gemini","api_keys":["cfg-key"],"models":["m"]}]`)}
	assert.Equal(t, "cfg-key", cfg.ResolveCredential())
}

func TestResolveCredentialFallsBackToEnv(t *testing.T) {
	t.Setenv(CredentialEnvVar, "env-key")
	cfg := &Config{}
	assert.Equal(t, "env-key", cfg.ResolveCredential())
}

func TestResolveCredentialEmpty(t *testing.T) {
	t.Setenv(CredentialEnvVar, "")
	cfg := &Config{LLM: []byte(`[{"type":"ollama","models":["llama3"]}]`)}
	assert.Equal(t, "", cfg.ResolveCredential())
}

func TestListenPort(t *testing.T) {
	sys := DefaultSystemConfig()
	assert.Equal(t, 8080, (&Config{}).ListenPort(sys))
	assert.Equal(t, 9000, (&Config{Port: 9000}).ListenPort(sys))
}
