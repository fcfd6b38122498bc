package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_File(t *testing.T) {
	t.Setenv("CODEPOLISH_AI_PROVIDER", "")
	t.Setenv("CODEPOLISH_ADDR", "")

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
ai:
  provider: gemini
  model: gemini-2.0-flash
  request_timeout: 90s
analyze:
  concurrency: 8
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.AI.Model)
	assert.Equal(t, 90*time.Second, cfg.AI.RequestTimeout.Std())
	// untouched keys keep their defaults
	assert.Equal(t, 10*time.Second, cfg.AI.ConnectTimeout.Std())
	assert.Equal(t, int64(1<<20), cfg.Server.MaxUploadBytes)
	assert.Equal(t, 8, cfg.Analyze.Concurrency)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CODEPOLISH_AI_PROVIDER", "gemini")
	t.Setenv("CODEPOLISH_ADDR", "127.0.0.1:7000")
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Addr)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Setenv("CODEPOLISH_AI_PROVIDER", "")
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err, "an explicit path must exist")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("ai:\n  connect_timeout: soon\n"), 0o644))
	_, err = LoadConfig(bad)
	assert.ErrorContains(t, err, "invalid duration")

	unsupported := filepath.Join(dir, "provider.yaml")
	require.NoError(t, os.WriteFile(unsupported, []byte("ai:\n  provider: ollama\n"), 0o644))
	_, err = LoadConfig(unsupported)
	assert.ErrorContains(t, err, "unsupported ai.provider")
}

func TestResolveAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-openai")
	t.Setenv("GEMINI_API_KEY", "env-gemini")

	cfg := Default()
	assert.Equal(t, "env-openai", cfg.ResolveAPIKey())

	cfg.AI.Provider = "gemini"
	assert.Equal(t, "env-gemini", cfg.ResolveAPIKey())

	cfg.AI.APIKey = "from-file"
	assert.Equal(t, "from-file", cfg.ResolveAPIKey())

	t.Setenv("GEMINI_API_KEY", "")
	cfg.AI.APIKey = ""
	assert.Empty(t, cfg.ResolveAPIKey())
}
