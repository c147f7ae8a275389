package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 2, cfg.Dict.Threshold)
	assert.Equal(t, 256, cfg.Dict.CacheSize)
	assert.Equal(t, 64, cfg.Server.MaxWordLen)
	assert.True(t, cfg.Server.SendReady)
	assert.Equal(t, 64, cfg.CLI.MaxWordLen)
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, `
[dict]
threshold = 3

[server]
send_ready = false
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Dict.Threshold)
	assert.Equal(t, 256, cfg.Dict.CacheSize, "missing keys keep defaults")
	assert.False(t, cfg.Server.SendReady)
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	// cache_size has the wrong type, so the struct decode fails as a whole
	path := writeFile(t, `
[dict]
threshold = 1
cache_size = "lots"

[cli]
show_timing = true
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Dict.Threshold)
	assert.Equal(t, 256, cfg.Dict.CacheSize)
	assert.True(t, cfg.CLI.ShowTiming)
}

func TestLoadConfigGarbageFallsBackToDefaults(t *testing.T) {
	path := writeFile(t, "[dict\nthreshold = ")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestInitConfigCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", FileName)
	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	again, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("WORDTRIE_DICT_THRESHOLD", "4")
	t.Setenv("WORDTRIE_CLI_SHOW_TIMING", "true")

	cfg := DefaultConfig()
	cfg.Server.MaxWordLen = 10
	require.NoError(t, ApplyEnv(cfg))

	assert.Equal(t, 4, cfg.Dict.Threshold)
	assert.True(t, cfg.CLI.ShowTiming)
	assert.Equal(t, 10, cfg.Server.MaxWordLen, "unset variables leave values alone")
	assert.Equal(t, 256, cfg.Dict.CacheSize)
}

func TestApplyEnvRejectsBadValue(t *testing.T) {
	t.Setenv("WORDTRIE_DICT_CACHE_SIZE", "many")
	assert.Error(t, ApplyEnv(DefaultConfig()))
}

func TestLoadConfigWithPriority(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := writeFile(t, "[dict]\nthreshold = 3\n")
	t.Setenv("WORDTRIE_DICT_CACHE_SIZE", "8")

	cfg, used, err := LoadConfigWithPriority(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, 3, cfg.Dict.Threshold)
	assert.Equal(t, 8, cfg.Dict.CacheSize)

	cfg, used, err = LoadConfigWithPriority(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.NotEmpty(t, used)
	assert.Equal(t, 2, cfg.Dict.Threshold)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Dict:   DictConfig{Threshold: -1, CacheSize: -5},
		Server: ServerConfig{MaxWordLen: 0},
		CLI:    CliConfig{MaxWordLen: -2},
	}
	cfg.Validate()
	assert.Equal(t, 2, cfg.Dict.Threshold)
	assert.Equal(t, 0, cfg.Dict.CacheSize)
	assert.Equal(t, 64, cfg.Server.MaxWordLen)
	assert.Equal(t, 64, cfg.CLI.MaxWordLen)
}
