/*
Package config manages TOML config for wordtrie.

Values are resolved in this order: built-in defaults, the TOML file, then
WORDTRIE_* environment variables. A file that fails to decode as a whole is
salvaged section by section; anything unreadable falls back to defaults.

	[dict]
	threshold = 2
	cache_size = 256

	[server]
	max_word_len = 64
	send_ready = true

	[cli]
	max_word_len = 64
	show_timing = false
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/caarlos0/env/v7"
	"github.com/charmbracelet/log"
)

// FileName is the config file looked up in the config dir.
const FileName = "config.toml"

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "WORDTRIE_"

// Config holds the entire config structure
type Config struct {
	Dict   DictConfig   `toml:"dict" envPrefix:"DICT_"`
	Server ServerConfig `toml:"server" envPrefix:"SERVER_"`
	CLI    CliConfig    `toml:"cli" envPrefix:"CLI_"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	Threshold int `toml:"threshold" env:"THRESHOLD"`
	CacheSize int `toml:"cache_size" env:"CACHE_SIZE"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxWordLen int  `toml:"max_word_len" env:"MAX_WORD_LEN"`
	SendReady  bool `toml:"send_ready" env:"SEND_READY"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	MaxWordLen int  `toml:"max_word_len" env:"MAX_WORD_LEN"`
	ShowTiming bool `toml:"show_timing" env:"SHOW_TIMING"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Dict: DictConfig{
			Threshold: 2,
			CacheSize: 256,
		},
		Server: ServerConfig{
			MaxWordLen: 64,
			SendReady:  true,
		},
		CLI: CliConfig{
			MaxWordLen: 64,
			ShowTiming: false,
		},
	}
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	pr, err := utils.NewPathResolver()
	if err != nil {
		return "", err
	}
	return pr.GetConfigPath(FileName)
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/wordtrie/config.toml
// 3. Builtin defaults
//
// Environment overrides are applied on top of whichever source won.
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	cfg, path := loadFromFiles(customConfigPath)
	if err := ApplyEnv(cfg); err != nil {
		return nil, path, err
	}
	cfg.Validate()
	return cfg, path, nil
}

func loadFromFiles(customConfigPath string) (*Config, string) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			cfg, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return cfg, customConfigPath
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), ""
	}
	cfg, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), ""
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return cfg, defaultPath
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		cfg := DefaultConfig()
		if err := SaveConfig(cfg, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return cfg, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Keys missing from the file keep their
// default values.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, cfg); err != nil {
		return tryPartialParse(configPath)
	}
	return cfg, nil
}

// tryPartialParse salvages the well-typed keys of a file whose struct decode failed.
func tryPartialParse(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return cfg, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(section, &cfg.Dict)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &cfg.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &cfg.CLI)
	}
	return cfg, nil
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractInt64(data, "threshold"); ok {
		dict.Threshold = val
	}
	if val, ok := utils.ExtractInt64(data, "cache_size"); ok {
		dict.CacheSize = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_word_len"); ok {
		server.MaxWordLen = val
	}
	if val, ok := utils.ExtractBool(data, "send_ready"); ok {
		server.SendReady = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "max_word_len"); ok {
		cli.MaxWordLen = val
	}
	if val, ok := utils.ExtractBool(data, "show_timing"); ok {
		cli.ShowTiming = val
	}
}

// ApplyEnv overrides fields from WORDTRIE_* variables, e.g.
// WORDTRIE_DICT_THRESHOLD. Unset variables leave fields untouched.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

// Validate resets out-of-range values to their defaults.
func (c *Config) Validate() {
	def := DefaultConfig()
	if c.Dict.Threshold < 0 {
		log.Warnf("Invalid dict.threshold %d, using %d", c.Dict.Threshold, def.Dict.Threshold)
		c.Dict.Threshold = def.Dict.Threshold
	}
	if c.Dict.CacheSize < 0 {
		log.Warnf("Invalid dict.cache_size %d, disabling cache", c.Dict.CacheSize)
		c.Dict.CacheSize = 0
	}
	if c.Server.MaxWordLen < 1 {
		log.Warnf("Invalid server.max_word_len %d, using %d", c.Server.MaxWordLen, def.Server.MaxWordLen)
		c.Server.MaxWordLen = def.Server.MaxWordLen
	}
	if c.CLI.MaxWordLen < 1 {
		log.Warnf("Invalid cli.max_word_len %d, using %d", c.CLI.MaxWordLen, def.CLI.MaxWordLen)
		c.CLI.MaxWordLen = def.CLI.MaxWordLen
	}
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(cfg *Config, configPath string) error {
	return utils.SaveTOMLFile(cfg, configPath)
}
