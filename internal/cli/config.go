package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the CLI's configuration, read from
// ~/.config/scribe/config.toml with SCRIBE_* env overrides.
type Config struct {
	APIURL     string
	RedisAddr  string // optional; transcripts are kept in-process when empty
	SampleRate int
}

type fileConfig struct {
	APIURL     string `toml:"api_url"`
	RedisAddr  string `toml:"redis_addr"`
	SampleRate int    `toml:"sample_rate"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		APIURL:     "http://localhost:8000",
		SampleRate: 16000,
	}

	if configPath := configFilePath(); configPath != "" {
		var fc fileConfig
		if _, err := toml.DecodeFile(configPath, &fc); err == nil {
			if fc.APIURL != "" {
				cfg.APIURL = fc.APIURL
			}
			cfg.RedisAddr = fc.RedisAddr
			if fc.SampleRate > 0 {
				cfg.SampleRate = fc.SampleRate
			}
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SCRIBE_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("SCRIBE_REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
}

func configFilePath() string {
	var configDir string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		configDir = filepath.Join(xdg, "scribe")
	} else if home, err := os.UserHomeDir(); err == nil {
		configDir = filepath.Join(home, ".config", "scribe")
	} else {
		return ""
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}
