package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "scribe")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("XDG_CONFIG_HOME", dir)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("SCRIBE_API_URL", "")
	t.Setenv("SCRIBE_REDIS_ADDR", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.APIURL != "http://localhost:8000" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.RedisAddr != "" {
		t.Errorf("RedisAddr = %q, want empty", cfg.RedisAddr)
	}
	if cfg.SampleRate != 16000 {
		t.Errorf("SampleRate = %d", cfg.SampleRate)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	writeConfig(t, `
api_url = "https://scribe.example.com"
redis_addr = "localhost:6379"
sample_rate = 44100
`)
	t.Setenv("SCRIBE_API_URL", "")
	t.Setenv("SCRIBE_REDIS_ADDR", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.APIURL != "https://scribe.example.com" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
	if cfg.SampleRate != 44100 {
		t.Errorf("SampleRate = %d", cfg.SampleRate)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	writeConfig(t, `api_url = "https://file.example.com"`)
	t.Setenv("SCRIBE_API_URL", "https://env.example.com")
	t.Setenv("SCRIBE_REDIS_ADDR", "redis://env:6379")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.APIURL != "https://env.example.com" {
		t.Errorf("APIURL = %q, env should win", cfg.APIURL)
	}
	if cfg.RedisAddr != "redis://env:6379" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
}
