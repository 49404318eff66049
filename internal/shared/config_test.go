package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Engine.CacheCapacity != 512 {
			t.Errorf("expected cache capacity 512, got %d", config.Engine.CacheCapacity)
		}
		if config.Engine.SuggestionLimit != 10 {
			t.Errorf("expected suggestion limit 10, got %d", config.Engine.SuggestionLimit)
		}
		if config.Catalog.Timeout() != 8*time.Second {
			t.Errorf("expected 8s catalog timeout, got %v", config.Catalog.Timeout())
		}
		if config.Redis.TTL() != time.Hour {
			t.Errorf("expected 1h redis TTL, got %v", config.Redis.TTL())
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		t.Run("loads valid file", func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.toml")
			content := `
[database]
path = "test.db"

[catalog]
api_key = "test-key"
daily_quota = 100

[engine]
cache_capacity = 16
`
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			config, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("failed to load config: %v", err)
			}

			if config.Database.Path != "test.db" {
				t.Errorf("expected database path test.db, got %s", config.Database.Path)
			}
			if config.Catalog.APIKey != "test-key" {
				t.Errorf("expected api key test-key, got %s", config.Catalog.APIKey)
			}
			if config.Catalog.DailyQuota != 100 {
				t.Errorf("expected daily quota 100, got %d", config.Catalog.DailyQuota)
			}
			if config.Engine.CacheCapacity != 16 {
				t.Errorf("expected cache capacity 16, got %d", config.Engine.CacheCapacity)
			}
		})

		t.Run("fails on missing file", func(t *testing.T) {
			if _, err := LoadConfig("/nonexistent/config.toml"); err == nil {
				t.Error("expected error for missing file")
			}
		})

		t.Run("fails on malformed TOML", func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "bad.toml")
			if err := os.WriteFile(path, []byte("[[[not toml"), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			if _, err := LoadConfig(path); err == nil {
				t.Error("expected error for malformed TOML")
			}
		})
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := LoadConfig(path); err != nil {
			t.Errorf("created config should be loadable: %v", err)
		}

		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error when config already exists")
		}
	})
}
