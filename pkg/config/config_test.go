package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/sdejongh/tablediff/pkg/diff"
	"github.com/sdejongh/tablediff/pkg/models"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	if cfg.Tables.LocalDir != "./local_tables/" || cfg.Tables.RemoteDir != "./remote_tables/" {
		t.Errorf("Tables = %+v", cfg.Tables)
	}
	if cfg.Output.Path != "compare_output.json" {
		t.Errorf("Output.Path = %s, want compare_output.json", cfg.Output.Path)
	}
	if cfg.DiffOptions() != diff.DefaultOptions() {
		t.Errorf("DiffOptions() = %+v, want %+v", cfg.DiffOptions(), diff.DefaultOptions())
	}
	if len(cfg.Exclude) != 0 {
		t.Errorf("Exclude = %v, want empty", cfg.Exclude)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"EmptyLocalDir", func(c *Config) { c.Tables.LocalDir = "" }, "tables.local_dir"},
		{"EmptyRemoteDir", func(c *Config) { c.Tables.RemoteDir = "" }, "tables.remote_dir"},
		{"EmptyOutputPath", func(c *Config) { c.Output.Path = "" }, "output.path"},
		{"BadOutputFormat", func(c *Config) { c.Output.Format = "xml" }, "output.format"},
		{"NegativeCutoff", func(c *Config) { c.Diff.PairCutoff = -0.1 }, "diff.pair_cutoff"},
		{"CutoffAboveOne", func(c *Config) { c.Diff.PairCutoff = 1.5 }, "diff.pair_cutoff"},
		{"BadLogFormat", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"BadLogLevel", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			var verr *models.ValidationError
			if err := cfg.Validate(); !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want *models.ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %s, want %s", verr.Field, tt.field)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("YAMLPartialKeepsDefaults", func(t *testing.T) {
		path := filepath.Join(dir, "partial.yaml")
		content := "tables:\n  local_dir: /data/a\nexclude: ['*.bak']\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadFromFile(path)
		if err != nil {
			t.Fatalf("LoadFromFile() error = %v", err)
		}
		if cfg.Tables.LocalDir != "/data/a" {
			t.Errorf("LocalDir = %s, want /data/a", cfg.Tables.LocalDir)
		}
		if cfg.Tables.RemoteDir != "./remote_tables/" {
			t.Errorf("RemoteDir = %s, want default", cfg.Tables.RemoteDir)
		}
		if !reflect.DeepEqual(cfg.Exclude, []string{"*.bak"}) {
			t.Errorf("Exclude = %v, want [*.bak]", cfg.Exclude)
		}
	})

	t.Run("TOML", func(t *testing.T) {
		path := filepath.Join(dir, "config.toml")
		content := "exclude = [\".*\"]\n\n[tables]\nremote_dir = \"/data/b\"\n\n[diff]\npair_cutoff = 0.5\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadFromFile(path)
		if err != nil {
			t.Fatalf("LoadFromFile() error = %v", err)
		}
		if cfg.Tables.RemoteDir != "/data/b" {
			t.Errorf("RemoteDir = %s, want /data/b", cfg.Tables.RemoteDir)
		}
		if cfg.Diff.PairCutoff != 0.5 {
			t.Errorf("PairCutoff = %v, want 0.5", cfg.Diff.PairCutoff)
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.yaml")
		if err := os.WriteFile(path, []byte("output:\n  format: xml\n"), 0644); err != nil {
			t.Fatal(err)
		}

		_, err := LoadFromFile(path)
		if err == nil || !strings.Contains(err.Error(), "invalid configuration") {
			t.Errorf("LoadFromFile() error = %v, want invalid configuration", err)
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		path := filepath.Join(dir, "malformed.yaml")
		if err := os.WriteFile(path, []byte("tables: [\n"), 0644); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadFromFile(path); err == nil {
			t.Error("LoadFromFile() should fail for malformed YAML")
		}
	})

	t.Run("Missing", func(t *testing.T) {
		if _, err := LoadFromFile(filepath.Join(dir, "missing.yaml")); err == nil {
			t.Error("LoadFromFile() should fail for missing file")
		}
	})
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Tables.LocalDir = "/srv/tables/local"
	cfg.Output.Format = "json"
	cfg.Diff.PairCutoff = 0
	cfg.Logging.Enabled = true
	cfg.Exclude = []string{"*.bak", "archive/"}

	for _, name := range []string{"config.yaml", "config.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			if err := SaveToFile(cfg, path); err != nil {
				t.Fatalf("SaveToFile() error = %v", err)
			}

			loaded, err := LoadFromFile(path)
			if err != nil {
				t.Fatalf("LoadFromFile() error = %v", err)
			}
			if !reflect.DeepEqual(loaded, cfg) {
				t.Errorf("round trip = %+v, want %+v", loaded, cfg)
			}
		})
	}
}

func TestSaveInvalid(t *testing.T) {
	cfg := Default()
	cfg.Output.Path = ""
	if err := SaveToFile(cfg, filepath.Join(t.TempDir(), "c.yaml")); err == nil {
		t.Error("SaveToFile() should reject an invalid configuration")
	}
}

func TestLoadDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("LoadDefault() = %+v, want defaults", cfg)
	}

	path, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("DefaultConfigPath() error = %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join(".config", "tablediff", "config.yaml")) {
		t.Errorf("DefaultConfigPath() = %s", path)
	}
}
