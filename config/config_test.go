package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dynonview.yaml")

	data := `
data_dir: ./logs
plot:
  width: 1200
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.DataDir != "./logs" {
		t.Fatalf("expected data_dir ./logs, got %s", cfg.DataDir)
	}
	if cfg.Extension != ".csv" {
		t.Fatalf("expected default extension .csv, got %s", cfg.Extension)
	}
	if cfg.Plot.Width != 1200 || cfg.Plot.Height != 500 {
		t.Fatalf("expected plot 1200x500, got %dx%d", cfg.Plot.Width, cfg.Plot.Height)
	}
	if cfg.Defaults.SampleRate != 10 || cfg.Defaults.RangeMax != 100 {
		t.Fatalf("unexpected defaults: %+v", cfg.Defaults)
	}
	if cfg.Defaults.XIndex != 3 || cfg.Defaults.YIndexBase != 6 {
		t.Fatalf("unexpected column defaults: %+v", cfg.Defaults)
	}
	if cfg.CacheFile != ".dynonview-cache.json" {
		t.Fatalf("expected default cache file, got %q", cfg.CacheFile)
	}
}

func TestLoadEmptyCacheFileDisablesPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	if err := os.WriteFile(path, []byte("cache_file: \"\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.CacheFile != "" {
		t.Fatalf("expected cache persistence disabled, got %q", cfg.CacheFile)
	}
}

func TestLoadRejectsBadSampleRate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	if err := os.WriteFile(path, []byte("defaults:\n  sample_rate: 500\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error for sample_rate 500")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.DataDir != "." || cfg.Plot.Width != 1000 || cfg.Plot.Height != 500 {
		t.Fatalf("unexpected default config: %+v", cfg)
	}
}
