package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DataDir   string         `yaml:"data_dir"`
	Extension string         `yaml:"extension"`
	CacheFile string         `yaml:"cache_file"`
	ExportDir string         `yaml:"export_dir"`
	Plot      PlotConfig     `yaml:"plot"`
	Defaults  DefaultsConfig `yaml:"defaults"`
}

type PlotConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// DefaultsConfig holds the initial control values of the sidebar.
type DefaultsConfig struct {
	RangeMax   int `yaml:"range_max"`
	SampleRate int `yaml:"sample_rate"`
	XIndex     int `yaml:"x_index"`
	YIndexBase int `yaml:"y_index_base"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	cfg.CacheFile = ".dynonview-cache.json"
	return &cfg
}

// Load reads a YAML file, fills unset fields and validates the result.
// An explicit empty cache_file disables cache persistence.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Config{CacheFile: ".dynonview-cache.json"}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = "."
	}
	if c.Extension == "" {
		c.Extension = ".csv"
	}
	if c.ExportDir == "" {
		c.ExportDir = "."
	}
	if c.Plot.Width == 0 {
		c.Plot.Width = 1000
	}
	if c.Plot.Height == 0 {
		c.Plot.Height = 500
	}
	if c.Defaults.RangeMax == 0 {
		c.Defaults.RangeMax = 100
	}
	if c.Defaults.SampleRate == 0 {
		c.Defaults.SampleRate = 10
	}
	if c.Defaults.XIndex == 0 {
		c.Defaults.XIndex = 3
	}
	if c.Defaults.YIndexBase == 0 {
		c.Defaults.YIndexBase = 6
	}
}

func (c *Config) validate() error {
	if c.Plot.Width < 0 || c.Plot.Height < 0 {
		return fmt.Errorf("plot size must be positive, got %dx%d", c.Plot.Width, c.Plot.Height)
	}
	if c.Defaults.RangeMax < 0 {
		return fmt.Errorf("defaults.range_max must be >= 0")
	}
	if c.Defaults.SampleRate < 1 || c.Defaults.SampleRate > 100 {
		return fmt.Errorf("defaults.sample_rate must be in [1,100], got %d", c.Defaults.SampleRate)
	}
	if c.Defaults.XIndex < 0 || c.Defaults.YIndexBase < 0 {
		return fmt.Errorf("defaults column indices must be >= 0")
	}
	return nil
}
