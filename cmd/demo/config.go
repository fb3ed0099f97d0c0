package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the defaults the demo falls back to when a flag isn't
// given explicitly; it mirrors the shape of Options/ScreenMode without
// depending on the tui package directly, since cobra flags need to be
// able to override any field after loading.
type Config struct {
	Mode         string `yaml:"mode"` // "alt", "inline", "inline-auto"
	InlineHeight int    `yaml:"inline_height"`
	FPS          int    `yaml:"fps"`
	TrueColor    *bool  `yaml:"true_color"`
	Scrollback   int    `yaml:"scrollback"`
}

// defaultConfig is used when no --config file is given.
func defaultConfig() Config {
	return Config{Mode: "alt", InlineHeight: 10, FPS: 30, Scrollback: 1000}
}

// LoadConfig reads and parses a YAML config file, starting from
// defaultConfig so an incomplete file still produces sane values.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
