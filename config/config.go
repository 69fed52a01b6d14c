package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Service struct {
	URL string `yaml:"url"`
}
type Services struct {
	Visualization Service `yaml:"visualization"`
}
type Labels struct {
	MaxLen       int     `yaml:"max_len"`       // longest segment removed by elision, seconds
	SilenceLabel string  `yaml:"silence_label"` // filler label for remove-silences
	FrameLen     float64 `yaml:"frame_len"`     // frame length for the frames loader, seconds
	Decimals     int     `yaml:"decimals"`
}
type Batch struct {
	Jobs int `yaml:"jobs"`
}
type Root struct {
	Pipeline struct {
		Name   string `yaml:"name"`
		LogLvl string `yaml:"log_level"`
	} `yaml:"pipeline"`
	Labels   Labels   `yaml:"labels"`
	Services Services `yaml:"services"`
	Batch    Batch    `yaml:"batch"`
	Paths    struct {
		Outputs string `yaml:"outputs"`
	} `yaml:"paths"`
}

// Default returns the configuration used when no file is found.
func Default() *Root {
	var c Root
	c.Pipeline.Name = "cblabels"
	c.Pipeline.LogLvl = "info"
	c.Labels = Labels{MaxLen: 300, SilenceLabel: "SILENCIO", FrameLen: 1, Decimals: 0}
	c.Batch.Jobs = 1
	c.Paths.Outputs = "outputs"
	return &c
}

// Load reads the first config file found among config/<CONFIG_ENV>/config.yaml
// and cblabels.yaml. Without any file the defaults are returned.
func Load() (*Root, error) {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	guess := []string{
		filepath.Join("config", env, "config.yaml"),
		"cblabels.yaml",
	}
	for _, p := range guess {
		c, err := LoadFile(p)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		return c, err
	}
	return Default(), nil
}

// LoadFile decodes the file at path over the defaults.
func LoadFile(path string) (*Root, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg := Default()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings no operation can run with.
func (c *Root) Validate() error {
	switch {
	case c.Labels.MaxLen < 0:
		return fmt.Errorf("labels.max_len must not be negative, got %d", c.Labels.MaxLen)
	case c.Labels.FrameLen <= 0:
		return fmt.Errorf("labels.frame_len must be positive, got %g", c.Labels.FrameLen)
	case c.Labels.Decimals < 0:
		return fmt.Errorf("labels.decimals must not be negative, got %d", c.Labels.Decimals)
	case c.Batch.Jobs < 1:
		return fmt.Errorf("batch.jobs must be at least 1, got %d", c.Batch.Jobs)
	}
	return nil
}
