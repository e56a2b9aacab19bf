// Package config holds the settings of the huff command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config is the huff command configuration. Zero values of a loaded file keep
// the defaults.
type Config struct {
	// Input is the text file processed when no file is named on the command line.
	Input string `yaml:"input"`
	// OutputDir receives the encoded, decoded and tree files.
	OutputDir string `yaml:"output_dir"`
	Encoded   string `yaml:"encoded"`
	Decoded   string `yaml:"decoded"`
	Tree      string `yaml:"tree"`
	// Packed stores encoded streams as packed bits instead of '0'/'1' text.
	Packed bool `yaml:"packed"`

	Log Log `yaml:"log"`
}

// Log configures logging. Output goes to stdout unless File is set, in which
// case the file is rotated once it reaches MaxSizeMB.
type Log struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Input:     "file.txt",
		OutputDir: ".",
		Encoded:   "encoded.txt",
		Decoded:   "decoded.txt",
		Tree:      "tree.cbor",
		Log: Log{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Load reads the YAML file at path over the defaults.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	for _, name := range []string{c.Encoded, c.Decoded, c.Tree} {
		if name == "" {
			return errors.New("config: output file names must not be empty")
		}
		if filepath.Base(name) != name {
			return fmt.Errorf("config: output file name %q must not contain a directory", name)
		}
	}
	if c.Encoded == c.Decoded || c.Encoded == c.Tree || c.Decoded == c.Tree {
		return errors.New("config: encoded, decoded and tree files must differ")
	}
	if _, err := c.Log.ParseLevel(); err != nil {
		return err
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 {
		return errors.New("config: log rotation limits must not be negative")
	}
	return nil
}

// ParseLevel returns the zerolog level named by l.Level; empty means info.
func (l Log) ParseLevel() (zerolog.Level, error) {
	if l.Level == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(l.Level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("config: %w", err)
	}
	return level, nil
}

// EncodedPath, DecodedPath and TreePath join the file names with OutputDir.
func (c Config) EncodedPath() string { return filepath.Join(c.OutputDir, c.Encoded) }
func (c Config) DecodedPath() string { return filepath.Join(c.OutputDir, c.Decoded) }
func (c Config) TreePath() string    { return filepath.Join(c.OutputDir, c.Tree) }
