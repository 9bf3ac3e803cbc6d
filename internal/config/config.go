// Package config defines the explicit configuration value passed into both
// pipeline components. Nothing in the pipeline reads ambient process state;
// the CLI resolves configuration once (file, environment, flags) and hands
// the result down, which keeps the components callable and testable without
// process-level side effects.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned by Load when the config file does not
// exist. Callers check it with errors.Is; a missing optional file is not an
// error for them.
var ErrConfigNotFound = errors.New("config file not found")

// ConfigFileName is the default config file looked up in the working
// directory.
const ConfigFileName = "medetl.yaml"

// DataDirEnv overrides the base data directory when set.
const DataDirEnv = "MEDICINES_DATA_DIR"

// Config holds all tunables for both components. All fields are plain
// values; the struct can be copied freely.
type Config struct {
	// DataDir is the base directory holding the source table, the
	// intermediate document, and the database file.
	DataDir string `yaml:"data_dir"`

	// MetadataFile is the delimited source table file name inside DataDir.
	MetadataFile string `yaml:"metadata_file"`

	// DocumentFile is the intermediate JSON document file name inside
	// DataDir.
	DocumentFile string `yaml:"document_file"`

	// DatabaseFile is the SQLite database file name inside DataDir.
	DatabaseFile string `yaml:"database_file"`

	// Delimiter is the single-character field delimiter of the source
	// table.
	Delimiter string `yaml:"delimiter"`

	// BatchSize is the number of records inserted per transaction commit.
	BatchSize int `yaml:"batch_size"`
}

// Default returns the built-in configuration: pipe-delimited metadata.csv
// under ./data, medicines.json and medicines.db alongside it, 1000 records
// per batch.
func Default() Config {
	return Config{
		DataDir:      "data",
		MetadataFile: "metadata.csv",
		DocumentFile: "medicines.json",
		DatabaseFile: "medicines.db",
		Delimiter:    "|",
		BatchSize:    1000,
	}
}

// Load reads a YAML config file and overlays it onto the defaults. Fields
// absent from the file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overlays environment overrides onto c using the provided getenv
// (usually os.Getenv; tests pass a map-backed func).
func (c Config) ApplyEnv(getenv func(string) string) Config {
	if dir := getenv(DataDirEnv); dir != "" {
		c.DataDir = dir
	}
	return c
}

// Validate reports the first problem with c, or nil.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("config: data_dir must not be empty")
	}
	if len([]rune(c.Delimiter)) != 1 {
		return fmt.Errorf("config: delimiter must be a single character, got %q", c.Delimiter)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("config: batch_size must be > 0, got %d", c.BatchSize)
	}
	return nil
}

// DelimiterRune returns the delimiter as a rune. Call Validate first.
func (c Config) DelimiterRune() rune {
	for _, r := range c.Delimiter {
		return r
	}
	return ','
}

// MetadataPath returns the full path of the source table.
func (c Config) MetadataPath() string { return filepath.Join(c.DataDir, c.MetadataFile) }

// DocumentPath returns the full path of the intermediate document.
func (c Config) DocumentPath() string { return filepath.Join(c.DataDir, c.DocumentFile) }

// DatabasePath returns the full path of the SQLite database.
func (c Config) DatabasePath() string { return filepath.Join(c.DataDir, c.DatabaseFile) }
