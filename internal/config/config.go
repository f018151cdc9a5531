// Package config loads the ttsdeck configuration file.
package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds all ttsdeck configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Index   IndexConfig   `yaml:"index"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

// IndexConfig locates the inputs and output of the set index build.
type IndexConfig struct {
	// Artifact written by the index build and read by the parser
	// (.json, or .db/.sqlite for SQLite).
	Path string `yaml:"path"`
	// Set name -> abbreviation table (.yaml, .json or .csv).
	SetMappingPath string `yaml:"set_mapping_path"`
	// TTS "Saved Objects" directory to mine.
	SavedObjectsDir string `yaml:"saved_objects_dir"`
}

type ExportConfig struct {
	Dir          string `yaml:"dir"`
	CardBackPath string `yaml:"card_back_path"`
	// Append keeps deck order equal to decklist order instead of the
	// front insertion older exports used.
	Append bool `yaml:"append"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{Port: 8080},
		Index: IndexConfig{
			Path:           "data/tts-set-metadata.json",
			SetMappingPath: "configs/set-mapping.yaml",
		},
		Export:  ExportConfig{Dir: "out"},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Load reads path over the defaults and applies environment overrides. An
// empty path yields the defaults with overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read config %s", path)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, errors.Wrapf(err, "failed to parse config %s", path)
		}
	}
	cfg.applyEnvOverrides()
	return &cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("TTSDECK_INDEX"); v != "" {
		c.Index.Path = v
	}
	if v := os.Getenv("TTSDECK_SET_MAPPING"); v != "" {
		c.Index.SetMappingPath = v
	}
	if v := os.Getenv("TTSDECK_SAVED_OBJECTS"); v != "" {
		c.Index.SavedObjectsDir = v
	}
	if v := os.Getenv("TTSDECK_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// ValidateForServe checks what the server and decklist build need.
func (c *Config) ValidateForServe() error {
	if c.Index.Path == "" {
		return errors.New("index.path is a required configuration field and cannot be empty")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.Errorf("server.port %d is out of range", c.Server.Port)
	}
	return nil
}

// ValidateForIndex checks what the index build needs.
func (c *Config) ValidateForIndex() error {
	if c.Index.SavedObjectsDir == "" {
		return errors.New("index.saved_objects_dir is a required configuration field and cannot be empty")
	}
	if c.Index.SetMappingPath == "" {
		return errors.New("index.set_mapping_path is a required configuration field and cannot be empty")
	}
	if c.Index.Path == "" {
		return errors.New("index.path is a required configuration field and cannot be empty")
	}
	return nil
}
