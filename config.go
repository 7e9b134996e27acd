package xmlscene

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is read when no config file is named explicitly.
const DefaultConfigPath = "~/.xmlimport.yaml"

// Config is the on-disk importer configuration.
type Config struct {
	Debug             bool   `yaml:"debug"`
	LogPrefix         string `yaml:"log_prefix"`
	LenientTransforms bool   `yaml:"lenient_transforms"`
	KeepExisting      bool   `yaml:"keep_existing"`
	SnapshotOut       string `yaml:"snapshot_out,omitempty"`
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() Config {
	return Config{LogPrefix: "xmlimport"}
}

// LoadConfig reads a YAML config. A missing file at the default path yields
// DefaultConfig; a missing file anywhere else is an error.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return Config{}, fmt.Errorf("config path %q: %w", path, err)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("read config %q: %w", expanded, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %q: %w", expanded, err)
	}
	return cfg, nil
}

// Options converts the config into importer options using logger.
func (c Config) Options(logger Logger) []Option {
	return []Option{
		WithLogger(logger),
		WithLenientTransforms(c.LenientTransforms),
		WithKeepExisting(c.KeepExisting),
	}
}
