// Package platform supplies the boot-time capability configuration a
// hart's legalization logic queries.
package platform

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the boot-time capability toggles. Values are fixed for
// the lifetime of a hart; the one run-time-varying query (the veto on
// disabling compressed instructions) is a hook on Platform, not a
// config value.
type Config struct {
	// WritableMisa enables run-time writes to misa. Default: false,
	// misa is locked at its boot value.
	WritableMisa bool `yaml:"writable_misa" json:"writable_misa"`

	// RVC enables the compressed-instruction extension at boot.
	// Default: true.
	RVC bool `yaml:"rvc" json:"rvc"`

	// FD enables the single- and double-precision float extensions at
	// boot. Default: true.
	FD bool `yaml:"fd" json:"fd"`
}

// DefaultConfig returns the default capability configuration.
func DefaultConfig() Config {
	return Config{
		WritableMisa: false,
		RVC:          true,
		FD:           true,
	}
}

// LoadConfig reads a capability configuration file. The format is
// chosen by extension: .yaml/.yml or .json.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("unsupported config format %q", ext)
	}
	return cfg, nil
}
