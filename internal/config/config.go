// Package config loads the small set of persisted output preferences
// a headless player needs between runs: which sink to default to and
// how to reach a networked Ultimate-64.
//
// Grounded on doismellburning-samoyed's src/deviceid.go, the pack's one
// real exercised gopkg.in/yaml.v3 use site (read file, yaml.Unmarshal,
// tolerate a missing file).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Preferences is the {output_engine_name, u64_address, u64_password}
// triple; anything beyond this is out of scope.
type Preferences struct {
	OutputEngineName string `yaml:"output_engine_name"`
	U64Address       string `yaml:"u64_address"`
	U64Password      string `yaml:"u64_password"`
}

// Default returns the zero-value preferences: no forced engine (let
// device.CreateAuto pick) and no Ultimate-64 configured.
func Default() Preferences {
	return Preferences{}
}

// Load reads preferences from path. A missing file is not an error and
// yields Default(); a present-but-malformed file is.
func Load(path string) (Preferences, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Preferences{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	prefs := Default()
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return Preferences{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return prefs, nil
}

// Save writes preferences to path as YAML, creating or truncating it.
func Save(path string, prefs Preferences) error {
	data, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
