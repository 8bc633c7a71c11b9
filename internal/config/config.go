// Package config loads the optional solc.config.yaml discovered next to
// the root source file (SPEC_FULL.md §10). Config discovery is not a CLI
// flag, so it does not violate the "no flags" constraint in spec.md §6.1.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const FileName = "solc.config.yaml"

// Config is the optional per-project configuration. The zero value is the
// default: no extra include paths, no predefined macros, the default
// include-depth limit.
type Config struct {
	IncludePaths    []string          `yaml:"includePaths"`
	Defines         map[string]string `yaml:"defines"`
	MaxIncludeDepth int               `yaml:"maxIncludeDepth"`
}

// Load looks for solc.config.yaml in dir and parses it. A missing file is
// not an error: Load returns the zero Config. A malformed file is
// returned as an error with no source position, to be rendered as a
// plain diagnostic.
func Load(dir string) (Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
