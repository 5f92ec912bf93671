package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig holds project-level settings loaded from pyscout.yml.
// Command-line flags override anything set here.
type ProjectConfig struct {
	Exclude []string `yaml:"exclude,omitempty"`
	Rules   string   `yaml:"rules,omitempty"`
	Jobs    int      `yaml:"jobs,omitempty"`
	NoColor bool     `yaml:"noColor,omitempty"`
	Verbose bool     `yaml:"verbose,omitempty"`
}

// Load attempts to read pyscout.yml or pyscout.yaml from the given
// directory. Returns a zero-value config (not an error) if no config file
// exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"pyscout.yml", "pyscout.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}
