package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the optional config.yaml. Zero values mean "use the default".
type File struct {
	// Source is the artifact to install. Relative paths resolve against
	// the working directory.
	Source string `yaml:"source,omitempty"`

	// Prefix replaces /usr/local on Unix when $PREFIX is not set.
	Prefix string `yaml:"prefix,omitempty"`

	// Escalator is the privilege-escalation helper (default "sudo").
	Escalator string `yaml:"escalator,omitempty"`

	// UpdatePath controls the Windows user PATH update (default true).
	UpdatePath *bool `yaml:"update_path,omitempty"`
}

// Load reads a config file. A missing file returns an empty File.
func Load(path string) (*File, error) {
	cfg := &File{}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// PathUpdateEnabled reports whether the Windows PATH update should run.
func (f *File) PathUpdateEnabled() bool {
	return f.UpdatePath == nil || *f.UpdatePath
}
