// Package config implements the handful of pipeline-wide knobs SPEC_FULL.md
// §2.3 calls for, YAML-backed the way the teacher's internal/ext.Config
// loads funxy.yaml: a plain struct with yaml tags, a defaults pass, and a
// directory-walking finder for the project's config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pyscope/pyscope/internal/normalize"
)

// DefaultSourceExtensions are the extensions HasSourceExt recognizes when
// the config file doesn't override them.
var DefaultSourceExtensions = []string{".py", ".pyi"}

// Config is the project-level configuration file, conventionally named
// pyscope.yaml.
type Config struct {
	// SourceExtensions overrides DefaultSourceExtensions.
	SourceExtensions []string `yaml:"source_extensions,omitempty"`

	// Force sets pass 7's default: whether an unresolved wildcard import
	// is forced (left expanded to the star) rather than deferred via
	// try_preprocess's recoverable failure (§4.2 pass 7, §7).
	Force bool `yaml:"force,omitempty"`

	// UseForwardReferences is the forward-reference policy qualify installs
	// on the module's top-level scope (§4.3). Decorators always honor
	// forward references and function/class bodies never do, whatever
	// this is set to.
	UseForwardReferences bool `yaml:"use_forward_references,omitempty"`

	// Platform is the assumed target platform for pass 4's constant
	// folding (§4.2 pass 4), e.g. "linux", "darwin", "win32".
	Platform string `yaml:"platform,omitempty"`
}

// Load reads and parses a YAML config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses config content from bytes and fills in defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.setDefaults()
	return &cfg, nil
}

func (c *Config) setDefaults() {
	if len(c.SourceExtensions) == 0 {
		c.SourceExtensions = append([]string{}, DefaultSourceExtensions...)
	}
}

// Find searches for pyscope.yaml (or pyscope.yml) starting from dir and
// walking up to parent directories, the same upward search
// internal/ext.FindConfig in the teacher uses for funxy.yaml. Returns an
// empty path and nil error when no config file is found anywhere above dir.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	for {
		for _, name := range []string{"pyscope.yaml", "pyscope.yml"} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// HasSourceExt reports whether path ends with one of c's recognized source
// extensions.
func (c *Config) HasSourceExt(path string) bool {
	ext := filepath.Ext(path)
	for _, want := range c.SourceExtensions {
		if ext == want {
			return true
		}
	}
	return false
}

// ToOptions projects the fields normalize.Options actually needs out of the
// full config.
func (c *Config) ToOptions() normalize.Options {
	return normalize.Options{Platform: c.Platform, UseForwardReferences: c.UseForwardReferences}
}
