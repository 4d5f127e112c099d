package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/SIDHANTH-S/dev-scope/internal/graph"
)

// ProjectConfig holds project-level settings loaded from .devscope.yml.
type ProjectConfig struct {
	Category    string       `yaml:"category,omitempty"`
	ExcludeDirs []string     `yaml:"excludeDirs,omitempty"`
	CachePath   string       `yaml:"cachePath,omitempty"`
	Verbose     bool         `yaml:"verbose,omitempty"`
	C4Overrides *C4Overrides `yaml:"c4Overrides,omitempty"`
}

// C4Overrides lets users pin abstraction levels: by path substring or by
// node kind. Keys are level names (system, container, component, code).
type C4Overrides struct {
	PathContains map[string][]string `yaml:"pathContains,omitempty"`
	NodeTypes    map[string][]string `yaml:"nodeTypes,omitempty"`
}

// Load attempts to read .devscope.yml or .devscope.yaml from the given
// directory. Returns a zero-value config (not an error) if no config file
// exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{".devscope.yml", ".devscope.yaml"} {
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

// Overrides converts the YAML override tables into classifier overrides.
// Unrecognized level names are dropped rather than rejected.
func (c *ProjectConfig) Overrides() graph.Overrides {
	var out graph.Overrides
	if c.C4Overrides == nil {
		return out
	}
	valid := make(map[graph.Level]bool, len(graph.Levels))
	for _, l := range graph.Levels {
		valid[l] = true
	}

	if len(c.C4Overrides.PathContains) > 0 {
		out.PathContains = make(map[graph.Level][]string)
		for name, fragments := range c.C4Overrides.PathContains {
			if level := graph.Level(name); valid[level] {
				out.PathContains[level] = fragments
			}
		}
	}
	if len(c.C4Overrides.NodeTypes) > 0 {
		out.NodeKinds = make(map[graph.Level][]string)
		for name, kinds := range c.C4Overrides.NodeTypes {
			if level := graph.Level(name); valid[level] {
				out.NodeKinds[level] = kinds
			}
		}
	}
	return out
}
