package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SIDHANTH-S/dev-scope/internal/graph"
)

func TestLoad_MissingFileReturnsZeroValue(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &ProjectConfig{}, cfg)
}

func TestLoad_ReadsYAML(t *testing.T) {
	dir := t.TempDir()
	content := `
category: react_vite
excludeDirs:
  - generated
  - fixtures
cachePath: .devscope-cache.db
verbose: true
c4Overrides:
  pathContains:
    system:
      - gateway
  nodeTypes:
    container:
      - service
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".devscope.yml"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "react_vite", cfg.Category)
	assert.Equal(t, []string{"generated", "fixtures"}, cfg.ExcludeDirs)
	assert.Equal(t, ".devscope-cache.db", cfg.CachePath)
	assert.True(t, cfg.Verbose)

	ov := cfg.Overrides()
	assert.Equal(t, []string{"gateway"}, ov.PathContains[graph.LevelSystem])
	assert.Equal(t, []string{"service"}, ov.NodeKinds[graph.LevelContainer])
}

func TestLoad_YamlExtensionFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".devscope.yaml"), []byte("verbose: true\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".devscope.yml"), []byte("category: [broken"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestOverrides_DropsUnknownLevels(t *testing.T) {
	cfg := &ProjectConfig{
		C4Overrides: &C4Overrides{
			PathContains: map[string][]string{
				"system":  {"gateway"},
				"cosmic":  {"nope"},
			},
		},
	}

	ov := cfg.Overrides()
	assert.Equal(t, []string{"gateway"}, ov.PathContains[graph.LevelSystem])
	_, exists := ov.PathContains[graph.Level("cosmic")]
	assert.False(t, exists)
}

func TestOverrides_NilC4Section(t *testing.T) {
	ov := (&ProjectConfig{}).Overrides()
	assert.Nil(t, ov.PathContains)
	assert.Nil(t, ov.NodeKinds)
}
