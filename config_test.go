package umbra

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "umbra.toml", `
scale = 2.0
rtl_mirroring = true

[logging]
path = "umbra.log"
max_size_mb = 25
console = false
development = true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, float32(2), cfg.Scale)
	assert.True(t, cfg.RTLMirroring)
	assert.Equal(t, "umbra.log", cfg.Logging.Path)
	assert.Equal(t, 25, cfg.Logging.MaxSizeMB)
	assert.False(t, cfg.Logging.Console)
	// Unspecified fields keep their defaults.
	assert.Equal(t, 5, cfg.Logging.MaxBackups)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		assert.Error(t, err)
	})

	t.Run("malformed toml", func(t *testing.T) {
		path := writeFile(t, "bad.toml", `scale = [`)
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})

	t.Run("invalid scale", func(t *testing.T) {
		path := writeFile(t, "zero.toml", `scale = 0.0`)
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.NotNil(t, cfg.SolverConfig())
	assert.NotNil(t, cfg.Logger())
}

func TestLoadScene(t *testing.T) {
	path := writeFile(t, "scene.toml", `
width = 320.0
height = 480.0
direction = "rtl"

[root]
kind = "View"

[root.style]
width = "100%"

[[root.children]]
kind = "Paragraph"
intrinsic_width = 100.0
intrinsic_height = 40.0
`)

	scene, err := LoadScene(path)
	require.NoError(t, err)

	assert.Equal(t, WidgetView, scene.Root.Kind)
	require.Len(t, scene.Root.Children, 1)
	assert.Equal(t, WidgetParagraph, scene.Root.Children[0].Kind)

	max := scene.MaxSize()
	assert.Equal(t, float32(320), max.Width)
	assert.Equal(t, float32(480), max.Height)
	assert.Equal(t, "rtl", scene.Direction)
}

func TestLoadSceneRequiresRoot(t *testing.T) {
	path := writeFile(t, "empty.toml", `width = 100.0`)
	_, err := LoadScene(path)
	assert.Error(t, err)
}
