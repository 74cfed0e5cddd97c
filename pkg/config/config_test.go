package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_PartialFileOverridesOnlyNamedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "render.toml")
	contents := `
[render]
samples_per_pixel = 128
max_depth = 12
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 128, cfg.Render.SamplesPerPixel)
	assert.Equal(t, 12, cfg.Render.MaxDepth)
	// Untouched fields keep their Default() values.
	assert.Equal(t, Default().Render.Width, cfg.Render.Width)
	assert.Equal(t, Default().Render.Driver, cfg.Render.Driver)
}

func TestWriteThenLoad_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "render.toml")

	cfg := Default()
	cfg.Render.SamplesPerPixel = 64
	cfg.Camera.VFov = 55

	require.NoError(t, Write(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 64, loaded.Render.SamplesPerPixel)
	assert.Equal(t, 55.0, loaded.Camera.VFov)
}

func TestLoad_MissingFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	assert.Error(t, err)
}

func TestApply_OnlyOverridesSetFields(t *testing.T) {
	cfg := Default()
	cfg = Apply(cfg, Overrides{SamplesPerPixel: 200})

	assert.Equal(t, 200, cfg.Render.SamplesPerPixel)
	assert.Equal(t, Default().Render.Width, cfg.Render.Width)
}

func TestApply_ClampRadianceRequiresExplicitSetFlag(t *testing.T) {
	cfg := Default()
	cfg.Render.ClampRadiance = true

	// Not setting ClampRadianceSet must leave the existing value alone,
	// since false is also a valid override value.
	unchanged := Apply(cfg, Overrides{})
	assert.True(t, unchanged.Render.ClampRadiance)

	changed := Apply(cfg, Overrides{ClampRadianceSet: true, ClampRadiance: false})
	assert.False(t, changed.Render.ClampRadiance)
}

func TestIntegratorConfig_MapsFieldsCorrectly(t *testing.T) {
	cfg := Default()
	cfg.Render.MaxDepth = 7
	cfg.Render.RRMinBounces = 2
	cfg.Render.ClampRadiance = true

	ic := cfg.IntegratorConfig()
	assert.Equal(t, 7, ic.MaxDepth)
	assert.Equal(t, 2, ic.RussianRouletteMinBounces)
	assert.True(t, ic.ClampRadiance)
}

func TestCameraConfig_MapsVectorFields(t *testing.T) {
	cfg := Default()
	cfg.Camera.LookFrom = [3]float64{1, 2, 3}

	cc := cfg.CameraConfig()
	assert.Equal(t, 1.0, cc.LookFrom.X)
	assert.Equal(t, 2.0, cc.LookFrom.Y)
	assert.Equal(t, 3.0, cc.LookFrom.Z)
}
