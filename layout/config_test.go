package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Expected(t *testing.T) {
	cfg := DefaultConfig(2, 2)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 4, cfg.Len())
	assert.Equal(t, 3, cfg.Index(1, 1))
	assert.Equal(t, int32(10), cfg.ExpectedInt(1, 1, 0))
	assert.Equal(t, DefaultLongStart+3, cfg.ExpectedLong(1, 1, 0))
	assert.Equal(t, int32(12), cfg.ExpectedInt(1, 1, 2))
	assert.Equal(t, DefaultLongStart+5, cfg.ExpectedLong(1, 1, 2))
}

func TestConfig_Validate(t *testing.T) {
	for _, cfg := range []Config{
		DefaultConfig(0, 1),
		DefaultConfig(1, 0),
		DefaultConfig(-3, 2),
	} {
		assert.Error(t, cfg.Validate(), "%dx%d", cfg.DimX, cfg.DimY)
	}
	assert.NoError(t, DefaultConfig(1, 1).Validate())
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte("dimX: 5\ndimY: 3\n"))
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.DimX)
	assert.Equal(t, 3, cfg.DimY)
	assert.Equal(t, DefaultIntStart, cfg.IntStart)
	assert.Equal(t, DefaultLongStart, cfg.LongStart)

	cfg, err = ParseConfig([]byte("dimX: 1\ndimY: 1\nintStart: -4\nlongStart: 100\n"))
	require.NoError(t, err)
	assert.Equal(t, int32(-4), cfg.IntStart)
	assert.Equal(t, int64(100), cfg.LongStart)

	_, err = ParseConfig([]byte("dimX: 0\n"))
	assert.Error(t, err)

	_, err = ParseConfig([]byte("dimX: [\n"))
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dimX: 8\ndimY: 4\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Len())

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
