package layout

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultIntStart seeds the 32-bit field of every generated element.
	DefaultIntStart int32 = 0x7
	// DefaultLongStart seeds the 64-bit field of every generated element.
	DefaultLongStart int64 = 0x12345678abcdef12
)

// Config holds the values the harness sets once before the kernels and the
// verifier run. Buffers are addressed by (x, y) in [0,DimX) x [0,DimY).
type Config struct {
	DimX      int   `yaml:"dimX"`
	DimY      int   `yaml:"dimY"`
	IntStart  int32 `yaml:"intStart"`
	LongStart int64 `yaml:"longStart"`
}

// DefaultConfig returns a config for a dimX by dimY grid with the standard seeds.
func DefaultConfig(dimX, dimY int) Config {
	return Config{
		DimX:      dimX,
		DimY:      dimY,
		IntStart:  DefaultIntStart,
		LongStart: DefaultLongStart,
	}
}

// LoadConfig reads a YAML config file. Keys missing from the file keep their
// DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML document on top of DefaultConfig(1, 1).
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig(1, 1)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the grid is non-empty.
func (c Config) Validate() error {
	if c.DimX <= 0 || c.DimY <= 0 {
		return fmt.Errorf("grid dimensions must be positive, got %dx%d", c.DimX, c.DimY)
	}
	return nil
}

// Len is the number of elements in each buffer.
func (c Config) Len() int {
	return c.DimX * c.DimY
}

// Index maps a coordinate to its position in a dense buffer.
func (c Config) Index(x, y int) int {
	return y*c.DimX + x
}

// ExpectedInt is the value the 32-bit field holds at (x, y), array slot idx.
// The sum wraps like the C int arithmetic it reproduces.
func (c Config) ExpectedInt(x, y, idx int) int32 {
	return c.IntStart + int32(c.Index(x, y)+idx)
}

// ExpectedLong is the value the 64-bit field holds at (x, y), array slot idx.
func (c Config) ExpectedLong(x, y, idx int) int64 {
	return c.LongStart + int64(c.Index(x, y)+idx)
}
