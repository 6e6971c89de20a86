package kernels

import (
	"context"
	"strings"
	"testing"

	"github.com/notargets/structpack/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetStruct_Formula(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {2, 2}, {7, 3}, {16, 9}} {
		cfg := layout.DefaultConfig(dims[0], dims[1])
		for x := 0; x < cfg.DimX; x++ {
			for y := 0; y < cfg.DimY; y++ {
				n := y*cfg.DimX + x
				v := SetStruct(cfg, x, y)
				require.Equal(t, layout.DefaultIntStart+int32(n), v.I, "(%d,%d)", x, y)
				require.Equal(t, layout.DefaultLongStart+int64(n), v.L, "(%d,%d)", x, y)

				v2 := SetStruct2(cfg, x, y)
				require.Equal(t, v.I, v2.I)
				require.Equal(t, v.L, v2.L)
			}
		}
	}
}

func TestSetArrayOfStruct_Formula(t *testing.T) {
	cfg := layout.DefaultConfig(5, 4)
	for x := 0; x < cfg.DimX; x++ {
		for y := 0; y < cfg.DimY; y++ {
			n := y*cfg.DimX + x
			v := SetArrayOfStruct(cfg, x, y)
			v2 := SetArrayOfStruct2(cfg, x, y)
			for idx := 0; idx < layout.ArrayLen; idx++ {
				require.Equal(t, layout.DefaultIntStart+int32(n+idx), v.Arr[idx].I)
				require.Equal(t, layout.DefaultLongStart+int64(n+idx), v.Arr[idx].L)
				require.Equal(t, v.Arr[idx].I, v2.Arr[idx].I)
				require.Equal(t, v.Arr[idx].L, v2.Arr[idx].L)
			}
		}
	}
}

func TestPopulate(t *testing.T) {
	ctx := context.Background()

	t.Run("2x2", func(t *testing.T) {
		cfg := layout.DefaultConfig(2, 2)
		a, b, err := PopulateSmallStruct(ctx, cfg)
		require.NoError(t, err)
		require.Len(t, a, 4)
		require.Len(t, b, 4)

		assert.Equal(t, int32(10), a[cfg.Index(1, 1)].I)
		assert.Equal(t, layout.DefaultLongStart+3, a[cfg.Index(1, 1)].L)
		assert.Equal(t, int32(12), b[cfg.Index(1, 1)].Arr[2].I)
	})

	t.Run("1x1", func(t *testing.T) {
		a, b, err := PopulateSmallStruct2(ctx, layout.DefaultConfig(1, 1))
		require.NoError(t, err)
		assert.Equal(t, layout.DefaultIntStart, a[0].I)
		assert.Equal(t, layout.DefaultIntStart+2, b[0].Arr[2].I)
	})

	t.Run("wrong_length", func(t *testing.T) {
		cfg := layout.DefaultConfig(3, 3)
		err := ForEach(ctx, cfg, make([]layout.SmallStruct, 4), SetStruct)
		assert.Error(t, err)
	})

	t.Run("invalid_grid", func(t *testing.T) {
		_, _, err := PopulateSmallStruct(ctx, layout.DefaultConfig(0, 3))
		assert.Error(t, err)
	})

	t.Run("cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, _, err := PopulateSmallStruct(cctx, layout.DefaultConfig(4, 4))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSpecs(t *testing.T) {
	names := make(map[string]bool)
	for _, spec := range Specs {
		assert.False(t, names[spec.Name], "duplicate kernel %s", spec.Name)
		names[spec.Name] = true
		assert.NotEmpty(t, spec.Buffers, spec.Name)
		assert.True(t, strings.Contains(spec.Body, "@outer"), spec.Name)
		assert.True(t, strings.Contains(spec.Body, "@inner"), spec.Name)
	}
	assert.Contains(t, SetArrayOfStructSpec.Body, "ARRAY_LEN")
	assert.Contains(t, VerifySpec.Body, "failed[0] = 1")
	assert.False(t, ProbeLayoutSpec.Scalars)
}
