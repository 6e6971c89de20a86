package kernels

import (
	"context"
	"fmt"

	"github.com/notargets/structpack/layout"
	"github.com/notargets/structpack/logging"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Kernel maps a coordinate to the element stored there.
type Kernel[T any] func(cfg layout.Config, x, y int) T

// ForEach runs k once per coordinate of the grid and stores each result at
// cfg.Index(x, y) in out. Rows run concurrently; every goroutine writes a
// disjoint range of out so no locking is needed.
func ForEach[T any](ctx context.Context, cfg layout.Config, out []T, k Kernel[T]) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if len(out) != cfg.Len() {
		return fmt.Errorf("buffer holds %d elements, grid needs %d", len(out), cfg.Len())
	}

	g, ctx := errgroup.WithContext(ctx)
	for y := 0; y < cfg.DimY; y++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for x := 0; x < cfg.DimX; x++ {
				out[cfg.Index(x, y)] = k(cfg, x, y)
			}
			return nil
		})
	}
	return g.Wait()
}

// Populate fills a with setA and b with setB.
func Populate[S, N any](ctx context.Context, cfg layout.Config, a []S, b []N,
	setA Kernel[S], setB Kernel[N]) error {
	if err := ForEach(ctx, cfg, a, setA); err != nil {
		return fmt.Errorf("populate A: %w", err)
	}
	if err := ForEach(ctx, cfg, b, setB); err != nil {
		return fmt.Errorf("populate B: %w", err)
	}
	logging.Logger().Debug("populated buffers on host",
		zap.Int("dimX", cfg.DimX), zap.Int("dimY", cfg.DimY))
	return nil
}

// PopulateSmallStruct allocates and fills the small_struct buffers.
func PopulateSmallStruct(ctx context.Context, cfg layout.Config) ([]layout.SmallStruct, []layout.StructOfStruct, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	a := make([]layout.SmallStruct, cfg.Len())
	b := make([]layout.StructOfStruct, cfg.Len())
	if err := Populate(ctx, cfg, a, b, SetStruct, SetArrayOfStruct); err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// PopulateSmallStruct2 allocates and fills the small_struct_2 buffers.
func PopulateSmallStruct2(ctx context.Context, cfg layout.Config) ([]layout.SmallStruct2, []layout.StructOfStruct2, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	a := make([]layout.SmallStruct2, cfg.Len())
	b := make([]layout.StructOfStruct2, cfg.Len())
	if err := Populate(ctx, cfg, a, b, SetStruct2, SetArrayOfStruct2); err != nil {
		return nil, nil, err
	}
	return a, b, nil
}
