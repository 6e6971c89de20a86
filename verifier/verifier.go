// Package verifier checks populated A and B buffers against the closed-form
// values the generator kernels produce and reports a single PASS or FAIL.
package verifier

import (
	"context"
	"fmt"

	"github.com/notargets/structpack/layout"
	"github.com/notargets/structpack/logging"
	"go.uber.org/zap"
)

// Result is the outcome of one verification pass. Mismatches is diagnostic;
// the outcome is Failed alone.
type Result struct {
	Name       string
	Failed     bool
	Mismatches int
}

// Message returns the code the result is reported with.
func (r Result) Message() Message {
	if r.Failed {
		return MsgTestFailed
	}
	return MsgTestPassed
}

// Diagnostic is the line logged when the result is reported.
func (r Result) Diagnostic() string {
	return fmt.Sprintf("%s test %s", r.Name, r.Message())
}

type sweep struct {
	log    *zap.Logger
	result Result
}

func (s *sweep) check(buffer, field string, x, y, idx int, got, want int64) {
	if got == want {
		return
	}
	s.result.Failed = true
	s.result.Mismatches++
	s.log.Debug("assertion failed",
		zap.String("buffer", buffer),
		zap.String("field", field),
		zap.Int("x", x), zap.Int("y", y), zap.Int("idx", idx),
		zap.Int64("got", got), zap.Int64("want", want))
}

// Verify sweeps A and then B over the whole grid. Every mismatch is folded
// into Result.Failed; the sweep never stops early. A buffer whose length does
// not match the grid is an error, not a failed result.
func Verify[S layout.Small, N layout.Nested[S]](cfg layout.Config, a []S, b []N) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if len(a) != cfg.Len() {
		return Result{}, fmt.Errorf("buffer A holds %d elements, grid needs %d", len(a), cfg.Len())
	}
	if len(b) != cfg.Len() {
		return Result{}, fmt.Errorf("buffer B holds %d elements, grid needs %d", len(b), cfg.Len())
	}

	s := &sweep{log: logging.Logger()}

	for x := 0; x < cfg.DimX; x++ {
		for y := 0; y < cfg.DimY; y++ {
			v := a[cfg.Index(x, y)]
			s.check("A", "i", x, y, 0, int64(v.Int()), int64(cfg.ExpectedInt(x, y, 0)))
			s.check("A", "l", x, y, 0, v.Long(), cfg.ExpectedLong(x, y, 0))
		}
	}

	for x := 0; x < cfg.DimX; x++ {
		for y := 0; y < cfg.DimY; y++ {
			v := b[cfg.Index(x, y)]
			for idx := 0; idx < layout.ArrayLen; idx++ {
				e := v.Elem(idx)
				s.check("B", "i", x, y, idx, int64(e.Int()), int64(cfg.ExpectedInt(x, y, idx)))
				s.check("B", "l", x, y, idx, e.Long(), cfg.ExpectedLong(x, y, idx))
			}
		}
	}

	return s.result, nil
}

// Test verifies the buffers, logs the diagnostic line and sends exactly one
// message through n, waiting for it to be acknowledged.
func Test[S layout.Small, N layout.Nested[S]](ctx context.Context, name string, cfg layout.Config,
	a []S, b []N, n Notifier) (Result, error) {
	res, err := Verify(cfg, a, b)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", name, err)
	}
	res.Name = name

	return res, Report(ctx, res, n)
}

// Report logs the diagnostic line for res and notifies the listener.
func Report(ctx context.Context, res Result, n Notifier) error {
	log := logging.Logger()
	if res.Failed {
		log.Warn(res.Diagnostic(), zap.Int("mismatches", res.Mismatches))
	} else {
		log.Info(res.Diagnostic())
	}

	if err := n.Notify(ctx, res.Message()); err != nil {
		return fmt.Errorf("notify %s: %w", res.Name, err)
	}
	return nil
}
