package harness

import (
	"context"
	"fmt"

	"github.com/notargets/gocca"
	"github.com/notargets/structpack/kernels"
	"github.com/notargets/structpack/layout"
	"github.com/notargets/structpack/logging"
	"github.com/notargets/structpack/runner"
	"github.com/notargets/structpack/verifier"
	"go.uber.org/zap"
)

func layoutTest[S layout.Small, N layout.Nested[S]](name string, cfg layout.Config,
	populate func(ctx context.Context, cfg layout.Config) ([]S, []N, error)) *UnitTest {
	return NewUnitTest(name, func(ctx context.Context, n verifier.Notifier) error {
		a, b, err := populate(ctx, cfg)
		if err != nil {
			return err
		}
		_, err = verifier.Test(ctx, name, cfg, a, b, n)
		return err
	})
}

func deviceTest[S layout.Small, N layout.Nested[S]](name string, device *gocca.OCCADevice,
	fixture layout.Fixture, cfg layout.Config) *UnitTest {
	return NewUnitTest(name, func(ctx context.Context, n verifier.Notifier) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		kr := runner.NewRunner(device, cfg, fixture)
		defer kr.Free()

		a, b, err := runner.Populate[S, N](kr)
		if err != nil {
			return err
		}
		_, err = reportDeviceResult(ctx, name, kr, a, b, n)
		return err
	})
}

// reportDeviceResult verifies the host copies a and b, runs the verify kernel
// against the device buffers, and reports FAIL if either side mismatched.
func reportDeviceResult[S layout.Small, N layout.Nested[S]](ctx context.Context, name string,
	kr *runner.Runner, a []S, b []N, n verifier.Notifier) (verifier.Result, error) {
	res, err := verifier.Verify(kr.Grid, a, b)
	if err != nil {
		return verifier.Result{}, fmt.Errorf("%s: %w", name, err)
	}
	deviceFailed, err := kr.VerifyOnDevice()
	if err != nil {
		return verifier.Result{}, fmt.Errorf("%s: %w", name, err)
	}
	if deviceFailed {
		logging.Logger().Debug("device verify kernel reported a mismatch", zap.String("test", name))
	}

	res.Name = name
	res.Failed = res.Failed || deviceFailed
	return res, verifier.Report(ctx, res, n)
}

// SmallStructTest populates the small_struct buffers with the host kernels
// and verifies them.
func SmallStructTest(cfg layout.Config) *UnitTest {
	return layoutTest("small_struct", cfg, kernels.PopulateSmallStruct)
}

// SmallStruct2Test is SmallStructTest for the trailing padding layout.
func SmallStruct2Test(cfg layout.Config) *UnitTest {
	return layoutTest("small_struct_2", cfg, kernels.PopulateSmallStruct2)
}

// DeviceSmallStructTest populates the small_struct buffers on device, then
// verifies both the copy brought back to the host and the device buffers.
func DeviceSmallStructTest(device *gocca.OCCADevice, cfg layout.Config) *UnitTest {
	return deviceTest[layout.SmallStruct, layout.StructOfStruct]("small_struct", device,
		layout.SmallStructFixture, cfg)
}

// DeviceSmallStruct2Test is DeviceSmallStructTest for small_struct_2.
func DeviceSmallStruct2Test(device *gocca.OCCADevice, cfg layout.Config) *UnitTest {
	return deviceTest[layout.SmallStruct2, layout.StructOfStruct2]("small_struct_2", device,
		layout.SmallStruct2Fixture, cfg)
}

// DefaultTests returns the layout tests for cfg, run on device when one is
// given and on the host otherwise.
func DefaultTests(device *gocca.OCCADevice, cfg layout.Config) []*UnitTest {
	if device == nil {
		return []*UnitTest{SmallStructTest(cfg), SmallStruct2Test(cfg)}
	}
	return []*UnitTest{DeviceSmallStructTest(device, cfg), DeviceSmallStruct2Test(device, cfg)}
}
