package runner

import (
	"fmt"
	"unsafe"

	"github.com/notargets/structpack/kernels"
	"github.com/notargets/structpack/layout"
	"github.com/notargets/structpack/logging"
	"go.uber.org/zap"
)

// RunKernel executes a built kernel. Grid scalars are passed first when the
// kernel takes them, followed by the kernel's buffers in declaration order.
func (kr *Runner) RunKernel(name string) error {
	spec, exists := kr.kernelSpecs[name]
	if !exists {
		return fmt.Errorf("kernel %s not built - use BuildKernel first", name)
	}
	kernel := kr.Kernels[name]

	args, err := kr.buildKernelArguments(spec)
	if err != nil {
		return fmt.Errorf("failed to build arguments for %s: %w", name, err)
	}

	if err := kernel.RunWithArgs(args...); err != nil {
		return fmt.Errorf("kernel %s execution failed: %w", name, err)
	}
	kr.Device.Finish()
	return nil
}

func (kr *Runner) buildKernelArguments(spec kernels.Spec) ([]interface{}, error) {
	var args []interface{}

	if spec.Scalars {
		args = append(args,
			int32(kr.Grid.DimX),
			int32(kr.Grid.DimY),
			kr.Grid.IntStart,
			kr.Grid.LongStart,
		)
	}

	for _, buf := range spec.Buffers {
		mem, exists := kr.PooledMemory[buf.Name]
		if !exists {
			return nil, fmt.Errorf("memory for %s not found", buf.Name)
		}
		args = append(args, mem)
	}
	return args, nil
}

// Generate runs setStruct and setArrayOfStruct over the grid, filling the
// device A and B buffers
func (kr *Runner) Generate() error {
	if !kr.IsAllocated {
		return fmt.Errorf("device memory not allocated - call AllocateDevice first")
	}
	for _, name := range []string{kernels.SetStructName, kernels.SetArrayOfStructName} {
		if err := kr.RunKernel(name); err != nil {
			return err
		}
	}
	logging.Logger().Debug("populated buffers on device",
		zap.String("fixture", kr.Fixture.Name),
		zap.Int("dimX", kr.Grid.DimX), zap.Int("dimY", kr.Grid.DimY))
	return nil
}

// VerifyOnDevice runs the verify kernel against the device buffers and
// reports whether any field mismatched
func (kr *Runner) VerifyOnDevice() (failed bool, err error) {
	if !kr.IsAllocated {
		return false, fmt.Errorf("device memory not allocated - call AllocateDevice first")
	}

	flag := []int32{0}
	if err := CopyArrayToDevice(kr, "failed", flag); err != nil {
		return false, err
	}
	if err := kr.RunKernel(kernels.VerifyName); err != nil {
		return false, err
	}
	if err := CopyIntoHost(kr, "failed", flag); err != nil {
		return false, err
	}
	return flag[0] != 0, nil
}

// DeviceLayout is the record layout as compiled for the device
type DeviceLayout struct {
	ElemSize   int64
	NestedSize int64
	OffsetI    int64
	OffsetL    int64
}

// ProbeLayout asks the device compiler how it laid out the fixture records
func (kr *Runner) ProbeLayout() (DeviceLayout, error) {
	if _, exists := kr.Kernels[kernels.ProbeLayoutName]; !exists {
		if _, err := kr.BuildKernel(kernels.ProbeLayoutSpec); err != nil {
			return DeviceLayout{}, err
		}
	}

	out := make([]int64, 4)
	mem := kr.Device.Malloc(int64(len(out)*8), unsafe.Pointer(&out[0]), nil)
	defer mem.Free()

	if err := kr.Kernels[kernels.ProbeLayoutName].RunWithArgs(mem); err != nil {
		return DeviceLayout{}, fmt.Errorf("kernel %s execution failed: %w", kernels.ProbeLayoutName, err)
	}
	kr.Device.Finish()
	mem.CopyTo(unsafe.Pointer(&out[0]), int64(len(out)*8))

	return DeviceLayout{
		ElemSize:   out[0],
		NestedSize: out[1],
		OffsetI:    out[2],
		OffsetL:    out[3],
	}, nil
}

// CheckLayout compares the device layout with the host declarations S and N
func CheckLayout[S, N any](kr *Runner) error {
	got, err := kr.ProbeLayout()
	if err != nil {
		return err
	}

	host := layout.Describe[S]()
	want := DeviceLayout{
		ElemSize:   int64(host.Size),
		NestedSize: layout.SizeOf[N](),
		OffsetI:    int64(host.FieldOffs["i"]),
		OffsetL:    int64(host.FieldOffs["l"]),
	}
	if got != want {
		logging.Logger().Warn("host and device layouts differ",
			zap.String("fixture", kr.Fixture.Name),
			zap.Any("host", want), zap.Any("device", got))
		return fmt.Errorf("layout mismatch for %s: host %+v, device %+v", kr.Fixture.Name, want, got)
	}
	return nil
}
