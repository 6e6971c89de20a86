package runner

import (
	"fmt"

	"github.com/notargets/gocca"
	"github.com/notargets/structpack/kernels"
	"github.com/notargets/structpack/layout"
	"github.com/notargets/structpack/logging"
	"github.com/notargets/structpack/runner/builder"
	"go.uber.org/zap"
)

// cudaInnerLimit is the maximum @inner loop extent on CUDA
const cudaInnerLimit = 1024

// ArrayMetadata stores information about allocated arrays
type ArrayMetadata struct {
	spec builder.ArraySpec
	size int64 // allocation size in bytes
}

// Runner builds the fixture kernels for a device, owns the A and B device
// buffers and moves them across the host-device boundary
type Runner struct {
	*builder.Builder
	Device        *gocca.OCCADevice
	Kernels       map[string]*gocca.OCCAKernel
	PooledMemory  map[string]*gocca.OCCAMemory
	IsAllocated   bool
	arrayMetadata map[string]ArrayMetadata
	kernelSpecs   map[string]kernels.Spec
}

// NewRunner creates a new Runner instance
func NewRunner(device *gocca.OCCADevice, grid layout.Config, fixture layout.Fixture) (kr *Runner) {
	if device == nil {
		panic("device cannot be nil")
	}
	bld := builder.NewBuilder(grid, fixture)

	// Check CUDA @inner limit, x runs on @inner
	if device.Mode() == "CUDA" && grid.DimX > cudaInnerLimit {
		panic(fmt.Sprintf("CUDA @inner limit exceeded: DimX=%d but CUDA is limited to %d threads per @inner loop.",
			grid.DimX, cudaInnerLimit))
	}

	kr = &Runner{
		Builder:       bld,
		Device:        device,
		Kernels:       make(map[string]*gocca.OCCAKernel),
		PooledMemory:  make(map[string]*gocca.OCCAMemory),
		arrayMetadata: make(map[string]ArrayMetadata),
		kernelSpecs:   make(map[string]kernels.Spec),
	}
	return
}

// BuildKernel compiles and registers a kernel with the program
func (kr *Runner) BuildKernel(spec kernels.Spec) (*gocca.OCCAKernel, error) {
	kr.GeneratePreamble()

	// Combine preamble with kernel source
	fullSource := kr.KernelPreamble + "\n" + kr.GenerateKernel(spec)

	var kernel *gocca.OCCAKernel
	var err error

	if kr.Device.Mode() == "OpenMP" {
		// Workaround for OCCA bug: OpenMP doesn't get default -O3 flag
		props := gocca.JsonParse(`{"compiler_flags": "-O3"}`)
		defer props.Free()
		kernel, err = kr.Device.BuildKernelFromString(fullSource, spec.Name, props)
	} else {
		kernel, err = kr.Device.BuildKernelFromString(fullSource, spec.Name, nil)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to build kernel %s: %w", spec.Name, err)
	}
	if kernel == nil {
		return nil, fmt.Errorf("kernel build returned nil for %s", spec.Name)
	}

	if old, exists := kr.Kernels[spec.Name]; exists {
		old.Free()
	}
	kr.Kernels[spec.Name] = kernel
	kr.kernelSpecs[spec.Name] = spec

	logging.Logger().Debug("built kernel",
		zap.String("kernel", spec.Name),
		zap.String("fixture", kr.Fixture.Name),
		zap.String("mode", kr.Device.Mode()))
	return kernel, nil
}

// BuildKernels compiles every fixture kernel
func (kr *Runner) BuildKernels() error {
	for _, spec := range kernels.Specs {
		if _, err := kr.BuildKernel(spec); err != nil {
			return err
		}
	}
	return nil
}

// AllocateDevice allocates the A and B buffers and the failure flag
func (kr *Runner) AllocateDevice() error {
	if kr.IsAllocated {
		return fmt.Errorf("device memory already allocated")
	}

	specs := append(kr.BufferSpecs(), builder.ArraySpec{Name: "failed", Count: 1, ElementSize: 4})
	for _, spec := range specs {
		if err := kr.allocateSingleArray(spec); err != nil {
			return fmt.Errorf("failed to allocate %s: %w", spec.Name, err)
		}
	}

	kr.IsAllocated = true
	return nil
}

func (kr *Runner) allocateSingleArray(spec builder.ArraySpec) error {
	size := kr.CalculateAlignedSize(spec)
	if size <= 0 {
		return fmt.Errorf("array %s has no storage", spec.Name)
	}

	kr.PooledMemory[spec.Name] = kr.Device.Malloc(size, nil, nil)
	kr.AllocatedArrays = append(kr.AllocatedArrays, spec.Name)
	kr.arrayMetadata[spec.Name] = ArrayMetadata{
		spec: spec,
		size: size,
	}
	return nil
}

// GetMemory returns the device memory for a named array
func (kr *Runner) GetMemory(arrayName string) *gocca.OCCAMemory {
	return kr.PooledMemory[arrayName]
}

// GetArrayMetadata returns metadata for a named array
func (kr *Runner) GetArrayMetadata(arrayName string) (ArrayMetadata, bool) {
	meta, exists := kr.arrayMetadata[arrayName]
	return meta, exists
}

// ElementSize returns the device size of one element of the array
func (m ArrayMetadata) ElementSize() int64 {
	return m.spec.ElementSize
}

// Count returns the number of elements in the array
func (m ArrayMetadata) Count() int {
	return m.spec.Count
}

// Free releases all resources
func (kr *Runner) Free() {
	for _, kernel := range kr.Kernels {
		kernel.Free()
	}
	for _, mem := range kr.PooledMemory {
		mem.Free()
	}
	kr.Kernels = make(map[string]*gocca.OCCAKernel)
	kr.PooledMemory = make(map[string]*gocca.OCCAMemory)
	kr.IsAllocated = false
}
