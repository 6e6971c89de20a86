package runner

import (
	"fmt"

	"github.com/notargets/structpack/layout"
)

// Populate prepares the runner, checks that the device lays the records out
// like S and N, runs the generator kernels and copies A and B back to the host
func Populate[S layout.Small, N layout.Nested[S]](kr *Runner) ([]S, []N, error) {
	if !kr.IsAllocated {
		if err := kr.AllocateDevice(); err != nil {
			return nil, nil, err
		}
	}
	if err := kr.BuildKernels(); err != nil {
		return nil, nil, err
	}
	if err := CheckLayout[S, N](kr); err != nil {
		return nil, nil, err
	}
	if err := kr.Generate(); err != nil {
		return nil, nil, err
	}

	a, err := CopyArrayToHost[S](kr, "A")
	if err != nil {
		return nil, nil, fmt.Errorf("copy A to host: %w", err)
	}
	b, err := CopyArrayToHost[N](kr, "B")
	if err != nil {
		return nil, nil, fmt.Errorf("copy B to host: %w", err)
	}
	return a, b, nil
}
