package runner

import (
	"fmt"
	"unsafe"

	"github.com/notargets/structpack/layout"
)

// ============================================================================
// Public API for copying buffers between host and device
// ============================================================================

// checkHostBuffer rejects a host buffer whose elements are not laid out like
// the device records, which would shift every field after the first padding
func checkHostBuffer[T any](kr *Runner, name string, n int) (ArrayMetadata, error) {
	metadata, exists := kr.arrayMetadata[name]
	if !exists {
		return ArrayMetadata{}, fmt.Errorf("array %s not found", name)
	}

	elementSize := layout.SizeOf[T]()
	if elementSize != metadata.spec.ElementSize {
		var sample T
		return ArrayMetadata{}, fmt.Errorf("layout mismatch for %s: host %T is %d bytes, device element is %d bytes",
			name, sample, elementSize, metadata.spec.ElementSize)
	}
	if n != metadata.spec.Count {
		return ArrayMetadata{}, fmt.Errorf("size mismatch for %s: host has %d elements, device has %d",
			name, n, metadata.spec.Count)
	}
	return metadata, nil
}

// CopyArrayToHost copies a device buffer into a new host slice
func CopyArrayToHost[T any](kr *Runner, name string) ([]T, error) {
	metadata, exists := kr.arrayMetadata[name]
	if !exists {
		return nil, fmt.Errorf("array %s not found", name)
	}

	result := make([]T, metadata.spec.Count)
	if err := CopyIntoHost(kr, name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// CopyIntoHost copies a device buffer into the raw bytes of dst, padding
// included
func CopyIntoHost[T any](kr *Runner, name string, dst []T) error {
	metadata, err := checkHostBuffer[T](kr, name, len(dst))
	if err != nil {
		return err
	}

	memory := kr.GetMemory(name)
	if memory == nil {
		return fmt.Errorf("memory for %s not found", name)
	}

	raw := layout.Bytes(dst)
	if int64(len(raw)) != int64(metadata.spec.Count)*metadata.spec.ElementSize {
		return fmt.Errorf("size mismatch for %s: host buffer is %d bytes", name, len(raw))
	}
	memory.CopyTo(unsafe.Pointer(&raw[0]), int64(len(raw)))
	return nil
}

// CopyArrayToDevice copies the raw bytes of a host slice, padding included,
// into a device buffer
func CopyArrayToDevice[T any](kr *Runner, name string, src []T) error {
	metadata, err := checkHostBuffer[T](kr, name, len(src))
	if err != nil {
		return err
	}

	memory := kr.GetMemory(name)
	if memory == nil {
		return fmt.Errorf("memory for %s not found", name)
	}

	raw := layout.Bytes(src)
	if int64(len(raw)) != int64(metadata.spec.Count)*metadata.spec.ElementSize {
		return fmt.Errorf("size mismatch for %s: host buffer is %d bytes", name, len(raw))
	}
	memory.CopyFrom(unsafe.Pointer(&raw[0]), int64(len(raw)))
	return nil
}
