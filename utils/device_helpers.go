package utils

import (
	"fmt"

	"github.com/notargets/gocca"
	"github.com/notargets/structpack/logging"
	"go.uber.org/zap"
)

// DefaultBackends are tried in order by CreateDevice when no mode is given
var DefaultBackends = []string{
	`{"mode": "OpenMP"}`,
	`{"mode": "CUDA", "device_id": 0}`,
	`{"mode": "Serial"}`,
}

// BackendProps returns the OCCA device properties for a mode name
func BackendProps(mode string) (string, error) {
	switch mode {
	case "Serial", "OpenMP":
		return fmt.Sprintf(`{"mode": "%s"}`, mode), nil
	case "CUDA", "HIP", "OpenCL":
		return fmt.Sprintf(`{"mode": "%s", "platform_id": 0, "device_id": 0}`, mode), nil
	default:
		return "", fmt.Errorf("unknown device mode %q", mode)
	}
}

// CreateDevice creates a device in the given mode, or the first available of
// DefaultBackends when mode is empty
func CreateDevice(mode string) (*gocca.OCCADevice, error) {
	backends := DefaultBackends
	if mode != "" {
		props, err := BackendProps(mode)
		if err != nil {
			return nil, err
		}
		backends = []string{props}
	}

	var lastErr error
	for _, props := range backends {
		device, err := gocca.NewDevice(props)
		if err == nil {
			logging.Logger().Info("created device", zap.String("mode", device.Mode()))
			return device, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("failed to create any device: %w", lastErr)
}

// CreateTestDevice creates a Device for testing, preferring parallel backends
func CreateTestDevice() (*gocca.OCCADevice, error) {
	return CreateDevice("")
}
