package sensor

import (
	"context"
	"strconv"
	"sync"

	"codeberg.org/mutker/mqttviz/internal/errors"
	"codeberg.org/mutker/mqttviz/internal/logger"
	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// GPU reads the core temperature of the first NVIDIA GPU through NVML.
type GPU struct {
	device nvml.Device
	name   string
	closed bool
	mu     sync.Mutex
	logger logger.Logger
}

func NewGPU(log logger.Logger) (*GPU, error) {
	errFactory := errors.New()

	if ret := nvml.Init(); ret != nvml.SUCCESS {
		return nil, errFactory.Wrap(ErrInitFailed, newNVMLError(ret))
	}

	count, ret := nvml.DeviceGetCount()
	if ret != nvml.SUCCESS {
		_ = nvml.Shutdown()
		return nil, errFactory.Wrap(ErrDeviceNotFound, newNVMLError(ret))
	}
	if count == 0 {
		_ = nvml.Shutdown()
		return nil, errFactory.WithMessage(ErrDeviceNotFound, "failed to find any NVIDIA GPUs")
	}

	// We'll use the first GPU (index 0)
	device, ret := nvml.DeviceGetHandleByIndex(0)
	if ret != nvml.SUCCESS {
		_ = nvml.Shutdown()
		return nil, errFactory.Wrap(ErrDeviceNotFound, newNVMLError(ret))
	}

	g := &GPU{device: device, logger: log}
	if name, ret := device.GetName(); ret == nvml.SUCCESS {
		g.name = name
		log.Info().Msgf("Detected GPU: %v", name)
	} else {
		log.Warn().Msgf("Failed to get GPU name: %v", nvml.ErrorString(ret))
	}

	return g, nil
}

func (g *GPU) Read(ctx context.Context) (Reading, error) {
	errFactory := errors.New()

	if err := ctx.Err(); err != nil {
		return Reading{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return Reading{}, errFactory.New(ErrReadAfterClose)
	}

	temp, ret := g.device.GetTemperature(nvml.TEMPERATURE_GPU)
	if ret != nvml.SUCCESS {
		return Reading{}, errFactory.Wrap(ErrTemperatureFailed, newNVMLError(ret))
	}

	return Reading{Value: float64(temp), Text: strconv.FormatUint(uint64(temp), 10)}, nil
}

// Name returns the GPU product name, if NVML reported one
func (g *GPU) Name() string {
	return g.name
}

func (g *GPU) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return nil
	}
	g.closed = true

	if ret := nvml.Shutdown(); ret != nvml.SUCCESS {
		return errors.New().Wrap(ErrShutdownFailed, newNVMLError(ret))
	}

	return nil
}
