package sensor

import (
	"codeberg.org/mutker/mqttviz/internal/config"
	"codeberg.org/mutker/mqttviz/internal/errors"
	"codeberg.org/mutker/mqttviz/internal/logger"
)

// FromConfig builds the source named by cfg.Source
func FromConfig(cfg *config.Config, log logger.Logger) (Source, error) {
	switch cfg.Source {
	case config.SourceUniform:
		return NewUniform(cfg.TempMin, cfg.TempMax, 0)
	case config.SourceCounter:
		return NewCounter(), nil
	case config.SourceGPU:
		return NewGPU(log)
	default:
		return nil, errors.New().WithData(ErrSourceUnavailable, cfg.Source)
	}
}
