package render

import (
	"context"
	stderrors "errors"

	"codeberg.org/mutker/mqttviz/internal/errors"
	"codeberg.org/mutker/mqttviz/internal/telemetry"
)

// Multi draws every frame on each of its renderers. One failing renderer
// does not keep the others from drawing.
type Multi struct {
	renderers []Renderer
}

func NewMulti(renderers ...Renderer) (*Multi, error) {
	live := make([]Renderer, 0, len(renderers))
	for _, r := range renderers {
		if r != nil {
			live = append(live, r)
		}
	}
	if len(live) == 0 {
		return nil, errors.New().New(ErrNoRenderers)
	}

	return &Multi{renderers: live}, nil
}

func (m *Multi) Draw(ctx context.Context, frame telemetry.Frame) error {
	var errs []error
	for _, r := range m.renderers {
		if err := r.Draw(ctx, frame); err != nil {
			errs = append(errs, err)
		}
	}

	return stderrors.Join(errs...)
}

func (m *Multi) Close() error {
	var errs []error
	for _, r := range m.renderers {
		if err := r.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if err := stderrors.Join(errs...); err != nil {
		return errors.New().Wrap(ErrCloseFailed, err)
	}

	return nil
}
