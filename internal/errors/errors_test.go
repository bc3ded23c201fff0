package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"codeberg.org/mutker/mqttviz/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	errFactory := errors.New()

	assert.Equal(t, "Invalid interval value", errFactory.New(errors.ErrInvalidInterval).Error())
	assert.Equal(t, "custom", errFactory.WithMessage(errors.ErrInvalidConfig, "custom").Error())
	assert.Equal(t, "Invalid window size: -1", errFactory.WithData(errors.ErrInvalidWindowSize, -1).Error())
}

func TestCodesSurviveWrapping(t *testing.T) {
	errFactory := errors.New()

	cause := stderrors.New("dial tcp: refused")
	err := fmt.Errorf("starting: %w", errFactory.Wrap(errors.ErrInitFailed, cause))

	assert.True(t, errors.HasCode(err, errors.ErrInitFailed))
	assert.False(t, errors.HasCode(err, errors.ErrShutdownFailed))
	assert.Equal(t, errors.ErrInitFailed, errors.CodeOf(err))
	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, errFactory.New(errors.ErrInitFailed)))
	assert.Equal(t, errors.ErrorCode(""), errors.CodeOf(cause))
}
