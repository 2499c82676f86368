package util

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapErrorf(t *testing.T) {
	err := WrapErrorf(io.ErrUnexpectedEOF, ErrInvariantViolation, "node %d", 3)

	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	assert.True(t, errors.Is(err, ErrInvariantViolation))
	assert.Equal(t, "node 3: unexpected EOF", err.Error())

	var e *Error
	assert.True(t, errors.As(err, &e))
	assert.Equal(t, ErrInvariantViolation, e.Code())

	noOrig := WrapErrorf(nil, ErrBadParamInput, "max level %d", 9)
	assert.Equal(t, "max level 9", noOrig.Error())
	assert.True(t, errors.Is(noOrig, ErrBadParamInput))
}

func TestAssertPanic(t *testing.T) {
	assert.Panics(t, func() { AssertPanic(false, "boom") })
	assert.NotPanics(t, func() { AssertPanic(true, "boom") })
}
