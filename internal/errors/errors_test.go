package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapPreservesCode(t *testing.T) {
	base := ConfigInvalid("bad alpha")
	wrapped := Wrap(base, "loading config")

	assert.Equal(t, CodeConfigInvalid, GetCode(wrapped))
	assert.True(t, IsAppError(wrapped))
	assert.ErrorIs(t, wrapped, base)
}

func TestWrapOfPlainErrorDefaultsToInternal(t *testing.T) {
	wrapped := Wrap(errors.New("boom"), "doing something")
	assert.Equal(t, CodeInternalError, GetCode(wrapped))
}

func TestWrapOfNilIsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "unused"))
}

func TestGetCodeOfNonAppErrorIsUnknown(t *testing.T) {
	assert.Equal(t, "UNKNOWN", GetCode(errors.New("plain")))
}

func TestWithCodeOverridesCode(t *testing.T) {
	err := WithCode(CodeIOError, errors.New("disk full"))
	assert.Equal(t, CodeIOError, GetCode(err))
}
