package errors

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDetailErr(t *testing.T) {
	assert.Nil(t, NewDetailErr(nil, ErrIO, "nothing"))

	err := NewDetailErr(io.ErrUnexpectedEOF, ErrIO, "read mnpayments.dat")
	assert.Equal(t, "read mnpayments.dat: unexpected EOF", err.Error())
	assert.Equal(t, ErrIO, err.GetErrCode())
	assert.Equal(t, io.ErrUnexpectedEOF, RootErr(err))
	assert.NotEmpty(t, err.GetCallStack().String())

	assert.True(t, errors.Is(err, ErrIO))
	assert.False(t, errors.Is(err, ErrChecksumMismatch))
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

func TestCode(t *testing.T) {
	err := fmt.Errorf("load: %w",
		NewDetailErr(ErrMagicMismatch, ErrMagicMismatch, ""))
	assert.Equal(t, ErrMagicMismatch, Code(err))
	assert.Equal(t, ErrChecksumMismatch, Code(ErrChecksumMismatch))
	assert.Equal(t, ErrNoCode, Code(io.EOF))
	assert.Equal(t, Success, Code(nil))
}
