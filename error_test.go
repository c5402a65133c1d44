package c2cgpx_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/c2cgpx"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := c2cgpx.Errorf(c2cgpx.ENOLOCALE, "document %d has no locale", 42)

	assert.Equal(t, c2cgpx.ENOLOCALE, c2cgpx.ErrorCode(err))
	assert.Equal(t, "document 42 has no locale", c2cgpx.ErrorMessage(err))
	assert.Contains(t, err.Error(), "code=no_locale")
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("fetch routes/1: %w", c2cgpx.Errorf(c2cgpx.EREQUEST, "HTTP 503"))

	assert.Equal(t, c2cgpx.EREQUEST, c2cgpx.ErrorCode(err))
	assert.Equal(t, "HTTP 503", c2cgpx.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, c2cgpx.EINTERNAL, c2cgpx.ErrorCode(err))
	assert.Equal(t, "Internal error.", c2cgpx.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, c2cgpx.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, c2cgpx.ErrorMessage(nil))
}
