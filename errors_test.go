package onpage_test

import (
	"errors"
	"testing"

	"github.com/hricks/onpage"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := onpage.Errorf(onpage.ENOTFOUND, "job %q not found", "test")

	assert.Equal(t, onpage.ENOTFOUND, onpage.ErrorCode(err))
	assert.Equal(t, "job \"test\" not found", onpage.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, onpage.ErrorCode(nil))
}

func TestErrorCode_NonAppError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, onpage.EINTERNAL, onpage.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, onpage.ErrorMessage(nil))
}

func TestErrorMessage_NonAppError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Internal error.", onpage.ErrorMessage(errors.New("boom")))
}
