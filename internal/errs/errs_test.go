package errs_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/init-pkg/report-parser/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapAppErrorDefaults(t *testing.T) {
	cause := errors.New("boom")

	err := errs.WrapAppError(cause, &errs.ErrorOpts{})

	require.NotNil(t, err)
	assert.Equal(t, errs.CodeInternal, err.Code())
	assert.Equal(t, http.StatusInternalServerError, err.Status())
	assert.Equal(t, "boom", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestWrapAppErrorKeepsExistingAppError(t *testing.T) {
	inner := errs.BadRequest("bad url", nil)
	wrapped := fmt.Errorf("fetch: %w", inner)

	err := errs.WrapAppError(wrapped, &errs.ErrorOpts{})

	assert.Equal(t, errs.CodeBadRequest, err.Code())
	assert.Equal(t, http.StatusBadRequest, err.Status())
}

func TestWrapAppErrorNil(t *testing.T) {
	assert.Nil(t, errs.WrapAppError(nil, &errs.ErrorOpts{}))
}

func TestNewAppError(t *testing.T) {
	err := errs.NewAppError(&errs.ErrorOpts{
		Code:    errs.CodeFetchFailed,
		Status:  http.StatusBadGateway,
		Details: map[string]int{"status": 404},
	})

	assert.Equal(t, "Bad Gateway", err.Error())
	assert.Equal(t, map[string]int{"status": 404}, err.Details())

	got, ok := errs.As(fmt.Errorf("wrapped: %w", err))
	require.True(t, ok)
	assert.Equal(t, errs.CodeFetchFailed, got.Code())
}
