package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundMatchesSentinel(t *testing.T) {
	err := NotFound("reports.AveragePrice", "no products found")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, ErrNotFound))
	assert.False(t, stderrors.Is(err, ErrInvalidArgument))
	assert.Equal(t, CodeNotFound, CodeOf(err))
	assert.Equal(t, "no products found", MessageOf(err))
	assert.Equal(t, "reports.AveragePrice: no products found (not_found)", err.Error())
}

func TestCodeSurvivesWrapping(t *testing.T) {
	inner := Invalid("services.CreateClient", "name is required")
	outer := fmt.Errorf("create client: %w", inner)

	assert.True(t, IsCode(outer, CodeValidation))
	assert.True(t, stderrors.Is(outer, ErrInvalidArgument))
	assert.Equal(t, "name is required", MessageOf(outer))
}

func TestUncodedErrorsAreInternal(t *testing.T) {
	plain := stderrors.New("connection reset")
	assert.Equal(t, CodeInternal, CodeOf(plain))
	assert.Equal(t, "connection reset", MessageOf(plain))

	wrapped := New(CodeConflict, "services.DeleteProduct", "product is still referenced", plain)
	assert.True(t, stderrors.Is(wrapped, plain))
	assert.True(t, stderrors.Is(wrapped, ErrConflict))
	assert.Equal(t, "product is still referenced", MessageOf(wrapped))
}
