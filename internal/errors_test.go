package internal_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanLimbu/todo-list/internal"
)

func TestError(t *testing.T) {
	orig := errors.New("connection refused")

	err := internal.WrapErrorf(orig, internal.ErrorCodeNotFound, "find %d", 1)
	assert.Equal(t, "find 1: connection refused", err.Error())
	assert.ErrorIs(t, err, orig)

	wrapped := fmt.Errorf("repo find: %w", err)

	var ierr *internal.Error
	require.ErrorAs(t, wrapped, &ierr)
	assert.Equal(t, internal.ErrorCodeNotFound, ierr.Code())

	err = internal.NewErrorf(internal.ErrorCodeInvalidArgument, "invalid")
	assert.Equal(t, "invalid", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestSearchParams(t *testing.T) {
	empty := ""
	milk := "milk"
	status := true

	assert.True(t, internal.SearchParams{}.IsZero())
	assert.False(t, internal.SearchParams{Status: &status}.IsZero())

	require.NoError(t, internal.SearchParams{Description: &milk}.Validate())
	require.NoError(t, internal.SearchParams{Status: &status}.Validate())

	err := internal.SearchParams{Description: &empty}.Validate()

	var ierr *internal.Error
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, internal.ErrorCodeInvalidArgument, ierr.Code())
}
