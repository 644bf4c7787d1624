package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorHierarchy(t *testing.T) {
	t.Run("entity_specific_errors_wrap_generic_ones", func(t *testing.T) {
		assert.True(t, errors.Is(ErrUserNotFound, ErrNotFound))
		assert.True(t, errors.Is(ErrTaskNotFound, ErrNotFound))
		assert.True(t, errors.Is(ErrEmailExists, ErrDuplicate))
	})

	t.Run("wrapped_errors_are_still_detected", func(t *testing.T) {
		wrapped := fmt.Errorf("creating user: %w", ErrEmailExists)
		assert.True(t, IsDuplicateError(wrapped))
		assert.False(t, IsNotFoundError(wrapped))

		wrapped = fmt.Errorf("fetching task: %w", ErrTaskNotFound)
		assert.True(t, IsNotFoundError(wrapped))
		assert.False(t, IsDuplicateError(wrapped))
	})

	t.Run("unrelated_errors_do_not_match", func(t *testing.T) {
		err := errors.New("connection refused")
		assert.False(t, IsNotFoundError(err))
		assert.False(t, IsDuplicateError(err))
	})
}
