package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "user_not_found",
			err:      store.ErrUserNotFound,
			expected: http.StatusNotFound,
		},
		{
			name:     "wrapped_task_not_found",
			err:      fmt.Errorf("lookup failed: %w", store.ErrTaskNotFound),
			expected: http.StatusNotFound,
		},
		{
			name:     "email_exists",
			err:      store.ErrEmailExists,
			expected: http.StatusConflict,
		},
		{
			name:     "invalid_entity",
			err:      fmt.Errorf("%w: user missing", store.ErrInvalidEntity),
			expected: http.StatusBadRequest,
		},
		{
			name:     "domain_validation_sentinel",
			err:      domain.ErrEmptyTaskTitle,
			expected: http.StatusBadRequest,
		},
		{
			name:     "domain_validation_error_struct",
			err:      domain.NewValidationError("email", "invalid email format", domain.ErrInvalidEmail),
			expected: http.StatusBadRequest,
		},
		{
			name:     "unknown_error",
			err:      errors.New("disk full"),
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil_error",
			err:      nil,
			expected: "An unexpected error occurred",
		},
		{
			name:     "user_not_found",
			err:      store.ErrUserNotFound,
			expected: "User not found",
		},
		{
			name:     "task_not_found",
			err:      fmt.Errorf("get: %w", store.ErrTaskNotFound),
			expected: "Task not found",
		},
		{
			name:     "email_exists",
			err:      store.ErrEmailExists,
			expected: "Email already exists",
		},
		{
			name:     "invalid_entity",
			err:      fmt.Errorf("%w: owner missing", store.ErrInvalidEntity),
			expected: "Invalid entity data",
		},
		{
			name:     "internal_details_not_leaked",
			err:      errors.New("pq: connection to server at 10.0.0.5 failed"),
			expected: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	validate := validator.New()

	tests := []struct {
		name     string
		input    interface{}
		expected string
	}{
		{
			name:     "required_field",
			input:    CreateUserRequest{Email: "ada@example.com"},
			expected: "Invalid Name: required field",
		},
		{
			name:     "invalid_email",
			input:    CreateUserRequest{Name: "Ada", Email: "nope"},
			expected: "Invalid Email: invalid email format",
		},
		{
			name:     "invalid_uuid",
			input:    CreateTaskRequest{UserID: "nope", Title: "x"},
			expected: "Invalid UserID: must be a valid UUID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.input)
			assert.Error(t, err)
			assert.Equal(t, tt.expected, SanitizeValidationError(err))
		})
	}

	t.Run("non_validator_error", func(t *testing.T) {
		assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("boom")))
	})
}
