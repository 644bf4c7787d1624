package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task validation errors.
var (
	ErrEmptyTaskID       = errors.New("task ID cannot be empty")
	ErrEmptyTaskTitle    = errors.New("task title cannot be empty")
	ErrTaskTitleTooLong  = errors.New("task title must be at most 200 characters long")
	ErrTaskDescTooLong   = errors.New("task description must be at most 2000 characters long")
	ErrEmptyTaskOwner    = errors.New("task owner ID cannot be empty")
	ErrEmptyTaskStatus   = errors.New("task status cannot be empty")
	ErrTaskStatusTooLong = errors.New("task status must be at most 50 characters long")
)

// Field length bounds for tasks.
const (
	MaxTaskTitleLength       = 200
	MaxTaskDescriptionLength = 2000
	MaxTaskStatusLength      = 50
)

// TaskStatusDefault is assigned to tasks created without an explicit status.
// The status is otherwise a free-form string owned by the client.
const TaskStatusDefault = "pending"

// Task represents a unit of work owned by a user.
type Task struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTask creates a new Task owned by the given user.
// An empty status defaults to TaskStatusDefault.
// Returns an error if validation fails.
func NewTask(userID uuid.UUID, title, description, status string) (*Task, error) {
	if status == "" {
		status = TaskStatusDefault
	}

	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.UserID == uuid.Nil {
		return ErrEmptyTaskOwner
	}

	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTaskTitle
	}

	if len(t.Title) > MaxTaskTitleLength {
		return ErrTaskTitleTooLong
	}

	if len(t.Description) > MaxTaskDescriptionLength {
		return ErrTaskDescTooLong
	}

	if t.Status == "" {
		return ErrEmptyTaskStatus
	}

	if len(t.Status) > MaxTaskStatusLength {
		return ErrTaskStatusTooLong
	}

	return nil
}
