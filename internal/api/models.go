package api

import (
	"time"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// Common request/response structures

// CreateUserRequest defines the payload for creating a user.
type CreateUserRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
}

// ReplaceUserRequest defines the payload for fully replacing a user (PUT).
type ReplaceUserRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
}

// PatchUserRequest defines the payload for partially updating a user (PATCH).
// Nil fields are left unchanged.
type PatchUserRequest struct {
	Name     *string `json:"name,omitempty"     validate:"omitempty,max=100"`
	Email    *string `json:"email,omitempty"    validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
}

// UserResponse defines the user representation returned by the API.
// The password hash is never part of it.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	UserID      string `json:"user_id"     validate:"required,uuid"`
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Status      string `json:"status,omitempty"      validate:"omitempty,max=50"`
}

// ReplaceTaskRequest defines the payload for fully replacing a task (PUT).
// The owner is fixed at creation and not part of the payload.
type ReplaceTaskRequest struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Status      string `json:"status"      validate:"required,max=50"`
}

// PatchTaskRequest defines the payload for partially updating a task (PATCH).
// Nil fields are left unchanged.
type PatchTaskRequest struct {
	Title       *string `json:"title,omitempty"       validate:"omitempty,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Status      *string `json:"status,omitempty"      validate:"omitempty,min=1,max=50"`
}

// TaskResponse defines the task representation returned by the API.
type TaskResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HealthResponse defines the response of the health endpoint.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

// userToResponse converts a domain.User to a UserResponse.
func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// usersToResponse converts a slice of domain users.
func usersToResponse(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, userToResponse(user))
	}
	return out
}

// taskToResponse converts a domain.Task to a TaskResponse.
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID.String(),
		UserID:      task.UserID.String(),
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// tasksToResponse converts a slice of domain tasks.
func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskToResponse(task))
	}
	return out
}
