package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/taskdeck/taskdeck/internal/api/shared"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/store"
)

// UserHandler handles user-related API requests.
type UserHandler struct {
	userStore store.UserStore
	taskStore store.TaskStore
	validator *validator.Validate
	logger    *slog.Logger
}

// NewUserHandler creates a new UserHandler with the given dependencies.
// The task store serves the GET /users/{id}/tasks route.
func NewUserHandler(userStore store.UserStore, taskStore store.TaskStore, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		userStore: userStore,
		taskStore: taskStore,
		validator: validator.New(),
		logger:    logger.With(slog.String("component", "user_handler")),
	}
}

// List handles GET /users requests.
//
//	@Summary		List users
//	@Description	Returns users in creation order. Use limit and offset to page.
//	@Tags			Users
//	@Produce		json
//	@Param			limit	query		int	false	"Page size (max 200)"	default(50)
//	@Param			offset	query		int	false	"Rows to skip"			default(0)
//	@Success		200		{array}		api.UserResponse
//	@Failure		500		{object}	shared.ErrorResponse
//	@Router			/users [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseListParams(r)

	users, err := h.userStore.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("failed to list users", "error", err)
		HandleStoreError(w, r, err, "Failed to list users")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, usersToResponse(users))
}

// Create handles POST /users requests.
//
//	@Summary		Create a user
//	@Description	Creates a user. The email must be unique; the password is optional.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			user	body		api.CreateUserRequest	true	"User to create"
//	@Success		201		{object}	api.UserResponse
//	@Failure		400		{object}	shared.ErrorResponse
//	@Failure		409		{object}	shared.ErrorResponse
//	@Router			/users [post]
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+SanitizeValidationError(err))
		return
	}

	user, err := domain.NewUser(req.Name, req.Email, req.Password)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user data: "+err.Error())
		return
	}

	if err := h.userStore.Create(r.Context(), user); err != nil {
		HandleStoreError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, userToResponse(user))
}

// Get handles GET /users/{id} requests.
//
//	@Summary	Get a user by ID
//	@Tags		Users
//	@Produce	json
//	@Param		id	path		string	true	"User ID (UUID)"
//	@Success	200	{object}	api.UserResponse
//	@Failure	400	{object}	shared.ErrorResponse
//	@Failure	404	{object}	shared.ErrorResponse
//	@Router		/users/{id} [get]
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleStoreError(w, r, err, "")
		return
	}

	user, err := h.userStore.GetByID(r.Context(), id)
	if err != nil {
		HandleStoreError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// Replace handles PUT /users/{id} requests.
//
//	@Summary		Replace a user
//	@Description	Fully replaces the user's name and email; optionally sets a new password.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"User ID (UUID)"
//	@Param			user	body		api.ReplaceUserRequest	true	"New user data"
//	@Success		200		{object}	api.UserResponse
//	@Failure		400		{object}	shared.ErrorResponse
//	@Failure		404		{object}	shared.ErrorResponse
//	@Failure		409		{object}	shared.ErrorResponse
//	@Router			/users/{id} [put]
func (h *UserHandler) Replace(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleStoreError(w, r, err, "")
		return
	}

	var req ReplaceUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+SanitizeValidationError(err))
		return
	}

	user, err := h.userStore.GetByID(r.Context(), id)
	if err != nil {
		HandleStoreError(w, r, err, "")
		return
	}

	user.Name = req.Name
	user.Email = req.Email
	user.Password = req.Password

	if err := h.userStore.Update(r.Context(), user); err != nil {
		HandleStoreError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// Patch handles PATCH /users/{id} requests.
//
//	@Summary		Update a user
//	@Description	Partially updates the user; omitted fields keep their value.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"User ID (UUID)"
//	@Param			user	body		api.PatchUserRequest	true	"Fields to change"
//	@Success		200		{object}	api.UserResponse
//	@Failure		400		{object}	shared.ErrorResponse
//	@Failure		404		{object}	shared.ErrorResponse
//	@Failure		409		{object}	shared.ErrorResponse
//	@Router			/users/{id} [patch]
func (h *UserHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleStoreError(w, r, err, "")
		return
	}

	var req PatchUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+SanitizeValidationError(err))
		return
	}

	user, err := h.userStore.GetByID(r.Context(), id)
	if err != nil {
		HandleStoreError(w, r, err, "")
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		user.Password = *req.Password
	}

	if err := h.userStore.Update(r.Context(), user); err != nil {
		HandleStoreError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// Delete handles DELETE /users/{id} requests.
//
//	@Summary		Delete a user
//	@Description	Deletes the user and all tasks they own.
//	@Tags			Users
//	@Param			id	path	string	true	"User ID (UUID)"
//	@Success		204	"No Content"
//	@Failure		400	{object}	shared.ErrorResponse
//	@Failure		404	{object}	shared.ErrorResponse
//	@Router			/users/{id} [delete]
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleStoreError(w, r, err, "")
		return
	}

	if err := h.userStore.Delete(r.Context(), id); err != nil {
		HandleStoreError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}

// ListTasks handles GET /users/{id}/tasks requests.
//
//	@Summary		List a user's tasks
//	@Description	Returns all tasks owned by the user, in creation order.
//	@Tags			Users
//	@Produce		json
//	@Param			id	path		string	true	"User ID (UUID)"
//	@Success		200	{array}		api.TaskResponse
//	@Failure		400	{object}	shared.ErrorResponse
//	@Failure		404	{object}	shared.ErrorResponse
//	@Router			/users/{id}/tasks [get]
func (h *UserHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleStoreError(w, r, err, "")
		return
	}

	// 404 for unknown users, distinguishing them from users with no tasks.
	if _, err := h.userStore.GetByID(r.Context(), id); err != nil {
		HandleStoreError(w, r, err, "")
		return
	}

	tasks, err := h.taskStore.ListByUser(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to list tasks for user", "error", err, "user_id", id)
		HandleStoreError(w, r, err, "Failed to list tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}
