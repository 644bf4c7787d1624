package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck/internal/api/shared"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/store"
)

// TaskHandler handles task-related API requests.
type TaskHandler struct {
	taskStore store.TaskStore
	validator *validator.Validate
	logger    *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskStore store.TaskStore, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		taskStore: taskStore,
		validator: validator.New(),
		logger:    logger.With(slog.String("component", "task_handler")),
	}
}

// List handles GET /tasks requests.
//
//	@Summary		List tasks
//	@Description	Returns tasks in creation order. Use limit and offset to page.
//	@Tags			Tasks
//	@Produce		json
//	@Param			limit	query		int	false	"Page size (max 200)"	default(50)
//	@Param			offset	query		int	false	"Rows to skip"			default(0)
//	@Success		200		{array}		api.TaskResponse
//	@Failure		500		{object}	shared.ErrorResponse
//	@Router			/tasks [get]
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseListParams(r)

	tasks, err := h.taskStore.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("failed to list tasks", "error", err)
		HandleStoreError(w, r, err, "Failed to list tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// Create handles POST /tasks requests.
//
//	@Summary		Create a task
//	@Description	Creates a task owned by an existing user. Status defaults to "pending".
//	@Tags			Tasks
//	@Accept			json
//	@Produce		json
//	@Param			task	body		api.CreateTaskRequest	true	"Task to create"
//	@Success		201		{object}	api.TaskResponse
//	@Failure		400		{object}	shared.ErrorResponse
//	@Router			/tasks [post]
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+SanitizeValidationError(err))
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user_id format")
		return
	}

	task, err := domain.NewTask(userID, req.Title, req.Description, req.Status)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task data: "+err.Error())
		return
	}

	if err := h.taskStore.Create(r.Context(), task); err != nil {
		HandleStoreError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// Get handles GET /tasks/{id} requests.
//
//	@Summary	Get a task by ID
//	@Tags		Tasks
//	@Produce	json
//	@Param		id	path		string	true	"Task ID (UUID)"
//	@Success	200	{object}	api.TaskResponse
//	@Failure	400	{object}	shared.ErrorResponse
//	@Failure	404	{object}	shared.ErrorResponse
//	@Router		/tasks/{id} [get]
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleStoreError(w, r, err, "")
		return
	}

	task, err := h.taskStore.GetByID(r.Context(), id)
	if err != nil {
		HandleStoreError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Replace handles PUT /tasks/{id} requests.
//
//	@Summary		Replace a task
//	@Description	Fully replaces the task's title, description and status. The owner cannot change.
//	@Tags			Tasks
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Task ID (UUID)"
//	@Param			task	body		api.ReplaceTaskRequest	true	"New task data"
//	@Success		200		{object}	api.TaskResponse
//	@Failure		400		{object}	shared.ErrorResponse
//	@Failure		404		{object}	shared.ErrorResponse
//	@Router			/tasks/{id} [put]
func (h *TaskHandler) Replace(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleStoreError(w, r, err, "")
		return
	}

	var req ReplaceTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+SanitizeValidationError(err))
		return
	}

	task, err := h.taskStore.GetByID(r.Context(), id)
	if err != nil {
		HandleStoreError(w, r, err, "")
		return
	}

	task.Title = req.Title
	task.Description = req.Description
	task.Status = req.Status

	if err := h.taskStore.Update(r.Context(), task); err != nil {
		HandleStoreError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Patch handles PATCH /tasks/{id} requests.
//
//	@Summary		Update a task
//	@Description	Partially updates the task; omitted fields keep their value.
//	@Tags			Tasks
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Task ID (UUID)"
//	@Param			task	body		api.PatchTaskRequest	true	"Fields to change"
//	@Success		200		{object}	api.TaskResponse
//	@Failure		400		{object}	shared.ErrorResponse
//	@Failure		404		{object}	shared.ErrorResponse
//	@Router			/tasks/{id} [patch]
func (h *TaskHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleStoreError(w, r, err, "")
		return
	}

	var req PatchTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+SanitizeValidationError(err))
		return
	}

	task, err := h.taskStore.GetByID(r.Context(), id)
	if err != nil {
		HandleStoreError(w, r, err, "")
		return
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = *req.Status
	}

	if err := h.taskStore.Update(r.Context(), task); err != nil {
		HandleStoreError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Delete handles DELETE /tasks/{id} requests.
//
//	@Summary	Delete a task
//	@Tags		Tasks
//	@Param		id	path	string	true	"Task ID (UUID)"
//	@Success	204	"No Content"
//	@Failure	400	{object}	shared.ErrorResponse
//	@Failure	404	{object}	shared.ErrorResponse
//	@Router		/tasks/{id} [delete]
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleStoreError(w, r, err, "")
		return
	}

	if err := h.taskStore.Delete(r.Context(), id); err != nil {
		HandleStoreError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}
