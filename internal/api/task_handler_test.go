package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/store"
)

// MockTaskStore is a mock implementation of store.TaskStore for testing
type MockTaskStore struct {
	CreateFn     func(ctx context.Context, task *domain.Task) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	ListFn       func(ctx context.Context, limit, offset int) ([]*domain.Task, error)
	ListByUserFn func(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)
	UpdateFn     func(ctx context.Context, task *domain.Task) error
	DeleteFn     func(ctx context.Context, id uuid.UUID) error
}

func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	return nil
}

func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrTaskNotFound
}

func (m *MockTaskStore) List(ctx context.Context, limit, offset int) ([]*domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit, offset)
	}
	return nil, nil
}

func (m *MockTaskStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	return nil
}

func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

var _ store.TaskStore = (*MockTaskStore)(nil)

func fixedTestTask(id, userID uuid.UUID) *domain.Task {
	fixedTime := time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Task{
		ID:          id,
		UserID:      userID,
		Title:       "Write release notes",
		Description: "Cover the storage changes",
		Status:      domain.TaskStatusDefault,
		CreatedAt:   fixedTime,
		UpdatedAt:   fixedTime,
	}
}

func TestTaskHandler_Create(t *testing.T) {
	fixedUserID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	fixedTaskID := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	tests := []struct {
		name                string
		requestBody         interface{}
		setupMock           func(*MockTaskStore)
		expectedStatus      int
		expectedErrMsg      string
		expectedStatusField string
	}{
		{
			name: "successful_creation_with_default_status",
			requestBody: CreateTaskRequest{
				UserID: fixedUserID.String(),
				Title:  "Write release notes",
			},
			setupMock: func(ms *MockTaskStore) {
				ms.CreateFn = func(ctx context.Context, task *domain.Task) error {
					task.ID = fixedTaskID
					return nil
				}
			},
			expectedStatus:      http.StatusCreated,
			expectedStatusField: "pending",
		},
		{
			name: "explicit_status_preserved",
			requestBody: CreateTaskRequest{
				UserID: fixedUserID.String(),
				Title:  "Write release notes",
				Status: "in_progress",
			},
			setupMock: func(ms *MockTaskStore) {
				ms.CreateFn = func(ctx context.Context, task *domain.Task) error {
					task.ID = fixedTaskID
					return nil
				}
			},
			expectedStatus:      http.StatusCreated,
			expectedStatusField: "in_progress",
		},
		{
			name:           "invalid_request_format",
			requestBody:    `{"title": "broken`,
			setupMock:      func(ms *MockTaskStore) {},
			expectedStatus: http.StatusBadRequest,
			expectedErrMsg: "Invalid request format",
		},
		{
			name: "missing_title",
			requestBody: CreateTaskRequest{
				UserID: fixedUserID.String(),
			},
			setupMock:      func(ms *MockTaskStore) {},
			expectedStatus: http.StatusBadRequest,
			expectedErrMsg: "required field",
		},
		{
			name: "malformed_user_id",
			requestBody: CreateTaskRequest{
				UserID: "not-a-uuid",
				Title:  "Write release notes",
			},
			setupMock:      func(ms *MockTaskStore) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown_owner",
			requestBody: CreateTaskRequest{
				UserID: fixedUserID.String(),
				Title:  "Write release notes",
			},
			setupMock: func(ms *MockTaskStore) {
				ms.CreateFn = func(ctx context.Context, task *domain.Task) error {
					return fmt.Errorf("%w: user with ID %s not found", store.ErrInvalidEntity, task.UserID)
				}
			},
			expectedStatus: http.StatusBadRequest,
			expectedErrMsg: "Invalid entity data",
		},
		{
			name: "store_error",
			requestBody: CreateTaskRequest{
				UserID: fixedUserID.String(),
				Title:  "Write release notes",
			},
			setupMock: func(ms *MockTaskStore) {
				ms.CreateFn = func(ctx context.Context, task *domain.Task) error {
					return errors.New("connection reset")
				}
			},
			expectedStatus: http.StatusInternalServerError,
			expectedErrMsg: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := &MockTaskStore{}
			tt.setupMock(mockStore)

			handler := NewTaskHandler(mockStore, newTestLogger())

			var reqBody []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				reqBody = []byte(str)
			} else {
				reqBody, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Create(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var respBody map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &respBody))

			if tt.expectedErrMsg != "" {
				errMsg, ok := respBody["error"].(string)
				require.True(t, ok, "expected error field in response")
				assert.Contains(t, errMsg, tt.expectedErrMsg)
			}
			if tt.expectedStatusField != "" {
				assert.Equal(t, tt.expectedStatusField, respBody["status"])
				assert.Equal(t, fixedUserID.String(), respBody["user_id"])
			}
		})
	}
}

func TestTaskHandler_Get(t *testing.T) {
	fixedUserID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	fixedTaskID := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	tests := []struct {
		name           string
		pathID         string
		setupMock      func(*MockTaskStore)
		expectedStatus int
	}{
		{
			name:   "found",
			pathID: fixedTaskID.String(),
			setupMock: func(ms *MockTaskStore) {
				ms.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
					assert.Equal(t, fixedTaskID, id)
					return fixedTestTask(id, fixedUserID), nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "malformed_id",
			pathID:         "not-a-uuid",
			setupMock:      func(ms *MockTaskStore) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "not_found",
			pathID: fixedTaskID.String(),
			setupMock: func(ms *MockTaskStore) {
				ms.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
					return nil, store.ErrTaskNotFound
				}
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := &MockTaskStore{}
			tt.setupMock(mockStore)

			handler := NewTaskHandler(mockStore, newTestLogger())

			req := httptest.NewRequest(http.MethodGet, "/tasks/"+tt.pathID, nil)
			req = withURLParam(req, "id", tt.pathID)
			w := httptest.NewRecorder()

			handler.Get(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestTaskHandler_List(t *testing.T) {
	fixedUserID := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	t.Run("pagination_forwarded", func(t *testing.T) {
		var gotLimit, gotOffset int
		mockStore := &MockTaskStore{
			ListFn: func(ctx context.Context, limit, offset int) ([]*domain.Task, error) {
				gotLimit, gotOffset = limit, offset
				return []*domain.Task{fixedTestTask(uuid.New(), fixedUserID)}, nil
			},
		}

		handler := NewTaskHandler(mockStore, newTestLogger())

		req := httptest.NewRequest(http.MethodGet, "/tasks?limit=5&offset=15", nil)
		w := httptest.NewRecorder()

		handler.List(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 5, gotLimit)
		assert.Equal(t, 15, gotOffset)

		var respBody []map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &respBody))
		assert.Len(t, respBody, 1)
	})

	t.Run("store_error", func(t *testing.T) {
		mockStore := &MockTaskStore{
			ListFn: func(ctx context.Context, limit, offset int) ([]*domain.Task, error) {
				return nil, errors.New("connection reset")
			},
		}

		handler := NewTaskHandler(mockStore, newTestLogger())

		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		w := httptest.NewRecorder()

		handler.List(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestTaskHandler_Replace(t *testing.T) {
	fixedUserID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	fixedTaskID := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	t.Run("successful_replace", func(t *testing.T) {
		mockStore := &MockTaskStore{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
				return fixedTestTask(id, fixedUserID), nil
			},
			UpdateFn: func(ctx context.Context, task *domain.Task) error {
				assert.Equal(t, "Ship the release", task.Title)
				assert.Equal(t, "", task.Description)
				assert.Equal(t, "done", task.Status)
				assert.Equal(t, fixedUserID, task.UserID)
				return nil
			},
		}

		handler := NewTaskHandler(mockStore, newTestLogger())

		reqBody := []byte(`{"title": "Ship the release", "status": "done"}`)
		req := httptest.NewRequest(http.MethodPut, "/tasks/"+fixedTaskID.String(), bytes.NewReader(reqBody))
		req.Header.Set("Content-Type", "application/json")
		req = withURLParam(req, "id", fixedTaskID.String())
		w := httptest.NewRecorder()

		handler.Replace(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var respBody map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &respBody))
		assert.Equal(t, "done", respBody["status"])
	})

	t.Run("missing_status_rejected", func(t *testing.T) {
		handler := NewTaskHandler(&MockTaskStore{}, newTestLogger())

		reqBody := []byte(`{"title": "Ship the release"}`)
		req := httptest.NewRequest(http.MethodPut, "/tasks/"+fixedTaskID.String(), bytes.NewReader(reqBody))
		req.Header.Set("Content-Type", "application/json")
		req = withURLParam(req, "id", fixedTaskID.String())
		w := httptest.NewRecorder()

		handler.Replace(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("owner_change_rejected_as_unknown_field", func(t *testing.T) {
		handler := NewTaskHandler(&MockTaskStore{}, newTestLogger())

		reqBody := []byte(`{"title": "Ship the release", "status": "done", "user_id": "33333333-3333-3333-3333-333333333333"}`)
		req := httptest.NewRequest(http.MethodPut, "/tasks/"+fixedTaskID.String(), bytes.NewReader(reqBody))
		req.Header.Set("Content-Type", "application/json")
		req = withURLParam(req, "id", fixedTaskID.String())
		w := httptest.NewRecorder()

		handler.Replace(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not_found", func(t *testing.T) {
		mockStore := &MockTaskStore{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
				return nil, store.ErrTaskNotFound
			},
		}

		handler := NewTaskHandler(mockStore, newTestLogger())

		reqBody := []byte(`{"title": "Ship the release", "status": "done"}`)
		req := httptest.NewRequest(http.MethodPut, "/tasks/"+fixedTaskID.String(), bytes.NewReader(reqBody))
		req.Header.Set("Content-Type", "application/json")
		req = withURLParam(req, "id", fixedTaskID.String())
		w := httptest.NewRecorder()

		handler.Replace(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTaskHandler_Patch(t *testing.T) {
	fixedUserID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	fixedTaskID := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	t.Run("status_only_update", func(t *testing.T) {
		mockStore := &MockTaskStore{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
				return fixedTestTask(id, fixedUserID), nil
			},
			UpdateFn: func(ctx context.Context, task *domain.Task) error {
				assert.Equal(t, "Write release notes", task.Title)
				assert.Equal(t, "done", task.Status)
				return nil
			},
		}

		handler := NewTaskHandler(mockStore, newTestLogger())

		reqBody := []byte(`{"status": "done"}`)
		req := httptest.NewRequest(http.MethodPatch, "/tasks/"+fixedTaskID.String(), bytes.NewReader(reqBody))
		req.Header.Set("Content-Type", "application/json")
		req = withURLParam(req, "id", fixedTaskID.String())
		w := httptest.NewRecorder()

		handler.Patch(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var respBody map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &respBody))
		assert.Equal(t, "done", respBody["status"])
		assert.Equal(t, "Write release notes", respBody["title"])
	})

	t.Run("empty_status_rejected", func(t *testing.T) {
		handler := NewTaskHandler(&MockTaskStore{}, newTestLogger())

		reqBody := []byte(`{"status": ""}`)
		req := httptest.NewRequest(http.MethodPatch, "/tasks/"+fixedTaskID.String(), bytes.NewReader(reqBody))
		req.Header.Set("Content-Type", "application/json")
		req = withURLParam(req, "id", fixedTaskID.String())
		w := httptest.NewRecorder()

		handler.Patch(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTaskHandler_Delete(t *testing.T) {
	fixedTaskID := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	tests := []struct {
		name           string
		setupMock      func(*MockTaskStore)
		expectedStatus int
	}{
		{
			name: "successful_delete",
			setupMock: func(ms *MockTaskStore) {
				ms.DeleteFn = func(ctx context.Context, id uuid.UUID) error {
					assert.Equal(t, fixedTaskID, id)
					return nil
				}
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "not_found",
			setupMock: func(ms *MockTaskStore) {
				ms.DeleteFn = func(ctx context.Context, id uuid.UUID) error {
					return store.ErrTaskNotFound
				}
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := &MockTaskStore{}
			tt.setupMock(mockStore)

			handler := NewTaskHandler(mockStore, newTestLogger())

			req := httptest.NewRequest(http.MethodDelete, "/tasks/"+fixedTaskID.String(), nil)
			req = withURLParam(req, "id", fixedTaskID.String())
			w := httptest.NewRecorder()

			handler.Delete(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
