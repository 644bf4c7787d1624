package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/store"
)

// TaskStore implements the store.TaskStore interface backed by a
// mutex-guarded map, with owner checks delegated to a UserStore.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]domain.Task
	order []uuid.UUID
	users *UserStore
}

// NewTaskStore creates an empty in-memory implementation of the
// store.TaskStore interface. When users is non-nil, task creation
// validates the owner and deleting a user removes their tasks, matching
// the foreign key with ON DELETE CASCADE the SQL backend declares.
func NewTaskStore(users *UserStore) *TaskStore {
	ts := &TaskStore{
		tasks: make(map[uuid.UUID]domain.Task),
		users: users,
	}
	if users != nil {
		users.registerDeleteHook(ts.removeOwnedBy)
	}
	return ts
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	if s.users == nil {
		s.insert(task)
		return nil
	}

	// The insert runs under the users read lock so a concurrent user
	// delete cannot slip between the owner check and the insert and leave
	// an orphaned task. Lock ordering stays users before tasks, same as
	// the user-delete hook.
	if !s.users.ifExists(task.UserID, func() { s.insert(task) }) {
		return fmt.Errorf("%w: user with ID %s not found", store.ErrInvalidEntity, task.UserID)
	}
	return nil
}

// insert adds the task under the task lock.
func (s *TaskStore) insert(task *domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks[task.ID] = *task
	s.order = append(s.order, task.ID)
}

// GetByID implements store.TaskStore.GetByID
func (s *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return &task, nil
}

// List implements store.TaskStore.List
func (s *TaskStore) List(ctx context.Context, limit, offset int) ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if offset < 0 {
		offset = 0
	}
	if offset >= len(s.order) {
		return []*domain.Task{}, nil
	}

	end := len(s.order)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	out := make([]*domain.Task, 0, end-offset)
	for _, id := range s.order[offset:end] {
		task := s.tasks[id]
		out = append(out, &task)
	}
	return out, nil
}

// ListByUser implements store.TaskStore.ListByUser
func (s *TaskStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*domain.Task{}
	for _, id := range s.order {
		task := s.tasks[id]
		if task.UserID == userID {
			out = append(out, &task)
		}
	}
	return out, nil
}

// Update implements store.TaskStore.Update
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.tasks[task.ID]
	if !ok {
		return store.ErrTaskNotFound
	}

	stored := *task
	stored.UserID = current.UserID // owner cannot change
	stored.CreatedAt = current.CreatedAt
	stored.UpdatedAt = time.Now().UTC()

	s.tasks[stored.ID] = stored

	// The caller's struct reflects what was stored, matching the SQL
	// backend which writes the new updated_at back.
	*task = stored
	return nil
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}

	s.removeLocked(id)
	return nil
}

// removeOwnedBy deletes every task owned by the given user.
func (s *TaskStore) removeOwnedBy(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, task := range s.tasks {
		if task.UserID == userID {
			s.removeLocked(id)
		}
	}
}

// removeLocked deletes a task from both the map and the order slice.
// The caller must hold the write lock.
func (s *TaskStore) removeLocked(id uuid.UUID) {
	delete(s.tasks, id)
	for i, orderedID := range s.order {
		if orderedID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
