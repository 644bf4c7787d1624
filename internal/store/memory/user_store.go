package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// UserStore implements the store.UserStore interface backed by a
// mutex-guarded map. An insertion-order slice preserves stable listing.
type UserStore struct {
	mu         sync.RWMutex
	users      map[uuid.UUID]domain.User
	order      []uuid.UUID
	bcryptCost int

	// deleteHooks run after a user is removed, while the lock is held.
	// The task store registers one to mirror SQL's ON DELETE CASCADE.
	deleteHooks []func(userID uuid.UUID)
}

// NewUserStore creates an empty in-memory implementation of the
// store.UserStore interface. bcryptCost controls password hashing cost;
// values outside bcrypt's range fall back to the default cost.
func NewUserStore(bcryptCost int) *UserStore {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserStore{
		users:      make(map[uuid.UUID]domain.User),
		bcryptCost: bcryptCost,
	}
}

// Ensure UserStore implements store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

// Create implements store.UserStore.Create
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	hashed, err := hashPassword(user.Password, s.bcryptCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Email uniqueness by linear scan, matching the behavior the SQL
	// backend gets from its unique index.
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return store.ErrEmailExists
		}
	}

	stored := *user
	stored.Password = ""
	if hashed != "" {
		stored.HashedPassword = hashed
	}

	s.users[stored.ID] = stored
	s.order = append(s.order, stored.ID)

	*user = stored
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &user, nil
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			found := user
			return &found, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// List implements store.UserStore.List
func (s *UserStore) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if offset < 0 {
		offset = 0
	}
	if offset >= len(s.order) {
		return []*domain.User{}, nil
	}

	end := len(s.order)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	out := make([]*domain.User, 0, end-offset)
	for _, id := range s.order[offset:end] {
		user := s.users[id]
		out = append(out, &user)
	}
	return out, nil
}

// Update implements store.UserStore.Update
func (s *UserStore) Update(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	hashed, err := hashPassword(user.Password, s.bcryptCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.users[user.ID]
	if !ok {
		return store.ErrUserNotFound
	}

	for id, existing := range s.users {
		if id != user.ID && strings.EqualFold(existing.Email, user.Email) {
			return store.ErrEmailExists
		}
	}

	stored := *user
	stored.Password = ""
	stored.CreatedAt = current.CreatedAt
	stored.UpdatedAt = time.Now().UTC()
	if hashed != "" {
		stored.HashedPassword = hashed
	} else {
		stored.HashedPassword = current.HashedPassword
	}

	s.users[stored.ID] = stored

	// The caller's struct reflects what was stored, matching the SQL
	// backend which writes the new updated_at and hash back.
	*user = stored
	return nil
}

// Delete implements store.UserStore.Delete
func (s *UserStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return store.ErrUserNotFound
	}

	delete(s.users, id)
	for i, orderedID := range s.order {
		if orderedID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	for _, hook := range s.deleteHooks {
		hook(id)
	}
	return nil
}

// ifExists runs fn while holding the users read lock if a user with the
// given ID is present, and reports whether it ran. Holding the lock keeps
// a concurrent Delete (and its cascade hooks) from interleaving with fn.
func (s *UserStore) ifExists(id uuid.UUID, fn func()) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.users[id]; !ok {
		return false
	}
	fn()
	return true
}

// registerDeleteHook adds a callback invoked after a user is deleted.
func (s *UserStore) registerDeleteHook(hook func(userID uuid.UUID)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deleteHooks = append(s.deleteHooks, hook)
}

// hashPassword hashes a plaintext password with bcrypt.
// An empty password yields an empty hash: the user has no credential.
func hashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
