package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/store"
	"golang.org/x/crypto/bcrypt"
)

func newTestUser(t *testing.T, name, email string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(name, email, "")
	require.NoError(t, err)
	return user
}

func TestUserStore_Create(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore(bcrypt.MinCost)

	user := newTestUser(t, "Ada", "ada@example.com")
	require.NoError(t, s.Create(ctx, user))

	got, err := s.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, "ada@example.com", got.Email)

	t.Run("duplicate_email_rejected", func(t *testing.T) {
		dup := newTestUser(t, "Other Ada", "ada@example.com")
		err := s.Create(ctx, dup)
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("duplicate_email_check_is_case_insensitive", func(t *testing.T) {
		dup := newTestUser(t, "Shouty Ada", "ADA@EXAMPLE.COM")
		err := s.Create(ctx, dup)
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("invalid_user_rejected", func(t *testing.T) {
		bad := newTestUser(t, "Bad", "bad@example.com")
		bad.Email = "notanemail"
		err := s.Create(ctx, bad)
		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
	})
}

func TestUserStore_PasswordHashing(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore(bcrypt.MinCost)

	user, err := domain.NewUser("Ada", "ada@example.com", "correcthorse")
	require.NoError(t, err)
	require.NoError(t, s.Create(ctx, user))

	got, err := s.GetByID(ctx, user.ID)
	require.NoError(t, err)

	assert.Empty(t, got.Password, "plaintext password must not be stored")
	require.NotEmpty(t, got.HashedPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.HashedPassword), []byte("correcthorse")))
}

func TestUserStore_GetByEmail(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore(bcrypt.MinCost)

	user := newTestUser(t, "Ada", "ada@example.com")
	require.NoError(t, s.Create(ctx, user))

	got, err := s.GetByEmail(ctx, "Ada@Example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = s.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserStore_List(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore(bcrypt.MinCost)

	emails := []string{"a@example.com", "b@example.com", "c@example.com"}
	for _, email := range emails {
		require.NoError(t, s.Create(ctx, newTestUser(t, "User", email)))
	}

	all, err := s.List(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Insertion order is preserved
	assert.Equal(t, "a@example.com", all[0].Email)
	assert.Equal(t, "c@example.com", all[2].Email)

	page, err := s.List(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "b@example.com", page[0].Email)

	empty, err := s.List(ctx, 10, 99)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUserStore_Update(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore(bcrypt.MinCost)

	user := newTestUser(t, "Ada", "ada@example.com")
	other := newTestUser(t, "Grace", "grace@example.com")
	require.NoError(t, s.Create(ctx, user))
	require.NoError(t, s.Create(ctx, other))

	t.Run("changes_fields_and_bumps_updated_at", func(t *testing.T) {
		updated := *user
		updated.Name = "Ada Lovelace"
		require.NoError(t, s.Update(ctx, &updated))

		got, err := s.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", got.Name)
		assert.True(t, got.UpdatedAt.After(got.CreatedAt) || got.UpdatedAt.Equal(got.CreatedAt))
	})

	t.Run("email_conflict_with_other_user", func(t *testing.T) {
		updated := *user
		updated.Email = "grace@example.com"
		err := s.Update(ctx, &updated)
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("keeping_own_email_is_not_a_conflict", func(t *testing.T) {
		updated := *user
		updated.Name = "Still Ada"
		assert.NoError(t, s.Update(ctx, &updated))
	})

	t.Run("caller_sees_stored_fields", func(t *testing.T) {
		updated := *user
		updated.Name = "Countess"
		updated.Password = "newpassword1"
		require.NoError(t, s.Update(ctx, &updated))

		got, err := s.GetByID(ctx, user.ID)
		require.NoError(t, err)
		// Handlers render the caller's struct, so the stored updated_at
		// and rehashed password must be written back to it.
		assert.Equal(t, got.UpdatedAt, updated.UpdatedAt, "caller must carry the new updated_at")
		assert.Equal(t, *got, updated, "caller must match the stored user after update")
		assert.Empty(t, updated.Password)
	})

	t.Run("unknown_user", func(t *testing.T) {
		ghost := newTestUser(t, "Ghost", "ghost@example.com")
		err := s.Update(ctx, ghost)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestUserStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore(bcrypt.MinCost)

	user := newTestUser(t, "Ada", "ada@example.com")
	require.NoError(t, s.Create(ctx, user))

	require.NoError(t, s.Delete(ctx, user.ID))

	_, err := s.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	err = s.Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	// The email is free again after deletion
	assert.NoError(t, s.Create(ctx, newTestUser(t, "Ada II", "ada@example.com")))
}
