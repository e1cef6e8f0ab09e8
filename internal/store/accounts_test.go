package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buchshelf/buchshelf-server/internal/domain"
	"github.com/buchshelf/buchshelf-server/internal/store"
)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testAccount(id, email, username string) *domain.Account {
	now := time.Now().UTC()
	return &domain.Account{
		ID:           id,
		Email:        email,
		Username:     username,
		PasswordHash: "$argon2id$stub",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestAccounts_CreateAndLookup(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	acct := testAccount("acct-1", "alice@example.com", "alice")
	require.NoError(t, s.Accounts.Create(ctx, acct.ID, acct))

	got, err := s.Accounts.Get(ctx, "acct-1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)

	byEmail, err := s.Accounts.GetByIndex(ctx, "email", "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "acct-1", byEmail.ID)

	byUsername, err := s.Accounts.GetByIndex(ctx, "username", "alice")
	require.NoError(t, err)
	assert.Equal(t, "acct-1", byUsername.ID)
}

func TestAccounts_EmailLookupCaseInsensitive(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	acct := testAccount("acct-1", "Alice@Example.COM", "alice")
	require.NoError(t, s.Accounts.Create(ctx, acct.ID, acct))

	got, err := s.Accounts.GetByIndex(ctx, "email", "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "acct-1", got.ID)
}

func TestAccounts_DuplicateEmailRejected(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	first := testAccount("acct-1", "a@x.com", "alice")
	require.NoError(t, s.Accounts.Create(ctx, first.ID, first))

	second := testAccount("acct-2", "a@x.com", "bob")
	err := s.Accounts.Create(ctx, second.ID, second)
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	// First account is unaffected.
	got, err := s.Accounts.GetByIndex(ctx, "email", "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "acct-1", got.ID)
	assert.Equal(t, "alice", got.Username)

	// The rejected account was not written at all.
	_, err = s.Accounts.Get(ctx, "acct-2")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAccounts_DuplicateUsernameRejected(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	first := testAccount("acct-1", "a@x.com", "alice")
	require.NoError(t, s.Accounts.Create(ctx, first.ID, first))

	second := testAccount("acct-2", "b@y.com", "Alice")
	err := s.Accounts.Create(ctx, second.ID, second)
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestAccounts_UpdateMovesIndexes(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	acct := testAccount("acct-1", "a@x.com", "alice")
	require.NoError(t, s.Accounts.Create(ctx, acct.ID, acct))

	acct.Username = "alice2"
	require.NoError(t, s.Accounts.Update(ctx, acct.ID, acct))

	_, err := s.Accounts.GetByIndex(ctx, "username", "alice")
	assert.ErrorIs(t, err, store.ErrNotFound)

	got, err := s.Accounts.GetByIndex(ctx, "username", "alice2")
	require.NoError(t, err)
	assert.Equal(t, "acct-1", got.ID)
}

func TestAccounts_UpdateRejectsTakenUsername(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	alice := testAccount("acct-1", "a@x.com", "alice")
	bob := testAccount("acct-2", "b@y.com", "bob")
	require.NoError(t, s.Accounts.Create(ctx, alice.ID, alice))
	require.NoError(t, s.Accounts.Create(ctx, bob.ID, bob))

	bob.Username = "alice"
	err := s.Accounts.Update(ctx, bob.ID, bob)
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestSession_Lifecycle(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.CurrentSession()
	assert.ErrorIs(t, err, store.ErrNotFound)

	loggedIn := time.Now().UTC().Truncate(time.Millisecond)
	require.NoError(t, s.SetSession(&domain.Session{AccountID: "acct-1", LoggedInAt: loggedIn}))

	session, err := s.CurrentSession()
	require.NoError(t, err)
	assert.Equal(t, "acct-1", session.AccountID)

	require.NoError(t, s.ClearSession())
	_, err = s.CurrentSession()
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Clearing twice is fine.
	assert.NoError(t, s.ClearSession())
}
