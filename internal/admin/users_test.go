// ABOUTME: Tests for user administration operations
// ABOUTME: Covers adduser, deluser, userpassword, listusers against engine and mock

package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/bncctl/internal/registry"
)

func TestAddUser_Success(t *testing.T) {
	eng := createTestEngine(t, 0)
	svc := NewService(eng)
	ctx := context.Background()

	result := svc.Dispatch(ctx, "adduser", Params{
		"username": "alice",
		"password": "sekrit",
	})
	require.Empty(t, result.Err())

	// The stored credential verifies against the original plaintext.
	user, err := eng.FindUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	ok, err := eng.CheckUserPassword(ctx, "alice", "sekrit")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = eng.CheckUserPassword(ctx, "alice", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	// The plaintext never appears in the response.
	for _, f := range result.Fields() {
		if s, isString := f.Value.(string); isString {
			assert.NotContains(t, s, "sekrit")
		}
	}
}

func TestAddUser_FreshSaltPerUser(t *testing.T) {
	eng := createTestEngine(t, 0)

	hash1, salt1 := eng.HashPassword("same-password")
	hash2, salt2 := eng.HashPassword("same-password")
	assert.NotEqual(t, salt1, salt2)
	assert.NotEqual(t, hash1, hash2)
}

func TestAddUser_Duplicate(t *testing.T) {
	eng := createTestEngine(t, 0)
	svc := NewService(eng)
	ctx := context.Background()

	addTestUser(t, svc, "alice")

	result := svc.Dispatch(ctx, "adduser", Params{
		"username": "alice",
		"password": "other",
	})
	assert.Equal(t, "error_adding_user", result.Err())

	desc, ok := result.Get("description")
	require.True(t, ok)
	assert.NotEmpty(t, desc)

	// Still exactly one user with that name.
	users, err := eng.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, users)
}

func TestAddUser_AuditAndPersist(t *testing.T) {
	reg := registry.NewMockRegistry()
	svc := NewService(reg)

	result := svc.Dispatch(context.Background(), "adduser", Params{
		"username": "alice",
		"password": "sekrit",
	})
	require.Empty(t, result.Err())

	assert.Equal(t, 1, reg.PersistCalls)
	audits := reg.Audits()
	require.Len(t, audits, 1)
	assert.Equal(t, registry.AuditAddUser, audits[0].Action)
	assert.Equal(t, "alice", audits[0].TargetID)
}

func TestDeleteUser_Success(t *testing.T) {
	eng := createTestEngine(t, 0)
	svc := NewService(eng)
	ctx := context.Background()

	addTestUser(t, svc, "alice")

	result := svc.Dispatch(ctx, "deluser", Params{"username": "alice"})
	require.Empty(t, result.Err())

	_, err := eng.FindUser(ctx, "alice")
	assert.ErrorIs(t, err, registry.ErrUserNotFound)
}

func TestDeleteUser_NotExists(t *testing.T) {
	svc := NewService(createTestEngine(t, 0))

	result := svc.Dispatch(context.Background(), "deluser", Params{"username": "ghost"})
	assert.Equal(t, "user_not_exists", result.Err())
}

func TestDeleteUser_EngineFailure(t *testing.T) {
	reg := registry.NewMockRegistry()
	seedMockUser(t, reg, "alice")
	reg.FailDeleteUser = errors.New("disk on fire")
	svc := NewService(reg)

	result := svc.Dispatch(context.Background(), "deluser", Params{"username": "alice"})
	assert.Equal(t, "error_deleting_user", result.Err())

	desc, ok := result.Get("description")
	require.True(t, ok)
	assert.Contains(t, desc, "disk on fire")
}

func TestSetUserPassword_Success(t *testing.T) {
	eng := createTestEngine(t, 0)
	svc := NewService(eng)
	ctx := context.Background()

	addTestUser(t, svc, "alice")

	result := svc.Dispatch(ctx, "userpassword", Params{
		"username": "alice",
		"password": "newpass",
	})
	require.Empty(t, result.Err())

	ok, err := eng.CheckUserPassword(ctx, "alice", "newpass")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = eng.CheckUserPassword(ctx, "alice", "hunter2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetUserPassword_UserNotFound(t *testing.T) {
	svc := NewService(createTestEngine(t, 0))

	result := svc.Dispatch(context.Background(), "userpassword", Params{
		"username": "ghost",
		"password": "whatever",
	})
	assert.Equal(t, "user_not_found", result.Err())
}

func TestListUsers_Empty(t *testing.T) {
	svc := NewService(createTestEngine(t, 0))

	result := svc.Dispatch(context.Background(), "listusers", Params{})
	require.Empty(t, result.Err())

	users, ok := result.Get("users")
	require.True(t, ok)
	assert.Empty(t, users)

	count, ok := result.Get("count")
	require.True(t, ok)
	assert.Equal(t, 0, count)
}

func TestListUsers_ReturnsAll(t *testing.T) {
	svc := NewService(createTestEngine(t, 0))

	addTestUser(t, svc, "alice")
	addTestUser(t, svc, "bob")

	result := svc.Dispatch(context.Background(), "listusers", Params{})
	require.Empty(t, result.Err())

	users, ok := result.Get("users")
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"alice", "bob"}, users)

	count, ok := result.Get("count")
	require.True(t, ok)
	assert.Equal(t, 2, count)
}
