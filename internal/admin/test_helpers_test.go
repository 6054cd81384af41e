// ABOUTME: Shared fixtures for admin operation tests
// ABOUTME: Real engine in a temp dir plus mock registry constructors

package admin

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/2389/bncctl/internal/engine"
	"github.com/2389/bncctl/internal/registry"
)

// createTestEngine creates a real SQLite engine in a temp directory.
func createTestEngine(t *testing.T, maxNetworks int) *engine.Engine {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	e, err := engine.New(engine.Options{Path: dbPath, MaxNetworks: maxNetworks})
	require.NoError(t, err)

	t.Cleanup(func() { e.Close() })
	return e
}

// addTestUser creates a user directly through the service.
func addTestUser(t *testing.T, svc *Service, username string) {
	t.Helper()

	result := svc.Dispatch(context.Background(), "adduser", Params{
		"username": username,
		"password": "hunter2",
	})
	require.Empty(t, result.Err())
}

// addTestNetwork creates a network for a user through the service.
func addTestNetwork(t *testing.T, svc *Service, username, name string) {
	t.Helper()

	result := svc.Dispatch(context.Background(), "addnetwork", Params{
		"username": username,
		"net_name": name,
		"net_addr": "irc.libera.chat",
		"net_port": "6697",
		"net_ssl":  "1",
	})
	require.Empty(t, result.Err())
}

// seedMockUser creates a user in a mock registry.
func seedMockUser(t *testing.T, reg *registry.MockRegistry, username string) {
	t.Helper()
	require.NoError(t, reg.AddUser(context.Background(), username, "hash", "salt"))
}
