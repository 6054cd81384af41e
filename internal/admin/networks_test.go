// ABOUTME: Tests for network administration operations
// ABOUTME: Covers addnetwork, delnetwork, listnetworks, connect/disconnect

package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/bncctl/internal/registry"
)

func TestAddNetwork_Success(t *testing.T) {
	eng := createTestEngine(t, 0)
	svc := NewService(eng)
	ctx := context.Background()

	addTestUser(t, svc, "alice")
	addTestNetwork(t, svc, "alice", "libera")

	net, err := eng.FindNetwork(ctx, "alice", "libera")
	require.NoError(t, err)
	assert.Equal(t, "libera", net.Name)
	assert.False(t, net.Connected)
}

func TestAddNetwork_UserNotFound(t *testing.T) {
	svc := NewService(createTestEngine(t, 0))

	result := svc.Dispatch(context.Background(), "addnetwork", Params{
		"username": "ghost",
		"net_name": "libera",
		"net_addr": "irc.libera.chat",
		"net_port": "6697",
	})
	assert.Equal(t, "user_not_found", result.Err())
}

func TestAddNetwork_LimitReached(t *testing.T) {
	eng := createTestEngine(t, 1)
	svc := NewService(eng)
	ctx := context.Background()

	addTestUser(t, svc, "alice")
	addTestNetwork(t, svc, "alice", "libera")

	result := svc.Dispatch(ctx, "addnetwork", Params{
		"username": "alice",
		"net_name": "oftc",
		"net_addr": "irc.oftc.net",
		"net_port": "6667",
	})
	assert.Equal(t, "limit_reached", result.Err())

	networks, err := eng.ListNetworks(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, networks, 1)
}

func TestAddNetwork_AlreadyExists(t *testing.T) {
	eng := createTestEngine(t, 0)
	svc := NewService(eng)
	ctx := context.Background()

	addTestUser(t, svc, "alice")
	addTestNetwork(t, svc, "alice", "libera")

	result := svc.Dispatch(ctx, "addnetwork", Params{
		"username": "alice",
		"net_name": "libera",
		"net_addr": "irc.example.org",
		"net_port": "6667",
	})
	assert.Equal(t, "network_exists", result.Err())

	// Network count unchanged.
	networks, err := eng.ListNetworks(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, networks, 1)
}

func TestAddNetwork_ServerRejected(t *testing.T) {
	reg := registry.NewMockRegistry()
	seedMockUser(t, reg, "alice")
	reg.FailAddServer = errors.New("bad endpoint")
	svc := NewService(reg)

	result := svc.Dispatch(context.Background(), "addnetwork", Params{
		"username": "alice",
		"net_name": "libera",
		"net_addr": "irc.libera.chat",
		"net_port": "6697",
	})
	assert.Equal(t, "error_adding_network", result.Err())
}

func TestDeleteNetwork_Success(t *testing.T) {
	eng := createTestEngine(t, 0)
	svc := NewService(eng)
	ctx := context.Background()

	addTestUser(t, svc, "alice")
	addTestNetwork(t, svc, "alice", "libera")

	result := svc.Dispatch(ctx, "delnetwork", Params{
		"username": "alice",
		"net_name": "libera",
	})
	require.Empty(t, result.Err())

	_, err := eng.FindNetwork(ctx, "alice", "libera")
	assert.ErrorIs(t, err, registry.ErrNetworkNotFound)
}

func TestDeleteNetwork_MissingNetworkIsNotAnError(t *testing.T) {
	// Historical wire behavior: deleting a network the user doesn't have
	// still succeeds.
	svc := NewService(createTestEngine(t, 0))

	addTestUser(t, svc, "alice")

	result := svc.Dispatch(context.Background(), "delnetwork", Params{
		"username": "alice",
		"net_name": "nonexistent",
	})
	assert.Empty(t, result.Err())
}

func TestDeleteNetwork_UserNotFound(t *testing.T) {
	svc := NewService(createTestEngine(t, 0))

	result := svc.Dispatch(context.Background(), "delnetwork", Params{
		"username": "ghost",
		"net_name": "libera",
	})
	assert.Equal(t, "user_not_found", result.Err())
}

func TestListNetworks_EmptyList(t *testing.T) {
	svc := NewService(createTestEngine(t, 0))

	addTestUser(t, svc, "alice")

	result := svc.Dispatch(context.Background(), "listnetworks", Params{"username": "alice"})
	require.Empty(t, result.Err())

	networks, ok := result.Get("networks")
	require.True(t, ok)
	require.IsType(t, []NetworkSummary{}, networks)
	assert.Empty(t, networks)
}

func TestListNetworks_UserNotFound(t *testing.T) {
	svc := NewService(createTestEngine(t, 0))

	result := svc.Dispatch(context.Background(), "listnetworks", Params{"username": "ghost"})
	assert.Equal(t, "user_not_found", result.Err())
}

func TestListNetworks_ReportsLiveState(t *testing.T) {
	reg := registry.NewMockRegistry()
	seedMockUser(t, reg, "alice")
	svc := NewService(reg)
	ctx := context.Background()

	require.NoError(t, reg.AddNetwork(ctx, "alice", "libera"))
	require.NoError(t, reg.AddNetwork(ctx, "alice", "oftc"))
	require.NoError(t, reg.MarkConnected("alice", "libera", "irc.libera.chat", true))

	result := svc.Dispatch(ctx, "listnetworks", Params{"username": "alice"})
	require.Empty(t, result.Err())

	networks, ok := result.Get("networks")
	require.True(t, ok)
	summaries := networks.([]NetworkSummary)
	require.Len(t, summaries, 2)

	assert.Equal(t, NetworkSummary{Name: "libera", Server: "irc.libera.chat", Connected: true}, summaries[0])
	// A network with no active server reports an empty server string.
	assert.Equal(t, NetworkSummary{Name: "oftc", Server: "", Connected: false}, summaries[1])
}

func TestConnectDisconnect_TogglesFlagWithoutPersist(t *testing.T) {
	reg := registry.NewMockRegistry()
	seedMockUser(t, reg, "alice")
	svc := NewService(reg)
	ctx := context.Background()

	require.NoError(t, reg.AddNetwork(ctx, "alice", "libera"))

	result := svc.Dispatch(ctx, "networkconnect", Params{
		"username": "alice",
		"net_name": "libera",
	})
	require.Empty(t, result.Err())

	net, err := reg.FindNetwork(ctx, "alice", "libera")
	require.NoError(t, err)
	assert.True(t, net.ConnectEnabled)

	result = svc.Dispatch(ctx, "networkdisconnect", Params{
		"username": "alice",
		"net_name": "libera",
	})
	require.Empty(t, result.Err())

	net, err = reg.FindNetwork(ctx, "alice", "libera")
	require.NoError(t, err)
	assert.False(t, net.ConnectEnabled)

	// Connection-enabled state is transient; this layer never persists it.
	assert.Equal(t, 0, reg.PersistCalls)
	assert.Empty(t, reg.Audits())
}

func TestConnectNetwork_NotFound(t *testing.T) {
	reg := registry.NewMockRegistry()
	seedMockUser(t, reg, "alice")
	svc := NewService(reg)

	result := svc.Dispatch(context.Background(), "networkconnect", Params{
		"username": "alice",
		"net_name": "nonexistent",
	})
	assert.Equal(t, "network_not_found", result.Err())
}

func TestConnectNetwork_MissingUserReportsNetworkNotFound(t *testing.T) {
	svc := NewService(registry.NewMockRegistry())

	result := svc.Dispatch(context.Background(), "networkconnect", Params{
		"username": "ghost",
		"net_name": "libera",
	})
	assert.Equal(t, "network_not_found", result.Err())
}
