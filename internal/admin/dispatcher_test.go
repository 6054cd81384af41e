// ABOUTME: Tests for the administrative dispatcher
// ABOUTME: Covers unknown actions, the fixed action table, and validation side effects

package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/bncctl/internal/registry"
)

func TestDispatch_UnknownAction(t *testing.T) {
	reg := registry.NewMockRegistry()
	svc := NewService(reg)

	result := svc.Dispatch(context.Background(), "makecoffee", Params{"username": "alice"})
	assert.Equal(t, "unknown_method", result.Err())
	assert.Equal(t, 0, reg.MutationCalls)
	assert.Equal(t, 0, reg.PersistCalls)
}

func TestDispatch_ActionTableComplete(t *testing.T) {
	svc := NewService(registry.NewMockRegistry())

	expected := []string{
		"adduser", "deluser", "userpassword",
		"addnetwork", "delnetwork", "listnetworks", "listusers",
		"networkconnect", "networkdisconnect",
	}
	assert.ElementsMatch(t, expected, svc.Actions())
}

func TestDispatch_MissingParamsAreSideEffectFree(t *testing.T) {
	// Every action with required parameters must reject an empty parameter
	// map before any registry mutation happens.
	actions := []string{
		"adduser", "deluser", "userpassword",
		"addnetwork", "delnetwork", "listnetworks",
		"networkconnect", "networkdisconnect",
	}

	for _, action := range actions {
		t.Run(action, func(t *testing.T) {
			reg := registry.NewMockRegistry()
			svc := NewService(reg)

			result := svc.Dispatch(context.Background(), action, Params{})
			assert.Equal(t, "invalid_params", result.Err())
			assert.Equal(t, 0, reg.MutationCalls)
			assert.Equal(t, 0, reg.PersistCalls)
			assert.Empty(t, reg.Audits())
		})
	}
}

func TestDispatch_EmptyStringParamsRejected(t *testing.T) {
	reg := registry.NewMockRegistry()
	svc := NewService(reg)

	result := svc.Dispatch(context.Background(), "adduser", Params{
		"username": "alice",
		"password": "",
	})
	assert.Equal(t, "invalid_params", result.Err())
	assert.Equal(t, 0, reg.MutationCalls)
}

func TestDispatch_AddNetworkMalformedPort(t *testing.T) {
	reg := registry.NewMockRegistry()
	seedMockUser(t, reg, "alice")
	before := reg.MutationCalls
	svc := NewService(reg)

	for _, port := range []string{"", "irc", "-1", "0", "66x"} {
		result := svc.Dispatch(context.Background(), "addnetwork", Params{
			"username": "alice",
			"net_name": "libera",
			"net_addr": "irc.libera.chat",
			"net_port": port,
		})
		require.Equal(t, "invalid_params", result.Err(), "port %q", port)
	}
	assert.Equal(t, before, reg.MutationCalls)
}
