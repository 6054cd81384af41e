// ABOUTME: Network administration operations: addnetwork, delnetwork, listnetworks
// ABOUTME: Plus networkconnect/networkdisconnect desired-state toggles

package admin

import (
	"context"
	"errors"

	"github.com/2389/bncctl/internal/registry"
)

// NetworkSummary is the per-network payload of listnetworks. Server is the
// empty string when the network has no active server.
type NetworkSummary struct {
	Name      string `json:"name"`
	Server    string `json:"server"`
	Connected bool   `json:"connected"`
}

// addNetwork creates a network with its first server endpoint for a user.
func (s *Service) addNetwork(ctx context.Context, params Params) Result {
	req, ok := parseAddNetwork(params)
	if !ok {
		return Failure("invalid_params")
	}

	if _, err := s.reg.FindUser(ctx, req.Username); err != nil {
		if errors.Is(err, registry.ErrUserNotFound) {
			return Failure("user_not_found")
		}
		return Failure("internal_error").With("description", err.Error())
	}

	hasCapacity, err := s.reg.HasCapacityForNetwork(ctx, req.Username)
	if err != nil {
		return Failure("internal_error").With("description", err.Error())
	}
	if !hasCapacity {
		return Failure("limit_reached")
	}

	if _, err := s.reg.FindNetwork(ctx, req.Username, req.Name); err == nil {
		return Failure("network_exists")
	} else if !errors.Is(err, registry.ErrNetworkNotFound) {
		return Failure("internal_error").With("description", err.Error())
	}

	if err := s.reg.AddNetwork(ctx, req.Username, req.Name); err != nil {
		if errors.Is(err, registry.ErrNetworkExists) {
			return Failure("network_exists")
		}
		return Failure("error_adding_network").With("description", err.Error())
	}

	if err := s.reg.AddServer(ctx, req.Username, req.Name, req.Addr, req.Port, req.Pass, req.TLS); err != nil {
		return Failure("error_adding_network").With("description", err.Error())
	}

	_ = s.reg.AppendAudit(ctx, &registry.Audit{
		Actor:      actorFrom(ctx),
		Action:     registry.AuditAddNetwork,
		TargetType: "network",
		TargetID:   req.Username + "/" + req.Name,
		Detail: map[string]any{
			"addr": req.Addr,
			"port": req.Port,
			"tls":  req.TLS,
		},
	})
	s.persist(ctx)

	return Success()
}

// deleteNetwork removes a network. Deleting a name the user doesn't have is
// not an error, matching the historical wire behavior.
func (s *Service) deleteNetwork(ctx context.Context, params Params) Result {
	req, ok := parseNetwork(params)
	if !ok {
		return Failure("invalid_params")
	}

	if _, err := s.reg.FindUser(ctx, req.Username); err != nil {
		if errors.Is(err, registry.ErrUserNotFound) {
			return Failure("user_not_found")
		}
		return Failure("internal_error").With("description", err.Error())
	}

	if err := s.reg.DeleteNetwork(ctx, req.Username, req.Name); err != nil {
		if !errors.Is(err, registry.ErrNetworkNotFound) {
			return Failure("internal_error").With("description", err.Error())
		}
	} else {
		_ = s.reg.AppendAudit(ctx, &registry.Audit{
			Actor:      actorFrom(ctx),
			Action:     registry.AuditDeleteNetwork,
			TargetType: "network",
			TargetID:   req.Username + "/" + req.Name,
		})
	}
	s.persist(ctx)

	return Success()
}

// listNetworks returns name, active server, and connection status for each
// of the user's networks.
func (s *Service) listNetworks(ctx context.Context, params Params) Result {
	req, ok := parseUser(params)
	if !ok {
		return Failure("invalid_params")
	}

	networks, err := s.reg.ListNetworks(ctx, req.Username)
	if err != nil {
		if errors.Is(err, registry.ErrUserNotFound) {
			return Failure("user_not_found")
		}
		return Failure("internal_error").With("description", err.Error())
	}

	summaries := make([]NetworkSummary, 0, len(networks))
	for _, n := range networks {
		summaries = append(summaries, NetworkSummary{
			Name:      n.Name,
			Server:    n.Server,
			Connected: n.Connected,
		})
	}

	return Success().With("networks", summaries)
}

// connectNetwork enables the desired-connection flag. The session layer
// brings the connection up asynchronously; nothing is persisted here.
func (s *Service) connectNetwork(ctx context.Context, params Params) Result {
	return s.setConnectionEnabled(ctx, params, true)
}

// disconnectNetwork disables the desired-connection flag.
func (s *Service) disconnectNetwork(ctx context.Context, params Params) Result {
	return s.setConnectionEnabled(ctx, params, false)
}

func (s *Service) setConnectionEnabled(ctx context.Context, params Params, enabled bool) Result {
	req, ok := parseNetwork(params)
	if !ok {
		return Failure("invalid_params")
	}

	err := s.reg.SetConnectionEnabled(ctx, req.Username, req.Name, enabled)
	if err != nil {
		// A missing owner reports the same as a missing network.
		if errors.Is(err, registry.ErrNetworkNotFound) || errors.Is(err, registry.ErrUserNotFound) {
			return Failure("network_not_found")
		}
		return Failure("internal_error").With("description", err.Error())
	}

	return Success()
}
