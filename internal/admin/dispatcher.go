// ABOUTME: Administrative dispatcher mapping action names to operations
// ABOUTME: Fixed table of nine actions with an unknown_method fallback

package admin

import (
	"context"
	"log/slog"

	"github.com/2389/bncctl/internal/auth"
	"github.com/2389/bncctl/internal/registry"
)

// handlerFunc is one administrative operation.
type handlerFunc func(ctx context.Context, params Params) Result

// Service executes administrative operations against an injected Registry.
type Service struct {
	reg     registry.Registry
	logger  *slog.Logger
	actions map[string]handlerFunc
}

// NewService creates a Service bound to the given registry.
func NewService(reg registry.Registry) *Service {
	s := &Service{
		reg:    reg,
		logger: slog.Default().With("component", "admin"),
	}
	s.actions = map[string]handlerFunc{
		"adduser":           s.addUser,
		"deluser":           s.deleteUser,
		"userpassword":      s.setUserPassword,
		"addnetwork":        s.addNetwork,
		"delnetwork":        s.deleteNetwork,
		"listnetworks":      s.listNetworks,
		"listusers":         s.listUsers,
		"networkconnect":    s.connectNetwork,
		"networkdisconnect": s.disconnectNetwork,
	}
	return s
}

// Dispatch routes an action name to its operation. Exactly one operation
// runs per request; an unrecognized action returns unknown_method without
// touching the registry.
func (s *Service) Dispatch(ctx context.Context, action string, params Params) Result {
	h, ok := s.actions[action]
	if !ok {
		s.logger.Warn("unknown action", "action", action)
		return Failure("unknown_method")
	}

	result := h(ctx, params)
	if code := result.Err(); code != "" {
		s.logger.Debug("operation failed", "action", action, "code", code)
	}
	return result
}

// Actions returns the recognized action names.
func (s *Service) Actions() []string {
	names := make([]string, 0, len(s.actions))
	for name := range s.actions {
		names = append(names, name)
	}
	return names
}

// actorFrom extracts the authenticated admin username for audit entries.
func actorFrom(ctx context.Context) string {
	if a := auth.FromContext(ctx); a != nil {
		return a.Username
	}
	return ""
}

// persist asks the registry to write configuration after a successful
// mutation. Persistence failures don't fail the operation; the mutation
// itself already happened.
func (s *Service) persist(ctx context.Context) {
	if err := s.reg.Persist(ctx); err != nil {
		s.logger.Warn("persist failed", "error", err)
	}
}
