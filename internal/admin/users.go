// ABOUTME: User administration operations: adduser, deluser, userpassword, listusers
// ABOUTME: Each validates a typed request, calls the registry, and returns a Result

package admin

import (
	"context"
	"errors"

	"github.com/2389/bncctl/internal/registry"
)

// addUser creates a bouncer account. The password is hashed with a fresh
// random salt before it reaches storage; the plaintext never appears in any
// response.
func (s *Service) addUser(ctx context.Context, params Params) Result {
	req, ok := parseCredential(params)
	if !ok {
		return Failure("invalid_params")
	}

	hash, salt := s.reg.HashPassword(req.Password)

	if err := s.reg.AddUser(ctx, req.Username, hash, salt); err != nil {
		return Failure("error_adding_user").With("description", err.Error())
	}

	_ = s.reg.AppendAudit(ctx, &registry.Audit{
		Actor:      actorFrom(ctx),
		Action:     registry.AuditAddUser,
		TargetType: "user",
		TargetID:   req.Username,
	})
	s.persist(ctx)

	return Success()
}

// deleteUser removes a bouncer account and everything it owns.
func (s *Service) deleteUser(ctx context.Context, params Params) Result {
	req, ok := parseUser(params)
	if !ok {
		return Failure("invalid_params")
	}

	if _, err := s.reg.FindUser(ctx, req.Username); err != nil {
		if errors.Is(err, registry.ErrUserNotFound) {
			return Failure("user_not_exists")
		}
		return Failure("error_deleting_user").With("description", err.Error())
	}

	if err := s.reg.DeleteUser(ctx, req.Username); err != nil {
		return Failure("error_deleting_user").With("description", err.Error())
	}

	_ = s.reg.AppendAudit(ctx, &registry.Audit{
		Actor:      actorFrom(ctx),
		Action:     registry.AuditDeleteUser,
		TargetType: "user",
		TargetID:   req.Username,
	})
	s.persist(ctx)

	return Success()
}

// setUserPassword replaces a user's password with a freshly salted hash.
func (s *Service) setUserPassword(ctx context.Context, params Params) Result {
	req, ok := parseCredential(params)
	if !ok {
		return Failure("invalid_params")
	}

	if _, err := s.reg.FindUser(ctx, req.Username); err != nil {
		if errors.Is(err, registry.ErrUserNotFound) {
			return Failure("user_not_found")
		}
		return Failure("internal_error").With("description", err.Error())
	}

	hash, salt := s.reg.HashPassword(req.Password)
	if err := s.reg.SetUserPassword(ctx, req.Username, hash, salt); err != nil {
		if errors.Is(err, registry.ErrUserNotFound) {
			return Failure("user_not_found")
		}
		return Failure("internal_error").With("description", err.Error())
	}

	_ = s.reg.AppendAudit(ctx, &registry.Audit{
		Actor:      actorFrom(ctx),
		Action:     registry.AuditSetPassword,
		TargetType: "user",
		TargetID:   req.Username,
	})
	s.persist(ctx)

	return Success()
}

// listUsers returns every known username plus a count. No pagination, no
// filtering.
func (s *Service) listUsers(ctx context.Context, params Params) Result {
	users, err := s.reg.ListUsers(ctx)
	if err != nil {
		return Failure("internal_error").With("description", err.Error())
	}
	if users == nil {
		users = []string{}
	}

	return Success().With("users", users).With("count", len(users))
}
