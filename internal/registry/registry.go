// ABOUTME: Registry interface and data types for bouncer user/network administration
// ABOUTME: Defines User, Network, Audit snapshots and the contract the engine implements

package registry

import (
	"context"
	"errors"
	"time"
)

// ErrUserNotFound is returned when a requested user does not exist.
var ErrUserNotFound = errors.New("user not found")

// ErrUserExists is returned when trying to create a user with a taken username.
var ErrUserExists = errors.New("username already exists")

// ErrNetworkNotFound is returned when a user has no network with the given name.
var ErrNetworkNotFound = errors.New("network not found")

// ErrNetworkExists is returned when trying to create a network that already exists
// for the user.
var ErrNetworkExists = errors.New("network already exists")

// User is a snapshot of a bouncer account. The engine owns the underlying
// record; callers never hold live entities past a single operation.
type User struct {
	Username  string
	CreatedAt time.Time
}

// Network is a snapshot of an IRC network configuration owned by a user.
// Server is the name of the currently active endpoint, empty when the
// network has no live server. Connected reflects live session state, not
// the desired ConnectEnabled flag.
type Network struct {
	Name           string
	Server         string
	Connected      bool
	ConnectEnabled bool
}

// Audit action constants for administrative mutations.
const (
	AuditAddUser       = "add_user"
	AuditDeleteUser    = "delete_user"
	AuditSetPassword   = "set_password"
	AuditAddNetwork    = "add_network"
	AuditDeleteNetwork = "delete_network"
)

// Audit is one administrative audit log entry.
type Audit struct {
	ID         string
	Actor      string // admin username, empty when unattributed
	Action     string
	TargetType string // "user" or "network"
	TargetID   string
	Detail     map[string]any
	CreatedAt  time.Time
}

// Registry is the contract the admin layer uses to read and mutate users and
// networks without depending on the engine's internal representation. All
// returned values are copies; implementations provide whatever serialization
// is needed to keep concurrent mutations linearizable.
type Registry interface {
	// Users
	FindUser(ctx context.Context, username string) (*User, error)
	AddUser(ctx context.Context, username, passwordHash, passwordSalt string) error
	DeleteUser(ctx context.Context, username string) error
	SetUserPassword(ctx context.Context, username, passwordHash, passwordSalt string) error
	ListUsers(ctx context.Context) ([]string, error)

	// Networks
	HasCapacityForNetwork(ctx context.Context, username string) (bool, error)
	FindNetwork(ctx context.Context, username, name string) (*Network, error)
	AddNetwork(ctx context.Context, username, name string) error
	AddServer(ctx context.Context, username, netName, addr string, port int, pass string, useTLS bool) error
	DeleteNetwork(ctx context.Context, username, name string) error
	ListNetworks(ctx context.Context, username string) ([]Network, error)

	// SetConnectionEnabled flips the desired-connection flag for a network.
	// It does not establish or tear down an IRC session; that is owned by
	// the engine's session layer.
	SetConnectionEnabled(ctx context.Context, username, name string, enabled bool) error

	// HashPassword hashes a plaintext user password with a fresh random salt.
	HashPassword(password string) (hash, salt string)

	// AppendAudit records an administrative mutation, best effort.
	AppendAudit(ctx context.Context, entry *Audit) error

	// Persist flushes pending configuration state to durable storage.
	// Safe to call once per successful mutation.
	Persist(ctx context.Context) error
}
