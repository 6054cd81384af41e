// ABOUTME: Mock Registry implementation for testing
// ABOUTME: In-memory users/networks with injectable failures and call counters

package registry

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// MockRegistry is an in-memory Registry implementation for testing. Failure
// fields let tests inject engine errors; counters let tests assert which
// calls happened.
type MockRegistry struct {
	mu       sync.RWMutex
	users    map[string]*User
	creds    map[string][2]string // username -> {hash, salt}
	networks map[string][]*Network
	audits   []Audit

	// MaxNetworks bounds networks per user. Zero means unlimited.
	MaxNetworks int

	// Injected failures
	FailAddUser    error
	FailDeleteUser error
	FailAddServer  error

	// Call counters
	PersistCalls  int
	MutationCalls int
}

// NewMockRegistry creates an empty MockRegistry.
func NewMockRegistry() *MockRegistry {
	return &MockRegistry{
		users:    make(map[string]*User),
		creds:    make(map[string][2]string),
		networks: make(map[string][]*Network),
	}
}

// FindUser retrieves a user snapshot by username.
func (m *MockRegistry) FindUser(ctx context.Context, username string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	out := *u
	return &out, nil
}

// AddUser creates a user with the given credential.
func (m *MockRegistry) AddUser(ctx context.Context, username, passwordHash, passwordSalt string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.MutationCalls++
	if m.FailAddUser != nil {
		return m.FailAddUser
	}
	if _, ok := m.users[username]; ok {
		return ErrUserExists
	}
	m.users[username] = &User{Username: username, CreatedAt: time.Now().UTC()}
	m.creds[username] = [2]string{passwordHash, passwordSalt}
	return nil
}

// DeleteUser removes a user and all of its networks.
func (m *MockRegistry) DeleteUser(ctx context.Context, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.MutationCalls++
	if m.FailDeleteUser != nil {
		return m.FailDeleteUser
	}
	if _, ok := m.users[username]; !ok {
		return ErrUserNotFound
	}
	delete(m.users, username)
	delete(m.creds, username)
	delete(m.networks, username)
	return nil
}

// SetUserPassword replaces a user's stored credential.
func (m *MockRegistry) SetUserPassword(ctx context.Context, username, passwordHash, passwordSalt string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.MutationCalls++
	if _, ok := m.users[username]; !ok {
		return ErrUserNotFound
	}
	m.creds[username] = [2]string{passwordHash, passwordSalt}
	return nil
}

// ListUsers returns all usernames sorted lexically.
func (m *MockRegistry) ListUsers(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.users))
	for name := range m.users {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// HasCapacityForNetwork reports whether the user may add another network.
func (m *MockRegistry) HasCapacityForNetwork(ctx context.Context, username string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.MaxNetworks == 0 {
		return true, nil
	}
	return len(m.networks[username]) < m.MaxNetworks, nil
}

// FindNetwork retrieves a network snapshot by owner and name.
func (m *MockRegistry) FindNetwork(ctx context.Context, username, name string) (*Network, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n, err := m.findLocked(username, name)
	if err != nil {
		return nil, err
	}
	out := *n
	return &out, nil
}

func (m *MockRegistry) findLocked(username, name string) (*Network, error) {
	if _, ok := m.users[username]; !ok {
		return nil, ErrUserNotFound
	}
	for _, n := range m.networks[username] {
		if n.Name == name {
			return n, nil
		}
	}
	return nil, ErrNetworkNotFound
}

// AddNetwork creates an empty network for the user.
func (m *MockRegistry) AddNetwork(ctx context.Context, username, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.MutationCalls++
	if _, ok := m.users[username]; !ok {
		return ErrUserNotFound
	}
	if _, err := m.findLocked(username, name); err == nil {
		return ErrNetworkExists
	}
	m.networks[username] = append(m.networks[username], &Network{Name: name})
	return nil
}

// AddServer registers a server endpoint on an existing network.
func (m *MockRegistry) AddServer(ctx context.Context, username, netName, addr string, port int, pass string, useTLS bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.MutationCalls++
	if m.FailAddServer != nil {
		return m.FailAddServer
	}
	_, err := m.findLocked(username, netName)
	return err
}

// DeleteNetwork removes a network by owner and name.
func (m *MockRegistry) DeleteNetwork(ctx context.Context, username, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.MutationCalls++
	if _, ok := m.users[username]; !ok {
		return ErrUserNotFound
	}
	nets := m.networks[username]
	for i, n := range nets {
		if n.Name == name {
			m.networks[username] = append(nets[:i], nets[i+1:]...)
			return nil
		}
	}
	return ErrNetworkNotFound
}

// ListNetworks returns snapshots of the user's networks in insertion order.
func (m *MockRegistry) ListNetworks(ctx context.Context, username string) ([]Network, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.users[username]; !ok {
		return nil, ErrUserNotFound
	}
	out := make([]Network, 0, len(m.networks[username]))
	for _, n := range m.networks[username] {
		out = append(out, *n)
	}
	return out, nil
}

// SetConnectionEnabled flips the desired-connection flag.
func (m *MockRegistry) SetConnectionEnabled(ctx context.Context, username, name string, enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, err := m.findLocked(username, name)
	if err != nil {
		return err
	}
	n.ConnectEnabled = enabled
	return nil
}

// MarkConnected sets live session state on a network, simulating the
// engine's session layer. Test helper only.
func (m *MockRegistry) MarkConnected(username, name, server string, connected bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, err := m.findLocked(username, name)
	if err != nil {
		return err
	}
	n.Server = server
	n.Connected = connected
	return nil
}

// HashPassword returns a deterministic fake credential for assertions.
func (m *MockRegistry) HashPassword(password string) (hash, salt string) {
	return "hashed:" + password, "mocksalt"
}

// Credentials returns the stored hash and salt for a user. Test helper only.
func (m *MockRegistry) Credentials(username string) (hash, salt string, err error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cred, ok := m.creds[username]
	if !ok {
		return "", "", ErrUserNotFound
	}
	return cred[0], cred[1], nil
}

// AppendAudit records the entry in memory.
func (m *MockRegistry) AppendAudit(ctx context.Context, entry *Audit) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry == nil {
		return errors.New("nil audit entry")
	}
	m.audits = append(m.audits, *entry)
	return nil
}

// Audits returns a copy of the recorded audit entries.
func (m *MockRegistry) Audits() []Audit {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Audit, len(m.audits))
	copy(out, m.audits)
	return out
}

// Persist counts the call and succeeds.
func (m *MockRegistry) Persist(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PersistCalls++
	return nil
}

// Ensure MockRegistry implements Registry.
var _ Registry = (*MockRegistry)(nil)
