// ABOUTME: Network and server persistence plus live connection state
// ABOUTME: Implements the registry network operations over networks/servers tables

package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/2389/bncctl/internal/registry"
)

// liveKey identifies a network in the live state map.
func liveKey(username, name string) string {
	return username + "/" + name
}

// networkID resolves the row ID for a user's network.
func (e *Engine) networkID(ctx context.Context, username, name string) (string, error) {
	query := `SELECT network_id FROM networks WHERE username = ? AND name = ?`

	var id string
	err := e.db.QueryRowContext(ctx, query, username, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		// Distinguish a missing network from a missing owner.
		if _, ferr := e.FindUser(ctx, username); ferr != nil {
			return "", ferr
		}
		return "", registry.ErrNetworkNotFound
	}
	if err != nil {
		return "", fmt.Errorf("querying network: %w", err)
	}
	return id, nil
}

// HasCapacityForNetwork reports whether the user is below the per-user
// network limit.
func (e *Engine) HasCapacityForNetwork(ctx context.Context, username string) (bool, error) {
	query := `SELECT COUNT(*) FROM networks WHERE username = ?`

	var count int
	if err := e.db.QueryRowContext(ctx, query, username).Scan(&count); err != nil {
		return false, fmt.Errorf("counting networks: %w", err)
	}
	return count < e.maxNetworks, nil
}

// FindNetwork retrieves a network snapshot including live session state.
func (e *Engine) FindNetwork(ctx context.Context, username, name string) (*registry.Network, error) {
	if _, err := e.networkID(ctx, username, name); err != nil {
		return nil, err
	}

	n := registry.Network{Name: name}
	e.mu.RLock()
	if live, ok := e.live[liveKey(username, name)]; ok {
		n.ConnectEnabled = live.connectEnabled
		n.Connected = live.connected
		n.Server = live.currentServer
	}
	e.mu.RUnlock()

	return &n, nil
}

// AddNetwork creates an empty network for the user.
func (e *Engine) AddNetwork(ctx context.Context, username, name string) error {
	query := `
		INSERT INTO networks (network_id, username, name, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := e.db.ExecContext(ctx, query,
		uuid.NewString(),
		username,
		name,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: %s", registry.ErrNetworkExists, name)
		}
		return fmt.Errorf("inserting network: %w", err)
	}

	e.logger.Info("created network", "username", username, "network", name)
	return nil
}

// AddServer registers a server endpoint on an existing network. Servers are
// tried in insertion order when the network connects.
func (e *Engine) AddServer(ctx context.Context, username, netName, addr string, port int, pass string, useTLS bool) error {
	if addr == "" {
		return errors.New("server address required")
	}
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid port %d", port)
	}

	netID, err := e.networkID(ctx, username, netName)
	if err != nil {
		return err
	}

	var position int
	countQuery := `SELECT COUNT(*) FROM servers WHERE network_id = ?`
	if err := e.db.QueryRowContext(ctx, countQuery, netID).Scan(&position); err != nil {
		return fmt.Errorf("counting servers: %w", err)
	}

	query := `
		INSERT INTO servers (server_id, network_id, addr, port, pass, tls, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	tls := 0
	if useTLS {
		tls = 1
	}
	_, err = e.db.ExecContext(ctx, query, uuid.NewString(), netID, addr, port, pass, tls, position)
	if err != nil {
		return fmt.Errorf("inserting server: %w", err)
	}

	return nil
}

// DeleteNetwork removes a network and its servers, dropping live state.
func (e *Engine) DeleteNetwork(ctx context.Context, username, name string) error {
	res, err := e.db.ExecContext(ctx,
		`DELETE FROM networks WHERE username = ? AND name = ?`, username, name)
	if err != nil {
		return fmt.Errorf("deleting network: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if rows == 0 {
		return registry.ErrNetworkNotFound
	}

	e.mu.Lock()
	delete(e.live, liveKey(username, name))
	e.mu.Unlock()

	e.logger.Info("deleted network", "username", username, "network", name)
	return nil
}

// ListNetworks returns snapshots of the user's networks in creation order.
func (e *Engine) ListNetworks(ctx context.Context, username string) ([]registry.Network, error) {
	if _, err := e.FindUser(ctx, username); err != nil {
		return nil, err
	}

	query := `SELECT name FROM networks WHERE username = ? ORDER BY created_at, name`

	rows, err := e.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("listing networks: %w", err)
	}
	defer rows.Close()

	networks := []registry.Network{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning network: %w", err)
		}
		networks = append(networks, registry.Network{Name: name})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating networks: %w", err)
	}

	e.mu.RLock()
	for i := range networks {
		if live, ok := e.live[liveKey(username, networks[i].Name)]; ok {
			networks[i].ConnectEnabled = live.connectEnabled
			networks[i].Connected = live.connected
			networks[i].Server = live.currentServer
		}
	}
	e.mu.RUnlock()

	return networks, nil
}

// SetConnectionEnabled flips the desired-connection flag for a network.
// The flag is live state only; it is not written to the database, and the
// session layer decides when a connection actually comes up or down.
func (e *Engine) SetConnectionEnabled(ctx context.Context, username, name string, enabled bool) error {
	if _, err := e.networkID(ctx, username, name); err != nil {
		return err
	}

	e.mu.Lock()
	key := liveKey(username, name)
	live, ok := e.live[key]
	if !ok {
		live = &liveNetwork{}
		e.live[key] = live
	}
	live.connectEnabled = enabled
	e.mu.Unlock()

	e.logger.Info("connection flag changed", "username", username, "network", name, "enabled", enabled)
	return nil
}

// MarkConnected records live session state for a network. Called by the
// session layer when a connection is established or lost.
func (e *Engine) MarkConnected(ctx context.Context, username, name, server string, connected bool) error {
	if _, err := e.networkID(ctx, username, name); err != nil {
		return err
	}

	e.mu.Lock()
	key := liveKey(username, name)
	live, ok := e.live[key]
	if !ok {
		live = &liveNetwork{}
		e.live[key] = live
	}
	live.connected = connected
	if connected {
		live.currentServer = server
	} else {
		live.currentServer = ""
	}
	e.mu.Unlock()

	return nil
}
