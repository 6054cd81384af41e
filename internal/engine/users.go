// ABOUTME: User account persistence for the bouncer engine
// ABOUTME: Implements the registry user operations over the users table

package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2389/bncctl/internal/registry"
)

// FindUser retrieves a user snapshot by username. Usernames are case
// sensitive, matching the wire contract.
func (e *Engine) FindUser(ctx context.Context, username string) (*registry.User, error) {
	query := `SELECT username, created_at FROM users WHERE username = ?`

	var u registry.User
	var createdAtStr string

	err := e.db.QueryRowContext(ctx, query, username).Scan(&u.Username, &createdAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, registry.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}

	u.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	return &u, nil
}

// AddUser creates a new user with the given hashed credential.
func (e *Engine) AddUser(ctx context.Context, username, passwordHash, passwordSalt string) error {
	query := `
		INSERT INTO users (username, password_hash, password_salt, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := e.db.ExecContext(ctx, query,
		username,
		passwordHash,
		passwordSalt,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: %s", registry.ErrUserExists, username)
		}
		return fmt.Errorf("inserting user: %w", err)
	}

	e.logger.Info("created user", "username", username)
	return nil
}

// DeleteUser removes a user. Networks and servers cascade, and any live
// connection state for the user's networks is dropped.
func (e *Engine) DeleteUser(ctx context.Context, username string) error {
	res, err := e.db.ExecContext(ctx, `DELETE FROM users WHERE username = ?`, username)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if rows == 0 {
		return registry.ErrUserNotFound
	}

	e.mu.Lock()
	for key := range e.live {
		if strings.HasPrefix(key, username+"/") {
			delete(e.live, key)
		}
	}
	e.mu.Unlock()

	e.logger.Info("deleted user", "username", username)
	return nil
}

// SetUserPassword replaces a user's stored credential.
func (e *Engine) SetUserPassword(ctx context.Context, username, passwordHash, passwordSalt string) error {
	query := `UPDATE users SET password_hash = ?, password_salt = ? WHERE username = ?`

	res, err := e.db.ExecContext(ctx, query, passwordHash, passwordSalt, username)
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if rows == 0 {
		return registry.ErrUserNotFound
	}

	return nil
}

// ListUsers returns every known username in creation order.
func (e *Engine) ListUsers(ctx context.Context) ([]string, error) {
	query := `SELECT username FROM users ORDER BY created_at, username`

	rows, err := e.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	users := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning username: %w", err)
		}
		users = append(users, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}

	return users, nil
}

// userCredentials returns the stored hash and salt for a user.
func (e *Engine) userCredentials(ctx context.Context, username string) (hash, salt string, err error) {
	query := `SELECT password_hash, password_salt FROM users WHERE username = ?`

	err = e.db.QueryRowContext(ctx, query, username).Scan(&hash, &salt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", registry.ErrUserNotFound
	}
	if err != nil {
		return "", "", fmt.Errorf("querying credentials: %w", err)
	}
	return hash, salt, nil
}

// CheckUserPassword verifies a plaintext password against a user's stored
// credential. Used by the IRC client listener, not the admin API.
func (e *Engine) CheckUserPassword(ctx context.Context, username, password string) (bool, error) {
	hash, salt, err := e.userCredentials(ctx, username)
	if err != nil {
		return false, err
	}
	return VerifyPassword(password, hash, salt), nil
}
