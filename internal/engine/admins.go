// ABOUTME: Administrator account storage for the control-plane auth gate
// ABOUTME: Admins hold bcrypt password hashes, created via the bootstrap CLI

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

// ErrAdminNotFound is returned when an administrator doesn't exist.
var ErrAdminNotFound = errors.New("admin not found")

// ErrAdminExists is returned when creating an admin with a taken username.
var ErrAdminExists = errors.New("admin username already exists")

// Admin is an administrator account allowed to call the control-plane API.
type Admin struct {
	ID        string
	Username  string
	CreatedAt time.Time
}

// CreateAdmin stores a new administrator with a pre-hashed (bcrypt) password.
func (e *Engine) CreateAdmin(ctx context.Context, username, passwordHash string) error {
	query := `
		INSERT INTO admins (admin_id, username, password_hash, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := e.db.ExecContext(ctx, query,
		uuid.NewString(),
		username,
		passwordHash,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: %s", ErrAdminExists, username)
		}
		return fmt.Errorf("inserting admin: %w", err)
	}

	e.logger.Info("created admin", "username", username)
	return nil
}

// AdminPasswordHash returns the stored bcrypt hash for an administrator.
// Satisfies the auth package's credential store interface.
func (e *Engine) AdminPasswordHash(ctx context.Context, username string) (string, error) {
	query := `SELECT password_hash FROM admins WHERE username = ?`

	var hash string
	err := e.db.QueryRowContext(ctx, query, username).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrAdminNotFound
	}
	if err != nil {
		return "", fmt.Errorf("querying admin: %w", err)
	}
	return hash, nil
}

// CountAdmins returns the number of administrator accounts.
func (e *Engine) CountAdmins(ctx context.Context) (int, error) {
	var count int
	if err := e.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting admins: %w", err)
	}
	return count, nil
}

// ListAudit returns the most recent audit entries, newest first.
func (e *Engine) ListAudit(ctx context.Context, limit int) ([]registry.Audit, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT audit_id, actor, action, target_type, target_id, ts, detail_json
		FROM audit_log
		ORDER BY ts DESC
		LIMIT ?
	`

	rows, err := e.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing audit log: %w", err)
	}
	defer rows.Close()

	entries := []registry.Audit{}
	for rows.Next() {
		entry, err := scanAudit(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit log: %w", err)
	}

	return entries, nil
}
