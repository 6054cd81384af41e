// ABOUTME: SQLite-backed bouncer engine implementing the registry contract
// ABOUTME: Owns users, networks, servers, admins and the audit log

package engine

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/2389/bncctl/internal/registry"
)

// DefaultMaxNetworks is the per-user network limit when the config does not
// set one.
const DefaultMaxNetworks = 3

// Options configures a new Engine.
type Options struct {
	// Path is the SQLite database file location.
	Path string

	// MaxNetworks bounds networks per user. Zero selects DefaultMaxNetworks.
	MaxNetworks int
}

// liveNetwork tracks per-network session state that is never written to disk.
type liveNetwork struct {
	connectEnabled bool
	connected      bool
	currentServer  string
}

// Engine is the bouncer engine. It owns all persistent user and network
// state and implements registry.Registry for the admin layer.
type Engine struct {
	db          *sql.DB
	logger      *slog.Logger
	maxNetworks int

	mu   sync.RWMutex
	live map[string]*liveNetwork // keyed by username + "/" + network name
}

// Ensure Engine implements the registry contract.
var _ registry.Registry = (*Engine)(nil)

// New opens the engine database at opts.Path, creating parent directories
// and the schema as needed.
func New(opts Options) (*Engine, error) {
	logger := slog.Default().With("component", "engine")

	dir := filepath.Dir(opts.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Pragmas below are per-connection; a single pooled connection keeps
	// them in effect and avoids SQLITE_BUSY on concurrent writes.
	db.SetMaxOpenConns(1)

	// WAL mode for concurrent admin requests
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	maxNetworks := opts.MaxNetworks
	if maxNetworks <= 0 {
		maxNetworks = DefaultMaxNetworks
	}

	e := &Engine{
		db:          db,
		logger:      logger,
		maxNetworks: maxNetworks,
		live:        make(map[string]*liveNetwork),
	}

	if err := e.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("engine initialized", "path", opts.Path, "max_networks", maxNetworks)
	return e, nil
}

// createSchema creates the database tables if they don't exist.
func (e *Engine) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			username      TEXT PRIMARY KEY,
			password_hash TEXT NOT NULL,
			password_salt TEXT NOT NULL,
			created_at    TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS networks (
			network_id TEXT PRIMARY KEY,
			username   TEXT NOT NULL REFERENCES users(username) ON DELETE CASCADE,
			name       TEXT NOT NULL,
			created_at TEXT NOT NULL,

			UNIQUE(username, name)
		);

		CREATE INDEX IF NOT EXISTS idx_networks_username ON networks(username);

		CREATE TABLE IF NOT EXISTS servers (
			server_id  TEXT PRIMARY KEY,
			network_id TEXT NOT NULL REFERENCES networks(network_id) ON DELETE CASCADE,
			addr       TEXT NOT NULL,
			port       INTEGER NOT NULL,
			pass       TEXT,
			tls        INTEGER NOT NULL DEFAULT 0,
			position   INTEGER NOT NULL,

			CHECK (port > 0 AND port < 65536)
		);

		CREATE INDEX IF NOT EXISTS idx_servers_network ON servers(network_id, position);

		CREATE TABLE IF NOT EXISTS admins (
			admin_id      TEXT PRIMARY KEY,
			username      TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at    TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS audit_log (
			audit_id    TEXT PRIMARY KEY,
			actor       TEXT NOT NULL,
			action      TEXT NOT NULL,
			target_type TEXT NOT NULL,
			target_id   TEXT NOT NULL,
			ts          TEXT NOT NULL,
			detail_json TEXT,

			CHECK (action IN (
				'add_user',
				'delete_user',
				'set_password',
				'add_network',
				'delete_network'
			))
		);

		CREATE INDEX IF NOT EXISTS idx_audit_ts ON audit_log(ts DESC);
	`

	if _, err := e.db.Exec(schema); err != nil {
		return err
	}
	return nil
}

// Persist flushes the WAL to the main database file. This is the engine's
// "write config now" point; mutations are already durable in the WAL, so
// calling it more than once per mutation is harmless.
func (e *Engine) Persist(ctx context.Context) error {
	if _, err := e.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return fmt.Errorf("checkpointing database: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (e *Engine) Close() error {
	return e.db.Close()
}

// isUniqueConstraintError reports whether err is a SQLite unique constraint
// violation.
func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
