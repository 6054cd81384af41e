// Package engine is the bouncer engine: the owner of persistent user
// accounts, IRC network configurations, administrator credentials, and the
// audit log.
//
// # Overview
//
// Engine implements registry.Registry over a SQLite database
// (modernc.org/sqlite, WAL mode). The admin layer talks to it only through
// that interface and receives value snapshots, never live rows.
//
// # Persistence
//
// Mutations are durable as soon as they commit to the WAL. Persist() runs a
// WAL checkpoint, which is the engine's "write config now" point after each
// successful administrative mutation.
//
// # Live state
//
// Per-network connection state (desired-connection flag, connected flag,
// current server) lives only in memory. SetConnectionEnabled records intent;
// MarkConnected is the hook for the session layer that owns actual IRC
// connections, which is outside this package.
//
// # Credentials
//
// Bouncer user passwords are stored as hex(sha256(password+salt)) with a
// fresh 20-character random salt (HashPassword/VerifyPassword).
// Administrator passwords are bcrypt hashes written by the bootstrap CLI and
// checked by the auth package.
package engine
