// Package registry defines the contract between the administrative API and
// the bouncer engine.
//
// # Overview
//
// The admin layer never touches engine internals. It reads and mutates users
// and networks exclusively through the Registry interface, receiving value
// snapshots (User, Network) rather than live entities. The engine package
// provides the production implementation; MockRegistry provides an in-memory
// test double with injectable failures.
//
// # Error contract
//
// Implementations report absent entities and business-rule conflicts with the
// sentinel errors in this package (ErrUserNotFound, ErrUserExists,
// ErrNetworkNotFound, ErrNetworkExists), possibly wrapped. Anything else is
// an engine failure and carries its own description.
//
// # Connection state
//
// SetConnectionEnabled only records the desired-connection flag. Whether a
// network is actually connected (Network.Connected, Network.Server) is live
// session state owned by the engine and is never persisted by this layer.
package registry
