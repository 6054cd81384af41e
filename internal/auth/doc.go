// Package auth is the administrator authentication gate in front of the
// control-plane dispatcher.
//
// Every API request must be attributable to an authenticated administrator.
// Two credential forms are accepted:
//
//   - HTTP Basic: username/password checked with bcrypt against the
//     engine's admins table, with constant-time dummy comparison for
//     unknown usernames.
//   - Bearer: an HS256 JWT minted by "bncctl token", whose sub claim names
//     an existing administrator.
//
// On success Middleware attaches an AuthContext to the request context;
// downstream code reads it via FromContext (e.g. for audit attribution).
// There are no roles beyond the binary admin check: holding valid
// credentials is being an administrator.
package auth
