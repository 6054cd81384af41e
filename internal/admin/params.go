// ABOUTME: Request parameter schemas for the administrative operations
// ABOUTME: Flat string params parsed once into typed request structs

package admin

import "strconv"

// Params is the flat string-keyed parameter mapping parsed from an inbound
// request. Absent parameters resolve to the empty string.
type Params map[string]string

// Get returns the named parameter, or "" when absent.
func (p Params) Get(key string) string {
	return p[key]
}

type userRequest struct {
	Username string
}

type credentialRequest struct {
	Username string
	Password string
}

type networkRequest struct {
	Username string
	Name     string
}

type addNetworkRequest struct {
	Username string
	Name     string
	Addr     string
	Port     int
	Pass     string
	TLS      bool
}

// Each parse function checks the operation's required parameters once, up
// front. A false return means invalid_params; no registry call has happened.

func parseUser(p Params) (userRequest, bool) {
	req := userRequest{Username: p.Get("username")}
	return req, req.Username != ""
}

func parseCredential(p Params) (credentialRequest, bool) {
	req := credentialRequest{
		Username: p.Get("username"),
		Password: p.Get("password"),
	}
	return req, req.Username != "" && req.Password != ""
}

func parseNetwork(p Params) (networkRequest, bool) {
	req := networkRequest{
		Username: p.Get("username"),
		Name:     p.Get("net_name"),
	}
	return req, req.Username != "" && req.Name != ""
}

func parseAddNetwork(p Params) (addNetworkRequest, bool) {
	req := addNetworkRequest{
		Username: p.Get("username"),
		Name:     p.Get("net_name"),
		Addr:     p.Get("net_addr"),
		Pass:     p.Get("net_pass"),
		TLS:      p.Get("net_ssl") == "1",
	}
	if req.Username == "" || req.Name == "" || req.Addr == "" {
		return req, false
	}

	// A malformed or non-positive port is a caller error, never defaulted.
	port, err := strconv.Atoi(p.Get("net_port"))
	if err != nil || port <= 0 {
		return req, false
	}
	req.Port = port

	return req, true
}
