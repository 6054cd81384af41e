// ABOUTME: HTTP middleware enforcing administrator authentication
// ABOUTME: Accepts Basic (bcrypt) or Bearer (JWT) credentials before dispatch

package auth

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// CredentialStore provides access to stored administrator credentials.
// Implemented by the engine's admins table.
type CredentialStore interface {
	AdminPasswordHash(ctx context.Context, username string) (string, error)
}

// dummyHash keeps bcrypt comparison timing constant when the username does
// not exist, so failures can't enumerate valid admin accounts.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Middleware returns an HTTP middleware requiring every request to carry
// verified administrator credentials: either HTTP Basic checked against the
// credential store, or a Bearer token checked by the verifier. On success
// the AuthContext is attached to the request context.
func Middleware(creds CredentialStore, verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")

			if strings.HasPrefix(header, "Bearer ") {
				username, ok := verifyBearer(r.Context(), creds, verifier, strings.TrimPrefix(header, "Bearer "))
				if !ok {
					unauthorized(w, "invalid token")
					return
				}
				authCtx := &AuthContext{Username: username, Method: "bearer"}
				next.ServeHTTP(w, r.WithContext(WithAuth(r.Context(), authCtx)))
				return
			}

			username, password, ok := r.BasicAuth()
			if !ok {
				unauthorized(w, "authentication required")
				return
			}

			hash, err := creds.AdminPasswordHash(r.Context(), username)
			if err != nil {
				// Dummy comparison to maintain constant timing
				_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
				unauthorized(w, "invalid credentials")
				return
			}

			if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
				unauthorized(w, "invalid credentials")
				return
			}

			authCtx := &AuthContext{Username: username, Method: "basic"}
			next.ServeHTTP(w, r.WithContext(WithAuth(r.Context(), authCtx)))
		})
	}
}

// verifyBearer validates a bearer token and confirms the subject is still a
// known administrator.
func verifyBearer(ctx context.Context, creds CredentialStore, verifier TokenVerifier, token string) (string, bool) {
	if verifier == nil || token == "" {
		return "", false
	}

	username, err := verifier.Verify(token)
	if err != nil {
		return "", false
	}

	if _, err := creds.AdminPasswordHash(ctx, username); err != nil {
		return "", false
	}

	return username, true
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Basic realm="bncctl"`)
	http.Error(w, `{"error":"`+msg+`"}`, http.StatusUnauthorized)
}
