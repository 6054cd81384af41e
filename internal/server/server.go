// ABOUTME: HTTP surface of the control-plane API
// ABOUTME: Routes /{action} through the auth gate into the dispatcher

package server

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/2389/bncctl/internal/admin"
	"github.com/2389/bncctl/internal/auth"
	"github.com/2389/bncctl/internal/codec"
)

// Server exposes the administrative dispatcher over HTTP.
type Server struct {
	svc    *admin.Service
	logger *slog.Logger
}

// New creates a Server around the given admin service.
func New(svc *admin.Service) *Server {
	return &Server{
		svc:    svc,
		logger: slog.Default().With("component", "server"),
	}
}

// Handler builds the HTTP handler tree. Every action route goes through the
// auth gate; /healthz does not.
func (s *Server) Handler(creds auth.CredentialStore, verifier auth.TokenVerifier) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)

	gate := auth.Middleware(creds, verifier)
	mux.Handle("/{action}", gate(http.HandlerFunc(s.handleAction)))

	return mux
}

// handleHealth reports liveness without requiring credentials.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleAction runs one administrative request end to end: extract the flat
// parameter map, dispatch, encode, and write the exact-length body.
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	action := r.PathValue("action")
	params := extractParams(r)

	result := s.svc.Dispatch(r.Context(), action, params)

	format := codec.ParseFormat(params.Get("response"))
	body, err := codec.Encode(result, format)
	if err != nil {
		s.logger.Error("encoding response", "action", action, "error", err)
		http.Error(w, `{"error":"encoding_failed"}`, http.StatusInternalServerError)
		return
	}

	actor := ""
	if a := auth.FromContext(r.Context()); a != nil {
		actor = a.Username
	}
	s.logger.Info("handled request",
		"action", action,
		"admin", actor,
		"result", resultCode(result),
	)

	// The response declares its exact byte length; no chunked encoding.
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// extractParams flattens query string and form values into the parameter
// map. First value wins for repeated keys.
func extractParams(r *http.Request) admin.Params {
	params := admin.Params{}

	if err := r.ParseForm(); err == nil {
		for key, values := range r.Form {
			if len(values) > 0 {
				params[key] = values[0]
			}
		}
		return params
	}

	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

func resultCode(result admin.Result) string {
	if code := result.Err(); code != "" {
		return code
	}
	return "ok"
}
