// Package web provides the HTTP server and JSON API handlers for rentalhub.
package web

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/rentalhub/rentalhub/internal/access"
	"github.com/rentalhub/rentalhub/internal/auth"
	"github.com/rentalhub/rentalhub/internal/identity"
	"github.com/rentalhub/rentalhub/internal/lease"
	"github.com/rentalhub/rentalhub/internal/logging"
	"github.com/rentalhub/rentalhub/internal/maintenance"
	"github.com/rentalhub/rentalhub/internal/payment"
	"github.com/rentalhub/rentalhub/internal/property"
	"github.com/rentalhub/rentalhub/internal/tenant"
	"github.com/rentalhub/rentalhub/internal/user"
)

// Server is the API HTTP server.
type Server struct {
	users       *user.Store
	tokens      *auth.Tokens
	properties  *property.Service
	tenants     *tenant.Service
	leases      *lease.Service
	maintenance *maintenance.Service
	payments    *payment.Service
	mux         *http.ServeMux
}

// NewServer wires the services and routes over the given database.
func NewServer(db *sql.DB, cfg auth.Config) *Server {
	eval := access.NewEvaluator(access.NewSQLResolver(db))

	s := &Server{
		users:       user.NewStore(db),
		tokens:      auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL),
		properties:  property.NewService(property.NewRepository(db), eval),
		tenants:     tenant.NewService(tenant.NewRepository(db), eval),
		leases:      lease.NewService(lease.NewRepository(db), eval),
		maintenance: maintenance.NewService(maintenance.NewRepository(db), eval),
		payments:    payment.NewService(payment.NewRepository(db), eval),
		mux:         http.NewServeMux(),
	}

	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/auth/", s.handleAuth)
	s.mux.HandleFunc("/api/properties", s.handleProperties)
	s.mux.HandleFunc("/api/properties/", s.handleProperties)
	s.mux.HandleFunc("/api/tenants", s.handleTenants)
	s.mux.HandleFunc("/api/tenants/", s.handleTenants)
	s.mux.HandleFunc("/api/leases", s.handleLeases)
	s.mux.HandleFunc("/api/leases/", s.handleLeases)
	s.mux.HandleFunc("/api/maintenance", s.handleMaintenance)
	s.mux.HandleFunc("/api/maintenance/", s.handleMaintenance)
	s.mux.HandleFunc("/api/payments", s.handlePayments)
	s.mux.HandleFunc("/api/payments/", s.handlePayments)

	return s
}

// Handler returns the full middleware chain around the router.
func (s *Server) Handler() http.Handler {
	return logging.RequestLogger(auth.RequireToken(s.tokens, s.users, s.mux))
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(port int) error {
	addr := fmt.Sprintf(":%d", port)
	fmt.Printf("Starting rentalhub API on http://localhost%s\n", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// actor pulls the authenticated actor off the request. The auth
// middleware guarantees it is present on protected routes.
func actor(w http.ResponseWriter, r *http.Request) (identity.Actor, bool) {
	a, ok := identity.ActorFromContext(r.Context())
	if !ok {
		apiError(w, "authorization required", http.StatusUnauthorized)
	}
	return a, ok
}
