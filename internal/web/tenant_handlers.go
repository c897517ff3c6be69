package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/rentalhub/rentalhub/internal/lease"
	"github.com/rentalhub/rentalhub/internal/tenant"
)

// handleTenants routes /api/tenants requests.
func (s *Server) handleTenants(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/tenants")
	path = strings.TrimPrefix(path, "/")

	// /api/tenants — list or create
	if path == "" {
		switch r.Method {
		case http.MethodGet:
			opts := tenant.ListOptions{
				Status: tenant.Status(r.URL.Query().Get("status")),
			}
			if v := r.URL.Query().Get("min_income"); v != "" {
				f, err := strconv.ParseFloat(v, 64)
				if err != nil {
					apiError(w, "invalid min_income", http.StatusBadRequest)
					return
				}
				opts.MinIncome = &f
			}
			if v := r.URL.Query().Get("max_income"); v != "" {
				f, err := strconv.ParseFloat(v, 64)
				if err != nil {
					apiError(w, "invalid max_income", http.StatusBadRequest)
					return
				}
				opts.MaxIncome = &f
			}
			tenants, err := s.tenants.List(a, opts)
			if err != nil {
				serviceError(w, err)
				return
			}
			apiJSON(w, tenants, http.StatusOK)
		case http.MethodPost:
			var n tenant.NewTenant
			if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
				apiError(w, "invalid JSON", http.StatusBadRequest)
				return
			}
			tn, err := s.tenants.Create(a, n)
			if err != nil {
				serviceError(w, err)
				return
			}
			apiJSON(w, tn, http.StatusCreated)
		default:
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// /api/tenants/{id}/leases
	if strings.HasSuffix(path, "/leases") {
		id, err := strconv.ParseInt(strings.TrimSuffix(path, "/leases"), 10, 64)
		if err != nil {
			apiError(w, "invalid tenant ID", http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet {
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if _, err := s.tenants.Get(a, id); err != nil {
			serviceError(w, err)
			return
		}
		leases, err := s.leases.List(a, lease.ListOptions{TenantID: id})
		if err != nil {
			serviceError(w, err)
			return
		}
		apiJSON(w, leases, http.StatusOK)
		return
	}

	// /api/tenants/{id}/check-affordability
	if strings.HasSuffix(path, "/check-affordability") {
		id, err := strconv.ParseInt(strings.TrimSuffix(path, "/check-affordability"), 10, 64)
		if err != nil {
			apiError(w, "invalid tenant ID", http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodPost {
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			PropertyID int64 `json:"property_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiError(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		// Resolve the property through its service so absent or foreign
		// ids answer with the right status, then check against its rent.
		prop, err := s.properties.Get(a, req.PropertyID)
		if err != nil {
			serviceError(w, err)
			return
		}
		result, err := s.tenants.CheckAffordability(a, id, prop.RentAmount)
		if err != nil {
			serviceError(w, err)
			return
		}
		apiJSON(w, result, http.StatusOK)
		return
	}

	// /api/tenants/{id} — get, update or delete
	id, err := strconv.ParseInt(path, 10, 64)
	if err != nil {
		apiError(w, "invalid tenant ID", http.StatusBadRequest)
		return
	}
	switch r.Method {
	case http.MethodGet:
		tn, err := s.tenants.Get(a, id)
		if err != nil {
			serviceError(w, err)
			return
		}
		apiJSON(w, tn, http.StatusOK)
	case http.MethodPut:
		var upd tenant.Update
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			apiError(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		tn, err := s.tenants.Update(a, id, upd)
		if err != nil {
			serviceError(w, err)
			return
		}
		apiJSON(w, tn, http.StatusOK)
	case http.MethodDelete:
		if err := s.tenants.Delete(a, id); err != nil {
			serviceError(w, err)
			return
		}
		apiJSON(w, map[string]string{"message": "tenant deleted"}, http.StatusOK)
	default:
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
