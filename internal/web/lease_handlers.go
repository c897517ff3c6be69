package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/rentalhub/rentalhub/internal/lease"
	"github.com/rentalhub/rentalhub/internal/payment"
)

// handleLeases routes /api/leases requests.
func (s *Server) handleLeases(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/leases")
	path = strings.TrimPrefix(path, "/")

	// /api/leases — list or create
	if path == "" {
		switch r.Method {
		case http.MethodGet:
			opts := lease.ListOptions{
				Status: lease.Status(r.URL.Query().Get("status")),
			}
			if v := r.URL.Query().Get("property_id"); v != "" {
				id, err := strconv.ParseInt(v, 10, 64)
				if err != nil {
					apiError(w, "invalid property_id", http.StatusBadRequest)
					return
				}
				opts.PropertyID = id
			}
			if v := r.URL.Query().Get("tenant_id"); v != "" {
				id, err := strconv.ParseInt(v, 10, 64)
				if err != nil {
					apiError(w, "invalid tenant_id", http.StatusBadRequest)
					return
				}
				opts.TenantID = id
			}
			leases, err := s.leases.List(a, opts)
			if err != nil {
				serviceError(w, err)
				return
			}
			apiJSON(w, leases, http.StatusOK)
		case http.MethodPost:
			var n lease.NewLease
			if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
				apiError(w, "invalid JSON", http.StatusBadRequest)
				return
			}
			l, err := s.leases.Create(a, n)
			if err != nil {
				serviceError(w, err)
				return
			}
			apiJSON(w, l, http.StatusCreated)
		default:
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// /api/leases/{id}/payments
	if strings.HasSuffix(path, "/payments") {
		id, err := strconv.ParseInt(strings.TrimSuffix(path, "/payments"), 10, 64)
		if err != nil {
			apiError(w, "invalid lease ID", http.StatusBadRequest)
			return
		}
		switch r.Method {
		case http.MethodGet:
			payments, err := s.payments.ListForLease(a, id)
			if err != nil {
				serviceError(w, err)
				return
			}
			apiJSON(w, payments, http.StatusOK)
		case http.MethodPost:
			var n payment.NewPayment
			if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
				apiError(w, "invalid JSON", http.StatusBadRequest)
				return
			}
			n.LeaseID = id
			p, err := s.payments.Create(a, n)
			if err != nil {
				serviceError(w, err)
				return
			}
			apiJSON(w, p, http.StatusCreated)
		default:
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// /api/leases/{id} — get, update or delete
	id, err := strconv.ParseInt(path, 10, 64)
	if err != nil {
		apiError(w, "invalid lease ID", http.StatusBadRequest)
		return
	}
	switch r.Method {
	case http.MethodGet:
		l, err := s.leases.Get(a, id)
		if err != nil {
			serviceError(w, err)
			return
		}
		apiJSON(w, l, http.StatusOK)
	case http.MethodPut:
		var upd lease.Update
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			apiError(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		l, err := s.leases.Update(a, id, upd)
		if err != nil {
			serviceError(w, err)
			return
		}
		apiJSON(w, l, http.StatusOK)
	case http.MethodDelete:
		if err := s.leases.Delete(a, id); err != nil {
			serviceError(w, err)
			return
		}
		apiJSON(w, map[string]string{"message": "lease deleted"}, http.StatusOK)
	default:
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
