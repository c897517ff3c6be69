package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/rentalhub/rentalhub/internal/payment"
)

// handlePayments routes /api/payments requests.
func (s *Server) handlePayments(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/payments")
	path = strings.TrimPrefix(path, "/")

	// /api/payments — list or create
	if path == "" {
		switch r.Method {
		case http.MethodGet:
			opts := payment.ListOptions{
				Status: payment.Status(r.URL.Query().Get("status")),
				Type:   payment.Type(r.URL.Query().Get("type")),
			}
			if v := r.URL.Query().Get("lease_id"); v != "" {
				id, err := strconv.ParseInt(v, 10, 64)
				if err != nil {
					apiError(w, "invalid lease_id", http.StatusBadRequest)
					return
				}
				opts.LeaseID = id
			}
			payments, err := s.payments.List(a, opts)
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

	// /api/payments/{id}
	id, err := strconv.ParseInt(path, 10, 64)
	if err != nil {
		apiError(w, "invalid payment ID", http.StatusBadRequest)
		return
	}
	if r.Method != http.MethodGet {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	p, err := s.payments.Get(a, id)
	if err != nil {
		serviceError(w, err)
		return
	}
	apiJSON(w, p, http.StatusOK)
}
