package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/rentalhub/rentalhub/internal/lease"
	"github.com/rentalhub/rentalhub/internal/maintenance"
	"github.com/rentalhub/rentalhub/internal/property"
)

// handleProperties routes /api/properties requests.
func (s *Server) handleProperties(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/properties")
	path = strings.TrimPrefix(path, "/")

	// /api/properties — list or create
	if path == "" {
		switch r.Method {
		case http.MethodGet:
			opts := property.ListOptions{
				Status: property.Status(r.URL.Query().Get("status")),
				Type:   property.Type(r.URL.Query().Get("type")),
				City:   r.URL.Query().Get("city"),
			}
			if v := r.URL.Query().Get("min_price"); v != "" {
				f, err := strconv.ParseFloat(v, 64)
				if err != nil {
					apiError(w, "invalid min_price", http.StatusBadRequest)
					return
				}
				opts.MinPrice = &f
			}
			if v := r.URL.Query().Get("max_price"); v != "" {
				f, err := strconv.ParseFloat(v, 64)
				if err != nil {
					apiError(w, "invalid max_price", http.StatusBadRequest)
					return
				}
				opts.MaxPrice = &f
			}
			properties, err := s.properties.List(a, opts)
			if err != nil {
				serviceError(w, err)
				return
			}
			apiJSON(w, properties, http.StatusOK)
		case http.MethodPost:
			var n property.NewProperty
			if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
				apiError(w, "invalid JSON", http.StatusBadRequest)
				return
			}
			p, err := s.properties.Create(a, n)
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

	// /api/properties/{id}/maintenance
	if strings.HasSuffix(path, "/maintenance") {
		id, err := strconv.ParseInt(strings.TrimSuffix(path, "/maintenance"), 10, 64)
		if err != nil {
			apiError(w, "invalid property ID", http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet {
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		// Resolve access through the property so absent or foreign
		// ids answer with the right status instead of an empty list.
		if _, err := s.properties.Get(a, id); err != nil {
			serviceError(w, err)
			return
		}
		requests, err := s.maintenance.List(a, maintenance.ListOptions{PropertyID: id})
		if err != nil {
			serviceError(w, err)
			return
		}
		apiJSON(w, requests, http.StatusOK)
		return
	}

	// /api/properties/{id}/leases
	if strings.HasSuffix(path, "/leases") {
		id, err := strconv.ParseInt(strings.TrimSuffix(path, "/leases"), 10, 64)
		if err != nil {
			apiError(w, "invalid property ID", http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet {
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if _, err := s.properties.Get(a, id); err != nil {
			serviceError(w, err)
			return
		}
		leases, err := s.leases.List(a, lease.ListOptions{PropertyID: id})
		if err != nil {
			serviceError(w, err)
			return
		}
		apiJSON(w, leases, http.StatusOK)
		return
	}

	// /api/properties/{id} — get, update or delete
	id, err := strconv.ParseInt(path, 10, 64)
	if err != nil {
		apiError(w, "invalid property ID", http.StatusBadRequest)
		return
	}
	switch r.Method {
	case http.MethodGet:
		p, err := s.properties.Get(a, id)
		if err != nil {
			serviceError(w, err)
			return
		}
		apiJSON(w, p, http.StatusOK)
	case http.MethodPut:
		var upd property.Update
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			apiError(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		p, err := s.properties.Update(a, id, upd)
		if err != nil {
			serviceError(w, err)
			return
		}
		apiJSON(w, p, http.StatusOK)
	case http.MethodDelete:
		if err := s.properties.Delete(a, id); err != nil {
			serviceError(w, err)
			return
		}
		apiJSON(w, map[string]string{"message": "property deleted"}, http.StatusOK)
	default:
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
