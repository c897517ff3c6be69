package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/rentalhub/rentalhub/internal/maintenance"
)

// handleMaintenance routes /api/maintenance requests.
func (s *Server) handleMaintenance(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/maintenance")
	path = strings.TrimPrefix(path, "/")

	// /api/maintenance — list or create
	if path == "" {
		switch r.Method {
		case http.MethodGet:
			opts := maintenance.ListOptions{
				Status:   maintenance.Status(r.URL.Query().Get("status")),
				Priority: maintenance.Priority(r.URL.Query().Get("priority")),
			}
			if v := r.URL.Query().Get("property_id"); v != "" {
				id, err := strconv.ParseInt(v, 10, 64)
				if err != nil {
					apiError(w, "invalid property_id", http.StatusBadRequest)
					return
				}
				opts.PropertyID = id
			}
			requests, err := s.maintenance.List(a, opts)
			if err != nil {
				serviceError(w, err)
				return
			}
			apiJSON(w, requests, http.StatusOK)
		case http.MethodPost:
			var n maintenance.NewRequest
			if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
				apiError(w, "invalid JSON", http.StatusBadRequest)
				return
			}
			m, err := s.maintenance.Create(a, n)
			if err != nil {
				serviceError(w, err)
				return
			}
			apiJSON(w, m, http.StatusCreated)
		default:
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// /api/maintenance/{id}/assign
	if strings.HasSuffix(path, "/assign") {
		id, err := strconv.ParseInt(strings.TrimSuffix(path, "/assign"), 10, 64)
		if err != nil {
			apiError(w, "invalid maintenance ID", http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodPost {
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			AssignedTo int64 `json:"assigned_to"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiError(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		m, err := s.maintenance.Assign(a, id, req.AssignedTo)
		if err != nil {
			serviceError(w, err)
			return
		}
		apiJSON(w, m, http.StatusOK)
		return
	}

	// /api/maintenance/{id}/complete
	if strings.HasSuffix(path, "/complete") {
		id, err := strconv.ParseInt(strings.TrimSuffix(path, "/complete"), 10, 64)
		if err != nil {
			apiError(w, "invalid maintenance ID", http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodPost {
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			Cost  *float64 `json:"cost"`
			Notes *string  `json:"notes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiError(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		m, err := s.maintenance.Complete(a, id, req.Cost, req.Notes)
		if err != nil {
			serviceError(w, err)
			return
		}
		apiJSON(w, m, http.StatusOK)
		return
	}

	// /api/maintenance/{id}/cancel
	if strings.HasSuffix(path, "/cancel") {
		id, err := strconv.ParseInt(strings.TrimSuffix(path, "/cancel"), 10, 64)
		if err != nil {
			apiError(w, "invalid maintenance ID", http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodPost {
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		m, err := s.maintenance.Cancel(a, id)
		if err != nil {
			serviceError(w, err)
			return
		}
		apiJSON(w, m, http.StatusOK)
		return
	}

	// /api/maintenance/{id} — get, update or delete
	id, err := strconv.ParseInt(path, 10, 64)
	if err != nil {
		apiError(w, "invalid maintenance ID", http.StatusBadRequest)
		return
	}
	switch r.Method {
	case http.MethodGet:
		m, err := s.maintenance.Get(a, id)
		if err != nil {
			serviceError(w, err)
			return
		}
		apiJSON(w, m, http.StatusOK)
	case http.MethodPut:
		var upd maintenance.Update
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			apiError(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		m, err := s.maintenance.Update(a, id, upd)
		if err != nil {
			serviceError(w, err)
			return
		}
		apiJSON(w, m, http.StatusOK)
	case http.MethodDelete:
		if err := s.maintenance.Delete(a, id); err != nil {
			serviceError(w, err)
			return
		}
		apiJSON(w, map[string]string{"message": "maintenance request deleted"}, http.StatusOK)
	default:
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

