package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rentalhub/rentalhub/internal/user"
)

// handleAuth routes /api/auth/* requests.
func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/auth/")

	switch path {
	case "register":
		if r.Method != http.MethodPost {
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.apiRegister(w, r)
	case "login":
		if r.Method != http.MethodPost {
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.apiLogin(w, r)
	case "me":
		if r.Method != http.MethodGet {
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.apiMe(w, r)
	case "profile":
		if r.Method != http.MethodPut {
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.apiUpdateProfile(w, r)
	case "change-password":
		if r.Method != http.MethodPost {
			apiError(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.apiChangePassword(w, r)
	default:
		apiError(w, "not found", http.StatusNotFound)
	}
}

// tokenResponse is the register and login payload.
type tokenResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

func (s *Server) apiRegister(w http.ResponseWriter, r *http.Request) {
	var n user.NewUser
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
		apiError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	u, err := s.users.Create(n)
	if err != nil {
		serviceError(w, err)
		return
	}
	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		serviceError(w, err)
		return
	}
	apiJSON(w, tokenResponse{Token: token, User: u}, http.StatusCreated)
}

func (s *Server) apiLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	u, err := s.users.GetByEmail(req.Email)
	if err != nil || !u.IsActive || !u.ValidatePassword(req.Password) {
		apiError(w, "invalid email or password", http.StatusUnauthorized)
		return
	}
	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		serviceError(w, err)
		return
	}
	apiJSON(w, tokenResponse{Token: token, User: u}, http.StatusOK)
}

func (s *Server) apiMe(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	u, err := s.users.GetByID(a.ID)
	if err != nil {
		serviceError(w, err)
		return
	}
	apiJSON(w, u, http.StatusOK)
}

func (s *Server) apiUpdateProfile(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	var upd user.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		apiError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	u, err := s.users.UpdateProfile(a.ID, upd)
	if err != nil {
		serviceError(w, err)
		return
	}
	apiJSON(w, u, http.StatusOK)
}

func (s *Server) apiChangePassword(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := s.users.ChangePassword(a.ID, req.CurrentPassword, req.NewPassword); err != nil {
		serviceError(w, err)
		return
	}
	apiJSON(w, map[string]string{"message": "password updated"}, http.StatusOK)
}
