package web

import (
	"encoding/json"
	"net/http"

	"github.com/rentalhub/rentalhub/internal/errs"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	resp := map[string]string{"error": msg}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// serviceError maps a service error to its HTTP response.
func serviceError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch errs.ErrorCode(err) {
	case errs.ENotFound:
		code = http.StatusNotFound
	case errs.EForbidden:
		code = http.StatusForbidden
	case errs.EConflict:
		code = http.StatusConflict
	case errs.EInvalid:
		code = http.StatusBadRequest
	case errs.EUnauthorized:
		code = http.StatusUnauthorized
	}
	msg := errs.ErrorMessage(err)
	if code == http.StatusInternalServerError {
		msg = "internal error"
	}
	apiError(w, msg, code)
}
