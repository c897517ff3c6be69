package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"coded", New(ENotFound, "lease 9 not found"), ENotFound},
		{"uncoded", errors.New("disk full"), EInternal},
		{"wrapped cause", Wrap(errors.New("disk full"), "inserting lease"), EInternal},
		{"coded inside fmt chain", fmt.Errorf("creating lease: %w", New(EConflict, "property not available")), EConflict},
		{"empty code falls through", &Error{Err: New(EForbidden, "nope")}, EForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorCode(tt.err); got != tt.want {
				t.Errorf("ErrorCode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	if got := ErrorMessage(New(EForbidden, "unauthorized access")); got != "unauthorized access" {
		t.Errorf("message = %q", got)
	}
	if got := ErrorMessage(errors.New("boom")); got != "An internal error has occurred." {
		t.Errorf("uncoded message = %q", got)
	}
}

func TestErrorString(t *testing.T) {
	e := Wrap(errors.New("locked"), "updating property")
	if e.Error() != "updating property: locked" {
		t.Errorf("Error() = %q", e.Error())
	}
	if (&Error{Code: EConflict}).Error() != "<conflict>" {
		t.Errorf("bare code Error() = %q", (&Error{Code: EConflict}).Error())
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("no such table")
	e := Wrap(cause, "querying")
	if !errors.Is(e, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}
