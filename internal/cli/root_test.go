package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/rentalhub/rentalhub/internal/db"
	"github.com/rentalhub/rentalhub/internal/user"
)

func TestRootCommandTree(t *testing.T) {
	root := NewRootCmd()

	want := map[string]bool{
		"serve":        false,
		"create-admin": false,
		"version":      false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %s not registered", name)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
}

func TestCreateAdmin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	t.Setenv("RH_ADMIN_EMAIL", "boss@example.com")
	t.Setenv("RH_ADMIN_PASSWORD", "topsecret")

	flagDB = path
	defer func() { flagDB = "" }()

	if err := runCreateAdmin(); err != nil {
		t.Fatalf("create admin: %v", err)
	}

	d, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer func() {
		if cerr := d.Close(); cerr != nil {
			t.Errorf("close db: %v", cerr)
		}
	}()

	u, err := user.NewStore(d).GetByEmail("boss@example.com")
	if err != nil {
		t.Fatalf("get admin: %v", err)
	}
	if u.Role != "admin" {
		t.Errorf("role = %s, want admin", u.Role)
	}
	if !u.ValidatePassword("topsecret") {
		t.Error("admin password not set")
	}

	// Running again resets the password instead of failing.
	t.Setenv("RH_ADMIN_PASSWORD", "rotated")
	if err := runCreateAdmin(); err != nil {
		t.Fatalf("second create admin: %v", err)
	}
	u, err = user.NewStore(d).GetByEmail("boss@example.com")
	if err != nil {
		t.Fatalf("get admin after reset: %v", err)
	}
	if !u.ValidatePassword("rotated") {
		t.Error("admin password not rotated")
	}
}

func TestServeRequiresSecret(t *testing.T) {
	t.Setenv("RH_JWT_SECRET", "")
	if err := runServe(0); err == nil {
		t.Error("expected error without RH_JWT_SECRET")
	}
}
