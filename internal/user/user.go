// Package user provides account records and credential checks.
//
// Credential storage and hashing live here, outside the authorization
// core; the core only ever sees the identity.Actor built from a loaded
// account.
package user

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rentalhub/rentalhub/internal/errs"
	"github.com/rentalhub/rentalhub/internal/identity"
)

// User represents an account. Password holds the bcrypt hash and is never
// serialized.
type User struct {
	ID          int64         `json:"id"`
	Email       string        `json:"email"`
	Password    string        `json:"-"`
	FirstName   string        `json:"first_name"`
	LastName    string        `json:"last_name"`
	Role        identity.Role `json:"role"`
	CompanyName *string       `json:"company_name,omitempty"`
	Phone       *string       `json:"phone,omitempty"`
	Address     *string       `json:"address,omitempty"`
	IsActive    bool          `json:"is_active"`
	ParentID    *int64        `json:"parent_id,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Actor builds the request actor descriptor for this account.
func (u *User) Actor() identity.Actor {
	return identity.Actor{ID: u.ID, Role: u.Role, ParentID: u.ParentID}
}

// Store manages accounts in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore creates a user store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectColumns = `id, email, password, first_name, last_name, role, company_name, phone, address, is_active, parent_id, created_at, updated_at`

// NewUser holds the fields required to create an account.
type NewUser struct {
	Email       string        `json:"email"`
	Password    string        `json:"password"`
	FirstName   string        `json:"first_name"`
	LastName    string        `json:"last_name"`
	Role        identity.Role `json:"role"`
	CompanyName *string       `json:"company_name"`
	Phone       *string       `json:"phone"`
	Address     *string       `json:"address"`
	ParentID    *int64        `json:"parent_id"`
}

// Create hashes the password and inserts the account.
func (s *Store) Create(n NewUser) (*User, error) {
	n.Email = strings.ToLower(strings.TrimSpace(n.Email))
	if n.Email == "" || n.Password == "" || n.FirstName == "" || n.LastName == "" {
		return nil, errs.New(errs.EInvalid, "email, password, first name and last name are required")
	}
	if !n.Role.IsValid() {
		return nil, errs.Newf(errs.EInvalid, "invalid role: %s", n.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(n.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.Wrap(err, "hashing password")
	}

	result, err := s.db.Exec(
		`INSERT INTO users (email, password, first_name, last_name, role, company_name, phone, address, parent_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.Email, string(hash), n.FirstName, n.LastName, string(n.Role),
		n.CompanyName, n.Phone, n.Address, n.ParentID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return nil, errs.Newf(errs.EConflict, "user already exists: %s", n.Email)
		}
		return nil, errs.Wrap(err, "inserting user")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, errs.Wrap(err, "getting insert id")
	}
	return s.GetByID(id)
}

// GetByID returns an account by id.
func (s *Store) GetByID(id int64) (*User, error) {
	row := s.db.QueryRow(fmt.Sprintf("SELECT %s FROM users WHERE id = ?", selectColumns), id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, errs.Newf(errs.ENotFound, "user %d not found", id)
	}
	if err != nil {
		return nil, errs.Wrap(err, "querying user")
	}
	return u, nil
}

// GetByEmail returns an account by email, case-insensitively.
func (s *Store) GetByEmail(email string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	row := s.db.QueryRow(fmt.Sprintf("SELECT %s FROM users WHERE LOWER(email) = ?", selectColumns), email)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, errs.Newf(errs.ENotFound, "user %s not found", email)
	}
	if err != nil {
		return nil, errs.Wrap(err, "querying user")
	}
	return u, nil
}

// ValidatePassword compares a candidate password against the stored hash.
func (u *User) ValidatePassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

// ProfileUpdate holds the fields an account may change about itself.
type ProfileUpdate struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
}

// UpdateProfile applies a partial profile update. Role and email are fixed;
// no role-escalation path exists here.
func (s *Store) UpdateProfile(id int64, upd ProfileUpdate) (*User, error) {
	u, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		u.LastName = *upd.LastName
	}
	if upd.Phone != nil {
		u.Phone = upd.Phone
	}
	if upd.Address != nil {
		u.Address = upd.Address
	}

	_, err = s.db.Exec(
		`UPDATE users SET first_name = ?, last_name = ?, phone = ?, address = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		u.FirstName, u.LastName, u.Phone, u.Address, id,
	)
	if err != nil {
		return nil, errs.Wrap(err, "updating profile")
	}
	return s.GetByID(id)
}

// ChangePassword verifies the current password and stores a new hash.
func (s *Store) ChangePassword(id int64, current, next string) error {
	u, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if !u.ValidatePassword(current) {
		return errs.New(errs.EUnauthorized, "current password is incorrect")
	}
	if next == "" {
		return errs.New(errs.EInvalid, "new password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return errs.Wrap(err, "hashing password")
	}
	if _, err := s.db.Exec(
		`UPDATE users SET password = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(hash), id,
	); err != nil {
		return errs.Wrap(err, "updating password")
	}
	return nil
}

// SetPassword stores a new hash without checking the old one. Used by the
// admin bootstrap command.
func (s *Store) SetPassword(id int64, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errs.Wrap(err, "hashing password")
	}
	if _, err := s.db.Exec(
		`UPDATE users SET password = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(hash), id,
	); err != nil {
		return errs.Wrap(err, "updating password")
	}
	return nil
}

// scanUser scans an account from a database row.
func scanUser(row interface{ Scan(...interface{}) error }) (*User, error) {
	var u User
	var role string
	var companyName, phone, address sql.NullString
	var parentID sql.NullInt64
	var isActive int

	err := row.Scan(
		&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &role,
		&companyName, &phone, &address, &isActive, &parentID,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.Role = identity.Role(role)
	u.IsActive = isActive != 0
	if companyName.Valid {
		u.CompanyName = &companyName.String
	}
	if phone.Valid {
		u.Phone = &phone.String
	}
	if address.Valid {
		u.Address = &address.String
	}
	if parentID.Valid {
		u.ParentID = &parentID.Int64
	}
	return &u, nil
}
