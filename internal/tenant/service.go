package tenant

import (
	"strings"

	"github.com/rentalhub/rentalhub/internal/access"
	"github.com/rentalhub/rentalhub/internal/errs"
	"github.com/rentalhub/rentalhub/internal/identity"
	"github.com/rentalhub/rentalhub/internal/screening"
)

// Service applies access rules and validation around the tenant repository.
type Service struct {
	repo *Repository
	eval *access.Evaluator
}

func NewService(repo *Repository, eval *access.Evaluator) *Service {
	return &Service{repo: repo, eval: eval}
}

type NewTenant struct {
	FirstName             string   `json:"first_name"`
	LastName              string   `json:"last_name"`
	Email                 string   `json:"email"`
	Phone                 string   `json:"phone"`
	DateOfBirth           string   `json:"date_of_birth"`
	EmploymentStatus      string   `json:"employment_status"`
	EmployerName          *string  `json:"employer_name"`
	MonthlyIncome         *float64 `json:"monthly_income"`
	CreditScore           *int64   `json:"credit_score"`
	EmergencyContact      string   `json:"emergency_contact"`
	EmergencyContactPhone string   `json:"emergency_contact_phone"`
	Notes                 *string  `json:"notes"`
}

// Create registers a tenant with status pending.
func (s *Service) Create(actor identity.Actor, n NewTenant) (*Tenant, error) {
	if err := s.eval.CanCreate(actor); err != nil {
		return nil, err
	}
	if n.FirstName == "" || n.LastName == "" || n.Email == "" || n.Phone == "" {
		return nil, errs.New(errs.EInvalid, "name, email and phone are required")
	}
	if n.DateOfBirth == "" {
		return nil, errs.New(errs.EInvalid, "date_of_birth is required")
	}
	if !ValidEmployment(n.EmploymentStatus) {
		return nil, errs.Newf(errs.EInvalid, "invalid employment status: %s", n.EmploymentStatus)
	}
	if n.MonthlyIncome == nil || *n.MonthlyIncome < 0 {
		return nil, errs.New(errs.EInvalid, "monthly_income is required")
	}
	if n.EmergencyContact == "" || n.EmergencyContactPhone == "" {
		return nil, errs.New(errs.EInvalid, "emergency contact details are required")
	}

	t := &Tenant{
		FirstName:             n.FirstName,
		LastName:              n.LastName,
		Email:                 strings.ToLower(n.Email),
		Phone:                 n.Phone,
		DateOfBirth:           n.DateOfBirth,
		EmploymentStatus:      Employment(n.EmploymentStatus),
		EmployerName:          n.EmployerName,
		MonthlyIncome:         *n.MonthlyIncome,
		CreditScore:           n.CreditScore,
		EmergencyContact:      n.EmergencyContact,
		EmergencyContactPhone: n.EmergencyContactPhone,
		Status:                StatusPending,
		Notes:                 n.Notes,
	}
	return s.repo.Insert(t)
}

// Get returns a tenant the actor may read.
func (s *Service) Get(actor identity.Actor, id int64) (*Tenant, error) {
	if err := s.eval.CanAccess(actor, access.Ref{Kind: access.KindTenant, ID: id}, access.OpRead); err != nil {
		return nil, err
	}
	return s.repo.GetByID(id)
}

// List returns tenants matching opts, scoped to the actor's visibility.
func (s *Service) List(actor identity.Actor, opts ListOptions) ([]*Tenant, error) {
	return s.repo.List(opts, access.TenantScope(actor))
}

type Update struct {
	FirstName             *string  `json:"first_name"`
	LastName              *string  `json:"last_name"`
	Email                 *string  `json:"email"`
	Phone                 *string  `json:"phone"`
	DateOfBirth           *string  `json:"date_of_birth"`
	EmploymentStatus      *string  `json:"employment_status"`
	EmployerName          *string  `json:"employer_name"`
	MonthlyIncome         *float64 `json:"monthly_income"`
	CreditScore           *int64   `json:"credit_score"`
	EmergencyContact      *string  `json:"emergency_contact"`
	EmergencyContactPhone *string  `json:"emergency_contact_phone"`
	Status                *string  `json:"status"`
	Notes                 *string  `json:"notes"`
}

// Update applies a partial update to a tenant the actor may write.
func (s *Service) Update(actor identity.Actor, id int64, upd Update) (*Tenant, error) {
	if err := s.eval.CanAccess(actor, access.Ref{Kind: access.KindTenant, ID: id}, access.OpWrite); err != nil {
		return nil, err
	}
	t, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if upd.FirstName != nil {
		t.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		t.LastName = *upd.LastName
	}
	if upd.Email != nil {
		t.Email = strings.ToLower(*upd.Email)
	}
	if upd.Phone != nil {
		t.Phone = *upd.Phone
	}
	if upd.DateOfBirth != nil {
		t.DateOfBirth = *upd.DateOfBirth
	}
	if upd.EmploymentStatus != nil {
		if !ValidEmployment(*upd.EmploymentStatus) {
			return nil, errs.Newf(errs.EInvalid, "invalid employment status: %s", *upd.EmploymentStatus)
		}
		t.EmploymentStatus = Employment(*upd.EmploymentStatus)
	}
	if upd.EmployerName != nil {
		t.EmployerName = upd.EmployerName
	}
	if upd.MonthlyIncome != nil {
		if *upd.MonthlyIncome < 0 {
			return nil, errs.New(errs.EInvalid, "monthly_income must not be negative")
		}
		t.MonthlyIncome = *upd.MonthlyIncome
	}
	if upd.CreditScore != nil {
		t.CreditScore = upd.CreditScore
	}
	if upd.EmergencyContact != nil {
		t.EmergencyContact = *upd.EmergencyContact
	}
	if upd.EmergencyContactPhone != nil {
		t.EmergencyContactPhone = *upd.EmergencyContactPhone
	}
	if upd.Status != nil {
		if !ValidStatus(*upd.Status) {
			return nil, errs.Newf(errs.EInvalid, "invalid tenant status: %s", *upd.Status)
		}
		t.Status = Status(*upd.Status)
	}
	if upd.Notes != nil {
		t.Notes = upd.Notes
	}
	return s.repo.Update(t)
}

// Delete removes a tenant the actor may write.
func (s *Service) Delete(actor identity.Actor, id int64) error {
	if err := s.eval.CanAccess(actor, access.Ref{Kind: access.KindTenant, ID: id}, access.OpWrite); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

// CheckAffordability runs the income check for a tenant against the
// given rent amount.
func (s *Service) CheckAffordability(actor identity.Actor, id int64, rent float64) (screening.Affordability, error) {
	if err := s.eval.CanAccess(actor, access.Ref{Kind: access.KindTenant, ID: id}, access.OpRead); err != nil {
		return screening.Affordability{}, err
	}
	t, err := s.repo.GetByID(id)
	if err != nil {
		return screening.Affordability{}, err
	}
	return screening.CheckAffordability(t.MonthlyIncome, rent)
}
