package lease

import (
	"github.com/rentalhub/rentalhub/internal/access"
	"github.com/rentalhub/rentalhub/internal/errs"
	"github.com/rentalhub/rentalhub/internal/identity"
)

// Service applies access rules and validation around the lease repository.
type Service struct {
	repo *Repository
	eval *access.Evaluator
}

func NewService(repo *Repository, eval *access.Evaluator) *Service {
	return &Service{repo: repo, eval: eval}
}

type NewLease struct {
	PropertyID         int64    `json:"property_id"`
	TenantID           int64    `json:"tenant_id"`
	StartDate          string   `json:"start_date"`
	EndDate            string   `json:"end_date"`
	RentAmount         *float64 `json:"rent_amount"`
	DepositAmount      *float64 `json:"deposit_amount"`
	PaymentDueDay      *int64   `json:"payment_due_day"`
	LateFeePercentage  *float64 `json:"late_fee_percentage"`
	LateFeeGracePeriod *int64   `json:"late_fee_grace_period"`
	Terms              *string  `json:"terms"`
	Notes              *string  `json:"notes"`
}

// Create opens a lease on an available property owned by the actor.
// The lease starts out pending and the property moves to reserved, both
// in the same transaction.
func (s *Service) Create(actor identity.Actor, n NewLease) (*Lease, error) {
	if err := s.eval.CanCreate(actor); err != nil {
		return nil, err
	}
	if n.PropertyID == 0 || n.TenantID == 0 {
		return nil, errs.New(errs.EInvalid, "property_id and tenant_id are required")
	}
	if n.StartDate == "" || n.EndDate == "" {
		return nil, errs.New(errs.EInvalid, "start_date and end_date are required")
	}
	if n.EndDate <= n.StartDate {
		return nil, errs.New(errs.EInvalid, "end_date must be after start_date")
	}
	if n.RentAmount == nil || *n.RentAmount <= 0 {
		return nil, errs.New(errs.EInvalid, "rent_amount is required and must be positive")
	}
	if n.DepositAmount == nil || *n.DepositAmount < 0 {
		return nil, errs.New(errs.EInvalid, "deposit_amount is required")
	}
	if n.PaymentDueDay == nil || *n.PaymentDueDay < 1 || *n.PaymentDueDay > 31 {
		return nil, errs.New(errs.EInvalid, "payment_due_day must be between 1 and 31")
	}
	if err := s.eval.CanAccess(actor, access.Ref{Kind: access.KindProperty, ID: n.PropertyID}, access.OpWrite); err != nil {
		return nil, err
	}

	l := &Lease{
		PropertyID:         n.PropertyID,
		TenantID:           n.TenantID,
		StartDate:          n.StartDate,
		EndDate:            n.EndDate,
		RentAmount:         *n.RentAmount,
		DepositAmount:      *n.DepositAmount,
		PaymentDueDay:      *n.PaymentDueDay,
		LateFeePercentage:  5.0,
		LateFeeGracePeriod: 5,
		Status:             StatusPending,
		Terms:              n.Terms,
		Notes:              n.Notes,
	}
	if n.LateFeePercentage != nil {
		if *n.LateFeePercentage < 0 {
			return nil, errs.New(errs.EInvalid, "late_fee_percentage must not be negative")
		}
		l.LateFeePercentage = *n.LateFeePercentage
	}
	if n.LateFeeGracePeriod != nil {
		if *n.LateFeeGracePeriod < 0 {
			return nil, errs.New(errs.EInvalid, "late_fee_grace_period must not be negative")
		}
		l.LateFeeGracePeriod = *n.LateFeeGracePeriod
	}
	return s.repo.InsertReserving(l)
}

// Get returns a lease the actor may read.
func (s *Service) Get(actor identity.Actor, id int64) (*Lease, error) {
	if err := s.eval.CanAccess(actor, access.Ref{Kind: access.KindLease, ID: id}, access.OpRead); err != nil {
		return nil, err
	}
	return s.repo.GetByID(id)
}

// List returns leases matching opts, scoped to the actor's visibility.
func (s *Service) List(actor identity.Actor, opts ListOptions) ([]*Lease, error) {
	return s.repo.List(opts, access.LeaseScope(actor))
}

type Update struct {
	StartDate          *string  `json:"start_date"`
	EndDate            *string  `json:"end_date"`
	RentAmount         *float64 `json:"rent_amount"`
	DepositAmount      *float64 `json:"deposit_amount"`
	PaymentDueDay      *int64   `json:"payment_due_day"`
	LateFeePercentage  *float64 `json:"late_fee_percentage"`
	LateFeeGracePeriod *int64   `json:"late_fee_grace_period"`
	Status             *string  `json:"status"`
	Terms              *string  `json:"terms"`
	Notes              *string  `json:"notes"`
}

// Update applies a partial update to a lease the actor may write.
func (s *Service) Update(actor identity.Actor, id int64, upd Update) (*Lease, error) {
	if err := s.eval.CanAccess(actor, access.Ref{Kind: access.KindLease, ID: id}, access.OpWrite); err != nil {
		return nil, err
	}
	l, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if upd.StartDate != nil {
		l.StartDate = *upd.StartDate
	}
	if upd.EndDate != nil {
		l.EndDate = *upd.EndDate
	}
	if l.EndDate <= l.StartDate {
		return nil, errs.New(errs.EInvalid, "end_date must be after start_date")
	}
	if upd.RentAmount != nil {
		if *upd.RentAmount <= 0 {
			return nil, errs.New(errs.EInvalid, "rent_amount must be positive")
		}
		l.RentAmount = *upd.RentAmount
	}
	if upd.DepositAmount != nil {
		if *upd.DepositAmount < 0 {
			return nil, errs.New(errs.EInvalid, "deposit_amount must not be negative")
		}
		l.DepositAmount = *upd.DepositAmount
	}
	if upd.PaymentDueDay != nil {
		if *upd.PaymentDueDay < 1 || *upd.PaymentDueDay > 31 {
			return nil, errs.New(errs.EInvalid, "payment_due_day must be between 1 and 31")
		}
		l.PaymentDueDay = *upd.PaymentDueDay
	}
	if upd.LateFeePercentage != nil {
		if *upd.LateFeePercentage < 0 {
			return nil, errs.New(errs.EInvalid, "late_fee_percentage must not be negative")
		}
		l.LateFeePercentage = *upd.LateFeePercentage
	}
	if upd.LateFeeGracePeriod != nil {
		if *upd.LateFeeGracePeriod < 0 {
			return nil, errs.New(errs.EInvalid, "late_fee_grace_period must not be negative")
		}
		l.LateFeeGracePeriod = *upd.LateFeeGracePeriod
	}
	if upd.Status != nil {
		if !ValidStatus(*upd.Status) {
			return nil, errs.Newf(errs.EInvalid, "invalid lease status: %s", *upd.Status)
		}
		l.Status = Status(*upd.Status)
	}
	if upd.Terms != nil {
		l.Terms = upd.Terms
	}
	if upd.Notes != nil {
		l.Notes = upd.Notes
	}
	return s.repo.Update(l)
}

// Delete removes a lease the actor may write and returns its property
// to available.
func (s *Service) Delete(actor identity.Actor, id int64) error {
	if err := s.eval.CanAccess(actor, access.Ref{Kind: access.KindLease, ID: id}, access.OpWrite); err != nil {
		return err
	}
	return s.repo.DeleteRestoring(id)
}
