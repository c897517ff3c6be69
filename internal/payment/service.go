package payment

import (
	"github.com/google/uuid"

	"github.com/rentalhub/rentalhub/internal/access"
	"github.com/rentalhub/rentalhub/internal/errs"
	"github.com/rentalhub/rentalhub/internal/identity"
)

// Service applies access rules and validation around the payment
// repository.
type Service struct {
	repo *Repository
	eval *access.Evaluator
}

func NewService(repo *Repository, eval *access.Evaluator) *Service {
	return &Service{repo: repo, eval: eval}
}

type NewPayment struct {
	LeaseID       int64    `json:"lease_id"`
	Amount        *float64 `json:"amount"`
	PaymentMethod string   `json:"payment_method"`
	PaymentType   string   `json:"payment_type"`
	Status        string   `json:"status"`
	TransactionID *string  `json:"transaction_id"`
	Notes         *string  `json:"notes"`
}

// Create records a payment against a lease the actor may write. A
// transaction id is generated when the caller does not supply one, and
// the status starts as pending unless the caller says otherwise.
func (s *Service) Create(actor identity.Actor, n NewPayment) (*Payment, error) {
	if n.LeaseID == 0 {
		return nil, errs.New(errs.EInvalid, "lease_id is required")
	}
	if n.Amount == nil || *n.Amount <= 0 {
		return nil, errs.New(errs.EInvalid, "amount is required and must be positive")
	}
	if !ValidMethod(n.PaymentMethod) {
		return nil, errs.Newf(errs.EInvalid, "invalid payment method: %s", n.PaymentMethod)
	}
	if !ValidType(n.PaymentType) {
		return nil, errs.Newf(errs.EInvalid, "invalid payment type: %s", n.PaymentType)
	}
	status := StatusPending
	if n.Status != "" {
		if !ValidStatus(n.Status) {
			return nil, errs.Newf(errs.EInvalid, "invalid payment status: %s", n.Status)
		}
		status = Status(n.Status)
	}
	if err := s.eval.CanAccess(actor, access.Ref{Kind: access.KindLease, ID: n.LeaseID}, access.OpWrite); err != nil {
		return nil, err
	}

	txID := n.TransactionID
	if txID == nil {
		generated := uuid.NewString()
		txID = &generated
	}
	p := &Payment{
		LeaseID:       n.LeaseID,
		Amount:        *n.Amount,
		PaymentMethod: Method(n.PaymentMethod),
		PaymentType:   Type(n.PaymentType),
		Status:        status,
		TransactionID: txID,
		Notes:         n.Notes,
	}
	return s.repo.Insert(p)
}

// Get returns a payment the actor may read.
func (s *Service) Get(actor identity.Actor, id int64) (*Payment, error) {
	if err := s.eval.CanAccess(actor, access.Ref{Kind: access.KindPayment, ID: id}, access.OpRead); err != nil {
		return nil, err
	}
	return s.repo.GetByID(id)
}

// List returns payments matching opts, scoped to the actor's visibility.
func (s *Service) List(actor identity.Actor, opts ListOptions) ([]*Payment, error) {
	return s.repo.List(opts, access.PaymentScope(actor))
}

// ListForLease returns payments on one lease the actor may read.
func (s *Service) ListForLease(actor identity.Actor, leaseID int64) ([]*Payment, error) {
	if err := s.eval.CanAccess(actor, access.Ref{Kind: access.KindLease, ID: leaseID}, access.OpRead); err != nil {
		return nil, err
	}
	return s.repo.List(ListOptions{LeaseID: leaseID}, nil)
}
