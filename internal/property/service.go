package property

import (
	"encoding/json"

	"github.com/rentalhub/rentalhub/internal/access"
	"github.com/rentalhub/rentalhub/internal/errs"
	"github.com/rentalhub/rentalhub/internal/identity"
)

// Service provides actor-aware property operations. All writes pass
// through the access evaluator before touching the repository.
type Service struct {
	repo *Repository
	eval *access.Evaluator
}

// NewService creates a property service.
func NewService(repo *Repository, eval *access.Evaluator) *Service {
	return &Service{repo: repo, eval: eval}
}

// NewProperty holds the fields accepted on property creation. Owner and
// status are never taken from the payload.
type NewProperty struct {
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	Address       string          `json:"address"`
	City          string          `json:"city"`
	State         string          `json:"state"`
	ZipCode       string          `json:"zip_code"`
	Bedrooms      *int64          `json:"bedrooms"`
	Bathrooms     *float64        `json:"bathrooms"`
	SquareFootage *int64          `json:"square_footage"`
	RentAmount    *float64        `json:"rent_amount"`
	DepositAmount *float64        `json:"deposit_amount"`
	Description   *string         `json:"description"`
	Amenities     json.RawMessage `json:"amenities"`
	Images        json.RawMessage `json:"images"`
}

// Create inserts a property owned by the actor with status available.
func (s *Service) Create(actor identity.Actor, n NewProperty) (*Property, error) {
	if err := s.eval.CanCreate(actor); err != nil {
		return nil, err
	}
	if n.Name == "" || n.Address == "" || n.City == "" || n.State == "" || n.ZipCode == "" {
		return nil, errs.New(errs.EInvalid, "name and full address are required")
	}
	if !ValidType(n.Type) {
		return nil, errs.Newf(errs.EInvalid, "invalid property type: %s", n.Type)
	}
	if n.RentAmount == nil || *n.RentAmount <= 0 {
		return nil, errs.New(errs.EInvalid, "rent_amount is required and must be positive")
	}
	if n.DepositAmount == nil || *n.DepositAmount < 0 {
		return nil, errs.New(errs.EInvalid, "deposit_amount is required")
	}

	p := &Property{
		Name:          n.Name,
		Type:          Type(n.Type),
		Address:       n.Address,
		City:          n.City,
		State:         n.State,
		ZipCode:       n.ZipCode,
		Bedrooms:      n.Bedrooms,
		Bathrooms:     n.Bathrooms,
		SquareFootage: n.SquareFootage,
		RentAmount:    *n.RentAmount,
		DepositAmount: *n.DepositAmount,
		Status:        StatusAvailable,
		Description:   n.Description,
		Amenities:     n.Amenities,
		Images:        n.Images,
		OwnerID:       actor.ID,
	}
	return s.repo.Insert(p)
}

// Get returns a property the actor may read.
func (s *Service) Get(actor identity.Actor, id int64) (*Property, error) {
	if err := s.eval.CanAccess(actor, access.Ref{Kind: access.KindProperty, ID: id}, access.OpRead); err != nil {
		return nil, err
	}
	return s.repo.GetByID(id)
}

// List returns properties matching opts, scoped to the actor's visibility.
func (s *Service) List(actor identity.Actor, opts ListOptions) ([]*Property, error) {
	return s.repo.List(opts, access.PropertyScope(actor))
}

// Update holds the fields that may change on an existing property.
// Status is included: lease operations only move between available and
// reserved, so rented and maintenance transitions come in through here.
type Update struct {
	Name          *string         `json:"name"`
	Type          *string         `json:"type"`
	Address       *string         `json:"address"`
	City          *string         `json:"city"`
	State         *string         `json:"state"`
	ZipCode       *string         `json:"zip_code"`
	Bedrooms      *int64          `json:"bedrooms"`
	Bathrooms     *float64        `json:"bathrooms"`
	SquareFootage *int64          `json:"square_footage"`
	RentAmount    *float64        `json:"rent_amount"`
	DepositAmount *float64        `json:"deposit_amount"`
	Status        *string         `json:"status"`
	Description   *string         `json:"description"`
	Amenities     json.RawMessage `json:"amenities"`
	Images        json.RawMessage `json:"images"`
}

// Update applies a partial update to a property the actor owns.
func (s *Service) Update(actor identity.Actor, id int64, upd Update) (*Property, error) {
	if err := s.eval.CanAccess(actor, access.Ref{Kind: access.KindProperty, ID: id}, access.OpWrite); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Type != nil {
		if !ValidType(*upd.Type) {
			return nil, errs.Newf(errs.EInvalid, "invalid property type: %s", *upd.Type)
		}
		p.Type = Type(*upd.Type)
	}
	if upd.Address != nil {
		p.Address = *upd.Address
	}
	if upd.City != nil {
		p.City = *upd.City
	}
	if upd.State != nil {
		p.State = *upd.State
	}
	if upd.ZipCode != nil {
		p.ZipCode = *upd.ZipCode
	}
	if upd.Bedrooms != nil {
		p.Bedrooms = upd.Bedrooms
	}
	if upd.Bathrooms != nil {
		p.Bathrooms = upd.Bathrooms
	}
	if upd.SquareFootage != nil {
		p.SquareFootage = upd.SquareFootage
	}
	if upd.RentAmount != nil {
		if *upd.RentAmount <= 0 {
			return nil, errs.New(errs.EInvalid, "rent_amount must be positive")
		}
		p.RentAmount = *upd.RentAmount
	}
	if upd.DepositAmount != nil {
		p.DepositAmount = *upd.DepositAmount
	}
	if upd.Status != nil {
		if !ValidStatus(*upd.Status) {
			return nil, errs.Newf(errs.EInvalid, "invalid property status: %s", *upd.Status)
		}
		p.Status = Status(*upd.Status)
	}
	if upd.Description != nil {
		p.Description = upd.Description
	}
	if upd.Amenities != nil {
		p.Amenities = upd.Amenities
	}
	if upd.Images != nil {
		p.Images = upd.Images
	}

	return s.repo.Update(p)
}

// Delete removes a property the actor owns. Lease records survive the
// property's retirement only through their own lifecycle; deleting a
// property with active leases fails on the foreign key.
func (s *Service) Delete(actor identity.Actor, id int64) error {
	if err := s.eval.CanAccess(actor, access.Ref{Kind: access.KindProperty, ID: id}, access.OpWrite); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
