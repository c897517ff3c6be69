package maintenance

import (
	"time"

	"github.com/rentalhub/rentalhub/internal/access"
	"github.com/rentalhub/rentalhub/internal/errs"
	"github.com/rentalhub/rentalhub/internal/identity"
)

// Service applies access rules and validation around the maintenance
// repository.
type Service struct {
	repo *Repository
	eval *access.Evaluator
}

func NewService(repo *Repository, eval *access.Evaluator) *Service {
	return &Service{repo: repo, eval: eval}
}

type NewRequest struct {
	PropertyID    int64      `json:"property_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Priority      string     `json:"priority"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	Notes         *string    `json:"notes"`
}

// Create files a request against a property the actor may read. The
// actor becomes the reporter and the request starts out pending.
func (s *Service) Create(actor identity.Actor, n NewRequest) (*Request, error) {
	if err := s.eval.CanCreate(actor); err != nil {
		return nil, err
	}
	if n.PropertyID == 0 {
		return nil, errs.New(errs.EInvalid, "property_id is required")
	}
	if n.Title == "" || n.Description == "" {
		return nil, errs.New(errs.EInvalid, "title and description are required")
	}
	priority := PriorityMedium
	if n.Priority != "" {
		if !ValidPriority(n.Priority) {
			return nil, errs.Newf(errs.EInvalid, "invalid priority: %s", n.Priority)
		}
		priority = Priority(n.Priority)
	}
	if err := s.eval.CanAccess(actor, access.Ref{Kind: access.KindProperty, ID: n.PropertyID}, access.OpRead); err != nil {
		return nil, err
	}

	m := &Request{
		PropertyID:    n.PropertyID,
		ReportedBy:    actor.ID,
		Title:         n.Title,
		Description:   n.Description,
		Priority:      priority,
		Status:        StatusPending,
		ScheduledDate: n.ScheduledDate,
		Notes:         n.Notes,
	}
	return s.repo.Insert(m)
}

// Get returns a request the actor may read.
func (s *Service) Get(actor identity.Actor, id int64) (*Request, error) {
	if err := s.eval.CanAccess(actor, access.Ref{Kind: access.KindMaintenance, ID: id}, access.OpRead); err != nil {
		return nil, err
	}
	return s.repo.GetByID(id)
}

// List returns requests matching opts, scoped to the actor's visibility.
func (s *Service) List(actor identity.Actor, opts ListOptions) ([]*Request, error) {
	return s.repo.List(opts, access.MaintenanceScope(actor))
}

type Update struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	Priority      *string    `json:"priority"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	Notes         *string    `json:"notes"`
}

// Update applies a partial update to a request the actor may write.
// Status changes go through Assign, Complete and Cancel.
func (s *Service) Update(actor identity.Actor, id int64, upd Update) (*Request, error) {
	if err := s.eval.CanAccess(actor, access.Ref{Kind: access.KindMaintenance, ID: id}, access.OpWrite); err != nil {
		return nil, err
	}
	m, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		m.Title = *upd.Title
	}
	if upd.Description != nil {
		m.Description = *upd.Description
	}
	if upd.Priority != nil {
		if !ValidPriority(*upd.Priority) {
			return nil, errs.Newf(errs.EInvalid, "invalid priority: %s", *upd.Priority)
		}
		m.Priority = Priority(*upd.Priority)
	}
	if upd.ScheduledDate != nil {
		m.ScheduledDate = upd.ScheduledDate
	}
	if upd.Notes != nil {
		m.Notes = upd.Notes
	}
	return s.repo.Update(m)
}

// Assign hands the request to a user and moves it to in_progress.
// Only admins and property companies dispatch work.
func (s *Service) Assign(actor identity.Actor, id, assigneeID int64) (*Request, error) {
	if err := access.RequireRole(actor, identity.RoleAdmin, identity.RolePropertyCompany); err != nil {
		return nil, err
	}
	if assigneeID == 0 {
		return nil, errs.New(errs.EInvalid, "assigned_to is required")
	}
	if err := s.eval.CanAccess(actor, access.Ref{Kind: access.KindMaintenance, ID: id}, access.OpWrite); err != nil {
		return nil, err
	}
	return s.repo.Assign(id, assigneeID)
}

// Complete closes the request, recording completion time and cost.
func (s *Service) Complete(actor identity.Actor, id int64, cost *float64, notes *string) (*Request, error) {
	if cost != nil && *cost < 0 {
		return nil, errs.New(errs.EInvalid, "cost must not be negative")
	}
	if err := s.eval.CanAccess(actor, access.Ref{Kind: access.KindMaintenance, ID: id}, access.OpWrite); err != nil {
		return nil, err
	}
	return s.repo.Complete(id, cost, notes)
}

// Cancel closes the request without work done.
func (s *Service) Cancel(actor identity.Actor, id int64) (*Request, error) {
	if err := s.eval.CanAccess(actor, access.Ref{Kind: access.KindMaintenance, ID: id}, access.OpWrite); err != nil {
		return nil, err
	}
	return s.repo.Cancel(id)
}

// Delete removes a request the actor may write.
func (s *Service) Delete(actor identity.Actor, id int64) error {
	if err := s.eval.CanAccess(actor, access.Ref{Kind: access.KindMaintenance, ID: id}, access.OpWrite); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
