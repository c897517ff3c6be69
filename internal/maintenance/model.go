// Package maintenance manages maintenance requests on properties.
package maintenance

import (
	"time"
)

// Status tracks a request through its lifecycle. Completed and
// cancelled are terminal.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// ValidStatus reports whether s is a known request status.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether s allows no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Priority ranks how urgently a request needs attention.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ValidPriority reports whether p is a known priority.
func ValidPriority(p string) bool {
	switch Priority(p) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Request struct {
	ID            int64      `json:"id"`
	PropertyID    int64      `json:"property_id"`
	ReportedBy    int64      `json:"reported_by"`
	AssignedTo    *int64     `json:"assigned_to"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Priority      Priority   `json:"priority"`
	Status        Status     `json:"status"`
	ReportedDate  time.Time  `json:"reported_date"`
	ScheduledDate *time.Time `json:"scheduled_date"`
	CompletedDate *time.Time `json:"completed_date"`
	Cost          *float64   `json:"cost"`
	Notes         *string    `json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func scanRequest(row interface{ Scan(...interface{}) error }) (*Request, error) {
	var r Request
	err := row.Scan(
		&r.ID, &r.PropertyID, &r.ReportedBy, &r.AssignedTo, &r.Title,
		&r.Description, &r.Priority, &r.Status, &r.ReportedDate,
		&r.ScheduledDate, &r.CompletedDate, &r.Cost, &r.Notes,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
