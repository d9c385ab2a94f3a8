package models

import (
	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
)

// SolicitationStatus is derived from the teacher and coordinator reviews.
type SolicitationStatus string

const (
	SolicitationDeferred   SolicitationStatus = "Deferred"
	SolicitationUndeferred SolicitationStatus = "Undeferred"
	SolicitationPending    SolicitationStatus = "Pending"
)

// SolicitationType groups solicitations of one kind.
type SolicitationType struct {
	ID            string         `db:"id" json:"id"`
	Name          string         `db:"name" json:"name"`
	Description   string         `db:"description" json:"description"`
	Solicitations pq.StringArray `db:"solicitations" json:"solicitations"`
	Audit
}

// SolicitationTypeFilter captures filtering criteria for listing solicitation types.
type SolicitationTypeFilter struct {
	Search string
	PageRequest
}

// Solicitation is a student request reviewed by a teacher and then a coordinator.
type Solicitation struct {
	ID                  string             `db:"id" json:"id"`
	TypeID              string             `db:"type_id" json:"type_id"`
	StudentID           string             `db:"student_id" json:"student_id"`
	Meta                types.JSONText     `db:"meta" json:"meta"`
	TeacherApproval     *bool              `db:"teacher_approval" json:"teacher_approval"`
	TeacherNotes        string             `db:"teacher_notes" json:"teacher_notes"`
	CoordinatorApproval *bool              `db:"coordinator_approval" json:"coordinator_approval"`
	CoordinatorNotes    string             `db:"coordinator_notes" json:"coordinator_notes"`
	Status              SolicitationStatus `db:"status" json:"status"`
	Audit
}

// DeriveStatus recomputes Status from the two approvals.
func (s *Solicitation) DeriveStatus() {
	switch {
	case isFalse(s.TeacherApproval) || isFalse(s.CoordinatorApproval):
		s.Status = SolicitationUndeferred
	case s.CoordinatorApproval != nil && *s.CoordinatorApproval:
		s.Status = SolicitationDeferred
	default:
		s.Status = SolicitationPending
	}
}

// Reviewed reports whether a teacher or coordinator has decided on the solicitation.
func (s *Solicitation) Reviewed() bool {
	return s.TeacherApproval != nil || s.CoordinatorApproval != nil
}

func isFalse(b *bool) bool {
	return b != nil && !*b
}

// SolicitationFilter captures filtering criteria for listing solicitations.
type SolicitationFilter struct {
	TypeID    string
	StudentID string
	Status    SolicitationStatus
	PageRequest
}
