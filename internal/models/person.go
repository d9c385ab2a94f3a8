package models

import (
	"time"

	"github.com/lib/pq"
)

// Person is the identity record referenced by users, enrollments, activities and solicitations.
type Person struct {
	ID                      string         `db:"id" json:"id"`
	Name                    string         `db:"name" json:"name"`
	Email                   string         `db:"email" json:"email"`
	Registration            string         `db:"registration" json:"registration"`
	Phone                   string         `db:"phone" json:"phone"`
	BirthDate               *time.Time     `db:"birth_date" json:"birth_date,omitempty"`
	UserID                  *string        `db:"user_id" json:"user_id,omitempty"`
	Role                    UserRole       `db:"role" json:"role,omitempty"`
	Enrollments             pq.StringArray `db:"enrollments" json:"enrollments"`
	Solicitations           pq.StringArray `db:"solicitations" json:"solicitations"`
	ComplementaryActivities pq.StringArray `db:"complementary_activities" json:"complementary_activities"`
	Audit
}

// PersonFilter captures filtering criteria for listing people.
type PersonFilter struct {
	Role   UserRole
	Search string
	PageRequest
}
