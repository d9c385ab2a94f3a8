package models

import "github.com/lib/pq"

// ActivityStatus is the review outcome of a complementary activity. Empty means not yet reviewed.
type ActivityStatus string

const (
	ActivityPending  ActivityStatus = ""
	ActivityAccepted ActivityStatus = "Accepted"
	ActivityRejected ActivityStatus = "Rejected"
)

// ComplementaryActivityType is the scoring rubric for a kind of activity.
type ComplementaryActivityType struct {
	ID          string         `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	Description string         `db:"description" json:"description"`
	Score       float64        `db:"score" json:"score"`
	MaxScore    float64        `db:"max_score" json:"max_score"`
	Activities  pq.StringArray `db:"activities" json:"activities"`
	Audit
}

// ComplementaryActivityTypeFilter captures filtering criteria for listing activity types.
type ComplementaryActivityTypeFilter struct {
	Search string
	PageRequest
}

// ComplementaryActivity is an extracurricular activity a student submits for credit.
type ComplementaryActivity struct {
	ID           string         `db:"id" json:"id"`
	TypeID       string         `db:"type_id" json:"type_id"`
	StudentID    string         `db:"student_id" json:"student_id"`
	Description  string         `db:"description" json:"description"`
	Evidence     string         `db:"evidence" json:"evidence"`
	EvidenceFile string         `db:"evidence_file" json:"-"`
	EvidenceMIME string         `db:"evidence_mime" json:"evidence_mime,omitempty"`
	Quantity     float64        `db:"quantity" json:"quantity"`
	Status       ActivityStatus `db:"status" json:"status"`
	Audit
}

// ComplementaryActivityFilter captures filtering criteria for listing activities.
type ComplementaryActivityFilter struct {
	TypeID    string
	StudentID string
	Status    *ActivityStatus
	PageRequest
}

// ComplementaryScoreLine is the credit earned under one activity type.
type ComplementaryScoreLine struct {
	TypeID   string  `json:"type_id"`
	TypeName string  `json:"type_name"`
	Quantity float64 `json:"quantity"`
	Raw      float64 `json:"raw"`
	Credited float64 `json:"credited"`
	MaxScore float64 `json:"max_score"`
}

// ComplementaryScore sums credited scores over a student's accepted activities.
type ComplementaryScore struct {
	StudentID string                   `json:"student_id"`
	Total     float64                  `json:"total"`
	Lines     []ComplementaryScoreLine `json:"lines"`
}
