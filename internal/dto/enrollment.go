package dto

// CreateEnrollmentRequest enrolls a student in a classroom.
type CreateEnrollmentRequest struct {
	StudentID   string `json:"student_id" validate:"required"`
	ClassroomID string `json:"classroom_id" validate:"required"`
	Status      string `json:"status" validate:"omitempty,oneof=Canceled 'In Progress' Approved Repproved"`
}

// UpdateEnrollmentRequest carries sparse enrollment changes.
type UpdateEnrollmentRequest struct {
	StudentID   *string  `json:"student_id"`
	ClassroomID *string  `json:"classroom_id"`
	Status      *string  `json:"status" validate:"omitempty,oneof=Canceled 'In Progress' Approved Repproved"`
	Grade       *float64 `json:"grade" validate:"omitempty,gte=0,lte=10"`
	Frequency   *float64 `json:"frequency" validate:"omitempty,gte=0,lte=100"`
}
