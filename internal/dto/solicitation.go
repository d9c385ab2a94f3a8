package dto

import "encoding/json"

// CreateSolicitationTypeRequest holds payload for creating solicitation types.
type CreateSolicitationTypeRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// UpdateSolicitationTypeRequest carries sparse solicitation type changes.
type UpdateSolicitationTypeRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CreateSolicitationRequest opens a solicitation. Students open for themselves.
type CreateSolicitationRequest struct {
	TypeID    string          `json:"type_id" validate:"required"`
	StudentID string          `json:"student_id"`
	Meta      json.RawMessage `json:"meta"`
}

// UpdateSolicitationRequest carries sparse solicitation changes.
type UpdateSolicitationRequest struct {
	TypeID *string         `json:"type_id"`
	Meta   json.RawMessage `json:"meta"`
}

// ReviewSolicitationRequest records a teacher or coordinator decision.
type ReviewSolicitationRequest struct {
	Approved *bool  `json:"approved" validate:"required"`
	Notes    string `json:"notes"`
}
