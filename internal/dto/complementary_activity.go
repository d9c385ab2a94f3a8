package dto

// CreateComplementaryActivityTypeRequest holds payload for creating activity types.
type CreateComplementaryActivityTypeRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Score       float64 `json:"score" validate:"gte=0"`
	MaxScore    float64 `json:"max_score" validate:"gte=0"`
}

// UpdateComplementaryActivityTypeRequest carries sparse activity type changes.
type UpdateComplementaryActivityTypeRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Score       *float64 `json:"score" validate:"omitempty,gte=0"`
	MaxScore    *float64 `json:"max_score" validate:"omitempty,gte=0"`
}

// CreateComplementaryActivityRequest submits an activity. Students submit for themselves.
type CreateComplementaryActivityRequest struct {
	TypeID      string  `json:"type_id" validate:"required"`
	StudentID   string  `json:"student_id"`
	Description string  `json:"description"`
	Evidence    string  `json:"evidence"`
	Quantity    float64 `json:"quantity" validate:"required,gt=0"`
}

// UpdateComplementaryActivityRequest carries sparse activity changes.
type UpdateComplementaryActivityRequest struct {
	TypeID      *string  `json:"type_id"`
	Description *string  `json:"description"`
	Evidence    *string  `json:"evidence"`
	Quantity    *float64 `json:"quantity" validate:"omitempty,gt=0"`
}

// ReviewComplementaryActivityRequest accepts or rejects an activity.
type ReviewComplementaryActivityRequest struct {
	Status string `json:"status" validate:"required,oneof=Accepted Rejected"`
}
