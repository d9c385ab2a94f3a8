package dto

import "time"

// CreatePersonRequest registers a person, optionally with login credentials.
type CreatePersonRequest struct {
	Name         string             `json:"name" validate:"required"`
	Email        string             `json:"email" validate:"omitempty,email"`
	Registration string             `json:"registration"`
	Phone        string             `json:"phone"`
	BirthDate    *time.Time         `json:"birth_date"`
	User         *PersonCredentials `json:"user" validate:"omitempty"`
}

// PersonCredentials creates the user linked to a new person.
type PersonCredentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=student teacher admin"`
}

// UpdatePersonRequest carries sparse person changes.
type UpdatePersonRequest struct {
	Name         *string    `json:"name"`
	Email        *string    `json:"email" validate:"omitempty,email"`
	Registration *string    `json:"registration"`
	Phone        *string    `json:"phone"`
	BirthDate    *time.Time `json:"birth_date"`
}
