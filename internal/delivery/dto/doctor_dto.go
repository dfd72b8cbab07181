package dto

import "github.com/google/uuid"

type CreateDoctorRequest struct {
	Email          string   `json:"email" validate:"required,email"`
	Password       string   `json:"password" validate:"required,min=8,max=72"`
	FirstName      string   `json:"first_name" validate:"required,max=100"`
	LastName       string   `json:"last_name" validate:"required,max=100"`
	Phone          string   `json:"phone" validate:"max=20"`
	BranchID       int      `json:"branch_id" validate:"required,min=1"`
	Specialization string   `json:"specialization" validate:"max=100"`
	TreatedSpecies []string `json:"treated_species" validate:"dive,max=50"`
}

type UpdateDoctorRequest struct {
	FirstName      string   `json:"first_name" validate:"required,max=100"`
	LastName       string   `json:"last_name" validate:"required,max=100"`
	Phone          string   `json:"phone" validate:"max=20"`
	BranchID       int      `json:"branch_id" validate:"required,min=1"`
	Specialization string   `json:"specialization" validate:"max=100"`
	TreatedSpecies []string `json:"treated_species" validate:"dive,max=50"`
}

type DoctorResponse struct {
	UserID         uuid.UUID `json:"user_id"`
	Email          string    `json:"email,omitempty"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	BranchID       int       `json:"branch_id"`
	BranchName     string    `json:"branch_name,omitempty"`
	Specialization string    `json:"specialization,omitempty"`
	TreatedSpecies []string  `json:"treated_species,omitempty"`
	Disabled       bool      `json:"disabled"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
