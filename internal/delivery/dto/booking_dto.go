package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateBookingRequest struct {
	BranchID    int        `json:"branch_id" validate:"required,min=1"`
	Date        string     `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string     `json:"time" validate:"required,datetime=15:04"`
	PetID       uuid.UUID  `json:"pet_id" validate:"required"`
	VisitTypeID uuid.UUID  `json:"visit_type_id" validate:"required"`
	DoctorID    *uuid.UUID `json:"doctor_id,omitempty"`
}

type DoctorBookingsQuery struct {
	Date     string
	DateFrom string
	DateTo   string
}

// Response DTOs

type BookingResponse struct {
	ID              uuid.UUID `json:"id"`
	ClientID        uuid.UUID `json:"client_id"`
	DoctorID        uuid.UUID `json:"doctor_id"`
	DoctorName      string    `json:"doctor_name"`
	BranchID        int       `json:"branch_id"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	EndTime         string    `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	PetID           uuid.UUID `json:"pet_id"`
	PetName         string    `json:"pet_name"`
	PetSpecies      string    `json:"pet_species"`
	VisitTypeName   string    `json:"visit_type_name"`
	CreatedAt       time.Time `json:"created_at"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}
