package dto

import "github.com/google/uuid"

// SlotResponse is one tick of the day grid with its availability flag.
type SlotResponse struct {
	Time        string `json:"time"`
	StartMinute int    `json:"start_minute"`
	Available   bool   `json:"available"`
}

type DayAvailabilityResponse struct {
	BranchID        int            `json:"branch_id"`
	Date            string         `json:"date"`
	DurationMinutes int            `json:"duration_minutes"`
	Slots           []SlotResponse `json:"slots"`
}

type EligibleDoctorResponse struct {
	UserID         uuid.UUID `json:"user_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Specialization string    `json:"specialization,omitempty"`
}

type SlotDoctorsResponse struct {
	BranchID        int                      `json:"branch_id"`
	Date            string                   `json:"date"`
	Time            string                   `json:"time"`
	DurationMinutes int                      `json:"duration_minutes"`
	Doctors         []EligibleDoctorResponse `json:"doctors"`
}
