package dto

import "github.com/google/uuid"

// ScheduleEntryRequest is one weekday of a doctor's working hours.
// Weekday follows time.Weekday numbering; only Monday (1) through
// Friday (5) are accepted.
type ScheduleEntryRequest struct {
	Weekday   int    `json:"weekday" validate:"gte=1,lte=5"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
}

// ReplaceScheduleRequest replaces a doctor's whole weekly schedule.
// Weekdays absent from the list become non-working days.
type ReplaceScheduleRequest struct {
	Entries []ScheduleEntryRequest `json:"entries" validate:"dive"`
}

type ScheduleEntryResponse struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type ScheduleResponse struct {
	DoctorID uuid.UUID               `json:"doctor_id"`
	Entries  []ScheduleEntryResponse `json:"entries"`
}
