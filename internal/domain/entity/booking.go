package entity

import (
	"time"

	"github.com/google/uuid"
)

// Booking represents one committed appointment. A single row carries both
// the client key and the doctor key, so either party can list it, and the
// database-level uniqueness on (doctor_id, date, start_minute) is what
// guarantees no two bookings ever share a doctor's slot. Pet, visit type
// and doctor name are denormalized snapshots taken at commit time.
type Booking struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClientID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"client_id"`
	DoctorID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_bookings_doctor_slot" json:"doctor_id"`
	BranchID        int        `gorm:"not null;index" json:"branch_id"`
	Date            time.Time  `gorm:"type:date;not null;uniqueIndex:uq_bookings_doctor_slot" json:"date"`
	StartMinute     int        `gorm:"not null;uniqueIndex:uq_bookings_doctor_slot" json:"start_minute"`
	DurationMinutes int        `gorm:"not null" json:"duration_minutes"`
	EndMinute       int        `gorm:"not null" json:"end_minute"`
	PetID           uuid.UUID  `gorm:"type:uuid;not null;index" json:"pet_id"`
	PetName         string     `gorm:"type:varchar(100);not null" json:"pet_name"`
	PetSpecies      string     `gorm:"type:varchar(50);not null" json:"pet_species"`
	VisitTypeID     *uuid.UUID `gorm:"type:uuid" json:"visit_type_id,omitempty"`
	VisitTypeName   string     `gorm:"type:varchar(100);not null" json:"visit_type_name"`
	DoctorName      string     `gorm:"type:varchar(200);not null" json:"doctor_name"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Client User   `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Doctor User   `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Branch Branch `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

// BookingFilter is a domain-level filter for listing bookings.
// Used by the repository layer to avoid coupling with delivery DTOs.
type BookingFilter struct {
	Date     string // exact date, YYYY-MM-DD
	DateFrom string // inclusive lower bound, YYYY-MM-DD
	DateTo   string // inclusive upper bound, YYYY-MM-DD
	BranchID int    // 0 = any branch
}
