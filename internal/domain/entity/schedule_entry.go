package entity

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleEntry is one weekday of a doctor's weekly working hours, stored as
// a half-open interval [StartMinute, EndMinute) in minutes from midnight.
// A doctor has at most one entry per weekday; a missing weekday means the
// doctor does not work that day. The clinic only schedules Monday-Friday.
type ScheduleEntry struct {
	ID          int          `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID    uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:uq_schedule_doctor_weekday" json:"doctor_id"`
	Weekday     time.Weekday `gorm:"not null;uniqueIndex:uq_schedule_doctor_weekday" json:"weekday"`
	StartMinute int          `gorm:"not null" json:"start_minute"`
	EndMinute   int          `gorm:"not null" json:"end_minute"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (ScheduleEntry) TableName() string {
	return "schedule_entries"
}
