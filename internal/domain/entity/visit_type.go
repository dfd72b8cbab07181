package entity

import (
	"time"

	"github.com/google/uuid"
)

// VisitType is one entry of the clinic's visit catalog (price list).
// Bookings copy the name and duration at commit time, so editing or deleting
// a catalog entry never invalidates historical bookings.
type VisitType struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name            string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	PriceMinorUnits int64     `gorm:"not null;default:0" json:"price_minor_units"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (VisitType) TableName() string {
	return "visit_types"
}
