package entity

import (
	"time"

	"github.com/google/uuid"
)

// Pet represents one animal owned by a client account.
type Pet struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Species   string    `gorm:"type:varchar(50);not null" json:"species"`
	Breed     string    `gorm:"type:varchar(100)" json:"breed,omitempty"`
	Age       int       `gorm:"default:0" json:"age"`
	WeightKg  float64   `gorm:"type:decimal(5,2);default:0" json:"weight_kg"`
	Sex       string    `gorm:"type:varchar(10)" json:"sex,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Owner User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

func (Pet) TableName() string {
	return "pets"
}
