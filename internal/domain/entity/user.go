package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents the centralized account table for clients, doctors and
// administrators alike.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RoleID    int       `gorm:"not null;index" json:"role_id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	FirstName string    `gorm:"type:varchar(100)" json:"first_name"`
	LastName  string    `gorm:"type:varchar(100)" json:"last_name"`
	Phone     string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Address   string    `gorm:"type:varchar(255)" json:"address,omitempty"`
	City      string    `gorm:"type:varchar(100)" json:"city,omitempty"`
	Disabled  bool      `gorm:"not null;default:false;index" json:"disabled"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role          Role           `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	DoctorProfile *DoctorProfile `gorm:"foreignKey:UserID" json:"doctor_profile,omitempty"`
	Pets          []Pet          `gorm:"foreignKey:OwnerID" json:"pets,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// ProfileComplete reports whether the account carries the contact data a
// booking requires.
func (u *User) ProfileComplete() bool {
	return u.FirstName != "" && u.LastName != "" && u.Phone != "" && u.Address != "" && u.City != ""
}

// FullName joins the name parts for display and booking snapshots.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
