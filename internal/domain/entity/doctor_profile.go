package entity

import (
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// DoctorProfile represents doctor-specific profile data: the branch the
// doctor is assigned to and which animal species they treat.
type DoctorProfile struct {
	UserID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"user_id"`
	BranchID       int            `gorm:"not null;index" json:"branch_id"`
	Specialization string         `gorm:"type:varchar(100)" json:"specialization,omitempty"`
	TreatedSpecies pq.StringArray `gorm:"type:text[]" json:"treated_species,omitempty"`

	// Relationships
	User    User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Branch  Branch          `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Entries []ScheduleEntry `gorm:"foreignKey:DoctorID" json:"entries,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

// Treats reports whether the doctor handles the given species. An empty
// list means the doctor treats everything.
func (p *DoctorProfile) Treats(species string) bool {
	if len(p.TreatedSpecies) == 0 {
		return true
	}
	for _, s := range p.TreatedSpecies {
		if strings.EqualFold(s, species) {
			return true
		}
	}
	return false
}
