package entity

// Branch represents one clinic location with its daily opening window.
// OpenMinute/CloseMinute are minutes from midnight; the slot grid for a day
// at this branch is generated from them.
type Branch struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	OpenMinute  int    `gorm:"not null" json:"open_minute"`
	CloseMinute int    `gorm:"not null" json:"close_minute"`

	// Relationships
	Doctors []DoctorProfile `gorm:"foreignKey:BranchID" json:"doctors,omitempty"`
}

func (Branch) TableName() string {
	return "branches"
}
