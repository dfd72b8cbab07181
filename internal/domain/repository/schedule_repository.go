package repository

import (
	"vetclinic-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleRepository interface {
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.ScheduleEntry, error)
	FindByDoctorIDs(db *gorm.DB, doctorIDs []uuid.UUID) ([]entity.ScheduleEntry, error)
	// ReplaceForDoctor swaps a doctor's whole weekly schedule for the given
	// entries; callers wrap it in a transaction.
	ReplaceForDoctor(db *gorm.DB, doctorID uuid.UUID, entries []entity.ScheduleEntry) error
	DeleteForDoctor(db *gorm.DB, doctorID uuid.UUID) (int64, error)
}
