package repository

import (
	"vetclinic-booking/internal/domain/entity"
	domainRepo "vetclinic-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type scheduleRepository struct{}

func NewScheduleRepository() domainRepo.ScheduleRepository {
	return &scheduleRepository{}
}

func (r *scheduleRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.ScheduleEntry, error) {
	var entries []entity.ScheduleEntry
	err := db.Where("doctor_id = ?", doctorID).Order("weekday ASC").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *scheduleRepository) FindByDoctorIDs(db *gorm.DB, doctorIDs []uuid.UUID) ([]entity.ScheduleEntry, error) {
	if len(doctorIDs) == 0 {
		return nil, nil
	}
	var entries []entity.ScheduleEntry
	err := db.Where("doctor_id IN ?", doctorIDs).Order("doctor_id ASC, weekday ASC").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *scheduleRepository) ReplaceForDoctor(db *gorm.DB, doctorID uuid.UUID, entries []entity.ScheduleEntry) error {
	if err := db.Where("doctor_id = ?", doctorID).Delete(&entity.ScheduleEntry{}).Error; err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	return db.Create(&entries).Error
}

func (r *scheduleRepository) DeleteForDoctor(db *gorm.DB, doctorID uuid.UUID) (int64, error) {
	result := db.Where("doctor_id = ?", doctorID).Delete(&entity.ScheduleEntry{})
	return result.RowsAffected, result.Error
}
