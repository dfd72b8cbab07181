package repository

import (
	"vetclinic-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VisitTypeRepository interface {
	Create(db *gorm.DB, visitType *entity.VisitType) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.VisitType, error)
	FindAll(db *gorm.DB) ([]entity.VisitType, error)
	Update(db *gorm.DB, visitType *entity.VisitType) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
