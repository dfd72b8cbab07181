package repository

import (
	"vetclinic-booking/internal/domain/entity"

	"gorm.io/gorm"
)

type BranchRepository interface {
	FindByID(db *gorm.DB, id int) (*entity.Branch, error)
	FindAll(db *gorm.DB) ([]entity.Branch, error)
}
