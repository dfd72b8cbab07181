package repository

import (
	"errors"

	"vetclinic-booking/internal/domain/entity"
	domainRepo "vetclinic-booking/internal/domain/repository"

	"gorm.io/gorm"
)

type branchRepository struct{}

func NewBranchRepository() domainRepo.BranchRepository {
	return &branchRepository{}
}

func (r *branchRepository) FindByID(db *gorm.DB, id int) (*entity.Branch, error) {
	var branch entity.Branch
	err := db.Where("id = ?", id).First(&branch).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepository) FindAll(db *gorm.DB) ([]entity.Branch, error) {
	var branches []entity.Branch
	err := db.Order("id ASC").Find(&branches).Error
	if err != nil {
		return nil, err
	}
	return branches, nil
}
