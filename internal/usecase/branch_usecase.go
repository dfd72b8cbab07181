package usecase

import (
	"context"
	"errors"

	"vetclinic-booking/internal/converter"
	"vetclinic-booking/internal/delivery/dto"
	"vetclinic-booking/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrBranchNotFound = errors.New("branch not found")

type BranchUsecase interface {
	ListBranches(ctx context.Context) (*dto.BranchListResponse, error)
	GetBranch(ctx context.Context, id int) (*dto.BranchResponse, error)
}

type branchUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	branchRepo repository.BranchRepository
}

func NewBranchUsecase(db *gorm.DB, log *logrus.Logger, branchRepo repository.BranchRepository) BranchUsecase {
	return &branchUsecase{
		db:         db,
		log:        log,
		branchRepo: branchRepo,
	}
}

func (u *branchUsecase) ListBranches(ctx context.Context) (*dto.BranchListResponse, error) {
	branches, err := u.branchRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list branches: %+v", err)
		return nil, err
	}

	return &dto.BranchListResponse{
		Branches: converter.BranchesToResponses(branches),
		Total:    len(branches),
	}, nil
}

func (u *branchUsecase) GetBranch(ctx context.Context, id int) (*dto.BranchResponse, error) {
	branch, err := u.branchRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find branch: %+v", err)
		return nil, err
	}
	if branch == nil {
		return nil, ErrBranchNotFound
	}

	return converter.BranchToResponse(branch), nil
}
