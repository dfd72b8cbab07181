package usecase

import (
	"context"
	"errors"

	"vetclinic-booking/internal/converter"
	"vetclinic-booking/internal/delivery/dto"
	"vetclinic-booking/internal/domain/entity"
	"vetclinic-booking/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPetNotFound = errors.New("pet not found")
	ErrPetNotOwned = errors.New("pet does not belong to you")
)

type PetUsecase interface {
	CreatePet(ctx context.Context, ownerID uuid.UUID, req *dto.CreatePetRequest) (*dto.PetResponse, error)
	GetMyPets(ctx context.Context, ownerID uuid.UUID) (*dto.PetListResponse, error)
	GetPet(ctx context.Context, ownerID, petID uuid.UUID) (*dto.PetResponse, error)
	UpdatePet(ctx context.Context, ownerID, petID uuid.UUID, req *dto.UpdatePetRequest) (*dto.PetResponse, error)
	DeletePet(ctx context.Context, ownerID, petID uuid.UUID) error
}

type petUsecase struct {
	db      *gorm.DB
	log     *logrus.Logger
	petRepo repository.PetRepository
}

func NewPetUsecase(db *gorm.DB, log *logrus.Logger, petRepo repository.PetRepository) PetUsecase {
	return &petUsecase{
		db:      db,
		log:     log,
		petRepo: petRepo,
	}
}

func (u *petUsecase) CreatePet(ctx context.Context, ownerID uuid.UUID, req *dto.CreatePetRequest) (*dto.PetResponse, error) {
	pet := &entity.Pet{
		OwnerID:  ownerID,
		Name:     req.Name,
		Species:  req.Species,
		Breed:    req.Breed,
		Age:      req.Age,
		WeightKg: req.WeightKg,
		Sex:      req.Sex,
	}

	if err := u.petRepo.Create(u.db.WithContext(ctx), pet); err != nil {
		u.log.Warnf("Failed to create pet: %+v", err)
		return nil, err
	}

	return converter.PetToResponse(pet), nil
}

func (u *petUsecase) GetMyPets(ctx context.Context, ownerID uuid.UUID) (*dto.PetListResponse, error) {
	pets, err := u.petRepo.FindByOwnerID(u.db.WithContext(ctx), ownerID)
	if err != nil {
		u.log.Warnf("Failed to find pets for owner %s: %+v", ownerID, err)
		return nil, err
	}

	return &dto.PetListResponse{
		Pets:  converter.PetsToResponses(pets),
		Total: len(pets),
	}, nil
}

func (u *petUsecase) GetPet(ctx context.Context, ownerID, petID uuid.UUID) (*dto.PetResponse, error) {
	pet, err := u.findOwned(ctx, ownerID, petID)
	if err != nil {
		return nil, err
	}
	return converter.PetToResponse(pet), nil
}

func (u *petUsecase) UpdatePet(ctx context.Context, ownerID, petID uuid.UUID, req *dto.UpdatePetRequest) (*dto.PetResponse, error) {
	pet, err := u.findOwned(ctx, ownerID, petID)
	if err != nil {
		return nil, err
	}

	pet.Name = req.Name
	pet.Species = req.Species
	pet.Breed = req.Breed
	pet.Age = req.Age
	pet.WeightKg = req.WeightKg
	pet.Sex = req.Sex

	if err := u.petRepo.Update(u.db.WithContext(ctx), pet); err != nil {
		u.log.Warnf("Failed to update pet: %+v", err)
		return nil, err
	}

	return converter.PetToResponse(pet), nil
}

func (u *petUsecase) DeletePet(ctx context.Context, ownerID, petID uuid.UUID) error {
	if _, err := u.findOwned(ctx, ownerID, petID); err != nil {
		return err
	}

	affected, err := u.petRepo.Delete(u.db.WithContext(ctx), petID)
	if err != nil {
		u.log.Warnf("Failed to delete pet: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrPetNotFound
	}

	return nil
}

func (u *petUsecase) findOwned(ctx context.Context, ownerID, petID uuid.UUID) (*entity.Pet, error) {
	pet, err := u.petRepo.FindByID(u.db.WithContext(ctx), petID)
	if err != nil {
		u.log.Warnf("Failed to find pet: %+v", err)
		return nil, err
	}
	if pet == nil {
		return nil, ErrPetNotFound
	}
	if pet.OwnerID != ownerID {
		return nil, ErrPetNotOwned
	}
	return pet, nil
}
