package usecase

import (
	"context"
	"errors"

	"vetclinic-booking/internal/converter"
	"vetclinic-booking/internal/delivery/dto"
	"vetclinic-booking/internal/domain/entity"
	"vetclinic-booking/internal/domain/repository"
	"vetclinic-booking/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrVisitTypeNotFound  = errors.New("visit type not found")
	ErrVisitTypeNameTaken = errors.New("visit type name already exists")
)

type VisitTypeUsecase interface {
	ListVisitTypes(ctx context.Context) (*dto.VisitTypeListResponse, error)
	GetVisitType(ctx context.Context, id uuid.UUID) (*dto.VisitTypeResponse, error)
	CreateVisitType(ctx context.Context, adminID uuid.UUID, req *dto.CreateVisitTypeRequest) (*dto.VisitTypeResponse, error)
	UpdateVisitType(ctx context.Context, adminID uuid.UUID, id uuid.UUID, req *dto.UpdateVisitTypeRequest) (*dto.VisitTypeResponse, error)
	DeleteVisitType(ctx context.Context, adminID uuid.UUID, id uuid.UUID) error
}

type visitTypeUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	visitTypeRepo repository.VisitTypeRepository
	auditService  service.AuditService
}

func NewVisitTypeUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	visitTypeRepo repository.VisitTypeRepository,
	auditService service.AuditService,
) VisitTypeUsecase {
	return &visitTypeUsecase{
		db:            db,
		log:           log,
		visitTypeRepo: visitTypeRepo,
		auditService:  auditService,
	}
}

func (u *visitTypeUsecase) ListVisitTypes(ctx context.Context) (*dto.VisitTypeListResponse, error) {
	visitTypes, err := u.visitTypeRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list visit types: %+v", err)
		return nil, err
	}

	return &dto.VisitTypeListResponse{
		VisitTypes: converter.VisitTypesToResponses(visitTypes),
		Total:      len(visitTypes),
	}, nil
}

func (u *visitTypeUsecase) GetVisitType(ctx context.Context, id uuid.UUID) (*dto.VisitTypeResponse, error) {
	visitType, err := u.visitTypeRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find visit type: %+v", err)
		return nil, err
	}
	if visitType == nil {
		return nil, ErrVisitTypeNotFound
	}

	return converter.VisitTypeToResponse(visitType), nil
}

func (u *visitTypeUsecase) CreateVisitType(ctx context.Context, adminID uuid.UUID, req *dto.CreateVisitTypeRequest) (*dto.VisitTypeResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	visitType := &entity.VisitType{
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		PriceMinorUnits: converter.PriceToMinorUnits(req.Price),
	}

	if err := u.visitTypeRepo.Create(tx, visitType); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrVisitTypeNameTaken
		}
		u.log.Warnf("Failed to create visit type: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, tx, &adminID, entity.AuditActionVisitTypeCreate, "visit_type", visitType.ID.String(), req)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.VisitTypeToResponse(visitType), nil
}

func (u *visitTypeUsecase) UpdateVisitType(ctx context.Context, adminID uuid.UUID, id uuid.UUID, req *dto.UpdateVisitTypeRequest) (*dto.VisitTypeResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	visitType, err := u.visitTypeRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find visit type: %+v", err)
		return nil, err
	}
	if visitType == nil {
		return nil, ErrVisitTypeNotFound
	}

	old := *visitType
	visitType.Name = req.Name
	visitType.DurationMinutes = req.DurationMinutes
	visitType.PriceMinorUnits = converter.PriceToMinorUnits(req.Price)

	if err := u.visitTypeRepo.Update(tx, visitType); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrVisitTypeNameTaken
		}
		u.log.Warnf("Failed to update visit type: %+v", err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &adminID, entity.AuditActionVisitTypeUpdate, "visit_type", id.String(), old, req)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.VisitTypeToResponse(visitType), nil
}

// DeleteVisitType removes a catalog entry. Existing bookings carry name and
// duration snapshots, so they stay intact.
func (u *visitTypeUsecase) DeleteVisitType(ctx context.Context, adminID uuid.UUID, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	visitType, err := u.visitTypeRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find visit type: %+v", err)
		return err
	}
	if visitType == nil {
		return ErrVisitTypeNotFound
	}

	affected, err := u.visitTypeRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete visit type: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrVisitTypeNotFound
	}

	u.auditService.LogDelete(ctx, tx, &adminID, entity.AuditActionVisitTypeDelete, "visit_type", id.String(), visitType)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
