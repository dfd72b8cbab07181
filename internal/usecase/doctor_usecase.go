package usecase

import (
	"context"
	"errors"
	"strings"

	"vetclinic-booking/internal/converter"
	"vetclinic-booking/internal/delivery/dto"
	"vetclinic-booking/internal/domain/entity"
	"vetclinic-booking/internal/domain/repository"
	"vetclinic-booking/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrDoctorNotFound = errors.New("doctor not found")

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, adminID uuid.UUID, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	ListDoctors(ctx context.Context, branchID int) (*dto.DoctorListResponse, error)
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	UpdateDoctor(ctx context.Context, adminID uuid.UUID, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	DeleteDoctor(ctx context.Context, adminID uuid.UUID, doctorID uuid.UUID) error
}

type doctorUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	userRepo          repository.UserRepository
	doctorProfileRepo repository.DoctorProfileRepository
	scheduleRepo      repository.ScheduleRepository
	branchRepo        repository.BranchRepository
	auditService      service.AuditService
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	scheduleRepo repository.ScheduleRepository,
	branchRepo repository.BranchRepository,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		db:                db,
		log:               log,
		userRepo:          userRepo,
		doctorProfileRepo: doctorProfileRepo,
		scheduleRepo:      scheduleRepo,
		branchRepo:        branchRepo,
		auditService:      auditService,
	}
}

// CreateDoctor creates the doctor account and its profile in one
// transaction. The schedule starts empty, so the doctor takes no bookings
// until an admin sets working hours.
func (u *doctorUsecase) CreateDoctor(ctx context.Context, adminID uuid.UUID, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	branch, err := u.branchRepo.FindByID(tx, req.BranchID)
	if err != nil {
		u.log.Warnf("Failed to find branch: %+v", err)
		return nil, err
	}
	if branch == nil {
		return nil, ErrBranchNotFound
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Email:     strings.ToLower(req.Email),
		Password:  string(hashedPassword),
		RoleID:    entity.RoleIDDoctor,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create doctor user: %+v", err)
		return nil, err
	}

	profile := &entity.DoctorProfile{
		UserID:         user.ID,
		BranchID:       req.BranchID,
		Specialization: req.Specialization,
		TreatedSpecies: req.TreatedSpecies,
	}

	if err := u.doctorProfileRepo.Create(tx, profile); err != nil {
		u.log.Warnf("Failed to create doctor profile: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, tx, &adminID, entity.AuditActionDoctorCreate, "doctor", user.ID.String(), req.Email)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	profile.User = *user
	profile.Branch = *branch
	return converter.DoctorToResponse(profile), nil
}

// ListDoctors returns all doctors, or only those of one branch when
// branchID is non-zero.
func (u *doctorUsecase) ListDoctors(ctx context.Context, branchID int) (*dto.DoctorListResponse, error) {
	var (
		profiles []entity.DoctorProfile
		err      error
	)
	if branchID > 0 {
		profiles, err = u.doctorProfileRepo.FindByBranchID(u.db.WithContext(ctx), branchID)
	} else {
		profiles, err = u.doctorProfileRepo.FindAll(u.db.WithContext(ctx))
	}
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(profiles),
		Total:   len(profiles),
	}, nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	profile, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(profile), nil
}

func (u *doctorUsecase) UpdateDoctor(ctx context.Context, adminID uuid.UUID, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.doctorProfileRepo.FindByUserID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	branch, err := u.branchRepo.FindByID(tx, req.BranchID)
	if err != nil {
		u.log.Warnf("Failed to find branch: %+v", err)
		return nil, err
	}
	if branch == nil {
		return nil, ErrBranchNotFound
	}

	user, err := u.userRepo.FindByID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrDoctorNotFound
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Phone = req.Phone
	if err := u.userRepo.Update(tx, user); err != nil {
		u.log.Warnf("Failed to update doctor user: %+v", err)
		return nil, err
	}

	profile.BranchID = req.BranchID
	profile.Specialization = req.Specialization
	profile.TreatedSpecies = req.TreatedSpecies
	if err := u.doctorProfileRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update doctor profile: %+v", err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &adminID, entity.AuditActionDoctorUpdate, "doctor", doctorID.String(), nil, req)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	profile.User = *user
	profile.Branch = *branch
	return converter.DoctorToResponse(profile), nil
}

// DeleteDoctor retires a doctor: the profile and weekly schedule go away and
// the account is disabled. The user row stays because bookings reference it.
func (u *doctorUsecase) DeleteDoctor(ctx context.Context, adminID uuid.UUID, doctorID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.doctorProfileRepo.FindByUserID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return err
	}
	if profile == nil {
		return ErrDoctorNotFound
	}

	if _, err := u.scheduleRepo.DeleteForDoctor(tx, doctorID); err != nil {
		u.log.Warnf("Failed to delete doctor schedule: %+v", err)
		return err
	}

	if _, err := u.doctorProfileRepo.Delete(tx, doctorID); err != nil {
		u.log.Warnf("Failed to delete doctor profile: %+v", err)
		return err
	}

	user, err := u.userRepo.FindByID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor user: %+v", err)
		return err
	}
	if user != nil {
		user.Disabled = true
		if err := u.userRepo.Update(tx, user); err != nil {
			u.log.Warnf("Failed to disable doctor user: %+v", err)
			return err
		}
	}

	u.auditService.LogDelete(ctx, tx, &adminID, entity.AuditActionDoctorDelete, "doctor", doctorID.String(), profile)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
