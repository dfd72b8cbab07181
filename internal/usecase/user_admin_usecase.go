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
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrRoleNotFound = errors.New("role not found")
	ErrSelfBlock    = errors.New("cannot block your own account")
	ErrSelfDemote   = errors.New("cannot change your own role")
)

type UserAdminUsecase interface {
	ListUsers(ctx context.Context) (*dto.UserListResponse, error)
	BlockUser(ctx context.Context, adminID, userID uuid.UUID) error
	UnblockUser(ctx context.Context, adminID, userID uuid.UUID) error
	ChangeRole(ctx context.Context, adminID, userID uuid.UUID, req *dto.ChangeRoleRequest) (*dto.UserResponse, error)
}

type userAdminUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	roleRepo     repository.RoleRepository
	redisClient  *redis.Client
	auditService service.AuditService
}

func NewUserAdminUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	redisClient *redis.Client,
	auditService service.AuditService,
) UserAdminUsecase {
	return &userAdminUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		redisClient:  redisClient,
		auditService: auditService,
	}
}

func (u *userAdminUsecase) ListUsers(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := u.userRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, err
	}

	return &dto.UserListResponse{
		Users: converter.UsersToResponses(users),
		Total: len(users),
	}, nil
}

// BlockUser disables an account and revokes its live sessions. Blocked
// doctors stop appearing in availability immediately.
func (u *userAdminUsecase) BlockUser(ctx context.Context, adminID, userID uuid.UUID) error {
	if adminID == userID {
		return ErrSelfBlock
	}

	if err := u.setDisabled(ctx, adminID, userID, true, entity.AuditActionUserDisable); err != nil {
		return err
	}

	return revokeAllUserTokens(ctx, u.redisClient, u.log, userID)
}

func (u *userAdminUsecase) UnblockUser(ctx context.Context, adminID, userID uuid.UUID) error {
	return u.setDisabled(ctx, adminID, userID, false, entity.AuditActionUserEnable)
}

func (u *userAdminUsecase) setDisabled(ctx context.Context, adminID, userID uuid.UUID, disabled bool, action string) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	old := user.Disabled
	user.Disabled = disabled

	if err := u.userRepo.Update(tx, user); err != nil {
		u.log.Warnf("Failed to update user: %+v", err)
		return err
	}

	u.auditService.LogUpdate(ctx, tx, &adminID, action, "user", userID.String(), old, disabled)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *userAdminUsecase) ChangeRole(ctx context.Context, adminID, userID uuid.UUID, req *dto.ChangeRoleRequest) (*dto.UserResponse, error) {
	if adminID == userID {
		return nil, ErrSelfDemote
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	role, err := u.roleRepo.FindByID(tx, req.RoleID)
	if err != nil {
		u.log.Warnf("Failed to find role: %+v", err)
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}

	user, err := u.userRepo.FindByID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	old := user.RoleID
	user.RoleID = req.RoleID

	if err := u.userRepo.Update(tx, user); err != nil {
		u.log.Warnf("Failed to update user role: %+v", err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &adminID, entity.AuditActionUserRoleChange, "user", userID.String(), old, req.RoleID)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	// Role claims live inside issued tokens, so old sessions must die.
	if err := revokeAllUserTokens(ctx, u.redisClient, u.log, userID); err != nil {
		return nil, err
	}

	return converter.UserToResponse(user), nil
}
