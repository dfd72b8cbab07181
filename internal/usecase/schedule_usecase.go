package usecase

import (
	"context"
	"errors"
	"time"

	"vetclinic-booking/internal/converter"
	"vetclinic-booking/internal/delivery/dto"
	"vetclinic-booking/internal/domain/entity"
	"vetclinic-booking/internal/domain/repository"
	"vetclinic-booking/internal/scheduling"
	"vetclinic-booking/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidScheduleEntry = errors.New("schedule entry start must be before end")
	ErrDuplicateWeekday     = errors.New("duplicate weekday in schedule")
)

type ScheduleUsecase interface {
	GetSchedule(ctx context.Context, doctorID uuid.UUID) (*dto.ScheduleResponse, error)
	ReplaceSchedule(ctx context.Context, actorID, doctorID uuid.UUID, req *dto.ReplaceScheduleRequest) (*dto.ScheduleResponse, error)
}

type scheduleUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	scheduleRepo      repository.ScheduleRepository
	doctorProfileRepo repository.DoctorProfileRepository
	auditService      service.AuditService
	availabilityCache *service.AvailabilityCache
}

func NewScheduleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	scheduleRepo repository.ScheduleRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
	availabilityCache *service.AvailabilityCache,
) ScheduleUsecase {
	return &scheduleUsecase{
		db:                db,
		log:               log,
		scheduleRepo:      scheduleRepo,
		doctorProfileRepo: doctorProfileRepo,
		auditService:      auditService,
		availabilityCache: availabilityCache,
	}
}

func (u *scheduleUsecase) GetSchedule(ctx context.Context, doctorID uuid.UUID) (*dto.ScheduleResponse, error) {
	profile, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	entries, err := u.scheduleRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find schedule for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return converter.ScheduleToResponse(doctorID, entries), nil
}

// ReplaceSchedule swaps the doctor's whole weekly schedule for the submitted
// one. Weekdays missing from the request become non-working days.
func (u *scheduleUsecase) ReplaceSchedule(ctx context.Context, actorID, doctorID uuid.UUID, req *dto.ReplaceScheduleRequest) (*dto.ScheduleResponse, error) {
	entries, err := buildEntries(doctorID, req.Entries)
	if err != nil {
		return nil, err
	}

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

	if err := u.scheduleRepo.ReplaceForDoctor(tx, doctorID, entries); err != nil {
		u.log.Warnf("Failed to replace schedule for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionScheduleReplace, "schedule", doctorID.String(), nil, req)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.availabilityCache.InvalidateBranch(ctx, profile.BranchID)

	return converter.ScheduleToResponse(doctorID, entries), nil
}

func buildEntries(doctorID uuid.UUID, reqEntries []dto.ScheduleEntryRequest) ([]entity.ScheduleEntry, error) {
	seen := make(map[int]bool, len(reqEntries))
	entries := make([]entity.ScheduleEntry, 0, len(reqEntries))

	for _, e := range reqEntries {
		if seen[e.Weekday] {
			return nil, ErrDuplicateWeekday
		}
		seen[e.Weekday] = true

		start, err := scheduling.ParseTimeOfDay(e.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := scheduling.ParseTimeOfDay(e.EndTime)
		if err != nil {
			return nil, err
		}
		if start >= end {
			return nil, ErrInvalidScheduleEntry
		}

		entries = append(entries, entity.ScheduleEntry{
			DoctorID:    doctorID,
			Weekday:     time.Weekday(e.Weekday),
			StartMinute: start.Minutes(),
			EndMinute:   end.Minutes(),
		})
	}

	return entries, nil
}
