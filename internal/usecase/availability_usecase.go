package usecase

import (
	"context"
	"errors"
	"time"

	"vetclinic-booking/config"
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
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	ErrSlotOffGrid       = errors.New("time does not lie on the slot grid")
)

type AvailabilityUsecase interface {
	GetDaySlots(ctx context.Context, branchID int, date string, visitTypeID uuid.UUID) (*dto.DayAvailabilityResponse, error)
	GetSlotDoctors(ctx context.Context, branchID int, date, slotTime string, visitTypeID uuid.UUID, species string) (*dto.SlotDoctorsResponse, error)
}

type availabilityUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	cfg               config.BookingConfig
	branchRepo        repository.BranchRepository
	visitTypeRepo     repository.VisitTypeRepository
	doctorProfileRepo repository.DoctorProfileRepository
	scheduleRepo      repository.ScheduleRepository
	bookingRepo       repository.BookingRepository
	availabilityCache *service.AvailabilityCache
	now               func() time.Time
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	cfg config.BookingConfig,
	branchRepo repository.BranchRepository,
	visitTypeRepo repository.VisitTypeRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	scheduleRepo repository.ScheduleRepository,
	bookingRepo repository.BookingRepository,
	availabilityCache *service.AvailabilityCache,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:                db,
		log:               log,
		cfg:               cfg,
		branchRepo:        branchRepo,
		visitTypeRepo:     visitTypeRepo,
		doctorProfileRepo: doctorProfileRepo,
		scheduleRepo:      scheduleRepo,
		bookingRepo:       bookingRepo,
		availabilityCache: availabilityCache,
		now:               time.Now,
	}
}

// GetDaySlots returns the full slot grid of the branch for one day, each
// tick flagged with whether at least one doctor could take a visit of the
// requested type starting there.
func (u *availabilityUsecase) GetDaySlots(ctx context.Context, branchID int, date string, visitTypeID uuid.UUID) (*dto.DayAvailabilityResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	visitType, err := u.visitTypeRepo.FindByID(u.db.WithContext(ctx), visitTypeID)
	if err != nil {
		u.log.Warnf("Failed to find visit type: %+v", err)
		return nil, err
	}
	if visitType == nil {
		return nil, ErrVisitTypeNotFound
	}

	if cached := u.availabilityCache.Get(ctx, branchID, date, visitType.DurationMinutes); cached != nil {
		// A cached view of today ages between the compute and the read, so
		// ticks that started in the meantime must be re-suppressed.
		suppressPastSlots(cached, day, u.now())
		return cached, nil
	}

	grid, doctors, err := u.loadDay(ctx, branchID, day)
	if err != nil {
		return nil, err
	}

	now := u.now()
	response := &dto.DayAvailabilityResponse{
		BranchID:        branchID,
		Date:            date,
		DurationMinutes: visitType.DurationMinutes,
		Slots:           make([]dto.SlotResponse, 0, len(grid.Slots())),
	}

	for _, slot := range grid.Slots() {
		response.Slots = append(response.Slots, dto.SlotResponse{
			Time:        slot.String(),
			StartMinute: slot.Minutes(),
			Available:   scheduling.AnyDoctorFree(grid, doctors, day, now, slot, visitType.DurationMinutes),
		})
	}

	u.availabilityCache.Set(ctx, response)

	return response, nil
}

// GetSlotDoctors lists the doctors able to take the visit at the given slot.
// When species is non-empty, doctors who do not treat it are filtered out.
func (u *availabilityUsecase) GetSlotDoctors(ctx context.Context, branchID int, date, slotTime string, visitTypeID uuid.UUID, species string) (*dto.SlotDoctorsResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	slot, err := scheduling.ParseTimeOfDay(slotTime)
	if err != nil {
		return nil, err
	}

	visitType, err := u.visitTypeRepo.FindByID(u.db.WithContext(ctx), visitTypeID)
	if err != nil {
		u.log.Warnf("Failed to find visit type: %+v", err)
		return nil, err
	}
	if visitType == nil {
		return nil, ErrVisitTypeNotFound
	}

	profiles, err := u.branchProfiles(ctx, branchID, species)
	if err != nil {
		return nil, err
	}

	grid, doctors, err := u.buildDoctorDays(ctx, branchID, day, profiles)
	if err != nil {
		return nil, err
	}

	if !grid.Contains(slot) {
		return nil, ErrSlotOffGrid
	}

	response := &dto.SlotDoctorsResponse{
		BranchID:        branchID,
		Date:            date,
		Time:            slotTime,
		DurationMinutes: visitType.DurationMinutes,
		Doctors:         []dto.EligibleDoctorResponse{},
	}

	if scheduling.SlotInPast(day, u.now(), slot) {
		return response, nil
	}

	byID := make(map[uuid.UUID]*entity.DoctorProfile, len(profiles))
	for i := range profiles {
		byID[profiles[i].UserID] = &profiles[i]
	}

	for _, id := range scheduling.EligibleDoctors(grid, doctors, day.Weekday(), slot, visitType.DurationMinutes) {
		profile := byID[id]
		if profile == nil {
			continue
		}
		response.Doctors = append(response.Doctors, dto.EligibleDoctorResponse{
			UserID:         id,
			FirstName:      profile.User.FirstName,
			LastName:       profile.User.LastName,
			Specialization: profile.Specialization,
		})
	}

	return response, nil
}

func suppressPastSlots(view *dto.DayAvailabilityResponse, day, now time.Time) {
	for i := range view.Slots {
		if view.Slots[i].Available && scheduling.SlotInPast(day, now, scheduling.TimeOfDay(view.Slots[i].StartMinute)) {
			view.Slots[i].Available = false
		}
	}
}

// loadDay assembles the branch grid and per-doctor day views used by the
// availability engine.
func (u *availabilityUsecase) loadDay(ctx context.Context, branchID int, day time.Time) (*scheduling.Grid, []scheduling.DoctorDay, error) {
	profiles, err := u.branchProfiles(ctx, branchID, "")
	if err != nil {
		return nil, nil, err
	}
	return u.buildDoctorDays(ctx, branchID, day, profiles)
}

func (u *availabilityUsecase) branchProfiles(ctx context.Context, branchID int, species string) ([]entity.DoctorProfile, error) {
	branch, err := u.branchRepo.FindByID(u.db.WithContext(ctx), branchID)
	if err != nil {
		u.log.Warnf("Failed to find branch: %+v", err)
		return nil, err
	}
	if branch == nil {
		return nil, ErrBranchNotFound
	}

	profiles, err := u.doctorProfileRepo.FindByBranchID(u.db.WithContext(ctx), branchID)
	if err != nil {
		u.log.Warnf("Failed to find doctors for branch %d: %+v", branchID, err)
		return nil, err
	}

	if species == "" {
		return profiles, nil
	}

	filtered := profiles[:0]
	for _, p := range profiles {
		if p.Treats(species) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (u *availabilityUsecase) buildDoctorDays(ctx context.Context, branchID int, day time.Time, profiles []entity.DoctorProfile) (*scheduling.Grid, []scheduling.DoctorDay, error) {
	branch, err := u.branchRepo.FindByID(u.db.WithContext(ctx), branchID)
	if err != nil {
		u.log.Warnf("Failed to find branch: %+v", err)
		return nil, nil, err
	}
	if branch == nil {
		return nil, nil, ErrBranchNotFound
	}

	grid, err := scheduling.NewGrid(
		scheduling.TimeOfDay(branch.OpenMinute),
		scheduling.TimeOfDay(branch.CloseMinute),
		u.cfg.SlotMinutes,
	)
	if err != nil {
		u.log.Warnf("Failed to build slot grid for branch %d: %+v", branchID, err)
		return nil, nil, err
	}

	doctorIDs := make([]uuid.UUID, len(profiles))
	for i, p := range profiles {
		doctorIDs[i] = p.UserID
	}

	entries, err := u.scheduleRepo.FindByDoctorIDs(u.db.WithContext(ctx), doctorIDs)
	if err != nil {
		u.log.Warnf("Failed to load schedules: %+v", err)
		return nil, nil, err
	}

	entriesByDoctor := make(map[uuid.UUID][]entity.ScheduleEntry)
	for _, e := range entries {
		entriesByDoctor[e.DoctorID] = append(entriesByDoctor[e.DoctorID], e)
	}

	bookings, err := u.bookingRepo.FindByDoctorsAndDate(u.db.WithContext(ctx), doctorIDs, day)
	if err != nil {
		u.log.Warnf("Failed to load bookings: %+v", err)
		return nil, nil, err
	}

	bookedByDoctor := make(map[uuid.UUID][]scheduling.BookedRange)
	for _, b := range bookings {
		bookedByDoctor[b.DoctorID] = append(bookedByDoctor[b.DoctorID], scheduling.BookedRange{
			Start:           scheduling.TimeOfDay(b.StartMinute),
			DurationMinutes: b.DurationMinutes,
		})
	}

	doctors := make([]scheduling.DoctorDay, len(profiles))
	for i, p := range profiles {
		doctors[i] = scheduling.DoctorDay{
			ID:       p.UserID,
			Schedule: converter.EntriesToWeeklySchedule(entriesByDoctor[p.UserID]),
			Occupied: scheduling.OccupiedSlots(grid, bookedByDoctor[p.UserID]),
		}
	}

	return grid, doctors, nil
}
