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
	ErrBookingNotFound   = errors.New("booking not found")
	ErrBookingNotOwned   = errors.New("booking does not belong to you")
	ErrSlotTaken         = errors.New("slot has just been taken")
	ErrSlotInPast        = errors.New("cannot book a past slot")
	ErrProfileIncomplete = errors.New("complete your profile before booking")
	ErrNoDoctorAvailable = errors.New("no doctor available for this slot")
	ErrSpeciesNotTreated = errors.New("doctor does not treat this species")
)

type BookingUsecase interface {
	CreateBooking(ctx context.Context, clientID uuid.UUID, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	CancelBooking(ctx context.Context, actorID uuid.UUID, actorRoleID int, bookingID uuid.UUID) error
	GetMyBookings(ctx context.Context, clientID uuid.UUID) (*dto.BookingListResponse, error)
	GetDoctorBookings(ctx context.Context, doctorID uuid.UUID, query *dto.DoctorBookingsQuery) (*dto.BookingListResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID) (*dto.BookingListResponse, error)
}

type bookingUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	cfg               config.BookingConfig
	bookingRepo       repository.BookingRepository
	userRepo          repository.UserRepository
	petRepo           repository.PetRepository
	visitTypeRepo     repository.VisitTypeRepository
	branchRepo        repository.BranchRepository
	doctorProfileRepo repository.DoctorProfileRepository
	scheduleRepo      repository.ScheduleRepository
	auditService      service.AuditService
	availabilityCache *service.AvailabilityCache
	now               func() time.Time
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	cfg config.BookingConfig,
	bookingRepo repository.BookingRepository,
	userRepo repository.UserRepository,
	petRepo repository.PetRepository,
	visitTypeRepo repository.VisitTypeRepository,
	branchRepo repository.BranchRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	scheduleRepo repository.ScheduleRepository,
	auditService service.AuditService,
	availabilityCache *service.AvailabilityCache,
) BookingUsecase {
	return &bookingUsecase{
		db:                db,
		log:               log,
		cfg:               cfg,
		bookingRepo:       bookingRepo,
		userRepo:          userRepo,
		petRepo:           petRepo,
		visitTypeRepo:     visitTypeRepo,
		branchRepo:        branchRepo,
		doctorProfileRepo: doctorProfileRepo,
		scheduleRepo:      scheduleRepo,
		auditService:      auditService,
		availabilityCache: availabilityCache,
		now:               time.Now,
	}
}

// CreateBooking commits an appointment. Eligibility is recomputed inside the
// request, and the database settles races: the unique constraint on
// (doctor_id, date, start_minute) catches identical starts and the gist
// exclusion on the minute range catches overlapping multi-tick visits, so
// whichever insert lands second comes back as ErrSlotTaken, no matter how
// many instances run.
func (u *bookingUsecase) CreateBooking(ctx context.Context, clientID uuid.UUID, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	slot, err := scheduling.ParseTimeOfDay(req.Time)
	if err != nil {
		return nil, err
	}

	client, err := u.userRepo.FindByID(u.db.WithContext(ctx), clientID)
	if err != nil {
		u.log.Warnf("Failed to find client: %+v", err)
		return nil, err
	}
	if client == nil {
		return nil, ErrUserNotFound
	}
	if !client.ProfileComplete() {
		return nil, ErrProfileIncomplete
	}

	pet, err := u.petRepo.FindByID(u.db.WithContext(ctx), req.PetID)
	if err != nil {
		u.log.Warnf("Failed to find pet: %+v", err)
		return nil, err
	}
	if pet == nil {
		return nil, ErrPetNotFound
	}
	if pet.OwnerID != clientID {
		return nil, ErrPetNotOwned
	}

	visitType, err := u.visitTypeRepo.FindByID(u.db.WithContext(ctx), req.VisitTypeID)
	if err != nil {
		u.log.Warnf("Failed to find visit type: %+v", err)
		return nil, err
	}
	if visitType == nil {
		return nil, ErrVisitTypeNotFound
	}

	branch, err := u.branchRepo.FindByID(u.db.WithContext(ctx), req.BranchID)
	if err != nil {
		u.log.Warnf("Failed to find branch: %+v", err)
		return nil, err
	}
	if branch == nil {
		return nil, ErrBranchNotFound
	}

	grid, err := scheduling.NewGrid(
		scheduling.TimeOfDay(branch.OpenMinute),
		scheduling.TimeOfDay(branch.CloseMinute),
		u.cfg.SlotMinutes,
	)
	if err != nil {
		u.log.Warnf("Failed to build slot grid for branch %d: %+v", req.BranchID, err)
		return nil, err
	}

	required, ok := grid.RequiredSlots(slot, visitType.DurationMinutes)
	if !ok {
		return nil, ErrSlotOffGrid
	}
	if scheduling.SlotInPast(day, u.now(), slot) {
		return nil, ErrSlotInPast
	}

	doctor, err := u.pickDoctor(ctx, req, pet.Species, grid, day, slot, visitType.DurationMinutes)
	if err != nil {
		return nil, err
	}

	booking := &entity.Booking{
		ClientID:        clientID,
		DoctorID:        doctor.UserID,
		BranchID:        req.BranchID,
		Date:            day,
		StartMinute:     slot.Minutes(),
		DurationMinutes: visitType.DurationMinutes,
		EndMinute:       required[len(required)-1].Minutes() + grid.Granularity(),
		PetID:           pet.ID,
		PetName:         pet.Name,
		PetSpecies:      pet.Species,
		VisitTypeID:     &visitType.ID,
		VisitTypeName:   visitType.Name,
		DoctorName:      doctor.User.FullName(),
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.bookingRepo.Create(tx, booking); err != nil {
		if isDuplicateKeyError(err, "uq_bookings_doctor_slot") || isExclusionError(err, "excl_bookings_doctor_span") {
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to create booking: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, tx, &clientID, entity.AuditActionBookingCreate, "booking", booking.ID.String(), booking)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.availabilityCache.InvalidateDay(ctx, req.BranchID, req.Date)

	return converter.BookingToResponse(booking), nil
}

// pickDoctor resolves which doctor takes the visit. A requested doctor must
// be eligible themselves; otherwise the first eligible doctor of the branch
// who treats the species is chosen.
func (u *bookingUsecase) pickDoctor(ctx context.Context, req *dto.CreateBookingRequest, species string, grid *scheduling.Grid, day time.Time, slot scheduling.TimeOfDay, durationMinutes int) (*entity.DoctorProfile, error) {
	profiles, err := u.doctorProfileRepo.FindByBranchID(u.db.WithContext(ctx), req.BranchID)
	if err != nil {
		u.log.Warnf("Failed to find doctors for branch %d: %+v", req.BranchID, err)
		return nil, err
	}

	candidates := make([]entity.DoctorProfile, 0, len(profiles))
	for _, p := range profiles {
		if req.DoctorID != nil && p.UserID != *req.DoctorID {
			continue
		}
		candidates = append(candidates, p)
	}
	if req.DoctorID != nil && len(candidates) == 0 {
		return nil, ErrDoctorNotFound
	}

	treating := candidates[:0]
	for _, p := range candidates {
		if p.Treats(species) {
			treating = append(treating, p)
		}
	}
	if req.DoctorID != nil && len(treating) == 0 {
		return nil, ErrSpeciesNotTreated
	}

	doctorIDs := make([]uuid.UUID, len(treating))
	for i, p := range treating {
		doctorIDs[i] = p.UserID
	}

	entries, err := u.scheduleRepo.FindByDoctorIDs(u.db.WithContext(ctx), doctorIDs)
	if err != nil {
		u.log.Warnf("Failed to load schedules: %+v", err)
		return nil, err
	}
	entriesByDoctor := make(map[uuid.UUID][]entity.ScheduleEntry)
	for _, e := range entries {
		entriesByDoctor[e.DoctorID] = append(entriesByDoctor[e.DoctorID], e)
	}

	bookings, err := u.bookingRepo.FindByDoctorsAndDate(u.db.WithContext(ctx), doctorIDs, day)
	if err != nil {
		u.log.Warnf("Failed to load bookings: %+v", err)
		return nil, err
	}
	bookedByDoctor := make(map[uuid.UUID][]scheduling.BookedRange)
	for _, b := range bookings {
		bookedByDoctor[b.DoctorID] = append(bookedByDoctor[b.DoctorID], scheduling.BookedRange{
			Start:           scheduling.TimeOfDay(b.StartMinute),
			DurationMinutes: b.DurationMinutes,
		})
	}

	days := make([]scheduling.DoctorDay, len(treating))
	for i, p := range treating {
		days[i] = scheduling.DoctorDay{
			ID:       p.UserID,
			Schedule: converter.EntriesToWeeklySchedule(entriesByDoctor[p.UserID]),
			Occupied: scheduling.OccupiedSlots(grid, bookedByDoctor[p.UserID]),
		}
	}

	eligible := scheduling.EligibleDoctors(grid, days, day.Weekday(), slot, durationMinutes)
	if len(eligible) == 0 {
		return nil, ErrNoDoctorAvailable
	}

	for i := range treating {
		if treating[i].UserID == eligible[0] {
			return &treating[i], nil
		}
	}
	return nil, ErrNoDoctorAvailable
}

// CancelBooking hard-deletes the booking, freeing the slot immediately.
// The client who made it, the doctor who holds it, and admins may cancel.
// The audit trail keeps the full record of what was removed.
func (u *bookingUsecase) CancelBooking(ctx context.Context, actorID uuid.UUID, actorRoleID int, bookingID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	booking, err := u.bookingRepo.FindByID(tx, bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking: %+v", err)
		return err
	}
	if booking == nil {
		return ErrBookingNotFound
	}

	if actorRoleID != entity.RoleIDAdmin && booking.ClientID != actorID && booking.DoctorID != actorID {
		return ErrBookingNotOwned
	}

	affected, err := u.bookingRepo.Delete(tx, bookingID)
	if err != nil {
		u.log.Warnf("Failed to delete booking: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrBookingNotFound
	}

	u.auditService.LogDelete(ctx, tx, &actorID, entity.AuditActionBookingCancel, "booking", bookingID.String(), booking)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.availabilityCache.InvalidateDay(ctx, booking.BranchID, booking.Date.Format("2006-01-02"))

	return nil
}

func (u *bookingUsecase) GetMyBookings(ctx context.Context, clientID uuid.UUID) (*dto.BookingListResponse, error) {
	bookings, err := u.bookingRepo.FindByClientID(u.db.WithContext(ctx), clientID)
	if err != nil {
		u.log.Warnf("Failed to find bookings for client %s: %+v", clientID, err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

func (u *bookingUsecase) GetDoctorBookings(ctx context.Context, doctorID uuid.UUID, query *dto.DoctorBookingsQuery) (*dto.BookingListResponse, error) {
	filter := &entity.BookingFilter{}
	if query != nil {
		filter.Date = query.Date
		filter.DateFrom = query.DateFrom
		filter.DateTo = query.DateTo
	}

	bookings, err := u.bookingRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID, filter)
	if err != nil {
		u.log.Warnf("Failed to find bookings for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

// GetUserBookings is the admin view of one client's bookings.
func (u *bookingUsecase) GetUserBookings(ctx context.Context, userID uuid.UUID) (*dto.BookingListResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	bookings, err := u.bookingRepo.FindByClientID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find bookings for user %s: %+v", userID, err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}
