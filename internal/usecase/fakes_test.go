package usecase

import (
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"vetclinic-booking/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return mr, client
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// --- fake repositories -----------------------------------------------------
//
// The fakes ignore the *gorm.DB session argument on purpose: the usecase
// tests exercise business decisions, not SQL. Transaction begin/commit still
// run against sqlmock so the commit path stays real.

type fakeUserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepository) add(user *entity.User) *entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepository) Create(db *gorm.DB, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepository) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepository) FindAll(db *gorm.DB) ([]entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]entity.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *u)
	}
	return users, nil
}

func (r *fakeUserRepository) FindByRole(db *gorm.DB, roleID int) ([]entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []entity.User
	for _, u := range r.users {
		if u.RoleID == roleID {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (r *fakeUserRepository) Update(db *gorm.DB, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

type fakePetRepository struct {
	pets map[uuid.UUID]*entity.Pet
}

func newFakePetRepository() *fakePetRepository {
	return &fakePetRepository{pets: make(map[uuid.UUID]*entity.Pet)}
}

func (r *fakePetRepository) add(pet *entity.Pet) *entity.Pet {
	if pet.ID == uuid.Nil {
		pet.ID = uuid.New()
	}
	r.pets[pet.ID] = pet
	return pet
}

func (r *fakePetRepository) Create(db *gorm.DB, pet *entity.Pet) error {
	r.add(pet)
	return nil
}

func (r *fakePetRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Pet, error) {
	pet, ok := r.pets[id]
	if !ok {
		return nil, nil
	}
	copied := *pet
	return &copied, nil
}

func (r *fakePetRepository) FindByOwnerID(db *gorm.DB, ownerID uuid.UUID) ([]entity.Pet, error) {
	var pets []entity.Pet
	for _, p := range r.pets {
		if p.OwnerID == ownerID {
			pets = append(pets, *p)
		}
	}
	return pets, nil
}

func (r *fakePetRepository) Update(db *gorm.DB, pet *entity.Pet) error {
	r.pets[pet.ID] = pet
	return nil
}

func (r *fakePetRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	if _, ok := r.pets[id]; !ok {
		return 0, nil
	}
	delete(r.pets, id)
	return 1, nil
}

type fakeVisitTypeRepository struct {
	visitTypes map[uuid.UUID]*entity.VisitType
}

func newFakeVisitTypeRepository() *fakeVisitTypeRepository {
	return &fakeVisitTypeRepository{visitTypes: make(map[uuid.UUID]*entity.VisitType)}
}

func (r *fakeVisitTypeRepository) add(vt *entity.VisitType) *entity.VisitType {
	if vt.ID == uuid.Nil {
		vt.ID = uuid.New()
	}
	r.visitTypes[vt.ID] = vt
	return vt
}

func (r *fakeVisitTypeRepository) Create(db *gorm.DB, visitType *entity.VisitType) error {
	r.add(visitType)
	return nil
}

func (r *fakeVisitTypeRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.VisitType, error) {
	vt, ok := r.visitTypes[id]
	if !ok {
		return nil, nil
	}
	copied := *vt
	return &copied, nil
}

func (r *fakeVisitTypeRepository) FindAll(db *gorm.DB) ([]entity.VisitType, error) {
	var visitTypes []entity.VisitType
	for _, vt := range r.visitTypes {
		visitTypes = append(visitTypes, *vt)
	}
	return visitTypes, nil
}

func (r *fakeVisitTypeRepository) Update(db *gorm.DB, visitType *entity.VisitType) error {
	r.visitTypes[visitType.ID] = visitType
	return nil
}

func (r *fakeVisitTypeRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	if _, ok := r.visitTypes[id]; !ok {
		return 0, nil
	}
	delete(r.visitTypes, id)
	return 1, nil
}

type fakeBranchRepository struct {
	branches map[int]*entity.Branch
}

func newFakeBranchRepository() *fakeBranchRepository {
	return &fakeBranchRepository{branches: make(map[int]*entity.Branch)}
}

func (r *fakeBranchRepository) add(branch *entity.Branch) *entity.Branch {
	r.branches[branch.ID] = branch
	return branch
}

func (r *fakeBranchRepository) FindByID(db *gorm.DB, id int) (*entity.Branch, error) {
	branch, ok := r.branches[id]
	if !ok {
		return nil, nil
	}
	copied := *branch
	return &copied, nil
}

func (r *fakeBranchRepository) FindAll(db *gorm.DB) ([]entity.Branch, error) {
	var branches []entity.Branch
	for _, b := range r.branches {
		branches = append(branches, *b)
	}
	return branches, nil
}

type fakeDoctorProfileRepository struct {
	profiles map[uuid.UUID]*entity.DoctorProfile
}

func newFakeDoctorProfileRepository() *fakeDoctorProfileRepository {
	return &fakeDoctorProfileRepository{profiles: make(map[uuid.UUID]*entity.DoctorProfile)}
}

func (r *fakeDoctorProfileRepository) add(profile *entity.DoctorProfile) *entity.DoctorProfile {
	r.profiles[profile.UserID] = profile
	return profile
}

func (r *fakeDoctorProfileRepository) Create(db *gorm.DB, profile *entity.DoctorProfile) error {
	r.add(profile)
	return nil
}

func (r *fakeDoctorProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, nil
	}
	copied := *profile
	return &copied, nil
}

func (r *fakeDoctorProfileRepository) FindAll(db *gorm.DB) ([]entity.DoctorProfile, error) {
	var profiles []entity.DoctorProfile
	for _, p := range r.profiles {
		profiles = append(profiles, *p)
	}
	return profiles, nil
}

func (r *fakeDoctorProfileRepository) FindByBranchID(db *gorm.DB, branchID int) ([]entity.DoctorProfile, error) {
	var profiles []entity.DoctorProfile
	for _, p := range r.profiles {
		if p.BranchID == branchID && !p.User.Disabled {
			profiles = append(profiles, *p)
		}
	}
	return profiles, nil
}

func (r *fakeDoctorProfileRepository) Update(db *gorm.DB, profile *entity.DoctorProfile) error {
	r.profiles[profile.UserID] = profile
	return nil
}

func (r *fakeDoctorProfileRepository) Delete(db *gorm.DB, userID uuid.UUID) (int64, error) {
	if _, ok := r.profiles[userID]; !ok {
		return 0, nil
	}
	delete(r.profiles, userID)
	return 1, nil
}

type fakeScheduleRepository struct {
	entries []entity.ScheduleEntry
}

func newFakeScheduleRepository() *fakeScheduleRepository {
	return &fakeScheduleRepository{}
}

func (r *fakeScheduleRepository) add(entry entity.ScheduleEntry) {
	r.entries = append(r.entries, entry)
}

func (r *fakeScheduleRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.ScheduleEntry, error) {
	var entries []entity.ScheduleEntry
	for _, e := range r.entries {
		if e.DoctorID == doctorID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (r *fakeScheduleRepository) FindByDoctorIDs(db *gorm.DB, doctorIDs []uuid.UUID) ([]entity.ScheduleEntry, error) {
	ids := make(map[uuid.UUID]bool, len(doctorIDs))
	for _, id := range doctorIDs {
		ids[id] = true
	}
	var entries []entity.ScheduleEntry
	for _, e := range r.entries {
		if ids[e.DoctorID] {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (r *fakeScheduleRepository) ReplaceForDoctor(db *gorm.DB, doctorID uuid.UUID, entries []entity.ScheduleEntry) error {
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.DoctorID != doctorID {
			kept = append(kept, e)
		}
	}
	r.entries = append(kept, entries...)
	return nil
}

func (r *fakeScheduleRepository) DeleteForDoctor(db *gorm.DB, doctorID uuid.UUID) (int64, error) {
	var removed int64
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.DoctorID == doctorID {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept
	return removed, nil
}

// fakeBookingRepository mirrors the database-side booking constraints:
// the unique constraint on (doctor_id, date, start_minute) and the gist
// exclusion on the minute range. Concurrent Create calls for conflicting
// slots resolve to exactly one winner, the loser getting the same violation
// PostgreSQL would raise. When hideFromReads is set, FindByDoctorsAndDate
// pretends the day is still free, reproducing the race window between the
// availability check and the insert.
type fakeBookingRepository struct {
	mu            sync.Mutex
	bookings      map[uuid.UUID]*entity.Booking
	hideFromReads bool
}

func newFakeBookingRepository() *fakeBookingRepository {
	return &fakeBookingRepository{
		bookings: make(map[uuid.UUID]*entity.Booking),
	}
}

func bookingSpan(b *entity.Booking) (int, int) {
	end := b.EndMinute
	if end <= b.StartMinute {
		end = b.StartMinute + b.DurationMinutes
	}
	return b.StartMinute, end
}

func (r *fakeBookingRepository) add(booking *entity.Booking) *entity.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	r.bookings[booking.ID] = booking
	return booking
}

func (r *fakeBookingRepository) Create(db *gorm.DB, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	day := booking.Date.Format("2006-01-02")
	start, end := bookingSpan(booking)
	for _, b := range r.bookings {
		if b.DoctorID != booking.DoctorID || b.Date.Format("2006-01-02") != day {
			continue
		}
		if b.StartMinute == booking.StartMinute {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_bookings_doctor_slot"}
		}
		if s, e := bookingSpan(b); start < e && s < end {
			return &pgconn.PgError{Code: "23P01", ConstraintName: "excl_bookings_doctor_span"}
		}
	}
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	stored := *booking
	r.bookings[booking.ID] = &stored
	return nil
}

func (r *fakeBookingRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *booking
	return &copied, nil
}

func (r *fakeBookingRepository) FindByClientID(db *gorm.DB, clientID uuid.UUID) ([]entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var bookings []entity.Booking
	for _, b := range r.bookings {
		if b.ClientID == clientID {
			bookings = append(bookings, *b)
		}
	}
	return bookings, nil
}

func (r *fakeBookingRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, filter *entity.BookingFilter) ([]entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var bookings []entity.Booking
	for _, b := range r.bookings {
		if b.DoctorID != doctorID {
			continue
		}
		if filter != nil {
			date := b.Date.Format("2006-01-02")
			if filter.Date != "" && date != filter.Date {
				continue
			}
			if filter.DateFrom != "" && date < filter.DateFrom {
				continue
			}
			if filter.DateTo != "" && date > filter.DateTo {
				continue
			}
			if filter.BranchID != 0 && b.BranchID != filter.BranchID {
				continue
			}
		}
		bookings = append(bookings, *b)
	}
	return bookings, nil
}

func (r *fakeBookingRepository) FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Booking, error) {
	return r.FindByDoctorsAndDate(db, []uuid.UUID{doctorID}, date)
}

func (r *fakeBookingRepository) FindByDoctorsAndDate(db *gorm.DB, doctorIDs []uuid.UUID, date time.Time) ([]entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hideFromReads {
		return nil, nil
	}
	ids := make(map[uuid.UUID]bool, len(doctorIDs))
	for _, id := range doctorIDs {
		ids[id] = true
	}
	day := date.Format("2006-01-02")
	var bookings []entity.Booking
	for _, b := range r.bookings {
		if ids[b.DoctorID] && b.Date.Format("2006-01-02") == day {
			bookings = append(bookings, *b)
		}
	}
	return bookings, nil
}

func (r *fakeBookingRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return 0, nil
	}
	delete(r.bookings, id)
	return 1, nil
}

type fakeAuditLogRepository struct {
	mu   sync.Mutex
	logs []entity.AuditLog
}

func newFakeAuditLogRepository() *fakeAuditLogRepository {
	return &fakeAuditLogRepository{}
}

func (r *fakeAuditLogRepository) Create(db *gorm.DB, log *entity.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, *log)
	return nil
}

func (r *fakeAuditLogRepository) FindAll(db *gorm.DB, limit, offset int) ([]entity.AuditLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := int64(len(r.logs))
	if offset >= len(r.logs) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(r.logs) {
		end = len(r.logs)
	}
	return append([]entity.AuditLog(nil), r.logs[offset:end]...), total, nil
}

func (r *fakeAuditLogRepository) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	actions := make([]string, len(r.logs))
	for i, l := range r.logs {
		actions[i] = l.Action
	}
	return actions
}
