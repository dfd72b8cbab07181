package repository

import (
	"errors"
	"testing"
	"time"

	"vetclinic-booking/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
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

func TestBookingRepository_Create_UniqueViolationSurfaces(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBookingRepository()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_bookings_doctor_slot"})
	mock.ExpectRollback()

	err := db.Transaction(func(tx *gorm.DB) error {
		return repo.Create(tx, &entity.Booking{
			ClientID:        uuid.New(),
			DoctorID:        uuid.New(),
			BranchID:        1,
			Date:            time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
			StartMinute:     540,
			DurationMinutes: 20,
			EndMinute:       560,
			PetID:           uuid.New(),
			PetName:         "Burek",
			PetSpecies:      "dog",
			VisitTypeName:   "Kontrola",
			DoctorName:      "Anna Nowak",
		})
	})

	// The violation must come back as-is so the caller can map the
	// constraint name to its conflict error.
	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Equal(t, "23505", pgErr.Code)
	assert.Equal(t, "uq_bookings_doctor_slot", pgErr.ConstraintName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_FindByID_NotFoundIsNil(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBookingRepository()

	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE id =`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	booking, err := repo.FindByID(db, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, booking)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_FindByID_Found(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBookingRepository()

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE id =`).
		WithArgs(id.String(), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_minute", "duration_minutes", "pet_name"}).
			AddRow(id.String(), 540, 20, "Burek"))

	booking, err := repo.FindByID(db, id)
	require.NoError(t, err)
	require.NotNil(t, booking)
	assert.Equal(t, id, booking.ID)
	assert.Equal(t, 540, booking.StartMinute)
	assert.Equal(t, "Burek", booking.PetName)
}

func TestBookingRepository_FindByDoctorID_AppliesFilters(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBookingRepository()

	doctorID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE doctor_id = \$1 AND date >= \$2 AND date <= \$3 AND branch_id = \$4`).
		WithArgs(doctorID.String(), "2026-01-05", "2026-01-09", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "doctor_id"}).
			AddRow(uuid.New().String(), doctorID.String()))

	bookings, err := repo.FindByDoctorID(db, doctorID, &entity.BookingFilter{
		DateFrom: "2026-01-05",
		DateTo:   "2026-01-09",
		BranchID: 1,
	})
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_FindByDoctorsAndDate(t *testing.T) {
	t.Run("queries by day", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewBookingRepository()

		first, second := uuid.New(), uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE doctor_id IN \(\$1,\$2\) AND date = \$3`).
			WithArgs(first.String(), second.String(), "2026-01-05").
			WillReturnRows(sqlmock.NewRows([]string{"id", "doctor_id", "start_minute"}).
				AddRow(uuid.New().String(), first.String(), 540).
				AddRow(uuid.New().String(), second.String(), 600))

		bookings, err := repo.FindByDoctorsAndDate(db, []uuid.UUID{first, second}, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Len(t, bookings, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no doctors means no query", func(t *testing.T) {
		db, _ := newTestDB(t)
		repo := NewBookingRepository()

		bookings, err := repo.FindByDoctorsAndDate(db, nil, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Empty(t, bookings)
	})
}

func TestBookingRepository_Delete(t *testing.T) {
	t.Run("reports affected rows", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewBookingRepository()

		id := uuid.New()
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "bookings" WHERE id =`).
			WithArgs(id.String()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		affected, err := repo.Delete(db, id)
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)
	})

	t.Run("missing row deletes nothing", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewBookingRepository()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "bookings" WHERE id =`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		affected, err := repo.Delete(db, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, int64(0), affected)
	})
}

func TestBookingRepository_FindByClientID_PropagatesErrors(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBookingRepository()

	boom := errors.New("connection reset")
	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE client_id =`).
		WillReturnError(boom)

	bookings, err := repo.FindByClientID(db, uuid.New())
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, bookings)
}
