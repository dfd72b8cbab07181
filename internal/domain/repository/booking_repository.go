package repository

import (
	"time"

	"vetclinic-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(db *gorm.DB, booking *entity.Booking) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error)
	FindByClientID(db *gorm.DB, clientID uuid.UUID) ([]entity.Booking, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, filter *entity.BookingFilter) ([]entity.Booking, error)
	// FindByDoctorAndDate returns every booking occupying ticks of the
	// doctor's day; the availability engine derives occupied sets from it.
	FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Booking, error)
	FindByDoctorsAndDate(db *gorm.DB, doctorIDs []uuid.UUID, date time.Time) ([]entity.Booking, error)
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
