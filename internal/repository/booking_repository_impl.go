package repository

import (
	"errors"
	"time"

	"vetclinic-booking/internal/domain/entity"
	domainRepo "vetclinic-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bookingRepository struct{}

func NewBookingRepository() domainRepo.BookingRepository {
	return &bookingRepository{}
}

func (r *bookingRepository) Create(db *gorm.DB, booking *entity.Booking) error {
	return db.Create(booking).Error
}

func (r *bookingRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := db.Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByClientID(db *gorm.DB, clientID uuid.UUID) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.Where("client_id = ?", clientID).
		Order("date DESC, start_minute DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, filter *entity.BookingFilter) ([]entity.Booking, error) {
	query := db.Where("doctor_id = ?", doctorID)
	if filter != nil {
		if filter.Date != "" {
			query = query.Where("date = ?", filter.Date)
		}
		if filter.DateFrom != "" {
			query = query.Where("date >= ?", filter.DateFrom)
		}
		if filter.DateTo != "" {
			query = query.Where("date <= ?", filter.DateTo)
		}
		if filter.BranchID != 0 {
			query = query.Where("branch_id = ?", filter.BranchID)
		}
	}

	var bookings []entity.Booking
	err := query.Order("date ASC, start_minute ASC").Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.Where("doctor_id = ? AND date = ?", doctorID, date.Format("2006-01-02")).
		Order("start_minute ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByDoctorsAndDate(db *gorm.DB, doctorIDs []uuid.UUID, date time.Time) ([]entity.Booking, error) {
	if len(doctorIDs) == 0 {
		return nil, nil
	}
	var bookings []entity.Booking
	err := db.Where("doctor_id IN ? AND date = ?", doctorIDs, date.Format("2006-01-02")).
		Order("doctor_id ASC, start_minute ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Booking{})
	return result.RowsAffected, result.Error
}
