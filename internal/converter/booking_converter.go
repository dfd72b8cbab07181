package converter

import (
	"vetclinic-booking/internal/delivery/dto"
	"vetclinic-booking/internal/domain/entity"
	"vetclinic-booking/internal/scheduling"
)

// BookingToResponse converts a Booking entity to BookingResponse DTO
func BookingToResponse(booking *entity.Booking) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	return &dto.BookingResponse{
		ID:              booking.ID,
		ClientID:        booking.ClientID,
		DoctorID:        booking.DoctorID,
		DoctorName:      booking.DoctorName,
		BranchID:        booking.BranchID,
		Date:            booking.Date.Format("2006-01-02"),
		Time:            scheduling.TimeOfDay(booking.StartMinute).String(),
		EndTime:         scheduling.TimeOfDay(booking.EndMinute).String(),
		DurationMinutes: booking.DurationMinutes,
		PetID:           booking.PetID,
		PetName:         booking.PetName,
		PetSpecies:      booking.PetSpecies,
		VisitTypeName:   booking.VisitTypeName,
		CreatedAt:       booking.CreatedAt,
	}
}

// BookingsToResponses converts a slice of Booking entities to DTOs
func BookingsToResponses(bookings []entity.Booking) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		responses[i] = *BookingToResponse(&booking)
	}
	return responses
}
