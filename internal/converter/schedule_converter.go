package converter

import (
	"vetclinic-booking/internal/delivery/dto"
	"vetclinic-booking/internal/domain/entity"
	"vetclinic-booking/internal/scheduling"

	"github.com/google/uuid"
)

// ScheduleToResponse converts a doctor's schedule entries to a ScheduleResponse DTO
func ScheduleToResponse(doctorID uuid.UUID, entries []entity.ScheduleEntry) *dto.ScheduleResponse {
	response := &dto.ScheduleResponse{
		DoctorID: doctorID,
		Entries:  make([]dto.ScheduleEntryResponse, len(entries)),
	}
	for i, entry := range entries {
		response.Entries[i] = dto.ScheduleEntryResponse{
			Weekday:   int(entry.Weekday),
			StartTime: scheduling.TimeOfDay(entry.StartMinute).String(),
			EndTime:   scheduling.TimeOfDay(entry.EndMinute).String(),
		}
	}
	return response
}

// EntriesToWeeklySchedule builds the availability engine's schedule view from
// a doctor's stored entries.
func EntriesToWeeklySchedule(entries []entity.ScheduleEntry) scheduling.WeeklySchedule {
	schedule := make(scheduling.WeeklySchedule, len(entries))
	for _, entry := range entries {
		schedule[entry.Weekday] = scheduling.WorkingInterval{
			Start: scheduling.TimeOfDay(entry.StartMinute),
			End:   scheduling.TimeOfDay(entry.EndMinute),
		}
	}
	return schedule
}
