package converter

import (
	"vetclinic-booking/internal/delivery/dto"
	"vetclinic-booking/internal/domain/entity"

	"github.com/google/uuid"
)

// DoctorToResponse converts a DoctorProfile entity to DoctorResponse DTO
func DoctorToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	if profile == nil {
		return nil
	}

	response := &dto.DoctorResponse{
		UserID:         profile.UserID,
		BranchID:       profile.BranchID,
		Specialization: profile.Specialization,
		TreatedSpecies: profile.TreatedSpecies,
	}

	if profile.User.ID != uuid.Nil {
		response.Email = profile.User.Email
		response.FirstName = profile.User.FirstName
		response.LastName = profile.User.LastName
		response.Disabled = profile.User.Disabled
	}
	if profile.Branch.ID != 0 {
		response.BranchName = profile.Branch.Name
	}

	return response
}

// DoctorsToResponses converts a slice of DoctorProfile entities to DTOs
func DoctorsToResponses(profiles []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(profiles))
	for i, profile := range profiles {
		responses[i] = *DoctorToResponse(&profile)
	}
	return responses
}
