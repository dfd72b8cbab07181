package converter

import (
	"vetclinic-booking/internal/delivery/dto"
	"vetclinic-booking/internal/domain/entity"
	"vetclinic-booking/internal/scheduling"
)

// BranchToResponse converts a Branch entity to BranchResponse DTO
func BranchToResponse(branch *entity.Branch) *dto.BranchResponse {
	if branch == nil {
		return nil
	}

	return &dto.BranchResponse{
		ID:       branch.ID,
		Name:     branch.Name,
		OpensAt:  scheduling.TimeOfDay(branch.OpenMinute).String(),
		ClosesAt: scheduling.TimeOfDay(branch.CloseMinute).String(),
	}
}

// BranchesToResponses converts a slice of Branch entities to DTOs
func BranchesToResponses(branches []entity.Branch) []dto.BranchResponse {
	responses := make([]dto.BranchResponse, len(branches))
	for i, branch := range branches {
		responses[i] = *BranchToResponse(&branch)
	}
	return responses
}
