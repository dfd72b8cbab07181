package converter

import (
	"vetclinic-booking/internal/delivery/dto"
	"vetclinic-booking/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// VisitTypeToResponse converts a VisitType entity to VisitTypeResponse DTO.
// Prices are stored in minor units (grosze) and exposed as decimal amounts.
func VisitTypeToResponse(visitType *entity.VisitType) *dto.VisitTypeResponse {
	if visitType == nil {
		return nil
	}

	return &dto.VisitTypeResponse{
		ID:              visitType.ID,
		Name:            visitType.Name,
		DurationMinutes: visitType.DurationMinutes,
		Price:           decimal.NewFromInt(visitType.PriceMinorUnits).Div(decimal.NewFromInt(100)),
		CreatedAt:       visitType.CreatedAt,
		UpdatedAt:       visitType.UpdatedAt,
	}
}

// VisitTypesToResponses converts a slice of VisitType entities to DTOs
func VisitTypesToResponses(visitTypes []entity.VisitType) []dto.VisitTypeResponse {
	responses := make([]dto.VisitTypeResponse, len(visitTypes))
	for i, visitType := range visitTypes {
		responses[i] = *VisitTypeToResponse(&visitType)
	}
	return responses
}

// PriceToMinorUnits converts a decimal price to stored minor units.
func PriceToMinorUnits(price decimal.Decimal) int64 {
	return price.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
