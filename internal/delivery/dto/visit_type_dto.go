package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateVisitTypeRequest struct {
	Name            string          `json:"name" validate:"required,max=100"`
	DurationMinutes int             `json:"duration_minutes" validate:"required,gte=1,lte=720"`
	Price           decimal.Decimal `json:"price"`
}

type UpdateVisitTypeRequest struct {
	Name            string          `json:"name" validate:"required,max=100"`
	DurationMinutes int             `json:"duration_minutes" validate:"required,gte=1,lte=720"`
	Price           decimal.Decimal `json:"price"`
}

type VisitTypeResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	DurationMinutes int             `json:"duration_minutes"`
	Price           decimal.Decimal `json:"price"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type VisitTypeListResponse struct {
	VisitTypes []VisitTypeResponse `json:"visit_types"`
	Total      int                 `json:"total"`
}
