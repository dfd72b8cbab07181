package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePetRequest struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Species  string  `json:"species" validate:"required,max=50"`
	Breed    string  `json:"breed" validate:"max=100"`
	Age      int     `json:"age" validate:"gte=0,lte=100"`
	WeightKg float64 `json:"weight_kg" validate:"gte=0"`
	Sex      string  `json:"sex" validate:"omitempty,oneof=male female"`
}

type UpdatePetRequest struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Species  string  `json:"species" validate:"required,max=50"`
	Breed    string  `json:"breed" validate:"max=100"`
	Age      int     `json:"age" validate:"gte=0,lte=100"`
	WeightKg float64 `json:"weight_kg" validate:"gte=0"`
	Sex      string  `json:"sex" validate:"omitempty,oneof=male female"`
}

type PetResponse struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	Species   string    `json:"species"`
	Breed     string    `json:"breed,omitempty"`
	Age       int       `json:"age"`
	WeightKg  float64   `json:"weight_kg"`
	Sex       string    `json:"sex,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PetListResponse struct {
	Pets  []PetResponse `json:"pets"`
	Total int           `json:"total"`
}
