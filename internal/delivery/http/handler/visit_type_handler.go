package handler

import (
	"encoding/json"
	"net/http"

	"vetclinic-booking/internal/delivery/dto"
	"vetclinic-booking/internal/delivery/http/middleware"
	"vetclinic-booking/internal/usecase"
	"vetclinic-booking/pkg/response"
	"vetclinic-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type VisitTypeHandler struct {
	visitTypeUsecase usecase.VisitTypeUsecase
	validator        *validator.CustomValidator
}

func NewVisitTypeHandler(visitTypeUsecase usecase.VisitTypeUsecase, validator *validator.CustomValidator) *VisitTypeHandler {
	return &VisitTypeHandler{
		visitTypeUsecase: visitTypeUsecase,
		validator:        validator,
	}
}

func (h *VisitTypeHandler) ListVisitTypes(w http.ResponseWriter, r *http.Request) {
	visitTypes, err := h.visitTypeUsecase.ListVisitTypes(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get visit types")
		return
	}

	response.Success(w, http.StatusOK, "Visit types retrieved successfully", visitTypes)
}

func (h *VisitTypeHandler) GetVisitType(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid visit type ID")
		return
	}

	visitType, err := h.visitTypeUsecase.GetVisitType(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrVisitTypeNotFound:
			response.NotFound(w, "Visit type not found")
		default:
			response.InternalServerError(w, "Failed to get visit type")
		}
		return
	}

	response.Success(w, http.StatusOK, "Visit type retrieved successfully", visitType)
}

func (h *VisitTypeHandler) CreateVisitType(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.CreateVisitTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	visitType, err := h.visitTypeUsecase.CreateVisitType(r.Context(), adminID, &req)
	if err != nil {
		switch err {
		case usecase.ErrVisitTypeNameTaken:
			response.Conflict(w, "Visit type name already exists")
		default:
			response.InternalServerError(w, "Failed to create visit type")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Visit type created successfully", visitType)
}

func (h *VisitTypeHandler) UpdateVisitType(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid visit type ID")
		return
	}

	var req dto.UpdateVisitTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	visitType, err := h.visitTypeUsecase.UpdateVisitType(r.Context(), adminID, id, &req)
	if err != nil {
		switch err {
		case usecase.ErrVisitTypeNotFound:
			response.NotFound(w, "Visit type not found")
		case usecase.ErrVisitTypeNameTaken:
			response.Conflict(w, "Visit type name already exists")
		default:
			response.InternalServerError(w, "Failed to update visit type")
		}
		return
	}

	response.Success(w, http.StatusOK, "Visit type updated successfully", visitType)
}

func (h *VisitTypeHandler) DeleteVisitType(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid visit type ID")
		return
	}

	if err := h.visitTypeUsecase.DeleteVisitType(r.Context(), adminID, id); err != nil {
		switch err {
		case usecase.ErrVisitTypeNotFound:
			response.NotFound(w, "Visit type not found")
		default:
			response.InternalServerError(w, "Failed to delete visit type")
		}
		return
	}

	response.Success(w, http.StatusOK, "Visit type deleted successfully", nil)
}
