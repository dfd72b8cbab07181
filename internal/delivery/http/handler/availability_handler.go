package handler

import (
	"net/http"
	"strconv"

	"vetclinic-booking/internal/scheduling"
	"vetclinic-booking/internal/usecase"
	"vetclinic-booking/pkg/response"

	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityUsecase: availabilityUsecase}
}

// GetDaySlots handles GET /availability/slots?branch_id=&date=&visit_type_id=
func (h *AvailabilityHandler) GetDaySlots(w http.ResponseWriter, r *http.Request) {
	branchID, err := strconv.Atoi(r.URL.Query().Get("branch_id"))
	if err != nil || branchID < 1 {
		response.BadRequest(w, "Invalid branch ID")
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.BadRequest(w, "Date is required")
		return
	}

	visitTypeID, err := uuid.Parse(r.URL.Query().Get("visit_type_id"))
	if err != nil {
		response.BadRequest(w, "Invalid visit type ID")
		return
	}

	slots, err := h.availabilityUsecase.GetDaySlots(r.Context(), branchID, date, visitTypeID)
	if err != nil {
		h.writeAvailabilityError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", slots)
}

// GetSlotDoctors handles GET /availability/doctors?branch_id=&date=&time=&visit_type_id=&species=
func (h *AvailabilityHandler) GetSlotDoctors(w http.ResponseWriter, r *http.Request) {
	branchID, err := strconv.Atoi(r.URL.Query().Get("branch_id"))
	if err != nil || branchID < 1 {
		response.BadRequest(w, "Invalid branch ID")
		return
	}

	date := r.URL.Query().Get("date")
	slotTime := r.URL.Query().Get("time")
	if date == "" || slotTime == "" {
		response.BadRequest(w, "Date and time are required")
		return
	}

	visitTypeID, err := uuid.Parse(r.URL.Query().Get("visit_type_id"))
	if err != nil {
		response.BadRequest(w, "Invalid visit type ID")
		return
	}

	species := r.URL.Query().Get("species")

	doctors, err := h.availabilityUsecase.GetSlotDoctors(r.Context(), branchID, date, slotTime, visitTypeID, species)
	if err != nil {
		h.writeAvailabilityError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Eligible doctors retrieved successfully", doctors)
}

func (h *AvailabilityHandler) writeAvailabilityError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrBranchNotFound:
		response.NotFound(w, "Branch not found")
	case usecase.ErrVisitTypeNotFound:
		response.NotFound(w, "Visit type not found")
	case usecase.ErrInvalidDateFormat, usecase.ErrSlotOffGrid, scheduling.ErrInvalidTimeOfDay:
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, "Failed to compute availability")
	}
}
