package handler

import (
	"net/http"
	"strconv"

	"vetclinic-booking/internal/usecase"
	"vetclinic-booking/pkg/response"

	"github.com/gorilla/mux"
)

type BranchHandler struct {
	branchUsecase usecase.BranchUsecase
}

func NewBranchHandler(branchUsecase usecase.BranchUsecase) *BranchHandler {
	return &BranchHandler{branchUsecase: branchUsecase}
}

func (h *BranchHandler) ListBranches(w http.ResponseWriter, r *http.Request) {
	branches, err := h.branchUsecase.ListBranches(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get branches")
		return
	}

	response.Success(w, http.StatusOK, "Branches retrieved successfully", branches)
}

func (h *BranchHandler) GetBranch(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid branch ID")
		return
	}

	branch, err := h.branchUsecase.GetBranch(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrBranchNotFound:
			response.NotFound(w, "Branch not found")
		default:
			response.InternalServerError(w, "Failed to get branch")
		}
		return
	}

	response.Success(w, http.StatusOK, "Branch retrieved successfully", branch)
}
