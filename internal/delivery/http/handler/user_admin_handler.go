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

type UserAdminHandler struct {
	userAdminUsecase usecase.UserAdminUsecase
	validator        *validator.CustomValidator
}

func NewUserAdminHandler(userAdminUsecase usecase.UserAdminUsecase, validator *validator.CustomValidator) *UserAdminHandler {
	return &UserAdminHandler{
		userAdminUsecase: userAdminUsecase,
		validator:        validator,
	}
}

func (h *UserAdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userAdminUsecase.ListUsers(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get users")
		return
	}

	response.Success(w, http.StatusOK, "Users retrieved successfully", users)
}

func (h *UserAdminHandler) BlockUser(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	if err := h.userAdminUsecase.BlockUser(r.Context(), adminID, userID); err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		case usecase.ErrSelfBlock:
			response.Error(w, http.StatusUnprocessableEntity, "Cannot block your own account", nil)
		default:
			response.InternalServerError(w, "Failed to block user")
		}
		return
	}

	response.Success(w, http.StatusOK, "User blocked successfully", nil)
}

func (h *UserAdminHandler) UnblockUser(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	if err := h.userAdminUsecase.UnblockUser(r.Context(), adminID, userID); err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to unblock user")
		}
		return
	}

	response.Success(w, http.StatusOK, "User unblocked successfully", nil)
}

func (h *UserAdminHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	var req dto.ChangeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.userAdminUsecase.ChangeRole(r.Context(), adminID, userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		case usecase.ErrRoleNotFound:
			response.NotFound(w, "Role not found")
		case usecase.ErrSelfDemote:
			response.Error(w, http.StatusUnprocessableEntity, "Cannot change your own role", nil)
		default:
			response.InternalServerError(w, "Failed to change role")
		}
		return
	}

	response.Success(w, http.StatusOK, "Role changed successfully", user)
}
