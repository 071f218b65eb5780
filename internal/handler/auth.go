package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/userauth/userauth-go/internal/model"
	"github.com/userauth/userauth-go/internal/service"
)

// AuthHandler handles the public account endpoints: sign-up and token issuance.
type AuthHandler struct {
	service *service.UserService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.UserService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleCreateUser handles POST /user requests.
func (h *AuthHandler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.CreateUser(r.Context(), req)
	if err != nil {
		if isValidationError(err) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		slog.ErrorContext(r.Context(), "create user failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse(internalErrorMessage))
		return
	}

	w.Header().Set("Location", "/user/"+user.ID)
	w.WriteHeader(http.StatusCreated)
}

// HandleAuthenticate handles POST /authenticate requests.
func (h *AuthHandler) HandleAuthenticate(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Authenticate(r.Context(), req)
	if err != nil {
		switch {
		case isValidationError(err):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrUserNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse("User not found"))
		case errors.Is(err, service.ErrPasswordMismatch):
			writeJSON(w, http.StatusNotFound, errorResponse("Password does not match"))
		default:
			slog.ErrorContext(r.Context(), "authenticate failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse(internalErrorMessage))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func isValidationError(err error) bool {
	return errors.Is(err, service.ErrEmailRequired) ||
		errors.Is(err, service.ErrPasswordRequired) ||
		errors.Is(err, service.ErrPasswordTooLong) ||
		errors.Is(err, service.ErrNameRequired)
}
