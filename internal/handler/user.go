package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/userauth/userauth-go/internal/middleware"
	"github.com/userauth/userauth-go/internal/model"
	"github.com/userauth/userauth-go/internal/service"
)

// maxIDLength is the length of a canonical UUID; longer ids cannot exist.
const maxIDLength = 36

// UserHandler handles the token-protected user endpoints.
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{service: svc}
}

// HandleListUsers handles GET /user requests.
func (h *UserHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Invalid token"))
		return
	}

	users, err := h.service.ListUsers(r.Context(), caller)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		slog.ErrorContext(r.Context(), "list users failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse(internalErrorMessage))
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// HandleGetUser handles GET /user/{id} requests.
func (h *UserHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Invalid token"))
		return
	}

	id, ok := userID(w, r)
	if !ok {
		return
	}

	user, err := h.service.GetUser(r.Context(), caller, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, service.ErrNotOwner):
			w.WriteHeader(http.StatusUnauthorized)
		default:
			slog.ErrorContext(r.Context(), "get user failed", "id", id, "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse(internalErrorMessage))
		}
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// HandleUpdateUser handles PUT /user/{id} requests. It responds only once the
// update has been stored. Any authenticated caller may update any account.
func (h *UserHandler) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.ClaimsFromContext(r.Context()); !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Invalid token"))
		return
	}

	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req model.UpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.UpdateUser(r.Context(), id, req); err != nil {
		switch {
		case isValidationError(err):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrUserNotFound):
			w.WriteHeader(http.StatusNotFound)
		default:
			slog.ErrorContext(r.Context(), "update user failed", "id", id, "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse(internalErrorMessage))
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDeleteUser handles DELETE /user/{id} requests. Like updates, deletes
// are not restricted to the record's owner.
func (h *UserHandler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.ClaimsFromContext(r.Context()); !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Invalid token"))
		return
	}

	id, ok := userID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		slog.ErrorContext(r.Context(), "delete user failed", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse(internalErrorMessage))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// userID reads the {id} path parameter. Ids that cannot exist are answered with 404.
func userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if id == "" || len(id) > maxIDLength {
		w.WriteHeader(http.StatusNotFound)
		return "", false
	}
	return id, true
}
