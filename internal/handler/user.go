package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/placekeeper/placekeeper/internal/handler/dto"
	"github.com/placekeeper/placekeeper/internal/model"
	"github.com/placekeeper/placekeeper/internal/service"
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// Get handles GET /users/{id}.
// With ?expand=posts the user's posts and their comments are attached.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	expand := r.URL.Query().Get("expand") == "posts"

	user, err := h.svc.GetUser(r.Context(), id, expand)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Create handles POST /users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var user model.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := h.svc.CreateUser(r.Context(), &user); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_created", "user_id", user.ID)

	w.Header().Set("Location", fmt.Sprintf("/users/%d", user.ID))
	writeJSON(w, http.StatusCreated, user)
}

// Update handles PUT /users/{id}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)

	var req dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := h.svc.UpdateUser(r.Context(), id, req.ToInput()); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_updated", "user_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /users/{id}.
// The user is removed together with all posts referencing it and all
// comments referencing those posts.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)

	result, err := h.svc.DeleteUserCascade(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	if !result.Complete() {
		h.logger.Error("user_cascade_partial",
			"user_id", id,
			"failed_step", result.FailedStep,
			"error", result.FailedErr,
		)
		writeJSON(w, http.StatusInternalServerError, dto.CascadeFailureResponse{
			Error:           "Cascade delete did not complete",
			Code:            "CASCADE_PARTIAL",
			CompletedSteps:  result.Completed,
			PostsDeleted:    result.PostsDeleted,
			CommentsDeleted: result.CommentsDeleted,
		})
		return
	}

	h.logger.Info("user_deleted",
		"user_id", id,
		"posts_deleted", result.PostsDeleted,
		"comments_deleted", result.CommentsDeleted,
	)

	w.WriteHeader(http.StatusNoContent)
}

// DeleteAll handles DELETE /users. No cascade; posts and comments stay.
func (h *UserHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.svc.DeleteAllUsers(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("users_deleted_all", "deleted", deleted)

	writeJSON(w, http.StatusOK, dto.DeleteAllUsersResponse{Deleted: deleted})
}

// handleServiceError maps service errors to HTTP responses.
func (h *UserHandler) handleServiceError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError

	switch {
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, service.ErrEmailExists):
		writeError(w, http.StatusConflict, "USER_EXISTS", "A user with this email already exists")
	case errors.Is(err, service.ErrIDMismatch):
		writeError(w, http.StatusBadRequest, "ID_MISMATCH", "ID in body does not match URL")
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", validationErr.Error())
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
