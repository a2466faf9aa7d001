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

// CommentHandler handles HTTP requests for comment operations.
type CommentHandler struct {
	svc    *service.CommentService
	logger *slog.Logger
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(svc *service.CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /comments.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	comments, err := h.svc.ListComments(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comments)
}

// Get handles GET /comments/{id}.
func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	comment, err := h.svc.GetComment(r.Context(), pathID(r))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comment)
}

// Create handles POST /comments.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var comment model.Comment
	if err := json.NewDecoder(r.Body).Decode(&comment); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := h.svc.CreateComment(r.Context(), &comment); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("comment_created", "comment_id", comment.ID, "post_id", comment.PostID)

	w.Header().Set("Location", fmt.Sprintf("/comments/%d", comment.ID))
	writeJSON(w, http.StatusCreated, comment)
}

// Update handles PUT /comments/{id}.
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)

	var req dto.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := h.svc.UpdateComment(r.Context(), id, req.ToInput()); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("comment_updated", "comment_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /comments/{id}.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)

	if err := h.svc.DeleteComment(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("comment_deleted", "comment_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// handleServiceError maps service errors to HTTP responses.
func (h *CommentHandler) handleServiceError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError

	switch {
	case errors.Is(err, service.ErrCommentNotFound):
		writeError(w, http.StatusNotFound, "COMMENT_NOT_FOUND", "Comment not found")
	case errors.Is(err, service.ErrIDMismatch):
		writeError(w, http.StatusBadRequest, "ID_MISMATCH", "ID in body does not match URL")
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", validationErr.Error())
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
