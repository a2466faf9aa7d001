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

// PostHandler handles HTTP requests for post operations.
type PostHandler struct {
	svc    *service.PostService
	logger *slog.Logger
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(svc *service.PostService, logger *slog.Logger) *PostHandler {
	return &PostHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /posts.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.ListPosts(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

// Get handles GET /posts/{id}.
// With ?expand=comments the post's comments are attached.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	expand := r.URL.Query().Get("expand") == "comments"

	post, err := h.svc.GetPost(r.Context(), id, expand)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// Create handles POST /posts.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var post model.Post
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := h.svc.CreatePost(r.Context(), &post); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("post_created", "post_id", post.ID, "user_id", post.UserID)

	w.Header().Set("Location", fmt.Sprintf("/posts/%d", post.ID))
	writeJSON(w, http.StatusCreated, post)
}

// Update handles PUT /posts/{id}.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)

	var req dto.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := h.svc.UpdatePost(r.Context(), id, req.ToInput()); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("post_updated", "post_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /posts/{id}.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)

	if err := h.svc.DeletePost(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("post_deleted", "post_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// handleServiceError maps service errors to HTTP responses.
func (h *PostHandler) handleServiceError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError

	switch {
	case errors.Is(err, service.ErrPostNotFound):
		writeError(w, http.StatusNotFound, "POST_NOT_FOUND", "Post not found")
	case errors.Is(err, service.ErrIDMismatch):
		writeError(w, http.StatusBadRequest, "ID_MISMATCH", "ID in body does not match URL")
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", validationErr.Error())
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
