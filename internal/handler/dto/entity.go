// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"github.com/placekeeper/placekeeper/internal/model"
	"github.com/placekeeper/placekeeper/internal/service"
)

// UpdateUserRequest represents the request body for replacing user fields.
// Only fields present in the body are merged into the stored document.
type UpdateUserRequest struct {
	ID       *int           `json:"id,omitempty"`
	Name     *string        `json:"name,omitempty"`
	Username *string        `json:"username,omitempty"`
	Email    *string        `json:"email,omitempty"`
	Phone    *string        `json:"phone,omitempty"`
	Website  *string        `json:"website,omitempty"`
	Address  *model.Address `json:"address,omitempty"`
	Company  *model.Company `json:"company,omitempty"`
}

// ToInput converts the request to a service update input.
func (r *UpdateUserRequest) ToInput() service.UpdateUserInput {
	return service.UpdateUserInput{
		ID:       r.ID,
		Name:     r.Name,
		Username: r.Username,
		Email:    r.Email,
		Phone:    r.Phone,
		Website:  r.Website,
		Address:  r.Address,
		Company:  r.Company,
	}
}

// UpdatePostRequest represents the request body for replacing post fields.
type UpdatePostRequest struct {
	ID     *int    `json:"id,omitempty"`
	UserID *int    `json:"userId,omitempty"`
	Title  *string `json:"title,omitempty"`
	Body   *string `json:"body,omitempty"`
}

// ToInput converts the request to a service update input.
func (r *UpdatePostRequest) ToInput() service.UpdatePostInput {
	return service.UpdatePostInput{
		ID:     r.ID,
		UserID: r.UserID,
		Title:  r.Title,
		Body:   r.Body,
	}
}

// UpdateCommentRequest represents the request body for replacing comment fields.
type UpdateCommentRequest struct {
	ID     *int    `json:"id,omitempty"`
	PostID *int    `json:"postId,omitempty"`
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Body   *string `json:"body,omitempty"`
}

// ToInput converts the request to a service update input.
func (r *UpdateCommentRequest) ToInput() service.UpdateCommentInput {
	return service.UpdateCommentInput{
		ID:     r.ID,
		PostID: r.PostID,
		Name:   r.Name,
		Email:  r.Email,
		Body:   r.Body,
	}
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// DeleteAllUsersResponse reports how many users a bulk delete removed.
type DeleteAllUsersResponse struct {
	Deleted int64 `json:"deleted"`
}

// CascadeFailureResponse reports a cascade delete that stopped partway.
type CascadeFailureResponse struct {
	Error           string   `json:"error"`
	Code            string   `json:"code"`
	CompletedSteps  []string `json:"completed_steps"`
	PostsDeleted    int64    `json:"posts_deleted"`
	CommentsDeleted int64    `json:"comments_deleted"`
}

// LoadResponse is the body returned by the reload endpoint.
type LoadResponse struct {
	Status string       `json:"status"`
	Users  []model.User `json:"users"`
}
