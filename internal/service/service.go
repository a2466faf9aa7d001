// Package service provides business logic for the application.
package service

import "errors"

// Entity kind labels used for metrics and cache keys.
const (
	kindUser    = "user"
	kindPost    = "post"
	kindComment = "comment"
)

// Service errors.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrEmailExists     = errors.New("user email already exists")
	ErrIDMismatch      = errors.New("id in body does not match url")
)
