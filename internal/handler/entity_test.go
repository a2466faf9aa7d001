package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/placekeeper/placekeeper/internal/handler/dto"
)

// Malformed bodies must be rejected with 400 before any service call;
// the handlers here carry no service at all.
func TestEntityHandlers_MalformedBody(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	userHandler := NewUserHandler(nil, logger)
	postHandler := NewPostHandler(nil, logger)
	commentHandler := NewCommentHandler(nil, logger)

	tests := []struct {
		name    string
		method  string
		path    string
		handler http.HandlerFunc
	}{
		{"create user", http.MethodPost, "/users", userHandler.Create},
		{"update user", http.MethodPut, "/users/1", userHandler.Update},
		{"create post", http.MethodPost, "/posts", postHandler.Create},
		{"update post", http.MethodPut, "/posts/1", postHandler.Update},
		{"create comment", http.MethodPost, "/comments", commentHandler.Create},
		{"update comment", http.MethodPut, "/comments/1", commentHandler.Update},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader("{"))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			tt.handler(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rec.Code)
			}

			var response dto.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}

			if response.Code != "INVALID_JSON" {
				t.Errorf("expected code INVALID_JSON, got %s", response.Code)
			}
			if response.Error == "" {
				t.Error("expected a non-empty error message")
			}
		})
	}
}

// Non-JSON bodies hit the same decode guard.
func TestEntityHandlers_NonJSONBody(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	userHandler := NewUserHandler(nil, logger)

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader("not json at all"))
	rec := httptest.NewRecorder()

	userHandler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var response dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if response.Code != "INVALID_JSON" {
		t.Errorf("expected code INVALID_JSON, got %s", response.Code)
	}
}
