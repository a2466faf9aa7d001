// Package testutil provides shared helpers for tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/placekeeper/placekeeper/internal/model"
	"github.com/placekeeper/placekeeper/internal/repository"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

// idCounter disambiguates ids generated within the same nanosecond.
var idCounter uint64

// UniqueID generates a unique positive integer id for tests.
func UniqueID() int {
	n := atomic.AddUint64(&idCounter, 1)
	return int(time.Now().UnixNano()%1_000_000_000)*1000 + int(n%1000)
}

// ResetCollections empties the three entity collections.
func ResetCollections(ctx context.Context, repo *repository.Repository) error {
	if _, err := repo.DeleteAllComments(ctx); err != nil {
		return fmt.Errorf("reset comments: %w", err)
	}
	if _, err := repo.DeleteAllPosts(ctx); err != nil {
		return fmt.Errorf("reset posts: %w", err)
	}
	if _, err := repo.DeleteAllUsers(ctx); err != nil {
		return fmt.Errorf("reset users: %w", err)
	}
	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestUser creates a test user with sensible defaults.
func NewTestUser(t testing.TB, id int) *model.User {
	t.Helper()
	return &model.User{
		ID:       id,
		Name:     fmt.Sprintf("Test User %d", id),
		Username: fmt.Sprintf("testuser%d", id),
		Email:    fmt.Sprintf("user%d@example.com", id),
		Phone:    "1-770-736-8031",
		Website:  "example.com",
	}
}

// NewTestPost creates a test post with sensible defaults.
func NewTestPost(t testing.TB, id, userID int) *model.Post {
	t.Helper()
	return &model.Post{
		ID:     id,
		UserID: userID,
		Title:  fmt.Sprintf("Test Post %d", id),
		Body:   "test post body",
	}
}

// NewTestComment creates a test comment with sensible defaults.
func NewTestComment(t testing.TB, id, postID int) *model.Comment {
	t.Helper()
	return &model.Comment{
		ID:     id,
		PostID: postID,
		Name:   fmt.Sprintf("Test Comment %d", id),
		Email:  fmt.Sprintf("commenter%d@example.com", id),
		Body:   "test comment body",
	}
}
