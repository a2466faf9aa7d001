package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/placekeeper/placekeeper/internal/model"
)

// ListPosts returns all posts in stored order.
func (r *Repository) ListPosts(ctx context.Context) ([]model.Post, error) {
	cursor, err := r.posts().Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	posts := []model.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}

	return posts, nil
}

// GetPostByID retrieves a post by its application-assigned id.
func (r *Repository) GetPostByID(ctx context.Context, id int) (*model.Post, error) {
	var post model.Post
	err := r.posts().FindOne(ctx, bson.M{"id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	return &post, nil
}

// ListPostsByUser returns all posts whose userId matches, in stored order.
func (r *Repository) ListPostsByUser(ctx context.Context, userID int) ([]model.Post, error) {
	cursor, err := r.posts().Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list posts by user: %w", err)
	}

	posts := []model.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}

	return posts, nil
}

// PostIDsByUser collects the ids of all posts whose userId matches.
// Used by cascade delete; must run before the posts are removed.
func (r *Repository) PostIDsByUser(ctx context.Context, userID int) ([]int, error) {
	cursor, err := r.posts().Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to find posts by user: %w", err)
	}

	var docs []struct {
		ID int `bson:"id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode post ids: %w", err)
	}

	ids := make([]int, len(docs))
	for i, doc := range docs {
		ids[i] = doc.ID
	}

	return ids, nil
}

// CreatePost inserts a new post document as-is.
func (r *Repository) CreatePost(ctx context.Context, post *model.Post) error {
	if _, err := r.posts().InsertOne(ctx, post); err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

// UpdatePost applies a $set field merge to the post matching id.
// Returns ErrNotFound if no document matched.
func (r *Repository) UpdatePost(ctx context.Context, id int, fields bson.M) error {
	result, err := r.posts().UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// DeletePost removes the post matching id.
// Returns ErrNotFound if no document matched.
func (r *Repository) DeletePost(ctx context.Context, id int) error {
	result, err := r.posts().DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// DeletePostsByUser removes all posts whose userId matches and returns the count.
func (r *Repository) DeletePostsByUser(ctx context.Context, userID int) (int64, error) {
	result, err := r.posts().DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete posts by user: %w", err)
	}

	return result.DeletedCount, nil
}

// DeleteAllPosts removes every post document and returns the count.
func (r *Repository) DeleteAllPosts(ctx context.Context) (int64, error) {
	result, err := r.posts().DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to delete all posts: %w", err)
	}

	return result.DeletedCount, nil
}

// CountPosts returns the number of post documents.
func (r *Repository) CountPosts(ctx context.Context) (int64, error) {
	count, err := r.posts().CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}

	return count, nil
}

// InsertPosts bulk-inserts post documents.
func (r *Repository) InsertPosts(ctx context.Context, posts []model.Post) error {
	if len(posts) == 0 {
		return nil
	}

	docs := make([]interface{}, len(posts))
	for i := range posts {
		docs[i] = posts[i]
	}

	if _, err := r.posts().InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert posts: %w", err)
	}

	return nil
}
