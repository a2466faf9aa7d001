package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/placekeeper/placekeeper/internal/model"
)

// ListComments returns all comments in stored order.
func (r *Repository) ListComments(ctx context.Context) ([]model.Comment, error) {
	cursor, err := r.comments().Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	comments := []model.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}

	return comments, nil
}

// GetCommentByID retrieves a comment by its application-assigned id.
func (r *Repository) GetCommentByID(ctx context.Context, id int) (*model.Comment, error) {
	var comment model.Comment
	err := r.comments().FindOne(ctx, bson.M{"id": id}).Decode(&comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get comment by id: %w", err)
	}

	return &comment, nil
}

// ListCommentsByPost returns all comments whose postId matches, in stored order.
func (r *Repository) ListCommentsByPost(ctx context.Context, postID int) ([]model.Comment, error) {
	cursor, err := r.comments().Find(ctx, bson.M{"postId": postID})
	if err != nil {
		return nil, fmt.Errorf("failed to list comments by post: %w", err)
	}

	comments := []model.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}

	return comments, nil
}

// ListCommentsByPostIDs returns all comments whose postId is a member
// of the given set, in stored order.
func (r *Repository) ListCommentsByPostIDs(ctx context.Context, postIDs []int) ([]model.Comment, error) {
	if len(postIDs) == 0 {
		return []model.Comment{}, nil
	}

	cursor, err := r.comments().Find(ctx, bson.M{"postId": bson.M{"$in": postIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to list comments by post ids: %w", err)
	}

	comments := []model.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}

	return comments, nil
}

// CreateComment inserts a new comment document as-is.
func (r *Repository) CreateComment(ctx context.Context, comment *model.Comment) error {
	if _, err := r.comments().InsertOne(ctx, comment); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// UpdateComment applies a $set field merge to the comment matching id.
// Returns ErrNotFound if no document matched.
func (r *Repository) UpdateComment(ctx context.Context, id int, fields bson.M) error {
	result, err := r.comments().UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteComment removes the comment matching id.
// Returns ErrNotFound if no document matched.
func (r *Repository) DeleteComment(ctx context.Context, id int) error {
	result, err := r.comments().DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteCommentsByPostIDs removes all comments whose postId is a member
// of the given set and returns the count.
func (r *Repository) DeleteCommentsByPostIDs(ctx context.Context, postIDs []int) (int64, error) {
	if len(postIDs) == 0 {
		return 0, nil
	}

	result, err := r.comments().DeleteMany(ctx, bson.M{"postId": bson.M{"$in": postIDs}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete comments by post ids: %w", err)
	}

	return result.DeletedCount, nil
}

// DeleteAllComments removes every comment document and returns the count.
func (r *Repository) DeleteAllComments(ctx context.Context) (int64, error) {
	result, err := r.comments().DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to delete all comments: %w", err)
	}

	return result.DeletedCount, nil
}

// CountComments returns the number of comment documents.
func (r *Repository) CountComments(ctx context.Context) (int64, error) {
	count, err := r.comments().CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}

	return count, nil
}

// InsertComments bulk-inserts comment documents.
func (r *Repository) InsertComments(ctx context.Context, comments []model.Comment) error {
	if len(comments) == 0 {
		return nil
	}

	docs := make([]interface{}, len(comments))
	for i := range comments {
		docs[i] = comments[i]
	}

	if _, err := r.comments().InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert comments: %w", err)
	}

	return nil
}
