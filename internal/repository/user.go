package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/placekeeper/placekeeper/internal/model"
)

// ListUsers returns all users in stored order.
func (r *Repository) ListUsers(ctx context.Context) ([]model.User, error) {
	cursor, err := r.users().Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := []model.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	return users, nil
}

// GetUserByID retrieves a user by its application-assigned id.
func (r *Repository) GetUserByID(ctx context.Context, id int) (*model.User, error) {
	var user model.User
	err := r.users().FindOne(ctx, bson.M{"id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &user, nil
}

// CreateUser inserts a new user document as-is.
// Returns ErrEmailExists if a user with the same email is already stored.
func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	count, err := r.users().CountDocuments(ctx, bson.M{"email": user.Email})
	if err != nil {
		return fmt.Errorf("failed to check user email: %w", err)
	}
	if count > 0 {
		return ErrEmailExists
	}

	if _, err := r.users().InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// UpdateUser applies a $set field merge to the user matching id.
// Returns ErrNotFound if no document matched.
func (r *Repository) UpdateUser(ctx context.Context, id int, fields bson.M) error {
	result, err := r.users().UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteUser removes the user matching id.
// Returns ErrNotFound if no document matched.
func (r *Repository) DeleteUser(ctx context.Context, id int) error {
	result, err := r.users().DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteAllUsers removes every user document and returns the count.
// Posts and comments are left untouched.
func (r *Repository) DeleteAllUsers(ctx context.Context) (int64, error) {
	result, err := r.users().DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to delete all users: %w", err)
	}

	return result.DeletedCount, nil
}

// CountUsers returns the number of user documents.
func (r *Repository) CountUsers(ctx context.Context) (int64, error) {
	count, err := r.users().CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return count, nil
}

// InsertUsers bulk-inserts user documents.
func (r *Repository) InsertUsers(ctx context.Context, users []model.User) error {
	if len(users) == 0 {
		return nil
	}

	docs := make([]interface{}, len(users))
	for i := range users {
		docs[i] = users[i]
	}

	if _, err := r.users().InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert users: %w", err)
	}

	return nil
}
