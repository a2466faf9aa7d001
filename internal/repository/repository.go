// Package repository provides document store access layer.
package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	usersCollection    = "users"
	postsCollection    = "posts"
	commentsCollection = "comments"
)

// Common errors for repository operations.
var (
	ErrNotFound    = errors.New("document not found")
	ErrEmailExists = errors.New("user email already exists")
)

// Repository provides document store access methods.
type Repository struct {
	client *mongo.Client
	db     *mongo.Database
}

// New creates a new Repository with a connected MongoDB client.
// The connection is verified with a ping before returning.
func New(ctx context.Context, uri, dbName string) (*Repository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &Repository{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

// Ping checks document store connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the MongoDB client.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

// users returns the users collection handle.
func (r *Repository) users() *mongo.Collection {
	return r.db.Collection(usersCollection)
}

// posts returns the posts collection handle.
func (r *Repository) posts() *mongo.Collection {
	return r.db.Collection(postsCollection)
}

// comments returns the comments collection handle.
func (r *Repository) comments() *mongo.Collection {
	return r.db.Collection(commentsCollection)
}
