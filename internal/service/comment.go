package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/placekeeper/placekeeper/internal/cache"
	"github.com/placekeeper/placekeeper/internal/metrics"
	"github.com/placekeeper/placekeeper/internal/model"
	"github.com/placekeeper/placekeeper/internal/repository"
)

// CommentService handles comment business logic.
type CommentService struct {
	repo    *repository.Repository
	cache   *cache.Cache
	metrics metrics.Recorder
}

// NewCommentService creates a new CommentService.
func NewCommentService(repo *repository.Repository, c *cache.Cache, recorder metrics.Recorder) *CommentService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &CommentService{
		repo:    repo,
		cache:   c,
		metrics: recorder,
	}
}

// ListComments retrieves all comments.
func (s *CommentService) ListComments(ctx context.Context) ([]model.Comment, error) {
	return s.repo.ListComments(ctx)
}

// GetComment retrieves a comment by id, cache-first.
func (s *CommentService) GetComment(ctx context.Context, id int) (*model.Comment, error) {
	var cached model.Comment
	if err := s.cache.GetEntity(ctx, cache.KindComment, id, &cached); err == nil {
		return &cached, nil
	}

	comment, err := s.repo.GetCommentByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	if err := s.cache.SetEntity(ctx, cache.KindComment, id, comment); err != nil {
		_ = err
	}

	return comment, nil
}

// CreateComment validates and inserts a new comment document as-is.
func (s *CommentService) CreateComment(ctx context.Context, comment *model.Comment) error {
	if err := validateStruct(comment); err != nil {
		return err
	}

	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return err
	}

	s.metrics.IncEntityCreated(kindComment)

	return nil
}

// UpdateCommentInput defines the fields that can be merged into a comment.
type UpdateCommentInput struct {
	ID     *int
	PostID *int
	Name   *string
	Email  *string
	Body   *string
}

// UpdateComment applies a field merge to the comment matching id.
func (s *CommentService) UpdateComment(ctx context.Context, id int, input UpdateCommentInput) error {
	if input.ID != nil && *input.ID != id {
		return ErrIDMismatch
	}

	fields := bson.M{}
	if input.PostID != nil {
		fields["postId"] = *input.PostID
	}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Email != nil {
		fields["email"] = *input.Email
	}
	if input.Body != nil {
		fields["body"] = *input.Body
	}

	// An empty merge set is a no-op, but the document must still exist;
	// Mongo rejects an empty $set.
	if len(fields) == 0 {
		if _, err := s.repo.GetCommentByID(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrCommentNotFound
			}
			return err
		}
		return nil
	}

	if err := s.repo.UpdateComment(ctx, id, fields); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	s.metrics.IncEntityUpdated(kindComment)

	if err := s.cache.DeleteEntity(ctx, cache.KindComment, id); err != nil {
		_ = err
	}

	return nil
}

// DeleteComment removes the comment matching id.
func (s *CommentService) DeleteComment(ctx context.Context, id int) error {
	if err := s.repo.DeleteComment(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	s.metrics.IncEntityDeleted(kindComment)

	if err := s.cache.DeleteEntity(ctx, cache.KindComment, id); err != nil {
		_ = err
	}

	return nil
}
