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

// PostService handles post business logic.
type PostService struct {
	repo    *repository.Repository
	cache   *cache.Cache
	metrics metrics.Recorder
}

// NewPostService creates a new PostService.
func NewPostService(repo *repository.Repository, c *cache.Cache, recorder metrics.Recorder) *PostService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &PostService{
		repo:    repo,
		cache:   c,
		metrics: recorder,
	}
}

// ListPosts retrieves all posts.
func (s *PostService) ListPosts(ctx context.Context) ([]model.Post, error) {
	return s.repo.ListPosts(ctx)
}

// GetPost retrieves a post by id, cache-first. When expandComments is
// set the post's comments are attached at read time.
func (s *PostService) GetPost(ctx context.Context, id int, expandComments bool) (*model.Post, error) {
	post, err := s.getPostCached(ctx, id)
	if err != nil {
		return nil, err
	}

	if expandComments {
		comments, err := s.repo.ListCommentsByPost(ctx, id)
		if err != nil {
			return nil, err
		}
		post.Comments = comments
	}

	return post, nil
}

// getPostCached resolves a post through the read-through cache.
func (s *PostService) getPostCached(ctx context.Context, id int) (*model.Post, error) {
	var cached model.Post
	if err := s.cache.GetEntity(ctx, cache.KindPost, id, &cached); err == nil {
		return &cached, nil
	}

	post, err := s.repo.GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if err := s.cache.SetEntity(ctx, cache.KindPost, id, post); err != nil {
		_ = err
	}

	return post, nil
}

// CreatePost validates and inserts a new post document as-is.
func (s *PostService) CreatePost(ctx context.Context, post *model.Post) error {
	if err := validateStruct(post); err != nil {
		return err
	}

	if err := s.repo.CreatePost(ctx, post); err != nil {
		return err
	}

	s.metrics.IncEntityCreated(kindPost)

	return nil
}

// UpdatePostInput defines the fields that can be merged into a post.
type UpdatePostInput struct {
	ID     *int
	UserID *int
	Title  *string
	Body   *string
}

// UpdatePost applies a field merge to the post matching id.
func (s *PostService) UpdatePost(ctx context.Context, id int, input UpdatePostInput) error {
	if input.ID != nil && *input.ID != id {
		return ErrIDMismatch
	}

	fields := bson.M{}
	if input.UserID != nil {
		fields["userId"] = *input.UserID
	}
	if input.Title != nil {
		fields["title"] = *input.Title
	}
	if input.Body != nil {
		fields["body"] = *input.Body
	}

	// An empty merge set is a no-op, but the document must still exist;
	// Mongo rejects an empty $set.
	if len(fields) == 0 {
		if _, err := s.repo.GetPostByID(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrPostNotFound
			}
			return err
		}
		return nil
	}

	if err := s.repo.UpdatePost(ctx, id, fields); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	s.metrics.IncEntityUpdated(kindPost)

	if err := s.cache.DeleteEntity(ctx, cache.KindPost, id); err != nil {
		_ = err
	}

	return nil
}

// DeletePost removes the post matching id. Comments referencing the
// post are left in place; only the user cascade removes them.
func (s *PostService) DeletePost(ctx context.Context, id int) error {
	if err := s.repo.DeletePost(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	s.metrics.IncEntityDeleted(kindPost)

	if err := s.cache.DeleteEntity(ctx, cache.KindPost, id); err != nil {
		_ = err
	}

	return nil
}
