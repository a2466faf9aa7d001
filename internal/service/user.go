package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/placekeeper/placekeeper/internal/cache"
	"github.com/placekeeper/placekeeper/internal/metrics"
	"github.com/placekeeper/placekeeper/internal/model"
	"github.com/placekeeper/placekeeper/internal/repository"
	"github.com/placekeeper/placekeeper/internal/seed"
)

// Cascade step names reported in CascadeResult.
const (
	StepUserDeleted      = "user_deleted"
	StepPostIDsCollected = "post_ids_collected"
	StepPostsDeleted     = "posts_deleted"
	StepCommentsDeleted  = "comments_deleted"
)

// CascadeResult reports the outcome of a cascading user delete.
// A failed step after the user was removed leaves orphaned documents
// behind; there is no rollback.
type CascadeResult struct {
	PostsDeleted    int64
	CommentsDeleted int64
	Completed       []string
	FailedStep      string
	FailedErr       error
}

// Complete reports whether every cascade step was issued successfully.
func (r *CascadeResult) Complete() bool {
	return r.FailedStep == ""
}

// UserService handles user business logic.
type UserService struct {
	repo    *repository.Repository
	cache   *cache.Cache
	metrics metrics.Recorder
}

// NewUserService creates a new UserService.
func NewUserService(repo *repository.Repository, c *cache.Cache, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{
		repo:    repo,
		cache:   c,
		metrics: recorder,
	}
}

// ListUsers retrieves all users.
func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.ListUsers(ctx)
}

// GetUser retrieves a user by id, cache-first. When expandPosts is set
// the user's posts, each with its own comments, are attached to the
// response at read time.
func (s *UserService) GetUser(ctx context.Context, id int, expandPosts bool) (*model.User, error) {
	user, err := s.getUserCached(ctx, id)
	if err != nil {
		return nil, err
	}

	if expandPosts {
		posts, err := s.repo.ListPostsByUser(ctx, id)
		if err != nil {
			return nil, err
		}

		postIDs := make([]int, len(posts))
		for i, p := range posts {
			postIDs[i] = p.ID
		}

		comments, err := s.repo.ListCommentsByPostIDs(ctx, postIDs)
		if err != nil {
			return nil, err
		}

		user.Posts = seed.AttachComments(posts, comments)
	}

	return user, nil
}

// getUserCached resolves a user through the read-through cache.
func (s *UserService) getUserCached(ctx context.Context, id int) (*model.User, error) {
	var cached model.User
	if err := s.cache.GetEntity(ctx, cache.KindUser, id, &cached); err == nil {
		return &cached, nil
	}

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.cache.SetEntity(ctx, cache.KindUser, id, user); err != nil {
		_ = err // Eventual consistency is acceptable
	}

	return user, nil
}

// CreateUser validates and inserts a new user document as-is.
func (s *UserService) CreateUser(ctx context.Context, user *model.User) error {
	if err := validateStruct(user); err != nil {
		return err
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return ErrEmailExists
		}
		return err
	}

	s.metrics.IncEntityCreated(kindUser)

	return nil
}

// UpdateUserInput defines the fields that can be merged into a user.
// Nil fields are left untouched.
type UpdateUserInput struct {
	ID       *int
	Name     *string
	Username *string
	Email    *string
	Phone    *string
	Website  *string
	Address  *model.Address
	Company  *model.Company
}

// UpdateUser applies a field merge to the user matching id.
// An id in the input that differs from the url id is rejected.
func (s *UserService) UpdateUser(ctx context.Context, id int, input UpdateUserInput) error {
	if input.ID != nil && *input.ID != id {
		return ErrIDMismatch
	}

	fields := bson.M{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Username != nil {
		fields["username"] = *input.Username
	}
	if input.Email != nil {
		fields["email"] = *input.Email
	}
	if input.Phone != nil {
		fields["phone"] = *input.Phone
	}
	if input.Website != nil {
		fields["website"] = *input.Website
	}
	if input.Address != nil {
		fields["address"] = *input.Address
	}
	if input.Company != nil {
		fields["company"] = *input.Company
	}

	// An empty merge set is a no-op, but the document must still exist;
	// Mongo rejects an empty $set.
	if len(fields) == 0 {
		if _, err := s.repo.GetUserByID(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		return nil
	}

	if err := s.repo.UpdateUser(ctx, id, fields); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	s.metrics.IncEntityUpdated(kindUser)

	if err := s.cache.DeleteEntity(ctx, cache.KindUser, id); err != nil {
		_ = err // Log but don't fail
	}

	return nil
}

// DeleteUserCascade removes a user together with all posts referencing
// it and all comments referencing those posts. If the user does not
// exist nothing else is touched. The post ids are collected before the
// posts are deleted; a failure after the user was removed is reported
// as a partial result, not an error.
func (s *UserService) DeleteUserCascade(ctx context.Context, id int) (*CascadeResult, error) {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	result := &CascadeResult{Completed: []string{StepUserDeleted}}

	if err := s.cache.DeleteEntity(ctx, cache.KindUser, id); err != nil {
		_ = err
	}

	postIDs, err := s.repo.PostIDsByUser(ctx, id)
	if err != nil {
		return s.failCascade(result, StepPostIDsCollected, err), nil
	}
	result.Completed = append(result.Completed, StepPostIDsCollected)

	postsDeleted, err := s.repo.DeletePostsByUser(ctx, id)
	if err != nil {
		return s.failCascade(result, StepPostsDeleted, err), nil
	}
	result.PostsDeleted = postsDeleted
	result.Completed = append(result.Completed, StepPostsDeleted)

	commentsDeleted, err := s.repo.DeleteCommentsByPostIDs(ctx, postIDs)
	if err != nil {
		return s.failCascade(result, StepCommentsDeleted, err), nil
	}
	result.CommentsDeleted = commentsDeleted
	result.Completed = append(result.Completed, StepCommentsDeleted)

	if err := s.cache.InvalidateKind(ctx, cache.KindPost); err != nil {
		_ = err
	}
	if err := s.cache.InvalidateKind(ctx, cache.KindComment); err != nil {
		_ = err
	}

	s.metrics.IncEntityDeleted(kindUser)
	s.metrics.IncCascadeDelete()

	return result, nil
}

// failCascade marks the failed step on a partial cascade.
func (s *UserService) failCascade(result *CascadeResult, step string, err error) *CascadeResult {
	result.FailedStep = step
	result.FailedErr = err
	s.metrics.IncCascadePartial()
	return result
}

// DeleteAllUsers removes every user without cascading and returns the count.
func (s *UserService) DeleteAllUsers(ctx context.Context) (int64, error) {
	deleted, err := s.repo.DeleteAllUsers(ctx)
	if err != nil {
		return 0, err
	}

	if err := s.cache.InvalidateKind(ctx, cache.KindUser); err != nil {
		_ = err
	}

	return deleted, nil
}
