package seed

import (
	"testing"

	"github.com/placekeeper/placekeeper/internal/fixture"
	"github.com/placekeeper/placekeeper/internal/model"
)

func TestAttachComments(t *testing.T) {
	posts := []model.Post{
		{ID: 10, UserID: 1, Title: "first"},
		{ID: 11, UserID: 1, Title: "second"},
		{ID: 12, UserID: 2, Title: "third"},
	}
	comments := []model.Comment{
		{ID: 100, PostID: 10, Body: "a"},
		{ID: 101, PostID: 11, Body: "b"},
		{ID: 102, PostID: 10, Body: "c"},
		{ID: 103, PostID: 99, Body: "orphan"},
	}

	result := AttachComments(posts, comments)

	if len(result) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(result))
	}

	// All matches included, order preserved
	if len(result[0].Comments) != 2 {
		t.Fatalf("expected 2 comments on post 10, got %d", len(result[0].Comments))
	}
	if result[0].Comments[0].ID != 100 || result[0].Comments[1].ID != 102 {
		t.Errorf("comment order not preserved: %+v", result[0].Comments)
	}

	if len(result[1].Comments) != 1 {
		t.Errorf("expected 1 comment on post 11, got %d", len(result[1].Comments))
	}

	if len(result[2].Comments) != 0 {
		t.Errorf("expected no comments on post 12, got %d", len(result[2].Comments))
	}

	// Input must not be mutated
	if posts[0].Comments != nil {
		t.Error("AttachComments mutated its input")
	}
}

func TestAttachPosts(t *testing.T) {
	users := []model.User{
		{ID: 1, Name: "A"},
		{ID: 2, Name: "B"},
	}
	posts := []model.Post{
		{ID: 10, UserID: 1},
		{ID: 11, UserID: 2},
		{ID: 12, UserID: 1},
	}

	result := AttachPosts(users, posts)

	if len(result[0].Posts) != 2 {
		t.Errorf("expected 2 posts for user 1, got %d", len(result[0].Posts))
	}
	if len(result[1].Posts) != 1 {
		t.Errorf("expected 1 post for user 2, got %d", len(result[1].Posts))
	}
	if result[0].Posts[0].ID != 10 || result[0].Posts[1].ID != 12 {
		t.Errorf("post order not preserved: %+v", result[0].Posts)
	}
}

func TestLimitDataset(t *testing.T) {
	ds := &fixture.Dataset{
		Users: []model.User{
			{ID: 1}, {ID: 2}, {ID: 3},
		},
		Posts: []model.Post{
			{ID: 10, UserID: 1},
			{ID: 11, UserID: 2},
			{ID: 12, UserID: 3},
		},
		Comments: []model.Comment{
			{ID: 100, PostID: 10},
			{ID: 101, PostID: 11},
			{ID: 102, PostID: 12},
		},
	}

	limited := LimitDataset(ds, 2)

	if len(limited.Users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(limited.Users))
	}

	// Only posts of kept users survive
	if len(limited.Posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(limited.Posts))
	}
	for _, p := range limited.Posts {
		if p.UserID != 1 && p.UserID != 2 {
			t.Errorf("post %d references trimmed user %d", p.ID, p.UserID)
		}
	}

	// Only comments transitively reachable survive
	if len(limited.Comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(limited.Comments))
	}
	for _, c := range limited.Comments {
		if c.PostID == 12 {
			t.Errorf("comment %d references trimmed post %d", c.ID, c.PostID)
		}
	}
}

func TestLimitDataset_LimitLargerThanUsers(t *testing.T) {
	ds := &fixture.Dataset{
		Users: []model.User{{ID: 1}},
		Posts: []model.Post{{ID: 10, UserID: 1}},
	}

	limited := LimitDataset(ds, 10)

	if len(limited.Users) != 1 || len(limited.Posts) != 1 {
		t.Errorf("unexpected trimming: %d users, %d posts", len(limited.Users), len(limited.Posts))
	}
}

// The limited, enriched view must satisfy the foreign-key relationships
// on every embedded document.
func TestEnrichedViewForeignKeys(t *testing.T) {
	ds := &fixture.Dataset{
		Users: []model.User{{ID: 1}, {ID: 2}},
		Posts: []model.Post{
			{ID: 10, UserID: 1},
			{ID: 11, UserID: 2},
		},
		Comments: []model.Comment{
			{ID: 100, PostID: 10},
			{ID: 101, PostID: 11},
			{ID: 102, PostID: 10},
		},
	}

	limited := LimitDataset(ds, 2)
	enriched := AttachPosts(limited.Users, AttachComments(limited.Posts, limited.Comments))

	for _, u := range enriched {
		for _, p := range u.Posts {
			if p.UserID != u.ID {
				t.Errorf("post %d embedded under user %d has userId %d", p.ID, u.ID, p.UserID)
			}
			for _, c := range p.Comments {
				if c.PostID != p.ID {
					t.Errorf("comment %d embedded under post %d has postId %d", c.ID, p.ID, c.PostID)
				}
			}
		}
	}
}
