package seed

import (
	"github.com/placekeeper/placekeeper/internal/fixture"
	"github.com/placekeeper/placekeeper/internal/model"
)

// AttachComments returns a copy of posts where each post carries the
// subsequence of comments whose postId matches its id. Order is
// preserved and all matches are included.
func AttachComments(posts []model.Post, comments []model.Comment) []model.Post {
	byPost := make(map[int][]model.Comment)
	for _, c := range comments {
		byPost[c.PostID] = append(byPost[c.PostID], c)
	}

	result := make([]model.Post, len(posts))
	for i, p := range posts {
		p.Comments = byPost[p.ID]
		result[i] = p
	}

	return result
}

// AttachPosts returns a copy of users where each user carries the
// subsequence of posts whose userId matches its id.
func AttachPosts(users []model.User, posts []model.Post) []model.User {
	byUser := make(map[int][]model.Post)
	for _, p := range posts {
		byUser[p.UserID] = append(byUser[p.UserID], p)
	}

	result := make([]model.User, len(users))
	for i, u := range users {
		u.Posts = byUser[u.ID]
		result[i] = u
	}

	return result
}

// LimitDataset trims a dataset to the first userLimit users plus only
// the posts and comments transitively reachable from them.
func LimitDataset(ds *fixture.Dataset, userLimit int) *fixture.Dataset {
	users := ds.Users
	if userLimit > 0 && userLimit < len(users) {
		users = users[:userLimit]
	}

	userIDs := make(map[int]bool, len(users))
	for _, u := range users {
		userIDs[u.ID] = true
	}

	posts := make([]model.Post, 0, len(ds.Posts))
	postIDs := make(map[int]bool)
	for _, p := range ds.Posts {
		if userIDs[p.UserID] {
			posts = append(posts, p)
			postIDs[p.ID] = true
		}
	}

	comments := make([]model.Comment, 0, len(ds.Comments))
	for _, c := range ds.Comments {
		if postIDs[c.PostID] {
			comments = append(comments, c)
		}
	}

	return &fixture.Dataset{
		Users:    users,
		Posts:    posts,
		Comments: comments,
	}
}
