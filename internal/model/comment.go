package model

// Comment is a document in the comments collection.
// PostID is intended to reference an existing Post.ID.
type Comment struct {
	ID     int    `bson:"id" json:"id" validate:"required,gt=0"`
	PostID int    `bson:"postId" json:"postId" validate:"required,gt=0"`
	Name   string `bson:"name" json:"name"`
	Email  string `bson:"email" json:"email" validate:"omitempty,email"`
	Body   string `bson:"body" json:"body" validate:"required"`
}
