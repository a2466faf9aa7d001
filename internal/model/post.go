package model

// Post is a document in the posts collection.
// UserID is intended to reference an existing User.ID; the store does
// not enforce the relationship.
type Post struct {
	ID     int    `bson:"id" json:"id" validate:"required,gt=0"`
	UserID int    `bson:"userId" json:"userId" validate:"required,gt=0"`
	Title  string `bson:"title" json:"title" validate:"required"`
	Body   string `bson:"body" json:"body"`

	// Comments is populated at read time only.
	Comments []Comment `bson:"-" json:"comments,omitempty"`
}
