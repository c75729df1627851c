package entity

import (
	"time"
)

// Comment represents a comment on a post.
type Comment struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	PostID    string    `bson:"post_id" json:"post_id"`
	AuthorID  string    `bson:"author_id" json:"author_id"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
	IsDeleted bool      `bson:"is_deleted" json:"-"`
}
