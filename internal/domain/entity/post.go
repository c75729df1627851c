package entity

import (
	"time"
)

// Post represents a blog post.
type Post struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Title        string    `bson:"title" json:"title"`
	Content      string    `bson:"content" json:"content"`
	Category     string    `bson:"category,omitempty" json:"category,omitempty"`
	AuthorID     string    `bson:"author_id" json:"author_id"`
	ViewCount    int64     `bson:"view_count" json:"view_count"`
	LikeCount    int64     `bson:"like_count" json:"like_count"`
	DislikeCount int64     `bson:"dislike_count" json:"dislike_count"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
	IsDeleted    bool      `bson:"is_deleted" json:"-"`
}

// Rating is the difference between likes and dislikes.
func (p *Post) Rating() int64 {
	return p.LikeCount - p.DislikeCount
}
