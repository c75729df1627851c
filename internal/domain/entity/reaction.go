package entity

import (
	"time"
)

// ReactionKind is the kind of reaction a user can put on a post.
type ReactionKind string

const (
	ReactionKindLike    ReactionKind = "like"
	ReactionKindDislike ReactionKind = "dislike"
)

// IsValid reports whether the kind is one of the supported values.
func (k ReactionKind) IsValid() bool {
	return k == ReactionKindLike || k == ReactionKindDislike
}

// Opposite returns the other reaction kind.
func (k ReactionKind) Opposite() ReactionKind {
	if k == ReactionKindLike {
		return ReactionKindDislike
	}
	return ReactionKindLike
}

// ReactionState is the state of a (user, post) pair after a toggle.
type ReactionState string

const (
	ReactionStateNone     ReactionState = "none"
	ReactionStateLiked    ReactionState = "liked"
	ReactionStateDisliked ReactionState = "disliked"
)

// Reaction represents one user's stance on one post.
// At most one reaction exists per (UserID, PostID) pair; the pair is
// covered by a unique compound index in the reactions collection.
type Reaction struct {
	ID        string       `bson:"_id,omitempty" json:"id"`
	UserID    string       `bson:"user_id" json:"user_id"`
	PostID    string       `bson:"post_id" json:"post_id"`
	Kind      ReactionKind `bson:"kind" json:"kind"`
	CreatedAt time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time    `bson:"updated_at" json:"updated_at"`
}

// ReactionCounts is the derived per-post aggregate. It has no identity of
// its own: it is recomputed from the reactions collection on cache miss.
type ReactionCounts struct {
	PostID       string `bson:"post_id" json:"post_id"`
	LikeCount    int64  `bson:"like_count" json:"like_count"`
	DislikeCount int64  `bson:"dislike_count" json:"dislike_count"`
}
