package contract

import (
	"context"

	"github.com/natybkl/Inklet/internal/domain/entity"
)

// CachedPostsPage is the cached payload for list endpoints.
type CachedPostsPage struct {
	Posts []entity.Post `json:"posts"`
	Total int64         `json:"total"`
}

// IPostCache defines caching operations for post detail and list reads.
type IPostCache interface {
	GetPost(ctx context.Context, postID string) (*entity.Post, bool, error)
	SetPost(ctx context.Context, post *entity.Post) error
	InvalidatePost(ctx context.Context, postID string) error

	// List pages (key built by usecase)
	GetPostsPage(ctx context.Context, key string) (*CachedPostsPage, bool, error)
	SetPostsPage(ctx context.Context, key string, page *CachedPostsPage) error
	InvalidatePostLists(ctx context.Context) error
}
