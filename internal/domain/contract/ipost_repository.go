package contract

import (
	"context"
	"time"

	"github.com/natybkl/Inklet/internal/domain/entity"
)

// PostFilterOptions carries filtering, sorting and pagination for post lists.
type PostFilterOptions struct {
	Page        int
	PageSize    int
	Category    string
	CreatedFrom *time.Time
	AuthorID    *string
	SortBy      string // created_at, rating, view_count, title
	SortOrder   string // asc, desc
}

// IPostRepository defines the interface for post data persistence.
type IPostRepository interface {
	CreatePost(ctx context.Context, post *entity.Post) error
	GetPostByID(ctx context.Context, postID string) (*entity.Post, error)
	PostExists(ctx context.Context, postID string) (bool, error)
	GetPosts(ctx context.Context, opts *PostFilterOptions) ([]*entity.Post, int64, error)
	SearchPosts(ctx context.Context, query string, opts *PostFilterOptions) ([]*entity.Post, int64, error)
	UpdatePost(ctx context.Context, postID string, updates map[string]interface{}) error
	DeletePost(ctx context.Context, postID string) error
	IncrementViewCount(ctx context.Context, postID string) error
}
