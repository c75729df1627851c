package usecasecontract

import (
	"context"
	"time"

	"github.com/natybkl/Inklet/internal/domain/entity"
)

// IPostUseCase defines post-related business logic.
type IPostUseCase interface {
	CreatePost(ctx context.Context, title, content, category, authorID string) (*entity.Post, error)
	GetPosts(ctx context.Context, page, pageSize int, category string, createdFrom *time.Time, sortBy, sortOrder string) ([]entity.Post, int64, int, int, error)
	SearchPosts(ctx context.Context, query string, page, pageSize int) ([]entity.Post, int64, int, int, error)
	GetPostDetail(ctx context.Context, postID string) (*entity.Post, error)
	UpdatePost(ctx context.Context, postID, authorID string, title, content, category *string) (*entity.Post, error)
	DeletePost(ctx context.Context, postID, userID string, isAdmin bool) error
}
