package contract

import (
	"context"

	"github.com/natybkl/Inklet/internal/domain/entity"
)

// ICommentRepository defines the interface for comment data persistence.
type ICommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	GetByID(ctx context.Context, commentID string) (*entity.Comment, error)
	ListByPost(ctx context.Context, postID string, page, pageSize int) ([]*entity.Comment, int64, error)
	Update(ctx context.Context, comment *entity.Comment) error
	Delete(ctx context.Context, commentID string) error
	DeleteAllForPost(ctx context.Context, postID string) error
}
