package usecasecontract

import (
	"context"

	"github.com/natybkl/Inklet/internal/domain/entity"
)

// ICommentUseCase defines comment-related business logic.
type ICommentUseCase interface {
	CreateComment(ctx context.Context, postID, authorID, content string) (*entity.Comment, error)
	GetPostComments(ctx context.Context, postID string, page, pageSize int) ([]entity.Comment, int64, error)
	UpdateComment(ctx context.Context, commentID, authorID, content string) (*entity.Comment, error)
	DeleteComment(ctx context.Context, commentID, userID string, isAdmin bool) error
}
