package contract

import (
	"context"

	"github.com/natybkl/Inklet/internal/domain/entity"
)

// IReactionCache caches per-post like/dislike aggregates. All operations
// are best-effort: an error means "treat as miss", never "fail the request".
type IReactionCache interface {
	GetCounts(ctx context.Context, postID string) (*entity.ReactionCounts, bool, error)
	SetCounts(ctx context.Context, postID string, counts *entity.ReactionCounts) error
	InvalidateCounts(ctx context.Context, postID string) error
}
