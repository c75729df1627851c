package usecasecontract

import (
	"context"

	"github.com/natybkl/Inklet/internal/domain/entity"
)

// IReactionUseCase is the only entry point callers use for reactions.
type IReactionUseCase interface {
	ToggleReaction(ctx context.Context, userID, postID string, kind entity.ReactionKind) (entity.ReactionState, error)
	GetReactionCounts(ctx context.Context, postID string) (*entity.ReactionCounts, error)
	GetUserReaction(ctx context.Context, userID, postID string) (*entity.Reaction, error)
	RemovePostReactions(ctx context.Context, postID string) error
}
