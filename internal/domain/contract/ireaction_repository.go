package contract

import (
	"context"

	"github.com/natybkl/Inklet/internal/domain/entity"
)

// IReactionRepository defines the interface for reaction data persistence.
// It is the source of truth for like/dislike state.
type IReactionRepository interface {
	// Toggle applies the toggle state machine for one (user, post) pair:
	// no reaction -> create, same kind -> remove, opposite kind -> flip.
	// The step must be atomic with respect to concurrent callers on the
	// same pair; a lost race is reported as ErrReactionConflict and the
	// caller is expected to retry the whole toggle.
	Toggle(ctx context.Context, userID, postID string, kind entity.ReactionKind) (previous *entity.ReactionKind, state entity.ReactionState, err error)
	GetByUserAndPost(ctx context.Context, userID, postID string) (*entity.Reaction, error)
	CountsFor(ctx context.Context, postID string) (*entity.ReactionCounts, error)
	DeleteAllForPost(ctx context.Context, postID string) error
}
