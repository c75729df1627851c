package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/natybkl/Inklet/internal/domain/contract"
	"github.com/natybkl/Inklet/internal/domain/entity"
	"github.com/natybkl/Inklet/internal/infrastructure/metrics"
	usecasecontract "github.com/natybkl/Inklet/internal/usecase/contract"
)

var (
	// ErrInvalidReactionKind is returned for a kind outside {like, dislike}.
	ErrInvalidReactionKind = errors.New("invalid reaction kind")
	// ErrReactionUnavailable is returned when a toggle keeps losing races
	// after bounded retries, or the caller's deadline ran out.
	ErrReactionUnavailable = errors.New("reaction service temporarily unavailable")
)

const (
	toggleMaxAttempts = 3
	toggleBackoffBase = 20 * time.Millisecond
)

// ReactionUsecase handles the business logic for likes and dislikes. It is
// the only entry point for reaction mutations and count reads: it composes
// the reaction store (source of truth) with the aggregate cache and enforces
// the invalidate-on-write, read-through protocol.
type ReactionUsecase struct {
	reactionRepo  contract.IReactionRepository
	postRepo      contract.IPostRepository
	reactionCache contract.IReactionCache
	logger        usecasecontract.IAppLogger
}

var _ usecasecontract.IReactionUseCase = (*ReactionUsecase)(nil)

// NewReactionUsecase creates and returns a new ReactionUsecase instance.
func NewReactionUsecase(reactionRepo contract.IReactionRepository, postRepo contract.IPostRepository, logger usecasecontract.IAppLogger) *ReactionUsecase {
	return &ReactionUsecase{
		reactionRepo: reactionRepo,
		postRepo:     postRepo,
		logger:       logger,
	}
}

// SetReactionCache injects the optional aggregate cache. The usecase works
// without one; every read then goes to the reaction store.
func (u *ReactionUsecase) SetReactionCache(cache contract.IReactionCache) {
	u.reactionCache = cache
}

// ToggleReaction submits a reaction kind for a (user, post) pair and returns
// the resulting state: first submission creates, the opposite kind flips,
// the same kind removes (un-react).
//
// The store serializes concurrent toggles on the same pair; a lost race is
// retried here with exponential backoff up to toggleMaxAttempts, honoring
// the caller's deadline. After a committed toggle the cached counts are
// invalidated unconditionally: a failed invalidation never un-commits the
// toggle, it only widens the staleness window until the cache TTL expires.
func (u *ReactionUsecase) ToggleReaction(ctx context.Context, userID, postID string, kind entity.ReactionKind) (entity.ReactionState, error) {
	if !kind.IsValid() {
		return entity.ReactionStateNone, ErrInvalidReactionKind
	}

	exists, err := u.postRepo.PostExists(ctx, postID)
	if err != nil {
		return entity.ReactionStateNone, fmt.Errorf("failed to check post existence: %w", err)
	}
	if !exists {
		return entity.ReactionStateNone, contract.ErrPostNotFound
	}

	var state entity.ReactionState
	backoff := toggleBackoffBase
	for attempt := 1; ; attempt++ {
		_, state, err = u.reactionRepo.Toggle(ctx, userID, postID, kind)
		if err == nil {
			break
		}
		if !errors.Is(err, contract.ErrReactionConflict) {
			return entity.ReactionStateNone, fmt.Errorf("failed to toggle reaction: %w", err)
		}
		if attempt >= toggleMaxAttempts {
			u.logger.Errorf("reaction toggle exhausted %d attempts for user=%s post=%s", toggleMaxAttempts, userID, postID)
			return entity.ReactionStateNone, ErrReactionUnavailable
		}

		metrics.IncToggleConflictRetry()
		u.logger.Warningf("reaction toggle conflict for user=%s post=%s, retrying (attempt %d)", userID, postID, attempt)
		select {
		case <-ctx.Done():
			return entity.ReactionStateNone, ErrReactionUnavailable
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	u.invalidateCounts(ctx, postID)
	u.refreshPostCounters(ctx, postID)

	return state, nil
}

// GetReactionCounts returns per-post like/dislike counts through the cache:
// hit returns immediately, miss (or any cache error) recomputes from the
// reaction store and repopulates the cache best-effort.
func (u *ReactionUsecase) GetReactionCounts(ctx context.Context, postID string) (*entity.ReactionCounts, error) {
	exists, err := u.postRepo.PostExists(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to check post existence: %w", err)
	}
	if !exists {
		return nil, contract.ErrPostNotFound
	}

	if u.reactionCache != nil {
		t0 := time.Now()
		cached, found, err := u.reactionCache.GetCounts(ctx, postID)
		metrics.AddCacheReadDuration(time.Since(t0).Seconds())
		if err != nil {
			u.logger.Warningf("reaction cache read failed for post=%s, falling back to store: %v", postID, err)
		} else if found {
			metrics.IncReactionCacheHit()
			return cached, nil
		}
		metrics.IncReactionCacheMiss()
	}

	counts, err := u.reactionRepo.CountsFor(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute reaction counts: %w", err)
	}

	if u.reactionCache != nil {
		if err := u.reactionCache.SetCounts(ctx, postID, counts); err != nil {
			u.logger.Warningf("reaction cache set failed for post=%s: %v", postID, err)
		}
	}
	return counts, nil
}

// GetUserReaction retrieves the reaction (if any) a user has on a post.
// Returns nil, nil when the user has no reaction.
func (u *ReactionUsecase) GetUserReaction(ctx context.Context, userID, postID string) (*entity.Reaction, error) {
	reaction, err := u.reactionRepo.GetByUserAndPost(ctx, userID, postID)
	if err != nil {
		if errors.Is(err, contract.ErrReactionNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user's reaction: %w", err)
	}
	return reaction, nil
}

// RemovePostReactions cascades removal of every reaction on a post. Invoked
// by the post-deletion path before the post document itself is removed.
func (u *ReactionUsecase) RemovePostReactions(ctx context.Context, postID string) error {
	if err := u.reactionRepo.DeleteAllForPost(ctx, postID); err != nil {
		return fmt.Errorf("failed to remove reactions for post %s: %w", postID, err)
	}
	u.invalidateCounts(ctx, postID)
	return nil
}

// invalidateCounts drops the cached aggregate best-effort.
func (u *ReactionUsecase) invalidateCounts(ctx context.Context, postID string) {
	if u.reactionCache == nil {
		return
	}
	if err := u.reactionCache.InvalidateCounts(ctx, postID); err != nil {
		u.logger.Warningf("reaction cache invalidation failed for post=%s: %v", postID, err)
	}
}

// refreshPostCounters updates the denormalized like/dislike counters on the
// post document. Best-effort: the counters only feed list sorting by rating,
// the reaction store stays the source of truth.
func (u *ReactionUsecase) refreshPostCounters(ctx context.Context, postID string) {
	counts, err := u.reactionRepo.CountsFor(ctx, postID)
	if err != nil {
		u.logger.Warningf("failed to recompute counters for post=%s: %v", postID, err)
		return
	}
	updates := map[string]interface{}{
		"like_count":    counts.LikeCount,
		"dislike_count": counts.DislikeCount,
	}
	if err := u.postRepo.UpdatePost(ctx, postID, updates); err != nil {
		u.logger.Warningf("failed to update counters for post=%s: %v", postID, err)
	}
}
