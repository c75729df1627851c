package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/natybkl/Inklet/internal/domain/contract"
	"github.com/natybkl/Inklet/internal/domain/entity"
)

// cacheCallTimeout caps every Redis round trip so a dead cache degrades to
// a direct store read instead of stalling the request.
const cacheCallTimeout = 250 * time.Millisecond

// ReactionCacheStore caches per-post like/dislike aggregates in Redis.
// The entry is invalidated after every committed toggle; the TTL only
// bounds staleness when an invalidation was missed.
type ReactionCacheStore struct {
	rdb       *redis.Client
	countsTTL time.Duration
}

var _ contract.IReactionCache = (*ReactionCacheStore)(nil)

func NewReactionCacheStore(rdb *redis.Client, countsTTL time.Duration) *ReactionCacheStore {
	if countsTTL <= 0 {
		countsTTL = 2 * time.Minute
	}
	return &ReactionCacheStore{
		rdb:       rdb,
		countsTTL: countsTTL,
	}
}

func reactionCountsKey(postID string) string {
	return fmt.Sprintf("post:%s:reaction_counts", postID)
}

// GetCounts looks up the cached aggregate. found=false on a clean miss;
// any Redis or decode error is returned for the caller to log and treat
// as a miss.
func (c *ReactionCacheStore) GetCounts(ctx context.Context, postID string) (*entity.ReactionCounts, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, cacheCallTimeout)
	defer cancel()

	b, err := c.rdb.Get(ctx, reactionCountsKey(postID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	var counts entity.ReactionCounts
	if err := json.Unmarshal(b, &counts); err != nil {
		return nil, false, nil
	}
	return &counts, true, nil
}

func (c *ReactionCacheStore) SetCounts(ctx context.Context, postID string, counts *entity.ReactionCounts) error {
	data, err := json.Marshal(counts)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, cacheCallTimeout)
	defer cancel()
	return c.rdb.Set(ctx, reactionCountsKey(postID), data, c.countsTTL).Err()
}

func (c *ReactionCacheStore) InvalidateCounts(ctx context.Context, postID string) error {
	ctx, cancel := context.WithTimeout(ctx, cacheCallTimeout)
	defer cancel()
	return c.rdb.Del(ctx, reactionCountsKey(postID)).Err()
}
