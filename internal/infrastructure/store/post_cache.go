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

// PostCacheStore caches post detail and list pages in Redis.
type PostCacheStore struct {
	rdb       *redis.Client
	detailTTL time.Duration
	listTTL   time.Duration
}

var _ contract.IPostCache = (*PostCacheStore)(nil)

func NewPostCacheStore(rdb *redis.Client, detailTTL time.Duration) *PostCacheStore {
	if detailTTL <= 0 {
		detailTTL = 10 * time.Minute
	}
	return &PostCacheStore{
		rdb:       rdb,
		detailTTL: detailTTL,
		listTTL:   detailTTL,
	}
}

func postDetailKey(postID string) string { return fmt.Sprintf("post:%s", postID) }

func (c *PostCacheStore) GetPost(ctx context.Context, postID string) (*entity.Post, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, cacheCallTimeout)
	defer cancel()

	b, err := c.rdb.Get(ctx, postDetailKey(postID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	var post entity.Post
	if err := json.Unmarshal(b, &post); err != nil {
		return nil, false, nil
	}
	return &post, true, nil
}

func (c *PostCacheStore) SetPost(ctx context.Context, post *entity.Post) error {
	data, err := json.Marshal(post)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, cacheCallTimeout)
	defer cancel()
	return c.rdb.Set(ctx, postDetailKey(post.ID), data, c.detailTTL).Err()
}

func (c *PostCacheStore) InvalidatePost(ctx context.Context, postID string) error {
	ctx, cancel := context.WithTimeout(ctx, cacheCallTimeout)
	defer cancel()
	return c.rdb.Del(ctx, postDetailKey(postID)).Err()
}

func (c *PostCacheStore) GetPostsPage(ctx context.Context, key string) (*contract.CachedPostsPage, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, cacheCallTimeout)
	defer cancel()

	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	var page contract.CachedPostsPage
	if err := json.Unmarshal(b, &page); err != nil {
		return nil, false, nil
	}
	return &page, true, nil
}

func (c *PostCacheStore) SetPostsPage(ctx context.Context, key string, page *contract.CachedPostsPage) error {
	data, err := json.Marshal(page)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, cacheCallTimeout)
	defer cancel()
	return c.rdb.Set(ctx, key, data, c.listTTL).Err()
}

// InvalidatePostLists drops every cached list page.
func (c *PostCacheStore) InvalidatePostLists(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, "posts:list:*", 1000).Iterator()
	pipe := c.rdb.Pipeline()
	n := 0
	for iter.Next(ctx) {
		pipe.Del(ctx, iter.Val())
		n++
		if n%200 == 0 {
			if _, err := pipe.Exec(ctx); err != nil {
				return err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	_, _ = pipe.Exec(ctx)
	return nil
}
