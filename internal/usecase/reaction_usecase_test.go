package usecase_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/natybkl/Inklet/internal/domain/contract"
	"github.com/natybkl/Inklet/internal/domain/entity"
	"github.com/natybkl/Inklet/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLogger struct{}

func (testLogger) Debugf(format string, args ...interface{})   {}
func (testLogger) Infof(format string, args ...interface{})    {}
func (testLogger) Warnf(format string, args ...interface{})    {}
func (testLogger) Warningf(format string, args ...interface{}) {}
func (testLogger) Errorf(format string, args ...interface{})   {}
func (testLogger) Fatalf(format string, args ...interface{})   {}

// fakeReactionRepo keeps reactions in a map and applies the same toggle
// transitions as the real store. The mutex stands in for the storage
// engine's per-document serialization. ConflictsLeft injects lost races.
type fakeReactionRepo struct {
	mu            sync.Mutex
	reactions     map[string]entity.ReactionKind // key: userID|postID
	ConflictsLeft int
	ToggleCalls   int
	DeletedPosts  []string
}

func newFakeReactionRepo() *fakeReactionRepo {
	return &fakeReactionRepo{reactions: make(map[string]entity.ReactionKind)}
}

func pairKey(userID, postID string) string { return userID + "|" + postID }

func (f *fakeReactionRepo) Toggle(ctx context.Context, userID, postID string, kind entity.ReactionKind) (*entity.ReactionKind, entity.ReactionState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ToggleCalls++
	if f.ConflictsLeft > 0 {
		f.ConflictsLeft--
		return nil, entity.ReactionStateNone, contract.ErrReactionConflict
	}

	key := pairKey(userID, postID)
	previous, ok := f.reactions[key]
	if !ok {
		f.reactions[key] = kind
		if kind == entity.ReactionKindLike {
			return nil, entity.ReactionStateLiked, nil
		}
		return nil, entity.ReactionStateDisliked, nil
	}
	if previous == kind {
		delete(f.reactions, key)
		return &previous, entity.ReactionStateNone, nil
	}
	f.reactions[key] = kind
	if kind == entity.ReactionKindLike {
		return &previous, entity.ReactionStateLiked, nil
	}
	return &previous, entity.ReactionStateDisliked, nil
}

func (f *fakeReactionRepo) GetByUserAndPost(ctx context.Context, userID, postID string) (*entity.Reaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	kind, ok := f.reactions[pairKey(userID, postID)]
	if !ok {
		return nil, contract.ErrReactionNotFound
	}
	return &entity.Reaction{UserID: userID, PostID: postID, Kind: kind}, nil
}

func (f *fakeReactionRepo) CountsFor(ctx context.Context, postID string) (*entity.ReactionCounts, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	counts := &entity.ReactionCounts{PostID: postID}
	for key, kind := range f.reactions {
		if !strings.HasSuffix(key, "|"+postID) {
			continue
		}
		if kind == entity.ReactionKindLike {
			counts.LikeCount++
		} else {
			counts.DislikeCount++
		}
	}
	return counts, nil
}

func (f *fakeReactionRepo) DeleteAllForPost(ctx context.Context, postID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.DeletedPosts = append(f.DeletedPosts, postID)
	for key := range f.reactions {
		if strings.HasSuffix(key, "|"+postID) {
			delete(f.reactions, key)
		}
	}
	return nil
}

// fakeReactionCache records cache traffic in memory.
type fakeReactionCache struct {
	mu            sync.Mutex
	entries       map[string]*entity.ReactionCounts
	FailReads     bool
	Sets          int
	Invalidations int
}

func newFakeReactionCache() *fakeReactionCache {
	return &fakeReactionCache{entries: make(map[string]*entity.ReactionCounts)}
}

func (f *fakeReactionCache) GetCounts(ctx context.Context, postID string) (*entity.ReactionCounts, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailReads {
		return nil, false, fmt.Errorf("cache backend down")
	}
	counts, ok := f.entries[postID]
	if !ok {
		return nil, false, nil
	}
	return counts, true, nil
}

func (f *fakeReactionCache) SetCounts(ctx context.Context, postID string, counts *entity.ReactionCounts) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailReads {
		return fmt.Errorf("cache backend down")
	}
	f.Sets++
	f.entries[postID] = counts
	return nil
}

func (f *fakeReactionCache) InvalidateCounts(ctx context.Context, postID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Invalidations++
	delete(f.entries, postID)
	return nil
}

// fakePostRepo knows a fixed set of post IDs.
type fakePostRepo struct {
	mu      sync.Mutex
	posts   map[string]*entity.Post
	Updates map[string]map[string]interface{}
}

func newFakePostRepo(postIDs ...string) *fakePostRepo {
	posts := make(map[string]*entity.Post, len(postIDs))
	for _, id := range postIDs {
		posts[id] = &entity.Post{ID: id, Title: "t", Content: "c"}
	}
	return &fakePostRepo{posts: posts, Updates: make(map[string]map[string]interface{})}
}

func (f *fakePostRepo) CreatePost(ctx context.Context, post *entity.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.posts[post.ID] = post
	return nil
}

func (f *fakePostRepo) GetPostByID(ctx context.Context, postID string) (*entity.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	post, ok := f.posts[postID]
	if !ok {
		return nil, contract.ErrPostNotFound
	}
	cp := *post
	return &cp, nil
}

func (f *fakePostRepo) PostExists(ctx context.Context, postID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.posts[postID]
	return ok, nil
}

func (f *fakePostRepo) GetPosts(ctx context.Context, opts *contract.PostFilterOptions) ([]*entity.Post, int64, error) {
	return nil, 0, nil
}

func (f *fakePostRepo) SearchPosts(ctx context.Context, query string, opts *contract.PostFilterOptions) ([]*entity.Post, int64, error) {
	return nil, 0, nil
}

func (f *fakePostRepo) UpdatePost(ctx context.Context, postID string, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Updates[postID] = updates
	return nil
}

func (f *fakePostRepo) DeletePost(ctx context.Context, postID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.posts, postID)
	return nil
}

func (f *fakePostRepo) IncrementViewCount(ctx context.Context, postID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if post, ok := f.posts[postID]; ok {
		post.ViewCount++
	}
	return nil
}

func newReactionUsecase(repo *fakeReactionRepo, posts *fakePostRepo, cache *fakeReactionCache) *usecase.ReactionUsecase {
	uc := usecase.NewReactionUsecase(repo, posts, testLogger{})
	if cache != nil {
		uc.SetReactionCache(cache)
	}
	return uc
}

func TestToggleReaction_StateTransitions(t *testing.T) {
	repo := newFakeReactionRepo()
	posts := newFakePostRepo("post7")
	uc := newReactionUsecase(repo, posts, nil)
	ctx := context.Background()

	// First like creates the reaction.
	state, err := uc.ToggleReaction(ctx, "alice", "post7", entity.ReactionKindLike)
	require.NoError(t, err)
	assert.Equal(t, entity.ReactionStateLiked, state)

	counts, err := uc.GetReactionCounts(ctx, "post7")
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.LikeCount)
	assert.Equal(t, int64(0), counts.DislikeCount)

	// Same kind again removes it.
	state, err = uc.ToggleReaction(ctx, "alice", "post7", entity.ReactionKindLike)
	require.NoError(t, err)
	assert.Equal(t, entity.ReactionStateNone, state)

	counts, err = uc.GetReactionCounts(ctx, "post7")
	require.NoError(t, err)
	assert.Equal(t, int64(0), counts.LikeCount)
	assert.Equal(t, int64(0), counts.DislikeCount)

	// Dislike after the removal creates a dislike.
	state, err = uc.ToggleReaction(ctx, "alice", "post7", entity.ReactionKindDislike)
	require.NoError(t, err)
	assert.Equal(t, entity.ReactionStateDisliked, state)

	// A second user's like is independent.
	state, err = uc.ToggleReaction(ctx, "bob", "post7", entity.ReactionKindLike)
	require.NoError(t, err)
	assert.Equal(t, entity.ReactionStateLiked, state)

	counts, err = uc.GetReactionCounts(ctx, "post7")
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.LikeCount)
	assert.Equal(t, int64(1), counts.DislikeCount)
}

func TestToggleReaction_FlipReplacesOpposite(t *testing.T) {
	repo := newFakeReactionRepo()
	posts := newFakePostRepo("post1")
	uc := newReactionUsecase(repo, posts, nil)
	ctx := context.Background()

	_, err := uc.ToggleReaction(ctx, "alice", "post1", entity.ReactionKindLike)
	require.NoError(t, err)

	state, err := uc.ToggleReaction(ctx, "alice", "post1", entity.ReactionKindDislike)
	require.NoError(t, err)
	assert.Equal(t, entity.ReactionStateDisliked, state)

	counts, err := uc.GetReactionCounts(ctx, "post1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), counts.LikeCount)
	assert.Equal(t, int64(1), counts.DislikeCount)
}

func TestToggleReaction_ConcurrentDistinctUsers(t *testing.T) {
	repo := newFakeReactionRepo()
	posts := newFakePostRepo("post1")
	cache := newFakeReactionCache()
	uc := newReactionUsecase(repo, posts, cache)
	ctx := context.Background()

	const perKind = 32
	var wg sync.WaitGroup
	errs := make(chan error, 2*perKind)
	for i := 0; i < perKind; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_, err := uc.ToggleReaction(ctx, fmt.Sprintf("liker-%d", n), "post1", entity.ReactionKindLike)
			errs <- err
		}(i)
		go func(n int) {
			defer wg.Done()
			_, err := uc.ToggleReaction(ctx, fmt.Sprintf("disliker-%d", n), "post1", entity.ReactionKindDislike)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	// Every user's toggle must land; none may be lost to a race.
	counts, err := repo.CountsFor(ctx, "post1")
	require.NoError(t, err)
	assert.Equal(t, int64(perKind), counts.LikeCount)
	assert.Equal(t, int64(perKind), counts.DislikeCount)
}

func TestToggleReaction_InvalidKind(t *testing.T) {
	uc := newReactionUsecase(newFakeReactionRepo(), newFakePostRepo("post1"), nil)

	_, err := uc.ToggleReaction(context.Background(), "alice", "post1", entity.ReactionKind("love"))
	assert.ErrorIs(t, err, usecase.ErrInvalidReactionKind)
}

func TestToggleReaction_PostNotFound(t *testing.T) {
	uc := newReactionUsecase(newFakeReactionRepo(), newFakePostRepo(), nil)

	_, err := uc.ToggleReaction(context.Background(), "alice", "missing", entity.ReactionKindLike)
	assert.ErrorIs(t, err, contract.ErrPostNotFound)
}

func TestToggleReaction_RetriesTransientConflicts(t *testing.T) {
	repo := newFakeReactionRepo()
	repo.ConflictsLeft = 2
	posts := newFakePostRepo("post1")
	uc := newReactionUsecase(repo, posts, nil)

	state, err := uc.ToggleReaction(context.Background(), "alice", "post1", entity.ReactionKindLike)
	require.NoError(t, err)
	assert.Equal(t, entity.ReactionStateLiked, state)
	assert.Equal(t, 3, repo.ToggleCalls)
}

func TestToggleReaction_GivesUpAfterMaxAttempts(t *testing.T) {
	repo := newFakeReactionRepo()
	repo.ConflictsLeft = 10
	posts := newFakePostRepo("post1")
	uc := newReactionUsecase(repo, posts, nil)

	_, err := uc.ToggleReaction(context.Background(), "alice", "post1", entity.ReactionKindLike)
	assert.ErrorIs(t, err, usecase.ErrReactionUnavailable)
	assert.Equal(t, 3, repo.ToggleCalls)
}

func TestToggleReaction_HonorsContextDeadline(t *testing.T) {
	repo := newFakeReactionRepo()
	repo.ConflictsLeft = 10
	posts := newFakePostRepo("post1")
	uc := newReactionUsecase(repo, posts, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	_, err := uc.ToggleReaction(ctx, "alice", "post1", entity.ReactionKindLike)
	assert.ErrorIs(t, err, usecase.ErrReactionUnavailable)
}

func TestToggleReaction_InvalidatesCache(t *testing.T) {
	repo := newFakeReactionRepo()
	posts := newFakePostRepo("post1")
	cache := newFakeReactionCache()
	uc := newReactionUsecase(repo, posts, cache)
	ctx := context.Background()

	// Warm the cache, then toggle.
	_, err := uc.GetReactionCounts(ctx, "post1")
	require.NoError(t, err)
	require.Equal(t, 1, cache.Sets)

	_, err = uc.ToggleReaction(ctx, "alice", "post1", entity.ReactionKindLike)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Invalidations)

	// Next read recomputes and sees the new like.
	counts, err := uc.GetReactionCounts(ctx, "post1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.LikeCount)
}

func TestGetReactionCounts_ReadThrough(t *testing.T) {
	repo := newFakeReactionRepo()
	posts := newFakePostRepo("post1")
	cache := newFakeReactionCache()
	uc := newReactionUsecase(repo, posts, cache)
	ctx := context.Background()

	_, err := uc.ToggleReaction(ctx, "alice", "post1", entity.ReactionKindLike)
	require.NoError(t, err)

	// Miss populates the cache.
	counts, err := uc.GetReactionCounts(ctx, "post1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.LikeCount)
	assert.Equal(t, 1, cache.Sets)

	// Second read is served from the cache without another set.
	counts, err = uc.GetReactionCounts(ctx, "post1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.LikeCount)
	assert.Equal(t, 1, cache.Sets)
}

func TestGetReactionCounts_CacheFailureDegradesToStore(t *testing.T) {
	repo := newFakeReactionRepo()
	posts := newFakePostRepo("post1")
	cache := newFakeReactionCache()
	cache.FailReads = true
	uc := newReactionUsecase(repo, posts, cache)
	ctx := context.Background()

	_, err := uc.ToggleReaction(ctx, "alice", "post1", entity.ReactionKindDislike)
	require.NoError(t, err)

	counts, err := uc.GetReactionCounts(ctx, "post1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.DislikeCount)
}

func TestGetReactionCounts_PostNotFound(t *testing.T) {
	uc := newReactionUsecase(newFakeReactionRepo(), newFakePostRepo(), nil)

	_, err := uc.GetReactionCounts(context.Background(), "missing")
	assert.ErrorIs(t, err, contract.ErrPostNotFound)
}

func TestGetUserReaction(t *testing.T) {
	repo := newFakeReactionRepo()
	posts := newFakePostRepo("post1")
	uc := newReactionUsecase(repo, posts, nil)
	ctx := context.Background()

	reaction, err := uc.GetUserReaction(ctx, "alice", "post1")
	require.NoError(t, err)
	assert.Nil(t, reaction)

	_, err = uc.ToggleReaction(ctx, "alice", "post1", entity.ReactionKindLike)
	require.NoError(t, err)

	reaction, err = uc.GetUserReaction(ctx, "alice", "post1")
	require.NoError(t, err)
	require.NotNil(t, reaction)
	assert.Equal(t, entity.ReactionKindLike, reaction.Kind)
}

func TestRemovePostReactions(t *testing.T) {
	repo := newFakeReactionRepo()
	posts := newFakePostRepo("post1")
	cache := newFakeReactionCache()
	uc := newReactionUsecase(repo, posts, cache)
	ctx := context.Background()

	_, err := uc.ToggleReaction(ctx, "alice", "post1", entity.ReactionKindLike)
	require.NoError(t, err)
	_, err = uc.ToggleReaction(ctx, "bob", "post1", entity.ReactionKindDislike)
	require.NoError(t, err)

	require.NoError(t, uc.RemovePostReactions(ctx, "post1"))
	assert.Contains(t, repo.DeletedPosts, "post1")

	counts, err := uc.GetReactionCounts(ctx, "post1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), counts.LikeCount)
	assert.Equal(t, int64(0), counts.DislikeCount)
}

func TestToggleReaction_RefreshesDenormalizedCounters(t *testing.T) {
	repo := newFakeReactionRepo()
	posts := newFakePostRepo("post1")
	uc := newReactionUsecase(repo, posts, nil)

	_, err := uc.ToggleReaction(context.Background(), "alice", "post1", entity.ReactionKindLike)
	require.NoError(t, err)

	updates, ok := posts.Updates["post1"]
	require.True(t, ok)
	assert.Equal(t, int64(1), updates["like_count"])
	assert.Equal(t, int64(0), updates["dislike_count"])
}
