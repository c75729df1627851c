package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/natybkl/Inklet/internal/domain/contract"
	"github.com/natybkl/Inklet/internal/domain/entity"
	"github.com/natybkl/Inklet/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCommentRepo struct {
	DeletedPosts []string
}

func (f *fakeCommentRepo) Create(ctx context.Context, comment *entity.Comment) error { return nil }
func (f *fakeCommentRepo) GetByID(ctx context.Context, commentID string) (*entity.Comment, error) {
	return nil, contract.ErrCommentNotFound
}
func (f *fakeCommentRepo) ListByPost(ctx context.Context, postID string, page, pageSize int) ([]*entity.Comment, int64, error) {
	return nil, 0, nil
}
func (f *fakeCommentRepo) Update(ctx context.Context, comment *entity.Comment) error { return nil }
func (f *fakeCommentRepo) Delete(ctx context.Context, commentID string) error        { return nil }
func (f *fakeCommentRepo) DeleteAllForPost(ctx context.Context, postID string) error {
	f.DeletedPosts = append(f.DeletedPosts, postID)
	return nil
}

type fakeUUIDGen struct{ next int }

func (f *fakeUUIDGen) NewUUID() string {
	f.next++
	return fmt.Sprintf("uuid-%d", f.next)
}

type fakePostCache struct {
	pages             map[string]*contract.CachedPostsPage
	details           map[string]*entity.Post
	ListInvalidations int
}

func newFakePostCache() *fakePostCache {
	return &fakePostCache{
		pages:   make(map[string]*contract.CachedPostsPage),
		details: make(map[string]*entity.Post),
	}
}

func (f *fakePostCache) GetPost(ctx context.Context, postID string) (*entity.Post, bool, error) {
	post, ok := f.details[postID]
	return post, ok, nil
}

func (f *fakePostCache) SetPost(ctx context.Context, post *entity.Post) error {
	f.details[post.ID] = post
	return nil
}

func (f *fakePostCache) InvalidatePost(ctx context.Context, postID string) error {
	delete(f.details, postID)
	return nil
}

func (f *fakePostCache) GetPostsPage(ctx context.Context, key string) (*contract.CachedPostsPage, bool, error) {
	page, ok := f.pages[key]
	return page, ok, nil
}

func (f *fakePostCache) SetPostsPage(ctx context.Context, key string, page *contract.CachedPostsPage) error {
	f.pages[key] = page
	return nil
}

func (f *fakePostCache) InvalidatePostLists(ctx context.Context) error {
	f.ListInvalidations++
	f.pages = make(map[string]*contract.CachedPostsPage)
	return nil
}

func newPostUsecase(posts *fakePostRepo, comments *fakeCommentRepo, reactions *fakeReactionRepo, cache *fakePostCache) *usecase.PostUsecase {
	reactionUC := usecase.NewReactionUsecase(reactions, posts, testLogger{})
	uc := usecase.NewPostUsecase(posts, comments, reactionUC, &fakeUUIDGen{}, testLogger{})
	if cache != nil {
		uc.SetPostCache(cache)
	}
	return uc
}

func TestCreatePost(t *testing.T) {
	posts := newFakePostRepo()
	uc := newPostUsecase(posts, &fakeCommentRepo{}, newFakeReactionRepo(), nil)

	post, err := uc.CreatePost(context.Background(), "  Title  ", "Body", "go", "alice")
	require.NoError(t, err)
	assert.Equal(t, "Title", post.Title)
	assert.Equal(t, "alice", post.AuthorID)
	assert.NotEmpty(t, post.ID)
}

func TestCreatePost_EmptyFields(t *testing.T) {
	uc := newPostUsecase(newFakePostRepo(), &fakeCommentRepo{}, newFakeReactionRepo(), nil)

	_, err := uc.CreatePost(context.Background(), "   ", "Body", "", "alice")
	assert.ErrorIs(t, err, usecase.ErrEmptyPostFields)
}

func TestUpdatePost_AuthorOnly(t *testing.T) {
	posts := newFakePostRepo("post1")
	posts.posts["post1"].AuthorID = "alice"
	uc := newPostUsecase(posts, &fakeCommentRepo{}, newFakeReactionRepo(), nil)

	title := "New title"
	_, err := uc.UpdatePost(context.Background(), "post1", "mallory", &title, nil, nil)
	assert.ErrorIs(t, err, usecase.ErrUnauthorizedAction)
}

func TestDeletePost_CascadesAndInvalidates(t *testing.T) {
	posts := newFakePostRepo("post1")
	posts.posts["post1"].AuthorID = "alice"
	comments := &fakeCommentRepo{}
	reactions := newFakeReactionRepo()
	cache := newFakePostCache()
	uc := newPostUsecase(posts, comments, reactions, cache)
	ctx := context.Background()

	_, _, err := reactions.Toggle(ctx, "bob", "post1", entity.ReactionKindLike)
	require.NoError(t, err)

	require.NoError(t, uc.DeletePost(ctx, "post1", "alice", false))

	assert.Contains(t, comments.DeletedPosts, "post1")
	assert.Contains(t, reactions.DeletedPosts, "post1")
	assert.Equal(t, 1, cache.ListInvalidations)

	_, err = uc.GetPostDetail(ctx, "post1")
	assert.ErrorIs(t, err, contract.ErrPostNotFound)
}

func TestDeletePost_AdminOverride(t *testing.T) {
	posts := newFakePostRepo("post1")
	posts.posts["post1"].AuthorID = "alice"
	uc := newPostUsecase(posts, &fakeCommentRepo{}, newFakeReactionRepo(), nil)

	assert.ErrorIs(t, uc.DeletePost(context.Background(), "post1", "mallory", false), usecase.ErrUnauthorizedAction)
	assert.NoError(t, uc.DeletePost(context.Background(), "post1", "admin-user", true))
}

func TestGetPostDetail_CountsView(t *testing.T) {
	posts := newFakePostRepo("post1")
	uc := newPostUsecase(posts, &fakeCommentRepo{}, newFakeReactionRepo(), nil)
	ctx := context.Background()

	post, err := uc.GetPostDetail(ctx, "post1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), post.ViewCount)

	post, err = uc.GetPostDetail(ctx, "post1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), post.ViewCount)
}
