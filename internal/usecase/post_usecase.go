package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/natybkl/Inklet/internal/domain/contract"
	"github.com/natybkl/Inklet/internal/domain/entity"
	"github.com/natybkl/Inklet/internal/infrastructure/metrics"
	usecasecontract "github.com/natybkl/Inklet/internal/usecase/contract"
)

var (
	// ErrUnauthorizedAction is returned when a user tries to modify a
	// resource they do not own.
	ErrUnauthorizedAction = errors.New("user is not authorized to perform this action")
	// ErrEmptyPostFields is returned when required post fields are blank.
	ErrEmptyPostFields = errors.New("title and content are required")
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// PostUsecase handles the business logic for blog posts.
type PostUsecase struct {
	postRepo    contract.IPostRepository
	commentRepo contract.ICommentRepository
	reactionUC  usecasecontract.IReactionUseCase
	postCache   contract.IPostCache
	uuidGen     contract.IUUIDGenerator
	logger      usecasecontract.IAppLogger
}

var _ usecasecontract.IPostUseCase = (*PostUsecase)(nil)

// NewPostUsecase creates and returns a new PostUsecase instance.
func NewPostUsecase(postRepo contract.IPostRepository, commentRepo contract.ICommentRepository, reactionUC usecasecontract.IReactionUseCase, uuidGen contract.IUUIDGenerator, logger usecasecontract.IAppLogger) *PostUsecase {
	return &PostUsecase{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		reactionUC:  reactionUC,
		uuidGen:     uuidGen,
		logger:      logger,
	}
}

// SetPostCache injects the optional post cache.
func (u *PostUsecase) SetPostCache(cache contract.IPostCache) {
	u.postCache = cache
}

// CreatePost validates and persists a new post.
func (u *PostUsecase) CreatePost(ctx context.Context, title, content, category, authorID string) (*entity.Post, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return nil, ErrEmptyPostFields
	}

	post := &entity.Post{
		ID:       u.uuidGen.NewUUID(),
		Title:    title,
		Content:  content,
		Category: strings.TrimSpace(category),
		AuthorID: authorID,
	}
	if err := u.postRepo.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	u.invalidateLists(ctx)
	return post, nil
}

// GetPosts returns a filtered, sorted page of posts. List pages are served
// through the cache keyed by the full filter tuple, so any write that can
// change a page's membership invalidates all list keys.
func (u *PostUsecase) GetPosts(ctx context.Context, page, pageSize int, category string, createdFrom *time.Time, sortBy, sortOrder string) ([]entity.Post, int64, int, int, error) {
	page, pageSize = normalizePaging(page, pageSize)

	key := listCacheKey(page, pageSize, category, createdFrom, sortBy, sortOrder)
	if u.postCache != nil {
		cached, found, err := u.postCache.GetPostsPage(ctx, key)
		if err != nil {
			u.logger.Warningf("post list cache read failed for key=%s: %v", key, err)
		} else if found {
			metrics.IncPostCacheHit()
			return cached.Posts, cached.Total, page, pageSize, nil
		}
		metrics.IncPostCacheMiss()
	}

	opts := &contract.PostFilterOptions{
		Page:        page,
		PageSize:    pageSize,
		Category:    category,
		CreatedFrom: createdFrom,
		SortBy:      sortBy,
		SortOrder:   sortOrder,
	}
	posts, total, err := u.postRepo.GetPosts(ctx, opts)
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("failed to list posts: %w", err)
	}

	result := derefPosts(posts)
	if u.postCache != nil {
		cachePage := &contract.CachedPostsPage{Posts: result, Total: total}
		if err := u.postCache.SetPostsPage(ctx, key, cachePage); err != nil {
			u.logger.Warningf("post list cache set failed for key=%s: %v", key, err)
		}
	}
	return result, total, page, pageSize, nil
}

// SearchPosts performs a text search across titles and contents. Search
// results are not cached: the query space is unbounded.
func (u *PostUsecase) SearchPosts(ctx context.Context, query string, page, pageSize int) ([]entity.Post, int64, int, int, error) {
	page, pageSize = normalizePaging(page, pageSize)
	query = strings.TrimSpace(query)

	opts := &contract.PostFilterOptions{Page: page, PageSize: pageSize}
	posts, total, err := u.postRepo.SearchPosts(ctx, query, opts)
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("failed to search posts: %w", err)
	}
	return derefPosts(posts), total, page, pageSize, nil
}

// GetPostDetail returns a single post and registers the view. The view
// counter increments on every read, including cache hits.
func (u *PostUsecase) GetPostDetail(ctx context.Context, postID string) (*entity.Post, error) {
	var post *entity.Post

	if u.postCache != nil {
		cached, found, err := u.postCache.GetPost(ctx, postID)
		if err != nil {
			u.logger.Warningf("post cache read failed for post=%s: %v", postID, err)
		} else if found {
			metrics.IncPostCacheHit()
			post = cached
		} else {
			metrics.IncPostCacheMiss()
		}
	}

	if post == nil {
		fetched, err := u.postRepo.GetPostByID(ctx, postID)
		if err != nil {
			if errors.Is(err, contract.ErrPostNotFound) {
				return nil, contract.ErrPostNotFound
			}
			return nil, fmt.Errorf("failed to get post: %w", err)
		}
		post = fetched
		if u.postCache != nil {
			if err := u.postCache.SetPost(ctx, post); err != nil {
				u.logger.Warningf("post cache set failed for post=%s: %v", postID, err)
			}
		}
	}

	if err := u.postRepo.IncrementViewCount(ctx, postID); err != nil {
		u.logger.Warningf("failed to increment view count for post=%s: %v", postID, err)
	} else {
		post.ViewCount++
	}
	return post, nil
}

// UpdatePost applies the provided fields to a post owned by authorID.
func (u *PostUsecase) UpdatePost(ctx context.Context, postID, authorID string, title, content, category *string) (*entity.Post, error) {
	post, err := u.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != authorID {
		return nil, ErrUnauthorizedAction
	}

	updates := map[string]interface{}{}
	if title != nil {
		t := strings.TrimSpace(*title)
		if t == "" {
			return nil, ErrEmptyPostFields
		}
		updates["title"] = t
	}
	if content != nil {
		c := strings.TrimSpace(*content)
		if c == "" {
			return nil, ErrEmptyPostFields
		}
		updates["content"] = c
	}
	if category != nil {
		updates["category"] = strings.TrimSpace(*category)
	}
	if len(updates) == 0 {
		return post, nil
	}

	if err := u.postRepo.UpdatePost(ctx, postID, updates); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	u.invalidateDetail(ctx, postID)
	u.invalidateLists(ctx)

	return u.postRepo.GetPostByID(ctx, postID)
}

// DeletePost removes a post along with its comments, reactions and cache
// entries. Only the author or an admin may delete.
func (u *PostUsecase) DeletePost(ctx context.Context, postID, userID string, isAdmin bool) error {
	post, err := u.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID && !isAdmin {
		return ErrUnauthorizedAction
	}

	if err := u.reactionUC.RemovePostReactions(ctx, postID); err != nil {
		return fmt.Errorf("failed to cascade reaction removal: %w", err)
	}
	if err := u.commentRepo.DeleteAllForPost(ctx, postID); err != nil {
		return fmt.Errorf("failed to cascade comment removal: %w", err)
	}
	if err := u.postRepo.DeletePost(ctx, postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	u.invalidateDetail(ctx, postID)
	u.invalidateLists(ctx)
	return nil
}

func (u *PostUsecase) invalidateDetail(ctx context.Context, postID string) {
	if u.postCache == nil {
		return
	}
	if err := u.postCache.InvalidatePost(ctx, postID); err != nil {
		u.logger.Warningf("post cache invalidation failed for post=%s: %v", postID, err)
	}
}

func (u *PostUsecase) invalidateLists(ctx context.Context) {
	if u.postCache == nil {
		return
	}
	if err := u.postCache.InvalidatePostLists(ctx); err != nil {
		u.logger.Warningf("post list cache invalidation failed: %v", err)
	}
}

func normalizePaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func listCacheKey(page, pageSize int, category string, createdFrom *time.Time, sortBy, sortOrder string) string {
	from := ""
	if createdFrom != nil {
		from = createdFrom.UTC().Format(time.RFC3339)
	}
	return fmt.Sprintf("posts:list:p=%d:s=%d:cat=%s:from=%s:sort=%s:%s", page, pageSize, category, from, sortBy, sortOrder)
}

func derefPosts(posts []*entity.Post) []entity.Post {
	result := make([]entity.Post, 0, len(posts))
	for _, p := range posts {
		result = append(result, *p)
	}
	return result
}
