package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/natybkl/Inklet/internal/domain/contract"
	"github.com/natybkl/Inklet/internal/domain/entity"
	usecasecontract "github.com/natybkl/Inklet/internal/usecase/contract"
)

// ErrEmptyCommentContent is returned when a comment body is blank.
var ErrEmptyCommentContent = errors.New("comment content is required")

// CommentUsecase handles the business logic for post comments.
type CommentUsecase struct {
	commentRepo contract.ICommentRepository
	postRepo    contract.IPostRepository
	uuidGen     contract.IUUIDGenerator
	logger      usecasecontract.IAppLogger
}

var _ usecasecontract.ICommentUseCase = (*CommentUsecase)(nil)

// NewCommentUsecase creates and returns a new CommentUsecase instance.
func NewCommentUsecase(commentRepo contract.ICommentRepository, postRepo contract.IPostRepository, uuidGen contract.IUUIDGenerator, logger usecasecontract.IAppLogger) *CommentUsecase {
	return &CommentUsecase{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		uuidGen:     uuidGen,
		logger:      logger,
	}
}

// CreateComment adds a comment to an existing post.
func (u *CommentUsecase) CreateComment(ctx context.Context, postID, authorID, content string) (*entity.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyCommentContent
	}

	exists, err := u.postRepo.PostExists(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to check post existence: %w", err)
	}
	if !exists {
		return nil, contract.ErrPostNotFound
	}

	comment := &entity.Comment{
		ID:       u.uuidGen.NewUUID(),
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
	}
	if err := u.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// GetPostComments returns a page of comments for a post, newest first.
func (u *CommentUsecase) GetPostComments(ctx context.Context, postID string, page, pageSize int) ([]entity.Comment, int64, error) {
	page, pageSize = normalizePaging(page, pageSize)

	exists, err := u.postRepo.PostExists(ctx, postID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to check post existence: %w", err)
	}
	if !exists {
		return nil, 0, contract.ErrPostNotFound
	}

	comments, total, err := u.commentRepo.ListByPost(ctx, postID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}

	result := make([]entity.Comment, 0, len(comments))
	for _, c := range comments {
		result = append(result, *c)
	}
	return result, total, nil
}

// UpdateComment edits a comment's content. Author only.
func (u *CommentUsecase) UpdateComment(ctx context.Context, commentID, authorID, content string) (*entity.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyCommentContent
	}

	comment, err := u.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != authorID {
		return nil, ErrUnauthorizedAction
	}

	comment.Content = content
	if err := u.commentRepo.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return comment, nil
}

// DeleteComment removes a comment. Author or admin.
func (u *CommentUsecase) DeleteComment(ctx context.Context, commentID, userID string, isAdmin bool) error {
	comment, err := u.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != userID && !isAdmin {
		return ErrUnauthorizedAction
	}
	if err := u.commentRepo.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}
