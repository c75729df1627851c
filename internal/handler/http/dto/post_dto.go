package dto

import (
	"time"

	"github.com/natybkl/Inklet/internal/domain/entity"
)

// CreatePostRequest is the payload for creating a post.
type CreatePostRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category"`
}

// UpdatePostRequest is the payload for a partial post update. Nil fields
// stay untouched.
type UpdatePostRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Category *string `json:"category"`
}

// PostResponse is the DTO for a post.
type PostResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	Category     string `json:"category"`
	AuthorID     string `json:"author_id"`
	ViewCount    int64  `json:"view_count"`
	LikeCount    int64  `json:"like_count"`
	DislikeCount int64  `json:"dislike_count"`
	Rating       int64  `json:"rating"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// PostListResponse wraps a page of posts with pagination metadata.
type PostListResponse struct {
	Posts    []PostResponse `json:"posts"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// ToPostResponse converts an entity.Post to a PostResponse DTO.
func ToPostResponse(post entity.Post) PostResponse {
	return PostResponse{
		ID:           post.ID,
		Title:        post.Title,
		Content:      post.Content,
		Category:     post.Category,
		AuthorID:     post.AuthorID,
		ViewCount:    post.ViewCount,
		LikeCount:    post.LikeCount,
		DislikeCount: post.DislikeCount,
		Rating:       post.Rating(),
		CreatedAt:    post.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    post.UpdatedAt.Format(time.RFC3339),
	}
}

// ToPostListResponse converts a page of posts with its metadata.
func ToPostListResponse(posts []entity.Post, total int64, page, pageSize int) PostListResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, ToPostResponse(p))
	}
	return PostListResponse{Posts: out, Total: total, Page: page, PageSize: pageSize}
}

// CommentRequest is the payload for creating or editing a comment.
type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CommentResponse is the DTO for a comment.
type CommentResponse struct {
	ID        string `json:"id"`
	PostID    string `json:"post_id"`
	AuthorID  string `json:"author_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// CommentListResponse wraps a page of comments.
type CommentListResponse struct {
	Comments []CommentResponse `json:"comments"`
	Total    int64             `json:"total"`
}

// ToCommentResponse converts an entity.Comment to a CommentResponse DTO.
func ToCommentResponse(comment entity.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		PostID:    comment.PostID,
		AuthorID:  comment.AuthorID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt.Format(time.RFC3339),
		UpdatedAt: comment.UpdatedAt.Format(time.RFC3339),
	}
}
