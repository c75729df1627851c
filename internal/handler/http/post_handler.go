package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/natybkl/Inklet/internal/domain/contract"
	"github.com/natybkl/Inklet/internal/handler/http/dto"
	"github.com/natybkl/Inklet/internal/usecase"
	usecasecontract "github.com/natybkl/Inklet/internal/usecase/contract"
)

// PostHandler exposes the post CRUD and listing endpoints.
type PostHandler struct {
	postUsecase usecasecontract.IPostUseCase
}

func NewPostHandler(postUsecase usecasecontract.IPostUseCase) *PostHandler {
	return &PostHandler{
		postUsecase: postUsecase,
	}
}

// CreatePost handles POST /posts.
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	post, err := h.postUsecase.CreatePost(c.Request.Context(), req.Title, req.Content, req.Category, userID)
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyPostFields) {
			ErrorHandler(c, http.StatusBadRequest, err.Error())
			return
		}
		ErrorHandler(c, http.StatusInternalServerError, "Failed to create post")
		return
	}
	SuccessHandler(c, http.StatusCreated, dto.ToPostResponse(*post))
}

// GetPosts handles GET /posts with filter, sort and pagination query
// parameters.
func (h *PostHandler) GetPosts(c *gin.Context) {
	page, pageSize := parsePaging(c)
	category := c.Query("category")
	sortBy := c.DefaultQuery("sort_by", "created_at")
	sortOrder := c.DefaultQuery("sort_order", "desc")

	var createdFrom *time.Time
	if raw := c.Query("created_from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			ErrorHandler(c, http.StatusBadRequest, "created_from must be RFC3339")
			return
		}
		createdFrom = &t
	}

	posts, total, page, pageSize, err := h.postUsecase.GetPosts(c.Request.Context(), page, pageSize, category, createdFrom, sortBy, sortOrder)
	if err != nil {
		ErrorHandler(c, http.StatusInternalServerError, "Failed to list posts")
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToPostListResponse(posts, total, page, pageSize))
}

// SearchPosts handles GET /posts/search?q=.
func (h *PostHandler) SearchPosts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		ErrorHandler(c, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}
	page, pageSize := parsePaging(c)

	posts, total, page, pageSize, err := h.postUsecase.SearchPosts(c.Request.Context(), query, page, pageSize)
	if err != nil {
		ErrorHandler(c, http.StatusInternalServerError, "Failed to search posts")
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToPostListResponse(posts, total, page, pageSize))
}

// GetPostDetail handles GET /posts/:postID.
func (h *PostHandler) GetPostDetail(c *gin.Context) {
	postID := c.Param("postID")

	post, err := h.postUsecase.GetPostDetail(c.Request.Context(), postID)
	if err != nil {
		if errors.Is(err, contract.ErrPostNotFound) {
			ErrorHandler(c, http.StatusNotFound, "Post not found")
			return
		}
		ErrorHandler(c, http.StatusInternalServerError, "Failed to get post")
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToPostResponse(*post))
}

// UpdatePost handles PUT /posts/:postID.
func (h *PostHandler) UpdatePost(c *gin.Context) {
	postID := c.Param("postID")
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdatePostRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	post, err := h.postUsecase.UpdatePost(c.Request.Context(), postID, userID, req.Title, req.Content, req.Category)
	if err != nil {
		switch {
		case errors.Is(err, contract.ErrPostNotFound):
			ErrorHandler(c, http.StatusNotFound, "Post not found")
		case errors.Is(err, usecase.ErrUnauthorizedAction):
			ErrorHandler(c, http.StatusForbidden, "Only the author can update this post")
		case errors.Is(err, usecase.ErrEmptyPostFields):
			ErrorHandler(c, http.StatusBadRequest, err.Error())
		default:
			ErrorHandler(c, http.StatusInternalServerError, "Failed to update post")
		}
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToPostResponse(*post))
}

// DeletePost handles DELETE /posts/:postID. Deleting a post cascades to
// its comments, reactions and cached aggregates.
func (h *PostHandler) DeletePost(c *gin.Context) {
	postID := c.Param("postID")
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	err := h.postUsecase.DeletePost(c.Request.Context(), postID, userID, currentUserIsAdmin(c))
	if err != nil {
		switch {
		case errors.Is(err, contract.ErrPostNotFound):
			ErrorHandler(c, http.StatusNotFound, "Post not found")
		case errors.Is(err, usecase.ErrUnauthorizedAction):
			ErrorHandler(c, http.StatusForbidden, "Only the author or an admin can delete this post")
		default:
			ErrorHandler(c, http.StatusInternalServerError, "Failed to delete post")
		}
		return
	}
	MessageHandler(c, http.StatusOK, "Post deleted successfully")
}

// parsePaging reads page/page_size query parameters with defaults.
func parsePaging(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	return page, pageSize
}
