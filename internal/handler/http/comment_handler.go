package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/natybkl/Inklet/internal/domain/contract"
	"github.com/natybkl/Inklet/internal/handler/http/dto"
	"github.com/natybkl/Inklet/internal/usecase"
	usecasecontract "github.com/natybkl/Inklet/internal/usecase/contract"
)

// CommentHandler exposes the comment endpoints.
type CommentHandler struct {
	commentUsecase usecasecontract.ICommentUseCase
}

func NewCommentHandler(commentUsecase usecasecontract.ICommentUseCase) *CommentHandler {
	return &CommentHandler{
		commentUsecase: commentUsecase,
	}
}

// CreateComment handles POST /posts/:postID/comments.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	postID := c.Param("postID")
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CommentRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	comment, err := h.commentUsecase.CreateComment(c.Request.Context(), postID, userID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, contract.ErrPostNotFound):
			ErrorHandler(c, http.StatusNotFound, "Post not found")
		case errors.Is(err, usecase.ErrEmptyCommentContent):
			ErrorHandler(c, http.StatusBadRequest, err.Error())
		default:
			ErrorHandler(c, http.StatusInternalServerError, "Failed to create comment")
		}
		return
	}
	SuccessHandler(c, http.StatusCreated, dto.ToCommentResponse(*comment))
}

// GetPostComments handles GET /posts/:postID/comments.
func (h *CommentHandler) GetPostComments(c *gin.Context) {
	postID := c.Param("postID")
	page, pageSize := parsePaging(c)

	comments, total, err := h.commentUsecase.GetPostComments(c.Request.Context(), postID, page, pageSize)
	if err != nil {
		if errors.Is(err, contract.ErrPostNotFound) {
			ErrorHandler(c, http.StatusNotFound, "Post not found")
			return
		}
		ErrorHandler(c, http.StatusInternalServerError, "Failed to list comments")
		return
	}

	out := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		out = append(out, dto.ToCommentResponse(comment))
	}
	SuccessHandler(c, http.StatusOK, dto.CommentListResponse{Comments: out, Total: total})
}

// UpdateComment handles PUT /comments/:commentID.
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	commentID := c.Param("commentID")
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CommentRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	comment, err := h.commentUsecase.UpdateComment(c.Request.Context(), commentID, userID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, contract.ErrCommentNotFound):
			ErrorHandler(c, http.StatusNotFound, "Comment not found")
		case errors.Is(err, usecase.ErrUnauthorizedAction):
			ErrorHandler(c, http.StatusForbidden, "Only the author can update this comment")
		case errors.Is(err, usecase.ErrEmptyCommentContent):
			ErrorHandler(c, http.StatusBadRequest, err.Error())
		default:
			ErrorHandler(c, http.StatusInternalServerError, "Failed to update comment")
		}
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToCommentResponse(*comment))
}

// DeleteComment handles DELETE /comments/:commentID.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID := c.Param("commentID")
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	err := h.commentUsecase.DeleteComment(c.Request.Context(), commentID, userID, currentUserIsAdmin(c))
	if err != nil {
		switch {
		case errors.Is(err, contract.ErrCommentNotFound):
			ErrorHandler(c, http.StatusNotFound, "Comment not found")
		case errors.Is(err, usecase.ErrUnauthorizedAction):
			ErrorHandler(c, http.StatusForbidden, "Only the author or an admin can delete this comment")
		default:
			ErrorHandler(c, http.StatusInternalServerError, "Failed to delete comment")
		}
		return
	}
	MessageHandler(c, http.StatusOK, "Comment deleted successfully")
}
