package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/natybkl/Inklet/internal/domain/contract"
	"github.com/natybkl/Inklet/internal/domain/entity"
	"github.com/natybkl/Inklet/internal/handler/http/dto"
	"github.com/natybkl/Inklet/internal/usecase"
	usecasecontract "github.com/natybkl/Inklet/internal/usecase/contract"
)

// ReactionHandler exposes the like/dislike endpoints.
type ReactionHandler struct {
	reactionUsecase usecasecontract.IReactionUseCase
}

func NewReactionHandler(reactionUsecase usecasecontract.IReactionUseCase) *ReactionHandler {
	return &ReactionHandler{
		reactionUsecase: reactionUsecase,
	}
}

// ToggleReaction handles POST /posts/:postID/reactions. Submitting the
// kind a user already holds removes it; the opposite kind replaces it.
func (h *ReactionHandler) ToggleReaction(c *gin.Context) {
	postID := c.Param("postID")
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.ReactionRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	state, err := h.reactionUsecase.ToggleReaction(c.Request.Context(), userID, postID, entity.ReactionKind(req.Kind))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidReactionKind):
			ErrorHandler(c, http.StatusBadRequest, "Reaction kind must be 'like' or 'dislike'")
		case errors.Is(err, contract.ErrPostNotFound):
			ErrorHandler(c, http.StatusNotFound, "Post not found")
		case errors.Is(err, usecase.ErrReactionUnavailable):
			ErrorHandler(c, http.StatusServiceUnavailable, "Could not record reaction, please retry")
		default:
			ErrorHandler(c, http.StatusInternalServerError, "Failed to record reaction")
		}
		return
	}

	SuccessHandler(c, http.StatusOK, dto.ReactionStateResponse{State: string(state)})
}

// GetReactionCounts handles GET /posts/:postID/reactions/count.
func (h *ReactionHandler) GetReactionCounts(c *gin.Context) {
	postID := c.Param("postID")

	counts, err := h.reactionUsecase.GetReactionCounts(c.Request.Context(), postID)
	if err != nil {
		if errors.Is(err, contract.ErrPostNotFound) {
			ErrorHandler(c, http.StatusNotFound, "Post not found")
			return
		}
		ErrorHandler(c, http.StatusInternalServerError, "Failed to get reaction counts")
		return
	}

	SuccessHandler(c, http.StatusOK, dto.ToReactionCountsResponse(*counts))
}

// GetMyReaction handles GET /posts/:postID/reactions/me and reports the
// calling user's current state on the post.
func (h *ReactionHandler) GetMyReaction(c *gin.Context) {
	postID := c.Param("postID")
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	reaction, err := h.reactionUsecase.GetUserReaction(c.Request.Context(), userID, postID)
	if err != nil {
		ErrorHandler(c, http.StatusInternalServerError, "Failed to get reaction")
		return
	}

	state := entity.ReactionStateNone
	if reaction != nil {
		switch reaction.Kind {
		case entity.ReactionKindLike:
			state = entity.ReactionStateLiked
		case entity.ReactionKindDislike:
			state = entity.ReactionStateDisliked
		}
	}
	SuccessHandler(c, http.StatusOK, dto.ReactionStateResponse{State: string(state)})
}
