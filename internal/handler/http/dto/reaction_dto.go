package dto

import "github.com/natybkl/Inklet/internal/domain/entity"

// ReactionRequest carries the reaction kind being submitted.
type ReactionRequest struct {
	Kind string `json:"kind" binding:"required,oneof=like dislike"`
}

// ReactionStateResponse is the resulting state after a toggle.
type ReactionStateResponse struct {
	State string `json:"state"`
}

// ReactionCountsResponse is the per-post aggregate.
type ReactionCountsResponse struct {
	PostID       string `json:"post_id"`
	LikeCount    int64  `json:"like_count"`
	DislikeCount int64  `json:"dislike_count"`
}

// ToReactionCountsResponse converts entity counts to the DTO.
func ToReactionCountsResponse(counts entity.ReactionCounts) ReactionCountsResponse {
	return ReactionCountsResponse{
		PostID:       counts.PostID,
		LikeCount:    counts.LikeCount,
		DislikeCount: counts.DislikeCount,
	}
}
