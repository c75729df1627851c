package mocks

import (
	"context"
	"errors"

	"github.com/natybkl/Inklet/internal/domain/contract"
	"github.com/natybkl/Inklet/internal/domain/entity"
	"github.com/natybkl/Inklet/internal/usecase"
	usecasecontract "github.com/natybkl/Inklet/internal/usecase/contract"
)

// MockReactionUsecase is a hand-rolled IReactionUseCase for handler tests.
type MockReactionUsecase struct {
	State  entity.ReactionState
	Counts entity.ReactionCounts

	ShouldFailPostNotFound bool
	ShouldFailUnavailable  bool
	ShouldFailInternal     bool
}

var _ usecasecontract.IReactionUseCase = (*MockReactionUsecase)(nil)

func NewMockReactionUsecase() *MockReactionUsecase {
	return &MockReactionUsecase{
		State: entity.ReactionStateLiked,
		Counts: entity.ReactionCounts{
			PostID:       "post-1",
			LikeCount:    3,
			DislikeCount: 1,
		},
	}
}

func (m *MockReactionUsecase) ToggleReaction(ctx context.Context, userID, postID string, kind entity.ReactionKind) (entity.ReactionState, error) {
	if err := m.failure(); err != nil {
		return entity.ReactionStateNone, err
	}
	return m.State, nil
}

func (m *MockReactionUsecase) GetReactionCounts(ctx context.Context, postID string) (*entity.ReactionCounts, error) {
	if err := m.failure(); err != nil {
		return nil, err
	}
	counts := m.Counts
	counts.PostID = postID
	return &counts, nil
}

func (m *MockReactionUsecase) GetUserReaction(ctx context.Context, userID, postID string) (*entity.Reaction, error) {
	if err := m.failure(); err != nil {
		return nil, err
	}
	if m.State == entity.ReactionStateNone {
		return nil, nil
	}
	kind := entity.ReactionKindLike
	if m.State == entity.ReactionStateDisliked {
		kind = entity.ReactionKindDislike
	}
	return &entity.Reaction{UserID: userID, PostID: postID, Kind: kind}, nil
}

func (m *MockReactionUsecase) RemovePostReactions(ctx context.Context, postID string) error {
	return m.failure()
}

func (m *MockReactionUsecase) failure() error {
	switch {
	case m.ShouldFailPostNotFound:
		return contract.ErrPostNotFound
	case m.ShouldFailUnavailable:
		return usecase.ErrReactionUnavailable
	case m.ShouldFailInternal:
		return errInternal
	}
	return nil
}

var errInternal = errors.New("mock internal error")
