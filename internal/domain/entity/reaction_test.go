package entity_test

import (
	"testing"

	"github.com/natybkl/Inklet/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func TestReactionKind_IsValid(t *testing.T) {
	assert.True(t, entity.ReactionKindLike.IsValid())
	assert.True(t, entity.ReactionKindDislike.IsValid())
	assert.False(t, entity.ReactionKind("love").IsValid())
	assert.False(t, entity.ReactionKind("").IsValid())
}

func TestReactionKind_Opposite(t *testing.T) {
	assert.Equal(t, entity.ReactionKindDislike, entity.ReactionKindLike.Opposite())
	assert.Equal(t, entity.ReactionKindLike, entity.ReactionKindDislike.Opposite())
}
