package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/natybkl/Inklet/internal/domain/contract"
	"github.com/natybkl/Inklet/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReactionRepository is the MongoDB implementation of IReactionRepository.
//
// The reactions collection carries a unique compound index on
// (user_id, post_id), so the pair invariant is enforced by the storage
// engine, not by application-level locking.
type ReactionRepository struct {
	collection *mongo.Collection
}

var _ contract.IReactionRepository = (*ReactionRepository)(nil)

// NewReactionRepository creates and returns a new ReactionRepository instance.
func NewReactionRepository(db *mongo.Database) *ReactionRepository {
	return &ReactionRepository{
		collection: db.Collection("post_reactions"),
	}
}

// EnsureIndexes creates the unique (user_id, post_id) index. Called once at
// startup.
func (r *ReactionRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "post_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create reaction index: %w", err)
	}
	return nil
}

// Toggle applies one step of the toggle state machine. Every branch is a
// single conditional statement against the current document state, so two
// concurrent toggles on the same pair serialize on the storage engine: the
// loser observes a zero-effect write (or a duplicate key) and gets
// contract.ErrReactionConflict.
func (r *ReactionRepository) Toggle(ctx context.Context, userID, postID string, kind entity.ReactionKind) (*entity.ReactionKind, entity.ReactionState, error) {
	existing, err := r.GetByUserAndPost(ctx, userID, postID)
	if err != nil && !errors.Is(err, contract.ErrReactionNotFound) {
		return nil, entity.ReactionStateNone, err
	}

	if existing == nil {
		// No reaction yet: insert. The unique index turns a concurrent
		// double-create into a duplicate key error on the loser.
		now := time.Now()
		reaction := &entity.Reaction{
			ID:        uuid.New().String(),
			UserID:    userID,
			PostID:    postID,
			Kind:      kind,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := r.collection.InsertOne(ctx, reaction); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, entity.ReactionStateNone, contract.ErrReactionConflict
			}
			return nil, entity.ReactionStateNone, fmt.Errorf("failed to create reaction: %w", err)
		}
		return nil, stateForKind(kind), nil
	}

	previous := existing.Kind
	if existing.Kind == kind {
		// Same kind submitted again: un-react. The kind guard makes the
		// delete a compare-and-swap; zero deletions means someone else
		// changed the document first.
		filter := bson.M{"_id": existing.ID, "kind": kind}
		res, err := r.collection.DeleteOne(ctx, filter)
		if err != nil {
			return &previous, entity.ReactionStateNone, fmt.Errorf("failed to remove reaction: %w", err)
		}
		if res.DeletedCount == 0 {
			return &previous, entity.ReactionStateNone, contract.ErrReactionConflict
		}
		return &previous, entity.ReactionStateNone, nil
	}

	// Opposite kind: flip in place, guarded by the expected current kind.
	filter := bson.M{"_id": existing.ID, "kind": kind.Opposite()}
	update := bson.M{"$set": bson.M{"kind": kind, "updated_at": time.Now()}}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return &previous, entity.ReactionStateNone, fmt.Errorf("failed to flip reaction: %w", err)
	}
	if res.ModifiedCount == 0 {
		return &previous, entity.ReactionStateNone, contract.ErrReactionConflict
	}
	return &previous, stateForKind(kind), nil
}

// GetByUserAndPost retrieves the reaction a user has on a post, if any.
func (r *ReactionRepository) GetByUserAndPost(ctx context.Context, userID, postID string) (*entity.Reaction, error) {
	var reaction entity.Reaction
	filter := bson.M{"user_id": userID, "post_id": postID}

	err := r.collection.FindOne(ctx, filter).Decode(&reaction)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, contract.ErrReactionNotFound
		}
		return nil, fmt.Errorf("failed to retrieve reaction: %w", err)
	}
	return &reaction, nil
}

// CountsFor aggregates like and dislike counts for one post. Used only on
// cache miss; hot reads are served by the reaction cache.
func (r *ReactionRepository) CountsFor(ctx context.Context, postID string) (*entity.ReactionCounts, error) {
	likes, err := r.collection.CountDocuments(ctx, bson.M{"post_id": postID, "kind": entity.ReactionKindLike})
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}
	dislikes, err := r.collection.CountDocuments(ctx, bson.M{"post_id": postID, "kind": entity.ReactionKindDislike})
	if err != nil {
		return nil, fmt.Errorf("failed to count dislikes: %w", err)
	}
	return &entity.ReactionCounts{
		PostID:       postID,
		LikeCount:    likes,
		DislikeCount: dislikes,
	}, nil
}

// DeleteAllForPost removes every reaction for a post. Invoked by the post
// deletion path before the post document itself is removed.
func (r *ReactionRepository) DeleteAllForPost(ctx context.Context, postID string) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"post_id": postID}); err != nil {
		return fmt.Errorf("failed to delete reactions for post %s: %w", postID, err)
	}
	return nil
}

func stateForKind(kind entity.ReactionKind) entity.ReactionState {
	if kind == entity.ReactionKindLike {
		return entity.ReactionStateLiked
	}
	return entity.ReactionStateDisliked
}
