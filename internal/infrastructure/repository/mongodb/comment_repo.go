package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/natybkl/Inklet/internal/domain/contract"
	"github.com/natybkl/Inklet/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrCommentCreation = errors.New("failed to create comment")
	ErrCommentUpdate   = errors.New("failed to update comment")
	ErrCommentDeletion = errors.New("failed to delete comment")
)

// CommentRepository is the MongoDB implementation of ICommentRepository.
type CommentRepository struct {
	collection *mongo.Collection
}

var _ contract.ICommentRepository = (*CommentRepository)(nil)

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{
		collection: db.Collection("comments"),
	}
}

// Create inserts a new comment document.
func (r *CommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = time.Now()
	comment.IsDeleted = false

	if _, err := r.collection.InsertOne(ctx, comment); err != nil {
		return fmt.Errorf("%w: %v", ErrCommentCreation, err)
	}
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, commentID string) (*entity.Comment, error) {
	var comment entity.Comment
	filter := bson.M{"_id": commentID, "is_deleted": false}

	err := r.collection.FindOne(ctx, filter).Decode(&comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, contract.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return &comment, nil
}

// ListByPost returns a page of comments for a post, newest first.
func (r *CommentRepository) ListByPost(ctx context.Context, postID string, page, pageSize int) ([]*entity.Comment, int64, error) {
	filter := bson.M{"post_id": postID, "is_deleted": false}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}
	defer cursor.Close(ctx)

	var comments []*entity.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, 0, fmt.Errorf("failed to decode comments: %w", err)
	}
	return comments, total, nil
}

func (r *CommentRepository) Update(ctx context.Context, comment *entity.Comment) error {
	comment.UpdatedAt = time.Now()

	filter := bson.M{"_id": comment.ID, "is_deleted": false}
	update := bson.M{"$set": bson.M{
		"content":    comment.Content,
		"updated_at": comment.UpdatedAt,
	}}

	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCommentUpdate, err)
	}
	if res.MatchedCount == 0 {
		return contract.ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, commentID string) error {
	filter := bson.M{"_id": commentID, "is_deleted": false}
	update := bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now()}}

	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCommentDeletion, err)
	}
	if res.MatchedCount == 0 {
		return contract.ErrCommentNotFound
	}
	return nil
}

// DeleteAllForPost removes every comment on a post. Part of the post
// deletion cascade.
func (r *CommentRepository) DeleteAllForPost(ctx context.Context, postID string) error {
	filter := bson.M{"post_id": postID, "is_deleted": false}
	update := bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now()}}
	if _, err := r.collection.UpdateMany(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to delete comments for post %s: %w", postID, err)
	}
	return nil
}
