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

// PostRepository is the MongoDB implementation of IPostRepository.
type PostRepository struct {
	collection *mongo.Collection
}

var _ contract.IPostRepository = (*PostRepository)(nil)

// NewPostRepository creates and returns a new PostRepository instance.
func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{
		collection: db.Collection("posts"),
	}
}

// buildPostFilterAndSort creates a BSON filter and sort document from
// PostFilterOptions.
func buildPostFilterAndSort(opts *contract.PostFilterOptions) (bson.M, bson.D) {
	filter := bson.M{"is_deleted": false}

	if opts.Category != "" {
		filter["category"] = bson.M{"$regex": opts.Category, "$options": "i"}
	}
	if opts.CreatedFrom != nil {
		filter["created_at"] = bson.M{"$gte": *opts.CreatedFrom}
	}
	if opts.AuthorID != nil && *opts.AuthorID != "" {
		filter["author_id"] = *opts.AuthorID
	}

	sortOrder := -1
	if opts.SortOrder == "asc" {
		sortOrder = 1
	}

	sortKey := opts.SortBy
	switch sortKey {
	case "", "created_at":
		sortKey = "created_at"
	case "view_count", "title", "rating":
	default:
		sortKey = "created_at"
	}

	return filter, bson.D{{Key: sortKey, Value: sortOrder}}
}

// CreatePost inserts a new post document.
func (r *PostRepository) CreatePost(ctx context.Context, post *entity.Post) error {
	post.CreatedAt = time.Now()
	post.UpdatedAt = time.Now()
	if _, err := r.collection.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// GetPostByID retrieves a single post by its id.
func (r *PostRepository) GetPostByID(ctx context.Context, postID string) (*entity.Post, error) {
	var post entity.Post
	filter := bson.M{"_id": postID, "is_deleted": false}

	err := r.collection.FindOne(ctx, filter).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, contract.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to retrieve post: %w", err)
	}
	return &post, nil
}

// PostExists reports whether a post exists and has not been deleted.
func (r *PostRepository) PostExists(ctx context.Context, postID string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": postID, "is_deleted": false}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check post existence: %w", err)
	}
	return count > 0, nil
}

// GetPosts returns a page of posts matching the filter options plus the total
// match count. Rating sort runs through an aggregation stage because rating
// is derived from the denormalized like/dislike counters.
func (r *PostRepository) GetPosts(ctx context.Context, opts *contract.PostFilterOptions) ([]*entity.Post, int64, error) {
	filter, sort := buildPostFilterAndSort(opts)

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	skip := int64((opts.Page - 1) * opts.PageSize)
	limit := int64(opts.PageSize)

	if opts.SortBy == "rating" {
		return r.getPostsByRating(ctx, filter, opts.SortOrder, skip, limit, total)
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(sort).SetSkip(skip).SetLimit(limit))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	defer cursor.Close(ctx)

	var posts []*entity.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, 0, fmt.Errorf("failed to decode posts: %w", err)
	}
	return posts, total, nil
}

func (r *PostRepository) getPostsByRating(ctx context.Context, filter bson.M, sortOrder string, skip, limit, total int64) ([]*entity.Post, int64, error) {
	order := -1
	if sortOrder == "asc" {
		order = 1
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$addFields", Value: bson.M{"rating": bson.M{"$subtract": bson.A{"$like_count", "$dislike_count"}}}}},
		{{Key: "$sort", Value: bson.D{{Key: "rating", Value: order}, {Key: "created_at", Value: -1}}}},
		{{Key: "$skip", Value: skip}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts by rating: %w", err)
	}
	defer cursor.Close(ctx)

	var posts []*entity.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, 0, fmt.Errorf("failed to decode posts: %w", err)
	}
	return posts, total, nil
}

// SearchPosts matches the query against title and content.
func (r *PostRepository) SearchPosts(ctx context.Context, query string, opts *contract.PostFilterOptions) ([]*entity.Post, int64, error) {
	filter, sort := buildPostFilterAndSort(opts)
	filter["$or"] = bson.A{
		bson.M{"title": bson.M{"$regex": query, "$options": "i"}},
		bson.M{"content": bson.M{"$regex": query, "$options": "i"}},
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count search results: %w", err)
	}

	skip := int64((opts.Page - 1) * opts.PageSize)
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(sort).SetSkip(skip).SetLimit(int64(opts.PageSize)))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search posts: %w", err)
	}
	defer cursor.Close(ctx)

	var posts []*entity.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, 0, fmt.Errorf("failed to decode posts: %w", err)
	}
	return posts, total, nil
}

// UpdatePost applies a partial update to a post document.
func (r *PostRepository) UpdatePost(ctx context.Context, postID string, updates map[string]interface{}) error {
	filter := bson.M{"_id": postID, "is_deleted": false}
	res, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return contract.ErrPostNotFound
	}
	return nil
}

// DeletePost soft-deletes a post document.
func (r *PostRepository) DeletePost(ctx context.Context, postID string) error {
	filter := bson.M{"_id": postID, "is_deleted": false}
	update := bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now()}}

	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if res.MatchedCount == 0 {
		return contract.ErrPostNotFound
	}
	return nil
}

// IncrementViewCount bumps the view counter by one.
func (r *PostRepository) IncrementViewCount(ctx context.Context, postID string) error {
	filter := bson.M{"_id": postID, "is_deleted": false}
	update := bson.M{"$inc": bson.M{"view_count": 1}}
	if _, err := r.collection.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}
	return nil
}
