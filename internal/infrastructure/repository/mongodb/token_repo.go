package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/natybkl/Inklet/internal/domain/contract"
	"github.com/natybkl/Inklet/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// TokenRepository is the MongoDB implementation of ITokenRepository.
type TokenRepository struct {
	collection *mongo.Collection
}

var _ contract.ITokenRepository = (*TokenRepository)(nil)

func NewTokenRepository(collection *mongo.Collection) *TokenRepository {
	return &TokenRepository{collection: collection}
}

func (r *TokenRepository) CreateToken(ctx context.Context, token *entity.Token) error {
	if _, err := r.collection.InsertOne(ctx, token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

func (r *TokenRepository) GetTokenByID(ctx context.Context, tokenID string) (*entity.Token, error) {
	var token entity.Token
	err := r.collection.FindOne(ctx, bson.M{"_id": tokenID}).Decode(&token)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, contract.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to retrieve token: %w", err)
	}
	return &token, nil
}

// RevokeToken marks a token as revoked by its ID.
func (r *TokenRepository) RevokeToken(ctx context.Context, tokenID string) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": tokenID},
		bson.M{"$set": bson.M{"revoked": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	if res.MatchedCount == 0 {
		return contract.ErrTokenNotFound
	}
	return nil
}

func (r *TokenRepository) RevokeAllTokensForUser(ctx context.Context, userID string, tokenType entity.TokenType) error {
	filter := bson.M{"user_id": userID, "token_type": string(tokenType), "revoked": false}
	update := bson.M{"$set": bson.M{"revoked": true}}
	if _, err := r.collection.UpdateMany(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to revoke tokens for user %s: %w", userID, err)
	}
	return nil
}
