package entity

import (
	"time"
)

// TokenType distinguishes the stored token kinds.
type TokenType string

const (
	TokenTypeRefresh TokenType = "refresh"
)

// Token is a stored (hashed) refresh token.
type Token struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	TokenType TokenType `bson:"token_type" json:"token_type"`
	TokenHash string    `bson:"token_hash" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	Revoked   bool      `bson:"revoked" json:"revoked"`
}
