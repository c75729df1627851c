package contract

import (
	"context"

	"github.com/natybkl/Inklet/internal/domain/entity"
)

// ITokenRepository defines the interface for refresh token persistence.
type ITokenRepository interface {
	CreateToken(ctx context.Context, token *entity.Token) error
	GetTokenByID(ctx context.Context, tokenID string) (*entity.Token, error)
	RevokeToken(ctx context.Context, tokenID string) error
	RevokeAllTokensForUser(ctx context.Context, userID string, tokenType entity.TokenType) error
}
