package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/natybkl/Inklet/internal/domain/contract"
	"github.com/natybkl/Inklet/internal/domain/entity"
	usecasecontract "github.com/natybkl/Inklet/internal/usecase/contract"
)

var (
	// ErrInvalidCredentials is returned on bad email/password pairs.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidRefreshToken is returned for unknown, revoked or expired
	// refresh tokens.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// UserUsecase handles registration, authentication and token lifecycle.
type UserUsecase struct {
	userRepo   contract.IUserRepository
	tokenRepo  contract.ITokenRepository
	hasher     contract.IHasher
	jwtService JWTService
	uuidGen    contract.IUUIDGenerator
	validator  usecasecontract.IValidator
	config     usecasecontract.IConfigProvider
	logger     usecasecontract.IAppLogger
}

var _ usecasecontract.IUserUseCase = (*UserUsecase)(nil)

// NewUserUsecase creates and returns a new UserUsecase instance.
func NewUserUsecase(
	userRepo contract.IUserRepository,
	tokenRepo contract.ITokenRepository,
	hasher contract.IHasher,
	jwtService JWTService,
	uuidGen contract.IUUIDGenerator,
	validator usecasecontract.IValidator,
	config usecasecontract.IConfigProvider,
	logger usecasecontract.IAppLogger,
) *UserUsecase {
	return &UserUsecase{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		hasher:     hasher,
		jwtService: jwtService,
		uuidGen:    uuidGen,
		validator:  validator,
		config:     config,
		logger:     logger,
	}
}

// Register validates and creates a new user account.
func (u *UserUsecase) Register(ctx context.Context, username, email, password string) (*entity.User, error) {
	if err := u.validator.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := u.validator.ValidatePasswordStrength(password); err != nil {
		return nil, err
	}

	if _, err := u.userRepo.GetUserByEmail(ctx, email); err == nil {
		return nil, contract.ErrUserAlreadyExists
	} else if !errors.Is(err, contract.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if _, err := u.userRepo.GetUserByUsername(ctx, username); err == nil {
		return nil, contract.ErrUserAlreadyExists
	} else if !errors.Is(err, contract.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing username: %w", err)
	}

	hashed, err := u.hasher.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		ID:           u.uuidGen.NewUUID(),
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Role:         entity.DefaultRole(),
		IsActive:     true,
	}
	if err := u.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues an access/refresh token pair.
func (u *UserUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, string, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, contract.ErrUserNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", fmt.Errorf("failed to look up user: %w", err)
	}
	if err := u.hasher.ComparePasswordHash(password, user.PasswordHash); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := u.issueTokenPair(ctx, user)
	if err != nil {
		return nil, "", "", err
	}
	return user, accessToken, refreshToken, nil
}

// Authenticate resolves an access token to its user.
func (u *UserUsecase) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	claims, err := u.jwtService.ParseAccessToken(accessToken)
	if err != nil {
		return nil, err
	}
	user, err := u.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve token user: %w", err)
	}
	return user, nil
}

// RefreshToken rotates a refresh token: the presented token is verified
// against its stored hash, revoked, and a fresh pair is issued. A reused
// (already revoked) token is rejected, and since reuse means the token
// leaked, every outstanding refresh token of that user is revoked too.
func (u *UserUsecase) RefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := u.jwtService.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", "", ErrInvalidRefreshToken
	}

	stored, err := u.tokenRepo.GetTokenByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, contract.ErrTokenNotFound) {
			return "", "", ErrInvalidRefreshToken
		}
		return "", "", fmt.Errorf("failed to look up refresh token: %w", err)
	}
	if stored.TokenType != entity.TokenTypeRefresh {
		return "", "", ErrInvalidRefreshToken
	}
	if stored.Revoked {
		u.logger.Warningf("refresh token %s reused after rotation, revoking all tokens for user %s", stored.ID, stored.UserID)
		if err := u.tokenRepo.RevokeAllTokensForUser(ctx, stored.UserID, entity.TokenTypeRefresh); err != nil {
			u.logger.Errorf("failed to revoke token family for user %s: %v", stored.UserID, err)
		}
		return "", "", ErrInvalidRefreshToken
	}
	if time.Now().After(stored.ExpiresAt) {
		return "", "", ErrInvalidRefreshToken
	}
	if !u.hasher.CheckHash(refreshToken, stored.TokenHash) {
		return "", "", ErrInvalidRefreshToken
	}

	user, err := u.userRepo.GetUserByID(ctx, stored.UserID)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve token user: %w", err)
	}

	if err := u.tokenRepo.RevokeToken(ctx, stored.ID); err != nil {
		return "", "", fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return u.issueTokenPair(ctx, user)
}

// Logout revokes the presented refresh token.
func (u *UserUsecase) Logout(ctx context.Context, refreshToken string) error {
	claims, err := u.jwtService.ParseRefreshToken(refreshToken)
	if err != nil {
		return ErrInvalidRefreshToken
	}
	if err := u.tokenRepo.RevokeToken(ctx, claims.ID); err != nil {
		if errors.Is(err, contract.ErrTokenNotFound) {
			return ErrInvalidRefreshToken
		}
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// GetUserByID returns a user's profile.
func (u *UserUsecase) GetUserByID(ctx context.Context, userID string) (*entity.User, error) {
	return u.userRepo.GetUserByID(ctx, userID)
}

// issueTokenPair mints an access token and a persisted, hashed refresh
// token for the user.
func (u *UserUsecase) issueTokenPair(ctx context.Context, user *entity.User) (string, string, error) {
	accessToken, err := u.jwtService.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}

	tokenID := u.uuidGen.NewUUID()
	refreshToken, err := u.jwtService.GenerateRefreshToken(tokenID, user.ID)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}

	now := time.Now()
	token := &entity.Token{
		ID:        tokenID,
		UserID:    user.ID,
		TokenType: entity.TokenTypeRefresh,
		TokenHash: u.hasher.HashString(refreshToken),
		CreatedAt: now,
		ExpiresAt: now.Add(u.config.GetRefreshTokenExpiry()),
	}
	if err := u.tokenRepo.CreateToken(ctx, token); err != nil {
		return "", "", fmt.Errorf("failed to persist refresh token: %w", err)
	}
	return accessToken, refreshToken, nil
}
