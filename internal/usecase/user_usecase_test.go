package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/natybkl/Inklet/internal/domain/contract"
	"github.com/natybkl/Inklet/internal/domain/entity"
	"github.com/natybkl/Inklet/internal/infrastructure/jwt"
	passwordservice "github.com/natybkl/Inklet/internal/infrastructure/password_service"
	"github.com/natybkl/Inklet/internal/infrastructure/validator"
	"github.com/natybkl/Inklet/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users map[string]*entity.User // by ID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, userID string) (*entity.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, contract.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, contract.ErrUserNotFound
}

func (f *fakeUserRepo) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, contract.ErrUserNotFound
}

type fakeTokenRepo struct {
	tokens map[string]*entity.Token
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*entity.Token)}
}

func (f *fakeTokenRepo) CreateToken(ctx context.Context, token *entity.Token) error {
	f.tokens[token.ID] = token
	return nil
}

func (f *fakeTokenRepo) GetTokenByID(ctx context.Context, tokenID string) (*entity.Token, error) {
	token, ok := f.tokens[tokenID]
	if !ok {
		return nil, contract.ErrTokenNotFound
	}
	return token, nil
}

func (f *fakeTokenRepo) RevokeToken(ctx context.Context, tokenID string) error {
	token, ok := f.tokens[tokenID]
	if !ok {
		return contract.ErrTokenNotFound
	}
	token.Revoked = true
	return nil
}

func (f *fakeTokenRepo) RevokeAllTokensForUser(ctx context.Context, userID string, tokenType entity.TokenType) error {
	for _, token := range f.tokens {
		if token.UserID == userID && token.TokenType == tokenType {
			token.Revoked = true
		}
	}
	return nil
}

type fakeConfig struct{}

func (fakeConfig) GetAppBaseURL() string               { return "http://localhost:8080" }
func (fakeConfig) GetAccessTokenExpiry() time.Duration { return 15 * time.Minute }
func (fakeConfig) GetRefreshTokenExpiry() time.Duration {
	return time.Hour
}
func (fakeConfig) GetReactionCountsTTL() time.Duration { return 2 * time.Minute }
func (fakeConfig) GetPostCacheTTL() time.Duration      { return 10 * time.Minute }

func newUserUsecase() (*usecase.UserUsecase, *fakeUserRepo, *fakeTokenRepo) {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeTokenRepo()
	hasher := passwordservice.NewHasher()
	jwtManager := jwt.NewJWTManager("test-secret", 15*time.Minute, time.Hour)
	jwtService := jwt.NewJWTService(jwtManager)
	uc := usecase.NewUserUsecase(userRepo, tokenRepo, hasher, jwtService, &fakeUUIDGen{}, validator.NewValidator(), fakeConfig{}, testLogger{})
	return uc, userRepo, tokenRepo
}

func TestRegisterAndLogin(t *testing.T) {
	uc, _, _ := newUserUsecase()
	ctx := context.Background()

	user, err := uc.Register(ctx, "alice", "alice@example.com", "Password123")
	require.NoError(t, err)
	assert.Equal(t, entity.UserRoleUser, user.Role)

	loggedIn, accessToken, refreshToken, err := uc.Login(ctx, "alice@example.com", "Password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	// The access token resolves back to the user.
	resolved, err := uc.Authenticate(ctx, accessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	uc, _, _ := newUserUsecase()
	ctx := context.Background()

	_, err := uc.Register(ctx, "alice", "alice@example.com", "Password123")
	require.NoError(t, err)

	_, err = uc.Register(ctx, "alice2", "alice@example.com", "Password123")
	assert.ErrorIs(t, err, contract.ErrUserAlreadyExists)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, _, _ := newUserUsecase()
	ctx := context.Background()

	_, err := uc.Register(ctx, "alice", "alice@example.com", "Password123")
	require.NoError(t, err)

	_, _, _, err = uc.Login(ctx, "alice@example.com", "WrongPassword1")
	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)
}

func TestRefreshToken_RotatesAndRejectsReuse(t *testing.T) {
	uc, _, _ := newUserUsecase()
	ctx := context.Background()

	_, err := uc.Register(ctx, "alice", "alice@example.com", "Password123")
	require.NoError(t, err)
	_, _, refreshToken, err := uc.Login(ctx, "alice@example.com", "Password123")
	require.NoError(t, err)

	accessToken2, refreshToken2, err := uc.RefreshToken(ctx, refreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken2)
	assert.NotEqual(t, refreshToken, refreshToken2)

	// The replacement works while the rotation chain is intact.
	_, refreshToken3, err := uc.RefreshToken(ctx, refreshToken2)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshToken3)

	// The rotated-out token no longer works.
	_, _, err = uc.RefreshToken(ctx, refreshToken)
	assert.ErrorIs(t, err, usecase.ErrInvalidRefreshToken)
}

func TestRefreshToken_ReuseRevokesFamily(t *testing.T) {
	uc, _, _ := newUserUsecase()
	ctx := context.Background()

	_, err := uc.Register(ctx, "alice", "alice@example.com", "Password123")
	require.NoError(t, err)
	_, _, refreshToken, err := uc.Login(ctx, "alice@example.com", "Password123")
	require.NoError(t, err)

	_, refreshToken2, err := uc.RefreshToken(ctx, refreshToken)
	require.NoError(t, err)

	// Presenting the rotated-out token signals a leak; it is rejected and
	// every other refresh token of the user is revoked with it.
	_, _, err = uc.RefreshToken(ctx, refreshToken)
	require.ErrorIs(t, err, usecase.ErrInvalidRefreshToken)

	_, _, err = uc.RefreshToken(ctx, refreshToken2)
	assert.ErrorIs(t, err, usecase.ErrInvalidRefreshToken)
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	uc, _, _ := newUserUsecase()
	ctx := context.Background()

	_, err := uc.Register(ctx, "alice", "alice@example.com", "Password123")
	require.NoError(t, err)
	_, _, refreshToken, err := uc.Login(ctx, "alice@example.com", "Password123")
	require.NoError(t, err)

	require.NoError(t, uc.Logout(ctx, refreshToken))

	_, _, err = uc.RefreshToken(ctx, refreshToken)
	assert.ErrorIs(t, err, usecase.ErrInvalidRefreshToken)
}
