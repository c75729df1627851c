package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/natybkl/Inklet/internal/domain/contract"
	"github.com/natybkl/Inklet/internal/handler/http/dto"
	"github.com/natybkl/Inklet/internal/usecase"
	usecasecontract "github.com/natybkl/Inklet/internal/usecase/contract"
)

// UserHandler exposes registration, login and token endpoints.
type UserHandler struct {
	userUsecase usecasecontract.IUserUseCase
}

func NewUserHandler(userUsecase usecasecontract.IUserUseCase) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
	}
}

// Register handles POST /auth/register.
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	user, err := h.userUsecase.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, contract.ErrUserAlreadyExists) {
			ErrorHandler(c, http.StatusConflict, "A user with that email or username already exists")
			return
		}
		ErrorHandler(c, http.StatusBadRequest, err.Error())
		return
	}
	SuccessHandler(c, http.StatusCreated, dto.ToUserResponse(*user))
}

// Login handles POST /auth/login.
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	user, accessToken, refreshToken, err := h.userUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			ErrorHandler(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		ErrorHandler(c, http.StatusInternalServerError, "Failed to log in")
		return
	}

	SuccessHandler(c, http.StatusOK, dto.LoginResponse{
		User:         dto.ToUserResponse(*user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// RefreshToken handles POST /auth/refresh-token. The presented refresh
// token is rotated: it stops working after this call.
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	accessToken, refreshToken, err := h.userUsecase.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidRefreshToken) {
			ErrorHandler(c, http.StatusUnauthorized, "Invalid refresh token")
			return
		}
		ErrorHandler(c, http.StatusInternalServerError, "Failed to refresh token")
		return
	}

	SuccessHandler(c, http.StatusOK, dto.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// Logout handles POST /logout by revoking the refresh token.
func (h *UserHandler) Logout(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	if err := h.userUsecase.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		if errors.Is(err, usecase.ErrInvalidRefreshToken) {
			ErrorHandler(c, http.StatusUnauthorized, "Invalid refresh token")
			return
		}
		ErrorHandler(c, http.StatusInternalServerError, "Failed to log out")
		return
	}
	MessageHandler(c, http.StatusOK, "Logged out successfully")
}

// GetUser handles GET /users/profile/:id.
func (h *UserHandler) GetUser(c *gin.Context) {
	userID := c.Param("id")

	user, err := h.userUsecase.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, contract.ErrUserNotFound) {
			ErrorHandler(c, http.StatusNotFound, "User not found")
			return
		}
		ErrorHandler(c, http.StatusInternalServerError, "Failed to get user")
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(*user))
}

// GetCurrentUser handles GET /me.
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.userUsecase.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		ErrorHandler(c, http.StatusInternalServerError, "Failed to get user")
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(*user))
}
