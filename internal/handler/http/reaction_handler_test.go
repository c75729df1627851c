package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	handler "github.com/natybkl/Inklet/internal/handler/http"
	dto "github.com/natybkl/Inklet/internal/handler/http/dto"
	mocks "github.com/natybkl/Inklet/internal/handler/http/mocks"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupReactionRouter(h *handler.ReactionHandler, authenticated bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	if authenticated {
		r.Use(func(c *gin.Context) {
			c.Set("userID", "user-1")
			c.Next()
		})
	}
	r.POST("/posts/:postID/reactions", h.ToggleReaction)
	r.GET("/posts/:postID/reactions/count", h.GetReactionCounts)
	r.GET("/posts/:postID/reactions/me", h.GetMyReaction)
	return r
}

func postReaction(r *gin.Engine, kind string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(dto.ReactionRequest{Kind: kind})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-1/reactions", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestToggleReaction(t *testing.T) {
	mockUsecase := mocks.NewMockReactionUsecase()
	h := handler.NewReactionHandler(mockUsecase)
	r := setupReactionRouter(h, true)

	w := postReaction(r, "like")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"liked"`)
}

func TestToggleReaction_InvalidKind(t *testing.T) {
	mockUsecase := mocks.NewMockReactionUsecase()
	h := handler.NewReactionHandler(mockUsecase)
	r := setupReactionRouter(h, true)

	w := postReaction(r, "love")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToggleReaction_Unauthenticated(t *testing.T) {
	mockUsecase := mocks.NewMockReactionUsecase()
	h := handler.NewReactionHandler(mockUsecase)
	r := setupReactionRouter(h, false)

	w := postReaction(r, "like")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestToggleReaction_PostNotFound(t *testing.T) {
	mockUsecase := mocks.NewMockReactionUsecase()
	mockUsecase.ShouldFailPostNotFound = true
	h := handler.NewReactionHandler(mockUsecase)
	r := setupReactionRouter(h, true)

	w := postReaction(r, "like")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Post not found")
}

func TestToggleReaction_Unavailable(t *testing.T) {
	mockUsecase := mocks.NewMockReactionUsecase()
	mockUsecase.ShouldFailUnavailable = true
	h := handler.NewReactionHandler(mockUsecase)
	r := setupReactionRouter(h, true)

	w := postReaction(r, "dislike")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetReactionCounts(t *testing.T) {
	mockUsecase := mocks.NewMockReactionUsecase()
	h := handler.NewReactionHandler(mockUsecase)
	r := setupReactionRouter(h, false)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/post-1/reactions/count", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"like_count":3`)
	assert.Contains(t, w.Body.String(), `"dislike_count":1`)
}

func TestGetReactionCounts_PostNotFound(t *testing.T) {
	mockUsecase := mocks.NewMockReactionUsecase()
	mockUsecase.ShouldFailPostNotFound = true
	h := handler.NewReactionHandler(mockUsecase)
	r := setupReactionRouter(h, false)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/missing/reactions/count", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetMyReaction(t *testing.T) {
	mockUsecase := mocks.NewMockReactionUsecase()
	h := handler.NewReactionHandler(mockUsecase)
	r := setupReactionRouter(h, true)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/post-1/reactions/me", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"liked"`)
}
