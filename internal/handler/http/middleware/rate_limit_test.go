package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/gin-gonic/gin"
	"github.com/natybkl/Inklet/internal/handler/http/middleware"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_ThrottlesPerIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	lmt := tollbooth.NewLimiter(1, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
	lmt.SetIPLookups([]string{"RemoteAddr"})

	router := gin.New()
	router.GET("/posts", middleware.RateLimiter(lmt), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func(remoteAddr string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/posts", nil)
		req.RemoteAddr = remoteAddr
		router.ServeHTTP(w, req)
		return w.Code
	}

	// The second request from the same client within the window is rejected.
	assert.Equal(t, http.StatusOK, do("10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:1234"))

	// A different client is unaffected.
	assert.Equal(t, http.StatusOK, do("10.0.0.2:1234"))
}
