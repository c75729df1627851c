package http

import (
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/natybkl/Inklet/internal/handler/http/middleware"
	"github.com/natybkl/Inklet/internal/usecase"
	usecasecontract "github.com/natybkl/Inklet/internal/usecase/contract"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	userHandler     *UserHandler
	postHandler     *PostHandler
	commentHandler  *CommentHandler
	reactionHandler *ReactionHandler
	userUsecase     usecasecontract.IUserUseCase
	jwtService      usecase.JWTService
}

func NewRouter(
	userUsecase usecasecontract.IUserUseCase,
	postUsecase usecasecontract.IPostUseCase,
	commentUsecase usecasecontract.ICommentUseCase,
	reactionUsecase usecasecontract.IReactionUseCase,
	jwtService usecase.JWTService,
) *Router {
	return &Router{
		userHandler:     NewUserHandler(userUsecase),
		postHandler:     NewPostHandler(postUsecase),
		commentHandler:  NewCommentHandler(commentUsecase),
		reactionHandler: NewReactionHandler(reactionUsecase),
		userUsecase:     userUsecase,
		jwtService:      jwtService,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	// rate limiter configuration, applied to the public post routes below
	lmt := tollbooth.NewLimiter(10, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
	lmt.SetIPLookups([]string{"RemoteAddr", "X-Forwarded-For", "X-Real-IP"})
	lmt.SetMessage("Too many requests, please try again later.")

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	// API v1 routes
	v1 := router.Group("/api/v1")

	// Public routes (no authentication required)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", r.userHandler.Register)
		auth.POST("/login", r.userHandler.Login)
		auth.POST("/refresh-token", r.userHandler.RefreshToken)
	}

	// Public user routes
	users := v1.Group("/users")
	{
		users.GET("/profile/:id", r.userHandler.GetUser)
	}

	// Public post routes, throttled per client IP
	posts := v1.Group("/posts")
	posts.Use(middleware.RateLimiter(lmt))
	{
		posts.GET("", r.postHandler.GetPosts)
		posts.GET("/search", r.postHandler.SearchPosts)
		posts.GET("/:postID", r.postHandler.GetPostDetail)
		posts.GET("/:postID/comments", r.commentHandler.GetPostComments)
		posts.GET("/:postID/reactions/count", r.reactionHandler.GetReactionCounts)
	}

	// Protected routes (authentication required)
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleWare(r.jwtService, r.userUsecase))
	{
		// Current user routes
		protected.GET("/me", r.userHandler.GetCurrentUser)

		// Post routes
		protected.POST("/posts", r.postHandler.CreatePost)
		protected.PUT("/posts/:postID", r.postHandler.UpdatePost)
		protected.DELETE("/posts/:postID", r.postHandler.DeletePost)

		// Reaction routes
		protected.POST("/posts/:postID/reactions", r.reactionHandler.ToggleReaction)
		protected.GET("/posts/:postID/reactions/me", r.reactionHandler.GetMyReaction)

		// Comment routes
		protected.POST("/posts/:postID/comments", r.commentHandler.CreateComment)
		protected.PUT("/comments/:commentID", r.commentHandler.UpdateComment)
		protected.DELETE("/comments/:commentID", r.commentHandler.DeleteComment)
	}

	// Logout only needs the refresh token from the request body.
	v1.POST("/logout", r.userHandler.Logout)
}
