package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	handlerHttp "github.com/natybkl/Inklet/internal/handler/http"
	redisclient "github.com/natybkl/Inklet/internal/infrastructure/cache"
	"github.com/natybkl/Inklet/internal/infrastructure/config"
	database "github.com/natybkl/Inklet/internal/infrastructure/database"
	"github.com/natybkl/Inklet/internal/infrastructure/jwt"
	"github.com/natybkl/Inklet/internal/infrastructure/logger"
	passwordservice "github.com/natybkl/Inklet/internal/infrastructure/password_service"
	"github.com/natybkl/Inklet/internal/infrastructure/repository/mongodb"
	"github.com/natybkl/Inklet/internal/infrastructure/store"
	"github.com/natybkl/Inklet/internal/infrastructure/uuidgen"
	"github.com/natybkl/Inklet/internal/infrastructure/validator"
	"github.com/natybkl/Inklet/internal/usecase"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI environment variable not set")
	}
	dbName := os.Getenv("MONGODB_DB_NAME")
	if dbName == "" {
		log.Fatal("MONGODB_DB_NAME environment variable not set")
	}

	// Establish MongoDB connection
	mongoClient, err := database.NewMongoDBClient(mongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect()

	// Initialize Gin router
	router := gin.Default()

	// Dependency Injection: Repositories
	db := mongoClient.Client.Database(dbName)
	userRepo := mongodb.NewUserRepository(db.Collection("users"))
	tokenRepo := mongodb.NewTokenRepository(db.Collection("tokens"))
	postRepo := mongodb.NewPostRepository(db)
	commentRepo := mongodb.NewCommentRepository(db)
	reactionRepo := mongodb.NewReactionRepository(db)

	// The unique (user_id, post_id) index is what makes reaction toggles
	// safe under concurrency. Refuse to start without it.
	if err := reactionRepo.EnsureIndexes(context.Background()); err != nil {
		log.Fatalf("Failed to ensure reaction indexes: %v", err)
	}

	// Dependency Injection: Services
	appConfig := config.NewConfig()
	hasher := passwordservice.NewHasher()
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}
	jwtManager := jwt.NewJWTManager(jwtSecret, appConfig.GetAccessTokenExpiry(), appConfig.GetRefreshTokenExpiry())
	jwtService := jwt.NewJWTService(jwtManager)
	appValidator := validator.NewValidator()
	uuidGenerator := uuidgen.NewGenerator()

	// Dependency Injection: Usecases
	userUsecase := usecase.NewUserUsecase(userRepo, tokenRepo, hasher, jwtService, uuidGenerator, appValidator, appConfig, logger.NewStdLogger("users"))
	reactionUsecase := usecase.NewReactionUsecase(reactionRepo, postRepo, logger.NewStdLogger("reactions"))
	postUsecase := usecase.NewPostUsecase(postRepo, commentRepo, reactionUsecase, uuidGenerator, logger.NewStdLogger("posts"))
	commentUsecase := usecase.NewCommentUsecase(commentRepo, postRepo, uuidGenerator, logger.NewStdLogger("comments"))

	// Optional Dependency Injection: Redis cache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		if rdb := redisclient.NewRedisFromURL(context.Background(), redisURL); rdb != nil {
			defer redisclient.Close(rdb)
			reactionUsecase.SetReactionCache(store.NewReactionCacheStore(rdb, appConfig.GetReactionCountsTTL()))
			postUsecase.SetPostCache(store.NewPostCacheStore(rdb, appConfig.GetPostCacheTTL()))
		}
	}

	// Setup API routes
	appRouter := handlerHttp.NewRouter(userUsecase, postUsecase, commentUsecase, reactionUsecase, jwtService)
	appRouter.SetupRoutes(router)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
