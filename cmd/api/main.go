package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linkup-social/linkup/internal/config"
	"github.com/linkup-social/linkup/internal/handlers"
	"github.com/linkup-social/linkup/internal/middleware"
	"github.com/linkup-social/linkup/internal/repository"
	"github.com/linkup-social/linkup/internal/services"
	"github.com/linkup-social/linkup/pkg/cache"
	"github.com/linkup-social/linkup/pkg/logger"
	"github.com/linkup-social/linkup/pkg/queue"
	"github.com/linkup-social/linkup/pkg/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logger.NewLoggerWithLevel(cfg.Server.LogLevel)
	logger.Info("Starting LinkUp API server...")

	db, err := repository.NewDatabase(&cfg.Database)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		logger.WithError(err).Fatal("Failed to migrate database")
	}

	redisClient := cache.NewRedisClient(
		cfg.Redis.Addr(),
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
		cfg.Redis.MinIdleConns,
	)
	defer redisClient.Close()

	ctx := context.Background()
	if err := redisClient.Ping(ctx); err != nil {
		logger.WithError(err).Fatal("Failed to connect to Redis")
	}

	engagementProducer := queue.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topics.EngagementEvents)
	defer engagementProducer.Close()

	s3Client, err := storage.NewS3Client(ctx, cfg.Storage.Region, cfg.Storage.Bucket, cfg.Storage.PublicBaseURL)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize object storage")
	}

	userRepo := repository.NewUserRepository(db.DB)
	followRepo := repository.NewFollowRepository(db.DB)
	educationRepo := repository.NewEducationRepository(db.DB)
	workRepo := repository.NewWorkRepository(db.DB)
	userMediaRepo := repository.NewUserMediaRepository(db.DB)
	postRepo := repository.NewPostRepository(db.DB)
	reelRepo := repository.NewReelRepository(db.DB)
	engagementRepo := repository.NewReelEngagementRepository(db.DB)
	commentRepo := repository.NewReelCommentRepository(db.DB)
	notificationRepo := repository.NewNotificationRepository(db.DB)

	userService := services.NewUserService(userRepo, logger)
	followService := services.NewFollowService(userRepo, followRepo, engagementProducer, logger)
	uploadService := services.NewUploadService(s3Client, &cfg.Storage, &cfg.Media, logger)
	profileService := services.NewProfileService(userRepo, educationRepo, workRepo, followRepo, postRepo, userMediaRepo, s3Client, &cfg.Storage, &cfg.Media, logger)
	educationService := services.NewEducationService(educationRepo, logger)
	workService := services.NewWorkService(workRepo, logger)
	postService := services.NewPostService(postRepo, userRepo, engagementProducer, logger)
	reelService := services.NewReelService(reelRepo, engagementRepo, commentRepo, logger)
	reelEngagementService := services.NewReelEngagementService(reelRepo, engagementRepo, engagementProducer, logger)
	reelCommentService := services.NewReelCommentService(reelRepo, commentRepo, engagementProducer, logger)
	notificationService := services.NewNotificationService(notificationRepo, redisClient, logger)

	userHandler := handlers.NewUserHandler(userService, &cfg.JWT, logger)
	profileHandler := handlers.NewProfileHandler(profileService, logger)
	educationHandler := handlers.NewEducationHandler(educationService, logger)
	workHandler := handlers.NewWorkHandler(workService, logger)
	postHandler := handlers.NewPostHandler(postService, uploadService, logger)
	reelHandler := handlers.NewReelHandler(reelService, reelEngagementService, reelCommentService, uploadService, logger)
	followHandler := handlers.NewFollowHandler(followService, logger)
	notificationHandler := handlers.NewNotificationHandler(notificationService, logger)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})

	api := router.Group("/api/v1")
	{
		users := api.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.GET("/:id/followers", followHandler.Followers)
			users.GET("/:id/following", followHandler.Following)
			users.GET("/:id/posts", postHandler.ListByUser)
		}

		// Public reads
		api.GET("/profiles/:id", profileHandler.GetProfile)
		api.GET("/posts", postHandler.List)
		api.GET("/posts/:id", postHandler.Get)

		protected := api.Group("")
		protected.Use(middleware.NewJWTAuth(&middleware.JWTConfig{Secret: cfg.JWT.Secret}))
		{
			protected.GET("/me", userHandler.Me)

			// Profiles
			protected.PUT("/profiles/:id", profileHandler.UpdateProfile)
			protected.POST("/profiles/upload", profileHandler.ReplacePhoto)
			protected.GET("/profiles/:id/photos", profileHandler.GetPhotoArchive)

			// Profile history sections
			protected.POST("/education", educationHandler.Create)
			protected.PUT("/education/:id", educationHandler.Update)
			protected.DELETE("/education/:id", educationHandler.Delete)
			protected.POST("/work", workHandler.Create)
			protected.PUT("/work/:id", workHandler.Update)
			protected.DELETE("/work/:id", workHandler.Delete)

			// Follow graph
			protected.POST("/follow", followHandler.Follow)
			protected.DELETE("/follow/:id", followHandler.Unfollow)
			protected.GET("/follow/status", followHandler.IsFollowing)

			// Posts
			protected.POST("/posts", postHandler.Create)
			protected.POST("/posts/upload", postHandler.UploadMedia)
			protected.DELETE("/posts/:id", postHandler.Delete)

			// Reels
			protected.POST("/reels", reelHandler.Create)
			protected.POST("/reels/upload", reelHandler.UploadVideo)
			protected.GET("/reels", reelHandler.List)
			protected.GET("/reels/saved", reelHandler.ListSaved)
			protected.GET("/reels/:id", reelHandler.Get)
			protected.PUT("/reels/:id", reelHandler.Update)
			protected.DELETE("/reels/:id", reelHandler.Delete)
			protected.GET("/users/:id/reels", reelHandler.ListByUser)
			protected.POST("/reels/:id/like", reelHandler.Like)
			protected.POST("/reels/:id/view", reelHandler.TrackView)
			protected.POST("/reels/:id/share", reelHandler.Share)
			protected.POST("/reels/:id/save", reelHandler.ToggleSave)
			protected.POST("/reels/:id/comments", reelHandler.CreateComment)
			protected.GET("/reels/:id/comments", reelHandler.ListComments)
			protected.PUT("/reels/:id/comments/:commentId", reelHandler.UpdateComment)
			protected.DELETE("/reels/:id/comments/:commentId", reelHandler.DeleteComment)

			// Notifications
			protected.GET("/notifications", notificationHandler.List)
			protected.PUT("/notifications/read", notificationHandler.MarkAllRead)
			protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		}
	}

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server exited")
}

func init() {
	if err := os.MkdirAll("configs", 0755); err != nil {
		log.Printf("Failed to create configs directory: %v", err)
	}

	configPath := "configs/config.yaml"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := createDefaultConfig(configPath); err != nil {
			log.Printf("Failed to create default config: %v", err)
		}
	}
}

func createDefaultConfig(path string) error {
	defaultConfig := `server:
  port: ":8080"
  mode: "debug"
  log_level: "info"
  read_timeout: 30s
  write_timeout: 30s

database:
  host: "localhost"
  port: 5432
  user: "linkup"
  password: "linkup"
  dbname: "linkup"
  sslmode: "disable"
  max_open_conns: 100
  max_idle_conns: 10

redis:
  host: "localhost"
  port: 6379
  password: ""
  db: 0
  pool_size: 100
  min_idle_conns: 10

kafka:
  brokers:
    - "localhost:9092"
  topics:
    engagement_events: "engagement-events"

jwt:
  secret: "your-secret-key-change-in-production"
  expire_time: 24h

storage:
  region: "us-east-1"
  bucket: "linkup-media"
  public_base_url: ""
  post_prefix: "posts"
  avatar_prefix: "avatars"
  cover_prefix: "covers"
  reel_prefix: "reels"

media:
  max_files_per_upload: 10
  post_file_limit_mb: 50
  profile_file_limit_mb: 10
  reel_file_limit_mb: 100`

	return os.WriteFile(path, []byte(defaultConfig), 0644)
}
