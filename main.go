package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brightBediako/farmlink-api/controllers"
	"github.com/brightBediako/farmlink-api/database"
	"github.com/brightBediako/farmlink-api/middleware"
	"github.com/brightBediako/farmlink-api/repository"
	"github.com/brightBediako/farmlink-api/routes"
	"github.com/brightBediako/farmlink-api/services"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment variables")
	}

	cfg, err := LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	if err := database.ConnectWithConfig(cfg.MongoURL, cfg.DBName); err != nil {
		logger.Fatal("Database connection failed", zap.Error(err))
	}
	defer database.Close()

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal("Invalid REDIS_URL", zap.Error(err))
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warn("Redis unreachable, product cache disabled", zap.Error(err))
			redisClient = nil
		}
	}

	uploader, err := services.NewCloudinaryUploader(
		cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder,
	)
	if err != nil {
		logger.Fatal("Cloudinary init failed", zap.Error(err))
	}

	sender, err := services.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, "FarmLink", cfg.SMTPEmail, cfg.SMTPPassword)
	if err != nil {
		logger.Fatal("SMTP init failed", zap.Error(err))
	}
	dispatcher := services.NewEmailDispatcher(sender, 128)
	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	defer stopDispatcher()
	dispatcher.Start(dispatcherCtx)

	payments := services.NewStripeService(cfg.StripeSecretKey, cfg.StripeSuccessURL, cfg.StripeCancelURL)
	tokens := services.NewTokenService(cfg.JWTSecret)
	cache := services.NewProductCache(redisClient)

	userRepo := repository.NewMongoUserRepo(database.DB)
	productRepo := repository.NewMongoProductRepo(database.DB)
	categoryRepo := repository.NewMongoCategoryRepo(database.DB)
	couponRepo := repository.NewMongoCouponRepo(database.DB)
	orderRepo := repository.NewMongoOrderRepo(database.DB)
	notificationRepo := repository.NewMongoNotificationRepo(database.DB)

	userService := services.NewUserService(userRepo, orderRepo, notificationRepo, tokens, dispatcher)
	productService := services.NewProductService(productRepo, categoryRepo, userRepo, notificationRepo, dispatcher, cache)
	categoryService := services.NewCategoryService(categoryRepo)
	couponService := services.NewCouponService(couponRepo)
	orderService := services.NewOrderService(orderRepo, userRepo, productRepo, couponRepo, notificationRepo, payments, dispatcher)
	notificationService := services.NewNotificationService(notificationRepo)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.RateLimit())

	// Request timeout middleware
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	routes.Register(r, &routes.Controllers{
		Users:         controllers.NewUserController(userService),
		Products:      controllers.NewProductController(productService, uploader),
		Categories:    controllers.NewCategoryController(categoryService, uploader),
		Coupons:       controllers.NewCouponController(couponService),
		Orders:        controllers.NewOrderController(orderService),
		Notifications: controllers.NewNotificationController(notificationService),
	}, tokens)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("FarmLink API started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited cleanly")
}
