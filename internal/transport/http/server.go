package http

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	appsvc "blogapi/internal/app"
	"blogapi/internal/bootstrap"
	"blogapi/internal/cache"
	"blogapi/internal/pkg/logger"
	"blogapi/internal/platform/rabbitmq"
	"blogapi/internal/repository"
	"blogapi/internal/transport/http/handler"
	"blogapi/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	if app.Config.App.GinMode != "" {
		gin.SetMode(app.Config.App.GinMode)
	}
	log := app.Logger
	if log == nil {
		log = logger.Discard()
	}

	metrics := middleware.NewMetrics("blogapi")
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(log),
		metrics.Middleware(),
		cors.New(corsConfig(app.Config.CORS.AllowOrigins)),
	)

	// Optional backends stay nil interfaces when disabled.
	var (
		postList  appsvc.PostListCache
		revoker   appsvc.TokenRevoker
		revoked   middleware.RevocationChecker
		publisher appsvc.EventPublisher
	)
	if app.Redis != nil {
		postList = cache.NewPostListCache(app.Redis, time.Duration(app.Config.Redis.PostListTTLSeconds)*time.Second)
		denylist := cache.NewTokenDenylist(app.Redis)
		revoker = denylist
		revoked = denylist
	}
	if app.MQConn != nil {
		publisher = rabbitmq.NewEventPublisher(app.MQConn, app.Config.RabbitMQ.ActivityQueue)
	}

	userRepo := repository.NewUserRepository(app.DB)
	postRepo := repository.NewPostRepository(app.DB)
	commentRepo := repository.NewCommentRepository(app.DB)

	authService := appsvc.NewAuthService(userRepo, app.Config.Auth.JWTSecret, revoker)
	postService := appsvc.NewPostService(postRepo, postList, publisher, log)
	commentService := appsvc.NewCommentService(commentRepo, postRepo, postList, publisher, log)

	healthHandler := handler.NewHealthHandler(app)
	authHandler := handler.NewAuthHandler(authService)
	postHandler := handler.NewPostHandler(postService)
	commentHandler := handler.NewCommentHandler(commentService)
	requireAuth := middleware.AuthJWT(app.Config.Auth.JWTSecret, revoked)

	router.GET("/healthz", healthHandler.Check)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)
	router.POST("/logout", requireAuth, authHandler.Logout)
	router.GET("/me", requireAuth, authHandler.Me)

	router.GET("/posts", postHandler.List)
	router.POST("/posts", requireAuth, postHandler.Create)
	router.PUT("/posts/:id", requireAuth, postHandler.Update)
	router.DELETE("/posts/:id", requireAuth, postHandler.Delete)

	router.GET("/posts/:id/comments", commentHandler.ListByPost)
	router.POST("/posts/:id/comments", requireAuth, commentHandler.Create)
	router.GET("/comments", commentHandler.ListRecent)
	router.PUT("/comments/:id", requireAuth, commentHandler.Update)
	router.DELETE("/comments/:id", requireAuth, commentHandler.Delete)

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID}
	cfg.ExposeHeaders = []string{middleware.HeaderRequestID}
	return cfg
}
