package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "auctionhub/internal/app"
	"auctionhub/internal/bootstrap"
	"auctionhub/internal/cache"
	"auctionhub/internal/platform/rabbitmq"
	"auctionhub/internal/repository"
	"auctionhub/internal/transport/http/handler"
	"auctionhub/internal/transport/http/middleware"
)

// NewRouter wires repositories, services and handlers onto the routes
// the dashboard expects.
func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	userRepo := repository.NewUserRepository(app.MySQL)
	auctionRepo := repository.NewAuctionRepository(app.MySQL)
	auditPublisher := rabbitmq.NewAuditPublisher(app.MQConn, app.Config.RabbitMQ.AuditEventQueue)
	listingCache := cache.NewAuctionCache(
		app.Redis,
		time.Duration(app.Config.Redis.ListingTTLSeconds)*time.Second,
	)

	authService := appsvc.NewAuthService(
		userRepo,
		auditPublisher,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	auctionService := appsvc.NewAuctionService(auctionRepo, listingCache, auditPublisher)

	authHandler := handler.NewAuthHandler(authService)
	auctionHandler := handler.NewAuctionHandler(auctionService)
	healthHandler := handler.NewHealthHandler(app)

	guard := middleware.AuthJWT(app.Config.Auth.JWTSecret)

	router.GET("/healthz", healthHandler.Check)
	router.POST("/signup", authHandler.Signup)
	router.POST("/signin", authHandler.Signin)
	router.GET("/protected", guard, authHandler.Protected)
	router.POST("/auction", guard, auctionHandler.Create)
	router.GET("/auctions", auctionHandler.List)

	return router
}
