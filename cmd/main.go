package main

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/Tufan17/timhoty-backend-sub004/internal/handler"
	mid "github.com/Tufan17/timhoty-backend-sub004/internal/middleware"
	"github.com/Tufan17/timhoty-backend-sub004/internal/model"
	"github.com/Tufan17/timhoty-backend-sub004/internal/queue"
	"github.com/Tufan17/timhoty-backend-sub004/internal/repository"
	"github.com/Tufan17/timhoty-backend-sub004/internal/translate"
	"github.com/Tufan17/timhoty-backend-sub004/pkg/cache"
	"github.com/Tufan17/timhoty-backend-sub004/pkg/config"
	"github.com/Tufan17/timhoty-backend-sub004/pkg/database"
	"github.com/Tufan17/timhoty-backend-sub004/pkg/jwtutil"
	"github.com/Tufan17/timhoty-backend-sub004/pkg/logger"
	"github.com/Tufan17/timhoty-backend-sub004/pkg/metrics"
)

const serviceName = "booking-service"

func main() {
	// Load configuration
	appConfig, err := config.Load(serviceName)
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       appConfig.Log.Level,
		Environment: appConfig.Server.Env,
		ServiceName: appConfig.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting booking-service", appConfig.LogConfig()...)

	// Initialize JWT utility
	jwtUtil := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{
		SigningKey:      appConfig.JWT.SigningKey,
		ExpirationHours: appConfig.JWT.ExpirationHours,
	})
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	httpMetrics := metrics.NewHTTPMetrics(appConfig.Metrics.Prefix)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	db, err := database.InitDB(&appConfig.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	if err := database.MigrateModels(db,
		&model.Service{},
		&model.HotelDetail{},
		&model.CarRentalDetail{},
		&model.TourDetail{},
		&model.ActivityDetail{},
		&model.VisaDetail{},
		&model.ServicePivot{},
		&model.Language{},
		&model.Currency{},
		&model.CurrencyPivot{},
		&model.Package{},
		&model.PackagePrice{},
		&model.Commission{},
		&model.DiscountCode{},
		&model.DiscountProduct{},
		&model.DiscountUser{},
		&model.Comment{},
		&model.Reservation{},
		&model.Notification{},
		&model.SolutionPartner{},
		&model.SalesPartner{},
		&model.User{},
	); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Optional collaborators: content cache and event publisher degrade to
	// nil when unavailable.
	redisClient := cache.NewRedisClient(&appConfig.Redis)
	if redisClient == nil {
		log.Warn("Redis unavailable, content caching disabled")
	}
	publisher := queue.NewPublisher(&appConfig.Queue, log)
	if publisher == nil {
		log.Warn("RabbitMQ unavailable, event publishing disabled")
	}
	defer publisher.Close()

	translator := translate.NewClient(&appConfig.Translator, log)

	// Repositories
	contentRepo := repository.NewContentRepo(db, translator, redisClient, appConfig.Redis.TTL, log)
	serviceRepo := repository.NewServiceRepo(db)
	priceRepo := repository.NewPriceRepo(db, contentRepo)
	commissionRepo := repository.NewCommissionRepo(db)
	discountRepo := repository.NewDiscountRepo(db)
	commentRepo := repository.NewCommentRepo(db)
	reservationRepo := repository.NewReservationRepo(db, priceRepo, discountRepo)
	notificationRepo := repository.NewNotificationRepo(db)

	// Handlers
	serviceHandler := handler.NewServiceHandler(serviceRepo, contentRepo, appConfig.DefaultLanguage)
	packageHandler := handler.NewPackageHandler(serviceRepo, priceRepo, appConfig.DefaultLanguage)
	commissionHandler := handler.NewCommissionHandler(commissionRepo)
	discountHandler := handler.NewDiscountHandler(discountRepo, appConfig.ServiceName)
	commentHandler := handler.NewCommentHandler(commentRepo)
	reservationHandler := handler.NewReservationHandler(reservationRepo, notificationRepo, publisher, appConfig.ServiceName)
	notificationHandler := handler.NewNotificationHandler(notificationRepo)

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomw.Recover())
	e.Use(mid.RequestIDMiddleware())
	e.Use(logger.Middleware())
	e.Use(httpMetrics.Middleware())

	// Metrics and health endpoints
	e.GET("/metrics", echo.WrapHandler(metrics.GetPrometheusHandler()))
	e.GET("/health", handler.Health)

	// Public catalog routes
	e.GET("/api/services", serviceHandler.List)
	e.GET("/api/services/:id", serviceHandler.Get)
	e.GET("/api/services/:id/packages", packageHandler.List)
	e.GET("/api/services/:id/comments", commentHandler.ListByService)
	e.GET("/api/packages/:id/quote", packageHandler.Quote)

	auth := mid.JWTAuthMiddleware(jwtUtil)

	// Admin routes
	adminAPI := e.Group("/api/admin", auth, mid.RequireRole(jwtutil.RoleAdmin))
	adminAPI.PUT("/services/:id/approve", serviceHandler.Approve)
	adminAPI.PUT("/services/:id/highlight", serviceHandler.Highlight)
	adminAPI.PUT("/services/:id/content", serviceHandler.UpsertPivot)
	adminAPI.DELETE("/services/:id", serviceHandler.Delete)
	adminAPI.POST("/discounts", discountHandler.Create)
	adminAPI.GET("/discounts", discountHandler.List)

	// Solution partner routes
	partnerAPI := e.Group("/api/partner", auth, mid.RequireRole(jwtutil.RoleSolutionPartner))
	partnerAPI.POST("/services", serviceHandler.Create)
	partnerAPI.PUT("/services/:id/packages", packageHandler.Replace)
	partnerAPI.POST("/packages/:id/prices", packageHandler.AddPrice)

	// Commission self-service for both partner kinds
	commissionAPI := e.Group("/api/commissions", auth,
		mid.RequireRole(jwtutil.RoleSolutionPartner, jwtutil.RoleSalesPartner))
	commissionAPI.POST("", commissionHandler.Upsert)
	commissionAPI.GET("", commissionHandler.Get)
	commissionAPI.DELETE("/:id", commissionHandler.Delete)

	// End-user routes
	userAPI := e.Group("/api", auth)
	userAPI.POST("/reservations", reservationHandler.Book)
	userAPI.GET("/reservations", reservationHandler.List)
	userAPI.GET("/reservations/:id", reservationHandler.Get)
	userAPI.PUT("/reservations/:id/confirm", reservationHandler.Confirm)
	userAPI.PUT("/reservations/:id/cancel", reservationHandler.Cancel)
	userAPI.POST("/discounts/check", discountHandler.Check)
	userAPI.POST("/comments", commentHandler.Create)
	userAPI.GET("/notifications", notificationHandler.List)
	userAPI.PUT("/notifications/:id/read", notificationHandler.MarkRead)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
