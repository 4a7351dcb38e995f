package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/elevate-careers-api/api/swagger"
	"github.com/noah-isme/elevate-careers-api/internal/handler"
	"github.com/noah-isme/elevate-careers-api/internal/notify"
	"github.com/noah-isme/elevate-careers-api/internal/pricing"
	"github.com/noah-isme/elevate-careers-api/internal/repository"
	"github.com/noah-isme/elevate-careers-api/internal/service"
	"github.com/noah-isme/elevate-careers-api/pkg/cache"
	"github.com/noah-isme/elevate-careers-api/pkg/config"
	"github.com/noah-isme/elevate-careers-api/pkg/database"
	"github.com/noah-isme/elevate-careers-api/pkg/export"
	"github.com/noah-isme/elevate-careers-api/pkg/logger"
	authmiddleware "github.com/noah-isme/elevate-careers-api/pkg/middleware/auth"
	corsmiddleware "github.com/noah-isme/elevate-careers-api/pkg/middleware/cors"
	metricsmiddleware "github.com/noah-isme/elevate-careers-api/pkg/middleware/metrics"
	reqidmiddleware "github.com/noah-isme/elevate-careers-api/pkg/middleware/requestid"
	"github.com/noah-isme/elevate-careers-api/pkg/paystack"
)

// @title Elevate Careers API
// @version 1.0.0
// @description Lead capture and paid training enrollment backend
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	var cacheRepo *repository.CacheRepository
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, pricing cache disabled", "error", err)
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}

	catalog := pricing.NewCatalog()
	gateway := paystack.NewClient(cfg.Paystack, logr)
	if !gateway.Configured() {
		logr.Warn("paystack secret key missing, payment endpoints will refuse requests")
	}

	enrollmentRepo := repository.NewEnrollmentRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	discoveryCallRepo := repository.NewDiscoveryCallRepository(db)
	talentPoolRepo := repository.NewTalentPoolRepository(db)

	mailer := notify.NewMailer(cfg.Email, logr)
	notifications := service.NewNotificationService(cfg.Notifications, mailer, logr)
	notifications.Start(context.Background())
	defer notifications.Stop()

	metrics := service.NewMetricsService()

	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, catalog, notifications, logr)
	paymentSvc := service.NewPaymentService(paymentRepo, enrollmentRepo, gateway, catalog,
		notifications, metrics, repository.IsUniqueViolation, logr)
	discoveryCallSvc := service.NewDiscoveryCallService(discoveryCallRepo, notifications, logr)
	talentPoolSvc := service.NewTalentPoolService(talentPoolRepo, notifications, logr)

	pricingSvc := service.NewPricingService(catalog, nil, 0, logr)
	if cacheRepo != nil {
		pricingSvc = service.NewPricingService(catalog, cacheRepo, cfg.Cache.TTL, logr)
	}

	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc)
	paymentHandler := handler.NewPaymentHandler(paymentSvc, export.NewReceiptRenderer("Elevate Careers"))
	webhookHandler := handler.NewWebhookHandler(paymentSvc, cfg.Paystack.SecretKey, logr)
	discoveryCallHandler := handler.NewDiscoveryCallHandler(discoveryCallSvc)
	talentPoolHandler := handler.NewTalentPoolHandler(talentPoolSvc)
	pricingHandler := handler.NewPricingHandler(pricingSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(metricsmiddleware.Middleware(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/training-programs", pricingHandler.List)

		api.POST("/training-enrollments", enrollmentHandler.Create)
		api.GET("/training-enrollments/:id", enrollmentHandler.Get)

		api.POST("/payments/initialize", paymentHandler.Initialize)
		api.GET("/payments/verify/:reference", paymentHandler.Verify)
		api.POST("/payments/webhook", webhookHandler.Handle)
		api.GET("/payments/:reference", paymentHandler.Status)
		api.GET("/payments/:reference/receipt", paymentHandler.Receipt)

		api.POST("/discovery-calls", discoveryCallHandler.Create)
		api.POST("/talent-pool", talentPoolHandler.Create)

		admin := api.Group("", authmiddleware.AdminJWT(cfg.Admin.JWTSecret))
		{
			admin.GET("/training-enrollments", enrollmentHandler.List)
			admin.GET("/discovery-calls", discoveryCallHandler.List)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
