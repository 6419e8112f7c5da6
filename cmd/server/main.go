package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	catalogapp "github.com/mssp/backend/internal/application/catalog"
	clientapp "github.com/mssp/backend/internal/application/client"
	contractapp "github.com/mssp/backend/internal/application/contract"
	customfieldapp "github.com/mssp/backend/internal/application/customfield"
	financeapp "github.com/mssp/backend/internal/application/finance"
	hardwareapp "github.com/mssp/backend/internal/application/hardware"
	identityapp "github.com/mssp/backend/internal/application/identity"
	metricsapp "github.com/mssp/backend/internal/application/metrics"
	scopeapp "github.com/mssp/backend/internal/application/scope"
	teamapp "github.com/mssp/backend/internal/application/team"
	"github.com/mssp/backend/internal/domain/identity"
	"github.com/mssp/backend/internal/infrastructure/auth"
	"github.com/mssp/backend/internal/infrastructure/cache"
	"github.com/mssp/backend/internal/infrastructure/config"
	"github.com/mssp/backend/internal/infrastructure/logger"
	"github.com/mssp/backend/internal/infrastructure/persistence"
	"github.com/mssp/backend/internal/interfaces/http/handler"
	"github.com/mssp/backend/internal/interfaces/http/middleware"
	"github.com/mssp/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting MSSP Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Token blacklist backed by Redis when reachable, in-memory otherwise.
	// The in-memory fallback is only safe for single-instance deployments.
	var blacklist auth.TokenBlacklist
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		log.Info("Redis token blacklist connected")
	}
	pingCancel()

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	contractRepo := persistence.NewGormContractRepository(db.DB)
	serviceRepo := persistence.NewGormServiceRepository(db.DB)
	scopeRepo := persistence.NewGormScopeRepository(db.DB)
	assetRepo := persistence.NewGormAssetRepository(db.DB)
	hwAssignmentRepo := persistence.NewGormHardwareAssignmentRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	teamAssignmentRepo := persistence.NewGormTeamAssignmentRepository(db.DB)
	slaMetricRepo := persistence.NewGormSLAMetricRepository(db.DB)
	ticketSummaryRepo := persistence.NewGormTicketSummaryRepository(db.DB)
	fieldDefRepo := persistence.NewGormFieldDefinitionRepository(db.DB)
	fieldValueRepo := persistence.NewGormFieldValueRepository(db.DB)

	// Custom field services; the definition cache keeps validation off the
	// hot path for every host module write
	definitionCache := cache.NewInMemoryDefinitionCache(
		cache.WithDefinitionTTL(cfg.Cache.DefinitionTTL),
		cache.WithDefinitionCacheLogger(log),
	)
	definitionService := customfieldapp.NewDefinitionService(fieldDefRepo, definitionCache, log)
	valueService := customfieldapp.NewValueService(fieldDefRepo, fieldValueRepo, definitionCache, log)

	// Identity services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, log)

	// Host module services
	clientService := clientapp.NewClientService(clientRepo, valueService, log)
	contractService := contractapp.NewContractService(contractRepo, clientRepo, valueService, log)
	serviceService := catalogapp.NewServiceService(serviceRepo, log)
	scopeService := scopeapp.NewScopeService(scopeRepo, serviceRepo, contractRepo, log)
	assetService := hardwareapp.NewAssetService(assetRepo, hwAssignmentRepo, clientRepo, valueService, log)
	transactionService := financeapp.NewTransactionService(transactionRepo, clientRepo, valueService, log)
	teamService := teamapp.NewAssignmentService(teamAssignmentRepo, userRepo, clientRepo, log)
	metricsService := metricsapp.NewMetricsService(slaMetricRepo, ticketSummaryRepo, clientRepo, log)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	clientHandler := handler.NewClientHandler(clientService)
	contractHandler := handler.NewContractHandler(contractService)
	serviceHandler := handler.NewServiceHandler(serviceService)
	scopeHandler := handler.NewScopeHandler(scopeService)
	hardwareHandler := handler.NewHardwareHandler(assetService)
	financeHandler := handler.NewFinanceHandler(transactionService)
	teamHandler := handler.NewTeamHandler(teamService)
	metricsHandler := handler.NewMetricsHandler(metricsService)
	customFieldHandler := handler.NewCustomFieldHandler(definitionService, valueService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, outermost first
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/ping",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Authentication (login/refresh are public via JWT skip paths). The
	// credential endpoints carry a stricter per-IP limiter against brute
	// force when enabled.
	authRoutes := router.NewDomainGroup("auth", "/auth")
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authLimit := middleware.AuthRateLimit(authLimiter)
		authRoutes.POST("/login", authLimit, authHandler.Login)
		authRoutes.POST("/refresh", authLimit, authHandler.RefreshToken)
	} else {
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/refresh", authHandler.RefreshToken)
	}
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.GetCurrentUser)
	authRoutes.PUT("/password", authHandler.ChangePassword)

	// User administration, admin only
	adminOnly := middleware.RequireRole(identity.RoleAdmin)
	userRoutes := router.NewDomainGroup("users", "/users")
	userRoutes.POST("", adminOnly, userHandler.Create)
	userRoutes.GET("", adminOnly, userHandler.List)
	userRoutes.GET("/:id", adminOnly, userHandler.GetByID)
	userRoutes.PUT("/:id", adminOnly, userHandler.Update)
	userRoutes.POST("/:id/reset-password", adminOnly, userHandler.ResetPassword)
	userRoutes.POST("/:id/activate", adminOnly, userHandler.Activate)
	userRoutes.POST("/:id/deactivate", adminOnly, userHandler.Deactivate)
	userRoutes.GET("/:id/assignments", teamHandler.ListByUser)

	// Clients
	clientRoutes := router.NewDomainGroup("clients", "/clients")
	clientRoutes.POST("", clientHandler.Create)
	clientRoutes.GET("", clientHandler.List)
	clientRoutes.GET("/stats/status-counts", clientHandler.StatusCounts)
	clientRoutes.GET("/:id", clientHandler.GetByID)
	clientRoutes.PUT("/:id", clientHandler.Update)
	clientRoutes.DELETE("/:id", adminOnly, clientHandler.Delete)
	clientRoutes.POST("/:id/activate", clientHandler.Activate)
	clientRoutes.POST("/:id/deactivate", clientHandler.Deactivate)
	clientRoutes.POST("/:id/archive", clientHandler.Archive)
	clientRoutes.GET("/:id/contracts", contractHandler.ListByClient)
	clientRoutes.GET("/:id/contracts/total-value", contractHandler.TotalValueByClient)
	clientRoutes.GET("/:id/hardware", hardwareHandler.ListAssignmentsByClient)
	clientRoutes.GET("/:id/team", teamHandler.ListByClient)
	clientRoutes.GET("/:id/sla-metrics", metricsHandler.ListSLAMetrics)
	clientRoutes.GET("/:id/ticket-summaries", metricsHandler.ListTicketSummaries)

	// Contracts
	contractRoutes := router.NewDomainGroup("contracts", "/contracts")
	contractRoutes.POST("", contractHandler.Create)
	contractRoutes.GET("", contractHandler.List)
	contractRoutes.GET("/expiring", contractHandler.ListExpiring)
	contractRoutes.GET("/:id", contractHandler.GetByID)
	contractRoutes.PUT("/:id", contractHandler.Update)
	contractRoutes.DELETE("/:id", adminOnly, contractHandler.Delete)
	contractRoutes.POST("/:id/activate", contractHandler.Activate)
	contractRoutes.POST("/:id/cancel", contractHandler.Cancel)
	contractRoutes.POST("/:id/terminate", contractHandler.Terminate)
	contractRoutes.POST("/:id/expire", contractHandler.MarkExpired)
	contractRoutes.GET("/:id/scopes", scopeHandler.ListByContract)

	// Service catalog
	serviceRoutes := router.NewDomainGroup("services", "/services")
	serviceRoutes.POST("", serviceHandler.Create)
	serviceRoutes.GET("", serviceHandler.List)
	serviceRoutes.GET("/category/:category", serviceHandler.ListByCategory)
	serviceRoutes.GET("/:id", serviceHandler.GetByID)
	serviceRoutes.PUT("/:id", serviceHandler.Update)
	serviceRoutes.PUT("/:id/scope-template", serviceHandler.SetScopeTemplate)
	serviceRoutes.POST("/:id/activate", serviceHandler.Activate)
	serviceRoutes.POST("/:id/deactivate", serviceHandler.Deactivate)

	// Service scopes
	scopeRoutes := router.NewDomainGroup("scopes", "/scopes")
	scopeRoutes.POST("", scopeHandler.Create)
	scopeRoutes.GET("", scopeHandler.List)
	scopeRoutes.GET("/:id", scopeHandler.GetByID)
	scopeRoutes.PUT("/:id", scopeHandler.Update)
	scopeRoutes.DELETE("/:id", scopeHandler.Delete)
	scopeRoutes.POST("/:id/activate", scopeHandler.Activate)
	scopeRoutes.POST("/:id/complete", scopeHandler.Complete)
	scopeRoutes.POST("/:id/cancel", scopeHandler.Cancel)

	// Hardware assets
	hardwareRoutes := router.NewDomainGroup("hardware", "/hardware")
	hardwareRoutes.POST("/assets", hardwareHandler.Create)
	hardwareRoutes.GET("/assets", hardwareHandler.List)
	hardwareRoutes.GET("/assets/:id", hardwareHandler.GetByID)
	hardwareRoutes.PUT("/assets/:id", hardwareHandler.Update)
	hardwareRoutes.POST("/assets/:id/assign", hardwareHandler.Assign)
	hardwareRoutes.POST("/assets/:id/return", hardwareHandler.Return)
	hardwareRoutes.GET("/assets/:id/assignments", hardwareHandler.ListAssignmentsByAsset)
	hardwareRoutes.POST("/assets/:id/maintenance/start", hardwareHandler.StartMaintenance)
	hardwareRoutes.POST("/assets/:id/maintenance/finish", hardwareHandler.FinishMaintenance)
	hardwareRoutes.POST("/assets/:id/retire", hardwareHandler.Retire)

	// Financial transactions, restricted to finance-capable roles
	financeAccess := middleware.RequireAnyRole(identity.RoleManager, identity.RoleAccountManager)
	financeRoutes := router.NewDomainGroup("finance", "/finance")
	financeRoutes.Use(financeAccess)
	financeRoutes.POST("/transactions", financeHandler.Create)
	financeRoutes.GET("/transactions", financeHandler.List)
	financeRoutes.GET("/transactions/summary", financeHandler.Summarize)
	financeRoutes.GET("/transactions/:id", financeHandler.GetByID)
	financeRoutes.PUT("/transactions/:id", financeHandler.Update)
	financeRoutes.DELETE("/transactions/:id", financeHandler.Delete)
	financeRoutes.POST("/transactions/:id/complete", financeHandler.Complete)
	financeRoutes.POST("/transactions/:id/cancel", financeHandler.Cancel)

	// Team assignments
	teamRoutes := router.NewDomainGroup("team", "/team")
	teamRoutes.POST("/assignments", teamHandler.Assign)
	teamRoutes.GET("/assignments/:id", teamHandler.GetByID)
	teamRoutes.POST("/assignments/:id/end", teamHandler.End)
	teamRoutes.DELETE("/assignments/:id", adminOnly, teamHandler.Delete)

	// SLA metrics and ticket summaries
	metricsRoutes := router.NewDomainGroup("metrics", "/metrics")
	metricsRoutes.GET("/dashboard", metricsHandler.Dashboard)
	metricsRoutes.POST("/sla", metricsHandler.RecordSLAMetric)
	metricsRoutes.DELETE("/sla/:id", metricsHandler.DeleteSLAMetric)
	metricsRoutes.POST("/tickets", metricsHandler.RecordTicketSummary)
	metricsRoutes.DELETE("/tickets/:id", metricsHandler.DeleteTicketSummary)

	// Custom field definitions and values
	customFieldRoutes := router.NewDomainGroup("custom-fields", "/custom-fields")
	customFieldRoutes.POST("/definitions", adminOnly, customFieldHandler.CreateDefinition)
	customFieldRoutes.GET("/definitions", customFieldHandler.ListDefinitions)
	customFieldRoutes.PUT("/definitions/reorder", adminOnly, customFieldHandler.ReorderDefinitions)
	customFieldRoutes.GET("/definitions/entity/:entityType", customFieldHandler.ListDefinitionsByEntityType)
	customFieldRoutes.GET("/definitions/:id", customFieldHandler.GetDefinition)
	customFieldRoutes.PUT("/definitions/:id", adminOnly, customFieldHandler.UpdateDefinition)
	customFieldRoutes.DELETE("/definitions/:id", adminOnly, customFieldHandler.DeleteDefinition)
	customFieldRoutes.POST("/definitions/:id/deactivate", adminOnly, customFieldHandler.DeactivateDefinition)
	customFieldRoutes.POST("/definitions/:id/reactivate", adminOnly, customFieldHandler.ReactivateDefinition)
	customFieldRoutes.GET("/values/:entityType/:entityID", customFieldHandler.GetValues)
	customFieldRoutes.PUT("/values/:entityType/:entityID", customFieldHandler.SaveValues)
	customFieldRoutes.POST("/values/:entityType/validate", customFieldHandler.ValidateValues)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(authRoutes).
		Register(userRoutes).
		Register(clientRoutes).
		Register(contractRoutes).
		Register(serviceRoutes).
		Register(scopeRoutes).
		Register(hardwareRoutes).
		Register(financeRoutes).
		Register(teamRoutes).
		Register(metricsRoutes).
		Register(customFieldRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
