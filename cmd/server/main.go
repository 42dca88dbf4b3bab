package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	costingapp "github.com/shrimpcfr/backend/internal/application/costing"
	identityapp "github.com/shrimpcfr/backend/internal/application/identity"
	reportapp "github.com/shrimpcfr/backend/internal/application/report"
	"github.com/shrimpcfr/backend/internal/infrastructure/auth"
	"github.com/shrimpcfr/backend/internal/infrastructure/config"
	"github.com/shrimpcfr/backend/internal/infrastructure/export"
	"github.com/shrimpcfr/backend/internal/infrastructure/logger"
	"github.com/shrimpcfr/backend/internal/infrastructure/persistence"
	"github.com/shrimpcfr/backend/internal/infrastructure/storage"
	"github.com/shrimpcfr/backend/internal/infrastructure/telemetry"
	"github.com/shrimpcfr/backend/internal/interfaces/http/handler"
	"github.com/shrimpcfr/backend/internal/interfaces/http/middleware"
	"github.com/shrimpcfr/backend/internal/interfaces/http/router"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	_ "github.com/shrimpcfr/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "dev"

//	@title			Shrimp CFR Costing API
//	@version		1.0
//	@description	CFR cost calculation for frozen shrimp exports

//	@contact.name	API Support

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	log, err := logger.New(logCfg, logger.WithFields(zap.String("service", cfg.App.Name)))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting CFR costing service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", Version),
	)

	ctx := context.Background()

	// Telemetry: traces, metrics, OTLP logs and the continuous profiler
	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer shutdown(log, "tracer provider", tp.Shutdown)

	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer shutdown(log, "meter provider", mp.Shutdown)

	lp, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	defer shutdown(log, "logger provider", lp.Shutdown)

	if lp.IsEnabled() {
		// Tee every entry into the OTLP log bridge from here on
		bridged, err := logger.New(logCfg,
			logger.WithFields(zap.String("service", cfg.App.Name)),
			logger.WithCore(lp.ZapCore(logger.ParseLevel(cfg.Log.Level))),
		)
		if err != nil {
			log.Fatal("Failed to attach OTLP log bridge", zap.Error(err))
		}
		log = bridged
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.PyroscopeServer,
		ApplicationName: cfg.Telemetry.ServiceName,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()
	if profiler.IsEnabled() {
		if err := tp.EnableSpanProfiles(); err != nil {
			log.Warn("Failed to enable span profiles", zap.Error(err))
		}
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Database.SlowQueryThresh))
	dbOpts := []persistence.Option{persistence.WithLogger(gormLog)}
	if tp.IsEnabled() && cfg.Telemetry.DBTraceEnabled {
		dbOpts = append(dbOpts, persistence.WithPlugins(telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			DBSystem: dbSystem(cfg.Database.Driver),
		}, otel.GetTracerProvider())))
	}

	db, err := persistence.NewDatabase(&cfg.Database, dbOpts...)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", db.Driver))

	if db.Driver == "sqlite" {
		if err := db.AutoMigrate(ctx); err != nil {
			log.Fatal("Failed to migrate sqlite schema", zap.Error(err))
		}
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	rateRepo := persistence.NewGormRateRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	constantsRepo := persistence.NewGormConstantsRepository(db.DB)

	// Token blacklist: Redis when configured, in-process otherwise
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Enabled {
		redisClient, err := auth.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		log.Info("Token blacklist backed by Redis", zap.String("addr", cfg.Redis.Addr()))
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		log.Warn("Redis disabled, token revocation is kept in process memory")
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	userService := identityapp.NewUserService(userRepo, log,
		identityapp.WithTokenRevocation(blacklist, jwtService.RefreshTokenExpiration()))
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)

	rateService := costingapp.NewRateService(rateRepo)
	productService := costingapp.NewProductService(productRepo)
	constantsService := costingapp.NewConstantsService(constantsRepo, log)

	costingMetrics, err := telemetry.NewCostingMetrics(mp.Meter("cfr.costing"))
	if err != nil {
		log.Fatal("Failed to create costing metrics", zap.Error(err))
	}
	calculatorService := costingapp.NewCalculatorService(productRepo, rateService, constantsService,
		costingapp.WithRecorder(costingMetrics),
		costingapp.WithLogger(log),
	)

	reportOpts := []reportapp.Option{
		reportapp.WithRenderer(export.NewPDFRenderer()),
		reportapp.WithRenderer(export.NewXLSXRenderer()),
	}
	if cfg.Storage.Enabled {
		archive, err := storage.NewReportArchive(ctx, &cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize report archive", zap.Error(err))
		}
		if err := archive.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to prepare report archive bucket", zap.Error(err))
		}
		reportOpts = append(reportOpts, reportapp.WithArchive(archive))
		log.Info("Report archive enabled", zap.String("bucket", archive.Bucket()))
	}
	reportService := reportapp.NewProductionReportService(productRepo, rateService, constantsService, log, reportOpts...)

	// Reference data and the default admin
	if cfg.Seed.Enabled {
		if _, err := persistence.NewSeeder(rateRepo, productRepo, constantsRepo, userService, log).Seed(ctx); err != nil {
			log.Fatal("Failed to seed reference data", zap.Error(err))
		}
	}

	// HTTP handlers
	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		User:       handler.NewUserHandler(userService),
		Rate:       handler.NewRateHandler(rateService),
		Product:    handler.NewProductHandler(productService),
		Constants:  handler.NewConstantsHandler(constantsService),
		Calculator: handler.NewCalculatorHandler(calculatorService),
		Report:     handler.NewReportHandler(reportService),
		System:     handler.NewSystemHandler(cfg.App.Name, Version, db),
	}

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack in order:
	// 1. RequestID
	// 2. Recovery
	// 3. Request logging
	// 4. Tracing (when telemetry is enabled)
	// 5. Security headers
	// 6. CORS
	// 7. Body limit
	// 8. Rate limit (when enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log, "/health"))
	if tp.IsEnabled() {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
			SkipPaths:   []string{"/health", "/api/v1/health"},
		}))
		engine.Use(middleware.SpanEnricher())
	}
	engine.Use(middleware.SecureWithConfig(middleware.DefaultSecurityConfig()))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	var authMiddleware []gin.HandlerFunc
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer rateLimiter.Stop()
		engine.Use(middleware.RateLimit(rateLimiter))

		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		defer authLimiter.Stop()
		authMiddleware = append(authMiddleware, middleware.RateLimit(authLimiter))

		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
			zap.Int("auth_requests", cfg.HTTP.AuthRateLimitRequests),
			zap.Duration("auth_window", cfg.HTTP.AuthRateLimitWindow),
		)
	}

	// Health check outside API versioning
	engine.GET("/health", handlers.System.Health)

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log

	// Swagger documentation, guarded by its own auth chain
	swaggerAuth := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
	})
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.Swagger.RequireAuth,
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		}, swaggerAuth),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	apiMiddleware := []gin.HandlerFunc{middleware.JWTAuthMiddlewareWithConfig(jwtConfig)}
	if profiler.IsEnabled() {
		apiMiddleware = append(apiMiddleware, middleware.ProfilingWithConfig(middleware.DefaultProfilingConfig()))
	}
	if mp.IsEnabled() {
		httpMetrics, err := middleware.HTTPMetrics(mp.Meter("cfr.http"))
		if err != nil {
			log.Fatal("Failed to create HTTP metrics", zap.Error(err))
		}
		apiMiddleware = append(apiMiddleware, httpMetrics)
	}

	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithMiddleware(apiMiddleware...),
	)
	for _, group := range router.APIGroups(handlers, authMiddleware...) {
		r.Register(group)
	}
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}

func shutdown(log *zap.Logger, name string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		log.Error("Error shutting down "+name, zap.Error(err))
	}
}

func dbSystem(driver string) string {
	if driver == "sqlite" {
		return "sqlite"
	}
	return "postgresql"
}
