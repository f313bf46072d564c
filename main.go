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
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"salon/config"
	_ "salon/docs"
	"salon/internal/calendar"
	"salon/internal/events"
	"salon/internal/notify"
	"salon/internal/receipt"
	"salon/internal/repository"
	"salon/internal/service"
	"salon/internal/storage"
	"salon/internal/transport/rest"
	"salon/internal/transport/websocket"
	"salon/pkg/auth"
	"salon/pkg/database"
	"salon/pkg/logger"
	"salon/pkg/telemetry"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	eventQueueSize       = 256
	eventDeliveryTimeout = 10 * time.Second
)

// @title Salon Booking API
// @version 1.0
// @description Slot lookup and booking for clients, appointment management for the salon owner

// @BasePath /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log := logger.NewLogger(cfg.Log, cfg.IsProduction())
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Otel, cfg.Name, cfg.Version)
	if err != nil {
		log.Fatal("failed to set up tracing", zap.Error(err))
	}

	rules := calendar.DefaultRules()
	if cfg.Salon.RulesFile != "" {
		rules, err = calendar.LoadRules(cfg.Salon.RulesFile)
		if err != nil {
			log.Fatal("failed to load calendar rules", zap.String("file", cfg.Salon.RulesFile), zap.Error(err))
		}
		log.Info("calendar rules loaded", zap.String("file", cfg.Salon.RulesFile))
	}

	if cfg.Admin.PasswordHash == "" {
		if cfg.IsProduction() {
			log.Warn("ADMIN_PASSWORD_HASH is not set, hashing ADMIN_PASSWORD at startup")
		}
		cfg.Admin.PasswordHash, err = auth.HashPassword(cfg.Admin.Password)
		if err != nil {
			log.Fatal("failed to hash admin password", zap.Error(err))
		}
		cfg.Admin.Password = ""
	}

	var repos *repository.Repositories
	if cfg.Postgres.Host != "" {
		db, err := database.NewPostgresDB(ctx, cfg.Postgres)
		if err != nil {
			log.Fatal("failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		log.Info("running database migrations", zap.String("dir", cfg.Postgres.MigrationsDir))
		if err := database.RunMigrations(ctx, db, cfg.Postgres.MigrationsDir, log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}

		repos = repository.NewRepositories(db)
	} else {
		log.Warn("POSTGRES_HOST is not set, appointments are kept in memory only")
		repos = repository.NewMemoryRepositories()
	}

	hub := websocket.NewDashboardHub(service.NewAuthService(cfg.Admin, cfg.JWT, time.Now, log), log)
	go hub.Run(ctx)

	publishers := events.Multi{hub}
	var outbound events.Multi

	if cfg.Kafka.Brokers != "" {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka)
		defer kafkaPublisher.Close()
		outbound = append(outbound, kafkaPublisher)
		log.Info("publishing appointment events to kafka", zap.String("topic", cfg.Kafka.Topic))
	}

	if cfg.S3.Endpoint != "" {
		s3Storage, err := storage.NewS3Storage(ctx, cfg.S3, log)
		if err != nil {
			log.Fatal("failed to initialize s3 storage", zap.Error(err))
		}
		outbound = append(outbound, receipt.NewArchiver(s3Storage, cfg.Salon.Name, log))
		log.Info("archiving receipts", zap.String("endpoint", cfg.S3.Endpoint), zap.String("bucket", cfg.S3.Bucket))
	} else {
		log.Warn("S3 storage is not configured, receipts will not be archived")
	}

	if cfg.SMTP.Host != "" && cfg.SMTP.OwnerEmail != "" {
		outbound = append(outbound, notify.NewMailNotifier(cfg.SMTP, cfg.Salon.Name, log))
		log.Info("owner e-mail notifications enabled", zap.String("to", cfg.SMTP.OwnerEmail))
	}

	var queue *events.Queue
	if len(outbound) > 0 {
		queue = events.NewQueue(outbound, eventQueueSize, eventDeliveryTimeout, log)
		go queue.Run()
		publishers = append(publishers, queue)
	}

	services := service.NewServices(service.Deps{
		Repos:     repos,
		Rules:     rules,
		Logger:    log,
		Config:    cfg,
		Publisher: publishers,
	})

	var limiter rest.RateLimiter
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		limiter = rest.NewRedisRateLimiter(rdb, cfg.Redis.RateLimitPerMinute, time.Minute, "salon:rl")
		log.Info("rate limiting public endpoints", zap.Int("per_minute", cfg.Redis.RateLimitPerMinute))
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	handler := rest.NewHandler(services, log, cfg, hub, limiter)
	handler.InitRoutes(router)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	srv := &http.Server{
		Addr:           ":" + cfg.HTTP.Port,
		Handler:        otelhttp.NewHandler(router, "salon-http"),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderMB << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	log.Info("server started", zap.String("addr", srv.Addr))

	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	if queue != nil {
		if err := queue.Close(shutdownCtx); err != nil {
			log.Error("event queue did not drain", zap.Error(err))
		}
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracer shutdown failed", zap.Error(err))
	}

	log.Info("server stopped")
}
