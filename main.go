package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pathwise/pathwise/handlers"
	"github.com/pathwise/pathwise/internal/auth"
	"github.com/pathwise/pathwise/internal/avatar"
	"github.com/pathwise/pathwise/internal/config"
	"github.com/pathwise/pathwise/internal/database"
	"github.com/pathwise/pathwise/internal/kvstore"
	"github.com/pathwise/pathwise/internal/match"
	"github.com/pathwise/pathwise/internal/models"
	"github.com/pathwise/pathwise/internal/profile"
	"github.com/pathwise/pathwise/internal/sessions"
	"github.com/pathwise/pathwise/internal/storage"
	"github.com/pathwise/pathwise/internal/summary"
	syncengine "github.com/pathwise/pathwise/internal/sync"
	"github.com/pathwise/pathwise/pkg/logger"
	"github.com/pathwise/pathwise/pkg/metrics"
	"github.com/pathwise/pathwise/pkg/middleware"
)

var startTime = time.Now()

// emptyBaseline stands in when neither Mongo nor a CSV is configured; the
// summary table then consists of the locally written rows only.
type emptyBaseline struct{}

func (emptyBaseline) Load(ctx context.Context) ([]models.UserSummary, error) { return nil, nil }

func main() {
	// logging is controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v minio=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", os.Getenv("MINIO_ENDPOINT") != "")
	if cfg.JWT.Secret == "" {
		logger.Warnf("JWT_SECRET is empty; access tokens are signed with an empty key")
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple — production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	ctx := context.Background()

	// Redis backs the record stores, the sessions and optionally the rate
	// limiter. Without it everything degrades to process memory, which is
	// fine for local development but loses data on restart.
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("Connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Optional global rate limiter (per-user when authenticated, otherwise per-IP)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Record stores share one Redis database; memory fallback for dev.
	var kv kvstore.Store
	if redisClient != nil {
		kv = kvstore.NewRedisStore(redisClient, "")
	} else {
		logger.Warnf("no Redis configured; using in-memory record stores")
		kv = kvstore.NewMemoryStore()
	}

	// Baseline dataset: Mongo collection by default, CSV for file-based
	// deployments, empty when neither is reachable.
	var baseline summary.BaselineSource = emptyBaseline{}
	var mongoClient *mongo.Client
	switch {
	case cfg.Baseline.Source == "csv" && cfg.Baseline.CSVPath != "":
		baseline = summary.NewCSVBaseline(cfg.Baseline.CSVPath)
		logger.Infof("baseline source: csv (%s)", cfg.Baseline.CSVPath)
	case cfg.MongoDB.URI != "":
		// Retry/backoff when connecting to MongoDB to tolerate startup races
		const maxAttempts = 5
		backoff := time.Second
		var errConn error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			mongoClient, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if errConn == nil {
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
		if errConn != nil {
			logger.Warnf("could not connect to MongoDB after %d attempts; baseline rows unavailable: %v", maxAttempts, errConn)
		} else {
			defer func() { _ = mongoClient.Disconnect(ctx) }()
			col := mongoClient.Database(cfg.MongoDB.Database).Collection(cfg.Baseline.Collection)
			baseline = summary.NewMongoBaseline(col)
			logger.Infof("baseline source: mongo (%s.%s)", cfg.MongoDB.Database, cfg.Baseline.Collection)
		}
	}

	// Avatar resources: presigned MinIO URLs when an object store is
	// configured, raw references otherwise.
	assigner := avatar.NewAssigner(nil)
	var minioStore *storage.MinIOStorage
	if mcfg := storage.LoadMinIOConfig(); mcfg.Endpoint != "" {
		minioStore, err = storage.NewMinIOStorage(mcfg)
		if err != nil {
			logger.Warnf("failed to initialize MinIO storage: %v", err)
			minioStore = nil
		} else {
			logger.Infof("Connected to MinIO: %s (bucket %s)", mcfg.Endpoint, mcfg.Bucket)
		}
	}
	resolver := avatar.NewResolver(minioStore, time.Hour)

	profiles := profile.NewStore(kv)
	summaries := summary.NewStore(kv, baseline, assigner)
	trash := syncengine.NewTrash(kv)
	engine := syncengine.NewEngine(profiles, summaries, trash)

	var sessionsSvc *sessions.Service
	if redisClient != nil {
		sessionsSvc = sessions.NewService(sessions.NewRedisRepository(redisClient, "session:"))
	} else {
		sessionsSvc = sessions.NewService(sessions.NewMemoryRepository())
	}

	authSvc := auth.NewService(engine, summaries, profiles, sessionsSvc, assigner, resolver, cfg.JWT.Secret, cfg.JWT.SessionTTL)
	if err := authSvc.BootstrapAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		logger.Warnf("admin bootstrap failed: %v", err)
	}

	catalog := match.DefaultCatalog
	if cfg.Catalog.Path != "" {
		loaded, err := match.LoadCatalog(cfg.Catalog.Path)
		if err != nil {
			logger.Warnf("failed to load career catalog from %s: %v", cfg.Catalog.Path, err)
		} else {
			catalog = loaded
			logger.Infof("career catalog loaded: %d entries", len(catalog))
		}
	}

	// Basic health endpoint
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness endpoint — 200 only when the record stores are durable
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		deps["redis"] = redisClient != nil
		if cfg.Redis.Host != "" && redisClient == nil {
			ready = false
		}
		deps["baseline"] = mongoClient != nil || cfg.Baseline.Source == "csv"
		deps["object_store"] = minioStore != nil

		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": time.Since(startTime).String()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": time.Since(startTime).String()})
	})

	authMW := middleware.AuthMiddleware(cfg.JWT.Secret, sessionsSvc)
	handlers.NewAuthHandler(authSvc).Register(r.Group("/"), authMW)

	api := r.Group("/api/v1", authMW)
	handlers.NewProfileHandler(engine, profiles, sessionsSvc, resolver).Register(api)
	handlers.NewRecommendHandler(catalog, engine, profiles).Register(api)

	handlers.RegisterSwagger(r)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Config summary: mongo=%v redis=%v jwt_secret_set=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.JWT.Secret != "")
	logger.Infof("Starting pathwise service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
