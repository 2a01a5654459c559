package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sagacious/sagacious/handlers"
	"github.com/sagacious/sagacious/internal/auth"
	"github.com/sagacious/sagacious/internal/config"
	"github.com/sagacious/sagacious/internal/database"
	"github.com/sagacious/sagacious/internal/note"
	"github.com/sagacious/sagacious/internal/storage"
	"github.com/sagacious/sagacious/internal/tokens"
	"github.com/sagacious/sagacious/pkg/logger"
	"github.com/sagacious/sagacious/pkg/metrics"
	"github.com/sagacious/sagacious/pkg/middleware"
	"github.com/sagacious/sagacious/pkg/model"
	"github.com/sagacious/sagacious/pkg/web"
)

var startTime = time.Now()

func main() {
	// log level controlled with LOG_LEVEL (debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v oidc=%v jwt=%v",
		cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.OIDC.Issuer != "", cfg.JWT.Secret != "")

	server := web.New()
	server.SetHost(cfg.Server.Host)
	server.SetPort(cfg.Server.Port)
	server.Use(gin.Logger())

	ctx := context.Background()

	// Redis is optional; it backs the record cache and the distributed
	// rate limiter when reachable.
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		rc := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rc.Ping(ctx).Err(); err != nil {
			logger.Warnf("redis unreachable (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
		} else {
			redisClient = rc
			logger.Infof("connected to redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			server.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			server.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Persistence: MongoDB when configured, in-memory store otherwise.
	var store model.Store
	var mongoClient *mongo.Client
	if cfg.MongoDB.URI != "" {
		client, err := database.Connect(ctx, cfg.MongoDB)
		if err != nil {
			logger.Warnf("could not connect to MongoDB: %v", err)
		} else {
			mongoClient = client
			defer func() { _ = mongoClient.Disconnect(ctx) }()
			store = model.NewMongoStore(mongoClient)
			logger.Infof("using MongoDB store (database %s)", cfg.MongoDB.Database)
		}
	}
	if store == nil {
		store = model.NewMemoryStore()
		logger.Warn("using in-memory store; data will not survive restarts")
	}
	if redisClient != nil {
		store = model.NewCachedStore(store, redisClient, cfg.Cache.Prefix, cfg.Cache.TTL)
		logger.Infof("record cache enabled (prefix %q, ttl %s)", cfg.Cache.Prefix, cfg.Cache.TTL)
	}

	repo := model.NewRepository(store, model.NewBinding(cfg.MongoDB.Database, "notes"))
	noteSvc := note.NewService(repo)

	// Attachments live in MinIO when an endpoint is configured.
	var blobs *storage.BlobStore
	if cfg.MinIO.Endpoint != "" {
		blobs, err = storage.NewBlobStore(cfg.MinIO)
		if err != nil {
			logger.Warnf("blob storage unavailable: %v", err)
			blobs = nil
		} else {
			logger.Infof("blob storage ready (bucket %s)", cfg.MinIO.Bucket)
		}
	}

	handlers.NewNoteHandler(noteSvc, blobs).Register(server)
	handlers.RegisterSwagger(server.Engine())

	// Token verification: shared-secret JWT first, OIDC discovery second,
	// unsigned tokens only under explicit opt-in for integration tests.
	var verifier middleware.Verifier
	switch {
	case cfg.JWT.Secret != "":
		verifier = tokens.NewVerifier(cfg.JWT.Secret)
		logger.Info("token verification: HS256 shared secret")
	case cfg.OIDC.Issuer != "":
		v, err := auth.NewOIDCVerifier(ctx, cfg.OIDC.Issuer, cfg.OIDC.ClientID)
		if err != nil {
			logger.Warnf("failed to initialize OIDC verifier: %v", err)
		} else {
			verifier = v
			logger.Infof("token verification: OIDC issuer %s", cfg.OIDC.Issuer)
		}
	case strings.EqualFold(strings.TrimSpace(os.Getenv("ALLOW_INSECURE_TOKEN")), "true"):
		verifier = auth.NewInsecureVerifier()
		logger.Warn("token verification DISABLED: accepting unsigned tokens (integration mode)")
	}

	api := server.Engine().Group("/api")
	if verifier != nil {
		api.GET("/me", middleware.AuthMiddleware(verifier), func(c *gin.Context) {
			claims, _ := c.Get("claims")
			c.JSON(http.StatusOK, gin.H{"claims": claims})
		})
	} else {
		api.GET("/me", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "token verification not configured"})
		})
	}

	server.Engine().GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	server.Engine().GET("/ready", func(c *gin.Context) {
		ready := true
		deps := gin.H{}

		// storage is always available (memory fallback), flag the backend
		deps["mongodb"] = mongoClient != nil
		if cfg.MongoDB.URI != "" && mongoClient == nil {
			ready = false
		}

		if cfg.Redis.Host != "" {
			deps["redis"] = redisClient != nil
			if redisClient == nil && cfg.RateLimit.UseRedis {
				ready = false
			}
		}

		deps["blobs"] = blobs != nil

		status := http.StatusOK
		label := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			label = "not_ready"
		}
		c.JSON(status, gin.H{"status": label, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	server.Engine().GET("/metrics", gin.WrapH(promhttp.Handler()))

	logger.Infof("starting notes service on %s:%d", cfg.Server.Host, cfg.Server.Port)
	if err := server.Run(); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
