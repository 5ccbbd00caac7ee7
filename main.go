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

	"github.com/standupbot/standup-services/handlers"
	"github.com/standupbot/standup-services/internal/archive"
	"github.com/standupbot/standup-services/internal/config"
	"github.com/standupbot/standup-services/internal/database"
	"github.com/standupbot/standup-services/internal/notify"
	"github.com/standupbot/standup-services/internal/standup"
	"github.com/standupbot/standup-services/pkg/logger"
	"github.com/standupbot/standup-services/pkg/metrics"
	"github.com/standupbot/standup-services/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging level is controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: backend=%s slack=%v redis=%v archive=%v",
		cfg.Store.Backend, !cfg.Slack.Disabled, cfg.Redis.Host != "", cfg.Archive.Endpoint != "")

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple; production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	r.Use(gin.Logger(), gin.Recovery())

	// Connect to Redis early so the rate limiter and the Slack directory cache
	// can share the client when configured.
	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			rdb = nil
		} else {
			logger.Infof("connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Optional global rate limiter (per-caller when authenticated, otherwise per-IP)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Select the standup record store backend.
	ctx := context.Background()
	var repo standup.Repository
	switch cfg.Store.Backend {
	case config.BackendAirtable:
		repo = standup.NewAirtableRepo(cfg.Airtable.APIKey, cfg.Airtable.BaseID, cfg.Airtable.TableName)
		logger.Infof("using Airtable store (base=%s table=%s)", cfg.Airtable.BaseID, cfg.Airtable.TableName)
	case config.BackendMongo:
		// Retry/backoff when connecting to MongoDB to tolerate startup races
		const maxAttempts = 5
		backoff := time.Second
		var client *mongo.Client
		var errConn error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			client, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
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
			logger.Fatalf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
		}
		defer func() { _ = client.Disconnect(ctx) }()
		repo = standup.NewMongoRepo(client.Database(cfg.MongoDB.Database).Collection("standups"))
		logger.Infof("using MongoDB store (db=%s)", cfg.MongoDB.Database)
	case config.BackendMemory:
		repo = standup.NewMemoryRepo()
		logger.Warnf("using in-memory store; submissions will not survive a restart")
	}

	// Slack notifier (optional). The Redis client, when available, caches
	// email -> Slack user id lookups.
	var slackNotifier *notify.SlackNotifier
	var notifySvc *notify.Service
	if !cfg.Slack.Disabled {
		slackNotifier = notify.NewSlackNotifier(cfg.Slack.APIToken, cfg.Slack.ScrumMasterEmail, rdb)
		notifySvc = notify.NewService(slackNotifier)
	} else {
		logger.Warnf("notifications are disabled; reminders and confirmations will not be sent")
	}

	// confirmer is nil when Slack is off; submission confirmations are then skipped
	var confirmer standup.Confirmer
	if slackNotifier != nil {
		confirmer = slackNotifier
	}
	svc := standup.NewService(repo, confirmer, standup.ReportOptions{
		Roster:          cfg.Report.Roster,
		FoldBlockerCase: cfg.Report.FoldBlockerCase,
	})

	// Scheduled reminders: fan the default reminder out to the roster on a cron spec.
	var scheduler *notify.Scheduler
	if cfg.Reminder.Cron != "" && notifySvc != nil && len(cfg.Report.Roster) > 0 {
		scheduler, err = notify.NewScheduler(notifySvc, cfg.Reminder.Cron, cfg.Report.Roster)
		if err != nil {
			logger.Fatalf("invalid REMINDER_CRON %q: %v", cfg.Reminder.Cron, err)
		}
		scheduler.Start()
		defer scheduler.Stop()
		logger.Infof("reminder scheduler running (%s, %d recipients)", cfg.Reminder.Cron, len(cfg.Report.Roster))
	}

	// Report archival to MinIO (optional).
	var archiver *archive.Archiver
	if cfg.Archive.Endpoint != "" {
		archiver, err = archive.New(&archive.Config{
			Endpoint:  cfg.Archive.Endpoint,
			AccessKey: cfg.Archive.AccessKey,
			SecretKey: cfg.Archive.SecretKey,
			UseSSL:    cfg.Archive.UseSSL,
			Bucket:    cfg.Archive.Bucket,
		})
		if err != nil {
			logger.Warnf("report archival disabled: %v", err)
			archiver = nil
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness: 200 only when critical dependencies are available
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		deps["store"] = repo != nil
		if repo == nil {
			ready = false
		}
		deps["notifier"] = cfg.Slack.Disabled || slackNotifier != nil
		if !deps["notifier"] {
			ready = false
		}
		if cfg.Redis.Host != "" && cfg.RateLimit.UseRedis {
			deps["redis"] = rdb != nil
			if rdb == nil {
				ready = false
			}
		} else {
			deps["redis"] = true
		}

		status := http.StatusOK
		label := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			label = "not_ready"
		}
		c.JSON(status, gin.H{"status": label, "deps": deps, "uptime": fmt.Sprintf("%s", time.Since(startTime))})
	})

	// API routes; protected by JWT bearer auth when a secret is configured.
	api := r.Group("/api")
	if cfg.JWT.Secret != "" {
		api.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	} else {
		logger.Warnf("JWT_SECRET not set; API endpoints are unauthenticated")
	}
	h := handlers.NewStandupHandler(svc, notifySvc, archiver)
	h.Register(api)

	handlers.RegisterSwagger(r)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting standup service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
