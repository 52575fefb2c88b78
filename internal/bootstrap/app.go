package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"blogapi/internal/config"
	"blogapi/internal/pkg/logger"
	"blogapi/internal/platform/database"
	rabbitmqClient "blogapi/internal/platform/rabbitmq"
	redisClient "blogapi/internal/platform/redis"
	"blogapi/internal/repository"
	"blogapi/internal/worker"
)

// App holds the process-wide resources. Redis and MQConn are nil when their
// addresses are not configured.
type App struct {
	Config         *config.Config
	Logger         *slog.Logger
	DB             *gorm.DB
	Redis          *redis.Client
	MQConn         *amqp.Connection
	ActivityWorker *worker.ActivityWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}
	log := logger.New(cfg.App.Env, cfg.Log.Level, cfg.Log.Format)

	app := &App{
		Config:    cfg,
		Logger:    log,
		StartedAt: time.Now(),
	}

	db, err := database.New(ctx, cfg.Database.URL, database.PoolConfig{
		MaxIdleConns: cfg.Database.MaxIdleConns,
		MaxOpenConns: cfg.Database.MaxOpenConns,
	})
	if err != nil {
		return nil, err
	}
	app.DB = db
	if err := database.AutoMigrate(db); err != nil {
		_ = app.Close()
		return nil, err
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.Redis = redisCli
	if redisCli == nil {
		log.Warn("redis disabled: post list cache and token revocation are off")
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.MQConn = mqConn
	if mqConn == nil {
		log.Warn("rabbitmq disabled: content events are not published")
		return app, nil
	}

	activityRepo := repository.NewActivityRepository(db)
	activityWorker := worker.NewActivityWorker(mqConn, activityRepo, cfg.RabbitMQ.ActivityQueue, log)
	if err := activityWorker.Start(ctx); err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("start activity worker failed: %w", err)
	}
	app.ActivityWorker = activityWorker

	return app, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.ActivityWorker != nil {
		a.ActivityWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
