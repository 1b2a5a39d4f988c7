package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"intelimed/internal/ai"
	"intelimed/internal/app"
	"intelimed/internal/cache"
	"intelimed/internal/config"
	"intelimed/internal/observability"
	mysqlClient "intelimed/internal/platform/mysql"
	rabbitmqClient "intelimed/internal/platform/rabbitmq"
	redisClient "intelimed/internal/platform/redis"
	sqliteClient "intelimed/internal/platform/sqlite"
	"intelimed/internal/repository"
	"intelimed/internal/repository/memory"
	"intelimed/internal/worker"
)

type App struct {
	Config *config.Config
	// DB is nil for the memory driver.
	DB     *gorm.DB
	Redis  *redis.Client
	MQConn *amqp.Connection

	Stores         app.Stores
	LLM            app.LLMClient
	AlertPublisher app.RiskAlertPublisher
	AlertWorker    *worker.RiskAlertWorker

	StartedAt time.Time
}

// New loads configuration and connects everything it enables.
func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}
	return NewWithConfig(ctx, cfg)
}

func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{
		Config:    cfg,
		LLM:       ai.NewOpenAICompatibleClient(),
		StartedAt: time.Now(),
	}
	log := observability.Logger()

	if err := a.openStores(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	log.Info("storage ready", "driver", cfg.Storage.Driver)

	if cfg.Redis.Enabled {
		redisCli, err := redisClient.New(ctx, cfg.Redis)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.Redis = redisCli
		historyCache := cache.NewHistoryCache(
			redisCli,
			time.Duration(cfg.Redis.HistoryTTLSeconds)*time.Second,
			time.Duration(cfg.Redis.HistoryDirtyTTLSeconds)*time.Second,
		)
		a.Stores.Chat = cache.NewChatMessageStore(a.Stores.Chat, historyCache)
		log.Info("chat history cache enabled", "addr", cfg.Redis.Addr)
	}

	if cfg.RabbitMQ.Enabled {
		mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.RiskAlertQueue)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.MQConn = mqConn
		a.AlertPublisher = rabbitmqClient.NewRiskAlertPublisher(mqConn, cfg.RabbitMQ.RiskAlertQueue)

		contacts := app.NewEmergencyContactService(a.Stores.Contacts)
		a.AlertWorker = worker.NewRiskAlertWorker(mqConn, contacts, worker.LogNotifier{}, cfg.RabbitMQ.RiskAlertQueue)
		if err := a.AlertWorker.Start(ctx); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("start risk alert worker failed: %w", err)
		}
		log.Info("risk alerts enabled", "queue", cfg.RabbitMQ.RiskAlertQueue)
	}

	return a, nil
}

func (a *App) openStores(ctx context.Context) error {
	var (
		db  *gorm.DB
		err error
	)
	switch a.Config.Storage.Driver {
	case config.StorageMemory:
		a.Stores = memory.NewStores()
		return nil
	case config.StorageSQLite:
		db, err = sqliteClient.New(ctx, a.Config.SQLite.Path)
	case config.StorageMySQL:
		db, err = mysqlClient.New(ctx, a.Config.MySQLDSN())
	default:
		return fmt.Errorf("unsupported storage driver %q", a.Config.Storage.Driver)
	}
	if err != nil {
		return err
	}
	a.DB = db
	if err := repository.AutoMigrate(db); err != nil {
		return err
	}
	a.Stores = repository.NewStores(db)
	return nil
}

// ChatLLMConfig is the upstream configuration for conversational replies.
func (a *App) ChatLLMConfig() ai.ChatConfig {
	return ai.ChatConfig{
		BaseURL: a.Config.LLM.BaseURL,
		APIKey:  a.Config.LLM.APIKey,
		Model:   a.Config.LLM.ChatModel,
	}
}

// AnalysisLLMConfig is the upstream configuration for risk analysis.
func (a *App) AnalysisLLMConfig() ai.ChatConfig {
	return ai.ChatConfig{
		BaseURL: a.Config.LLM.BaseURL,
		APIKey:  a.Config.LLM.APIKey,
		Model:   a.Config.LLM.AnalysisModel,
	}
}

func (a *App) Close() error {
	var closeErr error
	if a.AlertWorker != nil {
		a.AlertWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
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
