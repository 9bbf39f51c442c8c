package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	appsvc "toyboard/internal/app"
	"toyboard/internal/config"
	"toyboard/internal/model"
	"toyboard/internal/pkg/passwd"
	"toyboard/internal/platform/database"
	rabbitmqClient "toyboard/internal/platform/rabbitmq"
	redisClient "toyboard/internal/platform/redis"
	"toyboard/internal/repository"
	"toyboard/internal/repository/memrepo"
	"toyboard/internal/session"
	"toyboard/internal/worker"
)

type App struct {
	Config         *config.Config
	DB             *gorm.DB
	Redis          *redis.Client
	MQConn         *amqp.Connection
	ActivityWorker *worker.ActivityLogWorker
	Revocations    *session.RevocationList

	Members      *appsvc.MemberService
	Boards       *appsvc.BoardService
	BoardQueries *appsvc.BoardQueryService
	Comments     *appsvc.CommentService

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}
	return NewWithConfig(ctx, cfg)
}

// NewWithConfig connects the configured stores and builds the services.
// Redis and RabbitMQ are skipped when their address is empty.
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg, StartedAt: time.Now()}

	uow, activityLogs, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}

	var revoker appsvc.TokenRevoker
	if cfg.Redis.Addr != "" {
		a.Redis, err = redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.Revocations = session.NewRevocationList(a.Redis, cfg.TokenLifetime())
		revoker = a.Revocations
	} else {
		log.Printf("redis disabled: withdrawn members keep their tokens until expiry")
	}

	var publisher appsvc.ActivityPublisher
	if cfg.RabbitMQ.URL != "" {
		a.MQConn, err = rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		publisher = rabbitmqClient.NewActivityPublisher(a.MQConn, cfg.RabbitMQ.ActivityQueue)

		a.ActivityWorker = worker.NewActivityLogWorker(a.MQConn, activityLogs, cfg.RabbitMQ.ActivityQueue)
		if err := a.ActivityWorker.Start(ctx); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("start activity worker failed: %w", err)
		}
	} else {
		log.Printf("rabbitmq disabled: activity events are not recorded")
	}

	hasher := passwd.NewHasher(cfg.Auth.BcryptCost)
	guard := appsvc.NewGuard(hasher)
	a.Members = appsvc.NewMemberService(uow, hasher, revoker, publisher, cfg.Auth.JWTSecret, cfg.TokenLifetime())
	a.Boards = appsvc.NewBoardService(uow, hasher, guard, publisher)
	a.BoardQueries = appsvc.NewBoardQueryService(uow)
	a.Comments = appsvc.NewCommentService(uow, hasher, guard, publisher)

	return a, nil
}

func (a *App) openStore(ctx context.Context) (repository.UnitOfWork, repository.ActivityLogStore, error) {
	cfg := a.Config
	if cfg.Database.Driver == database.DriverMemory {
		log.Printf("using in-memory store: data is lost on restart")
		store := memrepo.New()
		return store, store.ActivityLogs(), nil
	}

	db, err := database.New(ctx, cfg.Database.Driver, cfg.DSN())
	if err != nil {
		return nil, nil, err
	}
	a.DB = db

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db, &model.Member{}, &model.Board{}, &model.Comment{}, &model.ActivityLog{}); err != nil {
			_ = a.Close()
			return nil, nil, err
		}
	}
	return repository.NewUnitOfWork(db), repository.NewActivityLogRepository(db), nil
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
