package kvstore

import (
	"github.com/glebarez/sqlite"
	redis "github.com/redis/go-redis/v9"
	"github.com/tourbase/tourbase/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewFromConfig selects the store backend from configuration.
func NewFromConfig(cfg config.Config, log *zap.Logger) (Store, error) {
	switch cfg.StoreBackend {
	case config.StoreBackendMemory:
		log.Info("kvstore backend", zap.String("backend", "memory"))
		return NewMemoryStore(), nil
	case config.StoreBackendRedis:
		log.Info("kvstore backend",
			zap.String("backend", "redis"),
			zap.String("addr", cfg.RedisAddr),
		)
		client := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		})
		return NewRedisStore(client)
	default:
		log.Info("kvstore backend",
			zap.String("backend", "sqlite"),
			zap.String("path", cfg.StorePath),
		)
		db, err := gorm.Open(sqlite.Open(cfg.StorePath), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		return NewGormStore(db)
	}
}

// Module wires the configured key/value store.
var Module = fx.Module("kvstore",
	fx.Provide(NewFromConfig),
)
