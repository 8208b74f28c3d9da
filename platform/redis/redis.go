package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"doc_processing_backend/config"
	"doc_processing_backend/pkg/logging"
)

type Service struct {
	Rdb *redis.Client
}

func InitRedis(cfg *config.Config) (*Service, error) {
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("empty redis url")
	}
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("could not parse Redis URL: %w", err)
	}
	if cfg.RedisPassword != "" {
		opt.Password = cfg.RedisPassword
	}
	rdb := redis.NewClient(opt)

	testCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := rdb.Ping(testCtx).Err(); err != nil {
		return nil, fmt.Errorf("could not connect to Redis: %w", err)
	}
	logging.Logger.Info("connected to redis")
	return &Service{Rdb: rdb}, nil
}

func (s *Service) Close() error {
	return s.Rdb.Close()
}
