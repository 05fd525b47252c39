package cache

import (
	"context"
	"fmt"

	"artwalk-api/core/logger"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

var client *redis.Client

// GetRedis returns the process-wide redis client. Nil until InitRedis runs;
// callers treat a nil client as "cache disabled".
func GetRedis() *redis.Client {
	return client
}

func InitRedis(config RedisConfig) (*redis.Client, error) {
	logger.Info("Initializing redis...", "addr", config.Addr, "db", config.DB)

	c := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	if err := c.Ping(context.Background()).Err(); err != nil {
		logger.Error("Failed to ping redis", "error", err)
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	client = c
	logger.Info("Redis initialized successfully")
	return c, nil
}
