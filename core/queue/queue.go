package queue

import (
	"artwalk-api/core/logger"

	"github.com/hibiken/asynq"
)

type QueueConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

var client *asynq.Client

// GetClient returns the process-wide asynq client. Nil until InitQueue runs;
// callers treat a nil client as "background dispatch disabled".
func GetClient() *asynq.Client {
	return client
}

func InitQueue(config QueueConfig) *asynq.Client {
	client = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})
	logger.Info("Task queue client initialized", "addr", config.RedisAddr)
	return client
}

// NewServer builds the worker side of the queue. The caller registers task
// handlers on a mux and runs it alongside the HTTP server.
func NewServer(config QueueConfig) *asynq.Server {
	return asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     config.RedisAddr,
			Password: config.RedisPassword,
			DB:       config.RedisDB,
		},
		asynq.Config{
			Concurrency: 5,
		},
	)
}
