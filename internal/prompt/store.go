// Package prompt loads the prompt template the gateway renders. Templates
// live either in a prompt directory on disk or in Redis.
package prompt

import (
	"github.com/redis/go-redis/v9"

	"github.com/davidbz/promptgate/internal/domain"
)

// NewStore returns the template store selected by cfg. The cleanup function
// releases any connection the store holds.
func NewStore(cfg *Config) (domain.TemplateStore, func() error) {
	if cfg.RedisAddr == "" {
		return NewFileStore(cfg.Dir), func() error { return nil }
	}

	//nolint:exhaustruct // redis options have many optional fields
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	return NewRedisStore(client, cfg.RedisKey), client.Close
}
