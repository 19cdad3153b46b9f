package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/davidbz/promptgate/internal/domain"
	"github.com/davidbz/promptgate/internal/observability"
)

const sidecarKeySuffix = ":config"

// StringGetter is the subset of the Redis client the store needs.
type StringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisStore loads a template stored as a string value, with the sidecar
// record under the same key suffixed by ":config".
type RedisStore struct {
	client StringGetter
	key    string
}

// NewRedisStore creates a store reading key through client.
func NewRedisStore(client StringGetter, key string) *RedisStore {
	return &RedisStore{
		client: client,
		key:    key,
	}
}

// Load fetches the template and optional sidecar.
func (s *RedisStore) Load(ctx context.Context) (*domain.PromptTemplate, error) {
	logger := observability.FromContext(ctx)

	text, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("prompt template key %s not found", s.key)
		}
		return nil, fmt.Errorf("failed to read prompt template %s: %w", s.key, err)
	}

	var opts []domain.TemplateOption

	sidecarKey := s.key + sidecarKeySuffix
	data, err := s.client.Get(ctx, sidecarKey).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		logger.Debug("no prompt config found", observability.String("key", sidecarKey))
	case err != nil:
		return nil, fmt.Errorf("failed to read prompt config %s: %w", sidecarKey, err)
	default:
		opts, err = parseSidecar(data)
		if err != nil {
			return nil, err
		}
	}

	tmpl, err := domain.NewPromptTemplate(s.key, text, opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid prompt template %s: %w", s.key, err)
	}

	logger.Info("prompt template loaded",
		observability.String("template", s.key),
		observability.String("source", "redis"),
		observability.Int("length", len(text)))

	return tmpl, nil
}
