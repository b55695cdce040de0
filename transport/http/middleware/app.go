package middleware

import (
	"agenda/config"
	"agenda/shared/cache"
)

// AppMiddleware carries the cross-cutting middleware that is not tied to a
// session: rate limiting backed by the shared Redis cache.
type AppMiddleware struct {
	config *config.Config
	cache  cache.RedisCache
}

func NewAppMiddleware(config *config.Config, cache cache.RedisCache) *AppMiddleware {
	return &AppMiddleware{
		config: config,
		cache:  cache,
	}
}
