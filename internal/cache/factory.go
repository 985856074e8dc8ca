package cache

import (
	"api/internal/models"

	"go.uber.org/zap"
)

// New builds the configured cache. A nil return means no cache is
// configured; callers treat that as "rate limiting disabled".
func New(config models.CacheConfiguration) ICache {
	switch config.Type {
	case "redis", "valkey":
		c, err := newRueidisCache(
			config.Redis.Hosts,
			config.Redis.Password,
			config.Redis.TLSEnabled,
			config.Redis.TLSServerName,
			config.Type,
		)
		if err != nil {
			zap.L().Fatal("Failed to initialize cache", zap.Error(err))
		}
		return c
	case "":
		zap.L().Info("No cache configured, rate limiting disabled")
		return nil
	default:
		zap.L().Fatal("Unknown cache type", zap.String("type", config.Type))
		return nil
	}
}
