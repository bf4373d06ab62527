package config

import "time"

// CacheConfig defines settings for the prediction cache.  Caching is off
// unless CACHE_ENABLED is set; with no Redis client every prediction is
// computed.  TTL defines the lifetime of cache entries and Prefix
// namespaces the keys so several deployments can share one Redis database.
// KeySecret keys the HMAC that turns measurements into cache keys; replicas
// only share entries when they share the secret.
type CacheConfig struct {
	Enabled   bool
	TTL       time.Duration
	Prefix    string
	KeySecret string
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
	cfg := CacheConfig{
		Enabled:   envBool("CACHE_ENABLED", false),
		TTL:       envDur("CACHE_TTL", 10*time.Minute),
		Prefix:    envStr("CACHE_PREFIX", "prediction"),
		KeySecret: envStr("CACHE_KEY_SECRET", ""),
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 10 * time.Minute
	}
	return cfg
}
