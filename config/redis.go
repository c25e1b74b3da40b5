package config

import (
	"Squadup/logging"
	"Squadup/services/redis"
)

// ConnectRedis opens the Redis connection described by cfg.RedisURL.
func ConnectRedis(cfg *AppConfig) (*redis.RedisClient, error) {
	redisClient, err := redis.InitRedis(cfg.RedisURL, 0)
	if err != nil {
		return nil, err
	}
	logging.Info().Msg("Redis connection established")
	return redisClient, nil
}
