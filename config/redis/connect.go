package redis

import (
	"studio-notify/config"
	pkgRedis "studio-notify/pkg/redis"
)

var client *pkgRedis.Client

// Connect initializes and returns a Redis client.
func Connect(cfg config.RedisConfig) (*pkgRedis.Client, error) {
	var err error
	client, err = pkgRedis.New(pkgRedis.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		return nil, err
	}

	return client, nil
}

// Disconnect closes the Redis connection.
func Disconnect() error {
	if client != nil {
		return client.Close()
	}
	return nil
}
