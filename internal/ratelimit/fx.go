package ratelimit

import (
	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/smartcenter/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("ratelimit",
	fx.Provide(func(cfg config.Config) *redis.Client {
		if cfg.RedisAddr == "" {
			return nil
		}
		return redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
	}),
	fx.Provide(NewLocker),
)
