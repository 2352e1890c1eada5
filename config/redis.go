package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"sistem-desa/internal/logger"
)

// OpenRedis membuka client redis untuk cache peta. REDIS_HOST kosong berarti cache dimatikan (nil).
func OpenRedis(cfg Config) *redis.Client {
	if cfg.RedisHost == "" {
		return nil
	}
	addr := cfg.RedisHost + ":" + cfg.RedisPort
	rc := redis.NewClient(&redis.Options{Addr: addr, Password: cfg.RedisPass, DB: cfg.RedisDB})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	log := logger.For("config")
	if err := rc.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", addr).Msg("redis belum bisa dihubungi, cache peta dilewati sampai tersedia")
	} else {
		log.Info().Str("addr", addr).Int("db", cfg.RedisDB).Msg("redis terhubung")
	}
	return rc
}
