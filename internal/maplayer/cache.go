package maplayer

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"sistem-desa/internal/logger"
	"sistem-desa/internal/metrics"
)

const keyPrefix = "desa:peta:"

// Cache menyimpan hasil render layer di redis. Cache dengan client nil tidak menyimpan apa pun.
type Cache struct {
	rc  *redis.Client
	ttl time.Duration
}

func NewCache(rc *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{rc: rc, ttl: ttl}
}

// Key membentuk kunci redis untuk satu layer dan variannya (misalnya "point" atau "polygon").
func Key(layer, variant string) string {
	if variant == "" {
		variant = "default"
	}
	return keyPrefix + layer + ":" + variant
}

func (c *Cache) Enabled() bool {
	return c != nil && c.rc != nil
}

func (c *Cache) Get(ctx context.Context, layer, variant string) ([]byte, bool) {
	if !c.Enabled() {
		return nil, false
	}
	b, err := c.rc.Get(ctx, Key(layer, variant)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log := logger.For("maplayer")
			log.Warn().Err(err).Str(logger.LAYER, layer).Msg("gagal membaca cache peta")
		}
		metrics.MapCacheMissesTotal.Inc()
		return nil, false
	}
	metrics.MapCacheHitsTotal.Inc()
	return b, true
}

func (c *Cache) Set(ctx context.Context, layer, variant string, data []byte) {
	if !c.Enabled() {
		return
	}
	if err := c.rc.Set(ctx, Key(layer, variant), data, c.ttl).Err(); err != nil {
		log := logger.For("maplayer")
		log.Warn().Err(err).Str(logger.LAYER, layer).Msg("gagal menyimpan cache peta")
	}
}

// Invalidate menghapus semua varian layer beserta layer gabungan "semua".
func (c *Cache) Invalidate(ctx context.Context, layer string) {
	if !c.Enabled() {
		return
	}
	layers := []string{layer}
	if layer != LayerSemua {
		layers = append(layers, LayerSemua)
	}
	for _, l := range layers {
		if err := c.deletePattern(ctx, keyPrefix+l+":*"); err != nil {
			log := logger.For("maplayer")
			log.Warn().Err(err).Str(logger.LAYER, l).Msg("gagal menghapus cache peta")
		}
	}
}

func (c *Cache) deletePattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, next, err := c.rc.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rc.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
