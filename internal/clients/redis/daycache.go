package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/vilafit/coachplan-backend/internal/logger"
	"github.com/vilafit/coachplan-backend/internal/utils"
)

// DayCache holds serialized day-detail views so repeated reads of the same
// date skip the database. A cascade invalidates every date it rewrote.
type DayCache interface {
	Get(ctx context.Context, clientID uuid.UUID, date string) ([]byte, bool, error)
	Set(ctx context.Context, clientID uuid.UUID, date string, payload []byte) error
	InvalidateDayDetails(ctx context.Context, clientID uuid.UUID, dates []string) error
	Close() error
}

type dayCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewDayCache(log *logger.Logger) (DayCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(utils.GetEnv("REDIS_ADDR", "", log))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ttlSeconds := utils.GetEnvAsInt("DAY_CACHE_TTL", 900, log)

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &dayCache{
		log: log.With("service", "RedisDayCache"),
		rdb: rdb,
		ttl: time.Duration(ttlSeconds) * time.Second,
	}, nil
}

func cacheKey(clientID uuid.UUID, date string) string {
	return fmt.Sprintf("daydetail:%s:%s", clientID, date)
}

func (c *dayCache) Get(ctx context.Context, clientID uuid.UUID, date string) ([]byte, bool, error) {
	if c == nil || c.rdb == nil {
		return nil, false, fmt.Errorf("day cache not initialized")
	}
	raw, err := c.rdb.Get(ctx, cacheKey(clientID, date)).Bytes()
	if err == goredis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (c *dayCache) Set(ctx context.Context, clientID uuid.UUID, date string, payload []byte) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("day cache not initialized")
	}
	return c.rdb.Set(ctx, cacheKey(clientID, date), payload, c.ttl).Err()
}

func (c *dayCache) InvalidateDayDetails(ctx context.Context, clientID uuid.UUID, dates []string) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("day cache not initialized")
	}
	if len(dates) == 0 {
		return nil
	}
	keys := make([]string, 0, len(dates))
	for _, d := range dates {
		keys = append(keys, cacheKey(clientID, d))
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return err
	}
	c.log.Debug("Invalidated day detail cache", "client_id", clientID, "dates", len(dates))
	return nil
}

func (c *dayCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
