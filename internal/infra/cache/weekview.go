package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCache возвращается при ошибках работы с Redis
var ErrCache = errors.New("cache: redis operation failed")

// WeekViewCache кэш собранного недельного вида в Redis.
// Хранит готовый JSON, ключ — дата начала недели. Инвалидируется при
// создании бронирования, отмене и сбросе недели; TTL страхует от
// пропущенной инвалидации.
type WeekViewCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewWeekViewCache создает кэш недельного вида
func NewWeekViewCache(client *redis.Client, ttl time.Duration) *WeekViewCache {
	return &WeekViewCache{client: client, ttl: ttl}
}

func (c *WeekViewCache) key(weekStart string) string {
	return "weekview:" + weekStart
}

// Get возвращает закэшированный вид недели.
// Второй результат false означает cache miss.
func (c *WeekViewCache) Get(ctx context.Context, weekStart string) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, c.key(weekStart)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: Get %s: %v", ErrCache, weekStart, err)
	}
	return payload, true, nil
}

// Set сохраняет вид недели с настроенным TTL
func (c *WeekViewCache) Set(ctx context.Context, weekStart string, payload []byte) error {
	if err := c.client.Set(ctx, c.key(weekStart), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set %s: %v", ErrCache, weekStart, err)
	}
	return nil
}

// Invalidate удаляет закэшированный вид недели
func (c *WeekViewCache) Invalidate(ctx context.Context, weekStart string) error {
	if err := c.client.Del(ctx, c.key(weekStart)).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate %s: %v", ErrCache, weekStart, err)
	}
	return nil
}
