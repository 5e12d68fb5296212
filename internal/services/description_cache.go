package services

import (
  "context"
  "errors"
  "os"
  "strings"
  "sync"
  "time"

  goredis "github.com/redis/go-redis/v9"

  "github.com/edusync/edusync-backend/internal/logger"
)

// DescriptionCache memoizes generated course descriptions. The catalog is
// immutable for the process lifetime, so entries never need invalidation.
type DescriptionCache interface {
  Get(ctx context.Context, key string) (string, bool)
  Set(ctx context.Context, key, value string)
}

type redisDescriptionCache struct {
  log *logger.Logger
  rdb *goredis.Client
  ttl time.Duration
}

// NewRedisDescriptionCache connects using REDIS_ADDR. Callers fall back to
// the in-memory cache when the env var is unset or the ping fails.
func NewRedisDescriptionCache(log *logger.Logger) (DescriptionCache, error) {
  addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
  if addr == "" {
    return nil, errMissingRedisAddr
  }

  rdb := goredis.NewClient(&goredis.Options{
    Addr:        addr,
    DialTimeout: 5 * time.Second,
  })
  ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
  defer cancel()
  if err := rdb.Ping(ctx).Err(); err != nil {
    return nil, err
  }
  return &redisDescriptionCache{
    log: log.With("service", "RedisDescriptionCache"),
    rdb: rdb,
    ttl: 24 * time.Hour,
  }, nil
}

var errMissingRedisAddr = errors.New("missing REDIS_ADDR")

func (rc *redisDescriptionCache) Get(ctx context.Context, key string) (string, bool) {
  val, err := rc.rdb.Get(ctx, "course_description:"+key).Result()
  if err != nil {
    if err != goredis.Nil {
      rc.log.Warn("Redis get failed", "key", key, "error", err)
    }
    return "", false
  }
  return val, true
}

func (rc *redisDescriptionCache) Set(ctx context.Context, key, value string) {
  if err := rc.rdb.Set(ctx, "course_description:"+key, value, rc.ttl).Err(); err != nil {
    rc.log.Warn("Redis set failed", "key", key, "error", err)
  }
}

type memoryDescriptionCache struct {
  mu      sync.RWMutex
  entries map[string]string
}

func NewMemoryDescriptionCache() DescriptionCache {
  return &memoryDescriptionCache{entries: make(map[string]string)}
}

func (mc *memoryDescriptionCache) Get(ctx context.Context, key string) (string, bool) {
  mc.mu.RLock()
  defer mc.mu.RUnlock()
  val, ok := mc.entries[key]
  return val, ok
}

func (mc *memoryDescriptionCache) Set(ctx context.Context, key, value string) {
  mc.mu.Lock()
  defer mc.mu.Unlock()
  mc.entries[key] = value
}
