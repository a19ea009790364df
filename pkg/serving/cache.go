package serving

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/carelens-ai/platform/pkg/common/logger"
	"github.com/carelens-ai/platform/pkg/common/models"
	"github.com/redis/go-redis/v9"
)

// cachedPivot is the cache envelope for one computed pivot. Rendering is
// not cached; it derives from the table in microseconds.
type cachedPivot struct {
	Table      models.PivotTable `json:"table"`
	Rejected   map[string]int    `json:"rejected,omitempty"`
	Fetched    int               `json:"fetched"`
	ComputedAt time.Time         `json:"computed_at"`
}

const generationKey = "pivot:generation"

// PivotCache keeps computed pivots in Redis. Keys embed a generation
// counter; invalidation bumps the counter instead of scanning for keys,
// and superseded entries simply age out on their TTL. A nil cache or an
// unreachable Redis degrades to computing every pivot fresh.
type PivotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPivotCache(client *redis.Client, ttl time.Duration) *PivotCache {
	return &PivotCache{client: client, ttl: ttl}
}

// Key builds the cache key for one pivot request. The patient selector is
// hashed because selectors can carry hundreds of IDs.
func (c *PivotCache) Key(ctx context.Context, kind string, patientIDs []string, maxRows int) string {
	selector := "all"
	if len(patientIDs) > 0 {
		ids := make([]string, len(patientIDs))
		copy(ids, patientIDs)
		sort.Strings(ids)
		sum := sha256.Sum256([]byte(strings.Join(ids, ",")))
		selector = hex.EncodeToString(sum[:8])
	}
	return fmt.Sprintf("pivot:%s:%s:%d:%s", c.generation(ctx), kind, maxRows, selector)
}

func (c *PivotCache) generation(ctx context.Context) string {
	if c == nil || c.client == nil {
		return "0"
	}
	gen, err := c.client.Get(ctx, generationKey).Result()
	if err != nil {
		return "0"
	}
	return gen
}

func (c *PivotCache) Get(ctx context.Context, key string) (*cachedPivot, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Log.WithError(err).Warn("pivot cache read failed")
		}
		return nil, false
	}

	var cached cachedPivot
	if err := json.Unmarshal([]byte(data), &cached); err != nil {
		logger.Log.WithError(err).Warn("pivot cache entry unreadable")
		return nil, false
	}
	return &cached, true
}

func (c *PivotCache) Set(ctx context.Context, key string, value cachedPivot) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.Log.WithError(err).Warn("pivot cache write failed")
	}
}

// Invalidate bumps the generation so every cached pivot goes stale at
// once. Called when new mention batches land.
func (c *PivotCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		logger.Log.WithError(err).Warn("pivot cache invalidation failed")
	}
}
