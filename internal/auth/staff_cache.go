package auth

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/bank-crm-service/internal/domain"
)

const staffCacheTTL = time.Minute

// StaffCache is a short-TTL read-through cache of staff directory lookups,
// keyed by the provider subject id. All methods are nil-safe so the service
// degrades to direct directory reads when Redis is not configured.
type StaffCache struct {
	client *redis.Client
}

// NewStaffCache wraps a redis client; client may be nil.
func NewStaffCache(client *redis.Client) *StaffCache {
	return &StaffCache{client: client}
}

func staffCacheKey(id string) string {
	return "staff:principal:" + id
}

// Get returns the cached staff record, if any.
func (c *StaffCache) Get(ctx context.Context, id string) (*domain.Staff, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, staffCacheKey(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var staff domain.Staff
	if err := json.Unmarshal(raw, &staff); err != nil {
		return nil, false
	}
	return &staff, true
}

// Put stores a staff record with the cache TTL.
func (c *StaffCache) Put(ctx context.Context, staff *domain.Staff) {
	if c == nil || c.client == nil || staff == nil {
		return
	}
	raw, err := json.Marshal(staff)
	if err != nil {
		return
	}
	c.client.Set(ctx, staffCacheKey(staff.ID), raw, staffCacheTTL)
}

// Invalidate drops a cached record after an update or deactivation.
func (c *StaffCache) Invalidate(ctx context.Context, id string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, staffCacheKey(id))
}
