// Package cache holds the Redis-backed permission-set cache. The cache is an
// optional collaborator: a nil *PermissionCache degrades every call to a
// no-op so services work without a Redis deployment.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"go-backoffice/internal/model"
	"go-backoffice/internal/tenant"
)

const permissionTTL = 5 * time.Minute

type PermissionCache struct {
	client *redis.Client
}

func NewPermissionCache(client *redis.Client) *PermissionCache {
	if client == nil {
		return nil
	}
	return &PermissionCache{client: client}
}

func permissionKey(tc tenant.Context, cdUsuario string) string {
	return fmt.Sprintf("perm:%d:%s", tc.TenantID, cdUsuario)
}

// Get returns the cached permission set, or ok=false on miss or any Redis
// failure. Cache trouble is never an error the caller should see.
func (c *PermissionCache) Get(ctx context.Context, tc tenant.Context, cdUsuario string) ([]model.Permission, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, permissionKey(tc, cdUsuario)).Bytes()
	if err != nil {
		return nil, false
	}
	var perms []model.Permission
	if err := json.Unmarshal(raw, &perms); err != nil {
		return nil, false
	}
	return perms, true
}

// Put stores the permission set for a short TTL.
func (c *PermissionCache) Put(ctx context.Context, tc tenant.Context, cdUsuario string, perms []model.Permission) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(perms)
	if err != nil {
		return
	}
	c.client.Set(ctx, permissionKey(tc, cdUsuario), raw, permissionTTL)
}

// Invalidate drops the cached set after a membership or grant write.
func (c *PermissionCache) Invalidate(ctx context.Context, tc tenant.Context, cdUsuario string) {
	if c == nil {
		return
	}
	c.client.Del(ctx, permissionKey(tc, cdUsuario))
}
