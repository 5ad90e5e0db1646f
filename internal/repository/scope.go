// Package repository holds the tenant-scoped data access layer. Every query
// entry point takes the tenant context explicitly; there is no way to build a
// scoped query without one.
package repository

import (
	"context"

	"gorm.io/gorm"

	"go-backoffice/internal/tenant"
)

// scoped is the single entry point for tenant-scoped queries: it attaches the
// tenant context for the audit hooks and composes the tenant predicate first,
// before any caller-supplied condition.
func scoped(ctx context.Context, db *gorm.DB, tc tenant.Context) *gorm.DB {
	return db.WithContext(tenant.NewContext(ctx, tc)).Where("tenant_id = ?", tc.TenantID)
}

// AdminSession is the explicit escape hatch for operator tooling that must see
// rows across tenants (password-reset CLI). Ordinary service code never calls
// it.
func AdminSession(ctx context.Context, db *gorm.DB, tc tenant.Context) *gorm.DB {
	return db.WithContext(tenant.NewContext(ctx, tc))
}
