package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-backoffice/internal/tenant"
)

// BaseModel carries identity, tenant ownership and audit trails for every
// persisted entity. TenantID, CreatedAt and CreatedBy are write-once: they are
// set on insert and never touched again, even if the in-memory struct was
// mutated before an update.
type BaseModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TenantID int64     `gorm:"column:tenant_id;not null;index" json:"tenantId"`

	CreatedAt time.Time  `gorm:"autoCreateTime:false" json:"createdAt"`
	CreatedBy string     `json:"createdBy"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
	UpdatedBy *string    `json:"updatedBy"`

	Ativo bool `gorm:"default:true" json:"ativo"`
}

// BeforeCreate stamps the audit fields and assigns the tenant from the request
// context. A missing tenant context rejects the write before any SQL runs.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	tc, ok := tenant.FromContext(tx.Statement.Context)
	if !ok || !tc.Valid() {
		return tenant.ErrNoTenant
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.CreatedAt = time.Now().UTC()
	b.CreatedBy = tc.Actor
	if b.TenantID == 0 {
		b.TenantID = tc.TenantID
	}
	return nil
}

// BeforeUpdate stamps the update audit fields and pins the write-once columns
// so a mutated struct cannot overwrite them.
func (b *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	tc, ok := tenant.FromContext(tx.Statement.Context)
	if !ok || !tc.Valid() {
		return tenant.ErrNoTenant
	}
	now := time.Now().UTC()
	actor := tc.Actor
	b.UpdatedAt = &now
	b.UpdatedBy = &actor
	tx.Statement.Omits = append(tx.Statement.Omits, "created_at", "created_by", "tenant_id")
	return nil
}
