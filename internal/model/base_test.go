package model

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-backoffice/internal/tenant"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Sistema{}))
	return db
}

func tenantDB(db *gorm.DB, tc tenant.Context) *gorm.DB {
	return db.WithContext(tenant.NewContext(context.Background(), tc))
}

func TestBeforeCreateStampsAuditFields(t *testing.T) {
	db := openTestDB(t)
	tc := tenant.Context{TenantID: 7, Actor: "maria"}

	sys := &Sistema{CdSistema: "RH", DcSistema: "Recursos Humanos"}
	sys.Ativo = true
	require.NoError(t, tenantDB(db, tc).Create(sys).Error)

	assert.NotEqual(t, sys.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.Equal(t, int64(7), sys.TenantID)
	assert.Equal(t, "maria", sys.CreatedBy)
	assert.Equal(t, time.UTC, sys.CreatedAt.Location())
	assert.WithinDuration(t, time.Now().UTC(), sys.CreatedAt, 5*time.Second)
	assert.Nil(t, sys.UpdatedAt)
	assert.Nil(t, sys.UpdatedBy)
}

func TestBeforeCreateRejectsMissingTenant(t *testing.T) {
	db := openTestDB(t)

	sys := &Sistema{CdSistema: "RH", DcSistema: "Recursos Humanos"}
	err := db.Create(sys).Error
	assert.ErrorIs(t, err, tenant.ErrNoTenant)

	var count int64
	require.NoError(t, db.Model(&Sistema{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestBeforeCreateRejectsInvalidTenant(t *testing.T) {
	db := openTestDB(t)

	sys := &Sistema{CdSistema: "RH", DcSistema: "Recursos Humanos"}
	err := tenantDB(db, tenant.Context{TenantID: 0, Actor: "x"}).Create(sys).Error
	assert.ErrorIs(t, err, tenant.ErrNoTenant)
}

func TestBeforeUpdateStampsAndPinsWriteOnceFields(t *testing.T) {
	db := openTestDB(t)
	creator := tenant.Context{TenantID: 7, Actor: "maria"}

	sys := &Sistema{CdSistema: "RH", DcSistema: "Recursos Humanos"}
	require.NoError(t, tenantDB(db, creator).Create(sys).Error)
	createdAt := sys.CreatedAt

	// Mutate the write-once fields in memory before saving; the update must
	// not persist any of it.
	editor := tenant.Context{TenantID: 7, Actor: "joao"}
	sys.DcSistema = "RH Corporativo"
	sys.CreatedBy = "hacker"
	sys.CreatedAt = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)
	sys.TenantID = 99
	require.NoError(t, tenantDB(db, editor).Save(sys).Error)

	var got Sistema
	require.NoError(t, db.Where("id = ?", sys.ID).First(&got).Error)
	assert.Equal(t, "RH Corporativo", got.DcSistema)
	assert.Equal(t, "maria", got.CreatedBy)
	assert.Equal(t, int64(7), got.TenantID)
	assert.WithinDuration(t, createdAt, got.CreatedAt, time.Second)
	require.NotNil(t, got.UpdatedAt)
	require.NotNil(t, got.UpdatedBy)
	assert.Equal(t, "joao", *got.UpdatedBy)
}

func TestBeforeUpdateRejectsMissingTenant(t *testing.T) {
	db := openTestDB(t)
	tc := tenant.Context{TenantID: 7, Actor: "maria"}

	sys := &Sistema{CdSistema: "RH", DcSistema: "Recursos Humanos"}
	require.NoError(t, tenantDB(db, tc).Create(sys).Error)

	sys.DcSistema = "changed"
	err := db.Save(sys).Error
	assert.ErrorIs(t, err, tenant.ErrNoTenant)
}

func TestUsuarioPasswordRoundTrip(t *testing.T) {
	u := &Usuario{CdUsuario: "MARIA"}
	require.NoError(t, u.SetPassword("s3gr3do"))

	assert.True(t, u.CheckPassword("s3gr3do"))
	assert.False(t, u.CheckPassword("errado"))

	empty := &Usuario{CdUsuario: "SEM_SENHA"}
	assert.False(t, empty.CheckPassword("qualquer"))
}

func TestPermissionAllows(t *testing.T) {
	p := Permission{CdAcoes: "IAE"}
	assert.True(t, p.Allows("I"))
	assert.True(t, p.Allows("E"))
	assert.False(t, p.Allows("X"))
	assert.True(t, p.Allows(""))
}
