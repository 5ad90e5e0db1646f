package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-backoffice/internal/model"
	"go-backoffice/internal/tenant"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Usuario{},
		&model.Sistema{},
		&model.Botao{},
		&model.UserGroup{},
		&model.GroupPermission{},
		&model.Funcionario{},
	))
	return db
}

func seedSistema(t *testing.T, db *gorm.DB, tc tenant.Context, cd, dc string, ativo bool) {
	t.Helper()
	sys := &model.Sistema{CdSistema: cd, DcSistema: dc}
	sys.Ativo = ativo
	require.NoError(t, scoped(context.Background(), db, tc).Create(sys).Error)
}

func seedGrant(t *testing.T, db *gorm.DB, tc tenant.Context, grupo, sistema, funcao, acoes string) {
	t.Helper()
	gp := &model.GroupPermission{CdGrUser: grupo, CdSistema: sistema, CdFuncao: funcao, CdAcoes: acoes}
	require.NoError(t, scoped(context.Background(), db, tc).Create(gp).Error)
}

func TestResolvePermissionsJoinsValidMembershipActiveSistemaAndGrants(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	tc := tenant.Context{TenantID: 1, Actor: "seed"}
	repo := NewGrupoRepo(db)

	seedSistema(t, db, tc, "SEG", "Seguranca", true)
	seedGrant(t, db, tc, "ADMINS", "SEG", "USUARIOS", "IAE")
	seedGrant(t, db, tc, "ADMINS", "SEG", "GRUPOS", "C")
	require.NoError(t, repo.Grant(ctx, tc, &model.UserGroup{
		CdUsuario: "MARIA", CdSistema: "SEG", CdGrUser: "ADMINS",
	}))

	perms, err := repo.ResolvePermissions(ctx, tc, "MARIA")
	require.NoError(t, err)
	require.Len(t, perms, 2)
	assert.Equal(t, "GRUPOS", perms[0].CdFuncao)
	assert.Equal(t, "USUARIOS", perms[1].CdFuncao)
	assert.Equal(t, "IAE", perms[1].CdAcoes)
	assert.Equal(t, "Seguranca", perms[1].DcSistema)
}

func TestResolvePermissionsExcludesEndDatedMembership(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	tc := tenant.Context{TenantID: 1, Actor: "seed"}
	repo := NewGrupoRepo(db)

	seedSistema(t, db, tc, "SEG", "Seguranca", true)
	seedGrant(t, db, tc, "ADMINS", "SEG", "USUARIOS", "IAE")

	past := time.Now().UTC().Add(-24 * time.Hour)
	ended := &model.UserGroup{
		CdUsuario: "MARIA", CdSistema: "SEG", CdGrUser: "ADMINS",
		DtIniVal: past.Add(-24 * time.Hour), DtFimVal: &past,
	}
	require.NoError(t, repo.Grant(ctx, tc, ended))

	perms, err := repo.ResolvePermissions(ctx, tc, "MARIA")
	require.NoError(t, err)
	assert.Empty(t, perms)
}

func TestResolvePermissionsExcludesInactiveSistema(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	tc := tenant.Context{TenantID: 1, Actor: "seed"}
	repo := NewGrupoRepo(db)

	seedSistema(t, db, tc, "SEG", "Seguranca", false)
	seedGrant(t, db, tc, "ADMINS", "SEG", "USUARIOS", "IAE")
	require.NoError(t, repo.Grant(ctx, tc, &model.UserGroup{
		CdUsuario: "MARIA", CdSistema: "SEG", CdGrUser: "ADMINS",
	}))

	perms, err := repo.ResolvePermissions(ctx, tc, "MARIA")
	require.NoError(t, err)
	assert.Empty(t, perms)
}

func TestResolvePermissionsStaysInsideTenant(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	t1 := tenant.Context{TenantID: 1, Actor: "seed"}
	t2 := tenant.Context{TenantID: 2, Actor: "seed"}
	repo := NewGrupoRepo(db)

	// Tenant 2 has the same codes fully wired; tenant 1 only has the
	// membership, so it resolves nothing.
	seedSistema(t, db, t2, "SEG", "Seguranca", true)
	seedGrant(t, db, t2, "ADMINS", "SEG", "USUARIOS", "IAE")
	require.NoError(t, repo.Grant(ctx, t1, &model.UserGroup{
		CdUsuario: "MARIA", CdSistema: "SEG", CdGrUser: "ADMINS",
	}))

	perms, err := repo.ResolvePermissions(ctx, t1, "MARIA")
	require.NoError(t, err)
	assert.Empty(t, perms)

	perms, err = repo.ResolvePermissions(ctx, t2, "MARIA")
	require.NoError(t, err)
	assert.Empty(t, perms)
}

func TestResolvePermissionsOrdering(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	tc := tenant.Context{TenantID: 1, Actor: "seed"}
	repo := NewGrupoRepo(db)

	seedSistema(t, db, tc, "FIN", "Financeiro", true)
	seedSistema(t, db, tc, "SEG", "Seguranca", true)
	seedGrant(t, db, tc, "OPER", "SEG", "CONSULTA", "C")
	seedGrant(t, db, tc, "ADMINS", "SEG", "USUARIOS", "IAE")
	seedGrant(t, db, tc, "ADMINS", "FIN", "CONTAS", "C")
	for _, g := range []struct{ sis, grp string }{
		{"SEG", "OPER"}, {"SEG", "ADMINS"}, {"FIN", "ADMINS"},
	} {
		require.NoError(t, repo.Grant(ctx, tc, &model.UserGroup{
			CdUsuario: "MARIA", CdSistema: g.sis, CdGrUser: g.grp,
		}))
	}

	perms, err := repo.ResolvePermissions(ctx, tc, "MARIA")
	require.NoError(t, err)
	require.Len(t, perms, 3)
	assert.Equal(t, "FIN", perms[0].CdSistema)
	assert.Equal(t, "ADMINS", perms[1].CdGrUser)
	assert.Equal(t, "USUARIOS", perms[1].CdFuncao)
	assert.Equal(t, "OPER", perms[2].CdGrUser)
}

func TestRevokeEndDatesOnlyLiveMemberships(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	tc := tenant.Context{TenantID: 1, Actor: "seed"}
	repo := NewGrupoRepo(db)

	require.NoError(t, repo.Grant(ctx, tc, &model.UserGroup{
		CdUsuario: "MARIA", CdSistema: "SEG", CdGrUser: "ADMINS",
	}))

	affected, err := repo.Revoke(ctx, tc, "MARIA", "SEG", "ADMINS")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// Second revoke finds nothing live.
	affected, err = repo.Revoke(ctx, tc, "MARIA", "SEG", "ADMINS")
	require.NoError(t, err)
	assert.Zero(t, affected)

	groups, err := repo.ListMemberships(ctx, tc, "MARIA")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.NotNil(t, groups[0].DtFimVal)
}

func TestGrantDefaultsStartDate(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	tc := tenant.Context{TenantID: 1, Actor: "seed"}
	repo := NewGrupoRepo(db)

	ug := &model.UserGroup{CdUsuario: "MARIA", CdSistema: "SEG", CdGrUser: "ADMINS"}
	require.NoError(t, repo.Grant(ctx, tc, ug))
	assert.WithinDuration(t, time.Now().UTC(), ug.DtIniVal, 5*time.Second)
}
