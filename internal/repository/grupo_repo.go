package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"go-backoffice/internal/model"
	"go-backoffice/internal/tenant"
)

type GrupoRepository interface {
	ListMemberships(ctx context.Context, tc tenant.Context, cdUsuario string) ([]model.UserGroup, error)
	Grant(ctx context.Context, tc tenant.Context, ug *model.UserGroup) error
	Revoke(ctx context.Context, tc tenant.Context, cdUsuario, cdSistema, cdGrUser string) (int64, error)
	ResolvePermissions(ctx context.Context, tc tenant.Context, cdUsuario string) ([]model.Permission, error)
}

type grupoRepo struct {
	db *gorm.DB
}

func NewGrupoRepo(db *gorm.DB) GrupoRepository {
	return &grupoRepo{db}
}

func (r *grupoRepo) ListMemberships(ctx context.Context, tc tenant.Context, cdUsuario string) ([]model.UserGroup, error) {
	var groups []model.UserGroup
	err := scoped(ctx, r.db, tc).
		Where("cdusuario = ?", cdUsuario).
		Order("cdsistema, cdgruser").
		Find(&groups).Error
	return groups, err
}

func (r *grupoRepo) Grant(ctx context.Context, tc tenant.Context, ug *model.UserGroup) error {
	if ug.DtIniVal.IsZero() {
		ug.DtIniVal = time.Now().UTC()
	}
	return scoped(ctx, r.db, tc).Create(ug).Error
}

// Revoke end-dates the membership instead of deleting it; history stays.
func (r *grupoRepo) Revoke(ctx context.Context, tc tenant.Context, cdUsuario, cdSistema, cdGrUser string) (int64, error) {
	now := time.Now().UTC()
	res := scoped(ctx, r.db, tc).
		Model(&model.UserGroup{}).
		Where("cdusuario = ? AND cdsistema = ? AND cdgruser = ? AND dtfimval IS NULL", cdUsuario, cdSistema, cdGrUser).
		Update("dtfimval", now)
	return res.RowsAffected, res.Error
}

// ResolvePermissions computes the effective permission set: valid memberships
// (dtfimval IS NULL) joined to active sistemas joined to group grants on
// (cdgruser, cdsistema), ordered for deterministic output. A user with no
// valid membership resolves to an empty set, not an error.
func (r *grupoRepo) ResolvePermissions(ctx context.Context, tc tenant.Context, cdUsuario string) ([]model.Permission, error) {
	var perms []model.Permission
	err := r.db.WithContext(tenant.NewContext(ctx, tc)).
		Table("usrh1").
		Select(`usrh1.cdsistema AS cd_sistema,
			tsistema.dcsistema AS dc_sistema,
			usrh1.cdgruser AS cd_gr_user,
			hbrh1.cdfuncao AS cd_funcao,
			hbrh1.cdacoes AS cd_acoes,
			hbrh1.cdrestric AS cd_restric`).
		Joins(`JOIN tsistema ON tsistema.cdsistema = usrh1.cdsistema
			AND tsistema.tenant_id = usrh1.tenant_id
			AND tsistema.ativo = ?`, true).
		Joins(`JOIN hbrh1 ON hbrh1.cdgruser = usrh1.cdgruser
			AND hbrh1.cdsistema = usrh1.cdsistema
			AND hbrh1.tenant_id = usrh1.tenant_id`).
		Where("usrh1.tenant_id = ? AND usrh1.cdusuario = ? AND usrh1.dtfimval IS NULL", tc.TenantID, cdUsuario).
		Order("usrh1.cdsistema, usrh1.cdgruser, hbrh1.cdfuncao").
		Scan(&perms).Error
	return perms, err
}
