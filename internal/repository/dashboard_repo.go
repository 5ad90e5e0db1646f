package repository

import (
	"context"

	"gorm.io/gorm"

	"go-backoffice/internal/model"
	"go-backoffice/internal/tenant"
)

// TenantCounts are the per-tenant row totals shown on the back-office
// landing page.
type TenantCounts struct {
	Usuarios        int64 `json:"usuarios"`
	UsuariosAtivos  int64 `json:"usuariosAtivos"`
	Sistemas        int64 `json:"sistemas"`
	SistemasAtivos  int64 `json:"sistemasAtivos"`
	Botoes          int64 `json:"botoes"`
	Funcionarios    int64 `json:"funcionarios"`
	MembershipsLive int64 `json:"membershipsLive"`
}

type DashboardRepository interface {
	Counts(ctx context.Context, tc tenant.Context) (*TenantCounts, error)
}

type dashboardRepo struct {
	db *gorm.DB
}

func NewDashboardRepo(db *gorm.DB) DashboardRepository {
	return &dashboardRepo{db}
}

func (r *dashboardRepo) Counts(ctx context.Context, tc tenant.Context) (*TenantCounts, error) {
	var c TenantCounts
	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&c.Usuarios, scoped(ctx, r.db, tc).Model(&model.Usuario{})},
		{&c.UsuariosAtivos, scoped(ctx, r.db, tc).Model(&model.Usuario{}).Where("fl_ativo = ?", "S")},
		{&c.Sistemas, scoped(ctx, r.db, tc).Model(&model.Sistema{})},
		{&c.SistemasAtivos, scoped(ctx, r.db, tc).Model(&model.Sistema{}).Where("ativo = ?", true)},
		{&c.Botoes, scoped(ctx, r.db, tc).Model(&model.Botao{})},
		{&c.Funcionarios, scoped(ctx, r.db, tc).Model(&model.Funcionario{})},
		{&c.MembershipsLive, scoped(ctx, r.db, tc).Model(&model.UserGroup{}).Where("dtfimval IS NULL")},
	}
	for _, item := range counts {
		if err := item.query.Count(item.dst).Error; err != nil {
			return nil, err
		}
	}
	return &c, nil
}
