package repository

import (
	"context"

	"gorm.io/gorm"

	"go-backoffice/internal/model"
	"go-backoffice/internal/tenant"
)

type SistemaRepository interface {
	FindAll(ctx context.Context, tc tenant.Context) ([]model.Sistema, error)
	FindByCd(ctx context.Context, tc tenant.Context, cdSistema string) (*model.Sistema, error)
	ExistsByCd(ctx context.Context, tc tenant.Context, cdSistema string) (bool, error)
	Create(ctx context.Context, tc tenant.Context, s *model.Sistema) error
	Update(ctx context.Context, tc tenant.Context, s *model.Sistema) error
	Delete(ctx context.Context, tc tenant.Context, cdSistema string) (int64, error)
	Query(ctx context.Context, tc tenant.Context) *gorm.DB
}

type sistemaRepo struct {
	db *gorm.DB
}

func NewSistemaRepo(db *gorm.DB) SistemaRepository {
	return &sistemaRepo{db}
}

func (r *sistemaRepo) FindAll(ctx context.Context, tc tenant.Context) ([]model.Sistema, error) {
	var sistemas []model.Sistema
	err := scoped(ctx, r.db, tc).Order("dcsistema").Find(&sistemas).Error
	return sistemas, err
}

func (r *sistemaRepo) FindByCd(ctx context.Context, tc tenant.Context, cdSistema string) (*model.Sistema, error) {
	var s model.Sistema
	if err := scoped(ctx, r.db, tc).Where("cdsistema = ?", cdSistema).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sistemaRepo) ExistsByCd(ctx context.Context, tc tenant.Context, cdSistema string) (bool, error) {
	var count int64
	err := scoped(ctx, r.db, tc).Model(&model.Sistema{}).Where("cdsistema = ?", cdSistema).Count(&count).Error
	return count > 0, err
}

func (r *sistemaRepo) Create(ctx context.Context, tc tenant.Context, s *model.Sistema) error {
	return scoped(ctx, r.db, tc).Create(s).Error
}

func (r *sistemaRepo) Update(ctx context.Context, tc tenant.Context, s *model.Sistema) error {
	return scoped(ctx, r.db, tc).Save(s).Error
}

func (r *sistemaRepo) Delete(ctx context.Context, tc tenant.Context, cdSistema string) (int64, error) {
	res := scoped(ctx, r.db, tc).Where("cdsistema = ?", cdSistema).Delete(&model.Sistema{})
	return res.RowsAffected, res.Error
}

func (r *sistemaRepo) Query(ctx context.Context, tc tenant.Context) *gorm.DB {
	return scoped(ctx, r.db, tc)
}
