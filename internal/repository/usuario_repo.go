package repository

import (
	"context"

	"gorm.io/gorm"

	"go-backoffice/internal/model"
	"go-backoffice/internal/tenant"
)

type UsuarioRepository interface {
	FindByCd(ctx context.Context, tc tenant.Context, cdUsuario string) (*model.Usuario, error)
	ExistsByCd(ctx context.Context, tc tenant.Context, cdUsuario string) (bool, error)
	Create(ctx context.Context, tc tenant.Context, u *model.Usuario) error
	Update(ctx context.Context, tc tenant.Context, u *model.Usuario) error
	Delete(ctx context.Context, tc tenant.Context, cdUsuario string) (int64, error)
	DeleteByCds(ctx context.Context, tc tenant.Context, cds []string) (int64, error)
	Query(ctx context.Context, tc tenant.Context) *gorm.DB
}

type usuarioRepo struct {
	db *gorm.DB
}

func NewUsuarioRepo(db *gorm.DB) UsuarioRepository {
	return &usuarioRepo{db}
}

func (r *usuarioRepo) FindByCd(ctx context.Context, tc tenant.Context, cdUsuario string) (*model.Usuario, error) {
	var u model.Usuario
	if err := scoped(ctx, r.db, tc).Where("cd_usuario = ?", cdUsuario).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) ExistsByCd(ctx context.Context, tc tenant.Context, cdUsuario string) (bool, error) {
	var count int64
	err := scoped(ctx, r.db, tc).Model(&model.Usuario{}).Where("cd_usuario = ?", cdUsuario).Count(&count).Error
	return count > 0, err
}

func (r *usuarioRepo) Create(ctx context.Context, tc tenant.Context, u *model.Usuario) error {
	return scoped(ctx, r.db, tc).Create(u).Error
}

func (r *usuarioRepo) Update(ctx context.Context, tc tenant.Context, u *model.Usuario) error {
	return scoped(ctx, r.db, tc).Save(u).Error
}

func (r *usuarioRepo) Delete(ctx context.Context, tc tenant.Context, cdUsuario string) (int64, error) {
	res := scoped(ctx, r.db, tc).Where("cd_usuario = ?", cdUsuario).Delete(&model.Usuario{})
	return res.RowsAffected, res.Error
}

// DeleteByCds removes the matching rows in one batch; keys that match nothing
// are simply not counted.
func (r *usuarioRepo) DeleteByCds(ctx context.Context, tc tenant.Context, cds []string) (int64, error) {
	if len(cds) == 0 {
		return 0, nil
	}
	res := scoped(ctx, r.db, tc).Where("cd_usuario IN ?", cds).Delete(&model.Usuario{})
	return res.RowsAffected, res.Error
}

// Query exposes the tenant-scoped read set for the grid pipeline.
func (r *usuarioRepo) Query(ctx context.Context, tc tenant.Context) *gorm.DB {
	return scoped(ctx, r.db, tc)
}
