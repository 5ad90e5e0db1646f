package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-backoffice/internal/model"
	"go-backoffice/internal/tenant"
)

type FuncionarioRepository interface {
	FindAll(ctx context.Context, tc tenant.Context) ([]model.Funcionario, error)
	FindByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*model.Funcionario, error)
	Create(ctx context.Context, tc tenant.Context, f *model.Funcionario) error
	Update(ctx context.Context, tc tenant.Context, f *model.Funcionario) error
	Delete(ctx context.Context, tc tenant.Context, id uuid.UUID) (int64, error)
}

type funcionarioRepo struct {
	db *gorm.DB
}

func NewFuncionarioRepo(db *gorm.DB) FuncionarioRepository {
	return &funcionarioRepo{db}
}

func (r *funcionarioRepo) FindAll(ctx context.Context, tc tenant.Context) ([]model.Funcionario, error) {
	var funcionarios []model.Funcionario
	err := scoped(ctx, r.db, tc).Order("nome").Find(&funcionarios).Error
	return funcionarios, err
}

func (r *funcionarioRepo) FindByID(ctx context.Context, tc tenant.Context, id uuid.UUID) (*model.Funcionario, error) {
	var f model.Funcionario
	if err := scoped(ctx, r.db, tc).Where("id = ?", id).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *funcionarioRepo) Create(ctx context.Context, tc tenant.Context, f *model.Funcionario) error {
	return scoped(ctx, r.db, tc).Create(f).Error
}

func (r *funcionarioRepo) Update(ctx context.Context, tc tenant.Context, f *model.Funcionario) error {
	return scoped(ctx, r.db, tc).Save(f).Error
}

func (r *funcionarioRepo) Delete(ctx context.Context, tc tenant.Context, id uuid.UUID) (int64, error) {
	res := scoped(ctx, r.db, tc).Where("id = ?", id).Delete(&model.Funcionario{})
	return res.RowsAffected, res.Error
}
