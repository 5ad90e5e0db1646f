package repository

import (
	"context"

	"gorm.io/gorm"

	"go-backoffice/internal/model"
	"go-backoffice/internal/tenant"
)

type BotaoRepository interface {
	FindAll(ctx context.Context, tc tenant.Context) ([]model.Botao, error)
	FindByKey(ctx context.Context, tc tenant.Context, cdSistema, cdFuncao, nmBotao string) (*model.Botao, error)
	Create(ctx context.Context, tc tenant.Context, b *model.Botao) error
	Update(ctx context.Context, tc tenant.Context, b *model.Botao) error
	Delete(ctx context.Context, tc tenant.Context, cdSistema, cdFuncao, nmBotao string) (int64, error)
}

type botaoRepo struct {
	db *gorm.DB
}

func NewBotaoRepo(db *gorm.DB) BotaoRepository {
	return &botaoRepo{db}
}

func (r *botaoRepo) FindAll(ctx context.Context, tc tenant.Context) ([]model.Botao, error) {
	var botoes []model.Botao
	err := scoped(ctx, r.db, tc).Order("cdsistema, cdfuncao, nmbotao").Find(&botoes).Error
	return botoes, err
}

func (r *botaoRepo) FindByKey(ctx context.Context, tc tenant.Context, cdSistema, cdFuncao, nmBotao string) (*model.Botao, error) {
	var b model.Botao
	err := scoped(ctx, r.db, tc).
		Where("cdsistema = ? AND cdfuncao = ? AND nmbotao = ?", cdSistema, cdFuncao, nmBotao).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *botaoRepo) Create(ctx context.Context, tc tenant.Context, b *model.Botao) error {
	return scoped(ctx, r.db, tc).Create(b).Error
}

func (r *botaoRepo) Update(ctx context.Context, tc tenant.Context, b *model.Botao) error {
	return scoped(ctx, r.db, tc).Save(b).Error
}

func (r *botaoRepo) Delete(ctx context.Context, tc tenant.Context, cdSistema, cdFuncao, nmBotao string) (int64, error) {
	res := scoped(ctx, r.db, tc).
		Where("cdsistema = ? AND cdfuncao = ? AND nmbotao = ?", cdSistema, cdFuncao, nmBotao).
		Delete(&model.Botao{})
	return res.RowsAffected, res.Error
}
