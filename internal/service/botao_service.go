package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/internal/tenant"
	"go-backoffice/internal/ws"
	"go-backoffice/pkg/keycodec"
	"go-backoffice/pkg/validator"
)

type BotaoRequest struct {
	CdSistema string `json:"cdSistema" validate:"required,max=10"`
	CdFuncao  string `json:"cdFuncao" validate:"required,max=30"`
	NmBotao   string `json:"nmBotao" validate:"required,max=30"`
	DcBotao   string `json:"dcBotao" validate:"required,max=60"`
	CdAcao    string `json:"cdAcao" validate:"required,len=1"`
}

// BotaoItem is the API shape of a registered action; ID carries the encoded
// composite key used by the detail routes.
type BotaoItem struct {
	ID        string `json:"id"`
	CdSistema string `json:"cdSistema"`
	CdFuncao  string `json:"cdFuncao"`
	NmBotao   string `json:"nmBotao"`
	DcBotao   string `json:"dcBotao"`
	CdAcao    string `json:"cdAcao"`
}

func toBotaoItem(b *model.Botao) BotaoItem {
	return BotaoItem{
		ID:        keycodec.Encode(b.CdSistema, b.CdFuncao, b.NmBotao),
		CdSistema: b.CdSistema,
		CdFuncao:  b.CdFuncao,
		NmBotao:   b.NmBotao,
		DcBotao:   b.DcBotao,
		CdAcao:    b.CdAcao,
	}
}

type BotaoService interface {
	GetAll(ctx context.Context, tc tenant.Context) ([]BotaoItem, error)
	Get(ctx context.Context, tc tenant.Context, id string) (*BotaoItem, error)
	Create(ctx context.Context, tc tenant.Context, req *BotaoRequest) (*BotaoItem, error)
	Update(ctx context.Context, tc tenant.Context, id string, req *BotaoRequest) (*BotaoItem, error)
	Delete(ctx context.Context, tc tenant.Context, id string) error
}

type botaoService struct {
	repo repository.BotaoRepository
	hub  *ws.Hub
	log  *zap.Logger
}

func NewBotaoService(repo repository.BotaoRepository, hub *ws.Hub, log *zap.Logger) BotaoService {
	return &botaoService{repo: repo, hub: hub, log: log}
}

func decodeBotaoID(id string) (cdSistema, cdFuncao, nmBotao string, err error) {
	parts, err := keycodec.Decode(id, 3)
	if err != nil {
		return "", "", "", &BusinessError{Code: "INVALID_KEY", Message: "malformed composite key"}
	}
	return parts[0], parts[1], parts[2], nil
}

func (s *botaoService) GetAll(ctx context.Context, tc tenant.Context) ([]BotaoItem, error) {
	botoes, err := s.repo.FindAll(ctx, tc)
	if err != nil {
		return nil, err
	}
	items := make([]BotaoItem, len(botoes))
	for i := range botoes {
		items[i] = toBotaoItem(&botoes[i])
	}
	return items, nil
}

func (s *botaoService) Get(ctx context.Context, tc tenant.Context, id string) (*BotaoItem, error) {
	cdSistema, cdFuncao, nmBotao, err := decodeBotaoID(id)
	if err != nil {
		return nil, err
	}
	b, err := s.repo.FindByKey(ctx, tc, cdSistema, cdFuncao, nmBotao)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	item := toBotaoItem(b)
	return &item, nil
}

func (s *botaoService) Create(ctx context.Context, tc tenant.Context, req *BotaoRequest) (*BotaoItem, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, NewValidationError(validator.Messages(errs))
	}
	_, err := s.repo.FindByKey(ctx, tc, req.CdSistema, req.CdFuncao, req.NmBotao)
	if err == nil {
		return nil, ErrConflict
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	b := &model.Botao{
		CdSistema: req.CdSistema,
		CdFuncao:  req.CdFuncao,
		NmBotao:   req.NmBotao,
		DcBotao:   req.DcBotao,
		CdAcao:    req.CdAcao,
	}
	if err := s.repo.Create(ctx, tc, b); err != nil {
		return nil, err
	}
	item := toBotaoItem(b)
	s.notify("botao.created", tc, item.ID)
	return &item, nil
}

// Update rewrites the description and action; the composite key in the route
// is the identity and cannot be changed in place.
func (s *botaoService) Update(ctx context.Context, tc tenant.Context, id string, req *BotaoRequest) (*BotaoItem, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, NewValidationError(validator.Messages(errs))
	}
	cdSistema, cdFuncao, nmBotao, err := decodeBotaoID(id)
	if err != nil {
		return nil, err
	}
	b, err := s.repo.FindByKey(ctx, tc, cdSistema, cdFuncao, nmBotao)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	b.DcBotao = req.DcBotao
	b.CdAcao = req.CdAcao
	if err := s.repo.Update(ctx, tc, b); err != nil {
		return nil, err
	}
	item := toBotaoItem(b)
	s.notify("botao.updated", tc, item.ID)
	return &item, nil
}

func (s *botaoService) Delete(ctx context.Context, tc tenant.Context, id string) error {
	cdSistema, cdFuncao, nmBotao, err := decodeBotaoID(id)
	if err != nil {
		return err
	}
	affected, err := s.repo.Delete(ctx, tc, cdSistema, cdFuncao, nmBotao)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	s.notify("botao.deleted", tc, id)
	return nil
}

func (s *botaoService) notify(event string, tc tenant.Context, key string) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(ws.Event{Type: event, TenantID: tc.TenantID, Key: key, Actor: tc.Actor})
}
