package service

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-backoffice/internal/filter"
	"go-backoffice/internal/grid"
	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/internal/tenant"
	"go-backoffice/internal/ws"
	"go-backoffice/pkg/export"
	"go-backoffice/pkg/validator"
)

var sistemaExportHeader = []string{"CdSistema", "DcSistema", "Ativo"}

var SistemaGrid = grid.Definition[model.Sistema, model.SistemaListItem]{
	Schema: filter.NewSchema(map[string]filter.Field{
		"CdSistema": {Column: "cdsistema", Kind: filter.String},
		"DcSistema": {Column: "dcsistema", Kind: filter.String},
		"Ativo":     {Column: "ativo", Kind: filter.Bool},
	}),
	Sortable: map[string]string{
		"cdsistema": "cdsistema",
		"dcsistema": "dcsistema",
		"ativo":     "ativo",
	},
	DefaultSort: "cdsistema",
	Project:     (*model.Sistema).ToListItem,
}

type SistemaRequest struct {
	CdSistema string `json:"cdSistema" validate:"required,max=10"`
	DcSistema string `json:"dcSistema" validate:"required,max=60"`
	Ativo     *bool  `json:"ativo"`
}

type SistemaService interface {
	GetAll(ctx context.Context, tc tenant.Context) ([]model.SistemaListItem, error)
	Get(ctx context.Context, tc tenant.Context, cdSistema string) (*model.Sistema, error)
	Create(ctx context.Context, tc tenant.Context, req *SistemaRequest) (*model.Sistema, error)
	Update(ctx context.Context, tc tenant.Context, cdSistema string, req *SistemaRequest) (*model.Sistema, error)
	Delete(ctx context.Context, tc tenant.Context, cdSistema string) error
	List(ctx context.Context, tc tenant.Context, req grid.Request) (grid.Response[model.SistemaListItem], error)
	ExportCSV(ctx context.Context, tc tenant.Context, group *filter.Group) ([]byte, error)
	ExportExcel(ctx context.Context, tc tenant.Context, group *filter.Group) ([]byte, error)
}

type sistemaService struct {
	repo repository.SistemaRepository
	hub  *ws.Hub
	log  *zap.Logger
}

func NewSistemaService(repo repository.SistemaRepository, hub *ws.Hub, log *zap.Logger) SistemaService {
	return &sistemaService{repo: repo, hub: hub, log: log}
}

func (s *sistemaService) GetAll(ctx context.Context, tc tenant.Context) ([]model.SistemaListItem, error) {
	sistemas, err := s.repo.FindAll(ctx, tc)
	if err != nil {
		return nil, err
	}
	items := make([]model.SistemaListItem, len(sistemas))
	for i := range sistemas {
		items[i] = sistemas[i].ToListItem()
	}
	return items, nil
}

func (s *sistemaService) Get(ctx context.Context, tc tenant.Context, cdSistema string) (*model.Sistema, error) {
	sys, err := s.repo.FindByCd(ctx, tc, cdSistema)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return sys, err
}

func (s *sistemaService) Create(ctx context.Context, tc tenant.Context, req *SistemaRequest) (*model.Sistema, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, NewValidationError(validator.Messages(errs))
	}
	exists, err := s.repo.ExistsByCd(ctx, tc, req.CdSistema)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrConflict
	}

	sys := &model.Sistema{CdSistema: req.CdSistema, DcSistema: req.DcSistema}
	sys.Ativo = req.Ativo == nil || *req.Ativo
	if err := s.repo.Create(ctx, tc, sys); err != nil {
		return nil, err
	}
	s.notify("sistema.created", tc, sys.CdSistema)
	return sys, nil
}

func (s *sistemaService) Update(ctx context.Context, tc tenant.Context, cdSistema string, req *SistemaRequest) (*model.Sistema, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, NewValidationError(validator.Messages(errs))
	}
	sys, err := s.Get(ctx, tc, cdSistema)
	if err != nil {
		return nil, err
	}

	sys.DcSistema = req.DcSistema
	if req.Ativo != nil {
		sys.Ativo = *req.Ativo
	}
	if err := s.repo.Update(ctx, tc, sys); err != nil {
		return nil, err
	}
	s.notify("sistema.updated", tc, sys.CdSistema)
	return sys, nil
}

func (s *sistemaService) Delete(ctx context.Context, tc tenant.Context, cdSistema string) error {
	affected, err := s.repo.Delete(ctx, tc, cdSistema)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	s.notify("sistema.deleted", tc, cdSistema)
	return nil
}

func (s *sistemaService) List(ctx context.Context, tc tenant.Context, req grid.Request) (grid.Response[model.SistemaListItem], error) {
	return grid.Run(s.repo.Query(ctx, tc), SistemaGrid, req)
}

func (s *sistemaService) exportRows(ctx context.Context, tc tenant.Context, group *filter.Group) ([][]string, error) {
	items, err := grid.RunAll(s.repo.Query(ctx, tc), SistemaGrid, group)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, len(items))
	for i, it := range items {
		rows[i] = []string{it.CdSistema, it.DcSistema, strconv.FormatBool(it.Ativo)}
	}
	return rows, nil
}

func (s *sistemaService) ExportCSV(ctx context.Context, tc tenant.Context, group *filter.Group) ([]byte, error) {
	rows, err := s.exportRows(ctx, tc, group)
	if err != nil {
		return nil, err
	}
	return export.CSV(sistemaExportHeader, rows), nil
}

func (s *sistemaService) ExportExcel(ctx context.Context, tc tenant.Context, group *filter.Group) ([]byte, error) {
	rows, err := s.exportRows(ctx, tc, group)
	if err != nil {
		return nil, err
	}
	return export.Excel("Sistemas", sistemaExportHeader, rows)
}

func (s *sistemaService) notify(event string, tc tenant.Context, key string) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(ws.Event{Type: event, TenantID: tc.TenantID, Key: key, Actor: tc.Actor})
}
