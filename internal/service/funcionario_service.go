package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/internal/tenant"
	"go-backoffice/internal/ws"
	"go-backoffice/pkg/validator"
)

type FuncionarioRequest struct {
	Nome         string    `json:"nome" validate:"required,max=100"`
	Email        string    `json:"email" validate:"omitempty,email,max=100"`
	CPF          string    `json:"cpf" validate:"required,max=14"`
	Salario      float64   `json:"salario" validate:"gte=0"`
	DataAdmissao time.Time `json:"dataAdmissao"`
	Cargo        string    `json:"cargo" validate:"max=60"`
	Departamento string    `json:"departamento" validate:"max=60"`
	Status       string    `json:"status" validate:"omitempty,oneof=Ativo Inativo Afastado"`
}

type FuncionarioService interface {
	GetAll(ctx context.Context, tc tenant.Context) ([]model.Funcionario, error)
	Get(ctx context.Context, tc tenant.Context, id uuid.UUID) (*model.Funcionario, error)
	Create(ctx context.Context, tc tenant.Context, req *FuncionarioRequest) (*model.Funcionario, error)
	Update(ctx context.Context, tc tenant.Context, id uuid.UUID, req *FuncionarioRequest) (*model.Funcionario, error)
	Delete(ctx context.Context, tc tenant.Context, id uuid.UUID) error
}

type funcionarioService struct {
	repo repository.FuncionarioRepository
	hub  *ws.Hub
	log  *zap.Logger
}

func NewFuncionarioService(repo repository.FuncionarioRepository, hub *ws.Hub, log *zap.Logger) FuncionarioService {
	return &funcionarioService{repo: repo, hub: hub, log: log}
}

func (s *funcionarioService) GetAll(ctx context.Context, tc tenant.Context) ([]model.Funcionario, error) {
	return s.repo.FindAll(ctx, tc)
}

func (s *funcionarioService) Get(ctx context.Context, tc tenant.Context, id uuid.UUID) (*model.Funcionario, error) {
	f, err := s.repo.FindByID(ctx, tc, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return f, err
}

func (s *funcionarioService) Create(ctx context.Context, tc tenant.Context, req *FuncionarioRequest) (*model.Funcionario, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, NewValidationError(validator.Messages(errs))
	}
	f := &model.Funcionario{
		Nome:         req.Nome,
		Email:        req.Email,
		CPF:          req.CPF,
		Salario:      req.Salario,
		DataAdmissao: req.DataAdmissao,
		Cargo:        req.Cargo,
		Departamento: req.Departamento,
		Status:       req.Status,
	}
	if f.Status == "" {
		f.Status = "Ativo"
	}
	if err := s.repo.Create(ctx, tc, f); err != nil {
		return nil, err
	}
	s.notify("funcionario.created", tc, f.ID.String())
	return f, nil
}

func (s *funcionarioService) Update(ctx context.Context, tc tenant.Context, id uuid.UUID, req *FuncionarioRequest) (*model.Funcionario, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, NewValidationError(validator.Messages(errs))
	}
	f, err := s.Get(ctx, tc, id)
	if err != nil {
		return nil, err
	}

	f.Nome = req.Nome
	f.Email = req.Email
	f.CPF = req.CPF
	f.Salario = req.Salario
	f.DataAdmissao = req.DataAdmissao
	f.Cargo = req.Cargo
	f.Departamento = req.Departamento
	if req.Status != "" {
		f.Status = req.Status
	}
	if err := s.repo.Update(ctx, tc, f); err != nil {
		return nil, err
	}
	s.notify("funcionario.updated", tc, f.ID.String())
	return f, nil
}

func (s *funcionarioService) Delete(ctx context.Context, tc tenant.Context, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, tc, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	s.notify("funcionario.deleted", tc, id.String())
	return nil
}

func (s *funcionarioService) notify(event string, tc tenant.Context, key string) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(ws.Event{Type: event, TenantID: tc.TenantID, Key: key, Actor: tc.Actor})
}
